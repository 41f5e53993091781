// Command vcfcsv converts a vCard (.vcf) contact export into a semicolon
// separated CSV file.
//
// Run without arguments it finds the first .vcf file in the current
// directory, asks for confirmation and writes <name>.csv next to it. The
// serve subcommand exposes the same conversion over HTTP.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/JonMunkholm/vcfcsv/internal/config"
	"github.com/JonMunkholm/vcfcsv/internal/core"
	"github.com/JonMunkholm/vcfcsv/internal/logging"
)

func main() {
	if err := run(context.Background(), os.Stdin, os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", describe(err))
		os.Exit(1)
	}
}

// run builds the command tree and executes it with args. Tests call it
// directly with their own streams.
func run(ctx context.Context, in io.Reader, out, errOut io.Writer, args []string) error {
	root := newRootCmd(in, out, errOut)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// describe renders err for the terminal: the coded user message when the
// error is known, the raw text otherwise.
func describe(err error) string {
	if core.IsUserFacing(err) {
		return core.FormatUserError(err)
	}
	return err.Error()
}

// options holds flag values shared by all commands.
type options struct {
	envFile   string
	dir       string
	yes       bool
	logLevel  string
	logFormat string
	addr      string

	cfg *config.Config
}

func newRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "vcfcsv [file.vcf]",
		Short: "Convert a vCard export to a semicolon separated CSV file",
		Long: `vcfcsv reads a vCard (.vcf) contact export and writes one CSV row per contact.

Without a file argument the first .vcf file in the directory is used. Multi-valued
phone and email fields become numbered columns, and Turkish phone numbers are
normalized to "0 (AAA) BBB CC DD".`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd, errOut)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd.Context(), opts, in, out, args)
		},
	}
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	pf := root.PersistentFlags()
	pf.StringVar(&opts.envFile, "env-file", ".env", "optional dotenv file loaded before the environment is read")
	pf.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error (overrides LOG_LEVEL)")
	pf.StringVar(&opts.logFormat, "log-format", "", "log format: text or json (overrides LOG_FORMAT)")

	root.Flags().StringVarP(&opts.dir, "dir", "d", "", "directory searched for a .vcf file (overrides VCF_DIR)")
	root.Flags().BoolVarP(&opts.yes, "yes", "y", false, "convert without asking (overrides VCF_ASSUME_YES)")

	root.AddCommand(newServeCmd(opts))
	return root
}

// setup loads .env and configuration, applies flag overrides and installs
// the logger.
func (o *options) setup(cmd *cobra.Command, errOut io.Writer) error {
	envLoaded := false
	if o.envFile != "" {
		err := godotenv.Overload(o.envFile)
		switch {
		case err == nil:
			envLoaded = true
		case !errors.Is(err, fs.ErrNotExist):
			return fmt.Errorf("load %s: %w", o.envFile, err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("dir") {
		cfg.Input.Dir = o.dir
	}
	if flags.Changed("yes") {
		cfg.Convert.AssumeYes = o.yes
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = o.logLevel
	}
	if flags.Changed("log-format") {
		cfg.Logging.Format = o.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}
	o.cfg = cfg

	logging.Setup(errOut, cfg.Logging.Level, cfg.Logging.Format)
	slog.Debug("configuration loaded", "config", cfg.String(), "env_file_loaded", envLoaded)
	return nil
}
