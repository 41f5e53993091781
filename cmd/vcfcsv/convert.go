package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/JonMunkholm/vcfcsv/internal/application"
	"github.com/JonMunkholm/vcfcsv/internal/core"
)

// runConvert is the default command: locate, confirm, convert, summarize.
func runConvert(ctx context.Context, opts *options, in io.Reader, out io.Writer, args []string) error {
	cfg := opts.cfg
	svc := core.NewService()

	path := ""
	if len(args) == 1 {
		path = args[0]
	} else {
		found, err := svc.Locate(cfg.Input.Dir, cfg.Input.Extension)
		if errors.Is(err, core.ErrNoInput) {
			fmt.Fprintln(out, noInputMessage(cfg.Input.Dir, cfg.Input.Extension))
			return nil
		}
		if err != nil {
			return err
		}
		path = found
	}

	if !cfg.Convert.AssumeYes {
		info, err := svc.Inspect(path)
		if err != nil {
			return err
		}

		ok, err := application.Confirm(in, out, application.Candidate{
			Path:      info.Path,
			Size:      info.Size,
			Estimated: info.Estimated,
		})
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(out, "Conversion cancelled.")
			return nil
		}
	}

	res, err := svc.ConvertFile(ctx, path)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "CSV written to %s. Processed %d vCards, skipped %d malformed vCards.\n",
		filepath.Base(res.Output), res.Processed, res.Skipped)
	return nil
}

func noInputMessage(dir, ext string) string {
	if filepath.Clean(dir) == "." {
		return fmt.Sprintf("No %s files found in the current directory.", ext)
	}
	return fmt.Sprintf("No %s files found in %s.", ext, dir)
}
