package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/JonMunkholm/vcfcsv/internal/core"
	"github.com/JonMunkholm/vcfcsv/internal/logging"
	"github.com/JonMunkholm/vcfcsv/internal/web"
)

func newServeCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve an upload form and a conversion endpoint over HTTP",
		Long: `serve starts an HTTP server with an upload form at / and a conversion
endpoint at POST /api/convert that returns the CSV as a download.

The server stops gracefully on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address host:port (overrides SERVER_HOST and SERVER_PORT)")
	return cmd
}

func runServe(ctx context.Context, opts *options) error {
	cfg := opts.cfg
	addr := cfg.Server.Addr()
	if opts.addr != "" {
		addr = opts.addr
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := web.NewServer(core.NewService(), cfg)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Start(addr); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logging.FromContext(gctx).Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
