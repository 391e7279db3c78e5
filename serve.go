package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/storyverse/server/api"
	"github.com/storyverse/server/auth"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			var verifier auth.TokenVerifier
			if a.cfg.AuthDisabled {
				a.log.Warn(ctx, "authentication disabled; every request is trusted")
			} else {
				client, err := a.authClient(ctx)
				if err != nil {
					return err
				}
				verifier = client
			}

			srv := &http.Server{
				Addr: ":" + a.cfg.Port,
				Handler: api.NewRouter(a.activity, verifier, a.log, api.Options{
					AllowedOrigins: a.cfg.AllowedOrigins(),
					AuthDisabled:   a.cfg.AuthDisabled,
				}),
				ReadHeaderTimeout: 10 * time.Second,
			}

			errc := make(chan error, 1)
			go func() {
				a.log.Info(ctx, "listening", "addr", srv.Addr, "store", a.cfg.StoreBackend)
				errc <- srv.ListenAndServe()
			}()

			select {
			case err := <-errc:
				if !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			case <-ctx.Done():
			}

			a.log.Info(context.Background(), "shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
}
