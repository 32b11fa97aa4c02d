package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-formbuilder/internal/server"
	"github.com/goliatone/go-formbuilder/pkg/definition"
)

func newServeCommand(a *app) *cobra.Command {
	var (
		flags renderFlags
		dir   string
		addr  string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve every definition in a directory over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			defs, err := definition.LoadDir(os.DirFS(dir))
			if err != nil {
				return err
			}
			renderer, err := flags.renderer(a.log())
			if err != nil {
				return err
			}

			httpServer := &http.Server{
				Addr:              addr,
				Handler:           server.New(defs, renderer, a.log(), nil),
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				a.log().Info("listening", zap.String("addr", addr), zap.Int("forms", len(defs)))
				errCh <- httpServer.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			a.log().Info("shutting down")
			return httpServer.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "directory of form definitions")
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&flags.locale, "locale", "", "default locale for synthesized captions")
	cmd.Flags().BoolVar(&flags.sanitize, "sanitize", false, "sanitize raw HTML fragments with a UGC policy")
	return cmd
}
