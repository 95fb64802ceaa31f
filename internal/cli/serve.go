package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/youruser/comunicado/internal/api"
	"github.com/youruser/comunicado/internal/config"
	"github.com/youruser/comunicado/internal/metrics"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand(o *rootOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the announcement HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := o.cfg
			if addr != "" {
				cfg.Server.ListenAddress = addr
			}
			return serve(cmd.Context(), cfg, loggerFromContext(cmd.Context()))
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "listen address (overrides config)")
	return cmd
}

// serve blocks until ctx is canceled, then drains in-flight requests.
func serve(ctx context.Context, cfg config.Config, logger *log.Logger) error {
	comp, err := newCompositor(ctx, cfg, logger)
	if err != nil {
		return err
	}

	m := metrics.New()
	m.SetTemplateLoaded(comp.Templated())

	if logger.GetLevel() > log.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}
	srv := api.NewServer(api.Options{
		Renderer:  comp,
		Metrics:   m,
		Logger:    logger,
		OutputDir: comp.OutputDir(),
		PublicURL: cfg.PublicURL,
		Version:   version,
	})

	httpServer := &http.Server{
		Addr:         cfg.Server.ListenAddress,
		Handler:      api.NewEngine(srv),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		logger.Info("listening", "addr", cfg.Server.ListenAddress, "template", comp.Templated(), "output", comp.OutputDir())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "err", err)
		return err
	}
	return nil
}
