package cmd

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/isometry/gh-transfer-issue/internal/config"
	"github.com/spf13/cobra"
)

func cmdService() *cobra.Command {
	return &cobra.Command{
		Use:     "service",
		Aliases: []string{"s", "serve", "server"},
		Short:   "Serve issues webhooks over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return reportError(runService(cmd.Context()))
		},
	}
}

func runService(ctx context.Context) error {
	logger.Debug("Creating HTTP server...")
	h := http.NewServeMux()
	h.Handle(config.Service.Path, newProcessor())

	s := &http.Server{
		Handler:      h,
		Addr:         net.JoinHostPort(config.Service.Addr, config.Service.Port),
		WriteTimeout: config.Service.Timeout,
		ReadTimeout:  config.Service.Timeout,
		IdleTimeout:  config.Service.Timeout,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), config.Service.Timeout)
		defer cancel()
		_ = s.Shutdown(shutdownCtx)
	}()

	logger.Info("Serving...", "address", s.Addr, "path", config.Service.Path, "timeout", config.Service.Timeout.String())
	if err := s.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
