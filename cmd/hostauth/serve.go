package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	httphandler "github.com/ericfisherdev/hostauth/internal/adapter/driving/http"
	"github.com/ericfisherdev/hostauth/internal/application"
	"github.com/ericfisherdev/hostauth/internal/config"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the read-only credential status API",
	Long: `Serve the credential status API on HOSTAUTH_LISTEN_ADDR.
Send SIGHUP to reload every record source without restarting.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	// 1. Load configuration (fail fast on invalid env vars).
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := slog.Default()
	logger.Info("config loaded",
		"listen_addr", cfg.ListenAddr,
		"auth_xml", cfg.AuthXMLPath,
		"auth_yaml", cfg.AuthYAMLPath,
		"db_path", cfg.DBPath,
		"env_tokens", cfg.EnvTokens,
	)

	// 2. Setup signal-based context (SIGINT, SIGTERM).
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Snapshot record sources behind a hot-swappable provider.
	provider, err := newProvider(ctx, cfg, logger)
	if err != nil {
		return err
	}
	logger.Info("record sources loaded", "hosts", len(provider.Hosts()))

	go reloadOnHangup(ctx, cfg, provider, logger)

	// 4. Create HTTP handler and register API routes.
	handler := httphandler.NewServeMux(httphandler.NewHandler(provider, logger), logger)

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		logger.Info("http server starting", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	// 5. Wait for shutdown signal.
	<-ctx.Done()
	logger.Info("shutting down")

	// 6. Graceful shutdown with 10s timeout to drain in-flight requests.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
	return nil
}

// reloadOnHangup re-snapshots every record source on SIGHUP. A failed reload
// keeps the previous snapshot.
func reloadOnHangup(ctx context.Context, cfg *config.Config, provider *application.ResolverProvider, logger *slog.Logger) {
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	for {
		select {
		case <-ctx.Done():
			return
		case <-hup:
			chain, err := loadStores(ctx, cfg, logger)
			if err != nil {
				logger.Error("reload failed, keeping previous records", "error", err)
				continue
			}
			provider.Replace(application.NewCredentialResolver(chain, logger), chain)
			logger.Info("record sources reloaded", "hosts", len(chain.Hosts()))
		}
	}
}
