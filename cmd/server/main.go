// @title           Encomendas API
// @version         1.0
// @description     Package reception and delivery for residential front desks

// @BasePath  /api

// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Enter the token with the `Bearer ` prefix
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Robson2726/Facilitta-sub000/internal/app/routes"
	"github.com/Robson2726/Facilitta-sub000/internal/domain/services"
	"github.com/Robson2726/Facilitta-sub000/internal/domain/services/container"
	"github.com/Robson2726/Facilitta-sub000/internal/infrastructure/config"
	"github.com/Robson2726/Facilitta-sub000/internal/infrastructure/database"
	Logger "github.com/Robson2726/Facilitta-sub000/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// .env is optional, the environment may already be set
	envErr := godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	if err := Logger.SetupLogger(cfg.LogDir, cfg.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "failed to set up logger: %v\n", err)
		os.Exit(1)
	}
	defer Logger.Sync()

	if envErr != nil {
		Logger.Warning("no .env file loaded: %v", envErr)
	}

	if err := run(cfg); err != nil {
		Logger.Error("server stopped: %v", err)
		Logger.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	log := Logger.L()

	pool, err := database.NewConnectionPool(cfg, log.Named("database"))
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := database.Migrate(pool.GetDB(), cfg.DBMigrationMode, log); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	serviceContainer, err := container.NewServiceContainer(pool.GetDB(), cfg, log)
	if err != nil {
		return err
	}
	defer serviceContainer.Close()

	bootstrapAdmin(serviceContainer, cfg)

	if err := serviceContainer.StartBackground(); err != nil {
		return fmt.Errorf("start cache sweeper: %w", err)
	}

	if d, err := serviceContainer.Pairing().Descriptor(); err != nil {
		Logger.Warning("pairing address unavailable: %v", err)
	} else {
		Logger.Info("pairing descriptor: %s", d.String())
	}

	if cfg.EnvType != "LOCAL" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := routes.SetupRouter(serviceContainer)

	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		Logger.Info("server listening on http://%s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	stats, _ := pool.Stats()
	log.Info("database pool ready", zap.Any("stats", stats))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
		return nil
	case sig := <-quit:
		Logger.Info("received %s, shutting down", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	Logger.Info("server stopped")
	return nil
}

// bootstrapAdmin creates the first admin from the environment while no account exists
func bootstrapAdmin(c *container.ServiceContainer, cfg *config.Config) {
	if cfg.BootstrapAdminLogin == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := c.Users().Bootstrap(ctx, services.UserInput{
		Login:    cfg.BootstrapAdminLogin,
		FullName: "Administrador",
		Password: cfg.BootstrapAdminPassword,
	})
	switch {
	case err == nil:
		Logger.Info("bootstrap admin %q created", cfg.BootstrapAdminLogin)
	case errors.Is(err, services.ErrBootstrapClosed):
		Logger.Info("accounts already exist, bootstrap skipped")
	default:
		Logger.Error("bootstrap admin failed: %v", err)
	}
}
