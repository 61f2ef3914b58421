// main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/cns-tools/store-creator/internal/client"
	"github.com/cns-tools/store-creator/internal/config"
	"github.com/cns-tools/store-creator/internal/server"
	"github.com/cns-tools/store-creator/internal/utils"
	"go.uber.org/zap"
)

func main() {
	// Initialize logging first
	if err := utils.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logging: %v\n", err)
		os.Exit(1)
	}
	defer utils.Sync()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		utils.Logger.Fatal("Failed to load configuration", zap.Error(err))
	}
	utils.Logger.Info("Configuration loaded successfully")

	// mTLS material for the production stores hosts
	tlsConfig, err := client.LoadTLSConfig(appConfig.TLSCertFile, appConfig.TLSKeyFile, appConfig.TLSCAFile)
	if err != nil {
		utils.Logger.Fatal("Failed to load TLS material", zap.Error(err))
	}
	if !client.HasClientCertificate(tlsConfig) {
		utils.Logger.Warn("No client certificate configured; production calls will not use mutual TLS",
			zap.Bool("custom_ca", tlsConfig != nil && tlsConfig.RootCAs != nil))
	}

	// Initialize client and batch manager
	storesClient := client.NewStoresClient(client.Options{
		Timeout:   appConfig.RequestTimeout,
		TLSConfig: tlsConfig,
	})
	batchManager := server.NewBatchManager(appConfig, storesClient)

	// Setup HTTP server
	router := server.NewRouter(appConfig, batchManager)
	startServer(router, appConfig)
}

// startServer binds the HTTP server and handles graceful shutdown signals.
func startServer(router http.Handler, appConfig *config.Config) {
	portStr := strconv.Itoa(appConfig.Port)
	addr := fmt.Sprintf("%s:%s", appConfig.APIHost, portStr)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  config.DefaultReadTimeout,
		WriteTimeout: config.DefaultWriteTimeout,
		IdleTimeout:  config.DefaultIdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		utils.Logger.Info("Shutdown signal received", zap.String(utils.FieldSignal, sig.String()))
		ctx, cancel := context.WithTimeout(context.Background(), config.DefaultShutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(ctx); err != nil {
			utils.Logger.Error("Server shutdown error", zap.Error(err))
		}
	}()

	utils.Logger.Info("Server starting",
		zap.String(utils.FieldHost, appConfig.APIHost),
		zap.String(utils.FieldPort, portStr))

	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		utils.Logger.Fatal("Server failed to start", zap.Error(err))
	}

	utils.Logger.Info("Server stopped")
}
