package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"jpanalyzer/config"
	"jpanalyzer/logger"
	"jpanalyzer/server"
	"jpanalyzer/tokenize"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	logging, err := logger.New(logger.Options{
		Level:      cfg.LogLevel,
		Format:     cfg.LogFormat,
		File:       cfg.LogFile,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
	})
	if err != nil {
		log.Fatalf("can't initialize zap logger: %v", err)
	}
	defer logging.Sync()

	gin.SetMode(cfg.GinMode)

	// Load the dictionary once at startup
	tk, err := tokenize.New(tokenize.Options{Dict: cfg.TokenizerDict, UserDictPath: cfg.UserDictPath})
	if err != nil {
		logging.Fatal("Failed to create tokenizer", zap.Error(err))
	}
	logging.Info("Tokenizer ready", zap.String("dictionary", tk.DictName()))

	metrics := server.NewMetrics()
	metrics.Registry().MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	router, err := server.NewRouter(cfg, server.Deps{
		Tokenizer: tk,
		DictName:  tk.DictName(),
		Logger:    logging,
		Metrics:   metrics,
	})
	if err != nil {
		logging.Fatal("Failed to build router", zap.Error(err))
	}

	srv := server.NewHTTPServer(cfg, router)
	go func() {
		logging.Info("Starting server", zap.String("addr", srv.Addr), zap.String("variant", cfg.APIVariant))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("Failed to run server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logging.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logging.Error("Server shutdown failed", zap.Error(err))
	}
	logging.Info("Server stopped")
}
