package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/wadjakorntonsri/linkvault/pkg/app"
	"github.com/wadjakorntonsri/linkvault/pkg/config"
	"github.com/wadjakorntonsri/linkvault/pkg/logging"
)

func main() {
	cfg := config.Load()
	log := logging.New(cfg.LogLevel, cfg.LogFormat).WithEntryName("server")

	application, err := app.New(cfg, log)
	if err != nil {
		log.WithErr(err).Fatal("failed to connect to database")
	}

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      application.Handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.WithField("port", cfg.Port).Info("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithErr(err).Fatal("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.WithErr(err).Error("graceful shutdown failed")
	}
	if err := application.Close(); err != nil {
		log.WithErr(err).Error("failed to close store")
	}
}
