package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/jask/floorplan/internal/api"
	"github.com/jask/floorplan/internal/config"
	"github.com/jask/floorplan/internal/llm"
	"github.com/jask/floorplan/internal/logger"
	"github.com/jask/floorplan/internal/secrets"
	"github.com/jask/floorplan/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	output := cfg.Log.Output
	if os.Getenv("FLOORPLAN_LOG_OUTPUT") == "" {
		output = "stdout"
	}
	zl, err := logger.New(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: output})
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	layouts := &service.LayoutService{
		Generator: llm.New(llm.Options{
			Provider: cfg.LLM.Provider,
			APIKey:   cfg.LLM.ResolveAPIKeyFrom(keySource()),
			Model:    cfg.LLM.Model,
			Endpoint: cfg.LLM.Endpoint,
			Timeout:  cfg.LLM.Timeout,
			Logger:   zl.Named("llm"),
		}),
		Logger: zl.Named("service"),
	}

	srv := api.New(layouts, api.Options{CORSOrigin: cfg.API.CORSOrigin, Logger: zl.Named("api")})

	go func() {
		if err := srv.Start(fmt.Sprintf(":%d", cfg.API.Port)); err != nil {
			zl.Fatal("server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zl.Error("forced shutdown", zap.Error(err))
	}
	zl.Info("server exited")
}

func keySource() config.KeySource {
	kr, err := secrets.Open("")
	if err != nil {
		return nil
	}
	return kr
}
