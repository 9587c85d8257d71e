package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/mytheresa/interior-catalog/app/config"
	"github.com/mytheresa/interior-catalog/app/logger"
	"github.com/mytheresa/interior-catalog/app/server"
)

func main() {
	configPath := flag.String("config", "", "config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal("loading config", "error", err)
	}
	logger.Init(cfg.Server.Env)
	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid config", "error", err)
	}

	app, err := server.Open(cfg)
	if err != nil {
		logger.Fatal("starting app", "error", err)
	}
	defer app.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Serve(ctx); err != nil {
		logger.Error("server stopped", "error", err)
	}
}
