package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/PrintfAman/nexo/config"
	"github.com/PrintfAman/nexo/internal/app"
)

const closeTimeout = 5 * time.Second

func main() {
	sigCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	cfg.Print()

	nexo, err := app.New(sigCtx, cfg)
	if err != nil {
		slog.Error("Failed to start application", "err", err)
		os.Exit(1)
	}

	nexo.Run(stop)

	<-sigCtx.Done()
	slog.Info("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()

	nexo.Close(ctx)
}
