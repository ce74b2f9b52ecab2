package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"urbanpulse/server/internal/app"
)

func main() {
	configPath := flag.String("config", "", "path to TOML config (optional)")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, *configPath); err != nil {
		log.Fatalf("%v", err)
	}
}
