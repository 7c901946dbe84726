package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/podlift/podlift/internal/cli"
	"github.com/podlift/podlift/internal/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	app, err := cli.NewApp(ctx, cfg, cli.DefaultLogger())
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}
}
