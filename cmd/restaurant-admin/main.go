package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"restaurant-admin/internal/common/logger"
	"restaurant-admin/internal/config"
	"restaurant-admin/internal/microservices/console"
	"restaurant-admin/internal/microservices/notificator"
)

func main() {
	mode := flag.String("mode", "console", "console | event-subscriber")
	port := flag.Int("port", 0, "console: http port (overrides HTTP_PORT)")
	envFile := flag.String("env-file", "", "optional .env file (default ./.env if present)")
	logLevel := flag.String("log-level", "", "info | debug (overrides LOG_LEVEL)")
	flag.Parse()

	var files []string
	if *envFile != "" {
		files = append(files, *envFile)
	}
	cfg, err := config.Load(files...)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(2)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	switch *mode {
	case "console":
		lg := logger.New("console").WithLevel(cfg.LogLevel)
		lg.Info("service_started", map[string]any{"port": cfg.Server.Port, "events": cfg.RabbitMQ.Enabled})
		if err := console.Run(ctx, cfg, lg); err != nil {
			lg.Error("fatal", err, nil)
			os.Exit(1)
		}
	case "event-subscriber":
		lg := logger.New("event-subscriber").WithLevel(cfg.LogLevel)
		lg.Info("service_started", map[string]any{"queue": cfg.RabbitMQ.Queue})
		if err := notificator.Run(ctx, cfg, lg); err != nil {
			lg.Error("fatal", err, nil)
			os.Exit(1)
		}
	default:
		fmt.Fprintln(os.Stderr, "--mode must be one of: console | event-subscriber")
		os.Exit(2)
	}
}
