package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"gopkg.in/natefinch/lumberjack.v2"

	"bingpaper/app"
	"bingpaper/config"
)

func main() {
	os.Exit(run())
}

func run() int {
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("BINGPAPER_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "bingpaper: %v\n", err)
		return 1
	}

	if cfg.LogFile != "" {
		logger := &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    config.LogMaxSizeMB,
			MaxBackups: config.LogMaxBackups,
		}
		defer logger.Close()
		log.SetOutput(logger)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := app.Run(ctx, app.Options{Config: cfg}); err != nil {
		if cfg.LogFile != "" {
			log.Printf("Error: %v", err)
		}
		fmt.Fprintf(os.Stderr, "bingpaper: %v\n", err)
		return 1
	}
	return 0
}
