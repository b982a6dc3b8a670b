package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kosymspell/internal/config"
	"kosymspell/internal/server"
)

func main() {
	configPath := flag.String("config", os.Getenv("KOSYMSPELL_CONFIG"), "YAML configuration file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sc, cleanup, err := server.Bootstrap(ctx, cfg)
	if err != nil {
		log.Fatalf("init error: %v", err)
	}
	defer cleanup()

	srv := server.NewServer(cfg.Server, sc)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
