package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"jetdash/internal/api"
	"jetdash/internal/auth"
	"jetdash/internal/config"
	"jetdash/internal/source"
	"jetdash/internal/view"
)

// Version is set at build time via -ldflags "-X main.Version=..."
var Version = "dev"

func main() {
	var (
		cfgPath = flag.String("config", "config.yml", "path to YAML config")
		listen  = flag.String("listen", "", "override listen address from config")
	)
	flag.Parse()

	log.Printf("jetdash %s starting...", Version)

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if *listen != "" {
		cfg.Server.ListenAddress = *listen
	}

	sources, inserter, err := source.NewFromConfig(cfg.Backend)
	if err != nil {
		log.Fatalf("build sources: %v", err)
	}
	for _, src := range sources {
		log.Printf("configured source: %s (%s backend)", src.Name(), cfg.Backend.Type)
	}

	srv := api.NewServer(
		cfg.Server.ListenAddress,
		cfg.Server.ReadTimeout,
		cfg.Server.WriteTimeout,
		cfg.Server.IdleTimeout,
		view.New(sources...),
		inserter,
		auth.NewVerifier(cfg.Auth.JWTSecret),
		cfg.View.PageSize,
		cfg.View.RecentLimit,
		nil,
	)

	go func() {
		log.Printf("serving on %s", cfg.Server.ListenAddress)
		if err := srv.Serve(); err != nil {
			log.Printf("http server: %v", err)
		}
	}()

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	log.Println("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
