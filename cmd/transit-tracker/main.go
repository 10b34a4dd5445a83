package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	tracker "github.com/theoremus-urban-solutions/transit-tracker"
	"github.com/theoremus-urban-solutions/transit-tracker/config"
	"github.com/theoremus-urban-solutions/transit-tracker/surface"
)

// Headless runner: subscribes to the stream against a no-op surface and
// logs connection state. Useful for soak-testing a feed without a UI.
func main() {
	configPath := flag.String("config", "config.yml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := tracker.NewLogger(cfg.Logging.Level, cfg.Logging.Format)

	client := tracker.NewClient(cfg, surface.NewNop(), logger)
	client.Start()
	logger.WithField("url", cfg.Stream.URL).Info("tracker started")

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs

	logger.Info("shutdown signal received")
	client.Close()
}
