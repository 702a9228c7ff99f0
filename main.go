package main

import (
	"flag"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"tilepath/internal/config"
	"tilepath/internal/logging"
	"tilepath/internal/monitoring"
	"tilepath/internal/pathfinding"
	"tilepath/internal/tilemap"
	"tilepath/internal/viewer"
	"tilepath/internal/viewer/session"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the configuration file")
	flag.Parse()

	ensureRuntimeCWD(*configPath)

	// Load configuration
	cfg := config.MustLoadConfig(*configPath)

	logger, closer, err := logging.New(cfg.Logging)
	if err != nil {
		log.Printf("Warning: %v; logging to stderr", err)
		logger, closer = slog.Default(), nil
	}
	if closer != nil {
		defer closer.Close()
	}
	slog.SetDefault(logger)

	catalog, err := tilemap.LoadCatalog(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to load maps: %v", err)
	}

	opts, err := cfg.PathfinderOptions()
	if err != nil {
		log.Fatalf("Invalid pathfinding config: %v", err)
	}
	monitor := monitoring.NewSearchMonitor()
	opts = append(opts, pathfinding.WithLogger(logger), pathfinding.WithRecorder(monitor))

	pf, err := pathfinding.New(catalog.DefaultMap().Size(), cfg.GetTileSize(), catalog.DefaultMap(), opts...)
	if err != nil {
		log.Fatalf("Failed to create pathfinder: %v", err)
	}

	s, err := session.New(catalog.Maps, pf, logger)
	if err != nil {
		log.Fatal(err)
	}
	if err := s.SelectMap(catalog.Default); err != nil {
		log.Printf("Warning: %v", err)
	}

	app := viewer.New(cfg, s, monitor, logger)
	if err := viewer.Run(cfg, app); err != nil {
		log.Fatal(err)
	}
}

// ensureRuntimeCWD moves to the executable's directory when the default
// config is not reachable from the working directory.
func ensureRuntimeCWD(configPath string) {
	if filepath.IsAbs(configPath) {
		return
	}
	if _, err := os.Stat(configPath); err == nil {
		return
	}
	exe, err := os.Executable()
	if err != nil {
		return
	}
	execDir := filepath.Dir(exe)
	_ = os.Chdir(execDir)
}
