package main

import (
	"fmt"
	"os"

	"github.com/cropstudio/cropd/internal/config"
	"github.com/cropstudio/cropd/internal/log"
	"github.com/cropstudio/cropd/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("cropd %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("cropd - headless crop and transform editor service")
			fmt.Println()
			fmt.Println("Usage: cropd [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  CROPD_LOG_LEVEL=debug|info|warn|error")
			fmt.Println("  CROPD_LOG_FORMAT=console|json")
			fmt.Println("  CROPD_LOG_FILE=<path>        Rotated JSON log file")
			fmt.Println("  CROPD_SNAP_THRESHOLD=<px>    Snap capture distance")
			fmt.Println()
			fmt.Println("The service speaks JSON-RPC 2.0 over stdin/stdout, one")
			fmt.Println("request per line. Settings load from the user config file")
			fmt.Println("(see internal/config) with CROPD_* env overrides.")
			return
		}
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	// Logging goes to stderr and the optional file sink; stdout carries
	// the protocol.
	log.Init(log.Options{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		AddSource: cfg.Logging.Source,
		File:      cfg.Logging.File,
	})
	log.L().Debug("starting", "version", Version, "built", BuildTime, "commit", GitCommit)

	srv := server.New(cfg)
	if err := srv.Run(); err != nil {
		log.L().Error("server error", "err", err)
		os.Exit(1)
	}
}
