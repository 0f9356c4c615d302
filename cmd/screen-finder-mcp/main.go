package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/ironsheep/screen-finder-mcp/internal/config"
	"github.com/ironsheep/screen-finder-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("screen-finder-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("screen-finder-mcp - MCP server that locates monitors in photographs")
			fmt.Println()
			fmt.Println("Usage: screen-finder-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println("  --print-config   Print the effective configuration as YAML")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  SCREEN_MCP_LOG_LEVEL=debug     Enable debug logging, including per-candidate detection output")
			fmt.Println("  SCREEN_MCP_CONFIG=<path>       YAML file with detection thresholds and edge settings (reloaded on change)")
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
			return
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	if len(os.Args) > 1 && os.Args[1] == "--print-config" {
		if err := cfg.Encode(os.Stdout); err != nil {
			log.Fatalf("Failed to print configuration: %v", err)
		}
		return
	}

	opts := []server.Option{server.WithConfig(cfg)}
	if config.DebugEnabled() {
		log.Printf("Screen Finder MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
		if path := os.Getenv(config.EnvConfigPath); path != "" {
			log.Printf("Configuration loaded from %s", path)
		}
		opts = append(opts, server.WithLogger(log.New(os.Stderr, "detect: ", log.Ldate|log.Ltime)))
	}

	srv := server.New(opts...)

	if path := os.Getenv(config.EnvConfigPath); path != "" {
		go func() {
			if err := config.Watch(context.Background(), path, log.Default(), srv.SetConfig); err != nil {
				log.Printf("Config watch stopped: %v", err)
			}
		}()
	}

	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
