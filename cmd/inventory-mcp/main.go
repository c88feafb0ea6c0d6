package main

import (
	"fmt"
	"log"
	"os"

	"github.com/ironsheep/inventory-scan-mcp/internal/config"
	"github.com/ironsheep/inventory-scan-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	configPath := ""

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("inventory-scan-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("inventory-scan-mcp - MCP server for game inventory screenshot scanning")
			fmt.Println()
			fmt.Println("Usage: inventory-scan-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v        Print version information")
			fmt.Println("  --help, -h           Print this help message")
			fmt.Println("  --config <path>      Load tuning config from a JSON file")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  INVENTORY_MCP_LOG_LEVEL=debug    Enable debug logging")
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
			return
		case "--config":
			if len(os.Args) < 3 {
				fmt.Fprintln(os.Stderr, "--config requires a file path")
				os.Exit(2)
			}
			configPath = os.Args[2]
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.LoadFromFile(configPath)
		if err != nil {
			log.Fatalf("Config error: %v", err)
		}
		cfg = loaded
	}

	if os.Getenv("INVENTORY_MCP_LOG_LEVEL") == "debug" {
		cfg.Server.LogLevel = "debug"
	}
	if cfg.Server.LogLevel == "debug" {
		log.Printf("Inventory Scan MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	srv, err := server.New(cfg)
	if err != nil {
		log.Fatalf("Startup error: %v", err)
	}
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
