package main

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/mkyawt/nutrilog/internal/assistant"
	"github.com/mkyawt/nutrilog/internal/catalog"
	"github.com/mkyawt/nutrilog/internal/config"
	"github.com/mkyawt/nutrilog/internal/db"
	"github.com/mkyawt/nutrilog/internal/mcp"
	"github.com/mkyawt/nutrilog/internal/profile"
	"github.com/mkyawt/nutrilog/internal/recommend"
)

// Version is set via -ldflags at build time.
var Version = "dev"

// deps bundles the long-lived collaborators every surface shares.
type deps struct {
	catalog   *catalog.Catalog
	users     *profile.Store
	rec       *recommend.Recommender
	assistant *assistant.Assistant
	cfg       *config.Config
}

// cliCommands contains known CLI subcommands.
var cliCommands = map[string]bool{
	"search": true, "foods": true, "recommend": true, "add-food": true,
	"clean": true, "log": true, "remove": true, "clear": true,
	"summary": true, "profile": true, "calculate": true, "chat": true,
	"web": true, "help": true,
}

// isCLIMode determines if we should run CLI vs MCP server.
func isCLIMode() bool {
	if len(os.Args) < 2 {
		return false // No args → MCP server
	}
	arg := os.Args[1]
	if cliCommands[arg] {
		return true
	}
	if arg == "--help" || arg == "-h" || arg == "--version" || arg == "-v" {
		return true
	}
	return false // Default → MCP server
}

// isHelpOrVersion returns true if the user is requesting help or version info.
func isHelpOrVersion() bool {
	if len(os.Args) < 2 {
		return false
	}
	arg := os.Args[1]
	return arg == "--help" || arg == "-h" || arg == "--version" || arg == "-v" || arg == "help"
}

// isTerminal returns true if stdin is a terminal (not piped).
func isTerminal() bool {
	stat, _ := os.Stdin.Stat()
	return (stat.Mode() & os.ModeCharDevice) != 0
}

// printBanner displays a friendly banner when run interactively without args.
func printBanner() {
	fmt.Println(`
   _  _      _       _ _
  | \| |_  _| |_ _ _(_) |___  __ _
  | .' | || |  _| '_| | / _ \/ _' |
  |_|\_|\_,_|\__|_| |_|_\___/\__, |
                             |___/
  Food and nutrition tracker

  Usage: nutrilog <command> [options]
         nutrilog --help

  MCP server mode requires piped input.`)
}

// openDeps initializes the shared state under baseDir.
func openDeps(baseDir string) (*deps, func(), error) {
	database, err := db.Init(baseDir)
	if err != nil {
		return nil, nil, fmt.Errorf("initialize database: %w", err)
	}

	cfg, err := config.Load(baseDir)
	if err != nil {
		database.Close()
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	db.ConfigurePool(database, cfg)

	catalogPath := cfg.ResolveCatalogPath(baseDir)
	if err := catalog.EnsureDefault(catalogPath); err != nil {
		database.Close()
		return nil, nil, fmt.Errorf("seed catalog: %w", err)
	}
	cat, err := catalog.Load(catalogPath)
	if err != nil {
		database.Close()
		return nil, nil, fmt.Errorf("load catalog: %w", err)
	}

	users, err := profile.Open(database)
	if err != nil {
		database.Close()
		return nil, nil, fmt.Errorf("open profile store: %w", err)
	}

	rec := recommend.New(cat, rand.NewSource(time.Now().UnixNano()))
	return &deps{
		catalog:   cat,
		users:     users,
		rec:       rec,
		assistant: assistant.New(cat, users, rec),
		cfg:       cfg,
	}, func() { database.Close() }, nil
}

func main() {
	// No args + interactive terminal → show banner and exit
	if len(os.Args) < 2 && isTerminal() {
		printBanner()
		return
	}

	// Handle --help/--version before any state init
	if isHelpOrVersion() {
		app := newCLIApp(nil)
		if err := app.Run(os.Args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: could not determine home directory: %v\n", err)
		os.Exit(1)
	}

	baseDir := filepath.Join(homeDir, ".nutrilog")

	d, closeDeps, err := openDeps(baseDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer closeDeps()

	// CLI mode: known subcommand
	if isCLIMode() {
		app := newCLIApp(d)
		if err := app.Run(os.Args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Unknown argument + terminal → show error (don't start MCP server)
	if len(os.Args) >= 2 && isTerminal() {
		fmt.Fprintf(os.Stderr, "error: unknown command %q\n", os.Args[1])
		fmt.Fprintf(os.Stderr, "Run 'nutrilog --help' for usage.\n")
		os.Exit(1)
	}

	// MCP server mode (default)
	if err := mcp.Run(d.catalog, d.users, d.rec, d.assistant, d.cfg, Version); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
