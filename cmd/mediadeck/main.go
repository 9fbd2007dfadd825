package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vanderheijden86/mediadeck/pkg/analytics"
	"github.com/vanderheijden86/mediadeck/pkg/config"
	"github.com/vanderheijden86/mediadeck/pkg/debug"
	"github.com/vanderheijden86/mediadeck/pkg/library"
	"github.com/vanderheijden86/mediadeck/pkg/restrict"
	"github.com/vanderheijden86/mediadeck/pkg/ui"
	"github.com/vanderheijden86/mediadeck/pkg/version"
)

func main() {
	libraryPath := flag.String("library", "", "Path to the catalog database (overrides config)")
	importPath := flag.String("import", "", "Import a JSON catalog into the library and exit")
	driving := flag.Bool("driving", false, "Start in driving mode")
	analyticsFlag := flag.Bool("analytics", false, "Enable the browse-event log")
	noWatch := flag.Bool("no-watch", false, "Disable live catalog reload")
	help := flag.Bool("help", false, "Show help")
	versionFlag := flag.Bool("version", false, "Show version")
	flag.Parse()

	if *help {
		fmt.Println("Usage: mediadeck [options]")
		fmt.Println("\nA terminal browser for local media catalogs.")
		flag.PrintDefaults()
		os.Exit(0)
	}

	if *versionFlag {
		fmt.Printf("mediadeck %s\n", version.Version)
		os.Exit(0)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
	}
	if *libraryPath != "" {
		cfg.Library = *libraryPath
	}
	if cfg.Library == "" {
		cfg.Library = filepath.Join(config.StateDir(), "catalog.db")
	}

	if *importPath != "" {
		n, err := library.Import(*importPath, cfg.Library)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Import failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Imported %d items into %s\n", n, cfg.Library)
		os.Exit(0)
	}

	lib, err := library.Open(cfg.Library)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening library: %v\n", err)
		fmt.Fprintln(os.Stderr, "Import a catalog first with 'mediadeck --import catalog.json'.")
		os.Exit(1)
	}
	defer lib.Close()

	var watcher *library.Watcher
	if !*noWatch {
		watcher, err = library.NewWatcher(cfg.Library)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: live reload unavailable: %v\n", err)
		} else if err := watcher.Start(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: live reload unavailable: %v\n", err)
			watcher = nil
		}
	}

	var sink analytics.Sink = analytics.Nop{}
	if cfg.Analytics.Enabled || *analyticsFlag {
		path := cfg.Analytics.Path
		if path == "" {
			path = filepath.Join(config.StateDir(), "events.jsonl")
		}
		fs, err := analytics.NewFileSink(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: analytics disabled: %v\n", err)
		} else {
			sink = fs
		}
	}

	limiter := restrict.NewLimiter(cfg.Restrictions.MaxItems)
	if cfg.Restrictions.Driving || *driving {
		limiter.SetMode(restrict.Driving)
	}

	model := ui.NewModel(lib, watcher, ui.Options{
		Sink:       sink,
		Limiter:    limiter,
		Accent:     cfg.UI.Accent,
		DefaultTab: cfg.UI.DefaultTab,
	})

	debug.Log("main: starting with library %s", cfg.Library)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}
