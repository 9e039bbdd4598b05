package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/rskill/rskill/internal/cleaner"
	"github.com/rskill/rskill/internal/config"
	"github.com/rskill/rskill/internal/listing"
	"github.com/rskill/rskill/internal/scan"
	"github.com/rskill/rskill/internal/ui"
)

var (
	configPath    = flag.String("config", "", "path to config file")
	directory     = flag.String("directory", "", "directory to start searching from (default \".\")")
	full          = flag.Bool("full", false, "search from the user's home directory, with a deeper walk")
	target        = flag.String("target", "", "build-output directory name to look for (default \"target\")")
	sortKey       = flag.String("sort", "", "sort results by size, path or lastmod")
	gb            = flag.Bool("gb", false, "show sizes in gigabytes instead of megabytes")
	exclude       = flag.String("exclude", "", "exclude directories from the search (comma-separated substrings)")
	excludeHidden = flag.Bool("exclude-hidden", false, "exclude hidden directories")
	hideErrors    = flag.Bool("hide-errors", false, "silence recoverable scan errors")
	deleteAll     = flag.Bool("delete-all", false, "delete every found build directory without the interactive UI")
	dryRun        = flag.Bool("dry-run", false, "don't actually delete anything")
	listOnly      = flag.Bool("list-only", false, "print the project table and exit")
	includeCache  = flag.Bool("include-cache", false, "also measure the shared registry and git caches")
	folderMode    = flag.Bool("folders", false, "match bare directory names instead of project manifests")
	debug         = flag.Bool("debug", false, "enable debug logging")
)

func main() {
	flag.Parse()

	logger := newLogger()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	applyFlags(cfg)

	scanOpts := scan.Options{
		Root:               config.ExpandPath(cfg.Scan.Root),
		TargetName:         cfg.Scan.Target,
		Excluded:           cfg.Scan.Exclude,
		ExcludeHidden:      cfg.Scan.ExcludeHidden,
		Deep:               *full,
		IncludeGlobalCache: cfg.Scan.IncludeCache,
		Sort:               scan.SortKey(cfg.Scan.Sort),
	}
	if *full {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to resolve home directory: %v\n", err)
			os.Exit(1)
		}
		scanOpts.Root = home
	}

	interactive := term.IsTerminal(int(os.Stdout.Fd())) && !*listOnly && !*deleteAll

	switch {
	case interactive:
		runInteractive(scanOpts, cfg, logger)
	case *deleteAll:
		runDeleteAll(scanOpts, cfg, logger)
	default:
		runList(scanOpts, cfg, logger)
	}
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	if *hideErrors {
		level = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
	return logger
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}

// applyFlags lets explicit command-line flags override the config file.
func applyFlags(cfg *config.Config) {
	if *directory != "" {
		cfg.Scan.Root = *directory
	}
	if *target != "" {
		cfg.Scan.Target = *target
	}
	if *sortKey != "" {
		cfg.Scan.Sort = *sortKey
	}
	if *exclude != "" {
		for _, name := range strings.Split(*exclude, ",") {
			if name = strings.TrimSpace(name); name != "" {
				cfg.Scan.Exclude = append(cfg.Scan.Exclude, name)
			}
		}
	}
	if *excludeHidden {
		cfg.Scan.ExcludeHidden = true
	}
	if *includeCache {
		cfg.Scan.IncludeCache = true
	}
	if *gb {
		cfg.UI.GB = true
	}
	if *hideErrors {
		cfg.UI.HideErrors = true
	}
	_ = cfg.Validate()
}

func runInteractive(scanOpts scan.Options, cfg *config.Config, logger *slog.Logger) {
	model := ui.New(ui.Options{
		Scan:          scanOpts,
		FolderMode:    *folderMode,
		FolderIgnored: scan.SystemIgnoredFolders(),
		DryRun:        *dryRun,
		GB:            cfg.UI.GB,
		Logger:        logger,
	})
	defer model.Stop()

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running application: %v\n", err)
		os.Exit(1)
	}
}

func runList(scanOpts scan.Options, cfg *config.Config, logger *slog.Logger) {
	if *folderMode {
		scanner := scan.NewFolderScanner(scanOpts.Root, scanOpts.TargetName, scan.SystemIgnoredFolders(), logger)
		folders, err := scanner.FindFolders()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Scan failed: %v\n", err)
			os.Exit(1)
		}
		listing.PrintFolders(os.Stdout, folders, cfg.UI.GB)
		return
	}

	result, err := scan.NewProjectScanner(scanOpts, logger).Scan()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Scan failed: %v\n", err)
		os.Exit(1)
	}
	listing.PrintProjects(os.Stdout, result, scanOpts.Root, cfg.UI.GB)
}

func runDeleteAll(scanOpts scan.Options, cfg *config.Config, logger *slog.Logger) {
	var targets []cleaner.Target

	if *folderMode {
		scanner := scan.NewFolderScanner(scanOpts.Root, scanOpts.TargetName, scan.SystemIgnoredFolders(), logger)
		folders, err := scanner.FindFolders()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Scan failed: %v\n", err)
			os.Exit(1)
		}
		for _, f := range folders {
			targets = append(targets, f)
		}
	} else {
		result, err := scan.NewProjectScanner(scanOpts, logger).Scan()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Scan failed: %v\n", err)
			os.Exit(1)
		}
		for _, p := range result.Projects {
			targets = append(targets, p)
		}
	}

	ctrl := cleaner.New(targets, *dryRun, logger)
	batch := ctrl.DeleteAll()
	listing.PrintBatch(os.Stdout, batch, cfg.UI.GB, *dryRun)
	if batch.Failed > 0 {
		os.Exit(1)
	}
}
