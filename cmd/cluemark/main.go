// Package main is the entry point for the cluemark annotator.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/dshills/cluemark/internal/app"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	opts, logLevel, logFile := parseFlags()

	logCfg := app.DefaultLoggerConfig()
	logCfg.Level = app.ParseLogLevel(logLevel)
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: opening log file: %v\n", err)
			return 1
		}
		defer f.Close()
		logCfg.Output = f
	} else {
		// stderr belongs to the terminal UI once it starts.
		logCfg.Output = io.Discard
	}
	opts.Logger = app.NewLogger(logCfg)

	application, err := app.New(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}

	if err := application.Run(); err != nil {
		if errors.Is(err, app.ErrQuit) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	return 0
}

func parseFlags() (app.Options, string, string) {
	var opts app.Options
	var logLevel, logFile string
	var showVersion bool

	flag.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	flag.BoolVar(&opts.ReadOnly, "readonly", false, "Open the puzzle read-only")
	flag.BoolVar(&opts.ReadOnly, "R", false, "Open the puzzle read-only (shorthand)")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.StringVar(&logFile, "log-file", "", "Write logs to a file")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "cluemark - cryptic crossword clue annotator\n\n")
		fmt.Fprintf(os.Stderr, "Usage: cluemark [options] <puzzle.toml>\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  cluemark puzzle.toml            Annotate a puzzle\n")
		fmt.Fprintf(os.Stderr, "  cluemark -R puzzle.toml         Browse without saving\n")
		fmt.Fprintf(os.Stderr, "  cluemark -c my.toml puzzle.toml Use an alternate config\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("cluemark %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	opts.PuzzlePath = flag.Arg(0)

	return opts, logLevel, logFile
}
