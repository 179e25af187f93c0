// Package main is the entry point for the Keyline editor.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"

	"github.com/dshills/keyline/internal/app"
	"github.com/dshills/keyline/internal/config"
	"github.com/dshills/keyline/internal/logging"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// options holds the parsed command line.
type options struct {
	configPath string
	logLevel   string
	logFile    string
	script     string
	output     string
	force      bool
	file       string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	headless := opts.script != "" || !term.IsTerminal(int(os.Stdin.Fd()))

	logger, closer, err := openLogger(cfg, headless)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if closer != nil {
		defer closer.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if headless {
		if opts.script == "" {
			fmt.Fprintln(os.Stderr, "Error: stdin is not a terminal and no -script was given")
			return 2
		}
		if err := runScript(ctx, cfg, opts, logger, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	screen, err := tcell.NewScreen()
	if err == nil {
		err = screen.Init()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to open terminal: %v\n", err)
		return 1
	}

	application, err := app.New(app.Options{Path: opts.file, Config: cfg, Logger: logger, Screen: screen})
	if err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	if cfg.Path != "" {
		if err := application.WatchConfig(ctx, cfg.Path); err != nil {
			logger.Warn("not watching %s: %v", cfg.Path, err)
		}
	}
	if err := application.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags() options {
	var opts options
	var showVersion bool

	flag.StringVar(&opts.configPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.StringVar(&opts.logFile, "log-file", "", "Append logs to this file")
	flag.StringVar(&opts.script, "script", "", "Run a Lua script against the file and exit")
	flag.StringVar(&opts.output, "o", "", "Write the scripted result here instead of the input file")
	flag.BoolVar(&opts.force, "force", false, "Replace an existing output file")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Keyline - a small terminal text editor\n\n")
		fmt.Fprintf(os.Stderr, "Usage: keyline [options] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  keyline notes.txt                      Edit a file\n")
		fmt.Fprintf(os.Stderr, "  keyline -script fix.lua notes.txt      Apply a script and save\n")
		fmt.Fprintf(os.Stderr, "  keyline -script gen.lua -o out.txt     Write a script's output to a new file\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("Keyline %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	if flag.NArg() > 1 {
		fmt.Fprintln(os.Stderr, "Error: at most one file may be given")
		os.Exit(2)
	}
	opts.file = flag.Arg(0)
	return opts
}

// loadConfig resolves settings and applies flag overrides.
func loadConfig(opts options) (*config.Config, error) {
	path := opts.configPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if opts.logLevel != "" {
		level, ok := logging.ParseLevel(opts.logLevel)
		if !ok {
			return nil, fmt.Errorf("invalid log level %q (must be debug, info, warn, or error)", opts.logLevel)
		}
		cfg.Logging.Level = level
	}
	if opts.logFile != "" {
		cfg.Logging.File = opts.logFile
	}
	return cfg, nil
}

// openLogger builds the process logger. The terminal belongs to the
// editor, so interactive sessions only log to a file.
func openLogger(cfg *config.Config, headless bool) (*logging.Logger, io.Closer, error) {
	lc := logging.DefaultConfig()
	lc.Level = cfg.Logging.Level

	if cfg.Logging.File != "" {
		return logging.OpenFile(cfg.Logging.File, lc)
	}
	if headless {
		return logging.New(lc), nil, nil
	}
	return logging.Null(), nil, nil
}
