package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/use-agent/pricescout/browser"
	"github.com/use-agent/pricescout/config"
	"github.com/use-agent/pricescout/extractor"
	"github.com/use-agent/pricescout/models"
	"github.com/use-agent/pricescout/runner"
	"github.com/use-agent/pricescout/site"
)

const usage = `usage: pricescout [--no-headless] [--config file.yaml] [--html saved.html] <url>

Extracts title, price, original price, discount and image from an Amazon,
PcComponentes or El Corte Inglés product page and prints them as JSON.
Flags may appear before or after the URL.
`

// options is the parsed command line.
type options struct {
	url        string
	noHeadless bool
	configPath string
	htmlPath   string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one invocation and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseArgs(args)
	if err != nil {
		fmt.Fprint(stderr, usage)
		return failEarly(stdout, opts.url, err.Error())
	}
	if opts.url == "" {
		fmt.Fprint(stderr, usage)
		return failEarly(stdout, "", "URL not provided")
	}

	// ── 1. Load configuration ───────────────────────────────────────
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		initLogger(config.Default().Log, stderr)
		slog.Error("failed to load configuration", "error", err)
		return failEarly(stdout, opts.url, "failed to load configuration: "+err.Error())
	}

	// ── 2. Initialise structured logging ────────────────────────────
	initLogger(cfg.Log, stderr)

	// ── 3. Cancel the run on SIGINT/SIGTERM ─────────────────────────
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ── 4. Wire the browser manager and the extractors ──────────────
	mgr := browser.NewManager(cfg.Browser, cfg.Timing.NavigationTimeout)
	acquire := func(ctx context.Context, headless bool) (runner.Session, error) {
		s, err := mgr.Acquire(ctx, headless)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	r := runner.New(acquire, extractor.NewRegistry(cfg.Timing))

	// ── 5. Run and emit ─────────────────────────────────────────────
	result := r.Run(ctx, models.ExtractionRequest{
		URL:          opts.url,
		Headless:     !opts.noHeadless,
		SnapshotPath: opts.htmlPath,
	})
	if err := emit(stdout, result); err != nil {
		slog.Error("failed to write result", "error", err)
		return 1
	}
	return 0
}

// parseArgs accepts flags on either side of the URL. The first positional
// argument is the URL; extra positionals are rejected.
func parseArgs(args []string) (options, error) {
	var opts options

	fs := flag.NewFlagSet("pricescout", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.BoolVar(&opts.noHeadless, "no-headless", false, "show the browser window")
	fs.StringVar(&opts.configPath, "config", "", "YAML configuration file")
	fs.StringVar(&opts.htmlPath, "html", "", "extract from a saved HTML file instead of launching a browser")

	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return opts, err
		}
		args = fs.Args()
		if len(args) == 0 {
			break
		}
		positional = append(positional, args[0])
		args = args[1:]
	}

	switch len(positional) {
	case 0:
	case 1:
		opts.url = positional[0]
	default:
		opts.url = positional[0]
		return opts, errors.New("unexpected arguments after URL")
	}
	return opts, nil
}

// failEarly prints a failed result for errors raised before a run starts.
func failEarly(w io.Writer, url, msg string) int {
	result := models.NewResult(site.Classify(url))
	result.Fail(msg)
	result.Finalize(true)
	_ = emit(w, result)
	return 1
}

// emit writes result as a single JSON line.
func emit(w io.Writer, result models.ExtractionResult) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc.Encode(result)
}

// initLogger configures slog based on the LogConfig. Logs go to w so stdout
// carries only the result.
func initLogger(cfg config.LogConfig, w io.Writer) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	slog.SetDefault(slog.New(handler))
}
