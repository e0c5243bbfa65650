// Command cli is the LeftOvers entry point. It scans web servers for
// residual files left behind by deployments: backups, configuration
// dumps, archives, and VCS artifacts.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/leftovers/leftovers/pkg/config"
	"github.com/leftovers/leftovers/pkg/output"
	"github.com/leftovers/leftovers/pkg/ratelimit"
	"github.com/leftovers/leftovers/pkg/result"
	"github.com/leftovers/leftovers/pkg/scanner"
	"github.com/leftovers/leftovers/pkg/transport"
	"github.com/leftovers/leftovers/pkg/ui"
)

func main() {
	cfg, err := config.ParseFlags()
	if err != nil {
		if errors.Is(err, config.ErrMissingRequired) {
			exitWithUsage(err.Error(), "leftovers -u <url> [-e sql,bak] [-o results.json]")
		}
		exitWithError("%v", err)
	}

	if cfg.ShowVersion {
		fmt.Printf("LeftOvers v%s\n", ui.Version)
		return
	}

	ui.SetSilent(cfg.Silent)
	ui.SetNoColor(cfg.NoColor)
	ui.PrintBanner()

	log := buildLogger(cfg)
	console := output.NewConsole(os.Stdout, cfg.Verbose)

	s := scanner.New(scannerConfig(cfg, log, console))
	defer s.Close()

	// Interrupts stop new probes; results gathered so far still get
	// summarized and exported.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var runErr error
	if cfg.ListFile != "" {
		runErr = s.ProcessURLList(ctx, cfg.ListFile)
	} else {
		runErr = s.ProcessURL(ctx, cfg.TargetURL)
	}
	s.Finalize()

	switch {
	case runErr == nil:
	case errors.Is(runErr, context.Canceled):
		fmt.Fprintln(os.Stderr, "\nscan interrupted, reporting partial results")
	default:
		exitWithError("scan failed: %v", runErr)
	}

	results := s.Results()
	if !cfg.Silent {
		console.Summary(results, s.Stats())
	}

	if cfg.OutputFile != "" && !cfg.OutputPerURL {
		if err := exportResults(results, cfg.OutputFile); err != nil {
			exitWithError("export failed: %v", err)
		}
	}
}

// scannerConfig maps the parsed CLI configuration onto the scan scheduler.
func scannerConfig(cfg *config.Config, log *slog.Logger, console *output.Console) *scanner.Config {
	var gate *ratelimit.Gate
	switch {
	case cfg.RateLimit > 0:
		gate = ratelimit.NewPerSecond(cfg.RateLimit)
	case cfg.Delay > 0:
		gate = ratelimit.NewWithDelay(cfg.Delay)
	}

	sc := &scanner.Config{
		Extensions:         cfg.Extensions,
		TestIndex:          cfg.TestIndex,
		Threads:            cfg.Threads,
		BruteForce:         cfg.BruteForce,
		BruteRecursive:     cfg.BruteRecursive,
		DomainWordlist:     cfg.DomainWordlist,
		StatusFilter:       cfg.StatusFilter,
		MinSize:            cfg.MinSize,
		MaxSize:            cfg.MaxSize,
		IgnoreContentTypes: cfg.IgnoreContentTypes,
		DisableFPDetection: cfg.DisableFPDetection,
		Transport: &transport.Config{
			Timeout:         cfg.Timeout,
			VerifySSL:       cfg.VerifySSL,
			Headers:         cfg.Headers,
			RotateUserAgent: cfg.RotateAgents,
			MaxRetries:      cfg.Retries,
			UseCache:        cfg.UseCache,
			CacheSize:       cfg.CacheSize,
			Gate:            gate,
			Logger:          log,
		},
		OnResult: console.Result,
		OnGroup:  console.GroupHeader,
		Logger:   log,
	}

	if cfg.OutputPerURL && cfg.OutputFile != "" {
		base := cfg.OutputFile
		sc.OnTargetDone = func(targetURL string, results []*result.ScanResult) {
			if len(results) == 0 {
				return
			}
			path := output.FileNameForURL(base, targetURL)
			if err := output.Export(results, path); err != nil {
				log.Warn("per-target export failed", "target", targetURL, "err", err)
			}
		}
	}
	return sc
}

func exportResults(results []*result.ScanResult, path string) error {
	if len(results) == 0 {
		fmt.Fprintln(os.Stderr, "no results to export")
		return nil
	}
	if err := output.Export(results, path); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "results saved to %s\n", path)
	return nil
}

// buildLogger wires verbosity into a stderr text logger: -v lowers the
// level to debug, -s raises it to error.
func buildLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	if cfg.Silent {
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// usage replaces the default flag dump with a short grouped reference.
func init() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "LeftOvers v%s - residual file scanner\n\n", ui.Version)
		fmt.Fprintln(os.Stderr, "Usage: leftovers -u <url> [options]")
		fmt.Fprintln(os.Stderr, "       leftovers -l <file> [options]")
		fmt.Fprintln(os.Stderr)
		flag.PrintDefaults()
	}
}
