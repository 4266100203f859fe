// Command bind registers the properties described by a bindings manifest on
// the global object of an in-memory runtime and reports the result.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/hostbind/memrt"
	"github.com/wippyai/hostbind/wasmfn"
)

func main() {
	var (
		manifest    = flag.String("manifest", "", "Path to bindings manifest (TOML)")
		interactive = flag.Bool("i", false, "Interactive property inspector")
		verbose     = flag.Bool("v", false, "Verbose logging")
	)
	flag.Parse()

	if *manifest == "" {
		fmt.Fprintln(os.Stderr, "Usage: bind -manifest <bindings.toml> [-v]")
		fmt.Fprintln(os.Stderr, "       bind -manifest <bindings.toml> -i  (interactive mode)")
		os.Exit(1)
	}

	log := newLogger(*verbose)
	defer func() { _ = log.Sync() }()
	memrt.SetLogger(log)
	wasmfn.SetLogger(log)

	if *interactive && !term.IsTerminal(int(os.Stdout.Fd())) {
		log.Warn("stdout is not a terminal, ignoring -i")
		*interactive = false
	}

	if err := run(context.Background(), log, *manifest, *interactive, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newLogger(verbose bool) *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	if verbose {
		cfg = zap.NewDevelopmentConfig()
	}
	log, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return log
}

func run(ctx context.Context, log *zap.Logger, manifest string, interactive bool, w io.Writer) error {
	s, err := open(ctx, log, manifest)
	if err != nil {
		return err
	}
	defer s.Close()

	if interactive {
		return runInteractive(s)
	}

	s.Report(w)
	return s.Err()
}
