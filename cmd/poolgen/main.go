// Command poolgen generates the constant pool package from a literals
// manifest.
//
// It validates the manifest, checks that the bytecode compiles, writes the
// Go source with one id constant per literal, copies the bytecode next to
// it for embedding and optionally writes a CBOR snapshot of the pool.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tetratelabs/wazero"
	"go.uber.org/zap"

	"github.com/wippyai/hostbind/config"
	"github.com/wippyai/hostbind/errors"
	"github.com/wippyai/hostbind/pool"
)

const embedName = "bytecode.wasm"

func main() {
	var (
		manifest = flag.String("manifest", "literals.toml", "Path to the literals manifest")
		out      = flag.String("out", "snapshot_gen.go", "Generated Go source file")
		pkg      = flag.String("pkg", "snapshot", "Package name of the generated file")
		cborOut  = flag.String("cbor", "", "Also write a CBOR pool snapshot to this path")
		verbose  = flag.Bool("v", false, "Verbose logging")
	)
	flag.Parse()

	log := newLogger(*verbose)
	defer func() { _ = log.Sync() }()

	if err := run(context.Background(), log, *manifest, *out, *pkg, *cborOut); err != nil {
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

func run(ctx context.Context, log *zap.Logger, manifest, out, pkg, cborOut string) error {
	lits, err := config.LoadLiterals(manifest)
	if err != nil {
		return err
	}

	code, err := os.ReadFile(lits.BytecodePath())
	if err != nil {
		return errors.Load("read bytecode", err)
	}

	p, err := pool.New(lits.StringValues(), lits.NumberValues(), code)
	if err != nil {
		return err
	}
	if err := validate(ctx, p); err != nil {
		return err
	}
	log.Debug("bytecode compiled",
		zap.String("path", lits.BytecodePath()),
		zap.Int("size", len(code)),
	)

	src, err := generate(pkg, filepath.Base(manifest), embedName, lits)
	if err != nil {
		return err
	}
	if err := os.WriteFile(out, src, 0o644); err != nil {
		return errors.Wrap(errors.PhaseGenerate, errors.KindIO, err, "write "+out)
	}
	log.Info("wrote pool source",
		zap.String("out", out),
		zap.Int("strings", p.Strings()),
		zap.Int("numbers", p.Numbers()),
	)

	if err := copyBytecode(lits.BytecodePath(), filepath.Join(filepath.Dir(out), embedName), code); err != nil {
		return err
	}

	if cborOut != "" {
		data, err := pool.Marshal(p)
		if err != nil {
			return err
		}
		if err := os.WriteFile(cborOut, data, 0o644); err != nil {
			return errors.Wrap(errors.PhaseGenerate, errors.KindIO, err, "write "+cborOut)
		}
		log.Info("wrote pool snapshot", zap.String("out", cborOut), zap.Int("size", len(data)))
	}
	return nil
}

// validate compiles the bytecode once so a broken blob fails generation
// rather than first use.
func validate(ctx context.Context, p *pool.Pool) error {
	r := wazero.NewRuntime(ctx)
	defer r.Close(ctx)

	compiled, err := p.Compile(ctx, r)
	if err != nil {
		return err
	}
	return compiled.Close(ctx)
}

func copyBytecode(src, dst string, code []byte) error {
	srcAbs, err := filepath.Abs(src)
	if err != nil {
		return errors.Load("resolve "+src, err)
	}
	dstAbs, err := filepath.Abs(dst)
	if err != nil {
		return errors.Load("resolve "+dst, err)
	}
	if srcAbs == dstAbs {
		return nil
	}
	if err := os.WriteFile(dst, code, 0o644); err != nil {
		return errors.Wrap(errors.PhaseGenerate, errors.KindIO, err, "write "+dst)
	}
	return nil
}
