// Command counter loads a counter module and drives its exports.
//
// Without -wasm it runs the built-in reference module.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/wasm-counter/host"
	"github.com/wippyai/wasm-counter/internal/wasmgen"
)

const builtinName = "<built-in>"

type options struct {
	wasmFile    string
	emit        string
	increments  int
	list        bool
	interactive bool
}

func main() {
	var (
		wasmFile    = flag.String("wasm", "", "Path to counter module (default: built-in reference module)")
		increments  = flag.Int("n", 0, "Number of increments before reading the counter")
		emit        = flag.String("emit", "", "Write the reference module to this path and exit")
		list        = flag.Bool("list", false, "List exported functions and exit")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
		verbose     = flag.Bool("v", false, "Log runtime events to stderr")
	)
	flag.Parse()

	logger := zap.NewNop()
	if *verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		logger = l
	}
	defer logger.Sync()

	opts := options{
		wasmFile:    *wasmFile,
		emit:        *emit,
		increments:  *increments,
		list:        *list,
		interactive: *interactive,
	}

	if opts.interactive && !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "Error: interactive mode needs a terminal")
		os.Exit(1)
	}

	if err := run(context.Background(), os.Stdout, logger, opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, out io.Writer, logger *zap.Logger, opts options) error {
	if opts.emit != "" {
		if err := os.WriteFile(opts.emit, wasmgen.Counter(), 0o644); err != nil {
			return fmt.Errorf("write module: %w", err)
		}
		fmt.Fprintf(out, "Wrote %s\n", opts.emit)
		return nil
	}
	if opts.increments < 0 {
		return fmt.Errorf("-n must not be negative, got %d", opts.increments)
	}

	data, name, err := readModule(opts.wasmFile)
	if err != nil {
		return err
	}

	rt, err := host.New(ctx, &host.Config{Logger: logger})
	if err != nil {
		return fmt.Errorf("create runtime: %w", err)
	}
	defer rt.Close(ctx)

	mod, err := rt.Load(ctx, data)
	if err != nil {
		return fmt.Errorf("load %s: %w", name, err)
	}

	if opts.list {
		fmt.Fprintf(out, "Module: %s\n", name)
		fmt.Fprintf(out, "Exports: %s\n", strings.Join(mod.Exports(), ", "))
		fmt.Fprintf(out, "\nCounter interface:\n")
		for _, fn := range rt.Interface() {
			fmt.Fprintf(out, "  %s  (export %s)\n", fn, fn.Export())
		}
		return nil
	}

	inst, err := mod.Instantiate(ctx)
	if err != nil {
		return fmt.Errorf("instantiate: %w", err)
	}
	defer inst.Close(ctx)

	if opts.interactive {
		return runInteractive(ctx, name, inst)
	}

	for i := 0; i < opts.increments; i++ {
		if err := inst.Increment(ctx); err != nil {
			return fmt.Errorf("increment: %w", err)
		}
	}

	v, err := inst.GetCounter(ctx)
	if err != nil {
		return fmt.Errorf("get_counter: %w", err)
	}
	fmt.Fprintf(out, "get_counter() = %d\n", v)
	return nil
}

func readModule(path string) ([]byte, string, error) {
	if path == "" {
		return wasmgen.Counter(), builtinName, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("read file: %w", err)
	}
	return data, path, nil
}
