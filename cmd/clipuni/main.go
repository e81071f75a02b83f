package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"

	"github.com/wippyai/clipuni/clipboard"
	"github.com/wippyai/clipuni/codepage"
	"github.com/wippyai/clipuni/pipeline"
	"github.com/wippyai/clipuni/report"
	"github.com/wippyai/clipuni/sharedmem"
)

const defaultCodepage = 850

type options struct {
	logFile   string
	logLevel  string
	codepage  uint32
	pages     uint32
	system    bool
	parity850 bool
}

func main() {
	var (
		cpFlag    = flag.String("codepage", "", "Active codepage number or name (default $CODEPAGE, then 850)")
		logFile   = flag.String("log", "", "Write JSON logs to this file")
		logLevel  = flag.String("log-level", "info", "Log level (debug, info, warn, error)")
		system    = flag.Bool("system", false, "Mirror wide text to and from the host clipboard")
		parity850 = flag.Bool("parity850", false, "Also replace U+0131 before pasting under codepage 850")
		pages     = flag.Uint("arena-pages", sharedmem.DefaultMaxPages, "Clipboard memory limit in 64KiB pages")
		list      = flag.Bool("list", false, "List known codepages and exit")
	)
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Warning: .env: %v\n", err)
	}

	if *list {
		printCodepages(os.Stdout)
		return
	}

	cp, err := parseCodepage(*cpFlag, os.Getenv("CODEPAGE"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "Usage: clipuni [-codepage 850] [-system] [-log file]")
		fmt.Fprintln(os.Stderr, "       clipuni -list")
		fmt.Fprintln(os.Stderr, "The editor needs an interactive terminal.")
		os.Exit(1)
	}

	opts := options{
		codepage:  cp,
		logFile:   *logFile,
		logLevel:  *logLevel,
		pages:     uint32(*pages),
		system:    *system,
		parity850: *parity850,
	}
	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	ctx := context.Background()

	logger, err := newLogger(opts.logFile, opts.logLevel)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer logger.Sync()

	sharedmem.SetLogger(logger.Named("sharedmem"))
	clipboard.SetLogger(logger.Named("clipboard"))
	pipeline.SetLogger(logger.Named("pipeline"))

	arena, err := sharedmem.New(ctx, sharedmem.Config{MaxPages: opts.pages})
	if err != nil {
		return fmt.Errorf("shared memory: %w", err)
	}
	defer arena.Close(ctx)

	board := clipboard.NewBoard(arena, clipboard.NewRegistry())
	active := codepage.NewActive(opts.codepage)
	popups := &report.Recorder{}

	pc, err := pipeline.New(board, active, report.Multi(popups, report.Log(logger)), pipeline.Options{
		CorrectOnPaste: opts.parity850,
	})
	if err != nil {
		return fmt.Errorf("register format: %w", err)
	}
	defer pc.Close()

	var mirror *clipboard.Mirror
	if opts.system {
		if clipboard.HostAvailable() {
			mirror = clipboard.NewMirror(pc.WideFormat())
			board.Subscribe(mirror)
		} else {
			logger.Warn("host clipboard unavailable, -system ignored")
		}
	}

	logger.Info("editor started",
		zap.Uint32("codepage", opts.codepage),
		zap.Bool("system", mirror != nil),
		zap.Bool("parity850", opts.parity850))

	return runEditor(newEditorModel(pc, active, popups, mirror))
}

// newLogger writes JSON to path at the given level. The terminal belongs
// to the editor, so without a path logging is discarded.
func newLogger(path, level string) (*zap.Logger, error) {
	if path == "" {
		return zap.NewNop(), nil
	}
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	return cfg.Build()
}

// parseCodepage picks the codepage from the flag, then the environment,
// then the default. Values are numbers, converter names such as "IBM-850",
// or full converter specs such as "IBM-850@map=cdra,path=no".
func parseCodepage(flagValue, envValue string) (uint32, error) {
	for _, v := range []string{flagValue, envValue} {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if n, err := strconv.ParseUint(v, 10, 32); err == nil {
			if n == 0 {
				return 0, fmt.Errorf("invalid codepage %q", v)
			}
			return uint32(n), nil
		}
		spec, err := codepage.ParseSpec(v)
		if err != nil {
			return 0, fmt.Errorf("invalid codepage %q: %w", v, err)
		}
		if (spec.Map != "" && spec.Map != codepage.MapCDRA) || (spec.Path != "" && spec.Path != codepage.PathNo) {
			return 0, fmt.Errorf("codepage %q: only map=%s,path=%s routing is supported", v, codepage.MapCDRA, codepage.PathNo)
		}
		if info, ok := codepage.ByName(spec.Name); ok {
			return info.ID, nil
		}
		return 0, fmt.Errorf("unknown codepage %q", v)
	}
	return defaultCodepage, nil
}

func printCodepages(w io.Writer) {
	fmt.Fprintf(w, "%-6s %-10s %s\n", "ID", "NAME", "DESCRIPTION")
	for _, info := range codepage.Known() {
		fmt.Fprintf(w, "%-6d %-10s %s\n", info.ID, info.Name, info.Description)
	}
}
