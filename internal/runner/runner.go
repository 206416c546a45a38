// Package runner resolves the swift-format command for one document from
// the command line.
package runner

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/donaldgifford/swiftfmtenv/internal/env"
	"github.com/donaldgifford/swiftfmtenv/internal/host"
	"github.com/donaldgifford/swiftfmtenv/internal/resolver"
	"github.com/donaldgifford/swiftfmtenv/internal/settings"
)

// Exit codes.
const (
	ExitOK         = 0
	ExitSuppressed = 1
	ExitError      = 2
)

// Options configures the runner behavior.
type Options struct {
	Document     string
	SettingsPath string
	Workspaces   []string
	SearchPaths  bool
	FindConfig   bool
	ResetPath    bool
	Configure    bool
	Verbose      bool
	Stdin        io.Reader
	Stdout       io.Writer
	Stderr       io.Writer
	// Host replaces the terminal host, mainly for tests.
	Host env.Host
}

// waiter is implemented by hosts whose settings UI runs in the background.
type waiter interface {
	Wait()
}

// Run executes the requested actions and returns an exit code.
func Run(ctx context.Context, opts *Options) int {
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}

	level := slog.LevelWarn
	if opts.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(opts.Stderr, &slog.HandlerOptions{Level: level}))

	store, err := settings.Load(opts.SettingsPath)
	if err != nil {
		writeErr(opts.Stderr, "swiftfmtenv: %v\n", err)
		return ExitError
	}
	logger.Debug("loaded settings", "path", store.Path())

	h := opts.Host
	if h == nil {
		h = host.New(opts.Stdin, opts.Stderr, store.Path(), host.WithLogger(logger))
	}
	e := env.New(store, resolver.NewWorkspace(opts.Workspaces...), h, env.WithLogger(logger))

	acted := false

	if opts.ResetPath {
		acted = true
		if err := e.ResetSwiftFormatPath(); err != nil {
			writeErr(opts.Stderr, "swiftfmtenv: %v\n", err)
			return ExitError
		}
	}

	if opts.Configure {
		acted = true
		e.ConfigureSwiftFormatPath()
		if w, ok := h.(waiter); ok {
			w.Wait()
		}
	}

	if opts.SearchPaths {
		acted = true
		for _, p := range e.FormatConfigSearchPaths() {
			writeOut(opts.Stdout, p+"\n")
		}
	}

	if opts.FindConfig {
		acted = true
		path, ok := e.FindFormatConfig()
		if !ok {
			return ExitSuppressed
		}
		writeOut(opts.Stdout, path+"\n")
	}

	if opts.Document == "" {
		if acted {
			return ExitOK
		}
		writeErr(opts.Stderr, "swiftfmtenv: no document given\n")
		return ExitError
	}

	return runDocument(ctx, opts, e, logger)
}

func runDocument(ctx context.Context, opts *Options, e *env.Environment, logger *slog.Logger) int {
	path, err := filepath.Abs(opts.Document)
	if err != nil {
		writeErr(opts.Stderr, "swiftfmtenv: %v\n", err)
		return ExitError
	}
	doc := resolver.Document{Path: path}

	if !e.ShouldFormat(doc) {
		logger.InfoContext(ctx, "formatting disabled for document", "document", doc.Path)
		return ExitSuppressed
	}

	cmd, ok := e.SwiftFormatPath(doc)
	if !ok {
		logger.InfoContext(ctx, "no local swift-format build", "document", doc.Path)
		return ExitSuppressed
	}

	writeOut(opts.Stdout, strings.Join(cmd, "\n")+"\n")
	return ExitOK
}

// writeOut writes to stdout.
func writeOut(w io.Writer, s string) {
	fmt.Fprint(w, s)
}

// writeErr formats and writes to stderr.
func writeErr(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, format, args...)
}
