// Package host implements env.Host for a process running in a terminal.
package host

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
	"sync"

	"github.com/donaldgifford/swiftfmtenv/internal/env"
)

// ErrNoOpener is returned when no program for opening URLs is installed.
var ErrNoOpener = errors.New("no URL opener found")

// runFunc runs a program to completion.
type runFunc func(ctx context.Context, name string, args ...string) error

// Terminal shows messages on a writer, reads choices from a reader, and
// hands URLs and the settings file to external programs.
type Terminal struct {
	in           *bufio.Reader
	out          io.Writer
	settingsPath string
	logger       *slog.Logger

	goos     string
	lookPath func(file string) (string, error)
	getenv   func(key string) string
	run      runFunc

	mu      sync.Mutex
	pending sync.WaitGroup

	readOnce sync.Once
	lines    chan readResult
}

// readResult is one line read from the input, or the error that ended it.
type readResult struct {
	line string
	err  error
}

// Option configures a Terminal.
type Option func(*Terminal)

// WithLogger sets the logger for background failures.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Terminal) {
		t.logger = logger
	}
}

// New returns a Terminal prompting on out and reading answers from in.
// settingsPath is the file opened by OpenSettingsUI.
func New(in io.Reader, out io.Writer, settingsPath string, opts ...Option) *Terminal {
	t := &Terminal{
		in:           bufio.NewReader(in),
		out:          out,
		settingsPath: settingsPath,
		logger:       slog.Default(),
		goos:         runtime.GOOS,
		lookPath:     exec.LookPath,
		getenv:       os.Getenv,
		run:          runCommand,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// OpenURL implements env.Host using the platform's URL opener.
func (t *Terminal) OpenURL(ctx context.Context, url string) error {
	name, args := openerCommand(t.goos)
	if _, err := t.lookPath(name); err != nil {
		return fmt.Errorf("%w: %s", ErrNoOpener, name)
	}
	if err := t.run(ctx, name, append(args, url)...); err != nil {
		return fmt.Errorf("opening %s: %w", url, err)
	}
	return nil
}

// ShowMessage implements env.Host. Actions are listed by number; the user
// answers with a number or an action label. An empty answer or end of
// input dismisses the message.
func (t *Terminal) ShowMessage(ctx context.Context, kind env.MessageKind, message string, actions ...string) (string, bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	fmt.Fprintf(t.out, "%s: %s\n", kind, message)
	if len(actions) == 0 {
		return "", false, nil
	}
	for i, action := range actions {
		fmt.Fprintf(t.out, "  [%d] %s\n", i+1, action)
	}
	fmt.Fprint(t.out, "> ")

	line, err := t.readLine(ctx)
	if err != nil {
		return "", false, err
	}
	return matchAction(line, actions)
}

// OpenSettingsUI implements env.Host by launching $VISUAL or $EDITOR on
// the settings file. It does not wait; use Wait for that.
func (t *Terminal) OpenSettingsUI() {
	fields := strings.Fields(t.getenv("VISUAL"))
	if len(fields) == 0 {
		fields = strings.Fields(t.getenv("EDITOR"))
	}
	if len(fields) == 0 {
		fields = []string{"vi"}
	}
	args := append(append([]string(nil), fields[1:]...), t.settingsPath)

	t.pending.Add(1)
	go func() {
		defer t.pending.Done()
		if err := t.run(context.Background(), fields[0], args...); err != nil {
			t.logger.Warn("settings editor failed", "editor", fields[0], "path", t.settingsPath, "error", err)
		}
	}()
}

// Wait blocks until every editor started by OpenSettingsUI has exited.
func (t *Terminal) Wait() {
	t.pending.Wait()
}

func (t *Terminal) readLine(ctx context.Context) (string, error) {
	t.readOnce.Do(t.startReader)

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r, ok := <-t.lines:
		if !ok {
			// Input already ended.
			return "", nil
		}
		if r.err != nil && !errors.Is(r.err, io.EOF) {
			return "", fmt.Errorf("reading answer: %w", r.err)
		}
		return strings.TrimSpace(r.line), nil
	}
}

// startReader runs the single goroutine that owns the input. A line read
// while no prompt is waiting is held until the next prompt takes it.
func (t *Terminal) startReader() {
	t.lines = make(chan readResult)
	go func() {
		defer close(t.lines)
		for {
			line, err := t.in.ReadString('\n')
			t.lines <- readResult{line, err}
			if err != nil {
				return
			}
		}
	}()
}

func matchAction(answer string, actions []string) (string, bool, error) {
	if answer == "" {
		return "", false, nil
	}
	if n, err := strconv.Atoi(answer); err == nil {
		if n < 1 || n > len(actions) {
			return "", false, nil
		}
		return actions[n-1], true, nil
	}
	for _, action := range actions {
		if strings.EqualFold(answer, action) {
			return action, true, nil
		}
	}
	return "", false, nil
}

func openerCommand(goos string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", nil
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler"}
	default:
		return "xdg-open", nil
	}
}

func runCommand(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
