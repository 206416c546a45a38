package testutil

import (
	"context"
	"path/filepath"
	"sync"

	"github.com/donaldgifford/swiftfmtenv/internal/env"
)

// Message is a message shown through a FakeHost.
type Message struct {
	Kind    env.MessageKind
	Text    string
	Actions []string
}

// FakeHost is an env.Host that records every call. ShowMessage answers
// with Choice; an empty Choice means the message was dismissed.
type FakeHost struct {
	mu sync.Mutex

	Choice     string
	OpenURLErr error

	URLs         []string
	Messages     []Message
	SettingsOpen int
}

// OpenURL implements env.Host.
func (h *FakeHost) OpenURL(_ context.Context, url string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.URLs = append(h.URLs, url)
	return h.OpenURLErr
}

// ShowMessage implements env.Host.
func (h *FakeHost) ShowMessage(_ context.Context, kind env.MessageKind, message string, actions ...string) (string, bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Messages = append(h.Messages, Message{Kind: kind, Text: message, Actions: actions})
	if h.Choice == "" {
		return "", false, nil
	}
	return h.Choice, true, nil
}

// OpenSettingsUI implements env.Host.
func (h *FakeHost) OpenSettingsUI() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.SettingsOpen++
}

// MemFS is an in-memory resolver.FileSystem holding a set of paths.
type MemFS map[string]bool

// NewMemFS returns a MemFS containing paths.
func NewMemFS(paths ...string) MemFS {
	fs := MemFS{}
	for _, p := range paths {
		fs[filepath.Clean(p)] = true
	}
	return fs
}

// Exists implements resolver.FileSystem.
func (fs MemFS) Exists(path string) bool {
	return fs[filepath.Clean(path)]
}

// Abs resolves relative paths against /work so tests can predict the
// normalized form.
func Abs(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join("/work", path)
}
