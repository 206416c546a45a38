// Package env groups everything the formatting integration needs from its
// host editor behind one value: settings, command resolution, and the
// editor's URL, message and settings-UI operations.
//
// Production code builds one Environment at startup around the real host;
// tests build one per test around a fake.
package env

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"

	"github.com/donaldgifford/swiftfmtenv/internal/resolver"
	"github.com/donaldgifford/swiftfmtenv/internal/settings"
)

// ErrNoHost is returned by host operations on an Environment built without a host.
var ErrNoHost = errors.New("no host editor")

// MessageKind is the severity of a message shown to the user.
type MessageKind string

// Message kinds.
const (
	MessageError   MessageKind = "error"
	MessageWarning MessageKind = "warning"
)

// Host is the editor the integration runs inside. OpenURL and ShowMessage
// block until the editor finishes the interaction or ctx is done.
type Host interface {
	// OpenURL opens url in the user's browser.
	OpenURL(ctx context.Context, url string) error
	// ShowMessage shows message with optional action buttons. It returns
	// the chosen action, or false if the message was dismissed.
	ShowMessage(ctx context.Context, kind MessageKind, message string, actions ...string) (string, bool, error)
	// OpenSettingsUI asks the editor to present its settings.
	OpenSettingsUI()
}

// Environment is the single injectable seam between the formatting
// integration and its host editor.
type Environment struct {
	*settings.Settings
	*resolver.Resolver

	host     Host
	logger   *slog.Logger
	issueURL string
}

type options struct {
	logger   *slog.Logger
	fs       resolver.FileSystem
	abs      settings.AbsFunc
	stat     func(name string) (fs.FileInfo, error)
	issueURL string
}

// Option configures an Environment.
type Option func(*options)

// WithLogger sets the logger shared by the environment and its resolver.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithFileSystem sets the file system probed for local builds.
func WithFileSystem(fs resolver.FileSystem) Option {
	return func(o *options) {
		o.fs = fs
	}
}

// WithAbs sets the path normalizer.
func WithAbs(fn settings.AbsFunc) Option {
	return func(o *options) {
		o.abs = fn
	}
}

// WithStat sets the function used to probe configuration files.
func WithStat(fn func(name string) (fs.FileInfo, error)) Option {
	return func(o *options) {
		o.stat = fn
	}
}

// WithIssueURL sets the "new issue" page used by ReportIssueForError.
func WithIssueURL(url string) Option {
	return func(o *options) {
		o.issueURL = url
	}
}

// New returns an Environment reading settings from store, finding
// workspace folders through folders and delegating editor operations to h.
func New(store settings.Store, folders resolver.FolderLookup, h Host, opts ...Option) *Environment {
	o := options{
		logger:   slog.Default(),
		fs:       resolver.OSFS{},
		abs:      settings.Abs,
		issueURL: DefaultIssueURL,
	}
	for _, opt := range opts {
		opt(&o)
	}

	settingsOpts := []settings.Option{settings.WithAbs(o.abs)}
	if o.stat != nil {
		settingsOpts = append(settingsOpts, settings.WithStat(o.stat))
	}
	if h != nil {
		settingsOpts = append(settingsOpts, settings.WithSettingsUI(h.OpenSettingsUI))
	}
	s := settings.New(store, settingsOpts...)

	return &Environment{
		Settings: s,
		Resolver: resolver.New(s, folders,
			resolver.WithFileSystem(o.fs),
			resolver.WithLogger(o.logger),
		),
		host:     h,
		logger:   o.logger,
		issueURL: o.issueURL,
	}
}

// ShouldFormat reports whether formatting is switched on for doc. When
// onlyEnableWithConfig is set a swift-format configuration file must be
// found on the search paths.
func (e *Environment) ShouldFormat(doc resolver.Document) bool {
	if !e.IsEnabled() {
		e.logger.Debug("formatting disabled", "document", doc.Path)
		return false
	}
	if !e.OnlyEnableWithConfig() {
		return true
	}
	if _, ok := e.FindFormatConfig(); !ok {
		e.logger.Debug("no swift-format configuration found", "document", doc.Path)
		return false
	}
	return true
}

// OpenURL opens url through the host.
func (e *Environment) OpenURL(ctx context.Context, url string) error {
	if e.host == nil {
		return ErrNoHost
	}
	return e.host.OpenURL(ctx, url)
}

// ShowMessage shows a message through the host and returns the chosen action.
func (e *Environment) ShowMessage(ctx context.Context, kind MessageKind, message string, actions ...string) (string, bool, error) {
	if e.host == nil {
		return "", false, ErrNoHost
	}
	return e.host.ShowMessage(ctx, kind, message, actions...)
}

// ShowError shows an error message.
func (e *Environment) ShowError(ctx context.Context, message string, actions ...string) (string, bool, error) {
	return e.ShowMessage(ctx, MessageError, message, actions...)
}

// ShowWarning shows a warning message.
func (e *Environment) ShowWarning(ctx context.Context, message string, actions ...string) (string, bool, error) {
	return e.ShowMessage(ctx, MessageWarning, message, actions...)
}
