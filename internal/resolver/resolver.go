// Package resolver decides which swift-format command to run for a document.
//
// A build of swift-format inside the document's workspace folder wins over
// the globally configured command. The onlyEnableOnSwiftPMProjects setting
// turns the global fallback off entirely.
package resolver

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/donaldgifford/swiftfmtenv/internal/settings"
)

// Document identifies the file being formatted.
type Document struct {
	Path string
}

// Command is an executable followed by its arguments. A resolved Command
// always has at least one element.
type Command []string

// Executable returns the program to run.
func (c Command) Executable() string {
	return c[0]
}

// Args returns the arguments passed to the executable.
func (c Command) Args() []string {
	return c[1:]
}

// FileSystem reports whether a path exists.
type FileSystem interface {
	Exists(path string) bool
}

// OSFS implements FileSystem using the real OS file system.
type OSFS struct{}

// Exists implements FileSystem.
func (OSFS) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// localBuilds are the workspace-relative swift-format builds, release first.
var localBuilds = [][]string{
	{".build", "release", "swift-format"},
	{".build", "debug", "swift-format"},
}

// Resolver turns a document into the swift-format command to run.
type Resolver struct {
	settings *settings.Settings
	folders  FolderLookup
	fs       FileSystem
	logger   *slog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithFileSystem sets the file system probed for local builds.
func WithFileSystem(fs FileSystem) Option {
	return func(r *Resolver) {
		r.fs = fs
	}
}

// WithLogger sets the logger for resolution decisions.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// New returns a Resolver reading s and looking up workspace folders in folders.
func New(s *settings.Settings, folders FolderLookup, opts ...Option) *Resolver {
	r := &Resolver{
		settings: s,
		folders:  folders,
		fs:       OSFS{},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SwiftFormatPath returns the command to format doc. It returns false when
// formatting must not run for doc: no local build exists and
// onlyEnableOnSwiftPMProjects is set.
func (r *Resolver) SwiftFormatPath(doc Document) (Command, bool) {
	if cmd, ok := r.localBuild(doc); ok {
		return cmd, true
	}

	if r.settings.OnlyEnableOnSwiftPMProjects() {
		r.logger.Debug("no local swift-format build, formatting suppressed", "document", doc.Path)
		return nil, false
	}

	cmd := r.GlobalSwiftFormatPath()
	r.logger.Debug("using global swift-format", "document", doc.Path, "command", []string(cmd))
	return cmd, true
}

// GlobalSwiftFormatPath returns the command from the path setting. Only the
// executable is normalized; arguments pass through unchanged.
func (r *Resolver) GlobalSwiftFormatPath() Command {
	path := r.settings.PathSetting()
	switch path.Kind {
	case settings.PathSingle:
		return Command{r.settings.Normalize(path.Single)}
	case settings.PathMultiple:
		cmd := make(Command, 0, len(path.Multiple))
		cmd = append(cmd, r.settings.Normalize(path.Multiple[0]))
		return append(cmd, path.Multiple[1:]...)
	default:
		return Command(settings.DefaultPath())
	}
}

func (r *Resolver) localBuild(doc Document) (Command, bool) {
	folder, ok := r.folders.DocumentWorkspaceFolder(doc)
	if !ok {
		return nil, false
	}

	for _, segments := range localBuilds {
		candidate := filepath.Join(append([]string{folder.Path}, segments...)...)
		if r.fs.Exists(candidate) {
			r.logger.Debug("using local swift-format build", "document", doc.Path, "candidate", candidate)
			return Command{candidate}, true
		}
	}
	return nil, false
}
