// Package settings provides typed access to the swift-format extension
// settings, their defaults, and the stores that persist them.
package settings

import (
	"io/fs"
	"os"
	"path/filepath"
)

// Setting keys.
const (
	KeyEnable                      = "enable"
	KeyOnlyEnableOnSwiftPMProjects = "onlyEnableOnSwiftPMProjects"
	KeyOnlyEnableWithConfig        = "onlyEnableWithConfig"
	KeyPath                        = "path"
	KeyConfigSearchPaths           = "configSearchPaths"
)

// Section is the namespace a settings file may nest the keys under.
const Section = "swiftFormat"

// FormatConfigName is the name of the swift-format configuration file.
const FormatConfigName = ".swift-format"

// DefaultPath returns the command used when no usable path is configured.
func DefaultPath() []string {
	return []string{"/usr/bin/env", "swift-format"}
}

// DefaultConfigSearchPaths returns the search paths used when none are configured.
func DefaultConfigSearchPaths() []string {
	return []string{FormatConfigName}
}

// AbsFunc turns a possibly-relative path into an absolute one.
type AbsFunc func(path string) string

// Abs resolves path against the working directory. It returns path
// unchanged if the working directory cannot be determined.
func Abs(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}

// Settings reads and writes the extension settings held in a Store.
// Every getter substitutes the documented default for a missing or
// malformed value.
type Settings struct {
	store      Store
	abs        AbsFunc
	stat       func(name string) (fs.FileInfo, error)
	settingsUI func()
}

// Option configures a Settings.
type Option func(*Settings)

// WithAbs sets the path normalizer. The default is Abs.
func WithAbs(fn AbsFunc) Option {
	return func(s *Settings) {
		s.abs = fn
	}
}

// WithStat sets the function used to probe configuration files.
func WithStat(fn func(name string) (fs.FileInfo, error)) Option {
	return func(s *Settings) {
		s.stat = fn
	}
}

// WithSettingsUI sets the hook that asks the host to show its settings.
func WithSettingsUI(fn func()) Option {
	return func(s *Settings) {
		s.settingsUI = fn
	}
}

// New returns Settings backed by store.
func New(store Store, opts ...Option) *Settings {
	s := &Settings{
		store:      store,
		abs:        Abs,
		stat:       os.Stat,
		settingsUI: func() {},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Normalize returns the absolute form of path using the configured normalizer.
func (s *Settings) Normalize(path string) string {
	return s.abs(path)
}

// IsEnabled reports the master on/off switch.
func (s *Settings) IsEnabled() bool {
	return s.bool(KeyEnable, true)
}

// OnlyEnableOnSwiftPMProjects reports whether formatting requires a local build.
func (s *Settings) OnlyEnableOnSwiftPMProjects() bool {
	return s.bool(KeyOnlyEnableOnSwiftPMProjects, false)
}

// OnlyEnableWithConfig reports whether formatting requires a configuration file.
func (s *Settings) OnlyEnableWithConfig() bool {
	return s.bool(KeyOnlyEnableWithConfig, false)
}

// FormatConfigSearchPaths returns the configured search paths in priority
// order, each normalized to an absolute path.
func (s *Settings) FormatConfigSearchPaths() []string {
	paths := s.stringSlice(KeyConfigSearchPaths, DefaultConfigSearchPaths())
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = s.abs(p)
	}
	return out
}

// PathSetting returns the decoded path setting.
func (s *Settings) PathSetting() PathSetting {
	v, ok := s.store.Get(KeyPath)
	if !ok {
		return MultiplePath(DefaultPath())
	}
	return DecodePath(v)
}

// ResetSwiftFormatPath clears the path setting so reads fall back to the default.
func (s *Settings) ResetSwiftFormatPath() error {
	return s.store.Unset(KeyPath)
}

// ConfigureSwiftFormatPath asks the host to present its settings UI.
func (s *Settings) ConfigureSwiftFormatPath() {
	s.settingsUI()
}

// FindFormatConfig returns the first search path holding a configuration
// file. A search path naming a directory matches when the directory
// contains a .swift-format file.
func (s *Settings) FindFormatConfig() (string, bool) {
	for _, p := range s.FormatConfigSearchPaths() {
		info, err := s.stat(p)
		if err != nil {
			continue
		}
		if !info.IsDir() {
			return p, true
		}
		candidate := filepath.Join(p, FormatConfigName)
		if info, err := s.stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
	}
	return "", false
}

func (s *Settings) bool(key string, def bool) bool {
	v, ok := s.store.Get(key)
	if !ok {
		return def
	}
	b, ok := v.(bool)
	if !ok {
		return def
	}
	return b
}

func (s *Settings) stringSlice(key string, def []string) []string {
	v, ok := s.store.Get(key)
	if !ok {
		return def
	}
	strs, ok := toStrings(v)
	if !ok {
		return def
	}
	return strs
}

// toStrings converts a decoded sequence to []string. It fails if any
// element is not a string.
func toStrings(v any) ([]string, bool) {
	switch v := v.(type) {
	case []string:
		return append([]string(nil), v...), true
	case []any:
		out := make([]string, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out[i] = s
		}
		return out, true
	default:
		return nil, false
	}
}
