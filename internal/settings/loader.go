package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for settings files that are neither YAML nor TOML.
var ErrUnsupportedFormat = errors.New("unsupported settings file format")

// settingsFileNames is the ordered list of settings file names to search for.
var settingsFileNames = []string{
	"swiftfmtenv.yml",
	"swiftfmtenv.yaml",
	".swiftfmtenv.yml",
	".swiftfmtenv.yaml",
	"swiftfmtenv.toml",
	".swiftfmtenv.toml",
}

// Format is the encoding of a settings file.
type Format int

const (
	FormatYAML Format = iota
	FormatTOML
)

// FormatFor picks the encoding from the file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// Discover returns the path of the first settings file found in dir,
// following the standard search order. It returns an empty string if
// no settings file is found.
func Discover(dir string) string {
	for _, name := range settingsFileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// FileStore is a Store persisted to a YAML or TOML file. Keys may sit at
// the top level or inside a swiftFormat section; the section wins.
type FileStore struct {
	mu     sync.Mutex
	path   string
	format Format
	data   map[string]any
}

// Load opens the settings file at path. If path is empty, Load searches the
// current working directory using Discover; when nothing is found it
// returns an empty store that will be written to the first standard name.
func Load(path string) (*FileStore, error) {
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		path = Discover(wd)
		if path == "" {
			return &FileStore{
				path:   filepath.Join(wd, settingsFileNames[0]),
				format: FormatYAML,
				data:   map[string]any{},
			}, nil
		}
	}

	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("settings file not found: %s", path)
		}
		return nil, fmt.Errorf("reading settings file %s: %w", path, err)
	}

	data, err := decode(format, raw)
	if err != nil {
		return nil, fmt.Errorf("parsing settings file %s: %w", path, err)
	}

	return &FileStore{path: path, format: format, data: data}, nil
}

// Path returns the file the store reads from and writes to.
func (s *FileStore) Path() string {
	return s.path
}

// Get implements Store.
func (s *FileStore) Get(key string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if section, ok := s.data[Section].(map[string]any); ok {
		if v, ok := section[key]; ok {
			return v, true
		}
	}
	v, ok := s.data[key]
	return v, ok
}

// Set implements Store. The value is written inside the swiftFormat
// section when the file has one.
func (s *FileStore) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if section, ok := s.data[Section].(map[string]any); ok {
		section[key] = value
		delete(s.data, key)
	} else {
		s.data[key] = value
	}
	return s.save()
}

// Unset implements Store.
func (s *FileStore) Unset(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if section, ok := s.data[Section].(map[string]any); ok {
		delete(section, key)
	}
	delete(s.data, key)
	return s.save()
}

func (s *FileStore) save() error {
	raw, err := encode(s.format, s.data)
	if err != nil {
		return fmt.Errorf("encoding settings file %s: %w", s.path, err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating settings directory: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		return fmt.Errorf("writing settings file %s: %w", s.path, err)
	}
	return nil
}

func decode(format Format, raw []byte) (map[string]any, error) {
	var data map[string]any
	var err error
	switch format {
	case FormatTOML:
		err = toml.Unmarshal(raw, &data)
	default:
		err = yaml.Unmarshal(raw, &data)
	}
	if err != nil {
		return nil, err
	}
	// An empty file decodes to a nil map.
	if data == nil {
		data = map[string]any{}
	}
	return data, nil
}

func encode(format Format, data map[string]any) ([]byte, error) {
	if format == FormatTOML {
		return toml.Marshal(data)
	}
	return yaml.Marshal(data)
}
