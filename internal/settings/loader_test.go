package settings

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	origWd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(origWd); err != nil {
			t.Fatal(err)
		}
	})
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yml")

	yaml := `enable: false
path:
  - swift-format
  - --configuration
  - strict
configSearchPaths:
  - .swift-format
  - tools/.swift-format
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	store, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	s := New(store, WithAbs(testAbs))

	if s.IsEnabled() {
		t.Error("IsEnabled: got true, want false")
	}
	want := MultiplePath([]string{"swift-format", "--configuration", "strict"})
	if got := s.PathSetting(); !reflect.DeepEqual(got, want) {
		t.Errorf("PathSetting: got %+v, want %+v", got, want)
	}
	if got := s.FormatConfigSearchPaths(); len(got) != 2 || got[1] != "/work/tools/.swift-format" {
		t.Errorf("FormatConfigSearchPaths: got %v", got)
	}

	// Unspecified fields keep their defaults.
	if s.OnlyEnableOnSwiftPMProjects() {
		t.Error("OnlyEnableOnSwiftPMProjects: got true, want false (default)")
	}
}

func TestLoadTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.toml")

	toml := `[swiftFormat]
onlyEnableOnSwiftPMProjects = true
path = "/opt/bin/swift-format"
`
	if err := os.WriteFile(path, []byte(toml), 0o644); err != nil {
		t.Fatal(err)
	}

	store, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	s := New(store)

	if !s.OnlyEnableOnSwiftPMProjects() {
		t.Error("OnlyEnableOnSwiftPMProjects: got false, want true")
	}
	if got := s.PathSetting(); !reflect.DeepEqual(got, SinglePath("/opt/bin/swift-format")) {
		t.Errorf("PathSetting: got %+v", got)
	}
}

func TestSectionWinsOverBareKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")

	yaml := `enable: false
swiftFormat:
  enable: true
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	store, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !New(store).IsEnabled() {
		t.Error("IsEnabled: got false, want true from section")
	}
}

func TestDiscoverPriority(t *testing.T) {
	dir := t.TempDir()

	for _, name := range settingsFileNames {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("enable: true\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	// Remove files one by one; the next name in order should win each time.
	for i, name := range settingsFileNames {
		got := Discover(dir)
		want := filepath.Join(dir, name)
		if got != want {
			t.Errorf("step %d: Discover = %q, want %q", i, got, want)
		}
		if err := os.Remove(want); err != nil {
			t.Fatal(err)
		}
	}

	if got := Discover(dir); got != "" {
		t.Errorf("Discover in empty dir: got %q, want empty string", got)
	}
}

func TestLoadNoSettingsFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	store, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := store.Get(KeyEnable); ok {
		t.Error("expected empty store")
	}
	if !strings.HasSuffix(store.Path(), "swiftfmtenv.yml") {
		t.Errorf("Path: got %q, want default settings file name", store.Path())
	}
}

func TestLoadDiscovery(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".swiftfmtenv.toml"), []byte("enable = false\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	chdir(t, dir)

	store, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if New(store).IsEnabled() {
		t.Error("IsEnabled: got true, want false from discovered file")
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yml")
	if err := os.WriteFile(bad, []byte("{{{{not valid yaml"), 0o644); err != nil {
		t.Fatal(err)
	}
	badTOML := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(badTOML, []byte("path = [\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{bad, badTOML, "/nonexistent/path/settings.yml"} {
		if _, err := Load(path); err == nil {
			t.Errorf("Load(%q): expected error, got nil", path)
		}
	}

	_, err := Load(filepath.Join(dir, "settings.json"))
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Load json: got %v, want ErrUnsupportedFormat", err)
	}
}

func TestLoadEmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.yml")
	if err := os.WriteFile(path, []byte(""), 0o644); err != nil {
		t.Fatal(err)
	}

	store, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !New(store).IsEnabled() {
		t.Error("IsEnabled: got false, want true (default)")
	}
}

func TestFileStoreWritesBack(t *testing.T) {
	for _, name := range []string{"settings.yml", "settings.toml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)

			var initial string
			if strings.HasSuffix(name, ".toml") {
				initial = "[swiftFormat]\npath = \"/opt/bin/swift-format\"\n"
			} else {
				initial = "swiftFormat:\n  path: /opt/bin/swift-format\n"
			}
			if err := os.WriteFile(path, []byte(initial), 0o644); err != nil {
				t.Fatal(err)
			}

			store, err := Load(path)
			if err != nil {
				t.Fatal(err)
			}
			if err := store.Set(KeyOnlyEnableWithConfig, true); err != nil {
				t.Fatal(err)
			}
			if err := New(store).ResetSwiftFormatPath(); err != nil {
				t.Fatal(err)
			}

			reloaded, err := Load(path)
			if err != nil {
				t.Fatal(err)
			}
			if _, ok := reloaded.Get(KeyPath); ok {
				t.Error("path survived reset")
			}
			if !New(reloaded).OnlyEnableWithConfig() {
				t.Error("OnlyEnableWithConfig: got false, want true after Set")
			}
		})
	}
}

func TestFileStoreCreatesFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	store, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Set(KeyPath, []string{"swift-format"}); err != nil {
		t.Fatal(err)
	}

	reloaded, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	want := MultiplePath([]string{"swift-format"})
	if got := New(reloaded).PathSetting(); !reflect.DeepEqual(got, want) {
		t.Errorf("PathSetting: got %+v, want %+v", got, want)
	}
}
