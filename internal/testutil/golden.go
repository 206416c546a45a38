// Package testutil provides shared test doubles and golden file helpers.
package testutil

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
)

// Update is a flag that, when set, regenerates golden files from current output.
// Usage: go test ./... -update
var Update = flag.Bool("update", false, "update golden files")

// Golden compares actual against the golden file testdata/<name>.golden.
func Golden(t *testing.T, name, actual string) {
	t.Helper()

	path := filepath.Join("testdata", name+".golden")

	if *Update {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("failed to create testdata dir: %v", err)
		}
		if err := os.WriteFile(path, []byte(actual), 0o644); err != nil {
			t.Fatalf("failed to update golden file %s: %v", path, err)
		}
		t.Logf("updated golden file: %s", path)
		return
	}

	expected, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}

	if actual != string(expected) {
		t.Errorf("output mismatch for %s:\n--- expected\n%s\n--- actual\n%s", path, expected, actual)
	}
}
