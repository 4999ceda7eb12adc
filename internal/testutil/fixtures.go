// Package testutil provides testing utilities for page objects: HTML fixtures
// and a rod hijack router that serves them in place of a real application.
package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// FixtureDir returns the absolute path of the shared fixture directory.
func FixtureDir() string {
	// Get path relative to this file
	_, filename, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(filename), "testdata", "fixtures")
}

// LoadFixture reads the HTML fixture called name.
func LoadFixture(t *testing.T, name string) string {
	t.Helper()

	path := filepath.Join(FixtureDir(), name+".html")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to load fixture %s: %v", name, err)
	}

	return string(data)
}

// MustLoadFixture is like LoadFixture but panics on error (for non-test use)
func MustLoadFixture(name string) string {
	data, err := os.ReadFile(filepath.Join(FixtureDir(), name+".html"))
	if err != nil {
		panic(err)
	}

	return string(data)
}
