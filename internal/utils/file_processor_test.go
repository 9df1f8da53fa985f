package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTree(t *testing.T, root string, files []string) {
	t.Helper()
	for _, name := range files {
		path := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("Failed to create directory for %s: %v", name, err)
		}
		if err := os.WriteFile(path, []byte("#pragma once\n"), 0644); err != nil {
			t.Fatalf("Failed to create test file %s: %v", name, err)
		}
	}
}

func relative(t *testing.T, root string, paths []string) []string {
	t.Helper()
	out := make([]string, len(paths))
	for i, p := range paths {
		rel, err := filepath.Rel(root, p)
		if err != nil {
			t.Fatalf("Failed to relativize %s: %v", p, err)
		}
		out[i] = filepath.ToSlash(rel)
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestFileProcessor_ExtensionFilter(t *testing.T) {
	tmpDir := t.TempDir()
	writeTree(t, tmpDir, []string{"actor.h", "actor.cpp", "Upper.HPP", "notes.md", "actor.h.mirror.json"})

	entries, err := os.ReadDir(tmpDir)
	if err != nil {
		t.Fatalf("Failed to read test directory: %v", err)
	}

	filter := ExtensionFilter([]string{".h", ".hpp"})
	mirrors := MirrorFileFilter()

	var headers, generated []string
	for _, entry := range entries {
		path := filepath.Join(tmpDir, entry.Name())
		if filter(path, entry) {
			headers = append(headers, entry.Name())
		}
		if mirrors(path, entry) {
			generated = append(generated, entry.Name())
		}
	}

	if want := []string{"Upper.HPP", "actor.h"}; !equalStrings(headers, want) {
		t.Errorf("Expected headers %v, got %v", want, headers)
	}
	if want := []string{"actor.h.mirror.json"}; !equalStrings(generated, want) {
		t.Errorf("Expected mirror files %v, got %v", want, generated)
	}
}

func TestFileProcessor_WalkFiles(t *testing.T) {
	fp := NewFileProcessor()
	tmpDir := t.TempDir()

	writeTree(t, tmpDir, []string{
		"root.h",
		"engine/actor.h",
		"engine/detail/math.hpp",
		"vendor/lib.h",
		".cache/stale.h",
		"engine/actor.cpp",
	})

	tests := []struct {
		name      string
		recursive bool
		expected  []string
	}{
		{
			name:     "top level only",
			expected: []string{"root.h"},
		},
		{
			name:      "recursive skips vendor and hidden directories",
			recursive: true,
			expected:  []string{"engine/actor.h", "engine/detail/math.hpp", "root.h"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matched, err := fp.WalkFiles(tmpDir, FileWalkOptions{
				FileFilter: ExtensionFilter([]string{".h", ".hpp"}),
				Recursive:  tt.recursive,
			})
			if err != nil {
				t.Fatalf("WalkFiles failed: %v", err)
			}
			if got := relative(t, tmpDir, matched); !equalStrings(got, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestFileProcessor_WalkFilesMissingRoot(t *testing.T) {
	fp := NewFileProcessor()
	missing := filepath.Join(t.TempDir(), "missing")

	if _, err := fp.WalkFiles(missing, FileWalkOptions{}); err == nil {
		t.Error("Expected an error for a missing root")
	}

	matched, err := fp.WalkFiles(missing, FileWalkOptions{SkipErrors: true})
	if err != nil {
		t.Errorf("Expected errors to be skipped, got %v", err)
	}
	if len(matched) != 0 {
		t.Errorf("Expected no files, got %v", matched)
	}
}

func TestIsDir(t *testing.T) {
	tmpDir := t.TempDir()
	writeTree(t, tmpDir, []string{"a.h"})

	if !IsDir(tmpDir) {
		t.Error("Expected temp dir to be a directory")
	}
	if IsDir(filepath.Join(tmpDir, "a.h")) {
		t.Error("Expected a.h not to be a directory")
	}
	if IsDir(filepath.Join(tmpDir, "nope")) {
		t.Error("Expected missing path not to be a directory")
	}
}
