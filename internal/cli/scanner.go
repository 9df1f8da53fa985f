package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/toyz/reflector/internal/config"
	"github.com/toyz/reflector/internal/errors"
	"github.com/toyz/reflector/internal/utils"
)

// SourceScanner expands command line paths into the list of files to reflect
type SourceScanner struct {
	fileProcessor *utils.FileProcessor
	opts          *config.Options
}

// NewSourceScanner creates a scanner honoring the extension and recursion options
func NewSourceScanner(opts *config.Options) *SourceScanner {
	return &SourceScanner{
		fileProcessor: utils.NewFileProcessor(),
		opts:          opts,
	}
}

// ScanPaths resolves each path to absolute source files. Files named
// explicitly are kept whatever their extension; directories contribute the
// files matching the configured extensions, recursively when the recursive
// option is set or the path uses the "dir/..." form. Duplicates are dropped
// and the order of first appearance is kept.
func (s *SourceScanner) ScanPaths(paths []string) ([]string, error) {
	var files []string
	seen := make(map[string]bool)
	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, path := range paths {
		recursive := s.opts.Recursive
		if strings.HasSuffix(path, "/...") {
			recursive = true
			path = strings.TrimSuffix(path, "/...")
			if path == "" {
				path = "."
			}
		}

		absPath, err := filepath.Abs(path)
		if err != nil {
			return nil, errors.WrapFileSystemError("resolve", path, err)
		}

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, errors.WrapFileSystemError("stat", path, err).
				WithSuggestion("Check that the path exists and is readable")
		}

		if !info.IsDir() {
			add(absPath)
			continue
		}

		matched, err := s.fileProcessor.WalkFiles(absPath, utils.FileWalkOptions{
			FileFilter: utils.ExtensionFilter(s.opts.Extensions),
			Recursive:  recursive,
		})
		if err != nil {
			return nil, errors.WrapFileSystemError("scan", path, err)
		}
		for _, f := range matched {
			add(f)
		}
	}

	return files, nil
}
