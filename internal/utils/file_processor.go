package utils

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FileFilter defines a function that determines whether a file should be processed
type FileFilter func(path string, info fs.DirEntry) bool

// DirectoryFilter defines a function that determines whether a directory should be entered
type DirectoryFilter func(path string, info fs.DirEntry) bool

// FileWalkOptions configures file walking behavior
type FileWalkOptions struct {
	FileFilter      FileFilter
	DirectoryFilter DirectoryFilter
	Recursive       bool
	SkipErrors      bool
}

// FileProcessor finds source files below directory roots
type FileProcessor struct {
	directoryFilter DirectoryFilter
}

// NewFileProcessor creates a file processor using DefaultDirectoryFilter
func NewFileProcessor() *FileProcessor {
	return &FileProcessor{directoryFilter: DefaultDirectoryFilter()}
}

// ExtensionFilter accepts regular files whose extension, compared without
// case, is one of exts.
func ExtensionFilter(exts []string) FileFilter {
	allowed := make(map[string]bool, len(exts))
	for _, e := range exts {
		allowed[strings.ToLower(e)] = true
	}
	return func(path string, info fs.DirEntry) bool {
		if info.IsDir() {
			return false
		}
		return allowed[strings.ToLower(filepath.Ext(info.Name()))]
	}
}

// MirrorFileFilter accepts the JSON files written next to reflected sources
func MirrorFileFilter() FileFilter {
	return func(path string, info fs.DirEntry) bool {
		return !info.IsDir() && strings.HasSuffix(info.Name(), MirrorSuffix)
	}
}

// MirrorSuffix is appended to a source file name to form its mirror file name
const MirrorSuffix = ".mirror.json"

// DefaultDirectoryFilter skips hidden directories and common directories that
// do not hold project sources
func DefaultDirectoryFilter() DirectoryFilter {
	skipDirs := map[string]bool{
		"vendor":       true,
		"node_modules": true,
		".git":         true,
		".svn":         true,
		".hg":          true,
	}

	return func(path string, info fs.DirEntry) bool {
		if !info.IsDir() {
			return true
		}

		name := info.Name()
		if strings.HasPrefix(name, ".") && name != "." && name != ".." {
			return false
		}
		return !skipDirs[name]
	}
}

// WalkFiles returns the files below rootDir accepted by options.FileFilter,
// in lexical order. The root itself is always entered; subdirectories only
// when options.Recursive is set and the directory filter accepts them.
func (fp *FileProcessor) WalkFiles(rootDir string, options FileWalkOptions) ([]string, error) {
	dirFilter := options.DirectoryFilter
	if dirFilter == nil {
		dirFilter = fp.directoryFilter
	}

	var matchedFiles []string
	err := filepath.WalkDir(rootDir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			if options.SkipErrors {
				return nil
			}
			return err
		}

		if entry.IsDir() {
			if path == rootDir {
				return nil
			}
			if !options.Recursive || !dirFilter(path, entry) {
				return filepath.SkipDir
			}
			return nil
		}

		if options.FileFilter == nil || options.FileFilter(path, entry) {
			matchedFiles = append(matchedFiles, path)
		}
		return nil
	})

	return matchedFiles, err
}

// IsDir reports whether path names an existing directory
func IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
