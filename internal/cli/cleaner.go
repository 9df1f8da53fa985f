package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/toyz/reflector/internal/config"
	"github.com/toyz/reflector/internal/errors"
	"github.com/toyz/reflector/internal/utils"
)

// Cleaner handles removing generated mirror files
type Cleaner struct {
	opts          *config.Options
	fileProcessor *utils.FileProcessor
}

// NewCleaner creates a new cleaner
func NewCleaner(opts *config.Options) *Cleaner {
	return &Cleaner{
		opts:          opts,
		fileProcessor: utils.NewFileProcessor(),
	}
}

// CleanGeneratedFiles removes the *.mirror.json files found in paths, the
// configured output directory and the database file. It returns the removed
// paths. Missing paths are ignored.
func (c *Cleaner) CleanGeneratedFiles(paths []string) ([]string, error) {
	var removed []string

	roots := append([]string(nil), paths...)
	if c.opts.OutputDir != "" {
		roots = append(roots, c.opts.OutputDir)
	}

	for _, root := range roots {
		recursive := c.opts.Recursive
		if strings.HasSuffix(root, "/...") {
			recursive = true
			root = strings.TrimSuffix(root, "/...")
			if root == "" {
				root = "."
			}
		}
		if !utils.IsDir(root) {
			continue
		}

		matched, err := c.fileProcessor.WalkFiles(root, utils.FileWalkOptions{
			FileFilter: utils.MirrorFileFilter(),
			Recursive:  recursive,
			SkipErrors: true,
		})
		if err != nil {
			return removed, errors.WrapFileSystemError("scan", root, err)
		}

		for _, file := range matched {
			if err := c.remove(file, &removed); err != nil {
				return removed, err
			}
		}
	}

	if c.opts.Database != "" {
		if err := c.remove(c.opts.Database, &removed); err != nil {
			return removed, err
		}
	}
	return removed, nil
}

func (c *Cleaner) remove(path string, removed *[]string) error {
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.WrapFileSystemError("remove", path, err)
	}
	*removed = append(*removed, filepath.Clean(path))
	return nil
}
