package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Source is the text of one file together with the metadata needed to decide
// whether outputs derived from it are stale
type Source struct {
	Path    string
	Text    string
	ModTime time.Time
	Size    int64
}

// ReadSource reads the file at path. The path is cleaned; directories are
// rejected.
func ReadSource(path string) (Source, error) {
	cleanPath := filepath.Clean(path)

	info, err := os.Stat(cleanPath)
	if err != nil {
		return Source{}, err
	}
	if info.IsDir() {
		return Source{}, fmt.Errorf("%s is a directory", cleanPath)
	}

	content, err := os.ReadFile(cleanPath)
	if err != nil {
		return Source{}, err
	}

	return Source{
		Path:    cleanPath,
		Text:    string(content),
		ModTime: info.ModTime(),
		Size:    int64(len(content)),
	}, nil
}
