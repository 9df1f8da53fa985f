package parser

import (
	"context"
	"time"

	"github.com/toyz/reflector/internal/models"
)

// SourceParser defines the interface for reflecting annotated source files
// into file mirrors
type SourceParser interface {
	ParseFile(path string) FileResult
	ParseSource(path string, src string, modTime time.Time) FileResult
	ParseFiles(ctx context.Context, paths []string) ([]FileResult, error)
	Scan(path string, src string) (*models.FileMirror, error)
	Registry() *models.Registry
}

var _ SourceParser = (*Parser)(nil)
