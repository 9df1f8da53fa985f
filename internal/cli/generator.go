package cli

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/toyz/reflector/internal/config"
	"github.com/toyz/reflector/internal/errors"
	"github.com/toyz/reflector/internal/models"
	"github.com/toyz/reflector/internal/parser"
	"github.com/toyz/reflector/internal/utils"
)

// GenerationSummary contains information about the generation process
type GenerationSummary struct {
	FilesScanned   int
	FilesReflected int
	FilesFailed    int
	FilesUpToDate  int
	ClassesFound   int
	EnumsFound     int
	GeneratedFiles []string
	Duration       time.Duration
}

// Generator coordinates the CLI generation process: discover sources, parse
// them into the registry, then write mirror files and the database.
type Generator struct {
	opts        *config.Options
	scanner     *SourceScanner
	parser      parser.SourceParser
	reporter    *DiagnosticReporter
	diagnostics *utils.DiagnosticSystem
	summary     GenerationSummary
}

// NewGenerator creates a generator with a fresh registry
func NewGenerator(opts *config.Options, diagnostics *utils.DiagnosticSystem, reporter *DiagnosticReporter) *Generator {
	if diagnostics == nil {
		diagnostics = utils.NewDiagnosticSystem(utils.LevelFor(opts.Quiet, opts.Verbose))
	}
	if reporter == nil {
		reporter = NewDiagnosticReporter(opts.Verbose)
	}
	return &Generator{
		opts:        opts,
		scanner:     NewSourceScanner(opts),
		parser:      parser.NewParser(opts, models.NewRegistry(), diagnostics),
		reporter:    reporter,
		diagnostics: diagnostics,
	}
}

// Registry returns the registry filled by the last run
func (g *Generator) Registry() *models.Registry {
	return g.parser.Registry()
}

// GetSummary returns the generation summary
func (g *Generator) GetSummary() GenerationSummary {
	return g.summary
}

// Run executes the complete generation process. Per-file failures are
// reported as they are found and returned together; files that parsed are
// still written.
func (g *Generator) Run(ctx context.Context, cfg Config) error {
	startTime := time.Now()
	g.summary = GenerationSummary{}

	g.diagnostics.Debug("Scanning paths: %v", cfg.Paths)
	files, err := g.scanner.ScanPaths(cfg.Paths)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		g.reporter.ReportWarning("no source files found")
		return nil
	}
	g.summary.FilesScanned = len(files)
	g.diagnostics.PhaseItem("Found %d source files", len(files))

	results, err := g.parser.ParseFiles(ctx, files)
	if err != nil {
		return errors.Wrap(errors.UnknownErrorCode, "parsing interrupted", err)
	}

	failures := errors.NewMultipleErrors()
	for _, res := range results {
		if !res.OK() {
			g.summary.FilesFailed++
			g.reporter.ReportError(res.Err)
			failures.Add(res.Err)
			continue
		}
		if !res.Published {
			continue
		}

		g.summary.FilesReflected++
		g.summary.ClassesFound += len(res.Mirror.Classes)
		g.summary.EnumsFound += len(res.Mirror.Enums)

		if g.opts.UseJSON {
			if err := g.writeMirror(res); err != nil {
				g.reporter.ReportError(err)
				failures.Add(err)
			}
		}
	}

	if g.opts.Database != "" {
		if err := g.writeDatabase(); err != nil {
			g.reporter.ReportError(err)
			failures.Add(err)
		}
	}

	g.summary.Duration = time.Since(startTime)
	g.printSummary()
	return failures.ErrorOrNil()
}

// MirrorPath returns where the mirror of source is written
func MirrorPath(opts *config.Options, source string) string {
	if opts.OutputDir != "" {
		return filepath.Join(opts.OutputDir, filepath.Base(source)+utils.MirrorSuffix)
	}
	return source + utils.MirrorSuffix
}

func (g *Generator) writeMirror(res parser.FileResult) error {
	path := MirrorPath(g.opts, res.Mirror.SourceFilePath)
	if !g.opts.Force && newerThan(path, res.ModTime) {
		g.summary.FilesUpToDate++
		g.diagnostics.Verbose("Skipping %s (up to date)", path)
		return nil
	}

	data, err := models.Encode(res.Mirror)
	if err != nil {
		return errors.Wrapf(errors.UnknownErrorCode, err, "failed to encode mirror of %s", res.Mirror.SourceFilePath).
			WithFile(res.Mirror.SourceFilePath)
	}
	return g.writeFile(path, data)
}

func (g *Generator) writeDatabase() error {
	data, err := models.Encode(g.parser.Registry())
	if err != nil {
		return errors.Wrap(errors.UnknownErrorCode, "failed to encode database", err)
	}
	return g.writeFile(g.opts.Database, data)
}

func (g *Generator) writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.WrapFileSystemError("create directory for", path, err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.WrapFileSystemError("write", path, err).
			WithSuggestion("Check write permissions for the target directory")
	}
	g.summary.GeneratedFiles = append(g.summary.GeneratedFiles, path)
	g.diagnostics.FileWritten(path)
	return nil
}

func (g *Generator) printSummary() {
	s := g.summary
	g.diagnostics.Summary("Reflection complete", []string{
		"Files scanned", "Files reflected", "Files failed", "Up to date", "Classes", "Enums", "Files written", "Duration",
	}, map[string]interface{}{
		"Files scanned":   s.FilesScanned,
		"Files reflected": s.FilesReflected,
		"Files failed":    s.FilesFailed,
		"Up to date":      s.FilesUpToDate,
		"Classes":         s.ClassesFound,
		"Enums":           s.EnumsFound,
		"Files written":   len(s.GeneratedFiles),
		"Duration":        s.Duration.Round(time.Millisecond),
	})
}

// newerThan reports whether path exists and was modified after t
func newerThan(path string, t time.Time) bool {
	info, err := os.Stat(path)
	return err == nil && info.ModTime().After(t)
}
