package parser

import (
	"context"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/toyz/reflector/internal/annotations"
	"github.com/toyz/reflector/internal/config"
	"github.com/toyz/reflector/internal/errors"
	"github.com/toyz/reflector/internal/generator"
	"github.com/toyz/reflector/internal/models"
	"github.com/toyz/reflector/internal/utils"
)

// Parser reflects annotated declarations out of source files and publishes
// the results to a registry.
type Parser struct {
	opts        *config.Options
	markers     config.Markers
	registry    *models.Registry
	synthesizer *generator.Synthesizer
	diagnostics *utils.DiagnosticSystem
}

// NewParser creates a parser publishing to registry. A nil diagnostics
// system is replaced by a silent one.
func NewParser(opts *config.Options, registry *models.Registry, diagnostics *utils.DiagnosticSystem) *Parser {
	if opts == nil {
		opts = config.NewOptions()
	}
	if diagnostics == nil {
		diagnostics = utils.NewDiagnosticSystem(utils.DiagnosticSilent)
	}
	return &Parser{
		opts:        opts,
		markers:     opts.Markers(),
		registry:    registry,
		synthesizer: generator.NewSynthesizer(registry),
		diagnostics: diagnostics,
	}
}

// Registry returns the registry results are published to
func (p *Parser) Registry() *models.Registry { return p.registry }

// FileResult is the outcome for one input file
type FileResult struct {
	Path      string
	Mirror    *models.FileMirror
	Published bool
	ModTime   time.Time
	Err       error
}

// OK reports whether the file parsed without error
func (r FileResult) OK() bool { return r.Err == nil }

// ParseFile reads, parses, synthesizes and publishes one file.
func (p *Parser) ParseFile(path string) FileResult {
	res := p.scanFile(path)
	if res.Err == nil {
		p.finish(&res)
	}
	return res
}

// ParseSource does the work of ParseFile for text already in memory.
func (p *Parser) ParseSource(path string, src string, modTime time.Time) FileResult {
	res := FileResult{Path: path, ModTime: modTime}
	res.Mirror, res.Err = p.Scan(path, src)
	if res.Err == nil {
		p.finish(&res)
	}
	return res
}

// ParseFiles handles paths in order. With more than one worker the files
// are scanned concurrently, then synthesized and published in input order,
// so cross-file enum lookups see the same registry state as a sequential run.
func (p *Parser) ParseFiles(ctx context.Context, paths []string) ([]FileResult, error) {
	results := make([]FileResult, len(paths))

	if p.opts.Workers <= 1 {
		for i, path := range paths {
			if err := ctx.Err(); err != nil {
				return results[:i], err
			}
			results[i] = p.ParseFile(path)
		}
		return results, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.opts.Workers)
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = p.scanFile(path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i := range results {
		if results[i].Err == nil {
			p.finish(&results[i])
		}
	}
	return results, nil
}

func (p *Parser) scanFile(path string) FileResult {
	res := FileResult{Path: path}

	src, err := utils.ReadSource(path)
	if err != nil {
		res.Err = errors.WrapFileSystemError("read", path, err).WithFile(path)
		return res
	}
	res.ModTime = src.ModTime
	res.Mirror, res.Err = p.Scan(src.Path, src.Text)
	return res
}

// finish synthesizes artificial methods and publishes a scanned mirror.
// Mirrors with no classes and no enums are not published.
func (p *Parser) finish(res *FileResult) {
	if err := p.synthesizer.Synthesize(res.Mirror); err != nil {
		res.Err = locate(err, res.Mirror.SourceFilePath, 0)
		res.Mirror = nil
		return
	}
	if res.Mirror.IsEmpty() {
		return
	}
	p.registry.Add(res.Mirror, res.ModTime)
	res.Published = true
}

// Scan builds the mirror of one file without synthesizing or publishing it.
// It does not touch the registry, so files can be scanned concurrently.
func (p *Parser) Scan(path string, src string) (*models.FileMirror, error) {
	mirror := models.NewFileMirror(path)
	p.diagnostics.Verbose("Analyzing file %s", mirror.SourceFilePath)

	s := &fileScanner{
		parser: p,
		mirror: mirror,
		lines:  splitLines(src),
	}
	if err := s.run(); err != nil {
		return nil, locate(err, mirror.SourceFilePath, 0)
	}
	return mirror, nil
}

// fileScanner holds the state of a single pass over one file
type fileScanner struct {
	parser   *Parser
	mirror   *models.FileMirror
	lines    []string
	access   models.AccessMode
	comments []string
}

func (s *fileScanner) line(i int) string {
	if i < 0 || i >= len(s.lines) {
		return ""
	}
	return strings.TrimSpace(s.lines[i])
}

func (s *fileScanner) run() error {
	m := s.parser.markers

	for i := 0; i < len(s.lines); i++ {
		line := s.line(i)
		next := s.line(i + 1)

		switch {
		case strings.HasPrefix(line, "public:"):
			s.access = models.AccessPublic
		case strings.HasPrefix(line, "protected:"):
			s.access = models.AccessProtected
		case strings.HasPrefix(line, "private:"):
			s.access = models.AccessPrivate
		default:
			kind, rest := annotations.Classify(line, m)
			if kind == annotations.NoMarker {
				break
			}
			end, err := s.dispatch(kind, rest, next, i)
			if err != nil {
				return err
			}
			i = end
		}

		if strings.HasPrefix(line, "///") {
			s.comments = append(s.comments, strings.TrimSpace(line[3:]))
		} else {
			s.comments = nil
		}
	}
	return nil
}

// dispatch parses the construct introduced by the marker on line i and
// returns the index of the last line it consumed.
func (s *fileScanner) dispatch(kind annotations.MarkerKind, rest, next string, i int) (int, error) {
	lineNum := i + 1
	comments := s.comments
	s.comments = nil

	switch kind {
	case annotations.EnumMarker:
		enum, end, err := s.parseEnum(rest, i)
		if err != nil {
			return i, err
		}
		enum.Comments = comments
		s.mirror.Enums = append(s.mirror.Enums, enum)
		return end, nil

	case annotations.EnumeratorMarker:
		return i, errors.OrphanAnnotation(s.parser.markers.Enumerator, "enum").WithLine(lineNum)

	case annotations.ClassMarker:
		class, err := s.parseClass(rest, next, lineNum, comments)
		if err != nil {
			return i, s.fail(err, i+1)
		}
		s.access = models.AccessPrivate
		s.mirror.Classes = append(s.mirror.Classes, class)
		s.parser.diagnostics.Verbose("Found class %s", class.Name)
		return i, nil
	}

	class := s.mirror.CurrentClass()
	if class == nil {
		return i, errors.OrphanAnnotation(annotations.MarkerName(kind, s.parser.markers), "class").WithLine(lineNum)
	}

	switch kind {
	case annotations.FieldMarker:
		field, err := s.parseField(rest, next, lineNum, comments)
		if err != nil {
			return i, s.fail(err, i+1)
		}
		class.Fields = append(class.Fields, *field)

	case annotations.MethodMarker:
		method, err := s.parseMethod(class, rest, next, lineNum, comments)
		if err != nil {
			return i, s.fail(err, i+1)
		}
		class.Methods = append(class.Methods, *method)

	case annotations.BodyMarker:
		s.access = models.AccessPublic
		class.BodyLine = lineNum
	}
	return i, nil
}

// fail attributes err to line index idx unless a sub-parser already placed
// it. Columns are counted on trimmed text, so the indentation is added back.
func (s *fileScanner) fail(err error, idx int) error {
	base, ok := errors.AsBase(err)
	if !ok || base.Loc.Line != 0 {
		return err
	}
	if base.Loc.Column > 0 && idx < len(s.lines) {
		raw := s.lines[idx]
		base.Loc.Column += len(raw) - len(strings.TrimLeft(raw, " \t"))
	}
	base.WithLine(idx + 1)
	return base
}

// locate stamps file and, when the error has none, line onto err. Errors
// from outside the taxonomy become syntax errors.
func locate(err error, file string, line int) error {
	base, ok := errors.AsBase(err)
	if !ok {
		base = errors.Wrap(errors.SyntaxErrorCode, err.Error(), err)
	}
	if base.Loc.Line == 0 && line != 0 {
		base.WithLine(line)
	}
	if base.Loc.File == "" {
		base.WithFile(file)
	}
	return base
}

func splitLines(src string) []string {
	src = strings.TrimPrefix(src, "\ufeff")
	lines := strings.Split(src, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return lines
}
