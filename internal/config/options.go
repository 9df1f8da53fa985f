package config

import (
	"path/filepath"
	"strings"

	"github.com/toyz/reflector/internal/errors"
)

const (
	DefaultAnnotationPrefix = "R"
	DefaultMacroPrefix      = "REFLECT"
)

// DefaultExtensions are the header extensions scanned when none are configured.
var DefaultExtensions = []string{".h", ".hpp", ".hh", ".hxx"}

// Options control scanning and output.
//
// Recursive descends into subdirectories of directory arguments. Quiet only
// reports errors and Verbose reports every analyzed file and class. Force
// rewrites outputs even when they are newer than their source. UseJSON
// renders each published mirror to JSON.
//
// AnnotationPrefix is the base token the markers are derived from, so "R"
// gives RClass, RField and so on. MacroPrefix is carried for code emission
// and unused while scanning.
//
// Extensions are the source file extensions picked up from directories.
// OutputDir receives mirror files; when empty they are written beside their
// source. Database, when set, receives the whole registry as one JSON
// document. Workers is the number of files scanned concurrently; 0 or 1
// scans sequentially.
type Options struct {
	Recursive        bool     `json:"recursive,omitempty" yaml:"recursive,omitempty" mapstructure:"recursive"`
	Quiet            bool     `json:"quiet,omitempty" yaml:"quiet,omitempty" mapstructure:"quiet"`
	Force            bool     `json:"force,omitempty" yaml:"force,omitempty" mapstructure:"force"`
	Verbose          bool     `json:"verbose,omitempty" yaml:"verbose,omitempty" mapstructure:"verbose"`
	UseJSON          bool     `json:"use_json,omitempty" yaml:"use_json,omitempty" mapstructure:"use_json"`
	AnnotationPrefix string   `json:"annotation_prefix,omitempty" yaml:"annotation_prefix,omitempty" mapstructure:"annotation_prefix"`
	MacroPrefix      string   `json:"macro_prefix,omitempty" yaml:"macro_prefix,omitempty" mapstructure:"macro_prefix"`
	Extensions       []string `json:"extensions,omitempty" yaml:"extensions,omitempty" mapstructure:"extensions"`
	OutputDir        string   `json:"output_dir,omitempty" yaml:"output_dir,omitempty" mapstructure:"output_dir"`
	Database         string   `json:"database,omitempty" yaml:"database,omitempty" mapstructure:"database"`
	Workers          int      `json:"workers,omitempty" yaml:"workers,omitempty" mapstructure:"workers"`

	markers Markers
}

// Markers are the literal annotation tokens derived from AnnotationPrefix.
type Markers struct {
	Enum       string
	Enumerator string
	Class      string
	Field      string
	Method     string
	Body       string
}

func NewOptions() *Options {
	o := &Options{
		UseJSON:          true,
		AnnotationPrefix: DefaultAnnotationPrefix,
		MacroPrefix:      DefaultMacroPrefix,
		Extensions:       append([]string(nil), DefaultExtensions...),
	}
	o.markers = deriveMarkers(o.AnnotationPrefix)
	return o
}

// New builds normalized options from the defaults and opts.
func New(opts ...Option) (*Options, error) {
	o := NewOptions()
	for _, fn := range opts {
		fn(o)
	}
	if err := o.Normalize(); err != nil {
		return nil, err
	}
	return o, nil
}

// Normalize fills defaults and derives the markers. It must be called after
// the options are changed by anything other than an Option.
func (o *Options) Normalize() error {
	o.AnnotationPrefix = strings.TrimSpace(o.AnnotationPrefix)
	if o.AnnotationPrefix == "" {
		o.AnnotationPrefix = DefaultAnnotationPrefix
	}
	for _, r := range o.AnnotationPrefix {
		if !isIdentRune(r) {
			return errors.ConfigurationError("annotation_prefix",
				"prefix must contain only letters, digits and underscores: "+o.AnnotationPrefix)
		}
	}
	if o.MacroPrefix == "" {
		o.MacroPrefix = DefaultMacroPrefix
	}

	if len(o.Extensions) == 0 {
		o.Extensions = append([]string(nil), DefaultExtensions...)
	}
	for i, ext := range o.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext != "" && !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		o.Extensions[i] = ext
	}

	if o.OutputDir != "" {
		o.OutputDir = filepath.Clean(o.OutputDir)
	}
	if o.Workers < 0 {
		return errors.ConfigurationError("workers", "worker count cannot be negative")
	}
	if o.Quiet && o.Verbose {
		// verbose wins
		o.Quiet = false
	}

	o.markers = deriveMarkers(o.AnnotationPrefix)
	return nil
}

// Markers returns the marker tokens for the current prefix.
func (o *Options) Markers() Markers {
	if o.markers.Class == "" {
		return deriveMarkers(o.AnnotationPrefix)
	}
	return o.markers
}

// HasExtension reports whether path has one of the configured extensions.
func (o *Options) HasExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range o.Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

func deriveMarkers(prefix string) Markers {
	if prefix == "" {
		prefix = DefaultAnnotationPrefix
	}
	return Markers{
		Enum:       prefix + "Enum",
		Enumerator: prefix + "Enumerator",
		Class:      prefix + "Class",
		Field:      prefix + "Field",
		Method:     prefix + "Method",
		Body:       prefix + "Body",
	}
}

func isIdentRune(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

// functional option pattern ---------------------------------------------------

type Option func(*Options)

func WithAnnotationPrefix(p string) Option { return func(o *Options) { o.AnnotationPrefix = p } }
func WithMacroPrefix(p string) Option      { return func(o *Options) { o.MacroPrefix = p } }
func WithRecursive() Option                { return func(o *Options) { o.Recursive = true } }
func WithQuiet() Option                    { return func(o *Options) { o.Quiet = true } }
func WithVerbose() Option                  { return func(o *Options) { o.Verbose = true } }
func WithForce() Option                    { return func(o *Options) { o.Force = true } }
func WithoutJSON() Option                  { return func(o *Options) { o.UseJSON = false } }
func WithOutputDir(d string) Option        { return func(o *Options) { o.OutputDir = d } }
func WithDatabase(p string) Option         { return func(o *Options) { o.Database = p } }
func WithWorkers(n int) Option             { return func(o *Options) { o.Workers = n } }
func WithExtensions(exts ...string) Option {
	return func(o *Options) { o.Extensions = append([]string(nil), exts...) }
}
