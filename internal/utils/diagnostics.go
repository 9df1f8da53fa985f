package utils

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

// DiagnosticLevel represents the level of diagnostic output
type DiagnosticLevel int

const (
	DiagnosticSilent DiagnosticLevel = iota
	DiagnosticError
	DiagnosticWarn
	DiagnosticInfo
	DiagnosticVerbose
	DiagnosticDebug
)

// String returns the string representation of the level
func (l DiagnosticLevel) String() string {
	switch l {
	case DiagnosticSilent:
		return "silent"
	case DiagnosticError:
		return "error"
	case DiagnosticWarn:
		return "warn"
	case DiagnosticInfo:
		return "info"
	case DiagnosticVerbose:
		return "verbose"
	case DiagnosticDebug:
		return "debug"
	default:
		return "unknown"
	}
}

// LevelFor maps the quiet and verbose switches to a level.
func LevelFor(quiet, verbose bool) DiagnosticLevel {
	switch {
	case verbose:
		return DiagnosticVerbose
	case quiet:
		return DiagnosticError
	default:
		return DiagnosticInfo
	}
}

// DiagnosticSystem provides structured, user-friendly output. It is safe for
// use from several goroutines; each message is written with a single call.
type DiagnosticSystem struct {
	mu        sync.Mutex
	level     DiagnosticLevel
	useColors bool
	showTime  bool
	output    io.Writer
	errorOut  io.Writer
}

// NewDiagnosticSystem creates a new diagnostic system
func NewDiagnosticSystem(level DiagnosticLevel) *DiagnosticSystem {
	return &DiagnosticSystem{
		level:     level,
		useColors: shouldUseColors(),
		showTime:  level >= DiagnosticDebug,
		output:    os.Stdout,
		errorOut:  os.Stderr,
	}
}

// NewQuietDiagnostics creates a diagnostic system that only shows errors
func NewQuietDiagnostics() *DiagnosticSystem {
	return NewDiagnosticSystem(DiagnosticError)
}

// NewVerboseDiagnostics creates a diagnostic system with full output
func NewVerboseDiagnostics() *DiagnosticSystem {
	return NewDiagnosticSystem(DiagnosticVerbose)
}

// SetOutput redirects regular and error output. Colors are turned off, as
// the writers are usually not terminals.
func (d *DiagnosticSystem) SetOutput(out, errOut io.Writer) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.output = out
	d.errorOut = errOut
	d.useColors = false
}

func (d *DiagnosticSystem) Level() DiagnosticLevel { return d.level }

// Enabled reports whether messages at level are shown
func (d *DiagnosticSystem) Enabled(level DiagnosticLevel) bool {
	return d != nil && d.level >= level
}

// ErrorWriter returns the writer errors go to
func (d *DiagnosticSystem) ErrorWriter() io.Writer { return d.errorOut }

// UseColors reports whether output is colored
func (d *DiagnosticSystem) UseColors() bool { return d.useColors }

var levelColors = map[string]*color.Color{
	"ERROR":   color.New(color.FgRed),
	"WARN":    color.New(color.FgYellow),
	"INFO":    color.New(color.FgBlue),
	"SUCCESS": color.New(color.FgGreen),
	"VERBOSE": color.New(color.FgHiBlack),
	"DEBUG":   color.New(color.FgMagenta),
}

// Error outputs error messages (always shown unless silent)
func (d *DiagnosticSystem) Error(format string, args ...interface{}) {
	if d.Enabled(DiagnosticError) {
		d.writeMessage(d.errorOut, "ERROR", format, args...)
	}
}

// Warn outputs warning messages
func (d *DiagnosticSystem) Warn(format string, args ...interface{}) {
	if d.Enabled(DiagnosticWarn) {
		d.writeMessage(d.output, "WARN", format, args...)
	}
}

// Info outputs informational messages
func (d *DiagnosticSystem) Info(format string, args ...interface{}) {
	if d.Enabled(DiagnosticInfo) {
		d.writeMessage(d.output, "INFO", format, args...)
	}
}

// Success outputs success messages with emphasis
func (d *DiagnosticSystem) Success(format string, args ...interface{}) {
	if d.Enabled(DiagnosticInfo) {
		d.writeMessage(d.output, "SUCCESS", format, args...)
	}
}

// Verbose outputs detailed messages (verbose mode only)
func (d *DiagnosticSystem) Verbose(format string, args ...interface{}) {
	if d.Enabled(DiagnosticVerbose) {
		d.writeMessage(d.output, "VERBOSE", format, args...)
	}
}

// Debug outputs debug messages (highest verbosity)
func (d *DiagnosticSystem) Debug(format string, args ...interface{}) {
	if d.Enabled(DiagnosticDebug) {
		d.writeMessage(d.output, "DEBUG", format, args...)
	}
}

// Header outputs the tool banner
func (d *DiagnosticSystem) Header(message string) {
	if d.Enabled(DiagnosticInfo) {
		d.writeLine(d.output, d.paint(color.New(color.FgCyan), "Reflector: ")+message)
	}
}

// PhaseItem outputs a completed step with a checkmark
func (d *DiagnosticSystem) PhaseItem(format string, args ...interface{}) {
	if d.Enabled(DiagnosticInfo) {
		d.writeLine(d.output, d.paint(color.New(color.FgGreen), "✓ ")+fmt.Sprintf(format, args...))
	}
}

// FileWritten reports an output file
func (d *DiagnosticSystem) FileWritten(path string) {
	if d.Enabled(DiagnosticInfo) {
		d.writeLine(d.output, d.paint(color.New(color.FgMagenta), "✏ ")+"Writing "+path)
	}
}

// Summary outputs a final summary; keys are printed in the given order
func (d *DiagnosticSystem) Summary(title string, keys []string, stats map[string]interface{}) {
	if !d.Enabled(DiagnosticInfo) {
		return
	}
	var b strings.Builder
	fmt.Fprintf(&b, "\n%s\n", title)
	for _, key := range keys {
		fmt.Fprintf(&b, "   %s: %v\n", key, stats[key])
	}
	d.writeLine(d.output, b.String())
}

func (d *DiagnosticSystem) paint(c *color.Color, s string) string {
	if !d.useColors {
		return s
	}
	return c.Sprint(s)
}

// writeMessage is the internal message writing function
func (d *DiagnosticSystem) writeMessage(writer io.Writer, level, format string, args ...interface{}) {
	var output strings.Builder

	if d.showTime {
		output.WriteString(time.Now().Format("15:04:05 "))
	}

	tag := "[" + level + "]"
	if c, ok := levelColors[level]; ok {
		tag = d.paint(c, tag)
	}
	output.WriteString(tag)
	output.WriteString(" ")
	output.WriteString(fmt.Sprintf(format, args...))

	d.writeLine(writer, output.String())
}

func (d *DiagnosticSystem) writeLine(writer io.Writer, line string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fmt.Fprintln(writer, line)
}

// shouldUseColors determines if colors should be used
func shouldUseColors() bool {
	// Check if NO_COLOR is set (standard)
	if os.Getenv("NO_COLOR") != "" {
		return false
	}

	// Check if FORCE_COLOR is set
	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}

	return !color.NoColor
}
