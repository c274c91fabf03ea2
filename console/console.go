// Package console prints transmerge's operator output: tagged status lines
// on stderr and the progress of an apply run.
package console

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Logger writes [INFO]/[OK]/[WARN]/[ERROR] lines.
type Logger struct {
	w     io.Writer
	info  *color.Color
	ok    *color.Color
	warn  *color.Color
	err   *color.Color
	title *color.Color
	added *color.Color
}

// New returns a Logger writing to w. Colors follow color.NoColor, which is
// set when the output is not a terminal or NO_COLOR is set.
func New(w io.Writer) *Logger {
	return &Logger{
		w:     w,
		info:  color.New(color.FgBlue),
		ok:    color.New(color.FgGreen),
		warn:  color.New(color.FgYellow, color.Bold),
		err:   color.New(color.FgRed),
		title: color.New(color.FgBlue, color.Bold),
		added: color.New(color.FgGreen),
	}
}

// Stderr returns a Logger writing to os.Stderr.
func Stderr() *Logger {
	return New(color.Error)
}

func (l *Logger) line(c *color.Color, tag, format string, args ...any) {
	fmt.Fprintf(l.w, "%s %s\n", c.Sprint(tag), fmt.Sprintf(format, args...))
}

func (l *Logger) Info(format string, args ...any)    { l.line(l.info, "[INFO]", format, args...) }
func (l *Logger) Success(format string, args ...any) { l.line(l.ok, "[OK]", format, args...) }
func (l *Logger) Warning(format string, args ...any) { l.line(l.warn, "[WARN]", format, args...) }
func (l *Logger) Error(format string, args ...any)   { l.line(l.err, "[ERROR]", format, args...) }

// Title prints a section header preceded by a blank line.
func (l *Logger) Title(format string, args ...any) {
	fmt.Fprintf(l.w, "\n%s\n", l.title.Sprintf(format, args...))
}

// Plain prints an untagged line.
func (l *Logger) Plain(format string, args ...any) {
	fmt.Fprintf(l.w, format+"\n", args...)
}
