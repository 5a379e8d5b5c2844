// Package logger provides the console logger used by the ftag commands.
//
// Output is plain text with level filtering; warnings and errors are
// colored when the destination is a terminal.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Log levels, lowest to highest.
const (
	levelTrace = iota
	levelDebug
	levelInfo
	levelWarn
	levelError
)

var levelNames = map[string]int{
	"trace": levelTrace,
	"debug": levelDebug,
	"info":  levelInfo,
	"warn":  levelWarn,
	"error": levelError,
}

// Console is a leveled, thread-safe console logger.
type Console struct {
	mu     sync.Mutex
	writer io.Writer
	level  int
	color  bool
}

// New creates a Console writing to w. level is one of trace, debug, info,
// warn, error (case-insensitive); empty or invalid levels default to info.
// colorMode is "always", "never" or "auto"; auto enables color when w is a
// terminal and NO_COLOR is unset.
func New(w io.Writer, level, colorMode string) *Console {
	lvl, ok := levelNames[strings.ToLower(strings.TrimSpace(level))]
	if !ok {
		lvl = levelInfo
	}
	var useColor bool
	switch colorMode {
	case "always":
		useColor = true
	case "never":
		useColor = false
	default:
		useColor = isTerminal(w) && !color.NoColor
	}
	return &Console{writer: w, level: lvl, color: useColor}
}

// Default returns a Console writing to stderr at the given level with
// automatic color detection.
func Default(level string) *Console {
	return New(os.Stderr, level, "auto")
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

func (c *Console) log(level int, paint *color.Color, format string, args ...any) {
	if c == nil || c.writer == nil || level < c.level {
		return
	}
	msg := fmt.Sprintf(format, args...)
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.color && paint != nil {
		paint.Fprintln(c.writer, msg)
		return
	}
	fmt.Fprintln(c.writer, msg)
}

// Tracef logs at trace level.
func (c *Console) Tracef(format string, args ...any) {
	c.log(levelTrace, nil, format, args...)
}

// Debugf logs at debug level.
func (c *Console) Debugf(format string, args ...any) {
	c.log(levelDebug, nil, format, args...)
}

// Infof logs at info level.
func (c *Console) Infof(format string, args ...any) {
	c.log(levelInfo, nil, format, args...)
}

// Warnf logs at warn level, in yellow on terminals.
func (c *Console) Warnf(format string, args ...any) {
	c.log(levelWarn, color.New(color.FgYellow), format, args...)
}

// Errorf logs at error level, in red on terminals.
func (c *Console) Errorf(format string, args ...any) {
	c.log(levelError, color.New(color.FgRed), format, args...)
}
