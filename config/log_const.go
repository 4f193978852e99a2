package config

import (
	"fmt"
	"io"
	"log"
)

const (
	LogErrorColor = "\033[31m"
	LogInfoColor  = "\033[32m"
	LogColorReset = "\033[0m"
)

// Color constants for logging
const (
	ColorGreen   = "\033[32m"
	ColorBlue    = "\033[34m"
	ColorMagenta = "\033[35m"
	ColorCyan    = "\033[36m"
	ColorReset   = "\033[0m"
)

// NewLogger returns a logger whose lines start with a colored [name] tag.
func NewLogger(name, color string, w io.Writer) *log.Logger {
	return log.New(w, fmt.Sprintf("%s[%s]%s ", color, name, ColorReset), log.LstdFlags|log.Lmsgprefix)
}

// Infof logs an [INFO] line in the package's level colors.
func Infof(l *log.Logger, format string, args ...any) {
	l.Printf("%s[INFO]%s "+format, append([]any{LogInfoColor, LogColorReset}, args...)...)
}

// Errorf logs an [ERROR] line in the package's level colors.
func Errorf(l *log.Logger, format string, args ...any) {
	l.Printf("%s[ERROR]%s "+format, append([]any{LogErrorColor, LogColorReset}, args...)...)
}
