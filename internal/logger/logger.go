package logger

import (
	"fmt"
	"log"
)

type Logger struct {
	l         *log.Logger
	component string
	debug     bool
}

func New(l *log.Logger) *Logger {
	return &Logger{l: l} //nolint:exhaustruct
}

// Named returns a logger that prefixes every line with the component name.
// The underlying writer and debug setting are shared.
func (l *Logger) Named(component string) *Logger {
	return &Logger{
		l:         l.l,
		component: component,
		debug:     l.debug,
	}
}

// WithDebug toggles LogDebugf output.
func (l *Logger) WithDebug(enabled bool) *Logger {
	return &Logger{
		l:         l.l,
		component: l.component,
		debug:     enabled,
	}
}

func (l *Logger) LogErrorf(format string, v ...any) {
	l.print("Error", format, v...)
}

func (l *Logger) LogWarnf(format string, v ...any) {
	l.print("Warn", format, v...)
}

func (l *Logger) LogInfo(format string, v ...any) {
	l.print("Info", format, v...)
}

func (l *Logger) LogDebugf(format string, v ...any) {
	if !l.debug {
		return
	}

	l.print("Debug", format, v...)
}

func (l *Logger) print(level, format string, v ...any) {
	msg := fmt.Sprintf(format, v...)

	if l.component != "" {
		l.l.Printf("[%s] %s: %s\n", level, l.component, msg)

		return
	}

	l.l.Printf("[%s]: %s\n", level, msg)
}
