package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
)

type LogLevel string

const (
	DEBUG LogLevel = "DEBUG"
	INFO  LogLevel = "INFO"
	WARN  LogLevel = "WARN"
	ERROR LogLevel = "ERROR"
)

var levelRank = map[LogLevel]int{
	DEBUG: 0,
	INFO:  1,
	WARN:  2,
	ERROR: 3,
}

type Logger struct {
	level LogLevel
	out   *log.Logger
}

// New returns a Logger writing to stderr so the console views on stdout stay clean.
func New(level LogLevel) *Logger {
	return NewWithWriter(level, os.Stderr)
}

func NewWithWriter(level LogLevel, w io.Writer) *Logger {
	if _, ok := levelRank[level]; !ok {
		level = INFO
	}
	return &Logger{
		level: level,
		out:   log.New(w, "", 0),
	}
}

// ParseLevel maps LOG_LEVEL values onto a LogLevel, defaulting to INFO.
func ParseLevel(raw string) LogLevel {
	level := LogLevel(strings.ToUpper(strings.TrimSpace(raw)))
	if _, ok := levelRank[level]; !ok {
		return INFO
	}
	return level
}

// Discard is handy in tests.
func Discard() *Logger {
	return NewWithWriter(ERROR, io.Discard)
}

func (l *Logger) enabled(level LogLevel) bool {
	return levelRank[level] >= levelRank[l.level]
}

func (l *Logger) logMessage(level LogLevel, message string) {
	if !l.enabled(level) {
		return
	}
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	l.out.Printf("[%s] [%s] %s", timestamp, coloredLevel(level), message)
}

func coloredLevel(level LogLevel) string {
	switch level {
	case INFO:
		return color.New(color.FgBlue).Sprint(string(INFO))
	case ERROR:
		return color.New(color.FgRed).Sprint(string(ERROR))
	case DEBUG:
		return color.New(color.FgCyan).Sprint(string(DEBUG))
	case WARN:
		return color.New(color.FgYellow).Sprint(string(WARN))
	default:
		return string(level)
	}
}

func (l *Logger) Debugf(format string, args ...any) {
	l.logMessage(DEBUG, fmt.Sprintf(format, args...))
}

func (l *Logger) Infof(format string, args ...any) {
	l.logMessage(INFO, fmt.Sprintf(format, args...))
}

func (l *Logger) Warnf(format string, args ...any) {
	l.logMessage(WARN, fmt.Sprintf(format, args...))
}

func (l *Logger) Errorf(format string, args ...any) {
	l.logMessage(ERROR, fmt.Sprintf(format, args...))
}

// Fatalf logs and exits the process.
func (l *Logger) Fatalf(format string, args ...any) {
	l.logMessage(ERROR, fmt.Sprintf(format, args...))
	os.Exit(1)
}
