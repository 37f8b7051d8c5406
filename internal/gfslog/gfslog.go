// Package gfslog is a leveled shim over the standard log package, driven
// by the $LOGGING environment variable (DEBUG, INFO, WARNING, ERROR;
// default INFO), mirroring gfs.constants.get_logging_level from
// original_source.
package gfslog

import (
	"log"
	"os"
	"strings"
)

// Level is a log severity, ordered so that higher values are more severe.
type Level int

const (
	Debug Level = iota
	Info
	Warning
	Error
)

func (l Level) String() string {
	switch l {
	case Debug:
		return "DEBUG"
	case Info:
		return "INFO"
	case Warning:
		return "WARNING"
	case Error:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

func parseLevel(s string) (Level, bool) {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return Debug, true
	case "INFO":
		return Info, true
	case "WARNING", "WARN":
		return Warning, true
	case "ERROR":
		return Error, true
	default:
		return 0, false
	}
}

// levelFromEnv reads $LOGGING, falling back to Info (and logging a
// warning) on an unrecognized value, matching get_logging_level.
func levelFromEnv() Level {
	raw := os.Getenv("LOGGING")
	if raw == "" {
		return Info
	}
	level, ok := parseLevel(raw)
	if !ok {
		log.Printf("gfslog: invalid log level %q, defaulting to INFO", raw)
		return Info
	}
	return level
}

// current is resolved once at package init, matching the teacher's
// process-wide logging configuration (logging.basicConfig at import time).
var current = levelFromEnv()

// SetLevel overrides the active level; tests use this instead of mutating
// the environment.
func SetLevel(l Level) { current = l }

func logf(l Level, format string, args ...any) {
	if l < current {
		return
	}
	log.Printf("["+l.String()+"] "+format, args...)
}

func Debugf(format string, args ...any)   { logf(Debug, format, args...) }
func Infof(format string, args ...any)    { logf(Info, format, args...) }
func Warningf(format string, args ...any) { logf(Warning, format, args...) }
func Errorf(format string, args ...any)   { logf(Error, format, args...) }
