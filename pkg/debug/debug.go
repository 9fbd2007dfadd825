// Package debug provides conditional diagnostic logging for mediadeck.
//
// Debug logging is enabled by setting the MEDIADECK_DEBUG environment
// variable:
//
//	MEDIADECK_DEBUG=1 mediadeck
//
// When enabled, debug messages are written to stderr with timestamps.
// When disabled (default), the Log family of functions are no-ops.
//
// Warn is different: it always writes. The browse stack reports programmer
// misuse (push of a root onto a non-empty stack, tab insert without a root)
// through Warn so that silently no-op'd operations stay observable even in
// release builds.
package debug

import (
	"log"
	"os"
	"time"
)

var (
	enabled bool
	logger  *log.Logger
	warner  = log.New(os.Stderr, "[mediadeck] ", log.Ltime)
)

func init() {
	if os.Getenv("MEDIADECK_DEBUG") != "" {
		enabled = true
		logger = log.New(os.Stderr, "[MEDIADECK_DEBUG] ", log.Ltime|log.Lmicroseconds)
	}
}

// Enabled returns whether debug logging is enabled.
func Enabled() bool {
	return enabled
}

// SetEnabled allows programmatic control of debug logging.
func SetEnabled(e bool) {
	enabled = e
	if e && logger == nil {
		logger = log.New(os.Stderr, "[MEDIADECK_DEBUG] ", log.Ltime|log.Lmicroseconds)
	}
}

// Log writes a debug message if debug logging is enabled.
// Uses printf-style formatting.
func Log(format string, args ...any) {
	if !enabled {
		return
	}
	logger.Printf(format, args...)
}

// LogTiming writes a timing message if debug logging is enabled.
func LogTiming(name string, d time.Duration) {
	if !enabled {
		return
	}
	logger.Printf("%s took %v", name, d)
}

// Warn writes a diagnostic regardless of MEDIADECK_DEBUG. Used for
// conditions that are survivable but indicate a bug in the caller.
func Warn(format string, args ...any) {
	warner.Printf(format, args...)
}

// SetWarnOutput redirects Warn output. Tests use this to capture misuse
// diagnostics without polluting stderr. Passing nil restores stderr.
func SetWarnOutput(l *log.Logger) {
	if l == nil {
		warner = log.New(os.Stderr, "[mediadeck] ", log.Ltime)
		return
	}
	warner = l
}
