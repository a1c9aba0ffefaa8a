package database

import (
	"fmt"
	"strings"
	"time"
)

// uriEscaper escapes the characters that would end the path part of a file: URI.
var uriEscaper = strings.NewReplacer("%", "%25", "?", "%3f", "#", "%23")

// uriPath returns the file: URI form of cfg.Path without query parameters.
func uriPath(cfg Config) string {
	return "file:" + uriEscaper.Replace(cfg.Path)
}

// busyTimeoutMillis converts d to whole milliseconds for the engine.
func busyTimeoutMillis(d time.Duration) int64 {
	if d <= 0 {
		return 0
	}
	return d.Milliseconds()
}

// pragmaParams renders the tuning values of cfg as _pragma=name(value)
// query parameters, the form understood by the modernc and ncruces engines.
func pragmaParams(cfg Config) []string {
	params := []string{fmt.Sprintf("_pragma=busy_timeout(%d)", busyTimeoutMillis(cfg.BusyTimeout))}
	if cfg.JournalMode != "" {
		params = append(params, fmt.Sprintf("_pragma=journal_mode(%s)", cfg.JournalMode))
	}
	if cfg.Synchronous != "" {
		params = append(params, fmt.Sprintf("_pragma=synchronous(%s)", cfg.Synchronous))
	}
	return params
}
