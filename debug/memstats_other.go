//go:build !unix && !windows

package debug

import (
	"log/slog"
	"time"
)

// StartMemLogger is unavailable on this platform; it logs once and returns.
func StartMemLogger(_ time.Duration, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("memlog: not supported on this platform")
	}
}
