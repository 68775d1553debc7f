//go:build unix

package debug

// Memory/RSS periodic logger enabled when config.Debug is true.
// Logs peak resident set size along with Go heap stats; decoded images are
// the main heap consumer, so growth here usually means the image cache.

import (
	"log/slog"
	"runtime"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/sys/unix"
)

// StartMemLogger launches a goroutine that logs memory stats every interval.
// It is best-effort; failures to query RSS are logged once and suppressed.
func StartMemLogger(interval time.Duration, logger *slog.Logger) {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	if logger == nil {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		var rssErrLogged bool
		for range ticker.C {
			var ms runtime.MemStats
			runtime.ReadMemStats(&ms)
			var ru unix.Rusage
			rss := uint64(0)
			if err := unix.Getrusage(unix.RUSAGE_SELF, &ru); err == nil {
				rss = maxRSSBytes(int64(ru.Maxrss))
			} else if !rssErrLogged {
				logger.Warn("memlog: getrusage failed", slog.String("err", err.Error()))
				rssErrLogged = true
			}
			logger.Info("memstats",
				slog.Int("goroutines", runtime.NumGoroutine()),
				slog.String("heap_alloc", humanize.Bytes(ms.HeapAlloc)),
				slog.String("heap_inuse", humanize.Bytes(ms.HeapInuse)),
				slog.String("heap_sys", humanize.Bytes(ms.HeapSys)),
				slog.String("max_rss", humanize.Bytes(rss)),
				slog.Uint64("num_gc", uint64(ms.NumGC)),
			)
		}
	}()
}

// maxRSSBytes normalizes ru_maxrss, reported in bytes on darwin and KiB elsewhere.
func maxRSSBytes(v int64) uint64 {
	if v < 0 {
		return 0
	}
	if runtime.GOOS == "darwin" || runtime.GOOS == "ios" {
		return uint64(v)
	}
	return uint64(v) * 1024
}
