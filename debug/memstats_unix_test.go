//go:build unix

package debug

import (
	"runtime"
	"testing"
)

func TestMaxRSSBytes(t *testing.T) {
	if got := maxRSSBytes(-5); got != 0 {
		t.Fatalf("negative rss should clamp to 0, got %d", got)
	}
	want := uint64(2048)
	if runtime.GOOS == "darwin" || runtime.GOOS == "ios" {
		want = 2
	}
	if got := maxRSSBytes(2); got != want {
		t.Fatalf("maxRSSBytes(2)=%d want %d", got, want)
	}
}
