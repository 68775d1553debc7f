package capture

import (
	"image"
	"testing"
)

func TestParseGeometry(t *testing.T) {
	r, ok := ParseGeometry(" 300x200+10+-5 ")
	if !ok || r != image.Rect(10, -5, 310, 195) {
		t.Fatalf("unexpected rect %v ok=%v", r, ok)
	}
	for _, bad := range []string{"", "300x200", "0x10+1+1", "axb+1+1"} {
		if _, ok := ParseGeometry(bad); ok {
			t.Fatalf("expected %q to be rejected", bad)
		}
	}
}

func TestInset(t *testing.T) {
	if got := Inset(image.Rect(0, 0, 100, 50), 4); got != image.Rect(4, 4, 96, 46) {
		t.Fatalf("unexpected inset %v", got)
	}
	if got := Inset(image.Rect(0, 0, 6, 6), 4); got != (image.Rectangle{}) {
		t.Fatalf("expected empty rect, got %v", got)
	}
	if got := Inset(image.Rect(0, 0, 3, 3), 2); got != (image.Rectangle{}) {
		t.Fatalf("over-inset must not flip into a non-empty rect, got %v", got)
	}
	if got := Inset(image.Rect(0, 0, 100, 4), 2); got != (image.Rectangle{}) {
		t.Fatalf("expected empty rect for a zero-height remainder, got %v", got)
	}
}
