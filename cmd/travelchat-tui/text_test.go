package main

import (
	"strings"
	"testing"
	"time"
)

func TestWrapText(t *testing.T) {
	got := wrapText("where would you like to fly today", 12)
	for _, line := range strings.Split(got, "\n") {
		if len(line) > 12 {
			t.Fatalf("line exceeds width: %q", line)
		}
	}
	if strings.Join(strings.Fields(got), " ") != "where would you like to fly today" {
		t.Fatalf("words lost: %q", got)
	}
	if wrapText("a\n\nb", 10) != "a\n\nb" {
		t.Fatalf("blank lines should survive")
	}
	if wrapText("unchanged", 0) != "unchanged" {
		t.Fatalf("zero width should not wrap")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("Book Flight", 7); got != "Book..." {
		t.Fatalf("unexpected truncate: %q", got)
	}
	if got := truncate("ok", 7); got != "ok" {
		t.Fatalf("unexpected truncate: %q", got)
	}
	if got := truncate("héllo wörld", 5); got != "hé..." {
		t.Fatalf("unexpected rune truncate: %q", got)
	}
}

func TestCompactSingleLine(t *testing.T) {
	if got := compactSingleLine("  a\n b\t c ", 20); got != "a b c" {
		t.Fatalf("unexpected compact: %q", got)
	}
}

func TestShortTime(t *testing.T) {
	if shortTime(time.Time{}) != "--:--:--" {
		t.Fatalf("zero time should render placeholder")
	}
	ts := time.Date(2026, 1, 2, 3, 4, 5, 0, time.Local)
	if shortTime(ts) != "03:04:05" {
		t.Fatalf("unexpected time %q", shortTime(ts))
	}
}

func TestMaxInt(t *testing.T) {
	if maxInt(2, 3) != 3 || maxInt(4, -1) != 4 {
		t.Fatalf("maxInt broken")
	}
}
