package api

import (
	"testing"
	"time"
)

func TestFormatLongDate(t *testing.T) {
	value := time.Date(2026, time.March, 2, 22, 30, 0, 0, time.UTC)

	if got := formatLongDate(value, "en", time.UTC); got != "Monday 02 March 2026" {
		t.Fatalf("expected english date, got %q", got)
	}
	if got := formatLongDate(value, "ru", time.UTC); got != "понедельник 02 марта 2026" {
		t.Fatalf("expected russian date, got %q", got)
	}
	if got := formatLongDate(value, "de", time.UTC); got != "Monday 02 March 2026" {
		t.Fatalf("expected fallback date, got %q", got)
	}
}

func TestFormatLongDateUsesLocation(t *testing.T) {
	value := time.Date(2026, time.March, 2, 22, 30, 0, 0, time.UTC)
	moscow := time.FixedZone("MSK", 3*60*60)

	if got := formatLongDate(value, "en", moscow); got != "Tuesday 03 March 2026" {
		t.Fatalf("expected date in target zone, got %q", got)
	}
	if got := formatLongDate(time.Time{}, "en", moscow); got != "" {
		t.Fatalf("expected empty string for zero time, got %q", got)
	}
}
