package util

import (
	"strconv"
	"testing"
	"time"
)

func TestParseTimeISODate(t *testing.T) {
	got, ok := ParseTime("2022-06-15")
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.Year() != 2022 || got.Month() != time.June || got.Day() != 15 {
		t.Fatalf("unexpected time %v", got)
	}
}

func TestParseTimeRFC3339(t *testing.T) {
	s := "2024-10-10T10:10:10Z"
	got, ok := ParseTime(s)
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.UTC().Format(time.RFC3339) != s {
		t.Fatalf("unexpected time %v", got)
	}
}

func TestParseTimeUnix(t *testing.T) {
	ts := time.Date(2024, 10, 10, 10, 10, 10, 0, time.UTC).Unix()
	got, ok := ParseTime(strconv.FormatInt(ts, 10))
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.Unix() != ts {
		t.Fatalf("unexpected unix %v", got.Unix())
	}
}

func TestParseTimeInvalid(t *testing.T) {
	if _, ok := ParseTime("not-a-date"); ok {
		t.Fatalf("expected not ok")
	}
}

func TestParseTimeDefault(t *testing.T) {
	def := time.Date(2024, 10, 10, 10, 10, 10, 0, time.UTC)
	got := ParseTimeDefault("", def)
	if !got.Equal(def) {
		t.Fatalf("expected default")
	}
}

func TestParseIntDefault(t *testing.T) {
	if got := ParseIntDefault("42", 7); got != 42 {
		t.Fatalf("got %d", got)
	}
	if got := ParseIntDefault("", 7); got != 7 {
		t.Fatalf("got %d", got)
	}
	if got := ParseIntDefault("abc", 7); got != 7 {
		t.Fatalf("got %d", got)
	}
}
