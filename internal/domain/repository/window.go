package repository

import "time"

// Window represents the lookback range for market summaries.
type Window string

const (
	Window1h  Window = "1h"
	Window24h Window = "24h"
	Window7d  Window = "7d"
)

// IsValidWindow returns true if w is a supported summary window.
func IsValidWindow(w Window) bool {
	switch w {
	case Window1h, Window24h, Window7d:
		return true
	default:
		return false
	}
}

// DefaultWindow returns the default summary window.
func DefaultWindow() Window { return Window24h }

// NormalizeWindow converts raw string to a valid window (or default).
func NormalizeWindow(s string) Window {
	if s == "" {
		return DefaultWindow()
	}
	w := Window(s)
	if IsValidWindow(w) {
		return w
	}
	return DefaultWindow()
}

// Duration maps a window to its time span.
func (w Window) Duration() time.Duration {
	switch w {
	case Window1h:
		return time.Hour
	case Window7d:
		return 7 * 24 * time.Hour
	default:
		return 24 * time.Hour
	}
}
