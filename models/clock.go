package models

import (
	"fmt"
	"strings"
	"time"
)

const clockLayout = "15:04"

// ParseClock parses a 24h time of day ("8:00", "08:00") into minutes from midnight.
func ParseClock(s string) (int, error) {
	t, err := time.Parse(clockLayout, strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q", s)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// CanonicalClock returns s in zero-padded HH:MM form.
func CanonicalClock(s string) (string, error) {
	mins, err := ParseClock(s)
	if err != nil {
		return "", err
	}
	return FormatClock(mins), nil
}

// FormatClock renders minutes from midnight as HH:MM.
func FormatClock(mins int) string {
	return fmt.Sprintf("%02d:%02d", mins/60, mins%60)
}

// HourKey renders an hour of day as the display key used by published schedules.
func HourKey(hour int) string {
	return FormatClock(hour * 60)
}
