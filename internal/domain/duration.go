package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

var durationPattern = regexp.MustCompile(`^(\d+)([mhd])$`)

const day = 24 * time.Hour

// ParseDuration converts a compact token like "30m", "2h" or "3d" into a
// time.Duration. Anything outside the grammar yields zero: callers treat the
// zero duration as "none/invalid", it is not an error.
func ParseDuration(token string) time.Duration {
	m := durationPattern.FindStringSubmatch(token)
	if m == nil {
		return 0
	}

	value, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}

	switch m[2] {
	case "m":
		return time.Duration(value) * time.Minute
	case "h":
		return time.Duration(value) * time.Hour
	case "d":
		return time.Duration(value) * day
	}
	return 0
}

// FormatDuration renders the largest whole unit, truncating the remainder:
// "90m" прочитается как "1 saat", "30m" — как "30 dakika".
func FormatDuration(d time.Duration) string {
	switch {
	case d >= day:
		return fmt.Sprintf("%d gün", int(d/day))
	case d >= time.Hour:
		return fmt.Sprintf("%d saat", int(d.Hours()))
	default:
		return fmt.Sprintf("%d dakika", int(d.Minutes()))
	}
}
