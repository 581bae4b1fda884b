// Package timefmt converts between the tracker's decimal-hour magnitudes and
// the user-facing formats: the "hours.minutes" entry format (the fractional
// part is minutes, not a decimal fraction) and the "Xh Ym" display strings.
package timefmt

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrBadFormat is returned for input that is not "<hours>" or
// "<hours>.<minutes>" with numeric components.
var ErrBadFormat = errors.New("invalid hours.minutes format")

// ParseHoursMinutes reads entry-field input like "4000.45" as 4000 hours and
// 45 minutes, returning decimal hours (4000.75). Minutes of 60 or more are
// normalized into hours, so "10.75" yields 11.25. Input without a dot is
// whole hours. Negative values are rejected.
func ParseHoursMinutes(text string) (float64, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, ErrBadFormat
	}

	hoursStr, minsStr, hasDot := strings.Cut(text, ".")

	hours, err := strconv.Atoi(hoursStr)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadFormat, text)
	}
	if !hasDot {
		if hours < 0 {
			return 0, fmt.Errorf("%w: negative hours", ErrBadFormat)
		}
		return float64(hours), nil
	}

	minutes, err := strconv.Atoi(minsStr)
	if err != nil || minutes < 0 {
		return 0, fmt.Errorf("%w: %q", ErrBadFormat, text)
	}
	if hours < 0 {
		return 0, fmt.Errorf("%w: negative hours", ErrBadFormat)
	}

	// Normalize minute overflow into hours.
	hours += minutes / 60
	minutes %= 60

	return float64(hours) + float64(minutes)/60.0, nil
}

// FormatHoursMinutes renders decimal hours as both forms, e.g.
// 1.75 -> "1.75h (1h 45m)".
func FormatHoursMinutes(hours float64) string {
	h := int(hours)
	m := int((hours - float64(h)) * 60)
	return fmt.Sprintf("%.2fh (%dh %dm)", hours, h, m)
}

// FormatClock renders an elapsed duration as HH:MM:SS for the timer readout.
func FormatClock(d time.Duration) string {
	total := int(d.Seconds())
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}
