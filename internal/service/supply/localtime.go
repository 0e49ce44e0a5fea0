package supply

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/KasumiMercury/primind-power-scheduler/internal/domain"
)

const (
	meridiemAM = "AM"
	meridiemPM = "PM"
)

// ParseLocalTime converts a 12-hour "H:MMAM" / "HH:MMPM" sample label into a
// 24-hour time on ref's calendar date and location.
//
// 12PM stays 12, any other PM hour gets +12 and AM passes through unchanged,
// so "12:05AM" lands on 12:05 as well.
func ParseLocalTime(ref time.Time, s string) (time.Time, error) {
	raw := strings.TrimSpace(s)
	if len(raw) < len("H:MMAM") {
		return time.Time{}, fmt.Errorf("%q: %w", s, domain.ErrInvalidLocalTime)
	}

	clock, meridiem := raw[:len(raw)-2], raw[len(raw)-2:]
	if meridiem != meridiemAM && meridiem != meridiemPM {
		return time.Time{}, fmt.Errorf("%q: missing AM/PM marker: %w", s, domain.ErrInvalidLocalTime)
	}

	hourStr, minuteStr, ok := strings.Cut(clock, ":")
	if !ok || len(hourStr) < 1 || len(hourStr) > 2 || len(minuteStr) != 2 {
		return time.Time{}, fmt.Errorf("%q: expected H:MM or HH:MM: %w", s, domain.ErrInvalidLocalTime)
	}

	hour, err := strconv.Atoi(hourStr)
	if err != nil || hour < 1 || hour > 12 {
		return time.Time{}, fmt.Errorf("%q: hour out of range: %w", s, domain.ErrInvalidLocalTime)
	}
	minute, err := strconv.Atoi(minuteStr)
	if err != nil || minute < 0 || minute > 59 {
		return time.Time{}, fmt.Errorf("%q: minute out of range: %w", s, domain.ErrInvalidLocalTime)
	}

	if meridiem == meridiemPM && hour != 12 {
		hour += 12
	}

	year, month, day := ref.Date()
	return time.Date(year, month, day, hour, minute, 0, 0, ref.Location()), nil
}
