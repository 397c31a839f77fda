package ranking

import (
	"errors"
	"fmt"
	"time"
)

type PeriodType string

const (
	Weekly  PeriodType = "weekly"
	Monthly PeriodType = "monthly"
)

var ErrUnknownPeriodType = errors.New("period type must be weekly or monthly")

// WeekLabel returns the ISO-week label for t, e.g. "2025-W45".
func WeekLabel(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// MonthLabel returns the calendar-month label for t, e.g. "2025-11".
func MonthLabel(t time.Time) string {
	return fmt.Sprintf("%d-%02d", t.Year(), int(t.Month()))
}

// Label returns the period label containing t for the given period type.
func Label(pt PeriodType, t time.Time) (string, error) {
	switch pt {
	case Weekly:
		return WeekLabel(t), nil
	case Monthly:
		return MonthLabel(t), nil
	default:
		return "", ErrUnknownPeriodType
	}
}

// Key builds the composite period key, e.g. "weekly-2025-W45".
func Key(pt PeriodType, label string) string {
	return string(pt) + "-" + label
}

// Start returns the first instant of the period containing t: local Monday
// 00:00:00 of the ISO week, or the first of the calendar month.
func Start(pt PeriodType, t time.Time) (time.Time, error) {
	switch pt {
	case Weekly:
		daysFromMonday := int(t.Weekday()) - 1
		if daysFromMonday < 0 { // Sunday
			daysFromMonday = 6
		}
		monday := t.AddDate(0, 0, -daysFromMonday)
		return time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, t.Location()), nil
	case Monthly:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location()), nil
	default:
		return time.Time{}, ErrUnknownPeriodType
	}
}
