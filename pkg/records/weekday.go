package records

import (
	"strings"
	"time"

	"github.com/agentstation/timesync/pkg/errors"
)

// Weekday is an ISO weekday (Monday = 1 .. Sunday = 7), matching the
// day-of-week column of the weekly tasks sheet.
type Weekday int

// ISO weekday values.
const (
	Monday Weekday = iota + 1
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayNames = map[string]Weekday{
	"MONDAY":    Monday,
	"TUESDAY":   Tuesday,
	"WEDNESDAY": Wednesday,
	"THURSDAY":  Thursday,
	"FRIDAY":    Friday,
	"SATURDAY":  Saturday,
	"SUNDAY":    Sunday,
}

// ParseWeekday parses a case-insensitive weekday name.
func ParseWeekday(name string) (Weekday, error) {
	day, ok := weekdayNames[strings.ToUpper(strings.TrimSpace(name))]
	if !ok {
		return 0, &errors.ValidationError{
			Field:   "weekday",
			Value:   name,
			Message: "unknown weekday name",
		}
	}
	return day, nil
}

// String returns the upper-case weekday name.
func (w Weekday) String() string {
	for name, day := range weekdayNames {
		if day == w {
			return name
		}
	}
	return "UNKNOWN"
}

// ISOWeekday converts a time.Time weekday to the ISO numbering, where
// Sunday is 7 rather than 0.
func ISOWeekday(t time.Time) Weekday {
	if t.Weekday() == time.Sunday {
		return Sunday
	}
	return Weekday(t.Weekday())
}
