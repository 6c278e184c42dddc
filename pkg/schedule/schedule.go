// Package schedule resolves weekly recurring-task rules into concrete
// dated entry drafts. A rule names a weekday; the scheduler maps the
// weekday to a calendar date under a fixed, named policy.
package schedule

import (
	"time"

	"github.com/agentstation/timesync/pkg/records"
)

// Policy selects how a weekday resolves to a calendar date. The history
// of this logic carried two variants, so the choice is explicit rather
// than implied.
type Policy int

const (
	// NextWeek back-computes the weekday's date in the current week and
	// shifts it forward by exactly 7 days, always targeting the upcoming
	// week. This is the canonical policy.
	NextWeek Policy = iota

	// SameWeek is the earlier variant without the 7-day shift. It resolves
	// to the weekday within the current ISO week, which may lie in the
	// past. Kept for parity with historical runs only.
	SameWeek
)

// SpentDate resolves a weekday to a concrete date relative to today.
// The offset from today's ISO weekday to the target weekday is
// subtracted, then the policy's shift is applied.
func SpentDate(day records.Weekday, today time.Time, policy Policy) time.Time {
	offset := int(records.ISOWeekday(today)) - int(day)
	candidate := today.AddDate(0, 0, -offset)
	if policy == NextWeek {
		candidate = candidate.AddDate(0, 0, 7)
	}
	return candidate
}

// Draft is a weekly rule expanded to a concrete date, ready to be
// resolved against source-system ids and created.
type Draft struct {
	Person      string
	Project     string
	ProjectCode string
	TaskName    string
	Date        string // ISO date
	Hours       float64
}

// Materialize expands each rule into a dated draft under the given
// policy. Rules are independent; output order follows input order.
func Materialize(rules []records.WeeklyTaskRule, today time.Time, policy Policy) []Draft {
	drafts := make([]Draft, 0, len(rules))
	for _, rule := range rules {
		drafts = append(drafts, Draft{
			Person:      rule.Person,
			Project:     rule.Project,
			ProjectCode: rule.ProjectCode,
			TaskName:    rule.TaskName,
			Date:        SpentDate(rule.Weekday, today, policy).Format("2006-01-02"),
			Hours:       rule.Hours,
		})
	}
	return drafts
}
