package sheets

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/agentstation/timesync/pkg/errors"
	"github.com/agentstation/timesync/pkg/records"
)

// Snapshot reads the entries tab as indexed snapshot rows. The header
// row is skipped; indices are 1-based spreadsheet row numbers, so data
// starts at row 2.
func (s *Service) Snapshot(ctx context.Context, sheet string) ([]records.SnapshotRow, error) {
	values, err := s.Read(ctx, sheet)
	if err != nil {
		return nil, err
	}

	rows := make([]records.SnapshotRow, 0, len(values)-1)
	for i, cells := range values[1:] {
		rows = append(rows, records.SnapshotRow{Index: i + 2, Cells: cells})
	}
	return rows, nil
}

// WeeklyRules reads the weekly tasks tab: person, project, code, task,
// weekday, hours.
func (s *Service) WeeklyRules(ctx context.Context, sheet string) ([]records.WeeklyTaskRule, error) {
	values, err := s.Read(ctx, sheet)
	if err != nil {
		return nil, err
	}

	rules := make([]records.WeeklyTaskRule, 0, len(values)-1)
	for i, row := range values[1:] {
		if len(row) < 6 {
			return nil, &errors.ParseError{
				Format:  "cell",
				Source:  fmt.Sprintf("%s row %d", sheet, i+2),
				Message: "expected 6 columns, got " + strconv.Itoa(len(row)),
			}
		}

		day, err := records.ParseWeekday(row[4])
		if err != nil {
			return nil, err
		}
		hours, err := strconv.ParseFloat(row[5], 64)
		if err != nil {
			return nil, errors.WrapParse("cell", fmt.Sprintf("%s row %d hours", sheet, i+2), err)
		}

		rules = append(rules, records.WeeklyTaskRule{
			Person:      row[0],
			Project:     row[1],
			ProjectCode: row[2],
			TaskName:    row[3],
			Weekday:     day,
			Hours:       hours,
		})
	}
	return rules, nil
}

// EligibleRoles reads the roles tab: role name, target utilization. A
// percent-suffixed value keeps its historical reading, where the digits
// become the decimals of a zero-point fraction ("15%" is 0.15).
func (s *Service) EligibleRoles(ctx context.Context, sheet string) (records.EligibleRoles, error) {
	values, err := s.Read(ctx, sheet)
	if err != nil {
		return nil, err
	}

	roles := records.EligibleRoles{}
	for i, row := range values[1:] {
		if len(row) < 2 {
			return nil, &errors.ParseError{
				Format:  "cell",
				Source:  fmt.Sprintf("%s row %d", sheet, i+2),
				Message: "expected 2 columns, got " + strconv.Itoa(len(row)),
			}
		}

		raw := strings.TrimSpace(row[1])
		if strings.Contains(raw, "%") {
			raw = "0." + strings.Trim(raw, "%")
		}
		target, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, errors.WrapParse("cell", fmt.Sprintf("%s row %d target", sheet, i+2), err)
		}
		roles[row[0]] = target
	}
	return roles, nil
}

// LogUpdate appends one human-readable accounting row to the log tab,
// converting the cells-written count of a prior write into rows via the
// range's row width.
func (s *Service) LogUpdate(ctx context.Context, logSheet, updatedSheet string, cells, rowWidth int) error {
	rows := cells / rowWidth
	message := fmt.Sprintf("Logging info for %s: %d rows were appended on %s",
		s.now().Format("2006-01-02"), rows, updatedSheet)

	_, err := s.Append(ctx, logSheet, [][]string{{message}})
	return err
}
