package records

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeographyFromTimezone(t *testing.T) {
	tests := []struct {
		tz   string
		want Geography
	}{
		{"America/New_York (US & Canada)", GeographyUSA},
		{"Eastern Time (US & Canada)", GeographyUSA},
		{"Europe/Madrid", GeographySpain},
		{"madrid", GeographySpain},
		{"Europe/Berlin", GeographyUnknown},
		{"", GeographyUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.tz, func(t *testing.T) {
			assert.Equal(t, tt.want, GeographyFromTimezone(tt.tz))
		})
	}
}

func TestTimeEntryRow(t *testing.T) {
	entry := TimeEntry{
		ID:                1817515574,
		Date:              "2024-06-10",
		Person:            "Jose Martinez",
		Role:              "Engineer",
		Geography:         GeographySpain,
		Client:            "Acme Corp",
		Project:           "PLATFORM REBUILD",
		ProjectCode:       "ACM-01",
		Task:              "Development",
		Billable:          true,
		Locked:            false,
		Hours:             7.5,
		TargetUtilization: 85,
		CostRate:          decimal.RequireFromString("52.5"),
		HourlyRate:        decimal.RequireFromString("120"),
	}

	row := entry.Row()
	require.Len(t, row, EntryRowWidth)
	assert.Equal(t, "1817515574", row[0])
	assert.Equal(t, "2024-06-10", row[1])
	assert.Equal(t, "TRUE", row[9])
	assert.Equal(t, "FALSE", row[10])
	assert.Equal(t, "7.5", row[11])
	assert.Equal(t, "85", row[12])
	assert.Equal(t, "52.5", row[13])
	assert.Equal(t, "120", row[14])
}

func TestProjectRow(t *testing.T) {
	project := Project{
		ID:        5,
		Name:      "PLATFORM REBUILD",
		Code:      "ACM-01",
		Active:    true,
		Client:    "Acme Corp",
		StartDate: "2024-01-08",
		CreatedAt: "2023-12-20",
		UpdatedAt: "2024-05-02",
		Budget: Budget{
			Budget:    decimal.NewFromInt(1000),
			Spent:     decimal.NewFromInt(400),
			Remaining: decimal.NewFromInt(600),
		},
	}

	row := project.Row()
	require.Len(t, row, 13) // the A:M mirror range
	assert.Equal(t, "5", row[0])
	assert.Equal(t, "TRUE", row[3])
	assert.Equal(t, "1000", row[10])
	assert.Equal(t, "400", row[11])
	assert.Equal(t, "600", row[12])
}

func TestSnapshotRowAccessors(t *testing.T) {
	row := SnapshotRow{Index: 2, Cells: []string{"99", "2024-06-01", "x"}}
	assert.Equal(t, "99", row.ID())
	assert.Equal(t, "2024-06-01", row.Date())

	empty := SnapshotRow{Index: 3}
	assert.Empty(t, empty.ID())
	assert.Empty(t, empty.Date())
}

func TestParseWeekday(t *testing.T) {
	day, err := ParseWeekday("monday")
	require.NoError(t, err)
	assert.Equal(t, Monday, day)

	day, err = ParseWeekday(" SUNDAY ")
	require.NoError(t, err)
	assert.Equal(t, Sunday, day)

	_, err = ParseWeekday("SOMEDAY")
	assert.Error(t, err)
}

func TestISOWeekday(t *testing.T) {
	// 2024-06-09 is a Sunday, 2024-06-12 a Wednesday.
	sunday := time.Date(2024, 6, 9, 0, 0, 0, 0, time.UTC)
	wednesday := time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, Sunday, ISOWeekday(sunday))
	assert.Equal(t, Wednesday, ISOWeekday(wednesday))
}

func TestEligibleRoles(t *testing.T) {
	roles := EligibleRoles{"Engineer": 0.85, "Designer": 0.7}

	assert.True(t, roles.Has("Engineer"))
	assert.False(t, roles.Has("Sales"))
	assert.Equal(t, 85, roles.TargetPercent("Engineer"))
	assert.Equal(t, 70, roles.TargetPercent("Designer"))
	assert.Equal(t, 0, roles.TargetPercent("Sales"))
}
