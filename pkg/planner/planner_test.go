package planner

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/timesync/pkg/records"
)

func sourceProject(id int64, name, code, client string, billable, active bool) records.Project {
	return records.Project{
		ID:       id,
		Name:     name,
		Code:     code,
		Client:   client,
		Billable: billable,
		Active:   active,
	}
}

func TestProjectSyncAligned(t *testing.T) {
	targets := []TargetProject{
		{ID: 10, Name: "Platform", Code: "ACM-01", ClientID: 7, NonBillable: 0, Active: 1},
	}
	source := []records.Project{
		sourceProject(1, "PLATFORM", "acm-01", "Acme", true, true),
	}
	clients := map[string]int64{"Acme": 7}

	assert.Empty(t, ProjectSync(targets, source, clients))
}

func TestProjectSyncInvertedBillablePolarity(t *testing.T) {
	// Source billable=true must map to target non_billable=0.
	targets := []TargetProject{
		{ID: 10, Name: "Platform", Code: "ACM-01", ClientID: 7, NonBillable: 1, Active: 1},
	}
	source := []records.Project{
		sourceProject(1, "Platform", "ACM-01", "Acme", true, true),
	}
	clients := map[string]int64{"Acme": 7}

	patches := ProjectSync(targets, source, clients)
	require.Len(t, patches, 1)
	assert.Equal(t, "projects", patches[0].Endpoint)
	assert.Equal(t, int64(10), patches[0].ID)
	assert.Equal(t, map[string]any{"non_billable": 0}, patches[0].Fields)
}

func TestProjectSyncMultipleFields(t *testing.T) {
	targets := []TargetProject{
		{ID: 10, Name: "Platform", Code: "ACM-01", ClientID: 3, NonBillable: 0, Active: 1},
	}
	source := []records.Project{
		sourceProject(1, "Platform", "ACM-01", "Acme", false, false),
	}
	clients := map[string]int64{"Acme": 7}

	patches := ProjectSync(targets, source, clients)
	require.Len(t, patches, 1)
	assert.Equal(t, map[string]any{
		"client_id":    int64(7),
		"non_billable": 1,
		"active":       0,
	}, patches[0].Fields)
}

func TestProjectSyncUnmatchedSkipped(t *testing.T) {
	targets := []TargetProject{
		{ID: 10, Name: "Orphan", Code: "ORP-01"},
	}
	source := []records.Project{
		sourceProject(1, "Platform", "ACM-01", "Acme", true, true),
	}

	assert.Empty(t, ProjectSync(targets, source, map[string]int64{"Acme": 7}))
}

func TestProjectSyncCodeMismatchNoFallback(t *testing.T) {
	// Both sides carry a code, so a name-only match is not enough.
	targets := []TargetProject{
		{ID: 10, Name: "Platform", Code: "OTHER", NonBillable: 1, Active: 0},
	}
	source := []records.Project{
		sourceProject(1, "Platform", "ACM-01", "Acme", true, true),
	}

	assert.Empty(t, ProjectSync(targets, source, map[string]int64{"Acme": 7}))
}

func TestProjectSyncUnknownClientSkipsClientField(t *testing.T) {
	targets := []TargetProject{
		{ID: 10, Name: "Platform", Code: "ACM-01", ClientID: 3, NonBillable: 0, Active: 0},
	}
	source := []records.Project{
		sourceProject(1, "Platform", "ACM-01", "Acme", true, true),
	}

	patches := ProjectSync(targets, source, map[string]int64{})
	require.Len(t, patches, 1)
	assert.Equal(t, map[string]any{"active": 1}, patches[0].Fields)
}

func TestProjectSyncIdempotent(t *testing.T) {
	targets := []TargetProject{
		{ID: 10, Name: "Platform", Code: "ACM-01", ClientID: 3, NonBillable: 1, Active: 0},
	}
	source := []records.Project{
		sourceProject(1, "Platform", "ACM-01", "Acme", true, true),
	}
	clients := map[string]int64{"Acme": 7}

	first := ProjectSync(targets, source, clients)
	require.Len(t, first, 1)

	// Apply the patch to the target and re-plan; nothing should remain.
	targets[0].ClientID = 7
	targets[0].NonBillable = 0
	targets[0].Active = 1

	assert.Empty(t, ProjectSync(targets, source, clients))
}

func sourcePerson(name, role string, rate string, active bool) records.Person {
	return records.Person{
		ID:                1,
		FullName:          name,
		Role:              role,
		DefaultHourlyRate: decimal.RequireFromString(rate),
		Active:            active,
	}
}

func TestPersonSyncAligned(t *testing.T) {
	targets := []TargetPerson{
		{ID: 20, Name: "Jose Martinez", JobTitle: "Engineer", HourlyRate: decimal.RequireFromString("120"), Active: true},
	}
	source := []records.Person{
		sourcePerson("José Martínez", "Engineer", "120", true),
	}

	assert.Empty(t, PersonSync(targets, source))
}

func TestPersonSyncDiacriticJoin(t *testing.T) {
	targets := []TargetPerson{
		{ID: 20, Name: "Jose Martinez", JobTitle: "Developer", HourlyRate: decimal.RequireFromString("120"), Active: true},
	}
	source := []records.Person{
		sourcePerson("José Martínez", "Engineer", "120", true),
	}

	patches := PersonSync(targets, source)
	require.Len(t, patches, 1)
	assert.Equal(t, "people", patches[0].Endpoint)
	assert.Equal(t, map[string]any{"job_title": "Engineer"}, patches[0].Fields)
}

func TestPersonSyncMissingRateTreatedAsZero(t *testing.T) {
	targets := []TargetPerson{
		{ID: 20, Name: "Dana Reyes", JobTitle: "Designer", Active: true},
	}
	source := []records.Person{
		{ID: 2, FullName: "Dana Reyes", Role: "Designer", Active: true},
	}

	assert.Empty(t, PersonSync(targets, source))
}

func TestPersonSyncAllFields(t *testing.T) {
	targets := []TargetPerson{
		{ID: 20, Name: "Dana Reyes", JobTitle: "Designer", HourlyRate: decimal.RequireFromString("90"), Active: true},
	}
	source := []records.Person{
		sourcePerson("Dana Reyes", "Lead Designer", "95", false),
	}

	patches := PersonSync(targets, source)
	require.Len(t, patches, 1)
	assert.Equal(t, map[string]any{
		"default_hourly_rate": "95",
		"job_title":           "Lead Designer",
		"active":              0,
	}, patches[0].Fields)
}

func TestPersonSyncUnmatchedSkipped(t *testing.T) {
	targets := []TargetPerson{
		{ID: 20, Name: "Nobody Known", JobTitle: "Ghost"},
	}
	source := []records.Person{
		sourcePerson("Dana Reyes", "Designer", "90", true),
	}

	assert.Empty(t, PersonSync(targets, source))
}
