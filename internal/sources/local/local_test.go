package local

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/timesync/pkg/records"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadWeeklyRules(t *testing.T) {
	path := writeFile(t, "weekly.yaml", `
weekly_entries:
  - person: Jose Martinez
    project: Platform
    code: ACM-01
    task: Standup
    weekday: monday
    hours: 0.5
  - person: Dana Reyes
    project: Platform
    code: ACM-01
    task: Planning
    weekday: FRIDAY
    hours: 2
`)

	rules, err := LoadWeeklyRules(path)
	require.NoError(t, err)
	require.Len(t, rules, 2)

	assert.Equal(t, records.Monday, rules[0].Weekday)
	assert.Equal(t, "Standup", rules[0].TaskName)
	assert.Equal(t, records.Friday, rules[1].Weekday)
	assert.Equal(t, 2.0, rules[1].Hours)
}

func TestLoadWeeklyRulesBadWeekday(t *testing.T) {
	path := writeFile(t, "weekly.yaml", `
weekly_entries:
  - person: Jose Martinez
    weekday: someday
    hours: 1
`)

	_, err := LoadWeeklyRules(path)
	assert.Error(t, err)
}

func TestLoadEligibleRoles(t *testing.T) {
	path := writeFile(t, "roles.yaml", `
eligible_roles:
  Engineer: 0.85
  Designer: 0.75
`)

	roles, err := LoadEligibleRoles(path)
	require.NoError(t, err)

	assert.True(t, roles.Has("Engineer"))
	assert.False(t, roles.Has("Bookkeeper"))
	assert.Equal(t, 85, roles.TargetPercent("Engineer"))
}

func TestLoadEligibleRolesEmpty(t *testing.T) {
	path := writeFile(t, "roles.yaml", `eligible_roles: {}`)

	_, err := LoadEligibleRoles(path)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := LoadWeeklyRules(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
