// Package local loads the run's declarative inputs from YAML files:
// weekly recurring-task rules and the eligible-roles map. Files are an
// alternative to the corresponding spreadsheet tabs for local runs.
package local

import (
	"os"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/timesync/pkg/errors"
	"github.com/agentstation/timesync/pkg/records"
)

type weeklyRulesFile struct {
	WeeklyEntries []ruleYAML `yaml:"weekly_entries"`
}

type ruleYAML struct {
	Person  string  `yaml:"person"`
	Project string  `yaml:"project"`
	Code    string  `yaml:"code"`
	Task    string  `yaml:"task"`
	Weekday string  `yaml:"weekday"`
	Hours   float64 `yaml:"hours"`
}

// LoadWeeklyRules reads a weekly rules file.
func LoadWeeklyRules(path string) ([]records.WeeklyTaskRule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapParse("yaml", path, err)
	}

	var file weeklyRulesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.WrapParse("yaml", path, err)
	}

	rules := make([]records.WeeklyTaskRule, 0, len(file.WeeklyEntries))
	for _, raw := range file.WeeklyEntries {
		day, err := records.ParseWeekday(raw.Weekday)
		if err != nil {
			return nil, err
		}
		rules = append(rules, records.WeeklyTaskRule{
			Person:      raw.Person,
			Project:     raw.Project,
			ProjectCode: raw.Code,
			TaskName:    raw.Task,
			Weekday:     day,
			Hours:       raw.Hours,
		})
	}
	return rules, nil
}

type eligibleRolesFile struct {
	EligibleRoles map[string]float64 `yaml:"eligible_roles"`
}

// LoadEligibleRoles reads an eligible-roles file mapping role names to
// target utilization fractions.
func LoadEligibleRoles(path string) (records.EligibleRoles, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapParse("yaml", path, err)
	}

	var file eligibleRolesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.WrapParse("yaml", path, err)
	}

	if len(file.EligibleRoles) == 0 {
		return nil, &errors.ValidationError{
			Field:   "eligible_roles",
			Value:   path,
			Message: "no roles defined",
		}
	}
	return records.EligibleRoles(file.EligibleRoles), nil
}
