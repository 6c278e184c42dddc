package planner

import (
	"github.com/shopspring/decimal"

	"github.com/agentstation/timesync/pkg/logging"
	"github.com/agentstation/timesync/pkg/normalize"
	"github.com/agentstation/timesync/pkg/records"
)

// TargetProject is a project as the scheduling system stores it. The
// billable and active flags keep the target's 1/0 encoding so the diff
// runs in target polarity.
type TargetProject struct {
	ID          int64
	Name        string
	Code        string
	ClientID    int64
	NonBillable int // 0 billable, 1 non-billable
	Active      int // 1 active, 0 inactive
}

// TargetPerson is a person as the scheduling system stores it, with the
// rate and title already defaulted (missing rate is 0, missing title is
// the empty string).
type TargetPerson struct {
	ID         int64
	Name       string
	JobTitle   string
	HourlyRate decimal.Decimal
	Active     bool
}

// ProjectSync plans the patches that align target projects with their
// source counterparts. Matching follows the (name, code) policy; a
// target project with no source counterpart is a data-quality warning,
// not an error, and produces no patch. clientIDs maps a client name to
// its target-system id.
func ProjectSync(targets []TargetProject, source []records.Project, clientIDs map[string]int64) []Patch {
	refs := make([]normalize.ProjectRef, 0, len(source))
	byID := make(map[int64]records.Project, len(source))
	for _, p := range source {
		refs = append(refs, normalize.ProjectRef{ID: p.ID, Name: p.Name, Code: p.Code})
		byID[p.ID] = p
	}

	var patches []Patch
	for _, target := range targets {
		sourceID, ok := normalize.MatchProject(refs, target.Name, target.Code)
		if !ok {
			logging.Warn().
				Int64("id", target.ID).
				Str("name", target.Name).
				Str("code", target.Code).
				Msg("Project has no source counterpart")
			continue
		}
		src := byID[sourceID]

		fields := map[string]any{}

		clientID, known := clientIDs[src.Client]
		if !known {
			logging.Warn().
				Int64("id", target.ID).
				Str("client", src.Client).
				Msg("Client name has no target-system id, skipping client field")
		} else if target.ClientID != clientID {
			fields["client_id"] = clientID
		}

		nonBillable := 1
		if src.Billable {
			nonBillable = 0
		}
		if target.NonBillable != nonBillable {
			fields["non_billable"] = nonBillable
		}

		active := 0
		if src.Active {
			active = 1
		}
		if target.Active != active {
			fields["active"] = active
		}

		if len(fields) > 0 {
			patches = append(patches, Patch{Endpoint: "projects", ID: target.ID, Fields: fields})
		}
	}
	return patches
}

// PersonSync plans the patches that align target people with source
// people, joined on normalized full name. Targets without a source
// counterpart are skipped silently; the source system is authoritative
// only for people it knows about.
func PersonSync(targets []TargetPerson, source []records.Person) []Patch {
	byName := make(map[string]records.Person, len(source))
	for _, p := range source {
		key := normalize.Name(p.FullName)
		if _, dup := byName[key]; dup {
			logging.Warn().
				Str("name", p.FullName).
				Msg("Duplicate normalized person name, keeping first")
			continue
		}
		byName[key] = p
	}

	var patches []Patch
	for _, target := range targets {
		src, ok := byName[normalize.Name(target.Name)]
		if !ok {
			continue
		}

		fields := map[string]any{}

		if !target.HourlyRate.Equal(src.DefaultHourlyRate) {
			fields["default_hourly_rate"] = src.DefaultHourlyRate.String()
		}

		if target.JobTitle != src.Role {
			fields["job_title"] = src.Role
		}

		active := 0
		if src.Active {
			active = 1
		}
		targetActive := 0
		if target.Active {
			targetActive = 1
		}
		if targetActive != active {
			fields["active"] = active
		}

		if len(fields) > 0 {
			patches = append(patches, Patch{Endpoint: "people", ID: target.ID, Fields: fields})
		}
	}
	return patches
}
