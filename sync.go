package timesync

import (
	"context"
	"fmt"
	"strings"

	"github.com/agentstation/timesync/internal/sources/floatapp"
	"github.com/agentstation/timesync/internal/sources/harvest"
	"github.com/agentstation/timesync/pkg/differ"
	"github.com/agentstation/timesync/pkg/errors"
	"github.com/agentstation/timesync/pkg/logging"
	"github.com/agentstation/timesync/pkg/normalize"
	"github.com/agentstation/timesync/pkg/planner"
	"github.com/agentstation/timesync/pkg/records"
	"github.com/agentstation/timesync/pkg/schedule"
)

// fetched substitutes an empty result for a failed collaborator fetch
// so the run keeps going. The fault is logged with its typed error,
// which is what separates a gap from a legitimately empty system.
// Spreadsheet reads and all writes stay fatal.
func fetched[T any](resource string, value T, err error) T {
	if err == nil {
		return value
	}
	logging.Error().Err(err).Str("resource", resource).Msg("Fetch failed, continuing with empty result")
	var zero T
	return zero
}

// Sync runs the full reconciliation: weekly entry creation, snapshot
// append, project mirror, scheduler patches and logged-time push.
func (c *Client) Sync(ctx context.Context) (*Result, error) {
	ctx = logging.WithOperation(ctx, "sync")
	result := &Result{DryRun: c.dryRun}

	rules, err := c.sheet.WeeklyRules(ctx, c.tabs.Weekly)
	if err != nil {
		return nil, err
	}
	roles, err := c.sheet.EligibleRoles(ctx, c.tabs.Roles)
	if err != nil {
		return nil, err
	}

	people, err := c.tracker.Users(ctx)
	people = fetched("users", people, err)
	projects, err := c.tracker.Projects(ctx)
	projects = fetched("projects", projects, err)

	if err := c.createWeekly(ctx, rules, people, projects, result); err != nil {
		return nil, err
	}

	entries, err := c.tracker.TimeEntries(ctx, people, roles)
	entries = fetched("time entries", entries, err)
	appended, err := c.reconcileSnapshot(ctx, entries, result)
	if err != nil {
		return nil, err
	}

	if err := c.mirrorProjects(ctx, projects, result); err != nil {
		return nil, err
	}

	clients, err := c.tracker.Clients(ctx)
	clients = fetched("clients", clients, err)
	targetProjects, err := c.scheduler.Projects(ctx)
	targetProjects = fetched("scheduler projects", targetProjects, err)
	targetPeople, err := c.scheduler.People(ctx)
	targetPeople = fetched("scheduler people", targetPeople, err)
	targetClients, err := c.scheduler.Clients(ctx)
	targetClients = fetched("scheduler clients", targetClients, err)

	if err := c.applyPatches(ctx, projects, people, clients, targetProjects, targetPeople, targetClients, result); err != nil {
		return nil, err
	}
	if err := c.pushLoggedTime(ctx, appended, targetProjects, targetPeople, result); err != nil {
		return nil, err
	}

	logging.Ctx(ctx).Info().Str("result", result.String()).Msg("Run complete")
	return result, nil
}

// CreateWeekly materializes the weekly rules into tracker entries
// without running the rest of the pipeline.
func (c *Client) CreateWeekly(ctx context.Context) (*Result, error) {
	rules, err := c.sheet.WeeklyRules(ctx, c.tabs.Weekly)
	if err != nil {
		return nil, err
	}
	return c.CreateWeeklyFromRules(ctx, rules)
}

// CreateWeeklyFromRules materializes the given rules into tracker
// entries, bypassing the spreadsheet's weekly tab. Used for file-backed
// rule sets.
func (c *Client) CreateWeeklyFromRules(ctx context.Context, rules []records.WeeklyTaskRule) (*Result, error) {
	ctx = logging.WithOperation(ctx, "weekly")
	result := &Result{DryRun: c.dryRun}

	people, err := c.tracker.Users(ctx)
	people = fetched("users", people, err)
	projects, err := c.tracker.Projects(ctx)
	projects = fetched("projects", projects, err)

	if err := c.createWeekly(ctx, rules, people, projects, result); err != nil {
		return nil, err
	}
	return result, nil
}

// SyncEntries reconciles tracker entries against the snapshot without
// running the rest of the pipeline.
func (c *Client) SyncEntries(ctx context.Context) (*Result, error) {
	roles, err := c.sheet.EligibleRoles(ctx, c.tabs.Roles)
	if err != nil {
		return nil, err
	}
	return c.SyncEntriesWithRoles(ctx, roles)
}

// SyncEntriesWithRoles reconciles tracker entries against the snapshot
// using the given eligible-roles map, bypassing the spreadsheet's roles
// tab. Used for file-backed role sets.
func (c *Client) SyncEntriesWithRoles(ctx context.Context, roles records.EligibleRoles) (*Result, error) {
	ctx = logging.WithOperation(ctx, "entries")
	result := &Result{DryRun: c.dryRun}

	people, err := c.tracker.Users(ctx)
	people = fetched("users", people, err)
	entries, err := c.tracker.TimeEntries(ctx, people, roles)
	entries = fetched("time entries", entries, err)

	if _, err := c.reconcileSnapshot(ctx, entries, result); err != nil {
		return nil, err
	}
	return result, nil
}

// MirrorProjects rewrites the projects tab from tracker state without
// running the rest of the pipeline.
func (c *Client) MirrorProjects(ctx context.Context) (*Result, error) {
	ctx = logging.WithOperation(ctx, "projects")
	result := &Result{DryRun: c.dryRun}

	projects, err := c.tracker.Projects(ctx)
	projects = fetched("projects", projects, err)

	if err := c.mirrorProjects(ctx, projects, result); err != nil {
		return nil, err
	}
	return result, nil
}

// SyncScheduler patches the scheduling system's projects and people from
// tracker state without running the rest of the pipeline.
func (c *Client) SyncScheduler(ctx context.Context) (*Result, error) {
	ctx = logging.WithOperation(ctx, "scheduler")
	result := &Result{DryRun: c.dryRun}

	people, err := c.tracker.Users(ctx)
	people = fetched("users", people, err)
	projects, err := c.tracker.Projects(ctx)
	projects = fetched("projects", projects, err)
	clients, err := c.tracker.Clients(ctx)
	clients = fetched("clients", clients, err)
	targetProjects, err := c.scheduler.Projects(ctx)
	targetProjects = fetched("scheduler projects", targetProjects, err)
	targetPeople, err := c.scheduler.People(ctx)
	targetPeople = fetched("scheduler people", targetPeople, err)
	targetClients, err := c.scheduler.Clients(ctx)
	targetClients = fetched("scheduler clients", targetClients, err)

	if err := c.applyPatches(ctx, projects, people, clients, targetProjects, targetPeople, targetClients, result); err != nil {
		return nil, err
	}
	return result, nil
}

// createWeekly expands each weekly rule into a dated entry and creates
// it in the tracker. Rules that cannot be resolved to tracker ids are
// skipped with a warning.
func (c *Client) createWeekly(ctx context.Context, rules []records.WeeklyTaskRule, people []records.Person, projects []records.Project, result *Result) error {
	if len(rules) == 0 {
		return nil
	}

	tasks, err := c.tracker.Tasks(ctx)
	tasks = fetched("tasks", tasks, err)

	peopleByName := make(map[string]int64, len(people))
	for _, p := range people {
		peopleByName[p.FullName] = p.ID
	}
	refs := projectRefs(projects)

	drafts := schedule.Materialize(rules, c.now(), c.spentDatePolicy)
	for _, draft := range drafts {
		userID, ok := peopleByName[draft.Person]
		if !ok {
			logging.Ctx(ctx).Warn().Str("person", draft.Person).Msg("Weekly rule person not found, skipping")
			continue
		}
		projectID, ok := normalize.MatchProject(refs, draft.Project, draft.ProjectCode)
		if !ok {
			logging.Ctx(ctx).Warn().
				Str("project", draft.Project).
				Str("code", draft.ProjectCode).
				Msg("Weekly rule project not found, skipping")
			continue
		}
		taskID, ok := tasks[strings.ToUpper(draft.TaskName)]
		if !ok {
			logging.Ctx(ctx).Warn().Str("task", draft.TaskName).Msg("Weekly rule task not found, skipping")
			continue
		}

		if c.dryRun {
			logging.Ctx(ctx).Info().
				Str("person", draft.Person).
				Str("date", draft.Date).
				Float64("hours", draft.Hours).
				Msg("Would create weekly entry")
			result.WeeklyCreated++
			continue
		}

		if _, err := c.tracker.CreateTimeEntry(ctx, harvest.CreateEntryRequest{
			UserID:    userID,
			ProjectID: projectID,
			TaskID:    taskID,
			SpentDate: draft.Date,
			Hours:     draft.Hours,
		}); err != nil {
			return err
		}
		result.WeeklyCreated++
	}
	return nil
}

// reconcileSnapshot diffs fetched entries against the snapshot tab and
// appends what the snapshot is missing, returning the appended entries
// for the downstream logged-time push. An empty snapshot tab is a valid
// baseline: everything fetched is new.
func (c *Client) reconcileSnapshot(ctx context.Context, entries []records.TimeEntry, result *Result) ([]records.TimeEntry, error) {
	ctx = logging.WithSheet(ctx, c.tabs.Entries)

	snapshot, err := c.sheet.Snapshot(ctx, c.tabs.Entries)
	if err != nil {
		if !errors.Is(err, errors.ErrEmptySheet) {
			return nil, err
		}
		logging.Ctx(ctx).Warn().Msg("Snapshot tab is empty, treating all entries as new")
	}

	d := differ.New(c.lookbackDays, differ.WithClock(c.now))

	var toAppend []records.TimeEntry
	switch c.diffPolicy {
	case NewOrChanged:
		changeset, err := d.NewOrChanged(entries, snapshot)
		if err != nil {
			return nil, err
		}
		toAppend = changeset.New
		result.EntriesChanged = len(changeset.Changed)

		if c.inPlaceUpdates && !c.dryRun {
			for _, changed := range changeset.Changed {
				rowRange := fmt.Sprintf("%s!A%d:O%d", c.tabs.Entries, changed.RowIndex, changed.RowIndex)
				if _, err := c.sheet.Update(ctx, rowRange, [][]string{changed.Entry.Row()}); err != nil {
					return nil, err
				}
			}
		}
	default:
		toAppend = d.MissingRows(entries, snapshot)
	}

	result.EntriesAppended = len(toAppend)
	if c.dryRun {
		logging.Ctx(ctx).Info().Int("rows", len(toAppend)).Msg("Would append snapshot rows")
		return toAppend, nil
	}

	rows := make([][]string, 0, len(toAppend))
	for _, entry := range toAppend {
		rows = append(rows, entry.Row())
	}

	cells, err := c.sheet.Append(ctx, c.tabs.Entries, rows)
	if err != nil {
		return nil, err
	}
	if cells > 0 {
		if err := c.sheet.LogUpdate(ctx, c.tabs.Logs, c.tabs.Entries, cells, records.EntryRowWidth); err != nil {
			return nil, err
		}
	}
	return toAppend, nil
}

// mirrorProjects overwrites the projects tab with current tracker state.
func (c *Client) mirrorProjects(ctx context.Context, projects []records.Project, result *Result) error {
	ctx = logging.WithSheet(ctx, c.tabs.Projects)

	result.ProjectRows = len(projects)
	if c.dryRun {
		logging.Ctx(ctx).Info().Int("rows", len(projects)).Msg("Would mirror project rows")
		return nil
	}

	rows := make([][]string, 0, len(projects))
	for _, project := range projects {
		rows = append(rows, project.Row())
	}

	mirrorRange := c.tabs.Projects + "!A2:M"
	cells, err := c.sheet.Update(ctx, mirrorRange, rows)
	if err != nil {
		return err
	}
	if cells > 0 {
		if err := c.sheet.LogUpdate(ctx, c.tabs.Logs, c.tabs.Projects, cells, records.ProjectRowWidth); err != nil {
			return err
		}
	}
	return nil
}

// applyPatches plans and applies the scheduler-side project and people
// patches. Source clients the scheduler does not know about are surfaced
// up front, since their projects' client field cannot be synced.
func (c *Client) applyPatches(ctx context.Context, projects []records.Project, people []records.Person,
	clients []records.Client, targetProjects []planner.TargetProject, targetPeople []planner.TargetPerson,
	targetClients map[string]int64, result *Result) error {

	ctx = logging.WithSystem(ctx, "scheduler")

	for _, client := range clients {
		if !client.Active {
			continue
		}
		if _, ok := targetClients[client.Name]; !ok {
			logging.Ctx(ctx).Warn().
				Str("client", client.Name).
				Msg("Client missing on scheduler, its projects keep their client field")
		}
	}

	projectPatches := planner.ProjectSync(targetProjects, projects, targetClients)
	peoplePatches := planner.PersonSync(targetPeople, people)
	result.ProjectPatches = len(projectPatches)
	result.PeoplePatches = len(peoplePatches)

	for _, patch := range append(projectPatches, peoplePatches...) {
		if c.dryRun {
			logging.Ctx(ctx).Info().Str("patch", patch.String()).Msg("Would apply update")
			continue
		}
		if err := c.scheduler.Apply(ctx, patch); err != nil {
			return err
		}
	}
	return nil
}

// pushLoggedTime mirrors newly appended entries into the scheduler's
// logged time. Entries whose project or person cannot be resolved on the
// scheduler side are skipped with a warning.
func (c *Client) pushLoggedTime(ctx context.Context, entries []records.TimeEntry,
	targetProjects []planner.TargetProject, targetPeople []planner.TargetPerson, result *Result) error {

	if len(entries) == 0 {
		return nil
	}

	ctx = logging.WithSystem(ctx, "scheduler")

	refs := make([]normalize.ProjectRef, 0, len(targetProjects))
	for _, p := range targetProjects {
		refs = append(refs, normalize.ProjectRef{ID: p.ID, Name: p.Name, Code: p.Code})
	}
	peopleByName := make(map[string]int64, len(targetPeople))
	for _, p := range targetPeople {
		peopleByName[normalize.Name(p.Name)] = p.ID
	}

	for _, entry := range entries {
		projectID, ok := normalize.MatchProject(refs, entry.Project, entry.ProjectCode)
		if !ok {
			logging.Ctx(ctx).Warn().
				Str("project", entry.Project).
				Int64("entry", entry.ID).
				Msg("Entry project not found on scheduler, skipping")
			continue
		}
		peopleID, ok := peopleByName[normalize.Name(entry.Person)]
		if !ok {
			logging.Ctx(ctx).Warn().
				Str("person", entry.Person).
				Int64("entry", entry.ID).
				Msg("Entry person not found on scheduler, skipping")
			continue
		}

		billable := 0
		if entry.Billable {
			billable = 1
		}
		req := floatapp.LoggedTimeRequest{
			ProjectID: projectID,
			PeopleID:  peopleID,
			Hours:     floatapp.RoundHours(entry.Hours),
			Date:      entry.Date,
			Billable:  billable,
			TaskName:  entry.Task,
		}

		if c.dryRun {
			logging.Ctx(ctx).Info().Int64("entry", entry.ID).Msg("Would push logged time")
			result.LoggedTime++
			continue
		}
		if err := c.scheduler.CreateLoggedTime(ctx, req); err != nil {
			return err
		}
		result.LoggedTime++
	}
	return nil
}

func projectRefs(projects []records.Project) []normalize.ProjectRef {
	refs := make([]normalize.ProjectRef, 0, len(projects))
	for _, p := range projects {
		refs = append(refs, normalize.ProjectRef{ID: p.ID, Name: p.Name, Code: p.Code})
	}
	return refs
}
