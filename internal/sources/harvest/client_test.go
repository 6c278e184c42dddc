package harvest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/timesync/pkg/records"
)

func fixedNow() time.Time {
	return time.Date(2024, 6, 12, 10, 0, 0, 0, time.UTC)
}

func newTestClient(t *testing.T, handler http.Handler, opts ...Option) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	opts = append([]Option{WithBaseURL(server.URL), WithClock(fixedNow)}, opts...)
	return New("42", "token", opts...)
}

func TestUsers(t *testing.T) {
	var gotAccount string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAccount = r.Header.Get("Harvest-Account-ID")
		fmt.Fprint(w, `{
			"total_pages": 1,
			"users": [
				{"id": 1, "first_name": "José", "last_name": "Martínez", "roles": ["Engineer", "Lead"],
				 "timezone": "Madrid", "is_active": true, "default_hourly_rate": 120.0},
				{"id": 2, "first_name": "Dana", "last_name": "Reyes", "roles": [],
				 "timezone": "Eastern Time (US & Canada)", "is_active": false, "default_hourly_rate": null}
			]
		}`)
	}))

	people, err := c.Users(context.Background())
	require.NoError(t, err)
	require.Len(t, people, 2)

	assert.Equal(t, "42", gotAccount)

	assert.Equal(t, "José Martínez", people[0].FullName)
	assert.Equal(t, "Engineer", people[0].Role)
	assert.Equal(t, records.GeographySpain, people[0].Geography)
	assert.Equal(t, "120", people[0].DefaultHourlyRate.String())
	assert.True(t, people[0].Active)

	assert.Equal(t, "", people[1].Role)
	assert.Equal(t, records.GeographyUSA, people[1].Geography)
	assert.True(t, people[1].DefaultHourlyRate.IsZero())
}

func TestProjectsBudgetMerge(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/reports/project_budget":
			fmt.Fprint(w, `{
				"total_pages": 1,
				"results": [
					{"project_id": 7, "budget": 1000, "budget_spent": 400, "budget_remaining": 600}
				]
			}`)
		case "/projects":
			fmt.Fprint(w, `{
				"total_pages": 1,
				"projects": [
					{"id": 5, "name": "Internal", "code": "INT-01", "is_active": true, "is_billable": false,
					 "notes": "", "starts_on": null, "ends_on": null,
					 "created_at": "2023-01-05T10:00:00Z", "updated_at": "2024-02-01T10:00:00Z",
					 "client": {"name": "Acme"}},
					{"id": 7, "name": "Platform", "code": "ACM-01", "is_active": true, "is_billable": true,
					 "notes": "phase 2", "starts_on": "2024-01-01", "ends_on": null,
					 "created_at": "2024-01-01T10:00:00Z", "updated_at": "2024-06-01T10:00:00Z",
					 "client": {"name": "Acme"}}
				]
			}`)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))

	projects, err := c.Projects(context.Background())
	require.NoError(t, err)
	require.Len(t, projects, 2)

	// Absent from the budget report: zero budget, not dropped.
	assert.Equal(t, int64(5), projects[0].ID)
	assert.True(t, projects[0].Budget.Budget.IsZero())
	assert.Equal(t, "2023-01-05", projects[0].CreatedAt)
	assert.Equal(t, "", projects[0].StartDate)

	assert.Equal(t, "1000", projects[1].Budget.Budget.String())
	assert.Equal(t, "400", projects[1].Budget.Spent.String())
	assert.Equal(t, "600", projects[1].Budget.Remaining.String())
}

func TestClients(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"total_pages": 1,
			"clients": [
				{"id": 70, "name": "Acme", "is_active": true},
				{"id": 71, "name": "Dormant Co", "is_active": false}
			]
		}`)
	}))

	clients, err := c.Clients(context.Background())
	require.NoError(t, err)
	require.Len(t, clients, 2)

	assert.Equal(t, records.Client{ID: 70, Name: "Acme", Active: true}, clients[0])
	assert.False(t, clients[1].Active)
}

func TestTasksUpperCasedNames(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"total_pages": 1, "tasks": [{"id": 3, "name": "Development"}]}`)
	}))

	tasks, err := c.Tasks(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"DEVELOPMENT": 3}, tasks)
}

func entryJSON(id int64, date, person string, hours float64) string {
	return fmt.Sprintf(`{
		"id": %d, "spent_date": %q, "billable": true, "is_locked": false, "hours": %g,
		"cost_rate": 52.5,
		"user": {"id": 1, "name": %q},
		"client": {"name": "Acme"},
		"project": {"name": "Platform", "code": "ACM-01"},
		"task": {"name": "Development"},
		"user_assignment": {"hourly_rate": 120}
	}`, id, date, hours, person)
}

func testPeople() []records.Person {
	return []records.Person{
		{ID: 1, FullName: "José Martínez", Role: "Engineer", Geography: records.GeographySpain, Active: true},
		{ID: 2, FullName: "Dana Reyes", Role: "Bookkeeper", Geography: records.GeographyUSA, Active: true},
	}
}

func TestTimeEntriesRoleAndWindowFilter(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintf(w, `{"total_pages": 1, "time_entries": [%s, %s, %s]}`,
			entryJSON(1, "2024-06-10", "José Martínez", 8),
			entryJSON(2, "2024-06-11", "Dana Reyes", 4),    // role not eligible
			entryJSON(3, "2024-06-20", "José Martínez", 2)) // future-dated
	}))

	roles := records.EligibleRoles{"Engineer": 0.85}
	entries, err := c.TimeEntries(context.Background(), testPeople(), roles)
	require.NoError(t, err)

	require.Len(t, entries, 1)
	assert.Equal(t, int64(1), entries[0].ID)
	assert.Equal(t, "José Martínez", entries[0].Person)
	assert.Equal(t, records.GeographySpain, entries[0].Geography)
	assert.Equal(t, 85, entries[0].TargetUtilization)
	assert.Equal(t, "52.5", entries[0].CostRate.String())
	assert.Equal(t, "120", entries[0].HourlyRate.String())
}

func TestTimeEntriesScanCutoff(t *testing.T) {
	var pagesServed int
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pagesServed++
		switch r.URL.Query().Get("page") {
		case "1":
			// Newest first; the last entry falls before the window.
			fmt.Fprintf(w, `{"total_pages": 3, "time_entries": [%s, %s]}`,
				entryJSON(1, "2024-06-10", "José Martínez", 8),
				entryJSON(2, "2024-01-01", "José Martínez", 8))
		default:
			fmt.Fprint(w, `{"total_pages": 3, "time_entries": []}`)
		}
	})

	c := newTestClient(t, handler)
	roles := records.EligibleRoles{"Engineer": 0.85}

	entries, err := c.TimeEntries(context.Background(), testPeople(), roles)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, 1, pagesServed)
}

func TestTimeEntriesFullScanWithoutCutoff(t *testing.T) {
	var pagesServed int
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pagesServed++
		switch r.URL.Query().Get("page") {
		case "1":
			fmt.Fprintf(w, `{"total_pages": 2, "time_entries": [%s]}`,
				entryJSON(2, "2024-01-01", "José Martínez", 8))
		default:
			fmt.Fprintf(w, `{"total_pages": 2, "time_entries": [%s]}`,
				entryJSON(1, "2024-06-10", "José Martínez", 8))
		}
	})

	c := newTestClient(t, handler, WithScanCutoff(false))
	roles := records.EligibleRoles{"Engineer": 0.85}

	entries, err := c.TimeEntries(context.Background(), testPeople(), roles)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, 2, pagesServed)
}

func TestCreateTimeEntry(t *testing.T) {
	var got CreateEntryRequest
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		fmt.Fprint(w, `{"id": 99}`)
	}))

	id, err := c.CreateTimeEntry(context.Background(), CreateEntryRequest{
		UserID:    1,
		ProjectID: 7,
		TaskID:    3,
		SpentDate: "2024-06-17",
		Hours:     0.5,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(99), id)
	assert.Equal(t, "2024-06-17", got.SpentDate)
	assert.Equal(t, 0.5, got.Hours)
}
