package sheets

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

	"github.com/agentstation/timesync/pkg/errors"
	"github.com/agentstation/timesync/pkg/records"
)

func fixedNow() time.Time {
	return time.Date(2024, 6, 12, 10, 0, 0, 0, time.UTC)
}

func newTestService(t *testing.T, handler http.Handler) *Service {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	s, err := New(context.Background(), "", "sheet-id",
		WithBaseURL(server.URL),
		WithHTTPClient(http.DefaultClient),
		WithClock(fixedNow))
	require.NoError(t, err)
	return s
}

func TestReadValues(t *testing.T) {
	s := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "/sheet-id/values/")
		fmt.Fprint(w, `{"values": [["id", "date"], ["1", "2024-06-10"]]}`)
	}))

	values, err := s.Read(context.Background(), "Entries")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"id", "date"}, {"1", "2024-06-10"}}, values)
}

func TestReadEmptySheet(t *testing.T) {
	s := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{}`)
	}))

	_, err := s.Read(context.Background(), "Entries")
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrEmptySheet)
}

func TestAppendReportsCells(t *testing.T) {
	var gotBody map[string][][]string
	s := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		assert.Contains(t, r.URL.Path, ":append")
		assert.Equal(t, "RAW", r.URL.Query().Get("valueInputOption"))
		assert.Equal(t, "INSERT_ROWS", r.URL.Query().Get("insertDataOption"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		fmt.Fprint(w, `{"updates": {"updatedCells": 30}}`)
	}))

	cells, err := s.Append(context.Background(), "Entries", [][]string{{"1"}, {"2"}})
	require.NoError(t, err)
	assert.Equal(t, 30, cells)
	assert.Len(t, gotBody["values"], 2)
}

func TestAppendNothingSkipsCall(t *testing.T) {
	s := newTestService(t, http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		t.Error("no request expected")
	}))

	cells, err := s.Append(context.Background(), "Entries", nil)
	require.NoError(t, err)
	assert.Zero(t, cells)
}

func TestUpdateReportsCells(t *testing.T) {
	s := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		fmt.Fprint(w, `{"updatedCells": 26}`)
	}))

	cells, err := s.Update(context.Background(), "Projects!A2:M", [][]string{{"7"}, {"8"}})
	require.NoError(t, err)
	assert.Equal(t, 26, cells)
}

func TestUnauthorizedRetriesOnce(t *testing.T) {
	var calls int
	s := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		fmt.Fprint(w, `{"values": [["id"], ["1"]]}`)
	}))

	values, err := s.Read(context.Background(), "Entries")
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Len(t, values, 2)
}

func TestSnapshotRowIndices(t *testing.T) {
	s := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"values": [["id", "date"], ["1", "2024-06-10"], ["2", "2024-06-11"]]}`)
	}))

	rows, err := s.Snapshot(context.Background(), "Entries")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, 2, rows[0].Index)
	assert.Equal(t, "1", rows[0].ID())
	assert.Equal(t, 3, rows[1].Index)
	assert.Equal(t, "2024-06-11", rows[1].Date())
}

func TestWeeklyRules(t *testing.T) {
	s := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"values": [
			["person", "project", "code", "task", "weekday", "hours"],
			["Jose Martinez", "Platform", "ACM-01", "Standup", "MONDAY", "0.5"]
		]}`)
	}))

	rules, err := s.WeeklyRules(context.Background(), "Weekly")
	require.NoError(t, err)
	require.Len(t, rules, 1)

	assert.Equal(t, records.Monday, rules[0].Weekday)
	assert.Equal(t, 0.5, rules[0].Hours)
}

func TestEligibleRolesPercentParsing(t *testing.T) {
	s := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"values": [
			["role", "target"],
			["Engineer", "85%"],
			["Designer", "0.75"]
		]}`)
	}))

	roles, err := s.EligibleRoles(context.Background(), "Roles")
	require.NoError(t, err)

	assert.Equal(t, 0.85, roles["Engineer"])
	assert.Equal(t, 0.75, roles["Designer"])
}

func TestLogUpdateRowAccounting(t *testing.T) {
	var logged [][]string
	s := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string][][]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		logged = body["values"]
		fmt.Fprint(w, `{"updates": {"updatedCells": 1}}`)
	}))

	require.NoError(t, s.LogUpdate(context.Background(), "Logs", "Entries", 30, records.EntryRowWidth))
	require.Len(t, logged, 1)
	assert.Equal(t, "Logging info for 2024-06-12: 2 rows were appended on Entries", logged[0][0])
}
