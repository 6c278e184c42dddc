package floatapp

import (
	"bytes"
	"context"
	"encoding/json"
	"math"

	"github.com/agentstation/timesync/internal/transport"
	"github.com/agentstation/timesync/pkg/logging"
)

// LoggedTimeRequest is the body of a logged-time creation.
type LoggedTimeRequest struct {
	ProjectID int64   `json:"project_id"`
	PeopleID  int64   `json:"people_id"`
	Hours     float64 `json:"hours"`
	Date      string  `json:"date"`
	Billable  int     `json:"billable"`
	TaskName  string  `json:"task_name"`
}

// RoundHours snaps hours to the API's quarter-hour grid with a floor of
// one quarter hour.
func RoundHours(hours float64) float64 {
	if hours < 0.25 {
		return 0.25
	}
	return math.Round(hours*4) / 4
}

// CreateLoggedTime creates one logged-time record and applies the write
// cooldown afterwards.
func (c *Client) CreateLoggedTime(ctx context.Context, req LoggedTimeRequest) error {
	body, err := json.Marshal(req)
	if err != nil {
		return err
	}

	resp, err := c.transport.Post(ctx, "/logged-time", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer c.cooldown(resp)

	if err := transport.DecodeResponse(systemName, resp, nil); err != nil {
		return err
	}

	logging.Info().
		Str("system", systemName).
		Str("date", req.Date).
		Str("task", req.TaskName).
		Float64("hours", req.Hours).
		Msg("Created logged time")
	return nil
}
