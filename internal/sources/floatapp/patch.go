package floatapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/agentstation/timesync/internal/transport"
	"github.com/agentstation/timesync/pkg/errors"
	"github.com/agentstation/timesync/pkg/logging"
	"github.com/agentstation/timesync/pkg/planner"
)

// Apply issues one planned PATCH and applies the write cooldown
// afterwards.
func (c *Client) Apply(ctx context.Context, patch planner.Patch) error {
	body, err := json.Marshal(patch.Fields)
	if err != nil {
		return err
	}

	path := fmt.Sprintf("/%s/%d", patch.Endpoint, patch.ID)
	resp, err := c.transport.Patch(ctx, path, bytes.NewReader(body))
	if err != nil {
		return &errors.SyncError{System: systemName, Resource: patch.Endpoint, Err: err}
	}
	defer c.cooldown(resp)

	if err := transport.DecodeResponse(systemName, resp, nil); err != nil {
		return &errors.SyncError{System: systemName, Resource: patch.Endpoint, Err: err}
	}

	logging.Info().
		Str("system", systemName).
		Str("patch", patch.String()).
		Msg("Applied update")
	return nil
}
