package transport

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/agentstation/timesync/pkg/errors"
	"github.com/agentstation/timesync/pkg/logging"
)

// DecodeResponse decodes a JSON response body into the target structure.
// Non-2xx statuses become APIErrors carrying the body as the message.
func DecodeResponse(system string, resp *http.Response, target any) error {
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logging.Warn().Err(err).Msg("Failed to close response body")
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.WrapAPI(system, resp.StatusCode, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &errors.APIError{
			System:     system,
			StatusCode: resp.StatusCode,
			Endpoint:   resp.Request.URL.Path,
			Message:    string(body),
		}
	}

	if target == nil {
		return nil
	}

	if err := json.Unmarshal(body, target); err != nil {
		return errors.WrapParse("json", resp.Request.URL.Path, err)
	}

	return nil
}
