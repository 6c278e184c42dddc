// Package sheets is the spreadsheet collaborator: the snapshot of
// time-entry rows, the mirrored projects range, the weekly-rules and
// eligible-roles tabs and the append-only log tab. It talks to the
// Google Sheets v4 values API with a service-account credential.
package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"golang.org/x/oauth2/google"

	"github.com/agentstation/timesync/pkg/errors"
	"github.com/agentstation/timesync/pkg/logging"
)

const (
	defaultBaseURL    = "https://sheets.googleapis.com/v4/spreadsheets"
	spreadsheetsScope = "https://www.googleapis.com/auth/spreadsheets"
)

// Service is an authenticated handle on one spreadsheet.
type Service struct {
	http          *http.Client
	baseURL       string
	spreadsheetID string
	now           func() time.Time
}

// New creates a Service from a service-account key file. The key file is
// only read when no HTTP client was injected through options.
func New(ctx context.Context, credentialsFile, spreadsheetID string, opts ...Option) (*Service, error) {
	s := &Service{
		baseURL:       defaultBaseURL,
		spreadsheetID: spreadsheetID,
		now:           time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.http == nil {
		data, err := os.ReadFile(credentialsFile)
		if err != nil {
			return nil, errors.NewConfigError("sheets", "reading credentials file", err)
		}
		conf, err := google.JWTConfigFromJSON(data, spreadsheetsScope)
		if err != nil {
			return nil, errors.NewConfigError("sheets", "parsing credentials file", err)
		}
		s.http = conf.Client(ctx)
	}

	return s, nil
}

// valuesURL builds the values endpoint URL for a range, with an optional
// trailing verb like ":append".
func (s *Service) valuesURL(sheetRange, verb string, query url.Values) string {
	u := s.baseURL + "/" + s.spreadsheetID + "/values/" + url.PathEscape(sheetRange) + verb
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// do issues one request, retrying a single time on an authorization
// failure since service-account tokens can lapse mid-run.
func (s *Service) do(ctx context.Context, method, target string, body []byte) (*http.Response, error) {
	send := func() (*http.Response, error) {
		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, target, reader)
		if err != nil {
			return nil, err
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		return s.http.Do(req)
	}

	resp, err := send()
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusUnauthorized {
		logging.Warn().Msg("Spreadsheet request unauthorized, retrying once")
		_ = resp.Body.Close()
		return send()
	}
	return resp, nil
}

// decode reads a response body into target, mapping non-2xx statuses to
// APIErrors.
func decode(resp *http.Response, target any) error {
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &errors.APIError{
			System:     "sheets",
			StatusCode: resp.StatusCode,
			Message:    string(data),
		}
	}
	if target == nil {
		return nil
	}
	return json.Unmarshal(data, target)
}

// Read returns the rows of a range. An empty range is ErrEmptySheet.
func (s *Service) Read(ctx context.Context, sheetRange string) ([][]string, error) {
	resp, err := s.do(ctx, http.MethodGet, s.valuesURL(sheetRange, "", nil), nil)
	if err != nil {
		return nil, errors.WrapSheet("read", sheetRange, err)
	}

	var result struct {
		Values [][]string `json:"values"`
	}
	if err := decode(resp, &result); err != nil {
		return nil, errors.WrapSheet("read", sheetRange, err)
	}
	if len(result.Values) == 0 {
		return nil, errors.WrapSheet("read", sheetRange, errors.ErrEmptySheet)
	}
	return result.Values, nil
}

// Append adds rows after the range's existing data and returns the
// number of cells written. No rows means no call and zero cells.
func (s *Service) Append(ctx context.Context, sheetRange string, values [][]string) (int, error) {
	if len(values) == 0 {
		logging.Info().Str("range", sheetRange).Msg("Nothing to append")
		return 0, nil
	}

	body, err := json.Marshal(map[string]any{"values": values})
	if err != nil {
		return 0, errors.WrapSheet("append", sheetRange, err)
	}

	query := url.Values{
		"valueInputOption": {"RAW"},
		"insertDataOption": {"INSERT_ROWS"},
	}
	resp, err := s.do(ctx, http.MethodPost, s.valuesURL(sheetRange, ":append", query), body)
	if err != nil {
		return 0, errors.WrapSheet("append", sheetRange, err)
	}

	var result struct {
		Updates struct {
			UpdatedCells int `json:"updatedCells"`
		} `json:"updates"`
	}
	if err := decode(resp, &result); err != nil {
		return 0, errors.WrapSheet("append", sheetRange, err)
	}

	logging.Info().
		Str("range", sheetRange).
		Int("cells", result.Updates.UpdatedCells).
		Msg("Appended rows")
	return result.Updates.UpdatedCells, nil
}

// Update overwrites a range and returns the number of cells written. No
// rows means no call and zero cells.
func (s *Service) Update(ctx context.Context, sheetRange string, values [][]string) (int, error) {
	if len(values) == 0 {
		logging.Info().Str("range", sheetRange).Msg("Nothing to update")
		return 0, nil
	}

	body, err := json.Marshal(map[string]any{"values": values})
	if err != nil {
		return 0, errors.WrapSheet("update", sheetRange, err)
	}

	query := url.Values{"valueInputOption": {"RAW"}}
	resp, err := s.do(ctx, http.MethodPut, s.valuesURL(sheetRange, "", query), body)
	if err != nil {
		return 0, errors.WrapSheet("update", sheetRange, err)
	}

	var result struct {
		UpdatedCells int `json:"updatedCells"`
	}
	if err := decode(resp, &result); err != nil {
		return 0, errors.WrapSheet("update", sheetRange, err)
	}

	logging.Info().
		Str("range", sheetRange).
		Int("cells", result.UpdatedCells).
		Msg("Updated rows")
	return result.UpdatedCells, nil
}
