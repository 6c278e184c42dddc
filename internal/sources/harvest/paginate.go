package harvest

import (
	"context"
	"net/url"
	"strconv"

	"github.com/agentstation/timesync/internal/transport"
)

// pagedResponse is a list response carrying its own total page count.
type pagedResponse interface {
	totalPages() int
}

// collectPages fetches pages 1..N of a list endpoint, where N is the
// total_pages value of each response body. visit returns false to stop
// the whole fetch early.
func collectPages[P pagedResponse](ctx context.Context, c *Client, path string, newPage func() P, visit func(P) bool) error {
	for page, total := 1, 1; page <= total; page++ {
		resp, err := c.transport.Get(ctx, path, url.Values{"page": {strconv.Itoa(page)}})
		if err != nil {
			return err
		}

		p := newPage()
		if err := transport.DecodeResponse(systemName, resp, p); err != nil {
			return err
		}

		total = p.totalPages()
		if !visit(p) {
			return nil
		}
	}
	return nil
}
