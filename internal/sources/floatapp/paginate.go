package floatapp

import (
	"context"
	"net/url"
	"strconv"

	"github.com/agentstation/timesync/internal/transport"
)

// collectPages fetches pages 1..N of a list endpoint, where N comes from
// the page-count response header. Bodies are bare JSON arrays.
func collectPages[T any](ctx context.Context, c *Client, path string, visit func([]T)) error {
	for page, total := 1, 1; page <= total; page++ {
		resp, err := c.transport.Get(ctx, path, url.Values{"page": {strconv.Itoa(page)}})
		if err != nil {
			return err
		}

		total = transport.PageCountHeader(resp, pageCountHeader)

		var items []T
		if err := transport.DecodeResponse(systemName, resp, &items); err != nil {
			return err
		}
		visit(items)
	}
	return nil
}
