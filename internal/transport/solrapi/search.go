package solrapi

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/kailas-cloud/solrdesk/internal/domain/collection"
	"github.com/kailas-cloud/solrdesk/internal/domain/search/cursor"
	"github.com/kailas-cloud/solrdesk/internal/domain/search/page"
)

// Search fetches one page across the given collections. Collections without a
// mark start at "*". Only HTTP 200 counts as success.
func (c *Client) Search(
	ctx context.Context, query string, collections []string, marks cursor.Marks,
) (*page.Page, error) {
	req := searchRequest{
		Query:           query,
		SolrCollections: collections,
		CursorMarks:     make(map[string]string, len(collections)),
	}
	for _, col := range collections {
		req.CursorMarks[col] = marks.For(col).String()
	}

	var resp searchResponse
	if err := c.do(ctx, opSearch, http.MethodPost, "/search", req, &resp, statusOK); err != nil {
		return nil, err
	}
	return resp.toPage(), nil
}

// Collections lists the searchable collections, normalizing both wire shapes.
// Entries without a name are skipped.
func (c *Client) Collections(ctx context.Context) ([]collection.Descriptor, error) {
	var resp collectionsResponse
	if err := c.do(ctx, opCollections, http.MethodGet, "/solr/collections", nil, &resp, statusOK); err != nil {
		return nil, err
	}
	out, errs := descriptorsFromDTO(resp.Collections)
	for _, err := range errs {
		c.logger.Warn("skipping collection entry", zap.Error(err))
	}
	return out, nil
}

// Ping checks that the index API answers.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, opCollections, http.MethodGet, "/solr/collections", nil, nil, status2xx)
}
