package collection

import (
	"context"

	domcol "github.com/kailas-cloud/solrdesk/internal/domain/collection"
)

// Lister reads the searchable collections from the index API.
type Lister interface {
	Collections(ctx context.Context) ([]domcol.Descriptor, error)
}
