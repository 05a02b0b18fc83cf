package translation

import (
	"context"

	domtr "github.com/kailas-cloud/solrdesk/internal/domain/translation"
)

// Remote is the translations CRUD API.
type Remote interface {
	ListTranslations(ctx context.Context) ([]domtr.Translation, error)
	CreateTranslation(ctx context.Context, t domtr.Translation) (domtr.Translation, error)
	UpdateTranslation(ctx context.Context, t domtr.Translation) (domtr.Translation, error)
	DeleteTranslation(ctx context.Context, id string) error
}
