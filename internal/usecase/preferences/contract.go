package preferences

import (
	"context"

	dompref "github.com/kailas-cloud/solrdesk/internal/domain/preferences"
)

// Repository persists preferences per profile.
type Repository interface {
	Load(ctx context.Context, profile string) (dompref.Preferences, error)
	Save(ctx context.Context, profile string, p dompref.Preferences) error
	Delete(ctx context.Context, profile string) error
}
