package solrdesk

import (
	"context"
	"io"

	domtr "github.com/kailas-cloud/solrdesk/internal/domain/translation"
	translationuc "github.com/kailas-cloud/solrdesk/internal/usecase/translation"
)

// --- translationUseCase mock ---

type mockTranslationUC struct {
	listFn   func(ctx context.Context, language string) ([]domtr.Translation, error)
	createFn func(ctx context.Context, key, language, value string) (domtr.Translation, error)
	updateFn func(ctx context.Context, id, key, language, value string) (domtr.Translation, error)
	deleteFn func(ctx context.Context, id string) error
	exportFn func(ctx context.Context, w io.Writer, language string) (int, error)
	importFn func(ctx context.Context, r io.Reader) (translationuc.ImportReport, error)
}

func (m *mockTranslationUC) List(ctx context.Context, language string) ([]domtr.Translation, error) {
	return m.listFn(ctx, language)
}

func (m *mockTranslationUC) Create(ctx context.Context, key, language, value string) (domtr.Translation, error) {
	return m.createFn(ctx, key, language, value)
}

func (m *mockTranslationUC) Update(ctx context.Context, id, key, language, value string) (domtr.Translation, error) {
	return m.updateFn(ctx, id, key, language, value)
}

func (m *mockTranslationUC) Delete(ctx context.Context, id string) error {
	return m.deleteFn(ctx, id)
}

func (m *mockTranslationUC) Export(ctx context.Context, w io.Writer, language string) (int, error) {
	return m.exportFn(ctx, w, language)
}

func (m *mockTranslationUC) Import(ctx context.Context, r io.Reader) (translationuc.ImportReport, error) {
	return m.importFn(ctx, r)
}
