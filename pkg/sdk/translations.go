package solrdesk

import (
	"context"
	"fmt"
	"io"
	"time"
)

// TranslationService manages the translations catalog.
type TranslationService struct {
	svc translationUseCase
	obs *observer
}

// List returns the translations of language ("" for all), sorted by key.
func (s *TranslationService) List(ctx context.Context, language string) (_ []Translation, err error) {
	start := time.Now()
	defer func() { s.obs.observe("translations.list", start, err) }()

	items, err := s.svc.List(ctx, language)
	if err != nil {
		return nil, fmt.Errorf("list translations: %w", err)
	}
	out := make([]Translation, len(items))
	for i, t := range items {
		out[i] = fromInternalTranslation(t)
	}
	return out, nil
}

// Create adds a translation. An existing (key, language) pair yields
// ErrDuplicateTranslation without a write.
func (s *TranslationService) Create(ctx context.Context, key, language, value string) (_ Translation, err error) {
	start := time.Now()
	defer func() { s.obs.observe("translations.create", start, err) }()

	t, err := s.svc.Create(ctx, key, language, value)
	if err != nil {
		return Translation{}, fmt.Errorf("create translation: %w", err)
	}
	return fromInternalTranslation(t), nil
}

// Update replaces the translation with the given ID.
func (s *TranslationService) Update(ctx context.Context, t Translation) (_ Translation, err error) {
	start := time.Now()
	defer func() { s.obs.observe("translations.update", start, err) }()

	updated, err := s.svc.Update(ctx, t.ID, t.Key, t.Language, t.Value)
	if err != nil {
		return Translation{}, fmt.Errorf("update translation: %w", err)
	}
	return fromInternalTranslation(updated), nil
}

// Delete removes a translation.
func (s *TranslationService) Delete(ctx context.Context, id string) (err error) {
	start := time.Now()
	defer func() { s.obs.observe("translations.delete", start, err) }()

	if err = s.svc.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete translation: %w", err)
	}
	return nil
}

// Export writes the translations of language as CSV (key,language,value).
func (s *TranslationService) Export(ctx context.Context, w io.Writer, language string) (_ int, err error) {
	start := time.Now()
	defer func() { s.obs.observe("translations.export", start, err) }()

	n, err := s.svc.Export(ctx, w, language)
	if err != nil {
		return n, fmt.Errorf("export translations: %w", err)
	}
	return n, nil
}

// Import reads a CSV with a key,language,value header. Bad rows are reported,
// not fatal.
func (s *TranslationService) Import(ctx context.Context, r io.Reader) (_ ImportReport, err error) {
	start := time.Now()
	defer func() { s.obs.observe("translations.import", start, err) }()

	rep, err := s.svc.Import(ctx, r)
	if err != nil {
		return fromInternalReport(rep), fmt.Errorf("import translations: %w", err)
	}
	return fromInternalReport(rep), nil
}
