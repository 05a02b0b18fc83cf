package translation

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/multierr"

	"github.com/kailas-cloud/solrdesk/internal/domain"
	domtr "github.com/kailas-cloud/solrdesk/internal/domain/translation"
)

var csvHeader = []string{"key", "language", "value"}

// ImportReport summarizes a CSV import. Err aggregates per-row failures.
type ImportReport struct {
	Created int
	Updated int
	Skipped int
	Failed  int
	Err     error
}

// Errors returns the individual row failures.
func (r ImportReport) Errors() []error {
	return multierr.Errors(r.Err)
}

// Export writes the translations of language ("" for all) as CSV with a
// key,language,value header and returns the number of rows written.
func (s *Service) Export(ctx context.Context, w io.Writer, language string) (int, error) {
	list, err := s.List(ctx, language)
	if err != nil {
		return 0, err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return 0, fmt.Errorf("write csv header: %w", err)
	}
	for _, t := range list {
		if err := cw.Write([]string{t.Key(), t.Language(), t.Value()}); err != nil {
			return 0, fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return 0, fmt.Errorf("flush csv: %w", err)
	}
	return len(list), nil
}

// Import reads CSV rows (header required, columns in any order) and creates new
// pairs, updates changed values and skips identical ones. A bad row is recorded
// in the report and the import moves on.
func (s *Service) Import(ctx context.Context, r io.Reader) (ImportReport, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return ImportReport{}, fmt.Errorf("%w: csv is empty", domain.ErrValidation)
		}
		return ImportReport{}, fmt.Errorf("%w: csv header: %w", domain.ErrValidation, err)
	}
	cols, err := headerIndex(header)
	if err != nil {
		return ImportReport{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cat, err := s.catalog(ctx, true)
	if err != nil {
		return ImportReport{}, err
	}
	index := make(map[domtr.Pair]domtr.Translation, len(cat))
	for _, t := range cat {
		index[t.Pair()] = t
	}

	var rep ImportReport
	defer func() {
		if rep.Created+rep.Updated > 0 {
			s.invalidate()
		}
	}()

	for {
		if err := ctx.Err(); err != nil {
			return rep, fmt.Errorf("import translations: %w", err)
		}

		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if !errors.As(err, &perr) {
				return rep, fmt.Errorf("read csv: %w", err)
			}
			rep.Failed++
			rep.Err = multierr.Append(rep.Err, err)
			continue
		}
		line, _ := cr.FieldPos(0)

		t, err := domtr.New(field(record, cols[0]), field(record, cols[1]), field(record, cols[2]))
		if err != nil {
			rep.Failed++
			rep.Err = multierr.Append(rep.Err, fmt.Errorf("line %d: %w", line, err))
			continue
		}

		existing, ok := index[t.Pair()]
		switch {
		case ok && existing.Value() == t.Value():
			rep.Skipped++
		case ok:
			updated, err := s.remote.UpdateTranslation(ctx, t.WithID(existing.ID()))
			if err != nil {
				rep.Failed++
				rep.Err = multierr.Append(rep.Err, fmt.Errorf("line %d: %w", line, mapWriteError(t.Pair(), "update translation", err)))
				continue
			}
			index[t.Pair()] = updated
			rep.Updated++
		default:
			created, err := s.remote.CreateTranslation(ctx, t)
			if err != nil {
				rep.Failed++
				rep.Err = multierr.Append(rep.Err, fmt.Errorf("line %d: %w", line, mapWriteError(t.Pair(), "create translation", err)))
				continue
			}
			index[t.Pair()] = created
			rep.Created++
		}
	}
	return rep, nil
}

// headerIndex locates the key, language and value columns.
func headerIndex(header []string) ([3]int, error) {
	idx := [3]int{-1, -1, -1}
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		for j, want := range csvHeader {
			if h == want && idx[j] < 0 {
				idx[j] = i
			}
		}
	}
	for j, want := range csvHeader {
		if idx[j] < 0 {
			return idx, fmt.Errorf("%w: csv header is missing %q", domain.ErrValidation, want)
		}
	}
	return idx, nil
}

func field(record []string, i int) string {
	if i < len(record) {
		return record[i]
	}
	return ""
}
