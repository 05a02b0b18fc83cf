package solrapi

import (
	"context"
	"net/http"
	"net/url"

	"github.com/kailas-cloud/solrdesk/internal/domain/translation"
)

// ListTranslations returns every translation record.
func (c *Client) ListTranslations(ctx context.Context) ([]translation.Translation, error) {
	var list translationList
	if err := c.do(ctx, opListTranslations, http.MethodGet, "/translations", nil, &list, status2xx); err != nil {
		return nil, err
	}
	out := make([]translation.Translation, len(list))
	for i, d := range list {
		out[i] = d.toDomain()
	}
	return out, nil
}

// CreateTranslation stores a new record and returns it with the assigned ID.
func (c *Client) CreateTranslation(ctx context.Context, t translation.Translation) (translation.Translation, error) {
	in := translationToDTO(t)
	in.ID = ""
	var out translationDTO
	if err := c.do(ctx, opCreateTranslation, http.MethodPost, "/translations", in, &out, status2xx); err != nil {
		return translation.Translation{}, err
	}
	if out.ID == "" {
		// some deployments answer 201 with an empty body
		return t, nil
	}
	return out.toDomain(), nil
}

// UpdateTranslation replaces the record with the given ID.
func (c *Client) UpdateTranslation(ctx context.Context, t translation.Translation) (translation.Translation, error) {
	var out translationDTO
	path := "/translations/" + url.PathEscape(t.ID())
	if err := c.do(ctx, opUpdateTranslation, http.MethodPut, path, translationToDTO(t), &out, status2xx); err != nil {
		return translation.Translation{}, err
	}
	if out.ID == "" {
		return t, nil
	}
	return out.toDomain(), nil
}

// DeleteTranslation removes the record with the given ID.
func (c *Client) DeleteTranslation(ctx context.Context, id string) error {
	return c.do(ctx, opDeleteTranslation, http.MethodDelete, "/translations/"+url.PathEscape(id), nil, nil, status2xx)
}
