// Package translation models i18n entries managed through the translations panel.
package translation

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/solrdesk/internal/domain"
)

// MaxKeyLength bounds translation keys.
const MaxKeyLength = 256

// Translation is one localized string (immutable value object).
type Translation struct {
	id       string
	key      string
	language string
	value    string
}

// New validates and creates a Translation without an ID (not yet stored).
// Key, language and value are required.
func New(key, language, value string) (Translation, error) {
	key = strings.TrimSpace(key)
	language = strings.TrimSpace(language)
	if key == "" {
		return Translation{}, fmt.Errorf("%w: key is required", domain.ErrValidation)
	}
	if len(key) > MaxKeyLength {
		return Translation{}, fmt.Errorf("%w: key too long (max %d)", domain.ErrValidation, MaxKeyLength)
	}
	if language == "" {
		return Translation{}, fmt.Errorf("%w: language is required", domain.ErrValidation)
	}
	if strings.TrimSpace(value) == "" {
		return Translation{}, fmt.Errorf("%w: value is required", domain.ErrValidation)
	}
	return Translation{key: key, language: language, value: value}, nil
}

// Reconstruct creates a Translation without validation (API hydration).
func Reconstruct(id, key, language, value string) Translation {
	return Translation{id: id, key: key, language: language, value: value}
}

// ID returns the remote identifier ("" until stored).
func (t Translation) ID() string { return t.id }

// Key returns the message key.
func (t Translation) Key() string { return t.key }

// Language returns the language code.
func (t Translation) Language() string { return t.language }

// Value returns the localized text.
func (t Translation) Value() string { return t.value }

// WithID returns a copy carrying the given ID.
func (t Translation) WithID(id string) Translation {
	t.id = id
	return t
}

// Pair returns the uniqueness key of the translation.
func (t Translation) Pair() Pair {
	return Pair{Key: t.key, Language: t.language}
}

// Pair is the (key, language) uniqueness constraint.
type Pair struct {
	Key      string
	Language string
}

func (p Pair) String() string { return p.Key + "@" + p.Language }
