package translation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kailas-cloud/solrdesk/internal/domain"
	domtr "github.com/kailas-cloud/solrdesk/internal/domain/translation"
)

func TestCreate_DuplicateRejectedBeforeWrite(t *testing.T) {
	remote := newMockRemote(greetingEN())
	svc := New(remote, time.Minute)
	ctx := context.Background()

	_, err := svc.List(ctx, "")
	require.NoError(t, err)

	_, err = svc.Create(ctx, "greeting", "en", "Hi there")
	require.ErrorIs(t, err, domain.ErrDuplicateTranslation)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.NotErrorIs(t, err, domain.ErrTransport)
	assert.Equal(t, 0, remote.createCalls)
	assert.Equal(t, 1, remote.listCalls, "warm catalog must answer the duplicate check")
}

func TestCreate_ColdCatalogLoadsOnce(t *testing.T) {
	remote := newMockRemote(greetingEN())
	svc := New(remote, time.Minute)

	_, err := svc.Create(context.Background(), "greeting", "en", "Hi")
	require.ErrorIs(t, err, domain.ErrDuplicateTranslation)
	assert.Equal(t, 1, remote.listCalls)
	assert.Equal(t, 0, remote.createCalls)
}

func TestCreate_OtherLanguageAllowed(t *testing.T) {
	remote := newMockRemote(greetingEN())
	svc := New(remote, time.Minute)

	created, err := svc.Create(context.Background(), "greeting", "de", "Hallo")
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID())
	assert.Equal(t, 1, remote.createCalls)

	list, err := svc.List(context.Background(), "de")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Hallo", list[0].Value())
}

func TestCreate_MissingFields(t *testing.T) {
	remote := newMockRemote()
	svc := New(remote, time.Minute)

	for _, tc := range []struct{ key, lang, value string }{
		{"", "en", "x"},
		{"k", " ", "x"},
		{"k", "en", ""},
	} {
		_, err := svc.Create(context.Background(), tc.key, tc.lang, tc.value)
		assert.ErrorIs(t, err, domain.ErrValidation)
	}
	assert.Zero(t, remote.listCalls+remote.createCalls)
}

func TestCreate_RemoteConflictMapsToDuplicate(t *testing.T) {
	remote := newMockRemote()
	remote.createErr = domain.NewStatusError("translation_create", 409, "duplicate")
	svc := New(remote, time.Minute)

	_, err := svc.Create(context.Background(), "greeting", "en", "Hello")
	require.ErrorIs(t, err, domain.ErrDuplicateTranslation)
	assert.NotErrorIs(t, err, domain.ErrUpstream)
}

func TestCreate_RemoteFailure(t *testing.T) {
	remote := newMockRemote()
	remote.createErr = domain.NewStatusError("translation_create", 500, "")
	svc := New(remote, time.Minute)

	_, err := svc.Create(context.Background(), "greeting", "en", "Hello")
	assert.ErrorIs(t, err, domain.ErrUpstream)
	assert.NotErrorIs(t, err, domain.ErrValidation)
}

func TestUpdate_SameRecordNotDuplicate(t *testing.T) {
	remote := newMockRemote(greetingEN())
	svc := New(remote, time.Minute)

	updated, err := svc.Update(context.Background(), "1", "greeting", "en", "Hi")
	require.NoError(t, err)
	assert.Equal(t, "Hi", updated.Value())
	assert.Equal(t, 1, remote.updateCalls)
}

func TestUpdate_CollidesWithOtherRecord(t *testing.T) {
	remote := newMockRemote(greetingEN(), domtr.Reconstruct("2", "farewell", "en", "Bye"))
	svc := New(remote, time.Minute)

	_, err := svc.Update(context.Background(), "2", "greeting", "en", "Bye")
	require.ErrorIs(t, err, domain.ErrDuplicateTranslation)
	assert.Equal(t, 0, remote.updateCalls)
}

func TestUpdate_RequiresID(t *testing.T) {
	svc := New(newMockRemote(), time.Minute)
	_, err := svc.Update(context.Background(), " ", "greeting", "en", "Hi")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestDelete(t *testing.T) {
	remote := newMockRemote(greetingEN())
	svc := New(remote, time.Minute)
	ctx := context.Background()

	_, err := svc.List(ctx, "")
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, "1"))

	// catalog was invalidated: the pair can be created again
	_, err = svc.Create(ctx, "greeting", "en", "Hello again")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(ctx, "missing"), domain.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, ""), domain.ErrValidation)
}

func TestList_SortedAndFiltered(t *testing.T) {
	remote := newMockRemote(
		domtr.Reconstruct("1", "b", "en", "B"),
		domtr.Reconstruct("2", "a", "fr", "A"),
		domtr.Reconstruct("3", "a", "en", "A"),
	)
	svc := New(remote, time.Minute)

	all, err := svc.List(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"3", "2", "1"}, []string{all[0].ID(), all[1].ID(), all[2].ID()})

	en, err := svc.List(context.Background(), "en")
	require.NoError(t, err)
	assert.Len(t, en, 2)
}

func TestList_Error(t *testing.T) {
	remote := newMockRemote()
	remote.listErr = domain.ErrTransport
	svc := New(remote, time.Minute)

	_, err := svc.List(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrTransport)
}
