package logger

import (
	"context"

	"go.uber.org/zap"
)

type ctxKey struct{}

// Log field keys shared by the HTTP layer and the search use cases, so one
// session can be followed from the request line down to the index calls.
const (
	KeySessionID  = "session_id"
	KeyProfile    = "profile"
	KeyCollection = "collection"
	KeyQuery      = "query"
	KeyEpoch      = "epoch"
)

// ContextWithLogger stores a logger in the context.
func ContextWithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// FromContext extracts the request logger, or a no-op logger outside a request.
func FromContext(ctx context.Context) *zap.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*zap.Logger); ok {
		return l
	}
	return zap.NewNop()
}

// With returns a context whose logger carries the extra fields.
func With(ctx context.Context, fields ...zap.Field) context.Context {
	return ContextWithLogger(ctx, FromContext(ctx).With(fields...))
}

// Session is the field set identifying a search session.
func Session(id, profile string) []zap.Field {
	return []zap.Field{zap.String(KeySessionID, id), zap.String(KeyProfile, profile)}
}

// Profile tags a preferences profile.
func Profile(profile string) zap.Field { return zap.String(KeyProfile, profile) }

// Collection tags a single collection.
func Collection(name string) zap.Field { return zap.String(KeyCollection, name) }

// Generation tags the query generation a fetch was started under.
func Generation(query string, epoch uint64) []zap.Field {
	return []zap.Field{zap.String(KeyQuery, query), zap.Uint64(KeyEpoch, epoch)}
}
