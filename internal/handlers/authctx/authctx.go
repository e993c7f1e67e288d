package authctx

import (
	"context"

	"github.com/tutorpocket/backend/internal/models"
)

type ctxKey string

const payloadKey ctxKey = "token-payload"

// Create a new context with the verified token payload
func New(ctx context.Context, p models.TokenPayload) context.Context {
	return context.WithValue(ctx, payloadKey, p)
}

// Extract the verified token payload from the context
func FromContext(ctx context.Context) (models.TokenPayload, bool) {
	p, ok := ctx.Value(payloadKey).(models.TokenPayload)
	return p, ok
}
