package querycache

import (
	"context"

	"github.com/medtrain/go-records-core/access"
)

type principalContextKey struct{}

// WithPrincipal attaches the authenticated principal to the context for the
// duration of a request. An absent principal reads back as nil, which the
// cache treats as an anonymous caller.
func WithPrincipal(ctx context.Context, p *access.Principal) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if p == nil {
		return ctx
	}
	return context.WithValue(ctx, principalContextKey{}, p)
}

// PrincipalFromContext returns the principal attached to the context, or nil.
func PrincipalFromContext(ctx context.Context) *access.Principal {
	if ctx == nil {
		return nil
	}
	if p, ok := ctx.Value(principalContextKey{}).(*access.Principal); ok {
		return p
	}
	return nil
}
