package auth

import (
	"context"

	"storefront-api/models"
)

// Identity is the authenticated caller, as proven by a verified token.
type Identity struct {
	UserID int64
	Role   models.Role
}

// HasRole reports whether the identity carries one of roles.
func (i Identity) HasRole(roles ...models.Role) bool {
	for _, r := range roles {
		if i.Role == r {
			return true
		}
	}
	return false
}

type ctxKey struct{}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(Identity)
	return id, ok
}
