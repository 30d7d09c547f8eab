package session

import (
	"context"

	"github.com/roamly/auth-service/pkg/user"
)

type userContextKey struct{}

// SetUser stores the resolved identity in the context for downstream handlers.
func SetUser(ctx context.Context, u *user.User) context.Context {
	return context.WithValue(ctx, userContextKey{}, u)
}

// GetUser returns the identity resolved by the session middleware, or nil
// if the request is unauthenticated.
func GetUser(ctx context.Context) *user.User {
	u, _ := ctx.Value(userContextKey{}).(*user.User)
	return u
}
