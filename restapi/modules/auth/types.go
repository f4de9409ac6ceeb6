package auth

import "context"

// IdentityResponse defines the session info returned to the frontend
type IdentityResponse struct {
	Identity string `json:"identity"`
}

type contextKey string

// IdentityKey is the context key holding the caller identity for GraphQL
// resolvers.
const IdentityKey contextKey = "identity"

// IdentityFromContext returns the caller identity stored under IdentityKey.
func IdentityFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	id, ok := ctx.Value(IdentityKey).(string)
	return id, ok && id != ""
}
