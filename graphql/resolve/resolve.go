// Package resolve holds helpers shared by the GraphQL modules.
package resolve

import (
	"time"

	"github.com/graphql-go/graphql"
	"github.com/ortelius/governance-backend/governance"
	"github.com/ortelius/governance-backend/restapi/modules/auth"
	"github.com/ortelius/governance-backend/util"
)

// Clock returns the time used to derive proposal state.
type Clock func() time.Time

// CodedError exposes a governance error code in the GraphQL error extensions.
type CodedError struct {
	Err error
}

func (e CodedError) Error() string {
	return e.Err.Error()
}

// Extensions implements gqlerrors.ExtendedError.
func (e CodedError) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": governance.CodeOf(e.Err)}
}

// Error wraps err so resolvers report its code.
func Error(err error) error {
	if err == nil {
		return nil
	}
	return CodedError{Err: err}
}

// Time formats t for output.
func Time(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// User returns the "user" argument, falling back to the caller identity.
func User(p graphql.ResolveParams) (string, bool) {
	if user, ok := p.Args["user"].(string); ok && util.NormalizeIdentity(user) != "" {
		return util.NormalizeIdentity(user), true
	}
	return auth.IdentityFromContext(p.Context)
}

// String reads a string argument.
func String(p graphql.ResolveParams, name string) string {
	s, _ := p.Args[name].(string)
	return s
}
