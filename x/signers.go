package x

import (
	"context"

	"github.com/iov-one/delayvault"
)

type signersKey struct{}

// WithSigners returns a context that authenticates given conditions. Any
// conditions set before are replaced.
func WithSigners(ctx delayvault.Context, conds ...delayvault.Condition) delayvault.Context {
	return context.WithValue(ctx, signersKey{}, conds)
}

// SignersAuth authenticates conditions declared on the context with
// WithSigners. It is used by the command line tool, where the signer is
// given as a flag, and by tests.
type SignersAuth struct{}

var _ Authenticator = SignersAuth{}

func (SignersAuth) GetConditions(ctx delayvault.Context) []delayvault.Condition {
	conds, _ := ctx.Value(signersKey{}).([]delayvault.Condition)
	return conds
}

func (a SignersAuth) HasAddress(ctx delayvault.Context, addr delayvault.Address) bool {
	if len(addr) == 0 {
		return false
	}
	for _, c := range a.GetConditions(ctx) {
		if addr.Equals(c.Address()) {
			return true
		}
	}
	return false
}
