package x

import (
	"github.com/iov-one/delayvault"
)

// Authenticator is an interface we can use to extract authentication info
// from the context. It is passed into the engine constructor, so that the
// source of signatures can be replaced without touching the vault logic.
type Authenticator interface {
	// GetConditions reveals all Conditions fulfilled.
	GetConditions(delayvault.Context) []delayvault.Condition
	// HasAddress checks if any condition matches this address.
	HasAddress(delayvault.Context, delayvault.Address) bool
}

// MultiAuth chains together many Authenticators into one
type MultiAuth struct {
	impls []Authenticator
}

var _ Authenticator = MultiAuth{}

// ChainAuth groups together a series of Authenticator
func ChainAuth(impls ...Authenticator) MultiAuth {
	return MultiAuth{impls}
}

// GetConditions combines all Conditions from all Authenticators
func (m MultiAuth) GetConditions(ctx delayvault.Context) []delayvault.Condition {
	var res []delayvault.Condition
	for _, impl := range m.impls {
		res = append(res, impl.GetConditions(ctx)...)
	}
	return res
}

// HasAddress returns true iff any Authenticator support this
func (m MultiAuth) HasAddress(ctx delayvault.Context, addr delayvault.Address) bool {
	for _, impl := range m.impls {
		if impl.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// MainSigner returns the first permission if any, otherwise nil
func MainSigner(ctx delayvault.Context, auth Authenticator) delayvault.Condition {
	signers := auth.GetConditions(ctx)
	if len(signers) == 0 {
		return nil
	}
	return signers[0]
}

// MainAddress returns the address of the main signer, or nil if nobody
// signed.
func MainAddress(ctx delayvault.Context, auth Authenticator) delayvault.Address {
	return MainSigner(ctx, auth).Address()
}

// GetAddresses wraps the GetConditions method of any Authenticator
func GetAddresses(ctx delayvault.Context, auth Authenticator) []delayvault.Address {
	conds := auth.GetConditions(ctx)
	addrs := make([]delayvault.Address, len(conds))
	for i, c := range conds {
		addrs[i] = c.Address()
	}
	return addrs
}
