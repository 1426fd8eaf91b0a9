package vaulttest

import (
	"encoding/binary"
	"sync/atomic"

	"github.com/iov-one/delayvault"
)

// Auth is a mock implementing x.Authenticator interface.
//
// This structure authenticates any of referenced conditions.
// You can use either Signer or Signers (or both) attributes to reference
// conditions. Each time all signers are considered.
type Auth struct {
	// Signer represents an authentication of a single signer.
	Signer delayvault.Condition

	// Signers represents an authentication of multiple signers.
	Signers []delayvault.Condition
}

func (a *Auth) GetConditions(delayvault.Context) []delayvault.Condition {
	if a.Signer != nil {
		return append([]delayvault.Condition{a.Signer}, a.Signers...)
	}
	return a.Signers
}

func (a *Auth) HasAddress(ctx delayvault.Context, addr delayvault.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}

var condSeq uint64

// NewCondition returns a new and unique condition. Every call returns a
// condition that was not returned before.
func NewCondition() delayvault.Condition {
	n := atomic.AddUint64(&condSeq, 1)
	data := make([]byte, 8)
	binary.BigEndian.PutUint64(data, n)
	return delayvault.NewCondition("test", "seq", data)
}

// NewAddress returns the address of a new and unique condition.
func NewAddress() delayvault.Address {
	return NewCondition().Address()
}
