package delayvault

import (
	"math/big"

	"github.com/iov-one/delayvault/errors"
)

// AmountFromBytes decodes an amount stored as a big-endian unsigned integer.
// An empty slice is zero.
func AmountFromBytes(raw []byte) *big.Int {
	return new(big.Int).SetBytes(raw)
}

// AmountBytes encodes a non-negative amount as a big-endian unsigned
// integer. Zero is encoded as an empty slice.
func AmountBytes(a *big.Int) []byte {
	if a == nil || a.Sign() <= 0 {
		return nil
	}
	return a.Bytes()
}

// ParseAmount parses a decimal representation of a non-negative amount.
func ParseAmount(s string) (*big.Int, error) {
	a, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, errors.ErrInput.Newf("amount %q", s)
	}
	if a.Sign() < 0 {
		return nil, errors.ErrInvalidAmount.Newf("negative amount %s", s)
	}
	return a, nil
}

// ValidateAmount returns an error if given amount is not set or negative.
func ValidateAmount(a *big.Int) error {
	switch {
	case a == nil:
		return errors.ErrInvalidAmount.New("missing")
	case a.Sign() < 0:
		return errors.ErrInvalidAmount.Newf("negative amount %s", a)
	}
	return nil
}
