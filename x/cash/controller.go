package cash

import (
	"math/big"

	"github.com/iov-one/delayvault"
	"github.com/iov-one/delayvault/errors"
	"github.com/iov-one/delayvault/orm"
)

// Controller reads and modifies account balances.
type Controller struct {
	bucket orm.ModelBucket
}

// NewController returns a controller operating on the cash bucket.
func NewController() Controller {
	return Controller{bucket: orm.NewModelBucket(BucketName)}
}

func balanceKey(addr delayvault.Address, asset string) []byte {
	return orm.CompositeKey(addr, []byte(asset))
}

// Balance returns the amount of given asset held by the account. Unknown
// accounts hold nothing.
func (c Controller) Balance(db delayvault.ReadOnlyKVStore, addr delayvault.Address, asset string) (*big.Int, error) {
	var b Balance
	err := c.bucket.One(db, balanceKey(addr, asset), &b)
	switch {
	case err == nil:
		return b.Value(), nil
	case errors.ErrNotFound.Is(err):
		return new(big.Int), nil
	default:
		return nil, err
	}
}

func (c Controller) save(db delayvault.KVStore, addr delayvault.Address, asset string, value *big.Int) error {
	if value.Sign() == 0 {
		ok, err := c.bucket.Has(db, balanceKey(addr, asset))
		if err != nil || !ok {
			return err
		}
		return c.bucket.Delete(db, balanceKey(addr, asset))
	}
	b := Balance{Amount: delayvault.AmountBytes(value)}
	return c.bucket.Put(db, balanceKey(addr, asset), &b)
}

// MoveCoins moves the given amount from src to dest.
// If src doesn't have sufficient coins, it fails.
func (c Controller) MoveCoins(db delayvault.KVStore, src, dest delayvault.Address, asset string, amount *big.Int) error {
	if amount == nil || amount.Sign() <= 0 {
		return errors.Wrap(errors.ErrInvalidAmount, "non-positive transfer")
	}
	if err := src.Validate(); err != nil {
		return errors.Wrap(err, "source")
	}
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	have, err := c.Balance(db, src, asset)
	if err != nil {
		return err
	}
	if have.Cmp(amount) < 0 {
		return errors.Wrapf(errors.ErrInsufficientAmount, "%s %s, have %s", amount, asset, have)
	}
	if err := c.save(db, src, asset, have.Sub(have, amount)); err != nil {
		return errors.Wrap(err, "source")
	}
	got, err := c.Balance(db, dest, asset)
	if err != nil {
		return err
	}
	if err := c.save(db, dest, asset, got.Add(got, amount)); err != nil {
		return errors.Wrap(err, "destination")
	}
	return nil
}

// IssueCoins adds the given amount of an asset to the destination account.
func (c Controller) IssueCoins(db delayvault.KVStore, dest delayvault.Address, asset string, amount *big.Int) error {
	if amount == nil || amount.Sign() <= 0 {
		return errors.Wrap(errors.ErrInvalidAmount, "non-positive issue")
	}
	if err := delayvault.ValidateAsset(asset); err != nil {
		return err
	}
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	got, err := c.Balance(db, dest, asset)
	if err != nil {
		return err
	}
	return c.save(db, dest, asset, got.Add(got, amount))
}
