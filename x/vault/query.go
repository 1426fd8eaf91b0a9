package vault

import (
	"math/big"

	"github.com/iov-one/delayvault"
	"github.com/iov-one/delayvault/errors"
	"github.com/iov-one/delayvault/x"
	"github.com/iov-one/delayvault/x/ledger"
	"github.com/iov-one/delayvault/x/policy"
	"golang.org/x/crypto/sha3"
)

// Configuration returns the current configuration.
func (e *Engine) Configuration() (*Configuration, error) {
	var conf *Configuration
	err := e.view(func(db delayvault.ReadOnlyKVStore) error {
		var err error
		conf, err = loadConf(db)
		return err
	})
	return conf, err
}

// Tiers returns a snapshot of the tier table of an asset.
func (e *Engine) Tiers(asset string) (*policy.Table, error) {
	var t *policy.Table
	err := e.view(func(db delayvault.ReadOnlyKVStore) error {
		var err error
		t, err = e.policies.Bounds(db, asset)
		return err
	})
	return t, err
}

// MinDelays returns the delays a vault holding given total amount of an
// asset must be committed to.
func (e *Engine) MinDelays(asset string, total *big.Int) (delayvault.Delays, error) {
	var d delayvault.Delays
	err := e.view(func(db delayvault.ReadOnlyKVStore) error {
		if err := delayvault.ValidateAmount(total); err != nil {
			return err
		}
		var err error
		d, err = limits{policies: e.policies}.MinDelays(db, asset, total)
		return err
	})
	return d, err
}

// Vault returns the vault record of given pair.
func (e *Engine) Vault(asset string, depositor delayvault.Address) (*ledger.Vault, error) {
	var v *ledger.Vault
	err := e.view(func(db delayvault.ReadOnlyKVStore) error {
		var err error
		v, err = e.ledger.Get(db, asset, depositor)
		return err
	})
	return v, err
}

// HasConsent returns true if the depositor allows buy-backs of the vault.
func (e *Engine) HasConsent(asset string, depositor delayvault.Address) (bool, error) {
	var ok bool
	err := e.view(func(db delayvault.ReadOnlyKVStore) error {
		var err error
		ok, err = e.ledger.HasConsent(db, asset, depositor)
		return err
	})
	return ok, err
}

// AllAssets returns every asset the depositor ever deposited, in the order
// of the first deposit.
func (e *Engine) AllAssets(depositor delayvault.Address) ([]string, error) {
	var assets []string
	err := e.view(func(db delayvault.ReadOnlyKVStore) error {
		var err error
		assets, err = e.index.AllAssets(db, depositor)
		return err
	})
	return assets, err
}

// MyAssets returns the assets the depositor currently holds a balance of.
func (e *Engine) MyAssets(depositor delayvault.Address) ([]string, error) {
	var assets []string
	err := e.view(func(db delayvault.ReadOnlyKVStore) error {
		all, err := e.index.AllAssets(db, depositor)
		if err != nil {
			return err
		}
		assets = make([]string, 0, len(all))
		for _, a := range all {
			v, err := e.ledger.Get(db, a, depositor)
			if err != nil {
				return err
			}
			if !v.IsEmpty() {
				assets = append(assets, a)
			}
		}
		return nil
	})
	return assets, err
}

// RangeAssets returns the depositor assets at positions from to to, both
// inclusive.
func (e *Engine) RangeAssets(depositor delayvault.Address, from, to uint64) ([]string, error) {
	var assets []string
	err := e.view(func(db delayvault.ReadOnlyKVStore) error {
		var err error
		assets, err = e.index.RangeAssets(db, depositor, from, to)
		return err
	})
	return assets, err
}

// CountAssets returns the number of assets the depositor ever deposited.
func (e *Engine) CountAssets(depositor delayvault.Address) (uint64, error) {
	var n uint64
	err := e.view(func(db delayvault.ReadOnlyKVStore) error {
		var err error
		n, err = e.index.CountAssets(db, depositor)
		return err
	})
	return n, err
}

// AllDepositors returns every depositor of an asset, in the order of their
// first deposit.
func (e *Engine) AllDepositors(asset string) ([]delayvault.Address, error) {
	var res []delayvault.Address
	err := e.view(func(db delayvault.ReadOnlyKVStore) error {
		var err error
		res, err = e.index.AllDepositors(db, asset)
		return err
	})
	return res, err
}

// RangeDepositors returns the asset depositors at positions from to to,
// both inclusive.
func (e *Engine) RangeDepositors(asset string, from, to uint64) ([]delayvault.Address, error) {
	var res []delayvault.Address
	err := e.view(func(db delayvault.ReadOnlyKVStore) error {
		var err error
		res, err = e.index.RangeDepositors(db, asset, from, to)
		return err
	})
	return res, err
}

// CountDepositors returns the number of depositors of an asset.
func (e *Engine) CountDepositors(asset string) (uint64, error) {
	var n uint64
	err := e.view(func(db delayvault.ReadOnlyKVStore) error {
		var err error
		n, err = e.index.CountDepositors(db, asset)
		return err
	})
	return n, err
}

// Checksum returns the keccak256 hash of the signer address followed by the
// configured vesting facility address. A paired facility computes the same
// value to verify both sides are configured for each other.
func (e *Engine) Checksum(ctx delayvault.Context) ([]byte, error) {
	caller := x.MainAddress(ctx, e.auth)
	if caller == nil {
		return nil, errors.Wrap(errors.ErrUnauthorized, "signature required")
	}
	conf, err := e.Configuration()
	if err != nil {
		return nil, err
	}
	return Checksum(caller, conf.VestingFacility), nil
}

// Checksum hashes the caller and facility addresses.
func Checksum(caller, facility delayvault.Address) []byte {
	h := sha3.NewLegacyKeccak256()
	h.Write(caller)
	h.Write(facility)
	return h.Sum(nil)
}
