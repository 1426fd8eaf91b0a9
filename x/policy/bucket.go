package policy

import (
	"math/big"

	"github.com/iov-one/delayvault"
	"github.com/iov-one/delayvault/errors"
	"github.com/iov-one/delayvault/orm"
	"github.com/iov-one/delayvault/x/directory"
)

// tablesKey is the directory owner all assets with a table are listed
// under.
var tablesKey = []byte("tables")

// Bucket stores one tier table per asset.
type Bucket struct {
	orm.ModelBucket
	assets directory.Directory
}

// NewBucket returns a bucket for managing tier tables.
func NewBucket() Bucket {
	return Bucket{
		ModelBucket: orm.NewModelBucket("policy"),
		assets:      directory.NewDirectory("ptable"),
	}
}

// Get loads the table of given asset. It returns ErrNoPolicyForAsset if the
// asset has no table.
func (b Bucket) Get(db delayvault.ReadOnlyKVStore, asset string) (*Table, error) {
	var t Table
	switch err := b.One(db, []byte(asset), &t); {
	case err == nil:
		return &t, nil
	case errors.ErrNotFound.Is(err):
		return nil, errors.Wrapf(errors.ErrNoPolicyForAsset, "asset %s", asset)
	default:
		return nil, err
	}
}

// Bounds returns a snapshot of the table of given asset. An asset without a
// table has an empty, inactive one.
func (b Bucket) Bounds(db delayvault.ReadOnlyKVStore, asset string) (*Table, error) {
	t, err := b.Get(db, asset)
	if errors.ErrNoPolicyForAsset.Is(err) {
		return &Table{}, nil
	}
	return t, err
}

// SetTiers replaces the tiers of given asset and activates it. Settings
// like the withdraw epoch are kept. No delay may exceed maxDelay, use zero
// to disable that check.
//
// Nothing is written unless all the tiers are valid.
func (b Bucket) SetTiers(db delayvault.KVStore, asset string, tiers Tiers, maxDelay uint64) error {
	if err := delayvault.ValidateAsset(asset); err != nil {
		return err
	}
	t, err := b.Bounds(db, asset)
	if err != nil {
		return err
	}
	if err := tiers.apply(t); err != nil {
		return errors.Wrapf(err, "asset %s", asset)
	}
	if maxDelay > 0 && t.Longest() > maxDelay {
		return errors.Wrapf(errors.ErrDelayExceedsCap, "delay %d above %d", t.Longest(), maxDelay)
	}
	t.Active = true
	if err := b.Put(db, []byte(asset), t); err != nil {
		return err
	}
	if _, err := b.assets.Add(db, tablesKey, []byte(asset)); err != nil {
		return errors.Wrap(err, "list asset")
	}
	return nil
}

// Assets returns all assets with a tier table, in the order the tables
// were first set.
func (b Bucket) Assets(db delayvault.ReadOnlyKVStore) ([]string, error) {
	raw, err := b.assets.All(db, tablesKey)
	if err != nil {
		return nil, err
	}
	assets := make([]string, len(raw))
	for i, a := range raw {
		assets[i] = string(a)
	}
	return assets, nil
}

// CheckCap returns ErrDelayExceedsCap if any table, active or not,
// requires a delay longer than maxDelay. Zero disables the check.
func (b Bucket) CheckCap(db delayvault.ReadOnlyKVStore, maxDelay uint64) error {
	if maxDelay == 0 {
		return nil
	}
	assets, err := b.Assets(db)
	if err != nil {
		return err
	}
	for _, asset := range assets {
		t, err := b.Get(db, asset)
		if err != nil {
			return err
		}
		if t.Longest() > maxDelay {
			return errors.Wrapf(errors.ErrDelayExceedsCap, "asset %s requires delay %d above %d", asset, t.Longest(), maxDelay)
		}
	}
	return nil
}

// Lookup returns the delays required for given cumulative amount of an
// asset. An asset without an active table requires no delay.
func (b Bucket) Lookup(db delayvault.ReadOnlyKVStore, asset string, amount *big.Int) (delayvault.Delays, error) {
	t, err := b.Bounds(db, asset)
	if err != nil {
		return delayvault.Delays{}, err
	}
	return t.Lookup(amount), nil
}

// IsActive returns true if the asset has an active table.
func (b Bucket) IsActive(db delayvault.ReadOnlyKVStore, asset string) (bool, error) {
	t, err := b.Bounds(db, asset)
	if err != nil {
		return false, err
	}
	return t.Active, nil
}

// SetActive enables or disables deposits of an asset without discarding
// its table.
func (b Bucket) SetActive(db delayvault.KVStore, asset string, active bool) error {
	return b.update(db, asset, func(t *Table) error {
		if t.Active == active {
			return errors.Wrapf(errors.ErrNoOpConfigChange, "active %t", active)
		}
		t.Active = active
		return nil
	})
}

// SetWithdrawEpoch sets the reference time withdrawal delays of an asset
// are counted from.
func (b Bucket) SetWithdrawEpoch(db delayvault.KVStore, asset string, epoch delayvault.UnixTime) error {
	return b.update(db, asset, func(t *Table) error {
		if t.WithdrawEpoch == epoch {
			return errors.Wrapf(errors.ErrNoOpConfigChange, "withdraw epoch %d", epoch)
		}
		t.WithdrawEpoch = epoch
		return nil
	})
}

// SwapWhitelistFilter toggles the whitelist check of an asset and returns
// the new state.
func (b Bucket) SwapWhitelistFilter(db delayvault.KVStore, asset string) (bool, error) {
	var enabled bool
	err := b.update(db, asset, func(t *Table) error {
		t.WhitelistFilter = !t.WhitelistFilter
		enabled = t.WhitelistFilter
		return nil
	})
	return enabled, err
}

func (b Bucket) update(db delayvault.KVStore, asset string, change func(*Table) error) error {
	t, err := b.Get(db, asset)
	if err != nil {
		return err
	}
	if err := change(t); err != nil {
		return errors.Wrapf(err, "asset %s", asset)
	}
	return b.Put(db, []byte(asset), t)
}
