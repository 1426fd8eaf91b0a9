package directory

import (
	"github.com/iov-one/delayvault"
)

// Index keeps the two directories of the vault: assets by depositor and
// depositors by asset.
type Index struct {
	assets     Directory
	depositors Directory
}

// NewIndex returns an index over both directories.
func NewIndex() *Index {
	return &Index{
		assets:     NewDirectory("assets"),
		depositors: NewDirectory("depos"),
	}
}

// Register lists the asset for the depositor and the depositor for the
// asset. Registering the same pair again changes nothing.
func (ix *Index) Register(db delayvault.KVStore, depositor delayvault.Address, asset string) error {
	if _, err := ix.assets.Add(db, depositor, []byte(asset)); err != nil {
		return err
	}
	if _, err := ix.depositors.Add(db, []byte(asset), depositor); err != nil {
		return err
	}
	return nil
}

// CountAssets returns the number of assets the depositor ever deposited.
func (ix *Index) CountAssets(db delayvault.ReadOnlyKVStore, depositor delayvault.Address) (uint64, error) {
	return ix.assets.Count(db, depositor)
}

// CountDepositors returns the number of depositors of given asset.
func (ix *Index) CountDepositors(db delayvault.ReadOnlyKVStore, asset string) (uint64, error) {
	return ix.depositors.Count(db, []byte(asset))
}

// RangeAssets returns the depositor assets at positions from to to.
func (ix *Index) RangeAssets(db delayvault.ReadOnlyKVStore, depositor delayvault.Address, from, to uint64) ([]string, error) {
	raw, err := ix.assets.Range(db, depositor, from, to)
	if err != nil {
		return nil, err
	}
	return toAssets(raw), nil
}

// AllAssets returns every asset the depositor ever deposited.
func (ix *Index) AllAssets(db delayvault.ReadOnlyKVStore, depositor delayvault.Address) ([]string, error) {
	raw, err := ix.assets.All(db, depositor)
	if err != nil {
		return nil, err
	}
	return toAssets(raw), nil
}

// RangeDepositors returns the asset depositors at positions from to to.
func (ix *Index) RangeDepositors(db delayvault.ReadOnlyKVStore, asset string, from, to uint64) ([]delayvault.Address, error) {
	raw, err := ix.depositors.Range(db, []byte(asset), from, to)
	if err != nil {
		return nil, err
	}
	return toAddresses(raw), nil
}

// AllDepositors returns every depositor of given asset.
func (ix *Index) AllDepositors(db delayvault.ReadOnlyKVStore, asset string) ([]delayvault.Address, error) {
	raw, err := ix.depositors.All(db, []byte(asset))
	if err != nil {
		return nil, err
	}
	return toAddresses(raw), nil
}

func toAssets(raw [][]byte) []string {
	res := make([]string, len(raw))
	for i, r := range raw {
		res[i] = string(r)
	}
	return res
}

func toAddresses(raw [][]byte) []delayvault.Address {
	res := make([]delayvault.Address, len(raw))
	for i, r := range raw {
		res[i] = delayvault.Address(r)
	}
	return res
}
