package cash

import (
	"github.com/iov-one/delayvault"
	"github.com/iov-one/delayvault/errors"
)

const optKey = "cash"

// GenesisCoin is an amount of an asset, with the amount written in decimal.
type GenesisCoin struct {
	Asset  string `json:"asset"`
	Amount string `json:"amount"`
}

// GenesisAccount is used to parse the json from genesis file
// use delayvault.Address, so address in hex, not base64
type GenesisAccount struct {
	Address delayvault.Address `json:"address"`
	Coins   []GenesisCoin      `json:"coins"`
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ delayvault.Initializer = Initializer{}

// FromGenesis will parse initial account info from genesis
// and save it to the database
func (Initializer) FromGenesis(opts delayvault.Options, kv delayvault.KVStore) error {
	var accts []GenesisAccount
	if err := opts.ReadOptions(optKey, &accts); err != nil {
		return err
	}
	ctrl := NewController()
	for i, acct := range accts {
		if err := acct.Address.Validate(); err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
		for _, c := range acct.Coins {
			amount, err := delayvault.ParseAmount(c.Amount)
			if err != nil {
				return errors.Wrapf(err, "account %d", i)
			}
			if err := ctrl.IssueCoins(kv, acct.Address, c.Asset, amount); err != nil {
				return errors.Wrapf(err, "account %d", i)
			}
		}
	}
	return nil
}
