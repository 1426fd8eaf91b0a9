package vault

import (
	"github.com/iov-one/delayvault"
	"github.com/iov-one/delayvault/errors"
	"github.com/iov-one/delayvault/gconf"
	"github.com/iov-one/delayvault/x/policy"
)

const optKey = "vault"

// GenesisTable is used to parse the tier tables from the genesis file.
type GenesisTable struct {
	Asset string `json:"asset"`
	policy.Tiers
	WithdrawEpoch   delayvault.UnixTime `json:"withdraw_epoch"`
	WhitelistFilter bool                `json:"whitelist_filter"`
}

// Initializer fulfils the Initializer interface to load the configuration
// and the tier tables from the genesis file.
type Initializer struct{}

var _ delayvault.Initializer = Initializer{}

// FromGenesis reads the configuration from opts["conf"]["vault"] and the
// tier tables from opts["vault"]["tables"].
func (Initializer) FromGenesis(opts delayvault.Options, db delayvault.KVStore) error {
	conf := Configuration{MaxDelay: DefaultMaxDelay}
	if err := gconf.InitConfig(db, opts, configPkg, &conf); err != nil {
		return errors.Wrap(err, "init config")
	}

	var state struct {
		Tables []GenesisTable `json:"tables"`
	}
	if err := opts.ReadOptions(optKey, &state); err != nil {
		return err
	}
	policies := policy.NewBucket()
	for _, t := range state.Tables {
		if err := policies.SetTiers(db, t.Asset, t.Tiers, conf.MaxDelay); err != nil {
			return errors.Wrapf(err, "tiers of %q", t.Asset)
		}
		if !t.WithdrawEpoch.IsZero() {
			if err := policies.SetWithdrawEpoch(db, t.Asset, t.WithdrawEpoch); err != nil {
				return errors.Wrapf(err, "withdraw epoch of %q", t.Asset)
			}
		}
		if t.WhitelistFilter {
			if _, err := policies.SwapWhitelistFilter(db, t.Asset); err != nil {
				return errors.Wrapf(err, "whitelist filter of %q", t.Asset)
			}
		}
	}
	return nil
}
