package vault

import (
	"github.com/iov-one/delayvault"
	"github.com/iov-one/delayvault/errors"
	"github.com/iov-one/delayvault/gconf"
	"github.com/iov-one/delayvault/x/policy"
)

// requireOwner loads the configuration and ensures its owner signed.
func (e *Engine) requireOwner(ctx delayvault.Context, db delayvault.ReadOnlyKVStore) (*Configuration, error) {
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	if !e.auth.HasAddress(ctx, conf.Owner) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "owner signature required")
	}
	return conf, nil
}

// updateConf applies change to the configuration on behalf of its owner.
func (e *Engine) updateConf(ctx delayvault.Context, op string, change func(*Configuration) error) error {
	return e.exec(ctx, op, func(ctx delayvault.Context, db delayvault.KVStore) error {
		var conf Configuration
		return gconf.Update(ctx, db, e.auth, configPkg, &conf, func() error {
			return change(&conf)
		})
	})
}

// SetTiers replaces the tier table of an asset and activates it.
func (e *Engine) SetTiers(ctx delayvault.Context, asset string, tiers policy.Tiers) error {
	return e.exec(ctx, "set_tiers", func(ctx delayvault.Context, db delayvault.KVStore) error {
		conf, err := e.requireOwner(ctx, db)
		if err != nil {
			return err
		}
		return e.policies.SetTiers(db, asset, tiers, conf.MaxDelay)
	})
}

// SetActive enables or disables deposits of an asset.
func (e *Engine) SetActive(ctx delayvault.Context, asset string, active bool) error {
	return e.exec(ctx, "set_active", func(ctx delayvault.Context, db delayvault.KVStore) error {
		if _, err := e.requireOwner(ctx, db); err != nil {
			return err
		}
		return e.policies.SetActive(db, asset, active)
	})
}

// SetWithdrawEpoch sets the time withdrawal delays of an asset are counted
// from.
func (e *Engine) SetWithdrawEpoch(ctx delayvault.Context, asset string, epoch delayvault.UnixTime) error {
	return e.exec(ctx, "set_epoch", func(ctx delayvault.Context, db delayvault.KVStore) error {
		if _, err := e.requireOwner(ctx, db); err != nil {
			return err
		}
		if err := epoch.Validate(); err != nil {
			return err
		}
		return e.policies.SetWithdrawEpoch(db, asset, epoch)
	})
}

// SwapWhitelistFilter toggles the eligibility check of an asset and
// returns the new state.
func (e *Engine) SwapWhitelistFilter(ctx delayvault.Context, asset string) (bool, error) {
	var enabled bool
	err := e.exec(ctx, "swap_filter", func(ctx delayvault.Context, db delayvault.KVStore) error {
		if _, err := e.requireOwner(ctx, db); err != nil {
			return err
		}
		var err error
		enabled, err = e.policies.SwapWhitelistFilter(db, asset)
		return err
	})
	return enabled, err
}

// SetPaused stops or resumes deposits and withdrawals.
func (e *Engine) SetPaused(ctx delayvault.Context, paused bool) error {
	return e.updateConf(ctx, "set_paused", func(c *Configuration) error {
		if c.Paused == paused {
			return errors.Wrapf(errors.ErrNoOpConfigChange, "paused %t", paused)
		}
		c.Paused = paused
		return nil
	})
}

// SetDelayBounds sets the global minimum start delay and the delay cap. The
// cap cannot be lowered below a delay required by any tier table.
func (e *Engine) SetDelayBounds(ctx delayvault.Context, min, max uint64) error {
	return e.exec(ctx, "set_bounds", func(ctx delayvault.Context, db delayvault.KVStore) error {
		var conf Configuration
		return gconf.Update(ctx, db, e.auth, configPkg, &conf, func() error {
			if conf.MinDelay == min && conf.MaxDelay == max {
				return errors.Wrapf(errors.ErrNoOpConfigChange, "bounds %d-%d", min, max)
			}
			if err := e.policies.CheckCap(db, max); err != nil {
				return err
			}
			conf.MinDelay, conf.MaxDelay = min, max
			return nil
		})
	})
}

// SetVestingFacility sets the facility withdrawals are forwarded to. A
// zero address releases withdrawals directly. The address must be the
// account the wired facility pays out from.
func (e *Engine) SetVestingFacility(ctx delayvault.Context, addr delayvault.Address) error {
	return e.updateConf(ctx, "set_facility", func(c *Configuration) error {
		if c.VestingFacility.Equals(addr) {
			return errors.Wrapf(errors.ErrNoOpConfigChange, "facility %s", addr)
		}
		if !addr.IsZero() {
			if e.facility == nil {
				return errors.Wrap(errors.ErrInput, "no vesting facility to forward to")
			}
			if fa, ok := e.facility.(FacilityAccount); ok && !fa.Account().Equals(addr) {
				return errors.Wrapf(errors.ErrInput, "facility account is %s, not %s", fa.Account(), addr)
			}
		}
		c.VestingFacility = addr
		return nil
	})
}

// SetWhitelistAddress sets the eligibility oracle. A zero address disables
// eligibility checks.
func (e *Engine) SetWhitelistAddress(ctx delayvault.Context, addr delayvault.Address) error {
	return e.updateConf(ctx, "set_wl_addr", func(c *Configuration) error {
		if c.WhitelistAddress.Equals(addr) {
			return errors.Wrapf(errors.ErrNoOpConfigChange, "whitelist %s", addr)
		}
		c.WhitelistAddress = addr
		return nil
	})
}

// SetWhitelistID sets the whitelist consulted on deposits.
func (e *Engine) SetWhitelistID(ctx delayvault.Context, id uint64) error {
	return e.updateConf(ctx, "set_wl_id", func(c *Configuration) error {
		if c.WhitelistID == id {
			return errors.Wrapf(errors.ErrNoOpConfigChange, "whitelist id %d", id)
		}
		c.WhitelistID = id
		return nil
	})
}
