package main

import (
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"time"

	"github.com/iov-one/delayvault"
	"github.com/iov-one/delayvault/errors"
	"github.com/iov-one/delayvault/x/cash"
	"github.com/iov-one/delayvault/x/policy"
	"github.com/iov-one/delayvault/x/vault"
)

func cmdInit(input io.Reader, output io.Writer, args []string) error {
	fl := newFlagSet("init", `
Initialize the state from a genesis document read from the standard input.
The document declares the configuration under "conf", the tier tables under
"vault" and the initial balances under "cash".`)
	o := stateFlags(fl)
	fl.Parse(args)

	raw, err := ioutil.ReadAll(input)
	if err != nil {
		return errors.Wrap(err, "read genesis")
	}
	var opts delayvault.Options
	if err := json.Unmarshal(raw, &opts); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	initializer := delayvault.ChainInitializers(cash.Initializer{}, vault.Initializer{})
	return withEnv(o, func(e *env) error {
		if e.store.LatestVersion().Version != 0 {
			return errors.Wrap(errors.ErrState, "state already initialized")
		}
		return e.apply(func(db delayvault.KVStore) error {
			return initializer.FromGenesis(opts, db)
		})
	})
}

func cmdSetTiers(input io.Reader, output io.Writer, args []string) error {
	fl := newFlagSet("set-tiers", `
Replace the tier table of an asset with the one read from the standard input
and activate it. The table is a JSON document with "thresholds", "start",
"cliff" and "finish" arrays of equal length. Delays are in seconds.`)
	var (
		o       = stateFlags(fl)
		assetFl = fl.String("asset", "", "Ticker of the asset.")
	)
	fl.Parse(args)

	var tiers policy.Tiers
	if err := json.NewDecoder(input).Decode(&tiers); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	return withEnv(o, func(e *env) error {
		return e.engine.SetTiers(e.ctx, *assetFl, tiers)
	})
}

func cmdSetActive(input io.Reader, output io.Writer, args []string) error {
	fl := newFlagSet("set-active", `
Enable or disable deposits of an asset.`)
	var (
		o        = stateFlags(fl)
		assetFl  = fl.String("asset", "", "Ticker of the asset.")
		activeFl = fl.Bool("active", true, "Whether deposits are accepted.")
	)
	fl.Parse(args)

	return withEnv(o, func(e *env) error {
		return e.engine.SetActive(e.ctx, *assetFl, *activeFl)
	})
}

func cmdSetEpoch(input io.Reader, output io.Writer, args []string) error {
	fl := newFlagSet("set-epoch", `
Set the time start delays of an asset are counted from on withdrawal.`)
	var (
		o       = stateFlags(fl)
		assetFl = fl.String("asset", "", "Ticker of the asset.")
		epochFl = fl.String("epoch", "", "Withdraw epoch in RFC3339 format.")
	)
	fl.Parse(args)

	t, err := time.Parse(time.RFC3339, *epochFl)
	if err != nil {
		flagDie("invalid epoch: %s", err)
	}
	return withEnv(o, func(e *env) error {
		return e.engine.SetWithdrawEpoch(e.ctx, *assetFl, delayvault.AsUnixTime(t))
	})
}

func cmdSwapWhitelistFilter(input io.Reader, output io.Writer, args []string) error {
	fl := newFlagSet("swap-whitelist-filter", `
Toggle the eligibility check of an asset. Prints the new state.`)
	var (
		o       = stateFlags(fl)
		assetFl = fl.String("asset", "", "Ticker of the asset.")
	)
	fl.Parse(args)

	return withEnv(o, func(e *env) error {
		enabled, err := e.engine.SwapWhitelistFilter(e.ctx, *assetFl)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(output, enabled)
		return err
	})
}

func cmdPause(input io.Reader, output io.Writer, args []string) error {
	fl := newFlagSet("pause", `
Stop or resume deposits and withdrawals.`)
	var (
		o        = stateFlags(fl)
		pausedFl = fl.Bool("paused", true, "Whether the vault is paused.")
	)
	fl.Parse(args)

	return withEnv(o, func(e *env) error {
		return e.engine.SetPaused(e.ctx, *pausedFl)
	})
}

func cmdSetBounds(input io.Reader, output io.Writer, args []string) error {
	fl := newFlagSet("set-bounds", `
Set the global minimum start delay and the delay cap.`)
	var (
		o     = stateFlags(fl)
		minFl = fl.Duration("min", 0, "Shortest start delay of any deposit.")
		maxFl = fl.Duration("max", vault.DefaultMaxDelay*time.Second, "Longest delay of any deposit or tier.")
	)
	fl.Parse(args)

	min, max := seconds("min", *minFl), seconds("max", *maxFl)
	return withEnv(o, func(e *env) error {
		return e.engine.SetDelayBounds(e.ctx, min, max)
	})
}

func cmdSetFacility(input io.Reader, output io.Writer, args []string) error {
	fl := newFlagSet("set-facility", `
Set the vesting facility withdrawals are forwarded to. An empty address
releases withdrawals directly to depositors.`)
	var (
		o         = stateFlags(fl)
		addressFl = flAddress(fl, "address", "Address of the vesting facility.")
	)
	fl.Parse(args)

	return withEnv(o, func(e *env) error {
		return e.engine.SetVestingFacility(e.ctx, *addressFl)
	})
}

func cmdSetWhitelist(input io.Reader, output io.Writer, args []string) error {
	fl := newFlagSet("set-whitelist", `
Set the eligibility oracle and the whitelist it consults. An empty address
disables eligibility checks.`)
	var (
		o         = stateFlags(fl)
		addressFl = flAddress(fl, "address", "Address of the eligibility oracle.")
		idFl      = fl.Uint64("id", 0, "Whitelist consulted on deposits. Unchanged if zero.")
	)
	fl.Parse(args)

	return withEnv(o, func(e *env) error {
		conf, err := e.engine.Configuration()
		if err != nil {
			return err
		}
		if !conf.WhitelistAddress.Equals(*addressFl) {
			if err := e.engine.SetWhitelistAddress(e.ctx, *addressFl); err != nil {
				return err
			}
		}
		if *idFl != 0 {
			return e.engine.SetWhitelistID(e.ctx, *idFl)
		}
		return nil
	})
}
