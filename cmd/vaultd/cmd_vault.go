package main

import (
	"fmt"
	"io"

	"github.com/iov-one/delayvault"
)

func cmdDeposit(input io.Reader, output io.Writer, args []string) error {
	fl := newFlagSet("deposit", `
Lock funds of the main signer in the vault. Depositing into a funded vault
tops it up. Delays can only be extended. A zero amount deposit extends the
delays only.`)
	var (
		o        = stateFlags(fl)
		assetFl  = fl.String("asset", "", "Ticker of the deposited asset.")
		amountFl = flAmount(fl, "amount", "Amount to deposit.")
		startFl  = fl.Duration("start", 0, "Delay before the funds can be withdrawn.")
		cliffFl  = fl.Duration("cliff", 0, "Cliff delay forwarded to the vesting facility.")
		finishFl = fl.Duration("finish", 0, "Finish delay forwarded to the vesting facility.")
	)
	fl.Parse(args)

	delays := delayvault.Delays{
		Start:  seconds("start", *startFl),
		Cliff:  seconds("cliff", *cliffFl),
		Finish: seconds("finish", *finishFl),
	}
	return withEnv(o, func(e *env) error {
		if err := e.engine.Deposit(e.ctx, *assetFl, amountFl, delays); err != nil {
			return err
		}
		v, err := e.engine.Vault(*assetFl, mainAddress(o))
		if err != nil {
			return err
		}
		return writeJSON(output, vaultView(v))
	})
}

func cmdWithdraw(input io.Reader, output io.Writer, args []string) error {
	fl := newFlagSet("withdraw", `
Withdraw all funds the main signer holds in the vault of given asset. If a
vesting facility is configured the funds are forwarded to it.`)
	var (
		o       = stateFlags(fl)
		assetFl = fl.String("asset", "", "Ticker of the withdrawn asset.")
	)
	fl.Parse(args)

	return withEnv(o, func(e *env) error {
		amount, err := e.engine.Withdraw(e.ctx, *assetFl)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(output, amount)
		return err
	})
}

func cmdBuyBack(input io.Reader, output io.Writer, args []string) error {
	fl := newFlagSet("buyback", `
Buy funds back from a depositor vault. Must be signed by the owner and the
depositor must have given consent. Prints the amount left in the vault.`)
	var (
		o           = stateFlags(fl)
		assetFl     = fl.String("asset", "", "Ticker of the asset.")
		depositorFl = flAddress(fl, "depositor", "Address of the depositor.")
		amountFl    = flAmount(fl, "amount", "Amount to buy back.")
	)
	fl.Parse(args)

	return withEnv(o, func(e *env) error {
		left, err := e.engine.BuyBack(e.ctx, *assetFl, *depositorFl, amountFl)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(output, left)
		return err
	})
}

func cmdConsent(input io.Reader, output io.Writer, args []string) error {
	fl := newFlagSet("consent", `
Allow or forbid the owner to buy back the main signer vault.`)
	var (
		o         = stateFlags(fl)
		assetFl   = fl.String("asset", "", "Ticker of the asset.")
		grantedFl = fl.Bool("granted", true, "Whether buy-backs are allowed.")
	)
	fl.Parse(args)

	return withEnv(o, func(e *env) error {
		return e.engine.SetRedemptionConsent(e.ctx, *assetFl, *grantedFl)
	})
}

func cmdChecksum(input io.Reader, output io.Writer, args []string) error {
	fl := newFlagSet("checksum", `
Print the checksum of the main signer address and the configured vesting
facility.`)
	o := stateFlags(fl)
	fl.Parse(args)

	return viewEnv(o, func(e *env) error {
		sum, err := e.engine.Checksum(e.ctx)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(output, "%X\n", sum)
		return err
	})
}

func cmdVault(input io.Reader, output io.Writer, args []string) error {
	fl := newFlagSet("vault", `
Print the vault of a depositor.`)
	var (
		o           = stateFlags(fl)
		assetFl     = fl.String("asset", "", "Ticker of the asset.")
		depositorFl = flAddress(fl, "depositor", "Address of the depositor. Main signer if not set.")
	)
	fl.Parse(args)

	depositor := *depositorFl
	if len(depositor) == 0 {
		depositor = mainAddress(o)
	}
	return viewEnv(o, func(e *env) error {
		v, err := e.engine.Vault(*assetFl, depositor)
		if err != nil {
			return err
		}
		consent, err := e.engine.HasConsent(*assetFl, depositor)
		if err != nil {
			return err
		}
		view := vaultView(v)
		view.Consent = consent
		return writeJSON(output, view)
	})
}

func cmdAssets(input io.Reader, output io.Writer, args []string) error {
	fl := newFlagSet("assets", `
List assets of a depositor in the order of their first deposit.`)
	var (
		o           = stateFlags(fl)
		depositorFl = flAddress(fl, "depositor", "Address of the depositor. Main signer if not set.")
		heldFl      = fl.Bool("held", false, "List only assets with a non empty vault.")
		fromFl      = fl.Uint64("from", 0, "Position of the first listed asset.")
		toFl        = fl.Int64("to", -1, "Position of the last listed asset. All remaining if negative.")
	)
	fl.Parse(args)

	depositor := *depositorFl
	if len(depositor) == 0 {
		depositor = mainAddress(o)
	}
	return viewEnv(o, func(e *env) error {
		var (
			assets []string
			err    error
		)
		switch {
		case *heldFl:
			assets, err = e.engine.MyAssets(depositor)
		case *toFl >= 0:
			assets, err = e.engine.RangeAssets(depositor, *fromFl, uint64(*toFl))
		default:
			assets, err = e.engine.AllAssets(depositor)
			if err == nil && *fromFl < uint64(len(assets)) {
				assets = assets[*fromFl:]
			} else if err == nil {
				assets = nil
			}
		}
		if err != nil {
			return err
		}
		return writeJSON(output, assets)
	})
}

func cmdDepositors(input io.Reader, output io.Writer, args []string) error {
	fl := newFlagSet("depositors", `
List depositors of an asset in the order of their first deposit.`)
	var (
		o       = stateFlags(fl)
		assetFl = fl.String("asset", "", "Ticker of the asset.")
		fromFl  = fl.Uint64("from", 0, "Position of the first listed depositor.")
		toFl    = fl.Int64("to", -1, "Position of the last listed depositor. All remaining if negative.")
		countFl = fl.Bool("count", false, "Print the number of depositors only.")
	)
	fl.Parse(args)

	return viewEnv(o, func(e *env) error {
		if *countFl {
			n, err := e.engine.CountDepositors(*assetFl)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(output, n)
			return err
		}
		var (
			res []delayvault.Address
			err error
		)
		if *toFl >= 0 {
			res, err = e.engine.RangeDepositors(*assetFl, *fromFl, uint64(*toFl))
		} else {
			n, cerr := e.engine.CountDepositors(*assetFl)
			if cerr != nil {
				return cerr
			}
			if *fromFl < n {
				res, err = e.engine.RangeDepositors(*assetFl, *fromFl, n-1)
			}
		}
		if err != nil {
			return err
		}
		return writeJSON(output, res)
	})
}

func cmdMinDelay(input io.Reader, output io.Writer, args []string) error {
	fl := newFlagSet("min-delay", `
Print the delays a vault holding given total amount must be committed to.`)
	var (
		o        = stateFlags(fl)
		assetFl  = fl.String("asset", "", "Ticker of the asset.")
		amountFl = flAmount(fl, "amount", "Total amount held in the vault.")
	)
	fl.Parse(args)

	return viewEnv(o, func(e *env) error {
		d, err := e.engine.MinDelays(*assetFl, amountFl)
		if err != nil {
			return err
		}
		return writeJSON(output, d)
	})
}

func cmdTiers(input io.Reader, output io.Writer, args []string) error {
	fl := newFlagSet("tiers", `
Print the tier table of an asset.`)
	var (
		o       = stateFlags(fl)
		assetFl = fl.String("asset", "", "Ticker of the asset.")
	)
	fl.Parse(args)

	return viewEnv(o, func(e *env) error {
		t, err := e.engine.Tiers(*assetFl)
		if err != nil {
			return err
		}
		view := tableView{
			Active:          t.Active,
			WithdrawEpoch:   t.WithdrawEpoch,
			WhitelistFilter: t.WhitelistFilter,
		}
		for i := 0; i < t.Len(); i++ {
			view.Tiers = append(view.Tiers, tierView{
				Threshold: t.Threshold(i).String(),
				Delays:    t.Tier(i),
			})
		}
		return writeJSON(output, view)
	})
}

func mainAddress(o *options) delayvault.Address {
	if len(*o.signers) == 0 {
		return nil
	}
	return (*o.signers)[0].Address()
}
