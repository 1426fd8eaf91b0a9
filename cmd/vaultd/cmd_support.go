package main

import (
	"fmt"
	"io"

	"github.com/iov-one/delayvault"
	"github.com/iov-one/delayvault/orm"
	"github.com/iov-one/delayvault/x/lockeddeal"
	"github.com/iov-one/delayvault/x/vault"
)

func cmdAddr(input io.Reader, output io.Writer, args []string) error {
	fl := newFlagSet("addr", `
Print the addresses of the signers and of the accounts used by the vault.`)
	o := stateFlags(fl)
	fl.Parse(args)

	for _, c := range *o.signers {
		fmt.Fprintf(output, "%s\t%s\n", c, c.Address())
	}
	fmt.Fprintf(output, "custody\t%s\n", vault.Custody)
	fmt.Fprintf(output, "lockeddeal\t%s\n", lockeddeal.Address)
	return nil
}

func cmdBalance(input io.Reader, output io.Writer, args []string) error {
	fl := newFlagSet("balance", `
Print the balance of an account.`)
	var (
		o         = stateFlags(fl)
		addressFl = flAddress(fl, "address", "Address of the account. Main signer if not set.")
		assetFl   = fl.String("asset", "", "Ticker of the asset.")
	)
	fl.Parse(args)

	addr := *addressFl
	if len(addr) == 0 {
		addr = mainAddress(o)
	}
	return viewEnv(o, func(e *env) error {
		b, err := e.cash.Balance(e.store, addr, *assetFl)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(output, b)
		return err
	})
}

func cmdDeals(input io.Reader, output io.Writer, args []string) error {
	fl := newFlagSet("deals", `
List vesting deals of an owner.`)
	var (
		o       = stateFlags(fl)
		ownerFl = flAddress(fl, "owner", "Address of the deal owner. Main signer if not set.")
	)
	fl.Parse(args)

	owner := *ownerFl
	if len(owner) == 0 {
		owner = mainAddress(o)
	}
	type dealView struct {
		ID       uint64              `json:"id"`
		Asset    string              `json:"asset"`
		Amount   string              `json:"amount"`
		Released string              `json:"released"`
		Start    delayvault.UnixTime `json:"start"`
		Cliff    delayvault.UnixTime `json:"cliff"`
		Finish   delayvault.UnixTime `json:"finish"`
	}
	return viewEnv(o, func(e *env) error {
		ids, err := e.facility.OwnerDeals(e.store, owner)
		if err != nil {
			return err
		}
		views := make([]dealView, 0, len(ids))
		for _, id := range ids {
			d, err := e.facility.Get(e.store, id)
			if err != nil {
				return err
			}
			views = append(views, dealView{
				ID:       orm.DecodeSequence(id),
				Asset:    d.Asset,
				Amount:   d.Total().String(),
				Released: d.ReleasedAmount().String(),
				Start:    d.StartTime,
				Cliff:    d.CliffTime,
				Finish:   d.FinishTime,
			})
		}
		return writeJSON(output, views)
	})
}

func cmdReleaseDeal(input io.Reader, output io.Writer, args []string) error {
	fl := newFlagSet("release-deal", `
Pay out the unlocked part of a vesting deal to its owner. Prints the paid
amount.`)
	var (
		o    = stateFlags(fl)
		idFl = fl.Uint64("id", 0, "Deal id.")
	)
	fl.Parse(args)

	return withEnv(o, func(e *env) error {
		return e.apply(func(db delayvault.KVStore) error {
			paid, err := e.facility.Release(e.ctx, db, orm.EncodeSequence(*idFl))
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(output, paid)
			return err
		})
	})
}

func cmdWhitelistCreate(input io.Reader, output io.Writer, args []string) error {
	fl := newFlagSet("whitelist-create", `
Create a new whitelist. Prints its id.`)
	var (
		o       = stateFlags(fl)
		ownerFl = flAddress(fl, "owner", "Address allowed to change the whitelist. Main signer if not set.")
	)
	fl.Parse(args)

	owner := *ownerFl
	if len(owner) == 0 {
		owner = mainAddress(o)
	}
	return withEnv(o, func(e *env) error {
		return e.apply(func(db delayvault.KVStore) error {
			id, err := e.oracle.Create(db, owner)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(output, id)
			return err
		})
	})
}

func cmdWhitelistSet(input io.Reader, output io.Writer, args []string) error {
	fl := newFlagSet("whitelist-set", `
Mark accounts as eligible, or not, to deposit an asset. Must be signed by the
whitelist owner.`)
	var (
		o          = stateFlags(fl)
		idFl       = fl.Uint64("id", 0, "Whitelist id.")
		assetFl    = fl.String("asset", "", "Ticker of the asset.")
		eligibleFl = fl.Bool("eligible", true, "Whether the accounts may deposit.")
		addrsFl    = fl.StringSlice("account", nil, "Address of an account. Can be repeated.")
	)
	fl.Parse(args)

	addrs := make([]delayvault.Address, 0, len(*addrsFl))
	for _, raw := range *addrsFl {
		a, err := delayvault.ParseAddress(raw)
		if err != nil {
			flagDie("invalid account %q: %s", raw, err)
		}
		addrs = append(addrs, a)
	}
	return withEnv(o, func(e *env) error {
		return e.apply(func(db delayvault.KVStore) error {
			return e.oracle.Set(e.ctx, db, *idFl, *assetFl, *eligibleFl, addrs...)
		})
	})
}
