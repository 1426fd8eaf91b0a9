package lockeddeal

import (
	"math/big"

	"github.com/iov-one/delayvault"
	"github.com/iov-one/delayvault/errors"
	"github.com/iov-one/delayvault/orm"
	"github.com/iov-one/delayvault/x"
	"github.com/iov-one/delayvault/x/directory"
)

// Mover moves funds between accounts.
type Mover interface {
	MoveCoins(db delayvault.KVStore, src, dest delayvault.Address, asset string, amount *big.Int) error
}

// Address is the account holding the funds of all deals.
var Address = delayvault.NewCondition("lockdeal", "pool", []byte("deals")).Address()

// Facility stores deals and releases them to their owners.
type Facility struct {
	deals  orm.ModelBucket
	owners directory.Directory
	seq    orm.Sequence
	auth   x.Authenticator
	mover  Mover
}

// NewFacility returns a facility paying out through given mover. Releases
// must be signed by the deal owner.
func NewFacility(auth x.Authenticator, mover Mover) *Facility {
	return &Facility{
		deals:  orm.NewModelBucket("deal"),
		owners: directory.NewDirectory("dealown"),
		seq:    orm.NewSequence("deal", "id"),
		auth:   auth,
		mover:  mover,
	}
}

// Account returns the address deals are funded to and paid out from.
func (f *Facility) Account() delayvault.Address {
	return Address
}

// Accept locks an amount that was already transferred to Address. Delays
// are counted from the current block time. It returns the new deal id.
func (f *Facility) Accept(
	ctx delayvault.Context,
	db delayvault.KVStore,
	asset string,
	owner delayvault.Address,
	amount *big.Int,
	delays delayvault.Delays,
) ([]byte, error) {
	now, ok := delayvault.BlockTime(ctx)
	if !ok {
		return nil, errors.Wrap(errors.ErrHuman, "block time not set")
	}
	start := delayvault.AsUnixTime(now)
	deal := Deal{
		Owner:      owner,
		Asset:      asset,
		Amount:     delayvault.AmountBytes(amount),
		StartTime:  start.AddSeconds(delays.Start),
		CliffTime:  start.AddSeconds(delays.Cliff),
		FinishTime: start.AddSeconds(delays.Finish),
	}
	// A finish shorter than start unlocks everything at start.
	if deal.FinishTime < deal.StartTime {
		deal.FinishTime = deal.StartTime
	}
	id, err := f.seq.NextVal(db)
	if err != nil {
		return nil, errors.Wrap(err, "deal id")
	}
	if err := f.deals.Put(db, id, &deal); err != nil {
		return nil, errors.Wrap(err, "save deal")
	}
	if _, err := f.owners.Add(db, owner, id); err != nil {
		return nil, errors.Wrap(err, "owner index")
	}
	return id, nil
}

// Get returns the deal with given id.
func (f *Facility) Get(db delayvault.ReadOnlyKVStore, id []byte) (*Deal, error) {
	var d Deal
	if err := f.deals.One(db, id, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// OwnerDeals returns the ids of all deals of given owner, oldest first.
func (f *Facility) OwnerDeals(db delayvault.ReadOnlyKVStore, owner delayvault.Address) ([][]byte, error) {
	return f.owners.All(db, owner)
}

// Release pays out everything that is unlocked and was not released yet.
// It returns the amount paid.
func (f *Facility) Release(ctx delayvault.Context, db delayvault.KVStore, id []byte) (*big.Int, error) {
	d, err := f.Get(db, id)
	if err != nil {
		return nil, err
	}
	if !f.auth.HasAddress(ctx, d.Owner) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "deal owner signature required")
	}
	now, ok := delayvault.BlockTime(ctx)
	if !ok {
		return nil, errors.Wrap(errors.ErrHuman, "block time not set")
	}
	due := d.Unlocked(delayvault.AsUnixTime(now))
	due.Sub(due, d.ReleasedAmount())
	if due.Sign() <= 0 {
		return nil, errors.Wrap(errors.ErrVaultLocked, "nothing unlocked")
	}
	if err := f.mover.MoveCoins(db, Address, d.Owner, d.Asset, due); err != nil {
		return nil, errors.Wrap(err, "pay out")
	}
	released := d.ReleasedAmount()
	d.Released = delayvault.AmountBytes(released.Add(released, due))
	if err := f.deals.Put(db, id, d); err != nil {
		return nil, errors.Wrap(err, "save deal")
	}
	return due, nil
}
