package whitelist

import (
	"github.com/iov-one/delayvault"
	"github.com/iov-one/delayvault/errors"
	"github.com/iov-one/delayvault/orm"
	"github.com/iov-one/delayvault/x"
)

// Oracle answers whether an account may deposit an asset.
type Oracle struct {
	lists   orm.ModelBucket
	entries orm.ModelBucket
	seq     orm.Sequence
	auth    x.Authenticator
}

// NewOracle returns an oracle whose lists are modified by their owners, as
// authenticated by auth.
func NewOracle(auth x.Authenticator) *Oracle {
	return &Oracle{
		lists:   orm.NewModelBucket("wlist"),
		entries: orm.NewModelBucket("wlist_e"),
		seq:     orm.NewSequence("wlist", "id"),
		auth:    auth,
	}
}

func entryKey(id uint64, asset string, addr delayvault.Address) []byte {
	return orm.CompositeKey(orm.EncodeSequence(id), []byte(asset), addr)
}

// Create registers a new whitelist owned by given address and returns its
// id. Ids start at 1.
func (o *Oracle) Create(db delayvault.KVStore, owner delayvault.Address) (uint64, error) {
	id, err := o.seq.NextInt(db)
	if err != nil {
		return 0, errors.Wrap(err, "whitelist id")
	}
	if err := o.lists.Put(db, orm.EncodeSequence(id), &Whitelist{Owner: owner}); err != nil {
		return 0, err
	}
	return id, nil
}

// Set marks the accounts as eligible, or not, to deposit given asset. Only
// the whitelist owner can change it.
func (o *Oracle) Set(
	ctx delayvault.Context,
	db delayvault.KVStore,
	id uint64,
	asset string,
	eligible bool,
	addrs ...delayvault.Address,
) error {
	var w Whitelist
	if err := o.lists.One(db, orm.EncodeSequence(id), &w); err != nil {
		return errors.Wrapf(err, "whitelist %d", id)
	}
	if !o.auth.HasAddress(ctx, w.Owner) {
		return errors.Wrap(errors.ErrUnauthorized, "whitelist owner signature required")
	}
	for _, a := range addrs {
		if err := a.Validate(); err != nil {
			return err
		}
		if err := o.entries.Put(db, entryKey(id, asset, a), &Entry{Eligible: eligible}); err != nil {
			return err
		}
	}
	return nil
}

// IsEligible returns true if the account is listed for the asset on given
// whitelist.
func (o *Oracle) IsEligible(db delayvault.ReadOnlyKVStore, id uint64, asset string, addr delayvault.Address) (bool, error) {
	var e Entry
	switch err := o.entries.One(db, entryKey(id, asset, addr), &e); {
	case err == nil:
		return e.Eligible, nil
	case errors.ErrNotFound.Is(err):
		return false, nil
	default:
		return false, err
	}
}
