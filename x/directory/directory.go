package directory

import (
	"github.com/iov-one/delayvault"
	"github.com/iov-one/delayvault/errors"
	"github.com/iov-one/delayvault/orm"
)

// Directory keeps an ordered set of members for every owner.
type Directory struct {
	name string
	// Entries by owner and position.
	entries orm.ModelBucket
	// Entries by owner and member, used for the membership check.
	members orm.ModelBucket
}

// NewDirectory returns a directory using given name as the storage prefix.
func NewDirectory(name string) Directory {
	return Directory{
		name:    name,
		entries: orm.NewModelBucket(name + "_e"),
		members: orm.NewModelBucket(name + "_m"),
	}
}

func (d Directory) counter(owner []byte) orm.Sequence {
	return orm.NewSequence(d.name, string(owner))
}

// Add appends member to the owner listing unless it is present already. It
// returns true if the member was added.
func (d Directory) Add(db delayvault.KVStore, owner, member []byte) (bool, error) {
	mkey := orm.CompositeKey(owner, member)
	switch ok, err := d.members.Has(db, mkey); {
	case err != nil:
		return false, err
	case ok:
		return false, nil
	}
	n, err := d.counter(owner).NextInt(db)
	if err != nil {
		return false, errors.Wrap(err, "count")
	}
	e := Entry{Member: member, Position: n - 1}
	if err := d.entries.Put(db, orm.CompositeKey(owner, orm.EncodeSequence(e.Position)), &e); err != nil {
		return false, errors.Wrap(err, "entry")
	}
	if err := d.members.Put(db, mkey, &e); err != nil {
		return false, errors.Wrap(err, "member")
	}
	return true, nil
}

// Has returns true if member is listed for given owner.
func (d Directory) Has(db delayvault.ReadOnlyKVStore, owner, member []byte) (bool, error) {
	return d.members.Has(db, orm.CompositeKey(owner, member))
}

// Count returns the number of members listed for given owner.
func (d Directory) Count(db delayvault.ReadOnlyKVStore, owner []byte) (uint64, error) {
	return d.counter(owner).Latest(db)
}

// Range returns members at positions from to to, both inclusive, in
// insertion order.
func (d Directory) Range(db delayvault.ReadOnlyKVStore, owner []byte, from, to uint64) ([][]byte, error) {
	if from > to {
		return nil, errors.Wrapf(errors.ErrInvalidRange, "from %d after to %d", from, to)
	}
	n, err := d.Count(db, owner)
	if err != nil {
		return nil, err
	}
	if to >= n {
		return nil, errors.Wrapf(errors.ErrIndexOutOfRange, "position %d of %d", to, n)
	}
	return d.load(db, owner, from, to+1)
}

// All returns every member listed for given owner, in insertion order.
func (d Directory) All(db delayvault.ReadOnlyKVStore, owner []byte) ([][]byte, error) {
	n, err := d.Count(db, owner)
	if err != nil {
		return nil, err
	}
	return d.load(db, owner, 0, n)
}

func (d Directory) load(db delayvault.ReadOnlyKVStore, owner []byte, from, end uint64) ([][]byte, error) {
	res := make([][]byte, 0, end-from)
	for i := from; i < end; i++ {
		var e Entry
		if err := d.entries.One(db, orm.CompositeKey(owner, orm.EncodeSequence(i)), &e); err != nil {
			return nil, errors.Wrapf(err, "%s position %d", d.name, i)
		}
		res = append(res, e.Member)
	}
	return res, nil
}
