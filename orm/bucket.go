package orm

import (
	"regexp"

	"github.com/iov-one/delayvault"
	"github.com/iov-one/delayvault/errors"
)

var isBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString

// Model is implemented by any entity that can be stored using ModelBucket.
type Model interface {
	delayvault.Persistent
	delayvault.Validater
}

// ModelBucket stores models of a single type under a common prefix.
type ModelBucket struct {
	name   string
	prefix []byte
}

// NewModelBucket returns a ModelBucket instance. Name must be unique within
// the database and is used as the key prefix.
func NewModelBucket(name string) ModelBucket {
	if !isBucketName(name) {
		panic("illegal bucket: " + name)
	}
	return ModelBucket{
		name:   name,
		prefix: []byte(name + ":"),
	}
}

// Name returns the name of this bucket.
func (b ModelBucket) Name() string {
	return b.name
}

// DBKey is the full key we store in the db, including prefix.
func (b ModelBucket) DBKey(key []byte) []byte {
	return append(append([]byte(nil), b.prefix...), key...)
}

// One query the database for a single model instance. Lookup is done by the
// primary key. Result is loaded into given destination model.
// This method returns ErrNotFound if the entity does not exist in the
// database.
func (b ModelBucket) One(db delayvault.ReadOnlyKVStore, key []byte, dest Model) error {
	raw, err := db.Get(b.DBKey(key))
	if err != nil {
		return errors.Wrapf(err, "%s get", b.name)
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%T not in the store", dest)
	}
	if err := dest.UnmarshalBinary(raw); err != nil {
		return errors.Wrapf(errors.ErrModel, "%s unmarshal %T: %s", b.name, dest, err)
	}
	return nil
}

// Has returns true if an entity with given primary key exists.
func (b ModelBucket) Has(db delayvault.ReadOnlyKVStore, key []byte) (bool, error) {
	ok, err := db.Has(b.DBKey(key))
	if err != nil {
		return false, errors.Wrapf(err, "%s has", b.name)
	}
	return ok, nil
}

// Put saves given model in the database.
func (b ModelBucket) Put(db delayvault.KVStore, key []byte, m Model) error {
	if len(key) == 0 {
		return errors.Wrap(errors.ErrEmpty, "key")
	}
	if err := m.Validate(); err != nil {
		return errors.Wrap(err, "invalid model")
	}
	raw, err := m.MarshalBinary()
	if err != nil {
		return errors.Wrapf(errors.ErrModel, "%s marshal %T: %s", b.name, m, err)
	}
	if raw == nil {
		raw = []byte{}
	}
	if err := db.Set(b.DBKey(key), raw); err != nil {
		return errors.Wrap(err, "cannot store in the database")
	}
	return nil
}

// Delete removes an entity with given primary key from the database.
// It returns ErrNotFound if an entity with given key does not exist.
func (b ModelBucket) Delete(db delayvault.KVStore, key []byte) error {
	ok, err := b.Has(db, key)
	if err != nil {
		return err
	}
	if !ok {
		return errors.Wrapf(errors.ErrNotFound, "%s %X", b.name, key)
	}
	return db.Delete(b.DBKey(key))
}
