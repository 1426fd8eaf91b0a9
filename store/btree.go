package store

import (
	"bytes"

	"github.com/google/btree"
	"github.com/iov-one/delayvault"
	"github.com/iov-one/delayvault/errors"
)

// btreeDegree is the degree of every btree allocated by a cache wrap. Cache
// wraps are short lived and small so a low degree is enough.
const btreeDegree = 2

// MemStore returns a simple implementation useful for tests.
// There is no persistence here....
func MemStore() delayvault.CacheableKVStore {
	return NewBTreeCacheWrap(newMemKV())
}

// BTreeCacheWrap places a btree cache over a KVStore
type BTreeCacheWrap struct {
	bt     *btree.BTree
	parent delayvault.KVStore
}

var _ delayvault.KVCacheWrap = (*BTreeCacheWrap)(nil)

// NewBTreeCacheWrap initializes a BTree to cache around this kv store. All
// writes are kept in the btree until Write is called.
func NewBTreeCacheWrap(parent delayvault.KVStore) *BTreeCacheWrap {
	return &BTreeCacheWrap{
		bt:     btree.New(btreeDegree),
		parent: parent,
	}
}

// CacheWrap layers another BTree on top of this one.
func (b *BTreeCacheWrap) CacheWrap() delayvault.KVCacheWrap {
	return NewBTreeCacheWrap(b)
}

// Write flushes all pending operations to the parent store, in key order,
// and then cleans up.
func (b *BTreeCacheWrap) Write() error {
	var err error
	b.bt.Ascend(func(i btree.Item) bool {
		switch it := i.(type) {
		case setItem:
			err = b.parent.Set(it.key, it.value)
		case deletedItem:
			err = b.parent.Delete(it.key)
		default:
			err = errors.Wrapf(errors.ErrDatabase, "unknown item in btree: %#v", i)
		}
		return err == nil
	})
	if err != nil {
		return errors.Wrap(err, "write cache")
	}
	b.Discard()
	return nil
}

// Discard invalidates this CacheWrap and releases all data
func (b *BTreeCacheWrap) Discard() {
	b.bt.Clear(false)
}

// Set writes to the BTree
func (b *BTreeCacheWrap) Set(key, value []byte) error {
	if key == nil {
		panic("nil key")
	}
	b.bt.ReplaceOrInsert(newSetItem(key, value))
	return nil
}

// Delete marks the key as deleted in the BTree
func (b *BTreeCacheWrap) Delete(key []byte) error {
	if key == nil {
		panic("nil key")
	}
	b.bt.ReplaceOrInsert(newDeletedItem(key))
	return nil
}

// Get reads from btree if there, else backing store
func (b *BTreeCacheWrap) Get(key []byte) ([]byte, error) {
	switch t := b.bt.Get(bkey{key}).(type) {
	case nil:
		return b.parent.Get(key)
	case setItem:
		return t.value, nil
	case deletedItem:
		return nil, nil
	default:
		return nil, errors.Wrapf(errors.ErrDatabase, "unknown item in btree: %#v", t)
	}
}

// Has reads from btree if there, else backing store
func (b *BTreeCacheWrap) Has(key []byte) (bool, error) {
	switch t := b.bt.Get(bkey{key}).(type) {
	case nil:
		return b.parent.Has(key)
	case setItem:
		return true, nil
	case deletedItem:
		return false, nil
	default:
		return false, errors.Wrapf(errors.ErrDatabase, "unknown item in btree: %#v", t)
	}
}

// Pending returns the number of keys modified and not yet written.
func (b *BTreeCacheWrap) Pending() int {
	return b.bt.Len()
}

/////////////////////////////////////////////////////////
// Items to write to btree

// we enforce all data in our btree implements keyer so we
// can compare nicely
type keyer interface {
	Key() []byte
}

// bkey implements keyer and btree.Item
// and may be used for queries or embedded in data to store
type bkey struct {
	key []byte
}

var _ btree.Item = bkey{}

func (k bkey) Key() []byte {
	return k.key
}

// Less returns true iff second argument is greater than first
//
// panics if the item to compare doesn't implement keyer.
func (k bkey) Less(item btree.Item) bool {
	cmp := item.(keyer).Key()
	return bytes.Compare(k.key, cmp) < 0
}

type deletedItem struct {
	bkey
}

func newDeletedItem(key []byte) deletedItem {
	return deletedItem{bkey{key}}
}

type setItem struct {
	bkey
	value []byte
}

func newSetItem(key, value []byte) setItem {
	return setItem{bkey{key}, value}
}
