package store

import (
	"github.com/google/btree"
	"github.com/iov-one/delayvault"
)

// memKV is the bottom layer of a MemStore. It holds committed values only,
// deletes remove the entry.
type memKV struct {
	bt *btree.BTree
}

var _ delayvault.KVStore = (*memKV)(nil)

func newMemKV() *memKV {
	return &memKV{bt: btree.New(btreeDegree)}
}

func (m *memKV) Get(key []byte) ([]byte, error) {
	if it, ok := m.bt.Get(bkey{key}).(setItem); ok {
		return it.value, nil
	}
	return nil, nil
}

func (m *memKV) Has(key []byte) (bool, error) {
	return m.bt.Has(bkey{key}), nil
}

func (m *memKV) Set(key, value []byte) error {
	m.bt.ReplaceOrInsert(newSetItem(key, value))
	return nil
}

func (m *memKV) Delete(key []byte) error {
	m.bt.Delete(bkey{key})
	return nil
}
