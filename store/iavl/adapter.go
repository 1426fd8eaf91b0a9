package iavl

import (
	"github.com/iov-one/delayvault"
	"github.com/iov-one/delayvault/errors"
	"github.com/iov-one/delayvault/store"
	"github.com/tendermint/iavl"
	dbm "github.com/tendermint/tendermint/libs/db"
)

// cacheSize is the number of tree nodes kept in memory.
const cacheSize = 10000

// CommitStore manages a iavl committed state
type CommitStore struct {
	tree   *iavl.MutableTree
	db     dbm.DB
	latest delayvault.CommitID
}

var _ delayvault.CommitKVStore = (*CommitStore)(nil)

// NewCommitStore creates a new store with disk backing. The latest committed
// version found in the directory is loaded.
func NewCommitStore(dir, name string) (*CommitStore, error) {
	db, err := dbm.NewGoLevelDB(name, dir)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrDatabase, "open %s/%s: %s", dir, name, err)
	}
	return newCommitStore(db)
}

// NewMemCommitStore creates a new store kept entirely in memory.
func NewMemCommitStore() (*CommitStore, error) {
	return newCommitStore(dbm.NewMemDB())
}

func newCommitStore(db dbm.DB) (*CommitStore, error) {
	tree := iavl.NewMutableTree(db, cacheSize)
	version, err := tree.Load()
	if err != nil {
		db.Close()
		return nil, errors.Wrapf(errors.ErrDatabase, "load tree: %s", err)
	}
	return &CommitStore{
		tree: tree,
		db:   db,
		latest: delayvault.CommitID{
			Version: version,
			Hash:    tree.Hash(),
		},
	}, nil
}

// Get returns the value from the working tree. Returns nil iff key doesn't
// exist.
func (s *CommitStore) Get(key []byte) ([]byte, error) {
	_, val := s.tree.Get(key)
	return val, nil
}

// Has checks if a key exists in the working tree.
func (s *CommitStore) Has(key []byte) (bool, error) {
	return s.tree.Has(key), nil
}

// Set writes to the working tree. It becomes persistent with the next Commit.
func (s *CommitStore) Set(key, value []byte) error {
	if value == nil {
		// The tree refuses nil values.
		value = []byte{}
	}
	s.tree.Set(key, value)
	return nil
}

// Delete removes from the working tree.
func (s *CommitStore) Delete(key []byte) error {
	s.tree.Remove(key)
	return nil
}

// CacheWrap gives us a savepoint to perform actions
func (s *CommitStore) CacheWrap() delayvault.KVCacheWrap {
	return store.NewBTreeCacheWrap(s)
}

// Commit the next version to disk, and returns info
func (s *CommitStore) Commit() (delayvault.CommitID, error) {
	hash, version, err := s.tree.SaveVersion()
	if err != nil {
		return delayvault.CommitID{}, errors.Wrapf(errors.ErrDatabase, "save version: %s", err)
	}
	s.latest = delayvault.CommitID{Version: version, Hash: hash}
	return s.latest, nil
}

// LatestVersion returns info on the latest version saved to disk
func (s *CommitStore) LatestVersion() delayvault.CommitID {
	return s.latest
}

// Close releases the underlying database. Uncommitted changes are lost.
func (s *CommitStore) Close() error {
	s.db.Close()
	return nil
}
