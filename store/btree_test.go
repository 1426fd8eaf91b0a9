package store

import (
	"testing"

	"github.com/iov-one/delayvault"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertGetHas(t testing.TB, kv delayvault.ReadOnlyKVStore, key, val []byte, has bool) {
	t.Helper()
	got, err := kv.Get(key)
	require.NoError(t, err)
	assert.Equal(t, val, got)
	exists, err := kv.Has(key)
	require.NoError(t, err)
	assert.Equal(t, has, exists)
}

// TestBTreeCacheGetSet does basic sanity checks on our cache
func TestBTreeCacheGetSet(t *testing.T) {
	base := MemStore()

	// make sure the btree is empty at start but returns results
	// that are written to it
	k, v := []byte("french"), []byte("fry")
	assertGetHas(t, base, k, nil, false)
	require.NoError(t, base.Set(k, v))
	assertGetHas(t, base, k, v, true)

	// now layer another btree on top and make sure that we get
	// base data
	cache := base.CacheWrap()
	assertGetHas(t, cache, k, v, true)

	// writing more data is only visible in the cache
	k2, v2 := []byte("LA"), []byte("Dodgers")
	assertGetHas(t, cache, k2, nil, false)
	require.NoError(t, cache.Set(k2, v2))
	assertGetHas(t, cache, k2, v2, true)
	assertGetHas(t, base, k2, nil, false)

	// we can write the cache to the base layer...
	require.NoError(t, cache.Write())
	assertGetHas(t, base, k, v, true)
	assertGetHas(t, base, k2, v2, true)

	// we can discard one
	k3, v3 := []byte("Bayern"), []byte("Munich")
	c2 := base.CacheWrap()
	assertGetHas(t, c2, k, v, true)
	require.NoError(t, c2.Set(k3, v3))
	c2.Discard()
	assertGetHas(t, base, k3, nil, false)

	// and commit another
	c3 := base.CacheWrap()
	require.NoError(t, c3.Delete(k))
	assertGetHas(t, c3, k, nil, false)
	assertGetHas(t, base, k, v, true)
	require.NoError(t, c3.Write())

	// make sure it commits proper
	assertGetHas(t, base, k, nil, false)
	assertGetHas(t, base, k2, v2, true)
	assertGetHas(t, base, k3, nil, false)
}

func TestBTreeCacheNested(t *testing.T) {
	base := MemStore()
	outer := base.CacheWrap()
	inner := outer.CacheWrap()

	k, v := []byte("asset"), []byte("depositor")
	require.NoError(t, inner.Set(k, v))
	assertGetHas(t, outer, k, nil, false)

	require.NoError(t, inner.Write())
	assertGetHas(t, outer, k, v, true)
	assertGetHas(t, base, k, nil, false)

	outer.Discard()
	assertGetHas(t, base, k, nil, false)
}

func TestBTreeCacheOverwrite(t *testing.T) {
	base := MemStore()
	k := []byte("key")
	require.NoError(t, base.Set(k, []byte("one")))

	cache := base.CacheWrap().(*BTreeCacheWrap)
	require.NoError(t, cache.Set(k, []byte("two")))
	require.NoError(t, cache.Delete(k))
	require.NoError(t, cache.Set(k, []byte("three")))
	assert.Equal(t, 1, cache.Pending())

	require.NoError(t, cache.Write())
	assert.Equal(t, 0, cache.Pending())
	assertGetHas(t, base, k, []byte("three"), true)
}

func TestMemKVDelete(t *testing.T) {
	kv := newMemKV()
	k := []byte("gone")
	require.NoError(t, kv.Set(k, []byte("soon")))
	assertGetHas(t, kv, k, []byte("soon"), true)
	require.NoError(t, kv.Delete(k))
	assertGetHas(t, kv, k, nil, false)
}
