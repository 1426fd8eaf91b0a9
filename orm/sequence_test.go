package orm

import (
	"bytes"
	"testing"

	"github.com/iov-one/delayvault/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequence(t *testing.T) {
	db := store.MemStore()
	s := NewSequence("depos", "count")

	latest, err := s.Latest(db)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), latest)

	first, err := s.NextVal(db)
	require.NoError(t, err)
	assert.Equal(t, EncodeSequence(1), first)

	n, err := s.NextInt(db)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), n)

	third, err := s.NextVal(db)
	require.NoError(t, err)
	assert.Equal(t, 1, bytes.Compare(third, first))

	latest, err = s.Latest(db)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), latest)

	// Sequences with a different name do not share state.
	other := NewSequence("depos", "other")
	n, err = other.NextInt(db)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), n)
}

func TestEncodeSequenceOrdering(t *testing.T) {
	vals := []uint64{0, 1, 255, 256, 1 << 40}
	for i := 1; i < len(vals); i++ {
		a, b := EncodeSequence(vals[i-1]), EncodeSequence(vals[i])
		assert.Equal(t, -1, bytes.Compare(a, b))
		assert.Equal(t, vals[i], DecodeSequence(b))
	}
	assert.Equal(t, uint64(0), DecodeSequence(nil))
}

func TestCompositeKey(t *testing.T) {
	a := CompositeKey([]byte("ab"), []byte("c"))
	b := CompositeKey([]byte("a"), []byte("bc"))
	assert.NotEqual(t, a, b)
	assert.Equal(t, []byte("\x02abc"), a)
	assert.Equal(t, []byte("single"), CompositeKey([]byte("single")))
}
