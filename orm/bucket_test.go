package orm

import (
	"testing"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/delayvault/errors"
	"github.com/iov-one/delayvault/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// counter is a minimal model used to exercise buckets.
type counter struct {
	Count int64 `protobuf:"varint,1,opt,name=count,proto3" json:"count,omitempty"`
}

func (m *counter) Reset()         { *m = counter{} }
func (m *counter) String() string { return proto.CompactTextString(m) }
func (*counter) ProtoMessage()    {}

func (m *counter) MarshalBinary() ([]byte, error) { return proto.Marshal(m) }
func (m *counter) UnmarshalBinary(raw []byte) error {
	return proto.Unmarshal(raw, m)
}

func (m *counter) Validate() error {
	if m.Count < 0 {
		return errors.Wrap(errors.ErrModel, "negative count")
	}
	return nil
}

func TestModelBucket(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("cnts")

	require.NoError(t, b.Put(db, []byte("c1"), &counter{Count: 1}))
	require.NoError(t, b.Put(db, []byte("c2"), &counter{Count: 2}))

	var c counter
	require.NoError(t, b.One(db, []byte("c1"), &c))
	assert.Equal(t, int64(1), c.Count)

	require.NoError(t, b.One(db, []byte("c2"), &c))
	assert.Equal(t, int64(2), c.Count)

	err := b.One(db, []byte("unknown"), &c)
	assert.Truef(t, errors.ErrNotFound.Is(err), "unexpected error: %s", err)

	ok, err := b.Has(db, []byte("c1"))
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, b.Delete(db, []byte("c1")))
	ok, err = b.Has(db, []byte("c1"))
	require.NoError(t, err)
	assert.False(t, ok)

	err = b.Delete(db, []byte("c1"))
	assert.Truef(t, errors.ErrNotFound.Is(err), "unexpected error: %s", err)
}

func TestModelBucketPutValidates(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("cnts")

	err := b.Put(db, []byte("c1"), &counter{Count: -1})
	assert.Truef(t, errors.ErrModel.Is(err), "unexpected error: %s", err)

	err = b.Put(db, nil, &counter{Count: 1})
	assert.Truef(t, errors.ErrEmpty.Is(err), "unexpected error: %s", err)

	ok, err := b.Has(db, []byte("c1"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestModelBucketZeroValue(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("cnts")

	// A zero model serializes to no bytes but must still be found.
	require.NoError(t, b.Put(db, []byte("zero"), &counter{}))
	ok, err := b.Has(db, []byte("zero"))
	require.NoError(t, err)
	assert.True(t, ok)

	c := counter{Count: 7}
	require.NoError(t, b.One(db, []byte("zero"), &c))
	assert.Equal(t, int64(0), c.Count)
}

func TestBucketNameValidation(t *testing.T) {
	cases := map[string]bool{
		"cnts":        true,
		"vault_rec":   true,
		"ab":          false,
		"UPPER":       false,
		"withdigit1":  false,
		"waytoolong_": false,
	}
	for name, valid := range cases {
		t.Run(name, func(t *testing.T) {
			defer func() {
				r := recover()
				if valid && r != nil {
					t.Fatalf("unexpected panic: %v", r)
				}
				if !valid && r == nil {
					t.Fatal("expected panic")
				}
			}()
			NewModelBucket(name)
		})
	}
}
