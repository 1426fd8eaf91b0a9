package gconf

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/delayvault"
	"github.com/iov-one/delayvault/errors"
	"github.com/iov-one/delayvault/store"
	"github.com/iov-one/delayvault/vaulttest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type myConfig struct {
	Owner  delayvault.Address `protobuf:"bytes,1,opt,name=owner,proto3,casttype=github.com/iov-one/delayvault.Address" json:"owner,omitempty"`
	Number int64              `protobuf:"varint,2,opt,name=number,proto3" json:"number,omitempty"`
	Text   string             `protobuf:"bytes,3,opt,name=text,proto3" json:"text,omitempty"`
}

func (m *myConfig) Reset()         { *m = myConfig{} }
func (m *myConfig) String() string { return proto.CompactTextString(m) }
func (*myConfig) ProtoMessage()    {}

func (m *myConfig) MarshalBinary() ([]byte, error)   { return proto.Marshal(m) }
func (m *myConfig) UnmarshalBinary(raw []byte) error { return proto.Unmarshal(raw, m) }

func (m *myConfig) GetOwner() delayvault.Address { return m.Owner }

func (m *myConfig) Validate() error {
	if err := m.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	if m.Number < 0 {
		return errors.Wrap(errors.ErrInput, "negative number")
	}
	return nil
}

func TestSaveLoad(t *testing.T) {
	owner := vaulttest.NewAddress()

	cases := map[string]struct {
		Conf        *myConfig
		WantSaveErr *errors.Error
	}{
		"all fields": {
			Conf: &myConfig{Owner: owner, Number: 852151421, Text: "foobar"},
		},
		"only owner": {
			Conf: &myConfig{Owner: owner},
		},
		"invalid owner cannot be saved": {
			Conf:        &myConfig{Owner: delayvault.Address("too short")},
			WantSaveErr: errors.ErrInput,
		},
		"invalid number cannot be saved": {
			Conf:        &myConfig{Owner: owner, Number: -1},
			WantSaveErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			err := Save(db, "my", tc.Conf)
			vaulttest.IsErr(t, tc.WantSaveErr, err)
			if tc.WantSaveErr != nil {
				var got myConfig
				vaulttest.IsErr(t, errors.ErrNotFound, Load(db, "my", &got))
				return
			}

			var got myConfig
			require.NoError(t, Load(db, "my", &got))
			assert.Equal(t, tc.Conf, &got)
		})
	}
}

func TestInitConfig(t *testing.T) {
	owner := vaulttest.NewAddress()
	raw, err := json.Marshal(map[string]interface{}{
		"conf": map[string]interface{}{
			"my": map[string]interface{}{
				"owner":  owner,
				"number": 7,
				"text":   "hello",
			},
		},
	})
	require.NoError(t, err)
	var opts delayvault.Options
	require.NoError(t, json.Unmarshal(raw, &opts))

	db := store.MemStore()
	require.NoError(t, InitConfig(db, opts, "my", &myConfig{}))

	var got myConfig
	require.NoError(t, Load(db, "my", &got))
	assert.Equal(t, myConfig{Owner: owner, Number: 7, Text: "hello"}, got)

	err = InitConfig(db, opts, "other", &myConfig{})
	vaulttest.IsErr(t, errors.ErrNotFound, err)
}

func TestUpdate(t *testing.T) {
	owner := vaulttest.NewCondition()
	stranger := vaulttest.NewCondition()

	cases := map[string]struct {
		Signer  delayvault.Condition
		Change  func(*myConfig) error
		WantErr *errors.Error
		Want    int64
	}{
		"owner can update": {
			Signer: owner,
			Change: func(c *myConfig) error { c.Number = 42; return nil },
			Want:   42,
		},
		"stranger cannot update": {
			Signer:  stranger,
			Change:  func(c *myConfig) error { c.Number = 42; return nil },
			WantErr: errors.ErrUnauthorized,
			Want:    1,
		},
		"change error aborts": {
			Signer:  owner,
			Change:  func(c *myConfig) error { c.Number = 42; return errors.ErrState },
			WantErr: errors.ErrState,
			Want:    1,
		},
		"invalid result is not saved": {
			Signer:  owner,
			Change:  func(c *myConfig) error { c.Number = -5; return nil },
			WantErr: errors.ErrInput,
			Want:    1,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			require.NoError(t, Save(db, "my", &myConfig{Owner: owner.Address(), Number: 1}))

			auth := &vaulttest.Auth{Signer: tc.Signer}
			var conf myConfig
			err := Update(context.Background(), db, auth, "my", &conf, func() error {
				return tc.Change(&conf)
			})
			vaulttest.IsErr(t, tc.WantErr, err)

			var got myConfig
			require.NoError(t, Load(db, "my", &got))
			assert.Equal(t, tc.Want, got.Number)
		})
	}
}

func TestUpdateMissingConfiguration(t *testing.T) {
	db := store.MemStore()
	auth := &vaulttest.Auth{Signer: vaulttest.NewCondition()}
	err := Update(context.Background(), db, auth, "my", &myConfig{}, func() error { return nil })
	vaulttest.IsErr(t, errors.ErrNotFound, err)
}
