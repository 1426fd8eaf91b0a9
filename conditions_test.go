package delayvault_test

import (
	"encoding/json"
	"fmt"
	"reflect"
	"testing"

	"github.com/iov-one/delayvault"
	"github.com/iov-one/delayvault/errors"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddressPrinting(t *testing.T) {
	Convey("test hexademical address printing", t, func() {
		b := []byte("ABCD123456LHB")
		addr := delayvault.Address(b)

		So(addr.String(), ShouldEqual, fmt.Sprintf("%X", []byte(addr)))
	})

	Convey("test empty address printing", t, func() {
		var addr delayvault.Address
		So(addr.String(), ShouldEqual, "(nil)")
	})
}

func TestAddressUnmarshalJSON(t *testing.T) {
	cond := delayvault.NewCondition("foo", "bar", []byte("conditiondata"))
	raw20 := delayvault.Address("0123456789abcdefghij")

	bech, err := raw20.Bech32("vault")
	require.NoError(t, err)

	cases := map[string]struct {
		json     string
		wantErr  *errors.Error
		wantAddr delayvault.Address
	}{
		"hex with garbage": {
			json:    `"30313233343536373839616263646566676869 6a"`,
			wantErr: errors.ErrInput,
		},
		"hex decoding": {
			json:     `"hex:303132333435363738396162636465666768696a"`,
			wantAddr: raw20,
		},
		"hex decoding without prefix": {
			json:     `"303132333435363738396162636465666768696a"`,
			wantAddr: raw20,
		},
		"hex of invalid length": {
			json:    `"6865782d61646472"`,
			wantErr: errors.ErrInput,
		},
		"cond decoding": {
			json:     `"cond:foo/bar/636f6e646974696f6e64617461"`,
			wantAddr: cond.Address(),
		},
		"bech32 decoding": {
			json:     `"bech32:` + bech + `"`,
			wantAddr: raw20,
		},
		"invalid bech32": {
			json:    `"bech32:vault1qqqq"`,
			wantErr: errors.ErrInput,
		},
		"invalid condition format": {
			json:    `"cond:foo/636f6e646974696f6e64617461"`,
			wantErr: errors.ErrInput,
		},
		"invalid condition data": {
			json:    `"cond:foo/bar/zzzzz"`,
			wantErr: errors.ErrInput,
		},
		"unknown format": {
			json:    `"foobar:xxx"`,
			wantErr: errors.ErrType,
		},
		"zero address": {
			json:     `""`,
			wantAddr: nil,
		},
		"zero hex address": {
			json:     `"hex:"`,
			wantAddr: nil,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var a delayvault.Address
			err := json.Unmarshal([]byte(tc.json), &a)
			if !tc.wantErr.Is(err) {
				t.Fatalf("got error: %+v", err)
			}
			if err == nil && !reflect.DeepEqual(a, tc.wantAddr) {
				t.Fatalf("got address: %q", a)
			}
		})
	}
}

func TestAddressMarshalJSON(t *testing.T) {
	addr := delayvault.Address("0123456789abcdefghij")
	raw, err := json.Marshal(addr)
	require.NoError(t, err)
	assert.Equal(t, `"303132333435363738396162636465666768696A"`, string(raw))

	var back delayvault.Address
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.True(t, addr.Equals(back))
}

func TestAddressIsZero(t *testing.T) {
	assert.True(t, delayvault.Address(nil).IsZero())
	assert.True(t, delayvault.Address(make([]byte, 20)).IsZero())
	assert.False(t, delayvault.NewCondition("vault", "custody", []byte("x")).Address().IsZero())
}

func TestConditionParse(t *testing.T) {
	cond := delayvault.NewCondition("vault", "custody", []byte{0xCA, 0xFE})
	ext, typ, data, err := cond.Parse()
	require.NoError(t, err)
	assert.Equal(t, "vault", ext)
	assert.Equal(t, "custody", typ)
	assert.Equal(t, []byte{0xCA, 0xFE}, data)
	assert.Equal(t, "vault/custody/CAFE", cond.String())

	bad := delayvault.Condition("no-slashes")
	assert.True(t, errors.ErrInput.Is(bad.Validate()))
}
