package delayvault

import (
	"math/big"
	"testing"

	"github.com/iov-one/delayvault/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const day = 86400

func TestDelaysCoversAndExtends(t *testing.T) {
	cases := map[string]struct {
		d, other    Delays
		wantCovers  bool
		wantExtends bool
	}{
		"equal": {
			d:           Delays{7 * day, 7 * day, 14 * day},
			other:       Delays{7 * day, 7 * day, 14 * day},
			wantCovers:  true,
			wantExtends: false,
		},
		"one longer": {
			d:           Delays{7 * day, 7 * day, 15 * day},
			other:       Delays{7 * day, 7 * day, 14 * day},
			wantCovers:  true,
			wantExtends: true,
		},
		"one shorter": {
			d:           Delays{7 * day, 7 * day, 7 * day},
			other:       Delays{7 * day, 7 * day, 14 * day},
			wantCovers:  false,
			wantExtends: false,
		},
		"mixed": {
			d:           Delays{14 * day, 1, 14 * day},
			other:       Delays{7 * day, 7 * day, 14 * day},
			wantCovers:  false,
			wantExtends: true,
		},
		"zero covers zero": {
			wantCovers: true,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, tc.wantCovers, tc.d.Covers(tc.other))
			assert.Equal(t, tc.wantExtends, tc.d.Extends(tc.other))
		})
	}
}

func TestDelaysHelpers(t *testing.T) {
	d := Delays{Start: 3, Cliff: 9, Finish: 5}
	assert.Equal(t, uint64(9), d.Longest())
	assert.Equal(t, Delays{Start: 6, Cliff: 9, Finish: 5}, d.WithMinStart(6))
	assert.Equal(t, d, d.WithMinStart(2))
	assert.True(t, Delays{}.IsZero())
	assert.False(t, d.IsZero())
}

func TestAmountEncoding(t *testing.T) {
	huge, ok := new(big.Int).SetString("340282366920938463463374607431768211456", 10)
	require.True(t, ok)

	for _, a := range []*big.Int{big.NewInt(0), big.NewInt(1), big.NewInt(1000), huge} {
		got := AmountFromBytes(AmountBytes(a))
		assert.Equal(t, 0, a.Cmp(got), "%s != %s", a, got)
	}
	assert.Nil(t, AmountBytes(big.NewInt(0)))
}

func TestParseAmount(t *testing.T) {
	a, err := ParseAmount("1000")
	require.NoError(t, err)
	assert.Equal(t, int64(1000), a.Int64())

	_, err = ParseAmount("-1")
	assert.True(t, errors.ErrInvalidAmount.Is(err))

	_, err = ParseAmount("ten")
	assert.True(t, errors.ErrInput.Is(err))
}
