package ledger

import (
	"math/big"
	"testing"

	"github.com/iov-one/delayvault"
	"github.com/iov-one/delayvault/errors"
	"github.com/iov-one/delayvault/store"
	"github.com/iov-one/delayvault/vaulttest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const day = 86400

// stepLimits requires min delays once the total reaches threshold.
type stepLimits struct {
	threshold int64
	min       delayvault.Delays
	max       uint64
}

func (s stepLimits) MinDelays(db delayvault.ReadOnlyKVStore, asset string, total *big.Int) (delayvault.Delays, error) {
	if total.Cmp(big.NewInt(s.threshold)) >= 0 {
		return s.min, nil
	}
	return delayvault.Delays{}, nil
}

func (s stepLimits) MaxDelay(db delayvault.ReadOnlyKVStore) (uint64, error) {
	return s.max, nil
}

func TestApplyDeposit(t *testing.T) {
	week := delayvault.Delays{Start: 7 * day, Cliff: 7 * day, Finish: 14 * day}

	type deposit struct {
		Amount  int64
		Delays  delayvault.Delays
		WantErr *errors.Error
	}

	cases := map[string]struct {
		Limits     stepLimits
		Deposits   []deposit
		WantAmount int64
		WantDelays delayvault.Delays
	}{
		"single deposit": {
			Deposits:   []deposit{{Amount: 1000, Delays: week}},
			WantAmount: 1000,
			WantDelays: week,
		},
		"top up with shorter finish fails": {
			Deposits: []deposit{
				{Amount: 1000, Delays: week},
				{Amount: 1000, Delays: delayvault.Delays{Start: 7 * day, Cliff: 7 * day, Finish: 7 * day}, WantErr: errors.ErrDelayRegression},
			},
			WantAmount: 1000,
			WantDelays: week,
		},
		"top up extending delays": {
			Deposits: []deposit{
				{Amount: 1000, Delays: week},
				{Amount: 500, Delays: delayvault.Delays{Start: 14 * day, Cliff: 14 * day, Finish: 14 * day}},
			},
			WantAmount: 1500,
			WantDelays: delayvault.Delays{Start: 14 * day, Cliff: 14 * day, Finish: 14 * day},
		},
		"zero amount with same delays fails": {
			Deposits: []deposit{
				{Amount: 1000, Delays: week},
				{Amount: 0, Delays: week, WantErr: errors.ErrZeroAmountNoChange},
			},
			WantAmount: 1000,
			WantDelays: week,
		},
		"zero amount extending start": {
			Deposits: []deposit{
				{Amount: 1000, Delays: week},
				{Amount: 0, Delays: delayvault.Delays{Start: 8 * day, Cliff: 7 * day, Finish: 14 * day}},
			},
			WantAmount: 1000,
			WantDelays: delayvault.Delays{Start: 8 * day, Cliff: 7 * day, Finish: 14 * day},
		},
		"zero amount and zero delays on empty vault": {
			Deposits: []deposit{
				{Amount: 0, WantErr: errors.ErrInvalidAmount},
			},
		},
		"zero amount cannot open a vault": {
			Deposits: []deposit{
				{Amount: 0, Delays: week, WantErr: errors.ErrInvalidAmount},
				{Amount: 300, Delays: delayvault.Delays{Start: day}},
			},
			WantAmount: 300,
			WantDelays: delayvault.Delays{Start: day},
		},
		"negative amount": {
			Deposits: []deposit{
				{Amount: -1, Delays: week, WantErr: errors.ErrInvalidAmount},
			},
		},
		"delay above cap": {
			Limits: stepLimits{max: 10 * day},
			Deposits: []deposit{
				{Amount: 1000, Delays: week, WantErr: errors.ErrDelayExceedsCap},
			},
		},
		"delay at cap": {
			Limits:     stepLimits{max: 14 * day},
			Deposits:   []deposit{{Amount: 1000, Delays: week}},
			WantAmount: 1000,
			WantDelays: week,
		},
		"below policy minimum": {
			Limits: stepLimits{threshold: 250, min: week},
			Deposits: []deposit{
				{Amount: 1000, Delays: delayvault.Delays{Start: day, Cliff: day, Finish: week.Finish}, WantErr: errors.ErrBelowPolicyMinimum},
			},
		},
		"policy minimum applies to the cumulative amount": {
			Limits: stepLimits{threshold: 250, min: week},
			Deposits: []deposit{
				{Amount: 200, Delays: delayvault.Delays{Start: day}},
				{Amount: 100, Delays: delayvault.Delays{Start: day}, WantErr: errors.ErrBelowPolicyMinimum},
				{Amount: 100, Delays: week},
			},
			WantAmount: 300,
			WantDelays: week,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			l := NewLedger(tc.Limits)
			depositor := vaulttest.NewAddress()

			for i, d := range tc.Deposits {
				_, err := l.ApplyDeposit(db, "IOV", depositor, big.NewInt(d.Amount), d.Delays)
				if !d.WantErr.Is(err) {
					t.Fatalf("deposit %d: want %v, got %+v", i, d.WantErr, err)
				}
			}

			v, err := l.Get(db, "IOV", depositor)
			require.NoError(t, err)
			assert.Equal(t, tc.WantAmount, v.Balance().Int64())
			assert.Equal(t, tc.WantDelays, v.Delays())
		})
	}
}

func TestApplyWithdrawal(t *testing.T) {
	db := store.MemStore()
	l := NewLedger(stepLimits{})
	depositor := vaulttest.NewAddress()
	delays := delayvault.Delays{Start: day, Cliff: day, Finish: 2 * day}

	_, err := l.ApplyWithdrawal(db, "IOV", depositor)
	vaulttest.IsErr(t, errors.ErrEmptyVault, err)

	_, err = l.ApplyDeposit(db, "IOV", depositor, big.NewInt(1000), delays)
	require.NoError(t, err)

	prior, err := l.ApplyWithdrawal(db, "IOV", depositor)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), prior.Balance().Int64())
	assert.Equal(t, delays, prior.Delays())

	v, err := l.Get(db, "IOV", depositor)
	require.NoError(t, err)
	assert.True(t, v.IsEmpty())
	assert.True(t, v.Delays().IsZero())

	_, err = l.ApplyWithdrawal(db, "IOV", depositor)
	vaulttest.IsErr(t, errors.ErrEmptyVault, err)

	_, err = l.ApplyDeposit(db, "IOV", depositor, big.NewInt(0), delays)
	vaulttest.IsErr(t, errors.ErrInvalidAmount, err)
	v, err = l.Get(db, "IOV", depositor)
	require.NoError(t, err)
	assert.True(t, v.Delays().IsZero())

	// An emptied vault starts over, shorter delays are accepted.
	_, err = l.ApplyDeposit(db, "IOV", depositor, big.NewInt(5), delayvault.Delays{Start: 1})
	require.NoError(t, err)
}

func TestApplyBuyBack(t *testing.T) {
	db := store.MemStore()
	l := NewLedger(stepLimits{})
	depositor := vaulttest.NewAddress()
	delays := delayvault.Delays{Start: 7 * day, Cliff: 7 * day, Finish: 14 * day}

	_, err := l.ApplyDeposit(db, "IOV", depositor, big.NewInt(1000), delays)
	require.NoError(t, err)

	_, err = l.ApplyBuyBack(db, "IOV", depositor, big.NewInt(500))
	vaulttest.IsErr(t, errors.ErrConsentRequired, err)

	require.NoError(t, l.SetConsent(db, "IOV", depositor, true))
	require.NoError(t, l.SetConsent(db, "IOV", depositor, true))

	_, err = l.ApplyBuyBack(db, "IOV", depositor, big.NewInt(0))
	vaulttest.IsErr(t, errors.ErrInvalidAmount, err)
	_, err = l.ApplyBuyBack(db, "IOV", depositor, big.NewInt(1001))
	vaulttest.IsErr(t, errors.ErrInvalidAmount, err)

	remaining, err := l.ApplyBuyBack(db, "IOV", depositor, big.NewInt(500))
	require.NoError(t, err)
	assert.Equal(t, int64(500), remaining.Int64())
	v, err := l.Get(db, "IOV", depositor)
	require.NoError(t, err)
	assert.Equal(t, int64(500), v.Balance().Int64())
	assert.Equal(t, delays, v.Delays())

	remaining, err = l.ApplyBuyBack(db, "IOV", depositor, big.NewInt(500))
	require.NoError(t, err)
	assert.Equal(t, int64(0), remaining.Int64())
	v, err = l.Get(db, "IOV", depositor)
	require.NoError(t, err)
	assert.True(t, v.IsEmpty())
	assert.True(t, v.Delays().IsZero())

	// Consent is per vault.
	ok, err := l.HasConsent(db, "ETH", depositor)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, l.SetConsent(db, "IOV", depositor, false))
	ok, err = l.HasConsent(db, "IOV", depositor)
	require.NoError(t, err)
	assert.False(t, ok)
}
