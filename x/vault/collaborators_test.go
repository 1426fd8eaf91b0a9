package vault

import (
	"math/big"
	"testing"

	"github.com/iov-one/delayvault"
	"github.com/iov-one/delayvault/errors"
	"github.com/iov-one/delayvault/store"
	"github.com/iov-one/delayvault/vaulttest"
	"github.com/iov-one/delayvault/x/cash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSinkFor(t *testing.T) {
	ctrl := cash.NewController()

	direct := sinkFor(&Configuration{}, ctrl, nil)
	assert.IsType(t, DirectRelease{}, direct)

	facility := vaulttest.NewAddress()
	fwd := sinkFor(&Configuration{VestingFacility: facility}, ctrl, nil)
	require.IsType(t, ForwardToFacility{}, fwd)
	assert.Equal(t, facility, fwd.(ForwardToFacility).Address)
}

func TestForwardWithoutFacility(t *testing.T) {
	db := store.MemStore()
	ctrl := cash.NewController()
	require.NoError(t, ctrl.IssueCoins(db, Custody, "IOV", big.NewInt(10)))

	sink := ForwardToFacility{Address: vaulttest.NewAddress(), Transfer: ctrl}
	err := sink.Release(vaulttest.BlockCtx(vaulttest.Epoch), db, "IOV", vaulttest.NewAddress(), big.NewInt(10), delayvault.Delays{})
	vaulttest.IsErr(t, errors.ErrHuman, err)

	b, err := ctrl.Balance(db, Custody, "IOV")
	require.NoError(t, err)
	assert.Equal(t, int64(10), b.Int64())
}

func TestDirectRelease(t *testing.T) {
	db := store.MemStore()
	ctrl := cash.NewController()
	depositor := vaulttest.NewAddress()
	require.NoError(t, ctrl.IssueCoins(db, Custody, "IOV", big.NewInt(10)))

	sink := DirectRelease{Transfer: ctrl}
	require.NoError(t, sink.Release(vaulttest.BlockCtx(vaulttest.Epoch), db, "IOV", depositor, big.NewInt(4), delayvault.Delays{}))

	b, err := ctrl.Balance(db, depositor, "IOV")
	require.NoError(t, err)
	assert.Equal(t, int64(4), b.Int64())

	err = sink.Release(vaulttest.BlockCtx(vaulttest.Epoch), db, "IOV", depositor, big.NewInt(7), delayvault.Delays{})
	vaulttest.IsErr(t, errors.ErrInsufficientAmount, err)
}
