package vault

import (
	"math/big"

	"github.com/iov-one/delayvault"
	"github.com/iov-one/delayvault/errors"
)

// Custody is the account holding all deposited funds.
var Custody = delayvault.NewCondition("vault", "custody", []byte("pool")).Address()

// AssetTransfer moves funds between accounts. It must fail without any
// change if the source does not hold enough.
type AssetTransfer interface {
	MoveCoins(db delayvault.KVStore, src, dest delayvault.Address, asset string, amount *big.Int) error
}

// VestingFacility takes over withdrawn funds and releases them to the owner
// according to given delays. Funds are transferred to the facility address
// before Accept is called.
type VestingFacility interface {
	Accept(
		ctx delayvault.Context,
		db delayvault.KVStore,
		asset string,
		owner delayvault.Address,
		amount *big.Int,
		delays delayvault.Delays,
	) ([]byte, error)
}

// FacilityAccount is implemented by vesting facilities that pay out from a
// fixed account. Withdrawals may only be forwarded to that account.
type FacilityAccount interface {
	Account() delayvault.Address
}

// EligibilityOracle decides whether an account may deposit an asset.
type EligibilityOracle interface {
	IsEligible(db delayvault.ReadOnlyKVStore, whitelistID uint64, asset string, addr delayvault.Address) (bool, error)
}

// WithdrawalSink pays out a withdrawn vault.
type WithdrawalSink interface {
	Release(
		ctx delayvault.Context,
		db delayvault.KVStore,
		asset string,
		depositor delayvault.Address,
		amount *big.Int,
		delays delayvault.Delays,
	) error
}

// DirectRelease pays the funds back to the depositor.
type DirectRelease struct {
	Transfer AssetTransfer
}

func (s DirectRelease) Release(
	ctx delayvault.Context,
	db delayvault.KVStore,
	asset string,
	depositor delayvault.Address,
	amount *big.Int,
	delays delayvault.Delays,
) error {
	return s.Transfer.MoveCoins(db, Custody, depositor, asset, amount)
}

// ForwardToFacility hands the funds and the delays over to a vesting
// facility.
type ForwardToFacility struct {
	Address  delayvault.Address
	Transfer AssetTransfer
	Facility VestingFacility
}

func (s ForwardToFacility) Release(
	ctx delayvault.Context,
	db delayvault.KVStore,
	asset string,
	depositor delayvault.Address,
	amount *big.Int,
	delays delayvault.Delays,
) error {
	if s.Facility == nil {
		return errors.Wrap(errors.ErrHuman, "vesting facility configured but not provided")
	}
	if err := s.Transfer.MoveCoins(db, Custody, s.Address, asset, amount); err != nil {
		return errors.Wrap(err, "transfer to facility")
	}
	id, err := s.Facility.Accept(ctx, db, asset, depositor, amount, delays)
	if err != nil {
		return errors.Wrap(err, "facility")
	}
	delayvault.GetLogger(ctx).Debug("forwarded to facility", "deal", id)
	return nil
}

// sinkFor selects how withdrawals are paid out under given configuration.
func sinkFor(conf *Configuration, transfer AssetTransfer, facility VestingFacility) WithdrawalSink {
	if conf.VestingFacility.IsZero() {
		return DirectRelease{Transfer: transfer}
	}
	return ForwardToFacility{
		Address:  conf.VestingFacility,
		Transfer: transfer,
		Facility: facility,
	}
}
