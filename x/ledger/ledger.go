package ledger

import (
	"math/big"

	"github.com/iov-one/delayvault"
	"github.com/iov-one/delayvault/errors"
	"github.com/iov-one/delayvault/orm"
)

// Limits provides the delay requirements a deposit is checked against.
type Limits interface {
	// MinDelays returns the delays required for a vault holding given
	// total amount.
	MinDelays(db delayvault.ReadOnlyKVStore, asset string, total *big.Int) (delayvault.Delays, error)
	// MaxDelay returns the cap of every delay. Zero means no cap.
	MaxDelay(db delayvault.ReadOnlyKVStore) (uint64, error)
}

// Ledger manages vault records and buy-back consents.
type Ledger struct {
	vaults   orm.ModelBucket
	consents orm.ModelBucket
	limits   Limits
}

// NewLedger returns a ledger checking deposits against given limits.
func NewLedger(limits Limits) *Ledger {
	return &Ledger{
		vaults:   orm.NewModelBucket("vault"),
		consents: orm.NewModelBucket("consent"),
		limits:   limits,
	}
}

func vaultKey(asset string, depositor delayvault.Address) []byte {
	return orm.CompositeKey([]byte(asset), depositor)
}

// Get returns the vault of given pair. A vault that was never funded is
// returned as an empty record.
func (l *Ledger) Get(db delayvault.ReadOnlyKVStore, asset string, depositor delayvault.Address) (*Vault, error) {
	var v Vault
	switch err := l.vaults.One(db, vaultKey(asset, depositor), &v); {
	case err == nil:
		return &v, nil
	case errors.ErrNotFound.Is(err):
		return &Vault{}, nil
	default:
		return nil, err
	}
}

// ApplyDeposit adds given amount to the vault and sets its delays. Delays
// may only be extended and must satisfy the limits for the resulting total.
// A deposit that adds nothing must extend at least one delay of a funded
// vault. An empty vault is opened by a positive deposit only.
func (l *Ledger) ApplyDeposit(
	db delayvault.KVStore,
	asset string,
	depositor delayvault.Address,
	added *big.Int,
	delays delayvault.Delays,
) (*Vault, error) {
	if err := delayvault.ValidateAmount(added); err != nil {
		return nil, err
	}
	v, err := l.Get(db, asset, depositor)
	if err != nil {
		return nil, err
	}
	if v.IsEmpty() && added.Sign() == 0 {
		return nil, errors.Wrap(errors.ErrInvalidAmount, "first deposit must be positive")
	}
	prev := v.Delays()
	if added.Sign() == 0 && !delays.Extends(prev) {
		return nil, errors.Wrapf(errors.ErrZeroAmountNoChange, "delays %s", delays)
	}
	if !delays.Covers(prev) {
		return nil, errors.Wrapf(errors.ErrDelayRegression, "delays %s, committed %s", delays, prev)
	}
	max, err := l.limits.MaxDelay(db)
	if err != nil {
		return nil, errors.Wrap(err, "max delay")
	}
	if max > 0 && delays.Longest() > max {
		return nil, errors.Wrapf(errors.ErrDelayExceedsCap, "delay %d above %d", delays.Longest(), max)
	}
	total := new(big.Int).Add(v.Balance(), added)
	min, err := l.limits.MinDelays(db, asset, total)
	if err != nil {
		return nil, errors.Wrap(err, "min delays")
	}
	if !delays.Covers(min) {
		return nil, errors.Wrapf(errors.ErrBelowPolicyMinimum, "delays %s, required %s for %s", delays, min, total)
	}

	v.set(total, delays)
	if err := l.vaults.Put(db, vaultKey(asset, depositor), v); err != nil {
		return nil, errors.Wrap(err, "save vault")
	}
	return v, nil
}

// ApplyWithdrawal empties the vault and returns its state from before the
// withdrawal.
func (l *Ledger) ApplyWithdrawal(db delayvault.KVStore, asset string, depositor delayvault.Address) (*Vault, error) {
	v, err := l.Get(db, asset, depositor)
	if err != nil {
		return nil, err
	}
	if v.IsEmpty() {
		return nil, errors.Wrapf(errors.ErrEmptyVault, "asset %s, depositor %s", asset, depositor)
	}
	if err := l.vaults.Delete(db, vaultKey(asset, depositor)); err != nil {
		return nil, errors.Wrap(err, "delete vault")
	}
	return v, nil
}

// ApplyBuyBack takes given amount out of the vault and returns the amount
// that remains. The depositor must have consented. A vault that is bought
// out entirely has its delays reset.
func (l *Ledger) ApplyBuyBack(db delayvault.KVStore, asset string, depositor delayvault.Address, amount *big.Int) (*big.Int, error) {
	ok, err := l.HasConsent(db, asset, depositor)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.Wrapf(errors.ErrConsentRequired, "asset %s, depositor %s", asset, depositor)
	}
	if err := delayvault.ValidateAmount(amount); err != nil {
		return nil, err
	}
	v, err := l.Get(db, asset, depositor)
	if err != nil {
		return nil, err
	}
	balance := v.Balance()
	if amount.Sign() == 0 || amount.Cmp(balance) > 0 {
		return nil, errors.Wrapf(errors.ErrInvalidAmount, "buy-back %s of %s", amount, balance)
	}

	remaining := new(big.Int).Sub(balance, amount)
	if remaining.Sign() == 0 {
		if err := l.vaults.Delete(db, vaultKey(asset, depositor)); err != nil {
			return nil, errors.Wrap(err, "delete vault")
		}
		return remaining, nil
	}
	v.Amount = delayvault.AmountBytes(remaining)
	if err := l.vaults.Put(db, vaultKey(asset, depositor), v); err != nil {
		return nil, errors.Wrap(err, "save vault")
	}
	return remaining, nil
}

// SetConsent records whether the depositor allows buy-backs of the vault.
// Setting the current value again is allowed.
func (l *Ledger) SetConsent(db delayvault.KVStore, asset string, depositor delayvault.Address, granted bool) error {
	c := Consent{Granted: granted}
	return l.consents.Put(db, vaultKey(asset, depositor), &c)
}

// HasConsent returns true if the depositor allows buy-backs of the vault.
func (l *Ledger) HasConsent(db delayvault.ReadOnlyKVStore, asset string, depositor delayvault.Address) (bool, error) {
	var c Consent
	switch err := l.consents.One(db, vaultKey(asset, depositor), &c); {
	case err == nil:
		return c.Granted, nil
	case errors.ErrNotFound.Is(err):
		return false, nil
	default:
		return false, err
	}
}
