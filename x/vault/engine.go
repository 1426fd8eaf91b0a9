package vault

import (
	"math/big"
	"sync"
	"time"

	"github.com/iov-one/delayvault"
	"github.com/iov-one/delayvault/errors"
	"github.com/iov-one/delayvault/x"
	"github.com/iov-one/delayvault/x/directory"
	"github.com/iov-one/delayvault/x/ledger"
	"github.com/iov-one/delayvault/x/policy"
)

// Engine executes vault operations. All operations are serialized, each
// runs in its own transaction over the store.
type Engine struct {
	mu sync.RWMutex
	db delayvault.CacheableKVStore

	auth     x.Authenticator
	transfer AssetTransfer
	facility VestingFacility
	oracle   EligibilityOracle
	now      func() time.Time

	policies policy.Bucket
	ledger   *ledger.Ledger
	index    *directory.Index
}

// NewEngine returns an engine operating on given store. The facility and
// the oracle may be nil if the configuration never enables them.
func NewEngine(
	db delayvault.CacheableKVStore,
	auth x.Authenticator,
	transfer AssetTransfer,
	facility VestingFacility,
	oracle EligibilityOracle,
) *Engine {
	policies := policy.NewBucket()
	return &Engine{
		db:       db,
		auth:     auth,
		transfer: transfer,
		facility: facility,
		oracle:   oracle,
		now:      time.Now,
		policies: policies,
		ledger:   ledger.NewLedger(limits{policies: policies}),
		index:    directory.NewIndex(),
	}
}

// WithClock sets the clock used when the context carries no block time.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// exec runs fn as a single transaction. Changes are written only if fn
// succeeds. The operation time is sampled once and carried by the context.
func (e *Engine) exec(ctx delayvault.Context, op string, fn func(delayvault.Context, delayvault.KVStore) error) (err error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := delayvault.BlockTime(ctx); !ok {
		ctx = delayvault.WithBlockTime(ctx, e.now())
	}
	ctx = delayvault.WithLogInfo(ctx, "op", op)
	started := time.Now()
	cache := e.db.CacheWrap()

	defer func() {
		observe(op, started, err)
		log := delayvault.GetLogger(ctx)
		if err != nil {
			cache.Discard()
			log.Debug("operation failed", "err", err, "duration", time.Since(started))
			return
		}
		log.Info("operation applied", "duration", time.Since(started))
	}()
	defer errors.Recover(&err)

	if err := fn(ctx, cache); err != nil {
		return err
	}
	return errors.Wrap(cache.Write(), "write")
}

// view runs fn against the committed state.
func (e *Engine) view(fn func(delayvault.ReadOnlyKVStore) error) error {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return fn(e.db)
}

func (e *Engine) signer(ctx delayvault.Context) (delayvault.Address, error) {
	addr := x.MainAddress(ctx, e.auth)
	if addr == nil {
		return nil, errors.Wrap(errors.ErrUnauthorized, "signature required")
	}
	return addr, nil
}

func blockTime(ctx delayvault.Context) delayvault.UnixTime {
	t, _ := delayvault.BlockTime(ctx)
	return delayvault.AsUnixTime(t)
}

// Deposit locks amount of the asset from the signer with given delays. A
// deposit into a funded vault is a top-up. A zero amount deposit only
// extends the delays.
func (e *Engine) Deposit(ctx delayvault.Context, asset string, amount *big.Int, delays delayvault.Delays) error {
	return e.exec(ctx, "deposit", func(ctx delayvault.Context, db delayvault.KVStore) error {
		depositor, err := e.signer(ctx)
		if err != nil {
			return err
		}
		conf, err := loadConf(db)
		if err != nil {
			return err
		}
		if conf.Paused {
			return errors.Wrap(errors.ErrSystemPaused, "deposit")
		}
		table, err := e.policies.Get(db, asset)
		if err != nil {
			return err
		}
		if !table.Active {
			return errors.Wrapf(errors.ErrNoPolicyForAsset, "asset %s inactive", asset)
		}
		if table.WhitelistFilter && !conf.WhitelistAddress.IsZero() {
			if err := e.checkEligible(db, conf, asset, depositor); err != nil {
				return err
			}
		}

		v, err := e.ledger.ApplyDeposit(db, asset, depositor, amount, delays)
		if err != nil {
			return err
		}
		if amount.Sign() > 0 {
			if err := e.transfer.MoveCoins(db, depositor, Custody, asset, amount); err != nil {
				return errors.Wrap(err, "pull deposit")
			}
		}
		if err := e.index.Register(db, depositor, asset); err != nil {
			return errors.Wrap(err, "index")
		}
		delayvault.GetLogger(ctx).Info("deposit",
			"asset", asset,
			"depositor", depositor,
			"amount", amount,
			"total", v.Balance(),
			"delays", v.Delays())
		return nil
	})
}

func (e *Engine) checkEligible(db delayvault.ReadOnlyKVStore, conf *Configuration, asset string, depositor delayvault.Address) error {
	if e.oracle == nil {
		return errors.Wrap(errors.ErrHuman, "whitelist configured but no oracle provided")
	}
	ok, err := e.oracle.IsEligible(db, conf.WhitelistID, asset, depositor)
	if err != nil {
		return errors.Wrap(err, "eligibility")
	}
	if !ok {
		return errors.Wrapf(errors.ErrNotEligible, "asset %s, depositor %s", asset, depositor)
	}
	return nil
}

// Withdraw empties the vault of the signer and pays the funds out. It
// returns the withdrawn amount. The start delay must have passed since the
// withdraw epoch of the asset.
func (e *Engine) Withdraw(ctx delayvault.Context, asset string) (*big.Int, error) {
	var withdrawn *big.Int
	err := e.exec(ctx, "withdraw", func(ctx delayvault.Context, db delayvault.KVStore) error {
		depositor, err := e.signer(ctx)
		if err != nil {
			return err
		}
		conf, err := loadConf(db)
		if err != nil {
			return err
		}
		if conf.Paused {
			return errors.Wrap(errors.ErrSystemPaused, "withdraw")
		}
		prior, err := e.ledger.ApplyWithdrawal(db, asset, depositor)
		if err != nil {
			return err
		}
		table, err := e.policies.Bounds(db, asset)
		if err != nil {
			return err
		}
		unlock := table.WithdrawEpoch.AddSeconds(prior.StartDelay)
		if now := blockTime(ctx); now < unlock {
			return errors.Wrapf(errors.ErrVaultLocked, "unlocks at %s", unlock)
		}

		amount := prior.Balance()
		sink := sinkFor(conf, e.transfer, e.facility)
		if err := sink.Release(ctx, db, asset, depositor, amount, prior.Delays()); err != nil {
			return errors.Wrap(err, "release")
		}
		delayvault.GetLogger(ctx).Info("withdraw",
			"asset", asset,
			"depositor", depositor,
			"amount", amount,
			"facility", conf.VestingFacility)
		withdrawn = amount
		return nil
	})
	return withdrawn, err
}

// BuyBack takes amount out of the depositor vault and pays it to the
// signing owner. The depositor must have consented. It returns the amount
// remaining in the vault.
func (e *Engine) BuyBack(ctx delayvault.Context, asset string, depositor delayvault.Address, amount *big.Int) (*big.Int, error) {
	var remaining *big.Int
	err := e.exec(ctx, "buyback", func(ctx delayvault.Context, db delayvault.KVStore) error {
		conf, err := e.requireOwner(ctx, db)
		if err != nil {
			return err
		}
		left, err := e.ledger.ApplyBuyBack(db, asset, depositor, amount)
		if err != nil {
			return err
		}
		if err := e.transfer.MoveCoins(db, Custody, conf.Owner, asset, amount); err != nil {
			return errors.Wrap(err, "pay out")
		}
		buyBackRemaining.WithLabelValues(asset).Set(toFloat(left))
		delayvault.GetLogger(ctx).Info("buy-back",
			"asset", asset,
			"depositor", depositor,
			"amount", amount,
			"remaining", left)
		remaining = left
		return nil
	})
	return remaining, err
}

// SetRedemptionConsent records whether the signer allows the owner to buy
// back the vault of given asset.
func (e *Engine) SetRedemptionConsent(ctx delayvault.Context, asset string, granted bool) error {
	return e.exec(ctx, "consent", func(ctx delayvault.Context, db delayvault.KVStore) error {
		depositor, err := e.signer(ctx)
		if err != nil {
			return err
		}
		if err := delayvault.ValidateAsset(asset); err != nil {
			return err
		}
		return e.ledger.SetConsent(db, asset, depositor, granted)
	})
}

// limits combines the tier tables with the global delay bounds.
type limits struct {
	policies policy.Bucket
}

var _ ledger.Limits = limits{}

func (l limits) MinDelays(db delayvault.ReadOnlyKVStore, asset string, total *big.Int) (delayvault.Delays, error) {
	d, err := l.policies.Lookup(db, asset, total)
	if err != nil {
		return d, err
	}
	conf, err := loadConf(db)
	if err != nil {
		return d, err
	}
	return d.WithMinStart(conf.MinDelay), nil
}

func (l limits) MaxDelay(db delayvault.ReadOnlyKVStore) (uint64, error) {
	conf, err := loadConf(db)
	if err != nil {
		return 0, err
	}
	return conf.MaxDelay, nil
}
