package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/iov-one/delayvault"
	"github.com/iov-one/delayvault/errors"
	"github.com/iov-one/delayvault/store/iavl"
	"github.com/iov-one/delayvault/x"
	"github.com/iov-one/delayvault/x/cash"
	"github.com/iov-one/delayvault/x/lockeddeal"
	"github.com/iov-one/delayvault/x/vault"
	"github.com/iov-one/delayvault/x/whitelist"
	"github.com/spf13/pflag"
	"github.com/tendermint/tendermint/libs/log"
)

// storeName is the name of the database kept in the home directory.
const storeName = "vault"

// options are the flags shared by all commands that access the state.
type options struct {
	home     *string
	signers  *[]delayvault.Condition
	at       *string
	logLevel *string
}

func stateFlags(fl *pflag.FlagSet) *options {
	return &options{
		home:     fl.String("home", defaultHome(), "Directory the state is kept in."),
		signers:  flConditions(fl, "signer", "Condition that signs the operation, as extension/type/hexdata. Can be repeated, the first one is the main signer."),
		at:       fl.String("time", "", "Block time of the operation in RFC3339 format. Current time is used if not set."),
		logLevel: fl.String("log-level", "error", "Logging level, one of debug, info or error."),
	}
}

func defaultHome() string {
	if h := os.Getenv("VAULTD_HOME"); h != "" {
		return h
	}
	if h := os.Getenv("HOME"); h != "" {
		return filepath.Join(h, ".vaultd")
	}
	return ".vaultd"
}

// env is the application state and the components operating on it.
type env struct {
	store    *iavl.CommitStore
	engine   *vault.Engine
	cash     cash.Controller
	facility *lockeddeal.Facility
	oracle   *whitelist.Oracle
	ctx      delayvault.Context
}

func openEnv(o *options) (*env, error) {
	if err := os.MkdirAll(*o.home, 0700); err != nil {
		return nil, errors.Wrapf(errors.ErrDatabase, "home directory: %s", err)
	}
	db, err := iavl.NewCommitStore(*o.home, storeName)
	if err != nil {
		return nil, err
	}

	logger := log.NewTMLogger(log.NewSyncWriter(os.Stderr))
	level, err := log.AllowLevel(*o.logLevel)
	if err != nil {
		flagDie("invalid log level: %s", err)
	}
	logger = log.NewFilter(logger, level).With("module", "vaultd")

	ctx := delayvault.WithLogger(context.Background(), logger)
	ctx = x.WithSigners(ctx, (*o.signers)...)
	if *o.at != "" {
		t, err := time.Parse(time.RFC3339, *o.at)
		if err != nil {
			flagDie("invalid time: %s", err)
		}
		ctx = delayvault.WithBlockTime(ctx, t)
	} else {
		ctx = delayvault.WithBlockTime(ctx, time.Now())
	}

	auth := x.SignersAuth{}
	ctrl := cash.NewController()
	facility := lockeddeal.NewFacility(auth, ctrl)
	oracle := whitelist.NewOracle(auth)
	return &env{
		store:    db,
		engine:   vault.NewEngine(db, auth, ctrl, facility, oracle),
		cash:     ctrl,
		facility: facility,
		oracle:   oracle,
		ctx:      ctx,
	}, nil
}

// apply runs fn in a transaction over the state. Changes are written only
// if fn succeeds.
func (e *env) apply(fn func(db delayvault.KVStore) error) error {
	cache := e.store.CacheWrap()
	if err := fn(cache); err != nil {
		cache.Discard()
		return err
	}
	return cache.Write()
}

// commit persists all changes as a new version of the state.
func (e *env) commit() error {
	id, err := e.store.Commit()
	if err != nil {
		return err
	}
	delayvault.GetLogger(e.ctx).Info("committed", "version", id.Version, "hash", fmt.Sprintf("%X", id.Hash))
	return nil
}

func (e *env) close() {
	if err := e.store.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "close store: %s\n", err)
	}
}

// withEnv opens the state, runs fn and commits if fn succeeds.
func withEnv(o *options, fn func(*env) error) error {
	e, err := openEnv(o)
	if err != nil {
		return err
	}
	defer e.close()
	if err := fn(e); err != nil {
		return err
	}
	return e.commit()
}

// viewEnv opens the state and runs fn without committing.
func viewEnv(o *options, fn func(*env) error) error {
	e, err := openEnv(o)
	if err != nil {
		return err
	}
	defer e.close()
	return fn(e)
}

func writeJSON(out io.Writer, v interface{}) error {
	raw, err := json.MarshalIndent(v, "", "\t")
	if err != nil {
		return errors.Wrap(err, "serialize")
	}
	_, err = fmt.Fprintln(out, string(raw))
	return err
}
