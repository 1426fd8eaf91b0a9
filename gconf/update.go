package gconf

import (
	"github.com/iov-one/delayvault"
	"github.com/iov-one/delayvault/errors"
	"github.com/iov-one/delayvault/x"
)

// OwnedConfig must have an Owner field. A configuration change must be
// signed by the owner in order to be authorized.
type OwnedConfig interface {
	Configuration
	GetOwner() delayvault.Address
}

// Update loads the configuration of given package into conf, ensures that
// the current owner signed the request, applies change and saves the
// result.
//
// Configuration must exist, it is created via the genesis. Change may
// return an error to abort the update, nothing is written in that case.
func Update(
	ctx delayvault.Context,
	db Store,
	auth x.Authenticator,
	pkg string,
	conf OwnedConfig,
	change func() error,
) error {
	if err := Load(db, pkg, conf); err != nil {
		return errors.Wrap(err, "load current configuration")
	}
	owner := conf.GetOwner()
	if len(owner) == 0 {
		return errors.Wrap(errors.ErrUnauthorized, "owner signature required")
	}
	if !auth.HasAddress(ctx, owner) {
		return errors.Wrap(errors.ErrUnauthorized, "owner did not sign")
	}
	if err := change(); err != nil {
		return err
	}
	if err := Save(db, pkg, conf); err != nil {
		return errors.Wrap(err, "cannot save updated config")
	}
	return nil
}
