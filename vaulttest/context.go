package vaulttest

import (
	"context"
	"time"

	"github.com/iov-one/delayvault"
)

// Epoch is a fixed point in time tests can start from.
var Epoch = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// BlockCtx returns a context carrying given block time.
func BlockCtx(t time.Time) delayvault.Context {
	return delayvault.WithBlockTime(context.Background(), t)
}
