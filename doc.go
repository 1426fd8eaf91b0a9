/*
Package delayvault defines the common interfaces and value types shared by
the vault packages: the key value store abstraction every component persists
through, account addresses, time, delay schedules and amounts.

A vault custodies fungible assets per (asset, depositor) pair. Each deposit
commits the depositor to a schedule of minimum delays (start, cliff and
finish), never shorter than the tier prescribed for the resulting balance of
that asset. The components are wired together by x/vault:

	x/policy      per asset tier tables and minimum delay lookups
	x/ledger      balances, delay commitments and redemption consent
	x/directory   depositor to assets and asset to depositors listings
	x/vault       deposit, withdraw and buy-back orchestration

Store backed collaborators live in x/cash, x/lockeddeal and x/whitelist.
The cmd/vaultd tool runs the vault over a persistent iavl state.

We pass context.Context through all operations. The block time, the logger
and the authenticated signers are carried by the context. There exist two
functions for every value of type T that we want to support in Context:

	WithXYZ(Context, T) Context
	GetXYZ(Context) (val T, ok bool)
*/
package delayvault
