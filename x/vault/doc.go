/*
Package vault implements the delay vault engine.

Depositors lock an amount of an asset together with a commitment to keep it
for at least a start, cliff and finish delay. The minimum delays depend on
the amount held, as described by the tier table of the asset. Top-ups may
only add funds and extend delays. Once the start delay has passed, counted
from the withdraw epoch of the asset, the depositor may withdraw everything.
Withdrawals are paid out directly or forwarded to a vesting facility,
depending on the configuration.

The configuration owner manages the tier tables and the configuration and
may buy back funds of depositors who consented to it.

Every engine operation is executed as a single transaction: it either
applies all its changes, including fund transfers, or none.
*/
package vault
