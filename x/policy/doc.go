/*
Package policy implements per asset tier tables.

A tier table maps the cumulative amount a depositor holds in a vault to the
minimum start, cliff and finish delays the vault must be committed to. The
table is a step function: the tier with the greatest threshold not above the
amount applies, amounts below the first threshold require no delay.

Besides the tiers, a table carries the per asset settings consulted by the
vault engine: whether deposits are accepted at all, the reference time
withdrawal delays are counted from and whether the whitelist oracle is
consulted on deposit.
*/
package policy
