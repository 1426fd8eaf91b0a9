/*
Package cash keeps account balances of every asset and moves them between
accounts.

It is the asset transfer used by the vault engine to take deposits into
custody and to pay them out again.
*/
package cash
