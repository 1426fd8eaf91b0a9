/*
Package vaulttest provides helpers shared by the tests of the vault
packages: deterministic conditions, a signature mock and error assertions.

This package must be used only in tests.
*/
package vaulttest
