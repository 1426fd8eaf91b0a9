/*
Package directory implements append only, duplicate free listings of the
assets each depositor holds and of the depositors of each asset.

Entries keep their insertion order and are never removed, also when the
vault they refer to gets emptied. Listings can be read in full or by an
inclusive range of positions.
*/
package directory
