/*
Package whitelist implements an eligibility oracle. Each whitelist has an
owner who decides which accounts may deposit which assets.
*/
package whitelist
