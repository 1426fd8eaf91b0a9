/*
Package gconf implements a configuration store intended to be used as a
global, in-database configuration.

Each package keeps its configuration as a single serialized model stored
under the "_c:<package>" key. Configuration is loaded from the genesis file
with InitConfig and later changed only by its owner, through Update.
*/
package gconf
