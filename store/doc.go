/*
Package store provides the in memory key value store implementations.

BTreeCacheWrap layers a btree of pending writes and deletes over any KVStore.
Reads see the pending state first and fall back to the parent. Write flushes
the pending operations to the parent in key order, Discard drops them. This is
what makes every vault operation all or nothing.

MemStore returns a root store for tests and ephemeral use. Persistent state is
provided by the iavl sub package.
*/
package store
