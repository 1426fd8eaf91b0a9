/*
Package orm provides an easy to use db wrapper

Break state space into prefixed sections called Buckets.
Each bucket holds a set of models of one type, stored under
the bucket prefix followed by the model primary key.

Models are protobuf messages. Put validates a model before
it is written, One loads it into a destination instance.

Sequence provides monotonic counters persisted next to the
buckets, they are used to allocate ids and positions.
*/
package orm
