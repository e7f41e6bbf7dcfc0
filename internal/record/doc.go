// Package record walks the fixed-length records of a channel group.
//
// A data group stores its records in a single logical stream (see package
// layout). Every record is laid out as
//
//	+-----------------+--------------------+---------------------+
//	| record id       | data bytes         | invalidation bytes  |
//	| (0,1,2,4,8 B)   | (cg_data_bytes)    | (cg_inval_bytes)    |
//	+-----------------+--------------------+---------------------+
//
// A sorted data group holds exactly one channel group and its records follow
// each other at a constant stride. An unsorted data group interleaves the
// records of several channel groups, told apart by the record id prefix;
// those are walked by Unsorted.
package record
