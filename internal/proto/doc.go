// Package proto holds the records counters publish about themselves in an
// announce directory, and the functions for reading and writing them.
//
// Every record is a length-prefixed JSON blob: a big-endian int32 byte count
// followed by that many bytes of JSON. The prefix lets a reader tell a
// complete record from one that is still being written.
package proto
