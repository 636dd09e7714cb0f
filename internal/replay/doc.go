// Package replay provides a small tomb.Tomb-scoped channel feeder used to
// drive a depth.Book from a sequence of already-parsed events in tests and
// benchmarks. It reads no files and opens no sockets: the caller owns
// parsing and decides, per event, which depth.Book mutator to call.
package replay
