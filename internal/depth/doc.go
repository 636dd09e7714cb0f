// Package depth implements the order-book depth engine owned by a single
// simulated instrument: aggregate L2 depth per price tick, an L3 index of
// individual resting orders, and snapshot replace semantics. The engine is
// strictly single-threaded — every exported method on Book assumes one
// caller at a time; there is no lock because there is no concurrency to
// guard against.
package depth
