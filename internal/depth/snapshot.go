package depth

import "github.com/tidwall/btree"

// ApplySnapshot replaces both depth maps wholesale: any prior aggregate
// state is dropped, then every record in events is written with exact
// replace semantics — last writer wins on a tick collision within the
// batch. A record with the BuyEvent bit set routes to the bid side; one
// with only the SellEvent bit routes to the ask side; a record with
// neither bit is ignored. Records whose qty rounds to zero lots establish
// no level. Both best ticks are refreshed at the end.
//
// The L3 order index is not touched: snapshot replace and L3 tracking are
// parallel concerns.
func (b *Book) ApplySnapshot(events []Event) {
	drainAll(b.bids)
	drainAll(b.asks)
	for _, ev := range events {
		switch {
		case ev.Flags&BuyEvent != 0:
			b.UpdateBidDepth(ev.Price, ev.Qty, ev.ExchTimestamp)
		case ev.Flags&SellEvent != 0:
			b.UpdateAskDepth(ev.Price, ev.Qty, ev.ExchTimestamp)
		}
	}
	b.refreshBestBid()
	b.refreshBestAsk()
}

// Snapshot emits the current L2 state as a flat, unordered batch of Events,
// one per populated tick per side; feeding the batch back through
// ApplySnapshot reconstructs the same aggregate depth. The LocalTimestamp
// field of every emitted record is set to the book's current timestamp;
// ExchTimestamp is left zero since no per-level exchange timestamp
// survives aggregation into an L2 level.
func (b *Book) Snapshot() []Event {
	var events []Event

	events = append(events, snapshotSide(b.bids, BuyEvent, b.tickSize, b.timestamp)...)
	events = append(events, snapshotSide(b.asks, SellEvent, b.tickSize, b.timestamp)...)

	return events
}

// snapshotSide drains tree one Min() at a time to visit every level, then
// restores each popped entry with Set before returning — a read-only walk
// built only out of the primitives this package relies on elsewhere, since
// the tree has no confirmed in-order-iteration method of its own.
func snapshotSide(tree *btree.BTreeG[*level], flag EventFlag, tickSize float64, ts int64) []Event {
	var popped []*level
	var events []Event

	for {
		lvl, ok := tree.Min()
		if !ok {
			break
		}
		popped = append(popped, lvl)
		events = append(events, Event{
			Price:          float64(lvl.tick) * tickSize,
			Qty:            lvl.qty,
			Flags:          flag,
			LocalTimestamp: ts,
		})
		tree.Delete(lvl)
	}
	for _, lvl := range popped {
		tree.Set(lvl)
	}

	return events
}
