package depth

import (
	"math"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/tidwall/btree"
)

// Book is the depth engine for a single instrument: two ordered price-tick
// maps (bid/ask), their cached best-tick summaries, and an L3 order index.
// It owns all three exclusively — accessors return values, never aliasable
// handles into internal storage, so a caller may safely wrap a Book with
// its own mutual-exclusion discipline if it is shared across goroutines.
//
// Book is not itself safe for concurrent use: exactly one caller at a time.
type Book struct {
	tickSize float64
	lotSize  float64

	bids *btree.BTreeG[*level]
	asks *btree.BTreeG[*level]

	bestBidTick int64
	bestAskTick int64

	orders map[uint64]*L3Order

	timestamp int64

	id     uuid.UUID
	logger zerolog.Logger
}

// Option configures a Book at construction time.
type Option func(*Book)

// WithLogger attaches a structured logger to the book. Debug-level lines
// are emitted when an L3 add, delete or modify is rejected; level creation
// and erasure are not logged. None of them change steady-state behavior.
// The default is zerolog.Nop().
func WithLogger(logger zerolog.Logger) Option {
	return func(b *Book) { b.logger = logger }
}

// New constructs an empty Book. tickSize and lotSize must both be strictly
// positive; both are immutable for the book's lifetime. The book starts
// empty with both best-tick caches at their sentinels and timestamp 0.
func New(tickSize, lotSize float64, opts ...Option) *Book {
	if tickSize <= 0 {
		panic("depth: tickSize must be positive")
	}
	if lotSize <= 0 {
		panic("depth: lotSize must be positive")
	}

	b := &Book{
		tickSize: tickSize,
		lotSize:  lotSize,
		bids: btree.NewBTreeG(func(a, b *level) bool {
			return a.tick > b.tick // descending: Min() is the highest tick
		}),
		asks: btree.NewBTreeG(func(a, b *level) bool {
			return a.tick < b.tick // ascending: Min() is the lowest tick
		}),
		bestBidTick: InvalidMin,
		bestAskTick: InvalidMax,
		orders:      make(map[uint64]*L3Order),
		id:          uuid.New(),
		logger:      zerolog.Nop(),
	}
	return b
}

// ID identifies this book instance for log correlation across a backtest
// that runs many instruments side by side.
func (b *Book) ID() uuid.UUID { return b.id }

// TickSize returns the book's tick-size construction parameter.
func (b *Book) TickSize() float64 { return b.tickSize }

// LotSize returns the book's lot-size construction parameter.
func (b *Book) LotSize() float64 { return b.lotSize }

// BestBidTick returns the cached best-bid tick, or InvalidMin if no bid
// rests in the book.
func (b *Book) BestBidTick() int64 { return b.bestBidTick }

// BestAskTick returns the cached best-ask tick, or InvalidMax if no ask
// rests in the book.
func (b *Book) BestAskTick() int64 { return b.bestAskTick }

// BestBid returns the best bid price, or NaN when no bid rests.
func (b *Book) BestBid() float64 {
	if b.bestBidTick == InvalidMin {
		return math.NaN()
	}
	return float64(b.bestBidTick) * b.tickSize
}

// BestAsk returns the best ask price, or NaN when no ask rests.
func (b *Book) BestAsk() float64 {
	if b.bestAskTick == InvalidMax {
		return math.NaN()
	}
	return float64(b.bestAskTick) * b.tickSize
}

// BidQtyAtTick returns the aggregate bid quantity resting at tick t, or 0.0
// if the level does not exist.
func (b *Book) BidQtyAtTick(t int64) float64 {
	return qtyAt(b.bids, t)
}

// AskQtyAtTick returns the aggregate ask quantity resting at tick t, or 0.0
// if the level does not exist.
func (b *Book) AskQtyAtTick(t int64) float64 {
	return qtyAt(b.asks, t)
}

func qtyAt(tree *btree.BTreeG[*level], tick int64) float64 {
	lvl, ok := tree.Get(&level{tick: tick})
	if !ok {
		return 0.0
	}
	return lvl.qty
}

// addQtyAtTick adds a (possibly negative) qty delta to the level at tick,
// creating it if absent, and erasing it if the result rounds to zero lots.
func (b *Book) addQtyAtTick(tree *btree.BTreeG[*level], tick int64, qty float64) {
	lvl, ok := tree.GetMut(&level{tick: tick})
	if !ok {
		if b.isZeroLots(qty) {
			return
		}
		tree.Set(&level{tick: tick, qty: qty})
		return
	}
	lvl.qty += qty
	if b.isZeroLots(lvl.qty) {
		tree.Delete(lvl)
	}
}

// subQtyAtTick subtracts qty from the level at tick, erasing the level if
// that rounds its remaining aggregate to zero lots. It is a no-op if the
// level is already absent.
func (b *Book) subQtyAtTick(tree *btree.BTreeG[*level], tick int64, qty float64) {
	lvl, ok := tree.GetMut(&level{tick: tick})
	if !ok {
		return
	}
	lvl.qty -= qty
	if b.isZeroLots(lvl.qty) {
		tree.Delete(lvl)
	}
}

// drainAll empties a price-tick tree one minimum at a time.
func drainAll(tree *btree.BTreeG[*level]) {
	for {
		lvl, ok := tree.Min()
		if !ok {
			return
		}
		tree.Delete(lvl)
	}
}

// refreshBestBid recomputes the cached best-bid tick as the true maximum
// key of bids (or InvalidMin if empty). Because bids is ordered descending,
// Min() is exactly that maximum.
func (b *Book) refreshBestBid() {
	if lvl, ok := b.bids.Min(); ok {
		b.bestBidTick = lvl.tick
	} else {
		b.bestBidTick = InvalidMin
	}
}

// refreshBestAsk recomputes the cached best-ask tick as the true minimum
// key of asks (or InvalidMax if empty).
func (b *Book) refreshBestAsk() {
	if lvl, ok := b.asks.Min(); ok {
		b.bestAskTick = lvl.tick
	} else {
		b.bestAskTick = InvalidMax
	}
}
