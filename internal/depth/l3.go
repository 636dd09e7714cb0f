package depth

// AddBuyOrder inserts a new resting buy order, failing with
// ErrOrderIDExists if orderID is already present (book left unchanged).
// On success the order's qty is added to the aggregate bid level at its
// tick, creating the level if needed, and the cached best-bid tick is
// refreshed. It returns (prevBestBidTick, newBestBidTick, nil).
func (b *Book) AddBuyOrder(orderID uint64, price, qty float64, timestamp int64) (prevBestTick, newBestTick int64, err error) {
	if _, exists := b.orders[orderID]; exists {
		b.logger.Debug().Uint64("orderID", orderID).Msg("add rejected: order id exists")
		return 0, 0, ErrOrderIDExists
	}

	tick := b.toTick(price)
	prevBestTick = b.bestBidTick

	b.orders[orderID] = &L3Order{OrderID: orderID, Side: Buy, PriceTick: tick, Qty: qty, Timestamp: timestamp}
	b.addQtyAtTick(b.bids, tick, qty)
	b.refreshBestBid()
	b.timestamp = timestamp

	return prevBestTick, b.bestBidTick, nil
}

// AddSellOrder is the ask-side mirror of AddBuyOrder.
func (b *Book) AddSellOrder(orderID uint64, price, qty float64, timestamp int64) (prevBestTick, newBestTick int64, err error) {
	if _, exists := b.orders[orderID]; exists {
		b.logger.Debug().Uint64("orderID", orderID).Msg("add rejected: order id exists")
		return 0, 0, ErrOrderIDExists
	}

	tick := b.toTick(price)
	prevBestTick = b.bestAskTick

	b.orders[orderID] = &L3Order{OrderID: orderID, Side: Sell, PriceTick: tick, Qty: qty, Timestamp: timestamp}
	b.addQtyAtTick(b.asks, tick, qty)
	b.refreshBestAsk()
	b.timestamp = timestamp

	return prevBestTick, b.bestAskTick, nil
}

// DeleteOrder removes a resting order, failing with ErrOrderNotFound if
// orderID is absent (book left unchanged). The order's qty is subtracted
// from its level; if that empties the level it is erased. The best tick
// for the order's side is always refreshed, regardless of whether the
// emptied level happened to be the cached best.
func (b *Book) DeleteOrder(orderID uint64, timestamp int64) (side Side, prevBestTick, newBestTick int64, err error) {
	order, ok := b.orders[orderID]
	if !ok {
		b.logger.Debug().Uint64("orderID", orderID).Msg("delete rejected: order not found")
		return 0, 0, 0, ErrOrderNotFound
	}
	delete(b.orders, orderID)
	b.timestamp = timestamp

	if order.Side == Buy {
		prevBestTick = b.bestBidTick
		b.subQtyAtTick(b.bids, order.PriceTick, order.Qty)
		b.refreshBestBid()
		return Buy, prevBestTick, b.bestBidTick, nil
	}

	prevBestTick = b.bestAskTick
	b.subQtyAtTick(b.asks, order.PriceTick, order.Qty)
	b.refreshBestAsk()
	return Sell, prevBestTick, b.bestAskTick, nil
}

// ModifyOrder rewrites a resting order's price and/or qty, failing with
// ErrOrderNotFound if orderID is absent (book left unchanged). Price-time
// priority is not preserved: every modify is a loss of queue position,
// whether or not the tick changes, matching typical exchange amend rules.
//
// When the new tick equals the old tick, only the aggregate level is
// adjusted by the qty delta. When it differs, this is semantically a
// delete-then-insert at the order level: the old level loses the order's
// qty (erased if that empties it) and the new level gains it (created if
// needed). The best tick for the order's side is always refreshed.
func (b *Book) ModifyOrder(orderID uint64, newPrice, newQty float64, timestamp int64) (side Side, prevBestTick, newBestTick int64, err error) {
	order, ok := b.orders[orderID]
	if !ok {
		b.logger.Debug().Uint64("orderID", orderID).Msg("modify rejected: order not found")
		return 0, 0, 0, ErrOrderNotFound
	}

	newTick := b.toTick(newPrice)

	if order.Side == Buy {
		prevBestTick = b.bestBidTick
		if newTick == order.PriceTick {
			b.addQtyAtTick(b.bids, newTick, newQty-order.Qty)
		} else {
			b.subQtyAtTick(b.bids, order.PriceTick, order.Qty)
			b.addQtyAtTick(b.bids, newTick, newQty)
		}
		order.PriceTick = newTick
		order.Qty = newQty
		order.Timestamp = timestamp
		b.refreshBestBid()
		b.timestamp = timestamp
		return Buy, prevBestTick, b.bestBidTick, nil
	}

	prevBestTick = b.bestAskTick
	if newTick == order.PriceTick {
		b.addQtyAtTick(b.asks, newTick, newQty-order.Qty)
	} else {
		b.subQtyAtTick(b.asks, order.PriceTick, order.Qty)
		b.addQtyAtTick(b.asks, newTick, newQty)
	}
	order.PriceTick = newTick
	order.Qty = newQty
	order.Timestamp = timestamp
	b.refreshBestAsk()
	b.timestamp = timestamp
	return Sell, prevBestTick, b.bestAskTick, nil
}

// ClearDepth wipes the aggregate map of the given side (or both, when side
// is nil) and drops every L3 order resting on the cleared side(s) from the
// order index, keeping the index and the aggregate depth reconciled.
func (b *Book) ClearDepth(side *Side) {
	clearBuy := side == nil || *side == Buy
	clearSell := side == nil || *side == Sell

	if clearBuy {
		drainAll(b.bids)
		for id, order := range b.orders {
			if order.Side == Buy {
				delete(b.orders, id)
			}
		}
		b.refreshBestBid()
	}
	if clearSell {
		drainAll(b.asks)
		for id, order := range b.orders {
			if order.Side == Sell {
				delete(b.orders, id)
			}
		}
		b.refreshBestAsk()
	}
}

// Orders returns a value snapshot of the L3 order index. The returned map
// is owned by the caller; mutating it has no effect on the book.
func (b *Book) Orders() map[uint64]L3Order {
	out := make(map[uint64]L3Order, len(b.orders))
	for id, order := range b.orders {
		out[id] = *order
	}
	return out
}
