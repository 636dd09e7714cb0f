package depth

import (
	"math/rand/v2"
	"testing"
)

type benchUpdate struct {
	price float64
	qty   float64
	buy   bool
}

var benchUpdates = make([]benchUpdate, 0, 1<<17)

func init() {
	for i := 0; i < 1<<17; i++ {
		benchUpdates = append(benchUpdates, benchUpdate{
			price: 450.0 + rand.Float64()*100.0,
			qty:   0.001 + rand.Float64()*0.1,
			buy:   rand.Int32()%2 == 0,
		})
	}
}

func BenchmarkL2Update(b *testing.B) {
	book := New(0.1, 0.001)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		u := benchUpdates[i%len(benchUpdates)]
		if u.buy {
			book.UpdateBidDepth(u.price, u.qty, int64(i))
		} else {
			book.UpdateAskDepth(u.price, u.qty, int64(i))
		}
	}
}

func BenchmarkL3AddDeleteChurn(b *testing.B) {
	book := New(0.1, 0.001)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		u := benchUpdates[i%len(benchUpdates)]
		id := uint64(i)
		if u.buy {
			_, _, _ = book.AddBuyOrder(id, u.price, u.qty, int64(i))
		} else {
			_, _, _ = book.AddSellOrder(id, u.price, u.qty, int64(i))
		}
		// keep a bounded resting population so the tree depth stabilizes
		if i >= 512 {
			_, _, _, _ = book.DeleteOrder(id-512, int64(i))
		}
	}
}

func BenchmarkBestOfBook(b *testing.B) {
	book := New(0.1, 0.001)
	for i, u := range benchUpdates[:1024] {
		if u.buy {
			book.UpdateBidDepth(u.price, u.qty, int64(i))
		} else {
			book.UpdateAskDepth(u.price, u.qty, int64(i))
		}
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = book.BestBidTick()
		_ = book.BestAskTick()
	}
}
