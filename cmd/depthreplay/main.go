package main

import (
	"context"
	"flag"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/saiputravu/depthbook/internal/depth"
	"github.com/saiputravu/depthbook/internal/replay"
)

func main() {
	tickSize := flag.Float64("tick-size", 0.1, "price tick size")
	lotSize := flag.Float64("lot-size", 0.001, "lot size")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	flag.Parse()

	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
	)
	defer stop()

	book := depth.New(*tickSize, *lotSize, depth.WithLogger(log.Logger))
	log.Info().Str("bookID", book.ID().String()).Msg("depth book ready")

	f := replay.NewFeeder(ctx, 1024, replay.WithLogger(log.Logger))
	f.Start(func(ev depth.Event) {
		if ev.Flags&depth.BuyEvent != 0 {
			book.UpdateBidDepth(ev.Price, ev.Qty, ev.ExchTimestamp)
		}
		if ev.Flags&depth.SellEvent != 0 {
			book.UpdateAskDepth(ev.Price, ev.Qty, ev.ExchTimestamp)
		}
	})

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if err := f.Stop(); err != nil {
				log.Error().Err(err).Msg("feeder did not stop cleanly")
			}
			return
		case <-ticker.C:
			log.Info().
				Float64("bestBid", book.BestBid()).
				Float64("bestAsk", book.BestAsk()).
				Msg("depth heartbeat")
		}
	}
}
