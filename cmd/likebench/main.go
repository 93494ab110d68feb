package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/d60-Lab/channel-engage/config"
	"github.com/d60-Lab/channel-engage/internal/model"
	"github.com/d60-Lab/channel-engage/internal/render"
	"github.com/d60-Lab/channel-engage/internal/repository"
	"github.com/d60-Lab/channel-engage/internal/service"
	"github.com/d60-Lab/channel-engage/pkg/database"
)

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func envInt(name string, def int) int {
	if s := os.Getenv(name); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return def
}

// countingGateway 只计数，不访问 Telegram
type countingGateway struct {
	renders  atomic.Int64
	messages atomic.Int64
	pins     atomic.Int64
}

func (g *countingGateway) Apply(context.Context, int64, render.Card) error {
	g.renders.Add(1)
	return nil
}

func (g *countingGateway) SendDirectMessage(context.Context, int64, string) error {
	g.messages.Add(1)
	return nil
}

func (g *countingGateway) Pin(context.Context, int64) error {
	g.pins.Add(1)
	return nil
}

func pct(vs []time.Duration, p float64) time.Duration {
	if len(vs) == 0 {
		return 0
	}
	xs := append([]time.Duration(nil), vs...)
	sort.Slice(xs, func(i, j int) bool { return xs[i] < xs[j] })
	k := int(math.Ceil(p*float64(len(xs)))) - 1
	if k < 0 {
		k = 0
	}
	if k >= len(xs) {
		k = len(xs) - 1
	}
	return xs[k]
}

func main() {
	cfg := must(config.Load())
	db := must(database.InitDB(cfg))
	if err := database.Migrate(db); err != nil {
		panic(err)
	}
	store := repository.NewStore(db)

	N := envInt("N", 1000)
	CONC := envInt("CONC", 16)
	ITEM := int64(envInt("ITEM", int(time.Now().Unix()%1_000_000)+1))

	gw := &countingGateway{}
	engine := service.NewEngine(service.Deps{
		Store:     store,
		Renderer:  render.New(render.Options{BotUsername: "likebench"}),
		Gateway:   gw,
		Messenger: gw,
		Pinner:    gw,
	}, service.Options{PromoteThreshold: cfg.Engagement.PromoteThreshold})

	ctx := context.Background()
	_ = must(engine.Publish(ctx, &model.Submission{ID: ITEM, AuthorID: 1, AuthorName: "bench", Content: "likebench item"}))

	// N 个不同用户各点一次赞，CONC 个 worker 并发
	feed := make(chan int64, N)
	for u := 0; u < N; u++ {
		feed <- int64(1_000_000 + u)
	}
	close(feed)

	workers := CONC
	if workers > N {
		workers = N
	}
	latCh := make(chan time.Duration, N)
	var failed, newlyPinned atomic.Int64
	done := make(chan struct{}, workers)

	t0 := time.Now()
	for w := 0; w < workers; w++ {
		go func() {
			for uid := range feed {
				st := time.Now()
				out, err := engine.HandleEvent(ctx, service.Event{
					Action: service.ActionReact, ItemID: ITEM, UserID: uid, Polarity: model.Like,
				})
				latCh <- time.Since(st)
				if err != nil {
					failed.Add(1)
					continue
				}
				if out.Promotion == service.PromotionNewlyPinned {
					newlyPinned.Add(1)
				}
			}
			done <- struct{}{}
		}()
	}
	for w := 0; w < workers; w++ {
		<-done
	}
	total := time.Since(t0)
	close(latCh)
	lats := make([]time.Duration, 0, N)
	for d := range latCh {
		lats = append(lats, d)
	}

	counts := must(engine.Counts(ctx, ITEM))
	pins := must(store.Pins.Count(ctx))

	fmt.Printf("N=%d, CONC=%d, ITEM=%d, threshold=%d\n", N, CONC, ITEM, cfg.Engagement.PromoteThreshold)
	fmt.Printf("Like latency total: %v, per op: %v, p50: %v, p95: %v, p99: %v\n",
		total, total/time.Duration(N), pct(lats, 0.50), pct(lats, 0.95), pct(lats, 0.99))
	fmt.Printf("Ledger likes=%d (failed=%d), newly pinned=%d, pins in store=%d\n",
		counts.Likes, failed.Load(), newlyPinned.Load(), pins)
	fmt.Printf("Gateway renders=%d, messages=%d, pins=%d\n", gw.renders.Load(), gw.messages.Load(), gw.pins.Load())
}
