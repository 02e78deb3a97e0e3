package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/baxromumarov/mpmc"
	"github.com/k0kubun/pp/v3"
	"github.com/sasha-s/go-deadlock"
	"github.com/sethvargo/go-retry"
	"github.com/sirupsen/logrus"
	"go.uber.org/automaxprocs/maxprocs"
	"golang.org/x/sync/errgroup"
)

var log = logrus.New()

func init() {
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if _, err := maxprocs.Set(maxprocs.Logger(log.Debugf)); err != nil {
		log.WithError(err).Warn("maxprocs: using default GOMAXPROCS")
	}
	deadlock.Opts.DeadlockTimeout = 2 * time.Second
	deadlock.Opts.OnPotentialDeadlock = func() {
		buf := make([]byte, 1<<16)
		n := runtime.Stack(buf, true)
		log.WithField("stacks", string(buf[:n])).Error("potential deadlock detected")
	}
}

type options struct {
	capacity  int
	producers int
	consumers int
	items     int
	strategy  mpmc.WakeStrategy
	try       bool
	deadlock  bool
	dump      bool
}

func main() {
	var (
		opts     options
		strategy string
		verbose  bool
	)
	flag.IntVar(&opts.capacity, "capacity", 16, "channel capacity")
	flag.IntVar(&opts.producers, "producers", 4, "number of producer goroutines")
	flag.IntVar(&opts.consumers, "consumers", 4, "number of consumer goroutines")
	flag.IntVar(&opts.items, "items", 100_000, "values sent by each producer")
	flag.StringVar(&strategy, "strategy", "broadcast", "wake strategy: broadcast or signal")
	flag.BoolVar(&opts.try, "try", false, "producers use TrySend with backoff instead of Send")
	flag.BoolVar(&opts.deadlock, "deadlock", false, "guard the channel with a go-deadlock mutex")
	flag.BoolVar(&opts.dump, "dump", false, "pretty-print final channel stats")
	flag.BoolVar(&verbose, "v", false, "debug logging")
	flag.Parse()

	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	s, ok := mpmc.ParseWakeStrategy(strategy)
	if !ok {
		log.Fatalf("unknown wake strategy %q", strategy)
	}
	opts.strategy = s

	if opts.capacity <= 0 || opts.producers <= 0 || opts.consumers <= 0 || opts.items < 0 {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(context.Background(), opts); err != nil {
		log.WithError(err).Fatal("pipeline failed")
	}
}

func run(ctx context.Context, opts options) error {
	chOpts := []mpmc.Option{
		mpmc.WithWakeStrategy(opts.strategy),
		mpmc.WithLogger(log),
	}
	if opts.deadlock {
		chOpts = append(chOpts, mpmc.WithDeadlockDetection())
	}
	ch := mpmc.New[int](opts.capacity, chOpts...)

	total := opts.producers * opts.items
	seen := make([]atomic.Bool, total)
	var duplicates atomic.Int64

	log.WithFields(logrus.Fields{
		"capacity":  opts.capacity,
		"producers": opts.producers,
		"consumers": opts.consumers,
		"items":     opts.items,
		"strategy":  opts.strategy,
		"try":       opts.try,
	}).Info("starting pipeline")

	start := time.Now()

	var consumers errgroup.Group
	for range opts.consumers {
		consumers.Go(func() error {
			return ch.ForEach(mpmc.ConsumerFunc[int](func(v int) error {
				if seen[v].Swap(true) {
					duplicates.Add(1)
				}
				return nil
			}))
		})
	}

	producers, pctx := errgroup.WithContext(ctx)
	for p := range opts.producers {
		producers.Go(func() error {
			base := p * opts.items
			for i := range opts.items {
				if err := produce(pctx, ch, base+i, opts.try); err != nil {
					return fmt.Errorf("producer %d: %w", p, err)
				}
			}
			return nil
		})
	}

	perr := producers.Wait()
	if err := ch.Shutdown(); err != nil {
		return err
	}
	cerr := consumers.Wait()
	elapsed := time.Since(start)

	if err := errors.Join(perr, cerr); err != nil {
		return err
	}

	var missing int
	for i := range seen {
		if !seen[i].Load() {
			missing++
		}
	}
	if missing > 0 || duplicates.Load() > 0 {
		return fmt.Errorf("delivery check failed: %d missing, %d duplicated", missing, duplicates.Load())
	}

	st := ch.Stats()
	log.WithFields(logrus.Fields{
		"values":  total,
		"elapsed": elapsed.Round(time.Microsecond),
		"ops_sec": int64(float64(total) / elapsed.Seconds()),
		"state":   st.State(),
	}).Info("every value delivered exactly once")

	if opts.dump {
		pp.Println(st)
	}
	return nil
}

// produce sends v, either blocking in Send or polling TrySend with a
// capped exponential backoff while the buffer is full.
func produce(ctx context.Context, ch *mpmc.Channel[int], v int, try bool) error {
	if !try {
		return ch.Send(v)
	}

	backoff := retry.WithCappedDuration(time.Millisecond, retry.NewExponential(time.Microsecond))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := ch.TrySend(v)
		if errors.Is(err, mpmc.ErrFull) {
			return retry.RetryableError(err)
		}
		return err
	})
}
