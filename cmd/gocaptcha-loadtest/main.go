package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	goCaptcha "github.com/MrEthical07/goCaptcha"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func main() {
	var (
		concurrency = flag.Int("concurrency", 256, "number of concurrent workers")
		ops         = flag.Int("ops", 100000, "operations per phase (generate + verify)")
		redisAddr   = flag.String("redis-addr", "", "redis address; if empty, REDIS_ADDR env or miniredis is used")
		prefix      = flag.String("prefix", "cpc", "challenge key prefix")
		useMemory   = flag.Bool("memory", false, "use the in-memory backend instead of redis")
	)
	flag.Parse()

	if *concurrency <= 0 || *ops <= 0 {
		fmt.Fprintln(os.Stderr, "concurrency and ops must be > 0")
		os.Exit(2)
	}

	ctx := context.Background()

	cfg := goCaptcha.DefaultConfig()
	cfg.Storage.RedisPrefix = *prefix
	cfg.Metrics.Enabled = true
	cfg.Metrics.EnableLatencyHistograms = true

	builder := goCaptcha.New().WithConfig(cfg)

	var cleanup func()
	if *useMemory {
		cleanup = func() {}
		fmt.Println("using in-memory backend")
	} else {
		addr := *redisAddr
		if addr == "" {
			addr = os.Getenv("REDIS_ADDR")
		}

		var client redis.UniversalClient
		if addr == "" {
			mr, err := miniredis.Run()
			if err != nil {
				fmt.Fprintf(os.Stderr, "failed to start miniredis: %v\n", err)
				os.Exit(1)
			}
			addr = mr.Addr()
			client = redis.NewUniversalClient(&redis.UniversalOptions{
				Addrs: []string{addr},
			})
			cleanup = func() {
				_ = client.Close()
				mr.Close()
			}
			fmt.Printf("using miniredis at %s\n", addr)
		} else {
			client = redis.NewUniversalClient(&redis.UniversalOptions{
				Addrs: []string{addr},
			})
			cleanup = func() { _ = client.Close() }
			fmt.Printf("using redis at %s\n", addr)
		}

		cfg.Storage.Backend = goCaptcha.BackendRedis
		builder = builder.WithConfig(cfg).WithRedis(client)
	}
	defer cleanup()

	engine, err := builder.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "engine build failed: %v\n", err)
		os.Exit(1)
	}
	defer engine.Close()

	ids := make([]string, *ops)
	generateStats := runGeneratePhase(ctx, engine, ids, *concurrency)
	verifyStats := runVerifyPhase(ctx, engine, ids, *ops, *concurrency)

	fmt.Println("---- results ----")
	printStats("generate", generateStats)
	printStats("verify", verifyStats)

	snapshot := engine.MetricsSnapshot()
	fmt.Printf("verify outcomes: success=%d invalid=%d expired=%d exhausted=%d not_found=%d\n",
		snapshot.Counters[goCaptcha.MetricVerifySuccess],
		snapshot.Counters[goCaptcha.MetricVerifyInvalid],
		snapshot.Counters[goCaptcha.MetricVerifyExpired],
		snapshot.Counters[goCaptcha.MetricVerifyExhausted],
		snapshot.Counters[goCaptcha.MetricVerifyNotFound],
	)
}

func runGeneratePhase(ctx context.Context, engine *goCaptcha.Engine, ids []string, concurrency int) phaseStats {
	var (
		wg        sync.WaitGroup
		cursor    int64
		failures  int64
		latencies = make([]time.Duration, 0, len(ids))
		mu        sync.Mutex
	)

	start := time.Now()
	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				i := int(atomic.AddInt64(&cursor, 1)) - 1
				if i >= len(ids) {
					return
				}
				t0 := time.Now()
				challenge, err := engine.Generate(ctx, goCaptcha.KindDigits, goCaptcha.GenerateOptions{})
				d := time.Since(t0)
				if err != nil {
					atomic.AddInt64(&failures, 1)
				} else {
					ids[i] = challenge.ID
				}
				mu.Lock()
				latencies = append(latencies, d)
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	total := time.Since(start)
	return computeStats(total, latencies, failures)
}

// runVerifyPhase fires deliberately wrong answers at random issued ids, so the
// measured path is get + attempt increment + conditional save/delete. Ids hit
// more than MaxAttempts times flip to the exhausted outcome, which still
// exercises the terminal delete.
func runVerifyPhase(ctx context.Context, engine *goCaptcha.Engine, ids []string, ops, concurrency int) phaseStats {
	var (
		wg        sync.WaitGroup
		cursor    int64
		failures  int64
		latencies = make([]time.Duration, 0, ops)
		mu        sync.Mutex
	)

	start := time.Now()
	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			r := rand.New(rand.NewSource(time.Now().UnixNano() + int64(worker)*7919))
			for {
				i := int(atomic.AddInt64(&cursor, 1)) - 1
				if i >= ops {
					return
				}
				id := ids[r.Intn(len(ids))]
				t0 := time.Now()
				_, err := engine.Verify(ctx, id, "wrong-answer")
				d := time.Since(t0)
				if err != nil {
					atomic.AddInt64(&failures, 1)
				}
				mu.Lock()
				latencies = append(latencies, d)
				mu.Unlock()
			}
		}(w)
	}
	wg.Wait()
	total := time.Since(start)
	return computeStats(total, latencies, failures)
}

type phaseStats struct {
	total    time.Duration
	ops      int
	failures int64
	p50      time.Duration
	p95      time.Duration
	p99      time.Duration
	opsPerS  float64
}

func computeStats(total time.Duration, samples []time.Duration, failures int64) phaseStats {
	if len(samples) == 0 {
		return phaseStats{total: total}
	}
	sort.Slice(samples, func(i, j int) bool { return samples[i] < samples[j] })
	return phaseStats{
		total:    total,
		ops:      len(samples),
		failures: failures,
		p50:      percentile(samples, 50),
		p95:      percentile(samples, 95),
		p99:      percentile(samples, 99),
		opsPerS:  float64(len(samples)) / total.Seconds(),
	}
}

func percentile(samples []time.Duration, p int) time.Duration {
	if len(samples) == 0 {
		return 0
	}
	if p <= 0 {
		return samples[0]
	}
	if p >= 100 {
		return samples[len(samples)-1]
	}
	idx := (len(samples) - 1) * p / 100
	return samples[idx]
}

func printStats(name string, s phaseStats) {
	fmt.Printf("%s: ops=%d failures=%d total=%s ops/sec=%.0f p50=%s p95=%s p99=%s\n",
		name,
		s.ops,
		s.failures,
		s.total.Round(time.Millisecond),
		s.opsPerS,
		s.p50.Round(time.Microsecond),
		s.p95.Round(time.Microsecond),
		s.p99.Round(time.Microsecond),
	)
}
