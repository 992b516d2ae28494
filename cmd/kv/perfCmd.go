package kv

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/ValentinKolb/rKV/cmd/util"
	gometrics "github.com/rcrowley/go-metrics"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	perfCmd = &cobra.Command{
		Use:     "perf",
		Short:   "Performance testing tool for rKV backends",
		Long:    "",
		RunE:    runPerf,
		PreRunE: processPerfConfig,
	}
	perfKeyPrefix  = "__test"
	perfNumThreads = 10
	perfNumOps     = 10000
	perfKeySpread  = 100
	perfSkip       = make([]string, 0)
)

func init() {
	// add flags
	key := "skip"
	perfCmd.Flags().String(key, "", util.WrapString("Benchmarks to skip (comma separated - e.g. upsert,get)"))
	key = "threads"
	perfCmd.Flags().Int(key, 10, util.WrapString("Number of threads to use for the benchmark"))
	key = "ops"
	perfCmd.Flags().Int(key, 10000, util.WrapString("Number of operations per benchmark"))
	key = "keys"
	perfCmd.Flags().Int(key, 100, util.WrapString("How many different keys to use for the tests"))
}

func processPerfConfig(cmd *cobra.Command, _ []string) error {
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	// Read the configuration from the command line flags and environment variables
	perfNumThreads = viper.GetInt("threads")
	perfNumOps = viper.GetInt("ops")
	perfKeySpread = viper.GetInt("keys")
	perfSkip = strings.Split(viper.GetString("skip"), ",")

	return nil
}

func runPerf(_ *cobra.Command, _ []string) error {

	fmt.Println("Performance testing tool for rKV backends")

	// Print configuration
	fmt.Println()
	fmt.Println("Configuration:")
	fmt.Println(util.GetStoreConfig().String())
	fmt.Printf("Threads: %d, Ops: %d, Keys: %d\n", perfNumThreads, perfNumOps, perfKeySpread)
	fmt.Println()

	fmt.Println("starting tests...")

	ctx := context.Background()

	runBenchmark("upsert", func(counter int) {
		if err := mgr.Upsert(ctx, perfKey("upsert", counter), "test"); err != nil {
			log.Printf("(upsert) - error setting key: %v\n", err)
		}
	}, nil)

	runBenchmark("get", func(counter int) {
		if _, _, err := mgr.Get(ctx, perfKey("get", counter)); err != nil {
			log.Printf("(get) - error getting key: %v\n", err)
		}
	}, func() {
		forEachKey("get", func(k string) {
			if err := mgr.Upsert(ctx, k, "test"); err != nil {
				log.Printf("(get) - error preparing key: %v\n", err)
			}
		})
	})

	runBenchmark("has", func(counter int) {
		if _, err := mgr.Has(ctx, perfKey("has", counter)); err != nil {
			log.Printf("(has) - error checking key: %v\n", err)
		}
	}, func() {
		forEachKey("has", func(k string) {
			if err := mgr.Upsert(ctx, k, "test"); err != nil {
				log.Printf("(has) - error preparing key: %v\n", err)
			}
		})
	})

	runBenchmark("has-not", func(counter int) {
		if _, err := mgr.Has(ctx, perfKey("has-not-missing", counter)); err != nil {
			log.Printf("(has-not) - error checking key: %v\n", err)
		}
	}, nil)

	runBenchmark("delete", func(counter int) {
		if _, err := mgr.Delete(ctx, perfKey("delete", counter)); err != nil {
			log.Printf("(delete) - error deleting key: %v\n", err)
		}
	}, func() {
		forEachKey("delete", func(k string) {
			if err := mgr.Upsert(ctx, k, "test"); err != nil {
				log.Printf("(delete) - error preparing key: %v\n", err)
			}
		})
	})

	runBenchmark("mixed", func(counter int) {
		key := perfKey("mixed", counter)
		var err error
		switch counter % 4 {
		case 0: // upsert
			err = mgr.Upsert(ctx, key, "test")
		case 1: // get
			_, _, err = mgr.Get(ctx, key)
		case 2: // delete
			_, err = mgr.Delete(ctx, key)
		case 3: // has
			_, err = mgr.Has(ctx, key)
		}
		if err != nil {
			log.Printf("(mixed) - error performing operation (%d): %v\n", counter%4, err)
		}
	}, nil)

	// cleanup all benchmark keys
	for _, test := range []string{"upsert", "get", "has", "delete", "mixed"} {
		forEachKey(test, func(k string) {
			_, _ = mgr.Delete(ctx, k)
		})
	}

	return nil
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

func shouldSkip(test string) bool {
	// Check if the test is in the skip list
	for _, skip := range perfSkip {
		if test == skip {
			return true
		}
	}
	return false
}

// perfKey returns one of perfKeySpread keys for the given test (with wraparound)
func perfKey(test string, i int) string {
	return fmt.Sprintf("%s-%s-%d", perfKeyPrefix, test, i%perfKeySpread)
}

// forEachKey applies fn to every key of the given test
func forEachKey(test string, fn func(string)) {
	for i := 0; i < perfKeySpread; i++ {
		fn(perfKey(test, i))
	}
}

// runBenchmark spreads perfNumOps calls of fn over perfNumThreads workers,
// records per-call latency in a timer and prints the result
func runBenchmark(test string, fn func(counter int), prepare func()) {
	if shouldSkip(test) {
		fmt.Printf("%-20sskipped\n", test)
		return
	}

	if prepare != nil {
		prepare()
	}

	timer := gometrics.NewTimer()

	var wg sync.WaitGroup
	opsPerThread := perfNumOps / perfNumThreads
	for t := 0; t < perfNumThreads; t++ {
		wg.Add(1)
		go func(offset int) {
			defer wg.Done()
			for i := 0; i < opsPerThread; i++ {
				counter := offset + i
				timer.Time(func() { fn(counter) })
			}
		}(t * opsPerThread)
	}
	wg.Wait()

	printResult(test, timer)
}

// printResult prints the result of a benchmark test in a formatted way
func printResult(test string, timer gometrics.Timer) {
	ps := timer.Percentiles([]float64{0.5, 0.95, 0.99})
	fmt.Printf("%-20smean=%-12s p50=%-12s p95=%-12s p99=%-12s %.0f ops/sec\n",
		test,
		time.Duration(timer.Mean()),
		time.Duration(ps[0]),
		time.Duration(ps[1]),
		time.Duration(ps[2]),
		timer.RateMean(),
	)
}
