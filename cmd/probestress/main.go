// Command probestress exercises a table with the classic ownership
// workload: every worker owns one key and loops insert, find own key
// (expect hit), find its complement (expect miss), remove own key (expect
// the stored value), find own key again (expect miss). Any mismatch
// aborts the run.
//
// With --collide every worker key reduces to slot 0, forcing all workers
// into one probe window; the run then requires --workers <= --tries.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/spf13/pflag"
	"github.com/sugawarayuuta/sonnet"
	"golang.org/x/sync/errgroup"

	"github.com/probetab/probetab"
	"github.com/probetab/probetab/internal/alloc"
	"github.com/probetab/probetab/internal/clock"
)

type runReport struct {
	Table     string                 `json:"table"`
	Bits      uint                   `json:"bits"`
	MaxTries  int                    `json:"max_tries"`
	Workers   int                    `json:"workers"`
	Duration  string                 `json:"duration"`
	Ops       uint64                 `json:"ops"`
	OpsPerSec float64                `json:"ops_per_sec"`
	Stats     probetab.StatsSnapshot `json:"stats"`
}

func main() {
	var (
		bits     = pflag.Uint("bits", 8, "log2 of the nominal table size")
		tries    = pflag.Int("tries", 4, "probe bound per operation")
		workers  = pflag.Int("workers", runtime.NumCPU(), "concurrent owner goroutines")
		duration = pflag.Duration("duration", 5*time.Second, "run length")
		collide  = pflag.Bool("collide", false, "make every worker key reduce to slot 0 (implies the identity mixer)")
		hashName = pflag.String("hash", "shift", "key mixer: shift, identity or xxhash")
		useMmap  = pflag.Bool("mmap", false, "back the table with anonymous mmap pages")
		jsonOut  = pflag.Bool("json", false, "emit the final report as JSON")
	)
	pflag.Parse()

	if *workers < 1 {
		log.Fatal("probestress: need at least one worker")
	}
	if *collide {
		// Colliding keys share one probe window; more owners than probe
		// tries would make insert exhaustion a certainty.
		if *workers > *tries {
			log.Fatalf("probestress: --collide requires --workers (%d) <= --tries (%d)",
				*workers, *tries)
		}
		if *bits+uint(*workers) > 31 {
			log.Fatalf("probestress: --collide key construction overflows with bits=%d workers=%d",
				*bits, *workers)
		}
		*hashName = "identity"
	}

	var hashFn probetab.HashFunc
	switch *hashName {
	case "shift":
		hashFn = probetab.Hash32Shift
	case "identity":
		hashFn = probetab.Identity
	case "xxhash":
		hashFn = probetab.XXHash
	default:
		log.Fatalf("probestress: unknown hash %q", *hashName)
	}

	opts := []probetab.Option[uint64]{
		probetab.WithHashFunc[uint64](hashFn),
		probetab.WithMaxTries[uint64](*tries),
	}
	if *useMmap {
		opts = append(opts, probetab.WithAllocator[uint64](alloc.Mmap{}))
	}

	table, err := probetab.New[uint64]("probestress", *bits, opts...)
	if err != nil {
		log.Fatalf("probestress: init table: %v", err)
	}
	defer table.Close()

	ops := make([]uint64, *workers)
	deadline := clock.NowNano() + duration.Nanoseconds()
	start := time.Now()

	g, ctx := errgroup.WithContext(context.Background())
	for w := 0; w < *workers; w++ {
		key := workerKey(w, *bits, *collide)
		counter := &ops[w]
		g.Go(func() error {
			for clock.NowNano() < deadline {
				if err := runCycle(table, key); err != nil {
					return err
				}
				*counter += 5
				if ctx.Err() != nil {
					return ctx.Err()
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatalf("probestress: %v", err)
	}
	elapsed := time.Since(start)

	var total uint64
	for _, n := range ops {
		total += n
	}

	if *jsonOut {
		out, err := sonnet.Marshal(runReport{
			Table:     table.Name(),
			Bits:      *bits,
			MaxTries:  table.MaxTries(),
			Workers:   *workers,
			Duration:  elapsed.String(),
			Ops:       total,
			OpsPerSec: float64(total) / elapsed.Seconds(),
			Stats:     table.Stats(),
		})
		if err != nil {
			log.Fatalf("probestress: marshal report: %v", err)
		}
		fmt.Println(string(out))
		return
	}

	fmt.Print(probetab.Report())
	fmt.Fprintf(os.Stdout, "\n%d workers, %d ops in %v (%.0f ops/sec)\n",
		*workers, total, elapsed.Round(time.Millisecond),
		float64(total)/elapsed.Seconds())
}

// workerKey picks worker w's key: unique small integers normally, or the
// power-of-two ladder 1<<(bits+w) that all reduces to slot 0 under the
// identity mixer when colliding.
func workerKey(w int, bits uint, collide bool) uint32 {
	if collide {
		return uint32(1) << (bits + uint(w))
	}
	return uint32(w + 1)
}

// runCycle is one ownership round for key. Every expectation it checks is
// guaranteed by the single-owner contract, so a mismatch means the table
// broke.
func runCycle(table *probetab.Table[uint64], key uint32) error {
	want := uint64(key)
	if err := table.Insert(key, want); err != nil {
		return fmt.Errorf("insert key %d: %w", key, err)
	}
	v, ok := table.Find(key)
	if !ok {
		return fmt.Errorf("find key %d: missing after insert", key)
	}
	if v != want {
		return fmt.Errorf("find key %d: got %d, want %d", key, v, want)
	}
	if v, ok := table.Find(^key); ok {
		return fmt.Errorf("find key %d: found never-inserted complement (value %d)", ^key, v)
	}
	v, ok = table.Remove(key)
	if !ok {
		return fmt.Errorf("remove key %d: missing", key)
	}
	if v != want {
		return fmt.Errorf("remove key %d: got %d, want %d", key, v, want)
	}
	if _, ok := table.Find(key); ok {
		return fmt.Errorf("find key %d: present after remove", key)
	}
	return nil
}
