// Package bench times a TypedPool against the Go heap for bulk allocate and
// bulk free cycles over one element type.
package bench

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"text/tabwriter"
	"time"
	"unsafe"

	"github.com/goccy/go-json"
	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/pavanmanishd/blockpool"
)

// Vector is a 3-component direction.
type Vector struct {
	X, Y, Z float32
}

// Bullet is the element type both allocators are measured with.
type Bullet struct {
	Speed     float32
	Size      float32
	Direction Vector
}

// Summary aggregates per-round timings in milliseconds.
type Summary struct {
	Mean   float64 `json:"mean_ms"`
	Median float64 `json:"median_ms"`
	StdDev float64 `json:"stddev_ms"`
	Min    float64 `json:"min_ms"`
	Max    float64 `json:"max_ms"`
}

// Result holds the timings of one allocator.
type Result struct {
	Allocator  string  `json:"allocator"`
	Allocate   Summary `json:"allocate"`
	Deallocate Summary `json:"deallocate"`
}

// Report is the outcome of Run.
type Report struct {
	Element      string   `json:"element"`
	ElementSize  int      `json:"element_size"`
	ElementAlign int      `json:"element_align"`
	Count        int      `json:"count"`
	Rounds       int      `json:"rounds"`
	TotalMiB     float64  `json:"total_mib"`
	Results      []Result `json:"results"`
}

// phase collects the per-round timings of one allocator.
type phase struct {
	alloc, free []float64
}

// Run measures cfg.Rounds rounds of cfg.Count allocations followed by
// cfg.Count deallocations, first against a TypedPool[Bullet] and then against
// the heap. The heap's "deallocation" drops every reference and runs a
// collection, which is when Go actually reclaims the memory.
func Run(ctx context.Context, cfg Config, log logrus.FieldLogger) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var zero Bullet
	report := &Report{
		Element:      fmt.Sprintf("%T", zero),
		ElementSize:  int(unsafe.Sizeof(zero)),
		ElementAlign: int(unsafe.Alignof(zero)),
		Count:        cfg.Count,
		Rounds:       cfg.Rounds,
		TotalMiB:     float64(unsafe.Sizeof(zero)) * float64(cfg.Count) / (1024 * 1024),
	}
	log.WithFields(logrus.Fields{
		"element": report.Element,
		"size":    report.ElementSize,
		"align":   report.ElementAlign,
		"count":   cfg.Count,
		"rounds":  cfg.Rounds,
	}).Info("starting benchmark")

	pool, err := runPool(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	heap, err := runHeap(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	for _, r := range []struct {
		name string
		ph   *phase
	}{{"pool", pool}, {"heap", heap}} {
		res, err := summarize(r.name, r.ph)
		if err != nil {
			return nil, err
		}
		report.Results = append(report.Results, res)
	}
	return report, nil
}

func runPool(ctx context.Context, cfg Config, log logrus.FieldLogger) (*phase, error) {
	p, err := blockpool.NewTypedPool[Bullet](cfg.Count)
	if err != nil {
		return nil, errors.Wrap(err, "create pool")
	}
	defer func() {
		if err := p.Release(); err != nil {
			log.WithError(err).Warn("release pool")
		}
	}()

	ptrs := make([]*Bullet, cfg.Count)
	ph := &phase{}
	for round := 0; round < cfg.Rounds; round++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var exhausted bool
		ph.alloc = append(ph.alloc, elapsed(func() {
			for i := range ptrs {
				ptrs[i] = p.Allocate()
			}
			exhausted = ptrs[len(ptrs)-1] == nil
		}))
		if exhausted {
			return nil, errors.Errorf("pool exhausted before %d allocations", cfg.Count)
		}

		ph.free = append(ph.free, elapsed(func() {
			for _, b := range ptrs {
				p.Deallocate(b)
			}
		}))
		if n := p.NumAllocations(); n != 0 {
			return nil, errors.Errorf("round %d: %d slots still allocated", round, n)
		}

		log.WithFields(logrus.Fields{
			"allocator": "pool",
			"round":     round,
			"alloc_ms":  ph.alloc[round],
			"free_ms":   ph.free[round],
		}).Debug("round done")
	}
	return ph, nil
}

func runHeap(ctx context.Context, cfg Config, log logrus.FieldLogger) (*phase, error) {
	ptrs := make([]*Bullet, cfg.Count)
	ph := &phase{}
	for round := 0; round < cfg.Rounds; round++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		runtime.GC()

		ph.alloc = append(ph.alloc, elapsed(func() {
			for i := range ptrs {
				ptrs[i] = new(Bullet)
			}
		}))
		ph.free = append(ph.free, elapsed(func() {
			clear(ptrs)
			runtime.GC()
		}))

		log.WithFields(logrus.Fields{
			"allocator": "heap",
			"round":     round,
			"alloc_ms":  ph.alloc[round],
			"free_ms":   ph.free[round],
		}).Debug("round done")
	}
	return ph, nil
}

func summarize(name string, ph *phase) (Result, error) {
	alloc, err := summary(ph.alloc)
	if err != nil {
		return Result{}, errors.Wrapf(err, "summarize %s allocate", name)
	}
	free, err := summary(ph.free)
	if err != nil {
		return Result{}, errors.Wrapf(err, "summarize %s deallocate", name)
	}
	return Result{Allocator: name, Allocate: alloc, Deallocate: free}, nil
}

func summary(ms []float64) (Summary, error) {
	var (
		s   Summary
		err error
	)
	data := stats.Float64Data(ms)
	if s.Mean, err = stats.Mean(data); err != nil {
		return Summary{}, err
	}
	if s.Median, err = stats.Median(data); err != nil {
		return Summary{}, err
	}
	if s.StdDev, err = stats.StandardDeviation(data); err != nil {
		return Summary{}, err
	}
	if s.Min, err = stats.Min(data); err != nil {
		return Summary{}, err
	}
	if s.Max, err = stats.Max(data); err != nil {
		return Summary{}, err
	}
	return s, nil
}

// elapsed returns the wall time fn takes, in milliseconds.
func elapsed(fn func()) float64 {
	start := time.Now()
	fn()
	return float64(time.Since(start)) / float64(time.Millisecond)
}

// WriteText prints the report as an aligned table.
func (r *Report) WriteText(w io.Writer) error {
	fmt.Fprintf(w, "Object: %s\n", r.Element)
	fmt.Fprintf(w, "Object size: %d bytes\n", r.ElementSize)
	fmt.Fprintf(w, "Object alignment: %d bytes\n", r.ElementAlign)
	fmt.Fprintf(w, "Object number: %d\n", r.Count)
	fmt.Fprintf(w, "Total size: %.2f MiB\n", r.TotalMiB)
	fmt.Fprintf(w, "Rounds: %d\n\n", r.Rounds)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "allocator\tphase\tmean ms\tmedian ms\tstddev ms\tmin ms\tmax ms\t")
	for _, res := range r.Results {
		for _, row := range []struct {
			phase string
			s     Summary
		}{{"allocate", res.Allocate}, {"deallocate", res.Deallocate}} {
			fmt.Fprintf(tw, "%s\t%s\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\t\n",
				res.Allocator, row.phase, row.s.Mean, row.s.Median, row.s.StdDev, row.s.Min, row.s.Max)
		}
	}
	return tw.Flush()
}

// WriteJSON prints the report as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	b, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshal report")
	}
	b = append(b, '\n')
	_, err = w.Write(b)
	return err
}
