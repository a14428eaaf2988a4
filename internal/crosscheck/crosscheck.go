// Package crosscheck runs randomized properties of the bignum engine
// against math/big.
//
// Each property runs in its own goroutine with its own seeded source, so a
// report is reproducible from Config.Seed regardless of scheduling.
package crosscheck

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"runtime"
	"slices"
	"time"

	"fortio.org/safecast"
	"golang.org/x/sync/errgroup"

	"bigword/internal/trace"
)

// Config selects what to run and how hard.
type Config struct {
	Seed       uint64
	Iterations int      // cases per property
	MaxWords   int      // largest operand, in words
	Jobs       int      // concurrent properties; <= 0 means GOMAXPROCS
	Primes     []uint32 // moduli for the checksum property
	Only       []string // property names; empty runs all
}

// Status captures progress of one property.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusDone    Status = "done"
	StatusError   Status = "error"
)

// Event reports progress for a property.
type Event struct {
	Property string
	Status   Status
	Cases    int
	Err      error
	Elapsed  time.Duration
}

// Sink consumes progress events. Implementations must be safe for
// concurrent use.
type Sink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Event)

func (f SinkFunc) OnEvent(evt Event) { f(evt) }

// Result is the outcome of one property.
type Result struct {
	Property string
	Cases    int
	Err      error // first failing case, nil on success
	Elapsed  time.Duration
}

// Report is the outcome of a run, in property order.
type Report struct {
	Seed    uint64
	Results []Result
}

// Failed returns the results that found a counterexample.
func (r Report) Failed() []Result {
	var out []Result
	for _, res := range r.Results {
		if res.Err != nil {
			out = append(out, res)
		}
	}
	return out
}

// Err joins every property failure, or returns nil.
func (r Report) Err() error {
	var errs []error
	for _, res := range r.Failed() {
		errs = append(errs, fmt.Errorf("%s: %w", res.Property, res.Err))
	}
	return errors.Join(errs...)
}

// ErrUnknownProperty is returned when Config.Only names no known property.
var ErrUnknownProperty = errors.New("crosscheck: unknown property")

// Names lists every property in run order.
func Names() []string {
	names := make([]string, len(properties))
	for i, p := range properties {
		names[i] = p.name
	}
	return names
}

func selectProperties(only []string) ([]property, error) {
	if len(only) == 0 {
		return properties, nil
	}
	var out []property
	for _, name := range only {
		idx := slices.IndexFunc(properties, func(p property) bool { return p.name == name })
		if idx < 0 {
			return nil, fmt.Errorf("%w: %q", ErrUnknownProperty, name)
		}
		out = append(out, properties[idx])
	}
	return out, nil
}

// Run executes the selected properties. Property failures are reported in
// the Report, not as the returned error; the error is reserved for invalid
// configuration and cancellation.
func Run(ctx context.Context, cfg Config, sink Sink) (Report, error) {
	if cfg.Iterations <= 0 {
		return Report{}, fmt.Errorf("crosscheck: iterations must be positive, got %d", cfg.Iterations)
	}
	if cfg.MaxWords <= 0 {
		return Report{}, fmt.Errorf("crosscheck: max words must be positive, got %d", cfg.MaxWords)
	}
	props, err := selectProperties(cfg.Only)
	if err != nil {
		return Report{}, err
	}
	if sink == nil {
		sink = SinkFunc(func(Event) {})
	}
	jobs := cfg.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	tracer := trace.FromContext(ctx)
	runSpan := trace.Begin(tracer, trace.ScopeStage, "crosscheck", trace.ParentID(ctx)).
		WithExtra("seed", fmt.Sprint(cfg.Seed)).
		WithExtra("properties", fmt.Sprint(len(props)))
	defer runSpan.End("")

	for _, p := range props {
		sink.OnEvent(Event{Property: p.name, Status: StatusQueued})
	}

	// Each goroutine writes only its own index.
	results := make([]Result, len(props))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(props)))
	for i, p := range props {
		g.Go(func() error {
			stream, err := safecast.Conv[uint64](i)
			if err != nil {
				return err
			}
			results[i] = runProperty(gctx, tracer, runSpan.ID(), p, cfg, stream, sink)
			return gctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return Report{Seed: cfg.Seed, Results: results}, err
	}
	return Report{Seed: cfg.Seed, Results: results}, nil
}

func runProperty(ctx context.Context, tracer trace.Tracer, parent uint64, p property, cfg Config, stream uint64, sink Sink) Result {
	span := trace.Begin(tracer, trace.ScopeItem, "property:"+p.name, parent)
	start := time.Now()
	sink.OnEvent(Event{Property: p.name, Status: StatusWorking})

	env := &env{
		rng:      rand.New(rand.NewPCG(cfg.Seed, stream)),
		maxWords: cfg.MaxWords,
		primes:   cfg.Primes,
	}
	res := Result{Property: p.name}
	for res.Cases < cfg.Iterations {
		if err := ctx.Err(); err != nil {
			res.Err = err
			break
		}
		res.Cases++
		if err := p.check(env); err != nil {
			res.Err = fmt.Errorf("case %d: %w", res.Cases, err)
			break
		}
	}
	res.Elapsed = time.Since(start)

	status := StatusDone
	detail := "ok"
	if res.Err != nil {
		status = StatusError
		detail = res.Err.Error()
	}
	span.WithExtra("cases", fmt.Sprint(res.Cases)).End(detail)
	sink.OnEvent(Event{Property: p.name, Status: status, Cases: res.Cases, Err: res.Err, Elapsed: res.Elapsed})
	return res
}
