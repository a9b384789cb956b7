package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/seakeeping-advisor/internal/domain"
	"github.com/couchcryptid/seakeeping-advisor/internal/observability"
)

// Extractor reads one raw sensor reading from the feed, blocking until a
// message arrives or the context is cancelled.
type Extractor interface {
	Extract(ctx context.Context) (domain.RawReading, error)
}

// Assessor computes a full assessment from one input snapshot.
type Assessor interface {
	Assess(ctx context.Context, wave domain.WaveState, vessel domain.VesselState) (domain.Assessment, error)
}

// Loader publishes a completed assessment.
type Loader interface {
	Load(ctx context.Context, a domain.Assessment) error
}

// Pipeline couples the sensor feed to the spectral core with
// coalesce-to-latest semantics: every observation updates a guarded snapshot
// and nudges a capacity-1 signal channel, and the compute loop always works
// from the newest snapshot. Observations arriving faster than runs complete
// collapse into a single pending recompute; a finished run whose inputs were
// superseded mid-flight is discarded instead of published, since a stale
// assessment has no operational value.
type Pipeline struct {
	extractor Extractor
	assessor  Assessor
	loader    Loader
	logger    *slog.Logger
	metrics   *observability.Metrics

	mu     sync.Mutex
	wave   *domain.WaveState
	vessel *domain.VesselState
	gen    uint64

	signal chan struct{}

	last  atomic.Pointer[domain.Assessment]
	ready atomic.Bool
}

// New creates a Pipeline with the given stages and observability.
func New(e Extractor, a Assessor, l Loader, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		extractor: e,
		assessor:  a,
		loader:    l,
		logger:    logger,
		metrics:   metrics,
		signal:    make(chan struct{}, 1),
	}
}

// CheckReadiness returns nil once the pipeline has completed at least one
// assessment.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("pipeline has not completed an assessment yet")
	}
	return nil
}

// LastAssessment returns the most recent completed assessment, if any.
func (p *Pipeline) LastAssessment() (domain.Assessment, bool) {
	a := p.last.Load()
	if a == nil {
		return domain.Assessment{}, false
	}
	return *a, true
}

// Run executes the ingest and compute loops until the context is cancelled.
func (p *Pipeline) Run(ctx context.Context) error {
	p.logger.Info("pipeline started")
	p.metrics.PipelineRunning.Set(1)
	defer p.metrics.PipelineRunning.Set(0)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		p.ingestLoop(ctx)
	}()

	p.computeLoop(ctx)
	wg.Wait()

	p.logger.Info("pipeline stopping", "reason", ctx.Err())
	return nil
}

// Exponential backoff for feed errors: start at 200ms, double each retry,
// cap at 5s. Keeps retry storms short without tight-looping during outages.
const (
	initialBackoff = 200 * time.Millisecond
	maxBackoff     = 5 * time.Second
)

// ingestLoop pulls readings off the feed, validates them, and folds them into
// the latest-state snapshot.
func (p *Pipeline) ingestLoop(ctx context.Context) {
	backoff := initialBackoff

	for {
		if ctx.Err() != nil {
			return
		}

		raw, err := p.extractor.Extract(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			p.logger.Error("extract failed", "error", err)
			if !sleepWithContext(ctx, backoff) {
				return
			}
			backoff = nextBackoff(backoff, maxBackoff)
			continue
		}
		backoff = initialBackoff
		p.metrics.ObservationsConsumed.Inc()

		obs, err := domain.ParseObservation(raw.Value, raw.Timestamp)
		if err != nil {
			p.logger.Warn("observation rejected",
				"error", err,
				"topic", raw.Topic,
				"partition", raw.Partition,
				"offset", raw.Offset,
			)
			p.metrics.ObservationErrors.Inc()
			p.commitOffset(ctx, raw)
			continue
		}

		p.applyObservation(obs)
		p.commitOffset(ctx, raw)
	}
}

// applyObservation folds a reading into the snapshot and requests a
// recompute. The capacity-1 channel coalesces bursts: a pending signal
// already covers the state just written.
func (p *Pipeline) applyObservation(obs domain.Observation) {
	p.mu.Lock()
	if obs.Wave != nil {
		p.wave = obs.Wave
	}
	if obs.Vessel != nil {
		p.vessel = obs.Vessel
	}
	p.gen++
	p.mu.Unlock()

	select {
	case p.signal <- struct{}{}:
	default:
	}
}

// computeLoop waits for recompute signals, runs an assessment from the newest
// snapshot, and publishes it unless newer input arrived mid-run.
func (p *Pipeline) computeLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-p.signal:
		}

		wave, vessel, gen, ok := p.snapshot()
		if !ok {
			// Still waiting for the first reading of the other kind.
			continue
		}

		start := time.Now()
		assessment, err := p.assessor.Assess(ctx, wave, vessel)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			p.logger.Warn("assessment failed, keeping last good result", "error", err)
			p.metrics.RunErrors.Inc()
			continue
		}

		if p.currentGen() != gen {
			// Superseded: the pending signal triggers a fresh run with the
			// newer inputs.
			p.metrics.RunsDiscarded.Inc()
			continue
		}

		p.metrics.RunDuration.Observe(time.Since(start).Seconds())
		p.publish(ctx, assessment)
	}
}

func (p *Pipeline) publish(ctx context.Context, assessment domain.Assessment) {
	if err := p.loader.Load(ctx, assessment); err != nil {
		if ctx.Err() == nil {
			p.logger.Error("publish assessment failed", "error", err)
			p.metrics.RunErrors.Inc()
		}
	} else {
		p.metrics.AssessmentsProduced.Inc()
	}

	// The local copy is retained even when the sink is down so the HTTP
	// layer keeps serving the freshest result.
	p.last.Store(&assessment)
	p.ready.Store(true)

	worst := assessment.WorstDose()
	p.logger.Info("assessment complete",
		"hs", assessment.Wave.Hs,
		"tp", assessment.Wave.Tp,
		"speed_bucket", assessment.SpeedBucket,
		"heading_bucket", assessment.HeadingBucket,
		"worst_msdv", worst.MSDV,
		"band", worst.Band,
		"fault_bins", assessment.FaultBins,
	)
}

func (p *Pipeline) snapshot() (domain.WaveState, domain.VesselState, uint64, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.wave == nil || p.vessel == nil {
		return domain.WaveState{}, domain.VesselState{}, p.gen, false
	}
	return *p.wave, *p.vessel, p.gen, true
}

func (p *Pipeline) currentGen() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.gen
}

// commitOffset commits the reading's offset if the feed supports it.
func (p *Pipeline) commitOffset(ctx context.Context, raw domain.RawReading) {
	if raw.Commit == nil {
		return
	}
	if err := raw.Commit(ctx); err != nil {
		p.logger.Warn("commit offset failed", "error", err,
			"topic", raw.Topic, "partition", raw.Partition, "offset", raw.Offset)
	}
}

func nextBackoff(current, ceiling time.Duration) time.Duration {
	next := current * 2
	if next > ceiling {
		return ceiling
	}
	return next
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
