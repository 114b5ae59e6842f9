package pagination

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/bep/debounce"
)

// DefaultMeasureTimeout bounds a single deferred measurement
const DefaultMeasureTimeout = 10 * time.Second

// Paginator owns the current PageSet of one document. Content changes are
// debounced: only the measurement scheduled after the last change in a
// burst runs. Results are applied by revision, so a slow measurement of an
// older snapshot can never replace a newer PageSet.
type Paginator struct {
	layout         Layout
	measurer       Measurer
	delay          time.Duration
	measureTimeout time.Duration
	onChange       func(*PageSet)
	schedule       func(func())

	current atomic.Pointer[PageSet]
	latest  atomic.Pointer[Snapshot]
}

// Option configures a Paginator
type Option func(*Paginator)

// WithDelay sets the quiescence delay between the last change and measuring
func WithDelay(d time.Duration) Option {
	return func(p *Paginator) { p.delay = d }
}

// WithMeasureTimeout bounds each measurement
func WithMeasureTimeout(d time.Duration) Option {
	return func(p *Paginator) { p.measureTimeout = d }
}

// WithOnChange registers a callback run after every PageSet replacement
func WithOnChange(fn func(*PageSet)) Option {
	return func(p *Paginator) { p.onChange = fn }
}

// NewPaginator validates the layout and starts with a single empty page
func NewPaginator(layout Layout, measurer Measurer, opts ...Option) (*Paginator, error) {
	if layout.IsZero() || layout.ContentHeight() <= 0 {
		return nil, &ConfigurationError{Field: "contentHeight", Value: layout.ContentHeight(), Reason: "must be positive"}
	}
	if measurer == nil {
		return nil, errors.New("paginator requires a measurer")
	}

	p := &Paginator{
		layout:         layout,
		measurer:       measurer,
		delay:          100 * time.Millisecond,
		measureTimeout: DefaultMeasureTimeout,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.schedule = debounce.New(p.delay)
	p.current.Store(InitialPageSet(layout))
	return p, nil
}

// Layout returns the page geometry
func (p *Paginator) Layout() Layout {
	return p.layout
}

// Current returns the latest complete PageSet
func (p *Paginator) Current() *PageSet {
	return p.current.Load()
}

// Latest returns the most recent snapshot notified, or nil
func (p *Paginator) Latest() *Snapshot {
	return p.latest.Load()
}

// Notify records a content change and (re)schedules measurement after the
// quiescence delay. Snapshots older than the latest one are ignored.
func (p *Paginator) Notify(s Snapshot) {
	snap := s
	for {
		prev := p.latest.Load()
		if prev != nil && prev.Revision >= snap.Revision {
			return
		}
		if p.latest.CompareAndSwap(prev, &snap) {
			break
		}
	}
	p.schedule(p.measureLatest)
}

// measureLatest is the debounced callback
func (p *Paginator) measureLatest() {
	ctx, cancel := context.WithTimeout(context.Background(), p.measureTimeout)
	defer cancel()

	if _, err := p.Flush(ctx); err != nil && !errors.Is(err, ErrSurfaceNotReady) {
		log.Printf("[WARNING] Pagination measurement failed: %v", err)
	}
}

// Flush measures the latest snapshot now, without waiting for the
// debounce, and returns the resulting current PageSet.
func (p *Paginator) Flush(ctx context.Context) (*PageSet, error) {
	snap := p.latest.Load()
	if snap == nil {
		return p.Current(), ErrSurfaceNotReady
	}

	m, err := p.measurer.Measure(ctx, snap.Content)
	if err != nil {
		return p.Current(), err
	}
	if _, err := p.Apply(snap.Revision, m); err != nil {
		return p.Current(), err
	}
	return p.Current(), nil
}

// Apply recomputes the PageSet for a measured revision and swaps it in
// atomically. It reports false when the PageSet in place is for a newer
// revision, or for the same revision from an equal or better source.
func (p *Paginator) Apply(revision uint64, m Measurement) (bool, error) {
	if err := m.Validate(); err != nil {
		return false, fmt.Errorf("invalid measurement: %w", err)
	}
	next, err := NewPageSet(revision, m, p.layout)
	if err != nil {
		return false, err
	}

	for {
		cur := p.current.Load()
		if !next.Supersedes(cur) {
			return false, nil
		}
		if p.current.CompareAndSwap(cur, next) {
			if cur.Count != next.Count {
				log.Printf("[INFO] Page count changed: %d -> %d (revision %d, %s)", cur.Count, next.Count, revision, m.Source)
			}
			if p.onChange != nil {
				p.onChange(next)
			}
			return true, nil
		}
	}
}
