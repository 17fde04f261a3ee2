package gesture

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/san-kum/attractors/internal/dynamo"
)

const (
	DefaultInterval  = 66 * time.Millisecond
	DefaultSmoothing = 0.35
)

const (
	StatusIdle        = "gesture idle"
	StatusWaiting     = "waiting for hand"
	StatusTracking    = "tracking hand"
	StatusNoHand      = "no hand detected"
	statusUnavailable = "gesture unavailable"
)

type TrackerOptions struct {
	Interval  time.Duration
	Smoothing float64
	Cooldown  time.Duration
}

func DefaultTrackerOptions() TrackerOptions {
	return TrackerOptions{
		Interval:  DefaultInterval,
		Smoothing: DefaultSmoothing,
		Cooldown:  DefaultCooldown,
	}
}

// Tracker runs the capture-and-infer cycle against a Detector and publishes
// smoothed metrics and fist events.
type Tracker struct {
	det      Detector
	cell     *Cell
	opts     TrackerOptions
	cooldown *Cooldown
	cycles   chan struct{}
	status   atomic.Value
	prev     HandMetrics
	log      *log.Logger
}

func NewTracker(det Detector, cell *Cell, opts TrackerOptions, logger *log.Logger) *Tracker {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.Smoothing <= 0 || opts.Smoothing > 1 {
		opts.Smoothing = DefaultSmoothing
	}
	if opts.Cooldown <= 0 {
		opts.Cooldown = DefaultCooldown
	}
	if logger == nil {
		logger = log.Default()
	}
	t := &Tracker{
		det:      det,
		cell:     cell,
		opts:     opts,
		cooldown: NewCooldown(opts.Cooldown),
		cycles:   make(chan struct{}, 1),
		log:      logger.WithPrefix("gesture"),
	}
	t.status.Store(StatusIdle)
	return t
}

// Cycles delivers one value per accepted fist.
func (t *Tracker) Cycles() <-chan struct{} { return t.cycles }

// Status is a short human readable state for overlays.
func (t *Tracker) Status() string { return t.status.Load().(string) }

// Run opens the detector and polls it until ctx is done. The detector is
// closed on every return path. An Open failure is wrapped in
// dynamo.ErrGestureUnavailable; callers are expected to log it and carry on.
func (t *Tracker) Run(ctx context.Context) (err error) {
	defer func() {
		if cerr := t.det.Close(); cerr != nil && err == nil {
			err = cerr
		}
		t.cell.Store(HandMetrics{})
	}()

	if oerr := t.det.Open(ctx); oerr != nil {
		t.status.Store(statusUnavailable + ": " + oerr.Error())
		t.log.Warn("detector failed to open", "err", oerr)
		return fmt.Errorf("%w: %v", dynamo.ErrGestureUnavailable, oerr)
	}
	t.status.Store(StatusWaiting)
	t.log.Info("tracking started", "interval", t.opts.Interval)

	ticker := time.NewTicker(t.opts.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			t.log.Info("tracking stopped")
			return nil
		case <-ticker.C:
			t.poll(ctx)
		}
	}
}

func (t *Tracker) poll(ctx context.Context) {
	frame, err := t.det.Detect(ctx)
	if err != nil {
		t.log.Debug("detection failed, keeping previous metrics", "err", err)
		return
	}
	t.observe(frame)
}

func (t *Tracker) observe(frame Frame) {
	hand, ok := frame.primary()
	if !ok {
		t.prev = HandMetrics{}
		t.cell.Store(t.prev)
		t.status.Store(StatusNoHand)
		return
	}

	m := MetricsFromHand(hand)
	if t.prev.Present {
		a := t.opts.Smoothing
		m.CenterX = t.prev.CenterX + (m.CenterX-t.prev.CenterX)*a
		m.CenterY = t.prev.CenterY + (m.CenterY-t.prev.CenterY)*a
		m.Scale = t.prev.Scale + (m.Scale-t.prev.Scale)*a
	}
	t.prev = m
	t.cell.Store(m)
	t.status.Store(StatusTracking)

	if IsFist(hand) && t.cooldown.Allow() {
		select {
		case t.cycles <- struct{}{}:
		default:
		}
	}
}
