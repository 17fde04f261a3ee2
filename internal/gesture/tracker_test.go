package gesture

import (
	"context"
	"errors"
	"io"
	"math"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/san-kum/attractors/internal/dynamo"
)

func quietLogger() *log.Logger { return log.New(io.Discard) }

type flakyDetector struct {
	openErr error
	frames  []Frame
	fail    atomic.Bool
	calls   atomic.Int32
	closes  atomic.Int32
}

func (d *flakyDetector) Open(context.Context) error { return d.openErr }

func (d *flakyDetector) Detect(context.Context) (Frame, error) {
	n := d.calls.Add(1)
	if d.fail.Load() {
		return Frame{}, errors.New("inference failed")
	}
	return d.frames[int(n-1)%len(d.frames)], nil
}

func (d *flakyDetector) Close() error {
	d.closes.Add(1)
	return nil
}

func TestTrackerObserveSmoothing(t *testing.T) {
	var c Cell
	tr := NewTracker(NewReplay(nil), &c, DefaultTrackerOptions(), quietLogger())

	tr.observe(Frame{Hands: []Hand{makeHand(0.2, 0.4, false)}})
	first := c.Load()
	if !first.Present {
		t.Fatal("expected hand present")
	}

	tr.observe(Frame{Hands: []Hand{makeHand(0.8, 0.4, false)}})
	second := c.Load()
	raw := MetricsFromHand(makeHand(0.8, 0.4, false))
	want := first.CenterX + (raw.CenterX-first.CenterX)*DefaultSmoothing
	if math.Abs(second.CenterX-want) > 1e-12 {
		t.Errorf("expected smoothed x %.4f, got %.4f", want, second.CenterX)
	}
	if tr.Status() != StatusTracking {
		t.Errorf("expected status %q, got %q", StatusTracking, tr.Status())
	}

	tr.observe(Frame{})
	if c.Load().Present {
		t.Error("empty frame should clear presence")
	}
	if tr.Status() != StatusNoHand {
		t.Errorf("expected status %q, got %q", StatusNoHand, tr.Status())
	}
}

func TestTrackerFistCooldown(t *testing.T) {
	var c Cell
	tr := NewTracker(NewReplay(nil), &c, DefaultTrackerOptions(), quietLogger())
	now := time.Unix(100, 0)
	tr.cooldown.now = func() time.Time { return now }

	fist := Frame{Hands: []Hand{makeHand(0.5, 0.5, true)}}
	for i := 0; i < 10; i++ {
		now = now.Add(50 * time.Millisecond)
		tr.observe(fist)
	}

	select {
	case <-tr.Cycles():
	default:
		t.Fatal("expected one cycle event")
	}
	select {
	case <-tr.Cycles():
		t.Fatal("held fist inside the cooldown produced a second event")
	default:
	}

	now = now.Add(time.Second)
	tr.observe(fist)
	select {
	case <-tr.Cycles():
	default:
		t.Error("expected a new event after the cooldown")
	}
}

func TestTrackerOpenFailure(t *testing.T) {
	var c Cell
	det := &flakyDetector{openErr: errors.New("camera permission denied")}
	tr := NewTracker(det, &c, DefaultTrackerOptions(), quietLogger())

	err := tr.Run(context.Background())
	if !errors.Is(err, dynamo.ErrGestureUnavailable) {
		t.Fatalf("expected ErrGestureUnavailable, got %v", err)
	}
	if det.closes.Load() != 1 {
		t.Errorf("expected detector closed once, got %d", det.closes.Load())
	}
	if c.Load().Present {
		t.Error("metrics should stay absent")
	}
	if tr.Status() == StatusWaiting || tr.Status() == StatusIdle {
		t.Errorf("status should report unavailability, got %q", tr.Status())
	}
}

func TestTrackerKeepsMetricsOnFailure(t *testing.T) {
	var c Cell
	det := &flakyDetector{frames: []Frame{{Hands: []Hand{makeHand(0.3, 0.3, false)}}}}
	tr := NewTracker(det, &c, TrackerOptions{Interval: time.Millisecond}, quietLogger())

	tr.poll(context.Background())
	before := c.Load()
	if !before.Present {
		t.Fatal("expected hand present after a good frame")
	}

	det.fail.Store(true)
	tr.poll(context.Background())
	tr.poll(context.Background())
	if got := c.Load(); got != before {
		t.Errorf("failed detection changed metrics: %+v -> %+v", before, got)
	}
}

func TestTrackerRunReleasesOnCancel(t *testing.T) {
	var c Cell
	det := &flakyDetector{frames: []Frame{{Hands: []Hand{makeHand(0.5, 0.5, false)}}}}
	tr := NewTracker(det, &c, TrackerOptions{Interval: time.Millisecond}, quietLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- tr.Run(ctx) }()

	deadline := time.After(2 * time.Second)
	for det.calls.Load() < 3 {
		select {
		case <-deadline:
			t.Fatal("tracker never polled")
		case <-time.After(time.Millisecond):
		}
	}
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("expected clean stop, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("tracker did not stop")
	}
	if det.closes.Load() != 1 {
		t.Errorf("expected one close, got %d", det.closes.Load())
	}
	if c.Load().Present {
		t.Error("metrics should be cleared after stop")
	}
}

func TestReplayRecordingRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wave.yaml")
	rec := &Recording{
		Name: "wave",
		Frames: []Frame{
			{Hands: []Hand{makeHand(0.4, 0.5, false)}, Repeat: 2},
			{},
			{Hands: []Hand{makeHand(0.6, 0.5, true)}},
		},
	}
	if err := SaveRecording(path, rec); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	det := NewReplayFile(path)
	ctx := context.Background()
	if err := det.Open(ctx); err != nil {
		t.Fatalf("open failed: %v", err)
	}

	var got []int
	for i := 0; i < 5; i++ {
		f, err := det.Detect(ctx)
		if err != nil {
			t.Fatalf("detect failed: %v", err)
		}
		got = append(got, len(f.Hands))
	}
	want := []int{1, 1, 0, 1, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("frame %d: expected %d hands, got %d", i, want[i], got[i])
		}
	}

	if err := det.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if err := det.Close(); err != nil {
		t.Errorf("second close should be a no-op, got %v", err)
	}
	if !det.Closed() {
		t.Error("expected detector closed")
	}
}

func TestReplayMissingFile(t *testing.T) {
	det := NewReplayFile(filepath.Join(t.TempDir(), "missing.yaml"))
	if err := det.Open(context.Background()); err == nil {
		t.Error("expected error for missing recording")
	}
	if err := NewReplay(nil).Open(context.Background()); err == nil {
		t.Error("expected error for empty replay")
	}
}
