package gesture

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

var errNoFrames = errors.New("gesture: replay has no frames")

// Recording is the on-disk replay format.
type Recording struct {
	Name   string  `yaml:"name"`
	Frames []Frame `yaml:"frames"`
}

// LoadRecording reads a YAML recording.
func LoadRecording(path string) (*Recording, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var rec Recording
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &rec, nil
}

// SaveRecording writes rec as YAML.
func SaveRecording(path string, rec *Recording) error {
	data, err := yaml.Marshal(rec)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReplayDetector plays back recorded frames in a loop. A frame with Repeat n
// is returned n times before moving on.
type ReplayDetector struct {
	path   string
	frames []Frame
	idx    int
	held   int

	mu     sync.Mutex
	open   bool
	closed bool
}

// NewReplay plays frames held in memory.
func NewReplay(frames []Frame) *ReplayDetector {
	return &ReplayDetector{frames: frames}
}

// NewReplayFile loads frames from path when opened.
func NewReplayFile(path string) *ReplayDetector {
	return &ReplayDetector{path: path}
}

func (r *ReplayDetector) Open(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.path != "" && r.frames == nil {
		rec, err := LoadRecording(r.path)
		if err != nil {
			return err
		}
		r.frames = rec.Frames
	}
	if len(r.frames) == 0 {
		return errNoFrames
	}
	r.open = true
	r.closed = false
	return nil
}

func (r *ReplayDetector) Detect(ctx context.Context) (Frame, error) {
	if err := ctx.Err(); err != nil {
		return Frame{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.open {
		return Frame{}, errors.New("gesture: replay not open")
	}
	f := r.frames[r.idx]
	r.held++
	if r.held >= max(f.Repeat, 1) {
		r.held = 0
		r.idx = (r.idx + 1) % len(r.frames)
	}
	return f, nil
}

func (r *ReplayDetector) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.open = false
	r.closed = true
	return nil
}

// Closed reports whether Close has run since the last Open.
func (r *ReplayDetector) Closed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}
