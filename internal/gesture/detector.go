package gesture

import "context"

// Detector produces hand landmarks. Open acquires whatever the detector
// needs (camera, model session) and Close releases it. Close must be safe to
// call more than once and after a failed Open.
type Detector interface {
	Open(ctx context.Context) error
	Detect(ctx context.Context) (Frame, error)
	Close() error
}
