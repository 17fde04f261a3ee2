package sim

import "github.com/san-kum/attractors/internal/gesture"

// TransformOptions tunes the hand-driven framing.
type TransformOptions struct {
	Smoothing     float64 `yaml:"smoothing"`
	BiasGain      float64 `yaml:"bias_gain"`
	BiasSmoothing float64 `yaml:"bias_smoothing"`
	Decay         float64 `yaml:"decay"`
	AutoSpin      float64 `yaml:"auto_spin"`
}

func DefaultTransformOptions() TransformOptions {
	return TransformOptions{
		Smoothing:     0.08,
		BiasGain:      2.0,
		BiasSmoothing: 0.1,
		Decay:         0.92,
		AutoSpin:      0.15,
	}
}

// TransformState is the visual framing applied to the field each frame.
type TransformState struct {
	Scale float64
	BiasX float64
	BiasY float64
	RotX  float64
	RotY  float64
}

// Transform smooths hand metrics into scale and rotation. It never snaps:
// with a hand present it eases towards the hand, without one it relaxes back
// to scale 1 and no bias.
type Transform struct {
	opts  TransformOptions
	state TransformState
}

func NewTransform(opts TransformOptions) *Transform {
	return &Transform{opts: opts, state: TransformState{Scale: 1}}
}

func (t *Transform) State() TransformState { return t.state }

// TargetScale maps a hand scale in [0, 1] to a visual scale.
func TargetScale(handScale float64) float64 {
	return 0.6 + handScale*1.8
}

// Update advances the smoothing by one frame of dt seconds.
func (t *Transform) Update(m gesture.HandMetrics, dt float64) {
	s := &t.state
	if m.Present {
		s.Scale += (TargetScale(m.Scale) - s.Scale) * t.opts.Smoothing
		s.BiasX += ((m.CenterX-0.5)*t.opts.BiasGain - s.BiasX) * t.opts.BiasSmoothing
		s.BiasY += ((m.CenterY-0.5)*t.opts.BiasGain - s.BiasY) * t.opts.BiasSmoothing
	} else {
		s.Scale += (1 - s.Scale) * t.opts.Smoothing
		s.BiasX *= t.opts.Decay
		s.BiasY *= t.opts.Decay
	}
	s.RotY += (t.opts.AutoSpin + s.BiasX) * dt
	s.RotX += s.BiasY * dt
}
