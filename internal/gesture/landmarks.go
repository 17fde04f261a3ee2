package gesture

import "math"

// NumLandmarks is the size of one detected hand.
const NumLandmarks = 21

// Landmark indices of the 21-point hand model.
const (
	Wrist     = 0
	IndexPIP  = 6
	IndexTip  = 8
	MiddleMCP = 9
	MiddlePIP = 10
	MiddleTip = 12
	RingPIP   = 14
	RingTip   = 16
	PinkyPIP  = 18
	PinkyTip  = 20
)

// Palm sizes (wrist to middle MCP, image units) mapped to scale 0 and 1.
const (
	palmNear = 0.30
	palmFar  = 0.05
)

type Landmark struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// Hand is one detection in normalized image coordinates.
type Hand []Landmark

func (h Hand) Valid() bool { return len(h) == NumLandmarks }

// Frame is the result of one detection pass.
type Frame struct {
	Hands  []Hand `yaml:"hands"`
	Repeat int    `yaml:"repeat,omitempty"`
}

func (f Frame) primary() (Hand, bool) {
	for _, h := range f.Hands {
		if h.Valid() {
			return h, true
		}
	}
	return nil, false
}

func dist(a, b Landmark) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// MetricsFromHand derives presence, center and apparent size.
func MetricsFromHand(h Hand) HandMetrics {
	if !h.Valid() {
		return HandMetrics{}
	}
	var sx, sy float64
	for _, l := range h {
		sx += l.X
		sy += l.Y
	}
	n := float64(len(h))
	palm := dist(h[Wrist], h[MiddleMCP])
	return HandMetrics{
		Present: true,
		CenterX: clamp01(sx / n),
		CenterY: clamp01(sy / n),
		Scale:   clamp01((palm - palmFar) / (palmNear - palmFar)),
	}
}

// IsFist reports a closed hand: at least three of the four fingers have
// their tip nearer the wrist than their PIP joint.
func IsFist(h Hand) bool {
	if !h.Valid() {
		return false
	}
	fingers := [][2]int{{IndexTip, IndexPIP}, {MiddleTip, MiddlePIP}, {RingTip, RingPIP}, {PinkyTip, PinkyPIP}}
	curled := 0
	for _, f := range fingers {
		if dist(h[f[0]], h[Wrist]) < dist(h[f[1]], h[Wrist]) {
			curled++
		}
	}
	return curled >= 3
}
