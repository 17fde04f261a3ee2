package dynamo

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestDiverged(t *testing.T) {
	tests := []struct {
		name string
		v    r3.Vec
		want bool
	}{
		{"origin", r3.Vec{}, false},
		{"inside", r3.Vec{X: 10, Y: -20, Z: 30}, false},
		{"at limit", r3.Vec{X: 100}, false},
		{"over limit", r3.Vec{Z: -100.5}, true},
		{"nan", r3.Vec{Y: math.NaN()}, true},
		{"inf", r3.Vec{X: math.Inf(-1)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Diverged(tt.v, 100); got != tt.want {
				t.Errorf("Diverged(%v) = %v, want %v", tt.v, got, tt.want)
			}
		})
	}
}

func TestConfigErrorUnwrap(t *testing.T) {
	err := &ConfigError{Field: "particles", Reason: "must be positive"}
	if !errors.Is(err, ErrInvalidConfig) {
		t.Error("expected ConfigError to match ErrInvalidConfig")
	}
}
