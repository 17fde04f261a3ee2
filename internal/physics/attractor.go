package physics

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/attractors/internal/dynamo"
)

// Kind tags the closed set of supported systems.
type Kind int

const (
	KindLorenz Kind = iota
	KindAizawa
	KindThomas
	KindHalvorsen
	KindRossler
)

// KindNone is reported by an Attractor without params.
const KindNone Kind = -1

func (k Kind) String() string {
	switch k {
	case KindLorenz:
		return "lorenz"
	case KindAizawa:
		return "aizawa"
	case KindThomas:
		return "thomas"
	case KindHalvorsen:
		return "halvorsen"
	case KindRossler:
		return "rossler"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Params is implemented only by the parameter records in this package; the
// unexported method keeps the set closed.
type Params interface {
	Kind() Kind
	GetParams() map[string]float64
	// with returns a copy with the named parameter replaced, or false if the
	// record has no such parameter.
	with(name string, v float64) (Params, bool)
}

// Attractor is the immutable definition of one system.
type Attractor struct {
	Name    string
	Params  Params
	Step    float64
	Initial r3.Vec
	Palette []string
}

var _ dynamo.System = Attractor{}

// Kind returns the tag of the attractor's params.
func (a Attractor) Kind() Kind {
	if a.Params == nil {
		return KindNone
	}
	return a.Params.Kind()
}

// WithParam returns a copy of a with one parameter replaced. Names are the
// keys of GetParams, matched case-insensitively.
func (a Attractor) WithParam(name string, v float64) (Attractor, error) {
	if a.Params == nil {
		return a, fmt.Errorf("%w: attractor %q has no params", dynamo.ErrInvalidConfig, a.Name)
	}
	p, ok := a.Params.with(strings.ToLower(name), v)
	if !ok {
		return a, &dynamo.ConfigError{Field: "param", Reason: fmt.Sprintf("%s has no parameter %q", a.Name, name)}
	}
	a.Params = p
	return a, nil
}

// Derive returns the instantaneous rate of change at s. An attractor without
// params is a fixed point.
func (a Attractor) Derive(s r3.Vec) r3.Vec {
	switch p := a.Params.(type) {
	case Lorenz:
		return p.derive(s)
	case Aizawa:
		return p.derive(s)
	case Thomas:
		return p.derive(s)
	case Halvorsen:
		return p.derive(s)
	case Rossler:
		return p.derive(s)
	}
	return r3.Vec{}
}

// Catalog returns the full table in its fixed cyclic order.
func Catalog() []Attractor {
	return []Attractor{
		{
			Name:    "Lorenz",
			Params:  NewLorenz(),
			Step:    0.005,
			Initial: r3.Vec{X: 0.1},
			Palette: []string{"#ff6b6b", "#feca57", "#ff9ff3", "#ffffff"},
		},
		{
			Name:    "Aizawa",
			Params:  NewAizawa(),
			Step:    0.01,
			Initial: r3.Vec{X: 0.1},
			Palette: []string{"#48dbfb", "#0abde3", "#c8d6e5", "#5f27cd"},
		},
		{
			Name:    "Thomas",
			Params:  NewThomas(),
			Step:    0.05,
			Initial: r3.Vec{X: 0.1},
			Palette: []string{"#1dd1a1", "#10ac84", "#feca57", "#c8ffe0"},
		},
		{
			Name:    "Halvorsen",
			Params:  NewHalvorsen(),
			Step:    0.005,
			Initial: r3.Vec{X: -1.48, Y: -1.51, Z: 2.04},
			Palette: []string{"#ff9f43", "#ee5253", "#ffd6a5", "#f368e0"},
		},
		{
			Name:    "Rossler",
			Params:  NewRossler(),
			Step:    0.02,
			Initial: r3.Vec{X: 0.1},
			Palette: []string{"#a29bfe", "#6c5ce7", "#81ecec", "#dfe6e9"},
		},
	}
}

// Classic returns the first three entries of the catalog.
func Classic() []Attractor {
	return Catalog()[:3]
}

// Lookup finds an attractor by case-insensitive name.
func Lookup(name string) (Attractor, error) {
	for _, a := range Catalog() {
		if strings.EqualFold(a.Name, name) || strings.EqualFold(a.Kind().String(), name) {
			return a, nil
		}
	}
	return Attractor{}, fmt.Errorf("%w: %q", dynamo.ErrUnknownAttractor, name)
}

// Select resolves names in order. An empty list selects the whole catalog.
func Select(names []string) ([]Attractor, error) {
	if len(names) == 0 {
		return Catalog(), nil
	}
	out := make([]Attractor, 0, len(names))
	for _, n := range names {
		a, err := Lookup(n)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

// Names lists the kind names of the catalog in order.
func Names() []string {
	cat := Catalog()
	names := make([]string, len(cat))
	for i, a := range cat {
		names[i] = a.Kind().String()
	}
	return names
}
