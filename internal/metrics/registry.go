package metrics

import (
	"fmt"
	"sort"
	"strings"

	"github.com/san-kum/attractors/internal/sim"
)

var constructors = map[string]func() sim.Metric{
	"spread":      func() sim.Metric { return NewSpread() },
	"containment": func() sim.Metric { return NewContainment(1.0) },
	"reseed_rate": func() sim.Metric { return NewReseedRate() },
}

// New returns a fresh metric by name.
func New(name string) (sim.Metric, error) {
	ctor, ok := constructors[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown metric %q (have %s)", name, strings.Join(Names(), ", "))
	}
	return ctor(), nil
}

func Names() []string {
	names := make([]string, 0, len(constructors))
	for n := range constructors {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

var (
	_ sim.Metric = (*Spread)(nil)
	_ sim.Metric = (*Containment)(nil)
	_ sim.Metric = (*ReseedRate)(nil)
)
