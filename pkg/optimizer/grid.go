package optimizer

import (
	"github.com/peter-kozarec/replay/pkg/utility/fixed"
)

// Parameter is one named axis of the sweep, either an inclusive
// start/end/step range or an explicit value list.
type Parameter struct {
	Name  string
	Start fixed.Point
	End   fixed.Point
	Step  fixed.Point

	// Values overrides the range when non-empty.
	Values []fixed.Point
}

// expand lists the axis values in sweep order. A range with a
// non-positive step degenerates to its start value.
func (p Parameter) expand() []fixed.Point {
	if len(p.Values) > 0 {
		return p.Values
	}
	if !p.Step.IsPos() {
		return []fixed.Point{p.Start}
	}
	var values []fixed.Point
	for v := p.Start; v.Lte(p.End); v = v.Add(p.Step) {
		values = append(values, v)
	}
	return values
}

// ParamSet is one grid point, a value per parameter name.
type ParamSet map[string]fixed.Point

// Grid is the ordered cartesian product of its parameters. Parameters vary
// slowest in the order they were added.
type Grid struct {
	parameters []Parameter
}

func NewGrid() *Grid { return &Grid{} }

func (g *Grid) AddRange(name string, start, end, step fixed.Point) *Grid {
	g.parameters = append(g.parameters, Parameter{Name: name, Start: start, End: end, Step: step})
	return g
}

func (g *Grid) AddValues(name string, values ...fixed.Point) *Grid {
	g.parameters = append(g.parameters, Parameter{Name: name, Values: values})
	return g
}

// Combinations materializes every grid point in deterministic order.
func (g *Grid) Combinations() []ParamSet {
	combos := []ParamSet{{}}
	for _, p := range g.parameters {
		values := p.expand()
		next := make([]ParamSet, 0, len(combos)*len(values))
		for _, combo := range combos {
			for _, v := range values {
				point := make(ParamSet, len(combo)+1)
				for k, pv := range combo {
					point[k] = pv
				}
				point[p.Name] = v
				next = append(next, point)
			}
		}
		combos = next
	}
	return combos
}
