package scenario

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/vovakirdan/tui-ecosim/internal/core"
	"github.com/vovakirdan/tui-ecosim/internal/sim"
)

// ParseText reads a scenario in the compact numeric format:
//
//	width height steps
//	preyCount predatorCount
//	x y dir turn      (preyCount lines)
//	x y dir turn      (predatorCount lines)
//
// Line breaks are not significant; any whitespace separates fields.
// Directions are 0=Up, 1=Right, 2=Down, 3=Left.
func ParseText(r io.Reader) (Scenario, error) {
	tr := newTokenReader(r)

	var sc Scenario
	header := []struct {
		name string
		dst  *int
	}{
		{"width", &sc.Width},
		{"height", &sc.Height},
		{"steps", &sc.Steps},
	}
	for _, h := range header {
		v, err := tr.next(h.name)
		if err != nil {
			return Scenario{}, err
		}
		*h.dst = v
	}

	preyCount, err := tr.next("prey count")
	if err != nil {
		return Scenario{}, err
	}
	predCount, err := tr.next("predator count")
	if err != nil {
		return Scenario{}, err
	}
	if preyCount < 0 || predCount < 0 {
		return Scenario{}, fmt.Errorf("%w: negative population count", sim.ErrInvalidConfiguration)
	}

	groups := []struct {
		species sim.Species
		count   int
	}{
		{sim.SpeciesPrey, preyCount},
		{sim.SpeciesPredator, predCount},
	}
	for _, g := range groups {
		for i := 0; i < g.count; i++ {
			p, err := tr.placement(g.species, i+1)
			if err != nil {
				return Scenario{}, err
			}
			sc.Placements = append(sc.Placements, p)
		}
	}

	return sc, nil
}

// ParseString is ParseText over an in-memory literal.
func ParseString(s string) (Scenario, error) {
	return ParseText(strings.NewReader(s))
}

// tokenReader yields whitespace-separated integers and remembers how many it
// has consumed so errors can point at the offending field.
type tokenReader struct {
	sc  *bufio.Scanner
	pos int
}

func newTokenReader(r io.Reader) *tokenReader {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	return &tokenReader{sc: sc}
}

func (t *tokenReader) next(field string) (int, error) {
	if !t.sc.Scan() {
		if err := t.sc.Err(); err != nil {
			return 0, fmt.Errorf("reading %s: %w", field, err)
		}
		return 0, fmt.Errorf("reading %s: %w", field, io.ErrUnexpectedEOF)
	}
	t.pos++
	v, err := strconv.Atoi(t.sc.Text())
	if err != nil {
		return 0, fmt.Errorf("token %d (%s): %q is not an integer", t.pos, field, t.sc.Text())
	}
	return v, nil
}

func (t *tokenReader) placement(species sim.Species, n int) (Placement, error) {
	label := fmt.Sprintf("%s %d", species, n)

	var vals [4]int
	for i, name := range []string{"x", "y", "direction", "turn period"} {
		v, err := t.next(label + " " + name)
		if err != nil {
			return Placement{}, err
		}
		vals[i] = v
	}

	if vals[2] < 0 || vals[2] >= core.NumDirs {
		return Placement{}, fmt.Errorf("%w: %s direction %d not in 0..3", sim.ErrInvalidConfiguration, label, vals[2])
	}
	dir := core.Dir(vals[2])

	return Placement{
		Species: species,
		Pos:     core.C(vals[0], vals[1]),
		Dir:     dir,
		Turn:    vals[3],
	}, nil
}

// FormatText renders a scenario back into the compact numeric format.
func FormatText(s Scenario) string {
	var b strings.Builder
	prey, preds := s.Counts()
	fmt.Fprintf(&b, "%d %d %d\n%d %d\n", s.Width, s.Height, s.Steps, prey, preds)
	for _, species := range []sim.Species{sim.SpeciesPrey, sim.SpeciesPredator} {
		for _, p := range s.Placements {
			if p.Species == species {
				fmt.Fprintf(&b, "%d %d %d %d\n", p.Pos.X, p.Pos.Y, p.Dir, p.Turn)
			}
		}
	}
	return b.String()
}
