// Package presets registers the built-in scenarios. Import it for its side
// effects.
package presets

import "github.com/vovakirdan/tui-ecosim/internal/registry"

// DefaultID is the preset used when no scenario source is given.
const DefaultID = "lone-pair"

func init() {
	// A prey circling the top row and a predator circling the left column of
	// a 4x4 torus; neither ever turns.
	registry.RegisterText(DefaultID, "Lone pair (4x4, 20 steps)",
		"4 4 20\n1 1\n0 0 1 100\n0 3 0 100\n")

	// Two prey and one predator on a 3x3 torus; the predator eats on step 1.
	registry.RegisterText("triad", "Triad (3x3, 5 steps)",
		"3 3 5\n2 1\n1 2 1 1\n1 1 0 2\n0 2 1 2\n")

	registry.RegisterText("meadow", "Meadow (8x6, 30 steps)", `8 6 30
6 2
0 0 1 3
2 1 2 2
5 1 3 4
7 3 0 1
3 4 1 5
6 5 0 2
4 2 3 3
1 5 1 2
`)
}
