package pathfinding

import (
	"fmt"
	"math"
	"strings"

	"tilepath/internal/mathutil"
)

// Movement costs. Heuristics are scaled by StraightCost so estimates and
// accumulated costs share one unit.
const (
	StraightCost = 10
	DiagonalCost = 14
)

// Heuristic selects the distance estimate from a tile to the target.
type Heuristic int

const (
	// Manhattan is 10*(|dx|+|dy|). Suited to 4-directional movement.
	Manhattan Heuristic = iota
	// Euclidean is 10*sqrt(dx²+dy²).
	Euclidean
	// Chebyshev is 10*max(|dx|,|dy|). Suited to 8-directional movement.
	Chebyshev
)

var heuristicNames = map[Heuristic]string{
	Manhattan: "manhattan",
	Euclidean: "euclidean",
	Chebyshev: "chebyshev",
}

// Distance estimates the cost of moving from a to b.
func (h Heuristic) Distance(a, b GridCoord) float64 {
	dx := mathutil.Abs(a.Col - b.Col)
	dy := mathutil.Abs(a.Row - b.Row)
	switch h {
	case Euclidean:
		return StraightCost * math.Sqrt(float64(dx*dx+dy*dy))
	case Chebyshev:
		return float64(StraightCost * max(dx, dy))
	default:
		return float64(StraightCost * (dx + dy))
	}
}

func (h Heuristic) valid() bool {
	_, ok := heuristicNames[h]
	return ok
}

func (h Heuristic) String() string {
	if name, ok := heuristicNames[h]; ok {
		return name
	}
	return fmt.Sprintf("Heuristic(%d)", int(h))
}

// Next cycles through the supported heuristics in declaration order.
func (h Heuristic) Next() Heuristic {
	return (h + 1) % Heuristic(len(heuristicNames))
}

// ParseHeuristic accepts the names produced by String, case-insensitively.
// "euclidian" is accepted as an alias.
func ParseHeuristic(s string) (Heuristic, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "euclidian" {
		return Euclidean, nil
	}
	for h, n := range heuristicNames {
		if n == name {
			return h, nil
		}
	}
	return Manhattan, fmt.Errorf("%w: %q", ErrUnknownHeuristic, s)
}
