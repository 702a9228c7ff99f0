package pathfinding

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeuristicDistance(t *testing.T) {
	a := GridCoord{Col: 1, Row: 2}
	b := GridCoord{Col: 4, Row: 6}

	assert.Equal(t, 70.0, Manhattan.Distance(a, b))
	assert.Equal(t, 50.0, Euclidean.Distance(a, b))
	assert.Equal(t, 40.0, Chebyshev.Distance(a, b))

	for _, h := range []Heuristic{Manhattan, Euclidean, Chebyshev} {
		assert.Zero(t, h.Distance(a, a), h.String())
		assert.Equal(t, h.Distance(a, b), h.Distance(b, a), "%s must be symmetric", h)
	}
	assert.InDelta(t, 10*math.Sqrt2, Euclidean.Distance(GridCoord{}, GridCoord{1, 1}), 1e-9)
}

func TestChebyshevNeverOverestimatesOctileCost(t *testing.T) {
	origin := GridCoord{}
	for dx := 0; dx < 12; dx++ {
		for dy := 0; dy < 12; dy++ {
			octile := StraightCost*max(dx, dy) + (DiagonalCost-StraightCost)*min(dx, dy)
			assert.LessOrEqual(t, Chebyshev.Distance(origin, GridCoord{dx, dy}), float64(octile))
		}
	}
}

func TestParseHeuristic(t *testing.T) {
	cases := map[string]Heuristic{
		"manhattan":  Manhattan,
		"Euclidean":  Euclidean,
		"euclidian":  Euclidean,
		" CHEBYSHEV": Chebyshev,
	}
	for in, want := range cases {
		got, err := ParseHeuristic(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseHeuristic("octile")
	assert.ErrorIs(t, err, ErrUnknownHeuristic)

	for _, h := range []Heuristic{Manhattan, Euclidean, Chebyshev} {
		parsed, err := ParseHeuristic(h.String())
		require.NoError(t, err)
		assert.Equal(t, h, parsed)
	}
	assert.Equal(t, "Heuristic(9)", Heuristic(9).String())
}

func TestHeuristicNextCycles(t *testing.T) {
	assert.Equal(t, Euclidean, Manhattan.Next())
	assert.Equal(t, Chebyshev, Euclidean.Next())
	assert.Equal(t, Manhattan, Chebyshev.Next())
}

func TestParseOrigin(t *testing.T) {
	for _, in := range []string{"bottom_left", "bottom-left", "BottomLeft", "bottom left"} {
		got, err := ParseOrigin(in)
		require.NoError(t, err, in)
		assert.Equal(t, OriginBottomLeft, got, in)
	}
	for _, in := range []string{"top_left", "TOP-LEFT", "topleft"} {
		got, err := ParseOrigin(in)
		require.NoError(t, err, in)
		assert.Equal(t, OriginTopLeft, got, in)
	}
	_, err := ParseOrigin("center")
	assert.ErrorIs(t, err, ErrUnknownOrigin)
}
