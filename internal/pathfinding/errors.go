package pathfinding

import (
	"errors"
	"fmt"
)

// Configuration faults. They are reported when the pathfinder is configured,
// never from inside a search.
var (
	ErrInvalidMapSize   = errors.New("map size must be positive")
	ErrInvalidTileSize  = errors.New("tile size must be positive")
	ErrUnknownHeuristic = errors.New("unknown heuristic")
	ErrUnknownOrigin    = errors.New("unknown coordinate origin")
)

// OracleError reports a failure of the walkability oracle. The search stops
// at the first failure instead of guessing the tile's walkability.
type OracleError struct {
	Coord GridCoord
	Err   error
}

func (e *OracleError) Error() string {
	return fmt.Sprintf("walkability oracle failed at %s: %v", e.Coord, e.Err)
}

func (e *OracleError) Unwrap() error {
	return e.Err
}

// NoPathReason explains why a search ended without a path.
type NoPathReason int

const (
	// ReasonNone is used when a path was found.
	ReasonNone NoPathReason = iota
	// ReasonSameTile means start and target resolve to the same tile.
	ReasonSameTile
	// ReasonOutOfBounds means start or target lies outside the map.
	ReasonOutOfBounds
	// ReasonTargetBlocked means the oracle reports the target as not walkable.
	ReasonTargetBlocked
	// ReasonUnreachable means the open set ran dry before reaching the target.
	ReasonUnreachable
)

func (r NoPathReason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonSameTile:
		return "start and target are the same tile"
	case ReasonOutOfBounds:
		return "endpoint out of bounds"
	case ReasonTargetBlocked:
		return "target not walkable"
	case ReasonUnreachable:
		return "target unreachable"
	default:
		return fmt.Sprintf("NoPathReason(%d)", int(r))
	}
}
