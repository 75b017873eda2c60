// Package orbitables holds the star-map node and colony entities (§3
// System, Colony), grounded on the teacher's orbitables.System/Planet
// documents. The teacher modeled a single persistent-world system with an
// embedded DefendingFleet and directional building slots; here System is
// reduced to the pure star-map node the spec describes (coordinates, jump
// lanes) and Colony (colony.go) absorbs the economic/population state the
// teacher put on Planet, generalized to the spec's PU/PTU/infrastructure
// model.
package orbitables

import "github.com/nicoberrocal/galaxyCore/ids"

// LaneClass classifies a jump lane's traversal cost/risk tier (§3).
type LaneClass int

const (
	LaneMajor LaneClass = iota
	LaneMinor
	LaneRestricted
)

func (c LaneClass) String() string {
	switch c {
	case LaneMajor:
		return "major"
	case LaneMinor:
		return "minor"
	case LaneRestricted:
		return "restricted"
	default:
		return "unknown"
	}
}

// HexCoord is an axial hex coordinate (§3 "coordinates (hex axial q,r)").
type HexCoord struct {
	Q int32 `bson:"q" json:"q"`
	R int32 `bson:"r" json:"r"`
}

// Lane is one outgoing jump lane from a system.
type Lane struct {
	To    ids.SystemID `bson:"to" json:"to"`
	Class LaneClass    `bson:"class" json:"class"`
}

// System is a star-map node (§3 System).
type System struct {
	ID     ids.SystemID `bson:"_id" json:"id"`
	Coords HexCoord     `bson:"coords" json:"coords"`
	Lanes  []Lane       `bson:"lanes" json:"lanes"`
}

// LaneTo returns the lane to `dst` if one exists.
func (s *System) LaneTo(dst ids.SystemID) (Lane, bool) {
	for _, l := range s.Lanes {
		if l.To == dst {
			return l, true
		}
	}
	return Lane{}, false
}

// AddLane appends an outgoing lane, replacing any existing lane to the
// same destination. Callers are responsible for keeping the graph
// symmetric (§3 invariant: "if A→B exists, B→A exists with the same
// class") — see store.Store.AddSymmetricLane for the enforcing mutator.
func (s *System) AddLane(to ids.SystemID, class LaneClass) {
	for i, l := range s.Lanes {
		if l.To == to {
			s.Lanes[i].Class = class
			return
		}
	}
	s.Lanes = append(s.Lanes, Lane{To: to, Class: class})
}

// RemoveLane deletes the outgoing lane to `to`, if present.
func (s *System) RemoveLane(to ids.SystemID) {
	out := s.Lanes[:0]
	for _, l := range s.Lanes {
		if l.To != to {
			out = append(out, l)
		}
	}
	s.Lanes = out
}
