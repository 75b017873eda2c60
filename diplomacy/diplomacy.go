// Package diplomacy implements the pact state machine (§4.J): proposal,
// response, break, and the dishonored/isolation timers that follow a
// broken pact. It is a leaf package operating directly on *players.House
// values fetched by the resolver from the store — it does not import
// store itself, matching the teacher's free-function-over-data-record
// idiom (§9 DESIGN NOTES).
//
// Grounded on the teacher's diplomacy.Relation/RelationDoc/MemoryProvider,
// generalized from the teacher's three-state (enemy/ally/ceasefire) timed
// relation into the spec's four-state {Neutral, NonAggression, Enemy,
// Allied} relation with explicit proposal/response instead of the
// teacher's auto-acceptance.
package diplomacy

import "github.com/nicoberrocal/galaxyCore/ids"

// Relation is the diplomatic state from one house's perspective toward
// another (§3 House "diplomatic relations (map to {Neutral,
// NonAggression, Enemy, Allied})"). Stored as int on players.House to
// avoid an import cycle.
type Relation int

const (
	Neutral Relation = iota
	NonAggression
	Enemy
	Allied
)

func (r Relation) String() string {
	switch r {
	case NonAggression:
		return "non_aggression"
	case Enemy:
		return "enemy"
	case Allied:
		return "allied"
	default:
		return "neutral"
	}
}

// RelationBetween returns house a's relation toward house b, defaulting to
// Neutral if unset.
func RelationBetween(relations map[ids.HouseID]int, b ids.HouseID) Relation {
	if v, ok := relations[b]; ok {
		return Relation(v)
	}
	return Neutral
}

// SetRelation records house a's relation toward house b.
func SetRelation(relations map[ids.HouseID]int, b ids.HouseID, r Relation) {
	if relations == nil {
		return
	}
	relations[b] = int(r)
}

// IsHostile reports whether two houses' mutual relation permits combat
// (§4.D Conflict phase: "pairwise diplomatic state is not Allied or
// NonAggression").
func IsHostile(aRelations map[ids.HouseID]int, bID ids.HouseID, bRelations map[ids.HouseID]int, aID ids.HouseID) bool {
	ra := RelationBetween(aRelations, bID)
	rb := RelationBetween(bRelations, aID)
	if ra == Allied || ra == NonAggression || rb == Allied || rb == NonAggression {
		return false
	}
	return true
}
