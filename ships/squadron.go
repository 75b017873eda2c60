package ships

import "github.com/nicoberrocal/galaxyCore/ids"

// SquadronType distinguishes combat squadrons from unarmed spacelift
// squadrons (§3 Squadron).
type SquadronType string

const (
	SquadronCombat    SquadronType = "combat"
	SquadronSpacelift SquadronType = "spacelift"
)

// Squadron is a flagship plus its non-flagship escorts (§3 Squadron).
// The command-cost limit (sum of ship command-costs ≤ flagship
// command-rating, §8.5) is not checked here or by the store's squadron
// mutators; nothing rejects a squadron that exceeds it.
type Squadron struct {
	ID       ids.SquadronID `bson:"_id" json:"id"`
	Owner    ids.HouseID    `bson:"owner" json:"owner"`
	Location ids.SystemID   `bson:"location" json:"location"`
	Type     SquadronType   `bson:"type" json:"type"`

	Flagship ids.ShipID   `bson:"flagship" json:"flagship"`
	Escorts  []ids.ShipID `bson:"escorts" json:"escorts"`
}

// AllShips returns the flagship followed by its escorts.
func (s *Squadron) AllShips() []ids.ShipID {
	out := make([]ids.ShipID, 0, len(s.Escorts)+1)
	out = append(out, s.Flagship)
	out = append(out, s.Escorts...)
	return out
}

// FleetMissionState is the fleet's current order-execution state (§3 Fleet).
type FleetMissionState string

const (
	MissionIdle      FleetMissionState = "idle"
	MissionMoving    FleetMissionState = "moving"
	MissionOnMission FleetMissionState = "on_mission"
	MissionReturning FleetMissionState = "returning"
)

// PersistentOrder is the standing order a fleet executes until cancelled or
// completed (move/patrol/seek-home/colonize/join-fleet, §4.D Command phase).
type OrderKind string

const (
	OrderMove     OrderKind = "move"
	OrderPatrol   OrderKind = "patrol"
	OrderSeekHome OrderKind = "seek_home"
	OrderColonize OrderKind = "colonize"
	OrderJoinFleet OrderKind = "join_fleet"
	OrderBombard  OrderKind = "bombard"
	OrderInvade   OrderKind = "invade"
)

type PersistentOrder struct {
	Kind     OrderKind    `bson:"kind" json:"kind"`
	Target   ids.SystemID `bson:"target,omitempty" json:"target,omitempty"`
	TargetFleet ids.FleetID `bson:"targetFleet,omitempty" json:"targetFleet,omitempty"`
	Priority int          `bson:"priority" json:"priority"` // ascending; ties broken by fleet id (§5)
}

// Fleet is an ordered collection of squadrons and spacelift ships at one
// location (§3 Fleet).
type Fleet struct {
	ID       ids.FleetID  `bson:"_id" json:"id"`
	Owner    ids.HouseID  `bson:"owner" json:"owner"`
	Location ids.SystemID `bson:"location" json:"location"`

	Squadrons []ids.SquadronID `bson:"squadrons" json:"squadrons"`

	Order   *PersistentOrder  `bson:"order,omitempty" json:"order,omitempty"`
	Mission FleetMissionState `bson:"mission" json:"mission"`

	ROE int `bson:"roe" json:"roe"` // 1-10, rules of engagement retreat threshold (§4.E)

	HomeworldDefender bool `bson:"homeworldDefender" json:"homeworldDefender"` // never retreats (§4.E)
}

// IsEmpty reports whether the fleet has no squadrons left; empty fleets are
// destroyed at the end of any phase that made them so (§3 invariant).
func (f *Fleet) IsEmpty() bool { return len(f.Squadrons) == 0 }
