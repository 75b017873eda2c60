// Package buildings holds the Facility and Project entities (§3 Facility,
// Project; §4.F construction docks). Grounded on the teacher's
// buildings.BaseBuilding/Queue shape (Name+Level+Queue, a FIFO of pending
// work) generalized from OGame-style directional planet slots into the
// spec's per-colony facility list with dock-capacity accounting.
package buildings

import "github.com/nicoberrocal/galaxyCore/ids"

// Facility is a Spaceport, Shipyard, Drydock, Starbase, Kastra, or Neoria
// (§3 Facility). EffectiveDocks is pre-computed (0 if crippled) the way
// the teacher's BaseBuilding.Level drove a pre-computed production/output
// number rather than being recomputed from scratch on every read.
type Facility struct {
	ID              ids.FacilityID   `bson:"_id" json:"id"`
	Kind            ids.FacilityKind `bson:"kind" json:"kind"`
	Colony          ids.ColonyID     `bson:"colony" json:"colony"`
	CommissionedTurn int             `bson:"commissionedTurn" json:"commissionedTurn"`
	EffectiveDocks  int              `bson:"effectiveDocks" json:"effectiveDocks"`
	Crippled        bool             `bson:"crippled" json:"crippled"`

	// ActiveProjects holds the IDs of projects currently consuming a dock
	// slot; Queue holds FIFO-pending projects waiting for a slot (§3
	// invariant: activeProjects.len ≤ effectiveDocks; queued are FIFO).
	ActiveProjects []uint32 `bson:"activeProjects" json:"activeProjects"`
	Queue          []uint32 `bson:"queue" json:"queue"`
}

// BaseDocks returns the nominal (uncrippled) dock count for a facility
// kind, per §4.F ("Each spaceport has 5 effective docks; each shipyard 10;
// drydocks 10 (repair-only)").
func BaseDocks(kind ids.FacilityKind) int {
	switch kind {
	case ids.FacilitySpaceport:
		return 5
	case ids.FacilityShipyard, ids.FacilityDrydock:
		return 10
	default:
		return 0
	}
}

// RecomputeEffectiveDocks sets EffectiveDocks from the facility's crippled
// state and base dock count for its kind.
func (f *Facility) RecomputeEffectiveDocks() {
	if f.Crippled {
		f.EffectiveDocks = 0
		return
	}
	f.EffectiveDocks = BaseDocks(f.Kind)
}

// HasCapacity reports whether this facility can accept one more active
// project without violating the dock-capacity invariant.
func (f *Facility) HasCapacity() bool {
	return len(f.ActiveProjects) < f.EffectiveDocks
}

// IsRepairOnly reports whether this facility kind only services repair
// projects (drydocks, §3).
func (f *Facility) IsRepairOnly() bool { return f.Kind == ids.FacilityDrydock }
