package buildings

import "github.com/nicoberrocal/galaxyCore/ids"

// ProjectKind discriminates construction/repair project kinds (§3 Project).
type ProjectKind string

const (
	ProjectShip       ProjectKind = "ship"
	ProjectBuilding   ProjectKind = "building"
	ProjectIndustrial ProjectKind = "industrial"
	ProjectTerraform  ProjectKind = "terraform"
	ProjectRepair     ProjectKind = "repair"
)

// Project is a single construction or repair job assigned to a facility
// (§3 Project). Invariant: PPPaid ≤ PPTotal; on completion PPPaid==PPTotal
// and the project is removed with its effect applied (§4.F).
type Project struct {
	ID            uint32           `bson:"_id" json:"id"`
	Kind          ProjectKind      `bson:"kind" json:"kind"`
	ItemTag       string           `bson:"itemTag" json:"itemTag"` // e.g. ship class name, building name
	Colony        ids.ColonyID     `bson:"colony" json:"colony"`
	Facility      ids.FacilityID   `bson:"facility" json:"facility"`
	FacilityKind  ids.FacilityKind `bson:"facilityKind" json:"facilityKind"`
	Owner         ids.HouseID      `bson:"owner" json:"owner"`

	PPTotal int64 `bson:"ppTotal" json:"ppTotal"`
	PPPaid  int64 `bson:"ppPaid" json:"ppPaid"`

	EstimatedTurnsRemaining int `bson:"estimatedTurnsRemaining" json:"estimatedTurnsRemaining"`
}

// IsComplete reports whether the project has received its full PP cost.
func (p *Project) IsComplete() bool { return p.PPPaid >= p.PPTotal }

// Advance credits `pp` production points to the project, clamping at
// PPTotal, and reports whether it just completed.
func (p *Project) Advance(pp int64) (completed bool) {
	p.PPPaid += pp
	if p.PPPaid > p.PPTotal {
		p.PPPaid = p.PPTotal
	}
	if p.EstimatedTurnsRemaining > 0 {
		p.EstimatedTurnsRemaining--
	}
	return p.IsComplete()
}
