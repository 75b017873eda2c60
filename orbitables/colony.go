package orbitables

import "github.com/nicoberrocal/galaxyCore/ids"

// PlanetClass names a colony's habitability/production tier (§3).
type PlanetClass string

const (
	PlanetBenign   PlanetClass = "benign"
	PlanetHostile  PlanetClass = "hostile"
	PlanetBarren   PlanetClass = "barren"
	PlanetGasGiant PlanetClass = "gas_giant"
)

// ResourceRating names a colony's mineral/resource abundance tier.
type ResourceRating string

const (
	ResourcePoor     ResourceRating = "poor"
	ResourceAverage  ResourceRating = "average"
	ResourceAbundant ResourceRating = "abundant"
	ResourceRich     ResourceRating = "rich"
)

// ProjectRef points at a construction/repair project queued on a facility,
// kept on the colony as an ordered list per facility (§3 "construction
// queue (ordered list of project IDs per facility)").
type ProjectRef struct {
	FacilityID   ids.FacilityID   `bson:"facilityId" json:"facilityId"`
	FacilityKind ids.FacilityKind `bson:"facilityKind" json:"facilityKind"`
	ProjectID    uint32           `bson:"projectId" json:"projectId"`
}

// CapacityViolationKind distinguishes why a colony is over capacity.
// Tagged-variant per DESIGN NOTES ("Optional fields everywhere → Tagged
// variants where the variant carries the discriminator").
type CapacityViolationKind string

const (
	ViolationSquadronLimit  CapacityViolationKind = "squadron_limit"
	ViolationFighterCapacity CapacityViolationKind = "fighter_capacity"
)

// CapacityViolation is the colony's active over-capacity state, or absent.
type CapacityViolation struct {
	Kind          CapacityViolationKind `bson:"kind" json:"kind"`
	GraceRemaining int                  `bson:"graceRemaining" json:"graceRemaining"`
	ExcessCount    int                  `bson:"excessCount" json:"excessCount"`
}

// BlockadeState tracks whether a colony is currently blockaded (§4.F).
type BlockadeState struct {
	Blockaded      bool          `bson:"blockaded" json:"blockaded"`
	BlockadedBy    []ids.HouseID `bson:"blockadedBy" json:"blockadedBy"`
	ConsecutiveTurns int         `bson:"consecutiveTurns" json:"consecutiveTurns"`
}

// AutoSettings are per-colony automation toggles.
type AutoSettings struct {
	AutoAssignSquadrons bool `bson:"autoAssignSquadrons" json:"autoAssignSquadrons"`
}

// Colony is a colonized planet (§3 Colony). Population is tracked as exact
// souls; PopulationUnits and PTU are derived, never stored, so they can
// never drift out of sync with Souls (§8 invariant 3).
type Colony struct {
	ID       ids.ColonyID `bson:"_id" json:"id"`
	System   ids.SystemID `bson:"system" json:"system"`
	Owner    ids.HouseID  `bson:"owner" json:"owner"` // 0 = neutral

	Souls uint64 `bson:"souls" json:"souls"`

	Infrastructure        int     `bson:"infrastructure" json:"infrastructure"` // 0-10
	InfrastructureDamage  float64 `bson:"infrastructureDamage" json:"infrastructureDamage"` // [0,1]
	IndustrialUnits       int64   `bson:"industrialUnits" json:"industrialUnits"`

	PlanetClass    PlanetClass    `bson:"planetClass" json:"planetClass"`
	ResourceRating ResourceRating `bson:"resourceRating" json:"resourceRating"`

	ConstructionQueue []ProjectRef `bson:"constructionQueue" json:"constructionQueue"`
	RepairQueue       []ProjectRef `bson:"repairQueue" json:"repairQueue"`

	// TerraformProject, if set, is the ID of the single active terraforming
	// project on this colony (only one may run at a time).
	TerraformProject *uint32 `bson:"terraformProject,omitempty" json:"terraformProject,omitempty"`

	TaxRate int `bson:"taxRate" json:"taxRate"` // 0-100

	Spaceports          []ids.FacilityID  `bson:"spaceports" json:"spaceports"`
	Shipyards           []ids.FacilityID  `bson:"shipyards" json:"shipyards"`
	Drydocks            []ids.FacilityID  `bson:"drydocks" json:"drydocks"`
	Starbases           []ids.FacilityID  `bson:"starbases" json:"starbases"`
	UnassignedSquadrons []ids.SquadronID  `bson:"unassignedSquadrons" json:"unassignedSquadrons"`
	GroundUnits         []ids.GroundUnitID `bson:"groundUnits" json:"groundUnits"`

	Blockade          BlockadeState      `bson:"blockade" json:"blockade"`
	CapacityViolation *CapacityViolation `bson:"capacityViolation,omitempty" json:"capacityViolation,omitempty"`

	Auto AutoSettings `bson:"auto" json:"auto"`
}

// PopulationUnits derives PU = souls / 1,000,000 (§3, GLOSSARY).
func (c *Colony) PopulationUnits() int64 {
	return int64(c.Souls / 1_000_000)
}

// PTU derives Population Transfer Units = souls / 50,000 (§3, GLOSSARY).
func (c *Colony) PTU() int64 {
	return int64(c.Souls / 50_000)
}

// IsFunctional reports whether the colony has at least 1 PTU; a colony
// below that threshold cannot accept inbound transfers or host
// construction (§3 invariant).
func (c *Colony) IsFunctional() bool {
	return c.PTU() >= 1
}

// IsNeutral reports whether the colony currently has no owning house.
func (c *Colony) IsNeutral() bool { return c.Owner == ids.HouseID(ids.None) }
