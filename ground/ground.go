// Package ground holds the GroundUnit entity (§3 ids, §4.E planetary
// defense): marines, armies, and ground batteries defending a colony.
package ground

import "github.com/nicoberrocal/galaxyCore/ids"

// Kind distinguishes the ground-unit archetypes a colony's defense and an
// invading squadron's cargo can carry.
type Kind string

const (
	KindMarines  Kind = "marines"
	KindArmy     Kind = "army"
	KindBattery  Kind = "battery" // planetary defense battery, stationary
)

// Unit is a single ground-unit stack (§3 GroundUnitId).
type Unit struct {
	ID      ids.GroundUnitID `bson:"_id" json:"id"`
	Owner   ids.HouseID      `bson:"owner" json:"owner"`
	Colony  ids.ColonyID     `bson:"colony" json:"colony"`
	Kind    Kind             `bson:"kind" json:"kind"`
	Strength int             `bson:"strength" json:"strength"`
}
