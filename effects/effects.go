// Package effects holds the Ongoing-effect entity (§3) — espionage
// aftermath applied in Conflict, checked each Income, decremented each
// Maintenance.
package effects

import "github.com/nicoberrocal/galaxyCore/ids"

// Kind discriminates an ongoing effect's mechanical impact (§3).
type Kind string

const (
	KindSRPReduction       Kind = "srp_reduction"
	KindNCVReduction       Kind = "ncv_reduction"
	KindTaxReduction       Kind = "tax_reduction"
	KindStarbaseCrippled   Kind = "starbase_crippled"
)

// Effect is one active ongoing effect against a target house (§3 Ongoing effect).
type Effect struct {
	ID              uint32      `bson:"_id" json:"id"`
	Target          ids.HouseID `bson:"target" json:"target"`
	Kind            Kind        `bson:"kind" json:"kind"`
	Magnitude       float64     `bson:"magnitude" json:"magnitude"` // ratio in [0,1]
	RemainingTurns  int         `bson:"remainingTurns" json:"remainingTurns"`
	// TargetColony is set for colony-scoped effects (NCV/tax reduction,
	// starbase crippling); zero for house-wide effects (SRP reduction).
	TargetColony ids.ColonyID `bson:"targetColony,omitempty" json:"targetColony,omitempty"`
}

// Decrement advances the effect by one Maintenance phase; returns true if
// the effect has now expired and should be dropped.
func (e *Effect) Decrement() bool {
	e.RemainingTurns--
	return e.RemainingTurns <= 0
}
