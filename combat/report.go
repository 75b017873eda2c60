package combat

import "github.com/nicoberrocal/galaxyCore/ids"

// RoundRecord is one round's damage summary, grounded on the teacher's
// BattleRound (round number, per-side damage dealt, ships lost) but keyed
// by house rather than a fixed attacker/defender pair, since a system may
// host more than two hostile houses at once.
type RoundRecord struct {
	RoundNumber int                   `bson:"roundNumber" json:"roundNumber"`
	DamageDealt map[ids.HouseID]int64 `bson:"damageDealt" json:"damageDealt"`
}

// Report is the outcome of one system's combat resolution (§4.E), grounded
// on the teacher's BattleReport document (battle identity, round timeline,
// aggregate stats, outcome) generalized to N houses and targeting buckets.
type Report struct {
	System      ids.SystemID           `bson:"system" json:"system"`
	Turn        int                    `bson:"turn" json:"turn"`
	Houses      []ids.HouseID          `bson:"houses" json:"houses"`
	Rounds      []RoundRecord          `bson:"rounds" json:"rounds"`
	TotalRounds int                    `bson:"totalRounds" json:"totalRounds"`
	SquadronsLost map[ids.HouseID]int  `bson:"squadronsLost" json:"squadronsLost"`
	Retreated   []ids.HouseID          `bson:"retreated" json:"retreated"`
	Annihilated []ids.HouseID          `bson:"annihilated" json:"annihilated"`

	// Victor is the sole remaining combat-capable house, or 0 if all task
	// forces were annihilated/retreated (contested system, §4.E).
	Victor ids.HouseID `bson:"victor,omitempty" json:"victor,omitempty"`
	Contested bool      `bson:"contested" json:"contested"`
}
