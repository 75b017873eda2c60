// Package players holds the House entity — the per-player strategic state
// tracked by the authoritative core (§3 House) — grounded on the teacher's
// players.Player / players.PlayerGameState documents, generalized from a
// single denormalized per-map record into the full house ledger the spec
// requires (treasury, tech tree, tax history, espionage budget, diplomacy
// counters).
package players

import (
	"github.com/nicoberrocal/galaxyCore/ids"
)

// TechTree holds a house's EL/SL levels and per-field tech levels (§3).
type TechTree struct {
	EL int `bson:"el" json:"el"` // Engineering Level
	SL int `bson:"sl" json:"sl"` // Science Level
	// Fields maps a research-field name (e.g. "weapons", "shields", "eli")
	// to its level; every field starts at 1 per §3.
	Fields map[string]int `bson:"fields" json:"fields"`
}

// TaxHistory is a fixed 6-turn rolling window of tax rates, oldest first.
type TaxHistory struct {
	Rates [6]int `bson:"rates" json:"rates"`
	Len   int    `bson:"len" json:"len"`
}

// Push appends the current rate, dropping the oldest once the window is full.
func (h *TaxHistory) Push(rate int) {
	if h.Len < 6 {
		h.Rates[h.Len] = rate
		h.Len++
		return
	}
	copy(h.Rates[0:5], h.Rates[1:6])
	h.Rates[5] = rate
}

// ResearchAccumulators tracks ERP/SRP and per-field TRP (§3, §4.H).
type ResearchAccumulators struct {
	ERP      int64          `bson:"erp" json:"erp"`
	SRP      int64          `bson:"srp" json:"srp"`
	TRPField map[string]int64 `bson:"trpField" json:"trpField"`
}

// EspionageBudget tracks EBP/CIP points and investment counters (§3).
type EspionageBudget struct {
	EBP                    int64 `bson:"ebp" json:"ebp"`
	CIP                    int64 `bson:"cip" json:"cip"`
	TurnsSinceEBPInvestment int  `bson:"turnsSinceEbpInvestment" json:"turnsSinceEbpInvestment"`
	TurnsSinceCIPInvestment int  `bson:"turnsSinceCipInvestment" json:"turnsSinceCipInvestment"`
}

// House is the per-player strategic entity (§3 House).
type House struct {
	ID    ids.HouseID `bson:"_id" json:"id"`
	Name  string      `bson:"name" json:"name"`
	Color string      `bson:"color" json:"color"`

	Prestige  int64 `bson:"prestige" json:"prestige"`   // signed
	Treasury  int64 `bson:"treasury" json:"treasury"`   // non-negative after Income completes

	Tech     TechTree             `bson:"tech" json:"tech"`
	Research ResearchAccumulators `bson:"research" json:"research"`

	TaxRate    int        `bson:"taxRate" json:"taxRate"` // 0-100, applied as a default for new colonies
	TaxHistory TaxHistory `bson:"taxHistory" json:"taxHistory"`

	Espionage EspionageBudget `bson:"espionage" json:"espionage"`

	// Relations maps target HouseID to a diplomacy.Relation value (stored
	// as int to avoid an import cycle with package diplomacy, which in
	// turn references HouseID).
	Relations map[ids.HouseID]int `bson:"relations" json:"relations"`

	DishonoredTurnsRemaining int `bson:"dishonoredTurnsRemaining" json:"dishonoredTurnsRemaining"`
	IsolatedTurnsRemaining   int `bson:"isolatedTurnsRemaining" json:"isolatedTurnsRemaining"`

	FallbackRoutes []ids.SystemID `bson:"fallbackRoutes" json:"fallbackRoutes"`
	AutoRetreat    bool           `bson:"autoRetreat" json:"autoRetreat"`

	ConsecutiveNegativePrestigeTurns int `bson:"consecutiveNegativePrestigeTurns" json:"consecutiveNegativePrestigeTurns"`
	PlanetBreakerCount               int `bson:"planetBreakerCount" json:"planetBreakerCount"`

	Violations []ViolationRecord `bson:"violations" json:"violations"`

	// PendingPactProposals are proposals this house has made that await a
	// response (§9 Open Question #1: two-sided proposal/response, no
	// auto-accept).
	PendingPactProposals []PactProposal `bson:"pendingPactProposals" json:"pendingPactProposals"`

	Eliminated bool `bson:"eliminated" json:"eliminated"`
}

// ViolationRecord is one entry in a house's reputation history (§4.J
// "Violations persist in the breaker's history for reputation
// computations").
type ViolationRecord struct {
	Turn    int         `bson:"turn" json:"turn"`
	Against ids.HouseID `bson:"against" json:"against"`
	Kind    string      `bson:"kind" json:"kind"` // e.g. "broke_non_aggression"
}

// PactProposal is an outstanding diplomatic proposal awaiting a response
// (§9 Open Question #1).
type PactProposal struct {
	To          ids.HouseID `bson:"to" json:"to"`
	ProposedAt  int         `bson:"proposedAt" json:"proposedAt"`
	ExpiresTurn int         `bson:"expiresTurn" json:"expiresTurn"`
	// TargetRelation is the relation value (int-encoded diplomacy.Relation)
	// being proposed, e.g. NonAggression or Allied.
	TargetRelation int `bson:"targetRelation" json:"targetRelation"`
}

// NewHouse constructs a house with zeroed research/espionage state and tech
// fields seeded at level 1, per §3 ("per-field levels ≥1").
func NewHouse(id ids.HouseID, name, color string, fields []string) *House {
	fm := make(map[string]int, len(fields))
	trp := make(map[string]int64, len(fields))
	for _, f := range fields {
		fm[f] = 1
		trp[f] = 0
	}
	return &House{
		ID:    id,
		Name:  name,
		Color: color,
		Tech:  TechTree{EL: 1, SL: 1, Fields: fm},
		Research: ResearchAccumulators{TRPField: trp},
		Relations: make(map[ids.HouseID]int),
	}
}

// IsActive reports whether this house should be iterated by active-house
// queries (§3 invariant: eliminated houses are excluded).
func (h *House) IsActive() bool { return h != nil && !h.Eliminated }
