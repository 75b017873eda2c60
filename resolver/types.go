package resolver

import (
	"github.com/nicoberrocal/galaxyCore/combat"
	"github.com/nicoberrocal/galaxyCore/config"
	"github.com/nicoberrocal/galaxyCore/ids"
	"github.com/nicoberrocal/galaxyCore/maps"
	"github.com/nicoberrocal/galaxyCore/store"
)

// GameState is the authoritative per-game state the resolver owns
// exclusively while resolve_turn runs (§5 "owned exclusively by the
// thread currently running that game's resolver").
type GameState struct {
	Store      *store.Store
	Config     *config.AuthoritativeConfig
	Definition *maps.Definition // nil games never gate Conflict on a peace period
	Turn       int
	Quarantined bool // set by a Corruption error; resolver refuses further turns
}

// OrderResult is the per-order outcome surfaced back to the submitting
// house (§7 "the resolver returns a per-house result vector").
type OrderResult struct {
	House   ids.HouseID
	Kind    string
	Accepted bool
	Reason  string
}

// TurnResult is everything resolve_turn produces for one call: the new
// turn number, combat reports, and per-order results for every house.
type TurnResult struct {
	NewTurn        int
	CombatReports  []*combat.Report
	OrderResults   []OrderResult
	Eliminations   []ids.HouseID
}

func (r *TurnResult) reject(house ids.HouseID, kind, reason string) {
	r.OrderResults = append(r.OrderResults, OrderResult{House: house, Kind: kind, Accepted: false, Reason: reason})
}

func (r *TurnResult) accept(house ids.HouseID, kind string) {
	r.OrderResults = append(r.OrderResults, OrderResult{House: house, Kind: kind, Accepted: true})
}
