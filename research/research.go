// Package research implements PP→RP conversion and upgrade-turn level
// advancement (§4.H). Grounded on the teacher's players.PlayerGameState
// resource-accumulator fields, generalized into the spec's three-
// accumulator (ERP/SRP/per-field TRP) ledger with a configurable cost
// table instead of hard-coded level thresholds.
package research

import (
	"github.com/nicoberrocal/galaxyCore/config"
	"github.com/nicoberrocal/galaxyCore/players"
)

// UpgradeTurn reports whether `turn` is an upgrade turn (§4.D step 4:
// "turn ∈ {1, 7, 13, ...} i.e. turn mod 6 == 1").
func UpgradeTurn(turn int) bool {
	return turn%6 == 1
}

// Allocation is one house's per-turn PP split across research categories,
// taken from its submitted order packet's researchAllocation field (§6).
type Allocation struct {
	Economic int64
	Science  int64
	PerField map[string]int64
}

// Accumulate converts a house's PP allocation into ERP/SRP/TRP, using the
// current SL to modulate science conversion efficiency (§4.H "higher SL
// converts PP→SRP more efficiently").
func Accumulate(h *players.House, alloc Allocation) {
	h.Research.ERP += alloc.Economic

	scienceEfficiency := 1.0 + 0.05*float64(h.Tech.SL-1)
	h.Research.SRP += int64(float64(alloc.Science) * scienceEfficiency)

	for field, pp := range alloc.PerField {
		h.Research.TRPField[field] += pp
	}
}

// AdvanceUpgrades spends accumulated RP to advance EL, SL, and per-field
// tech levels by one, at most once per accumulator per upgrade turn,
// emitting a prestige award on each successful advancement (§4.H "each
// accumulator may spend to advance one level per field per upgrade turn").
func AdvanceUpgrades(h *players.House, cfg *config.AuthoritativeConfig) (advancements int) {
	if cost := cfg.TechCosts.CostForNextLevel(h.Tech.EL); h.Research.ERP >= cost {
		h.Research.ERP -= cost
		h.Tech.EL++
		h.Prestige += int64(cfg.Prestige.TechAdvancePrestige)
		advancements++
	}
	if cost := cfg.TechCosts.CostForNextLevel(h.Tech.SL); h.Research.SRP >= cost {
		h.Research.SRP -= cost
		h.Tech.SL++
		h.Prestige += int64(cfg.Prestige.TechAdvancePrestige)
		advancements++
	}
	for field, level := range h.Tech.Fields {
		cost := cfg.TechCosts.CostForNextLevel(level)
		if h.Research.TRPField[field] >= cost {
			h.Research.TRPField[field] -= cost
			h.Tech.Fields[field] = level + 1
			h.Prestige += int64(cfg.Prestige.TechAdvancePrestige)
			advancements++
		}
	}
	return advancements
}
