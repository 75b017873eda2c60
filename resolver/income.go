package resolver

import (
	"strconv"

	"github.com/nicoberrocal/galaxyCore/detrand"
	"github.com/nicoberrocal/galaxyCore/economy"
	"github.com/nicoberrocal/galaxyCore/effects"
	"github.com/nicoberrocal/galaxyCore/espionage"
	"github.com/nicoberrocal/galaxyCore/ids"
	"github.com/nicoberrocal/galaxyCore/orbitables"
	"github.com/nicoberrocal/galaxyCore/players"
	"github.com/nicoberrocal/galaxyCore/research"
	"github.com/nicoberrocal/galaxyCore/ships"
	"github.com/nicoberrocal/galaxyCore/wire"
)

// runIncome is the resolver's second phase (§4.D): blockade recompute,
// production, research accumulation, and scout-survival checks, all read
// against the infrastructure damage Conflict just applied.
func runIncome(gs *GameState, orders map[ids.HouseID]*wire.CommandPacket, result *TurnResult) {
	decrementOngoingEffects(gs)

	gs.Store.IterColonies(func(c *orbitables.Colony) bool {
		economy.RecomputeBlockade(gs.Store, c)
		return true
	})

	gs.Store.IterActiveHouses(func(h *players.House) bool {
		var totalPP int64
		for _, colID := range sortedColonyIDs(gs.Store, h.ID) {
			c, ok := gs.Store.GetColony(colID)
			if !ok {
				continue
			}
			if c.Blockade.Blockaded {
				h.Prestige -= int64(gs.Config.Prestige.BlockadePenaltyPerTurn)
			}
			economy.ApplyPopulationGrowth(c, gs.Config)
			ncv := economy.NCV(c, gs.Config)
			totalPP += int64(ncv)

			pp := int64(ncv)
			economy.AdvanceProjects(gs.Store, c, gs.Config, pp)
		}

		h.Treasury += totalPP - houseUpkeepPP(gs, h.ID)
		if h.Treasury < 0 {
			h.Treasury = 0
		}

		alloc := allocationFor(orders, h.ID, totalPP)
		research.Accumulate(h, alloc)
		return true
	})

	runScoutSurvival(gs)
}

// houseUpkeepPP sums ships.Stats.UpkeepPP across every ship in every
// squadron the house owns (§4.F "NCV minus maintenance commitments").
// Ships are only reachable through the squadrons that reference them, so
// this walks squadrons rather than a non-existent ship-by-owner index.
func houseUpkeepPP(gs *GameState, h ids.HouseID) int64 {
	var total int64
	gs.Store.IterSquadrons(func(sq *ships.Squadron) bool {
		if sq.Owner != h {
			return true
		}
		for _, shID := range sq.AllShips() {
			if sh, ok := gs.Store.GetShip(shID); ok {
				total += sh.Stats.UpkeepPP
			}
		}
		return true
	})
	return total
}

// allocationFor converts a house's submitted research split into a
// research.Allocation, defaulting to an all-economic split when the house
// submitted no packet this turn (§5 "missing packets are treated as empty
// packets").
func allocationFor(orders map[ids.HouseID]*wire.CommandPacket, h ids.HouseID, totalPP int64) research.Allocation {
	pkt, ok := orders[h]
	if !ok {
		return research.Allocation{Economic: totalPP}
	}
	return research.Allocation{
		Economic: pkt.ResearchAllocation.Economic,
		Science:  pkt.ResearchAllocation.Science,
		PerField: pkt.ResearchAllocation.PerField,
	}
}

// decrementOngoingEffects runs at the start of every Income, before
// production, project advance and research accumulation, and reduces each
// SRP-reduction effect's target house SRP by the effect's magnitude. NCV-
// reduction, tax-reduction and starbase-crippled effects are not applied
// here. Counting effects down and dropping expired ones happens in
// Maintenance (expireEffects).
func decrementOngoingEffects(gs *GameState) {
	gs.Store.IterEffects(func(e *effects.Effect) bool {
		if e.Kind == effects.KindSRPReduction {
			if h, ok := gs.Store.GetHouse(e.Target); ok {
				h.Research.SRP -= int64(float64(h.Research.SRP) * e.Magnitude)
			}
		}
		return true
	})
}

// runScoutSurvival resolves each Income phase's outstanding-scout detection
// checks (§4.I). A scout is any squadron with a scout or scout-probe
// flagship in a fleet at a system where another house with ELI tech owns
// a colony.
func runScoutSurvival(gs *GameState) {
	for _, sys := range sortedSystemIDs(gs.Store) {
		rivalELI, rivalHasStarbase, rivalHouse := strongestRivalPresence(gs, sys)
		if rivalHouse == ids.HouseID(ids.None) {
			continue
		}
		gs.Store.IterFleetsBySystem(sys, func(f *ships.Fleet) bool {
			if f.Owner == rivalHouse {
				return true
			}
			for _, sqID := range f.Squadrons {
				sq, ok := gs.Store.GetSquadron(sqID)
				if !ok {
					continue
				}
				flag, ok := gs.Store.GetShip(sq.Flagship)
				if !ok || (flag.Class != ships.ClassScout && flag.Class != ships.ClassScoutProbe) {
					continue
				}
				ownerHouse, _ := gs.Store.GetHouse(f.Owner)
				ownerELI := 1
				if ownerHouse != nil {
					ownerELI = ownerHouse.Tech.Fields["eli"]
				}
				rng := detrand.New(gs.Turn, "scout:"+strconv.FormatUint(uint64(sys), 10))
				if espionage.ScoutSurvival(ownerELI, rivalELI, rivalHasStarbase, rng) {
					_ = gs.Store.RemoveSquadronFromFleet(f.ID, sqID)
					_ = gs.Store.RemoveSquadron(sqID)
				}
			}
			return true
		})
	}
}

func strongestRivalPresence(gs *GameState, sys ids.SystemID) (eli int, hasStarbase bool, owner ids.HouseID) {
	gs.Store.IterColoniesBySystem(sys, func(c *orbitables.Colony) bool {
		if c.IsNeutral() {
			return true
		}
		if h, ok := gs.Store.GetHouse(c.Owner); ok {
			if lvl := h.Tech.Fields["eli"]; lvl > eli {
				eli = lvl
				owner = c.Owner
				hasStarbase = len(c.Starbases) > 0
			}
		}
		return true
	})
	return
}
