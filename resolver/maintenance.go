package resolver

import (
	"github.com/nicoberrocal/galaxyCore/diplomacy"
	"github.com/nicoberrocal/galaxyCore/economy"
	"github.com/nicoberrocal/galaxyCore/effects"
	"github.com/nicoberrocal/galaxyCore/ids"
	"github.com/nicoberrocal/galaxyCore/orbitables"
	"github.com/nicoberrocal/galaxyCore/players"
	"github.com/nicoberrocal/galaxyCore/research"
	"github.com/nicoberrocal/galaxyCore/ships"
)

// runMaintenance is the resolver's fourth and final phase (§4.D): transit
// arrivals, diplomacy timers, effect expiry, research upgrades, elimination
// checks, and the turn increment. Ordering here matters only within a
// house (§5); across houses every step is either symmetric or keyed by
// house id already, so no extra sort is needed beyond IterActiveHouses.
func runMaintenance(gs *GameState, result *TurnResult) {
	economy.ProcessArrivals(gs.Store, gs.Turn)

	gs.Store.IterActiveHouses(func(h *players.House) bool {
		diplomacy.ExpireLapsedProposals(h, gs.Turn)
		diplomacy.DecrementTimers(h)
		return true
	})

	expireEffects(gs)
	decrementCapacityGrace(gs)

	if research.UpgradeTurn(gs.Turn) {
		gs.Store.IterActiveHouses(func(h *players.House) bool {
			research.AdvanceUpgrades(h, gs.Config)
			return true
		})
	}

	updatePrestigeCollapseCounters(gs)
	checkEliminations(gs, result)

	gs.Turn++
	result.NewTurn = gs.Turn
}

// updatePrestigeCollapseCounters advances each active house's consecutive
// below-threshold streak (§4.D "eliminated if its prestige has been below
// the configured defensive-collapse threshold for the configured
// consecutive-turn count"), resetting it the moment prestige recovers.
func updatePrestigeCollapseCounters(gs *GameState) {
	threshold := int64(gs.Config.Prestige.DefensiveCollapseThreshold)
	gs.Store.IterActiveHouses(func(h *players.House) bool {
		if h.Prestige < threshold {
			h.ConsecutiveNegativePrestigeTurns++
		} else {
			h.ConsecutiveNegativePrestigeTurns = 0
		}
		return true
	})
}

// expireEffects removes every ongoing effect whose RemainingTurns has
// reached zero (§3 Effect "decremented each Maintenance").
func expireEffects(gs *GameState) {
	var expired []uint32
	gs.Store.IterEffects(func(e *effects.Effect) bool {
		if e.Decrement() {
			expired = append(expired, e.ID)
		}
		return true
	})
	for _, id := range expired {
		_ = gs.Store.RemoveEffect(id)
	}
}

// decrementCapacityGrace counts down the grace period on any colony
// currently over its squadron or fighter-capacity limit, clearing the
// violation once the grace period lapses. Enforcement of the overage
// itself (forced scrapping) is left for the owning house's Command-phase
// orders to resolve within the grace window.
func decrementCapacityGrace(gs *GameState) {
	gs.Store.IterColonies(func(c *orbitables.Colony) bool {
		if c.CapacityViolation == nil {
			return true
		}
		c.CapacityViolation.GraceRemaining--
		if c.CapacityViolation.GraceRemaining <= 0 {
			c.CapacityViolation = nil
		}
		return true
	})
}

// checkEliminations marks a house eliminated on either of §4.D's two
// clauses: no surviving colonies and fleets, or a prestige collapse held
// for the configured consecutive-turn count (§8 invariant "once a house
// is eliminated it remains eliminated"). Already-eliminated houses are
// skipped by IterActiveHouses. On either trigger, the house's remaining
// fleets are cleared and its colonies released to neutral (§4.D).
func checkEliminations(gs *GameState, result *TurnResult) {
	consecutiveTurns := gs.Config.Prestige.DefensiveCollapseConsecutiveTurns

	gs.Store.IterActiveHouses(func(h *players.House) bool {
		colonies := 0
		gs.Store.IterColoniesByOwner(h.ID, func(*orbitables.Colony) bool { colonies++; return true })
		fleets := 0
		gs.Store.IterFleetsByOwner(h.ID, func(*ships.Fleet) bool { fleets++; return true })

		collapsed := consecutiveTurns > 0 && h.ConsecutiveNegativePrestigeTurns >= consecutiveTurns
		if colonies == 0 && fleets == 0 {
			// holds neither colonies nor fleets: eliminated regardless of prestige
		} else if !collapsed {
			return true
		}

		h.Eliminated = true
		clearHouseFleets(gs, h.ID)
		releaseHouseColonies(gs, h.ID)
		result.Eliminations = append(result.Eliminations, h.ID)
		return true
	})
}

// clearHouseFleets removes every fleet the house owns, cascading through
// each fleet's squadrons and ships so no orphaned entities remain.
func clearHouseFleets(gs *GameState, h ids.HouseID) {
	var fleetIDs []ids.FleetID
	gs.Store.IterFleetsByOwner(h, func(f *ships.Fleet) bool {
		fleetIDs = append(fleetIDs, f.ID)
		return true
	})
	for _, fleetID := range fleetIDs {
		f, ok := gs.Store.GetFleet(fleetID)
		if !ok {
			continue
		}
		for _, sqID := range append([]ids.SquadronID(nil), f.Squadrons...) {
			sq, ok := gs.Store.GetSquadron(sqID)
			if !ok {
				continue
			}
			for _, shID := range sq.AllShips() {
				_ = gs.Store.RemoveShip(shID)
			}
			_ = gs.Store.RemoveSquadronFromFleet(fleetID, sqID)
			_ = gs.Store.RemoveSquadron(sqID)
		}
		_ = gs.Store.RemoveFleet(fleetID)
	}
}

// releaseHouseColonies transfers every colony the house owns to neutral
// (§4.D "release its colonies to neutral state").
func releaseHouseColonies(gs *GameState, h ids.HouseID) {
	var colonyIDs []ids.ColonyID
	gs.Store.IterColoniesByOwner(h, func(c *orbitables.Colony) bool {
		colonyIDs = append(colonyIDs, c.ID)
		return true
	})
	for _, colID := range colonyIDs {
		_ = gs.Store.SetColonyOwner(colID, ids.HouseID(ids.None))
	}
}
