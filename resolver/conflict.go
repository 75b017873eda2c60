package resolver

import (
	"fmt"

	"github.com/nicoberrocal/galaxyCore/combat"
	"github.com/nicoberrocal/galaxyCore/detrand"
	"github.com/nicoberrocal/galaxyCore/ids"
	"github.com/nicoberrocal/galaxyCore/orbitables"
	"github.com/nicoberrocal/galaxyCore/players"
	"github.com/nicoberrocal/galaxyCore/ships"
	"github.com/nicoberrocal/galaxyCore/wire"
)

// runConflict is the resolver's first phase (§4.D): combat at every
// contested system, then bombardment/invasion orders, which must precede
// Income so their infrastructure damage is visible to GCO/NCV (§4.E).
func runConflict(gs *GameState, orders map[ids.HouseID]*wire.CommandPacket, result *TurnResult) {
	if gs.Definition == nil || !gs.Definition.InPeacePeriod(gs.Turn) {
		contested := contestedSystems(gs)
		for _, sys := range sortedSystemIDsFromSet(contested) {
			houses := housesPresentAt(gs, sys)
			report := combat.ResolveSystem(gs.Store, gs.Config, houses, sys, gs.Turn, systemWeaponLevel(houses))
			result.CombatReports = append(result.CombatReports, report)
		}
	}

	peace := gs.Definition != nil && gs.Definition.InPeacePeriod(gs.Turn)
	for _, h := range sortedHouseIDs(orders) {
		pkt := orders[h]
		for _, fc := range pkt.FleetCommands {
			switch fc.Kind {
			case "bombard":
				if peace {
					result.reject(h, "bombard", "game still in peace period")
					continue
				}
				applyBombardOrder(gs, h, fc, result)
			case "invade":
				if peace {
					result.reject(h, "invade", "game still in peace period")
					continue
				}
				applyInvadeOrder(gs, h, fc, result)
			}
		}
	}
}

// contestedSystems returns every system with fleets or colonies from more
// than one house present.
func contestedSystems(gs *GameState) map[ids.SystemID]bool {
	perSystem := map[ids.SystemID]map[ids.HouseID]bool{}
	add := func(sys ids.SystemID, h ids.HouseID) {
		if perSystem[sys] == nil {
			perSystem[sys] = map[ids.HouseID]bool{}
		}
		perSystem[sys][h] = true
	}
	gs.Store.IterFleets(func(f *ships.Fleet) bool {
		add(f.Location, f.Owner)
		return true
	})
	gs.Store.IterColonies(func(c *orbitables.Colony) bool {
		if !c.IsNeutral() {
			add(c.System, c.Owner)
		}
		return true
	})
	out := map[ids.SystemID]bool{}
	for sys, hs := range perSystem {
		if len(hs) > 1 {
			out[sys] = true
		}
	}
	return out
}

func housesPresentAt(gs *GameState, sys ids.SystemID) map[ids.HouseID]*players.House {
	out := map[ids.HouseID]*players.House{}
	gs.Store.IterFleetsBySystem(sys, func(f *ships.Fleet) bool {
		if h, ok := gs.Store.GetHouse(f.Owner); ok {
			out[f.Owner] = h
		}
		return true
	})
	gs.Store.IterColoniesBySystem(sys, func(c *orbitables.Colony) bool {
		if c.IsNeutral() {
			return true
		}
		if h, ok := gs.Store.GetHouse(c.Owner); ok {
			out[c.Owner] = h
		}
		return true
	})
	return out
}

// systemWeaponLevel picks the highest "weapons" tech field across the
// system's participants as the combat round's tech multiplier input (§4.E
// "attack strength × tech multiplier 1.10^(wep_level-1)").
func systemWeaponLevel(houses map[ids.HouseID]*players.House) int {
	level := 1
	for _, h := range houses {
		if w := h.Tech.Fields["weapons"]; w > level {
			level = w
		}
	}
	return level
}

func applyBombardOrder(gs *GameState, attacker ids.HouseID, fc wire.FleetCommand, result *TurnResult) {
	f, ok := gs.Store.GetFleet(fc.Fleet)
	if !ok || f.Owner != attacker {
		result.reject(attacker, "bombard", "fleet not found or not owned")
		return
	}
	var target *orbitables.Colony
	gs.Store.IterColoniesBySystem(f.Location, func(c *orbitables.Colony) bool {
		if c.Owner != attacker && !c.IsNeutral() {
			target = c
			return false
		}
		return true
	})
	if target == nil {
		result.reject(attacker, "bombard", "no enemy colony at fleet's system")
		return
	}
	combat.ApplyBombardment(gs.Store, gs.Config, target, attacker)
	result.accept(attacker, "bombard")
}

func applyInvadeOrder(gs *GameState, attacker ids.HouseID, fc wire.FleetCommand, result *TurnResult) {
	f, ok := gs.Store.GetFleet(fc.Fleet)
	if !ok || f.Owner != attacker || fc.Marines <= 0 {
		result.reject(attacker, "invade", "fleet not found, not owned, or no marines committed")
		return
	}
	var target *orbitables.Colony
	gs.Store.IterColoniesBySystem(f.Location, func(c *orbitables.Colony) bool {
		if c.Owner != attacker && !c.IsNeutral() {
			target = c
			return false
		}
		return true
	})
	if target == nil {
		result.reject(attacker, "invade", "no enemy colony at fleet's system")
		return
	}
	if hostileCombatPresent(gs, f.Location, target.Owner) {
		result.reject(attacker, "invade", "contested system must be cleared before invasion")
		return
	}
	rng := detrand.New(gs.Turn, fmt.Sprintf("invade:%d:%d", attacker, target.Owner))
	combat.ResolveInvasion(gs.Store, gs.Config, target, attacker, int(fc.Marines), rng)
	result.accept(attacker, "invade")
}

func hostileCombatPresent(gs *GameState, sys ids.SystemID, defender ids.HouseID) bool {
	hostile := false
	gs.Store.IterFleetsBySystem(sys, func(f *ships.Fleet) bool {
		if f.Owner != defender {
			return true
		}
		for _, sqID := range f.Squadrons {
			if sq, ok := gs.Store.GetSquadron(sqID); ok && sq.Type == ships.SquadronCombat {
				hostile = true
				return false
			}
		}
		return true
	})
	return hostile
}

