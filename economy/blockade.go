// Package economy implements the Income-phase production, construction
// dock assignment, and population-transfer mechanics (§4.F). Grounded on
// the teacher's buildings.BaseBuilding queue idiom and orbitables.Planet
// production fields, generalized to the spec's PU/IU/GCO/NCV formulas.
package economy

import (
	"github.com/nicoberrocal/galaxyCore/diplomacy"
	"github.com/nicoberrocal/galaxyCore/ids"
	"github.com/nicoberrocal/galaxyCore/orbitables"
	"github.com/nicoberrocal/galaxyCore/ships"
	"github.com/nicoberrocal/galaxyCore/store"
)

// RecomputeBlockade sets a colony's blockade state: blockaded iff a
// hostile armed squadron is present at its system with no active friendly
// defender (§4.D Income step 2).
func RecomputeBlockade(st *store.Store, c *orbitables.Colony) {
	if c.IsNeutral() {
		c.Blockade.Blockaded = false
		c.Blockade.BlockadedBy = nil
		c.Blockade.ConsecutiveTurns = 0
		return
	}

	var hostileCombatPresent []ids.HouseID
	friendlyDefenderPresent := false

	aHouse, aOK := st.GetHouse(c.Owner)

	st.IterFleetsBySystem(c.System, func(f *ships.Fleet) bool {
		hasCombat := false
		for _, sqID := range f.Squadrons {
			if sq, ok := st.GetSquadron(sqID); ok && sq.Type == ships.SquadronCombat {
				hasCombat = true
				break
			}
		}
		if !hasCombat {
			return true
		}
		if f.Owner == c.Owner {
			friendlyDefenderPresent = true
			return true
		}
		bHouse, bOK := st.GetHouse(f.Owner)
		if aOK && bOK && diplomacy.IsHostile(aHouse.Relations, f.Owner, bHouse.Relations, c.Owner) {
			hostileCombatPresent = append(hostileCombatPresent, f.Owner)
		}
		return true
	})

	blockaded := len(hostileCombatPresent) > 0 && !friendlyDefenderPresent
	if blockaded {
		c.Blockade.Blockaded = true
		c.Blockade.ConsecutiveTurns++
		c.Blockade.BlockadedBy = dedupHouseIDs(hostileCombatPresent)
	} else {
		c.Blockade.Blockaded = false
		c.Blockade.ConsecutiveTurns = 0
		c.Blockade.BlockadedBy = nil
	}
}

func dedupHouseIDs(in []ids.HouseID) []ids.HouseID {
	seen := map[ids.HouseID]bool{}
	var out []ids.HouseID
	for _, v := range in {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
