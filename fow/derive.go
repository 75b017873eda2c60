package fow

import (
	"sort"

	"github.com/nicoberrocal/galaxyCore/diplomacy"
	"github.com/nicoberrocal/galaxyCore/ids"
	"github.com/nicoberrocal/galaxyCore/orbitables"
	"github.com/nicoberrocal/galaxyCore/players"
	"github.com/nicoberrocal/galaxyCore/ships"
	"github.com/nicoberrocal/galaxyCore/store"
)

// Derive computes house H's PlayerState from authoritative state `st` at
// `turn` (§4.K). The function reads only the store and never mutates it,
// guaranteeing the purity required by §8 invariant 9: two derivations of
// identical state for the same house produce identical output.
func Derive(st *store.Store, h ids.HouseID, turn int) *PlayerState {
	ps := &PlayerState{House: h, Turn: turn, Relations: map[ids.HouseID]diplomacy.Relation{}}

	self, ok := st.GetHouse(h)
	if !ok {
		return ps
	}

	presentSystems := map[ids.SystemID]bool{}

	st.IterColoniesByOwner(h, func(c *orbitables.Colony) bool {
		ps.OwnColonies = append(ps.OwnColonies, c.ID)
		presentSystems[c.System] = true
		ps.OwnGroundUnits = append(ps.OwnGroundUnits, c.GroundUnits...)
		return true
	})

	st.IterFleetsByOwner(h, func(f *ships.Fleet) bool {
		ps.OwnFleets = append(ps.OwnFleets, f.ID)
		presentSystems[f.Location] = true
		return true
	})

	visible := expandVisibility(st, presentSystems)
	visibleIDs := make([]ids.SystemID, 0, len(visible))
	for sysID := range visible {
		visibleIDs = append(visibleIDs, sysID)
	}
	sort.Slice(visibleIDs, func(i, j int) bool { return visibleIDs[i] < visibleIDs[j] })

	for _, sysID := range visibleIDs {
		sys, ok := st.GetSystem(sysID)
		if !ok {
			continue
		}
		ps.VisibleSystems = append(ps.VisibleSystems, VisibleSystemView{System: sys.ID, Coords: sys.Coords, Lanes: sys.Lanes})

		scanPresent := presentSystems[sysID]

		st.IterColoniesBySystem(sysID, func(c *orbitables.Colony) bool {
			if c.Owner == h {
				return true
			}
			ps.VisibleColonies = append(ps.VisibleColonies, intelForColony(c, scanPresent, turn))
			return true
		})

		st.IterFleetsBySystem(sysID, func(f *ships.Fleet) bool {
			if f.Owner == h {
				return true
			}
			ps.VisibleFleets = append(ps.VisibleFleets, intelForFleet(f, turn))
			return true
		})
	}

	st.IterHouses(func(other *players.House) bool {
		colonies := 0
		st.IterColoniesByOwner(other.ID, func(*orbitables.Colony) bool { colonies++; return true })
		fleets := 0
		st.IterFleetsByOwner(other.ID, func(*ships.Fleet) bool { fleets++; return true })
		ps.PublicHouses = append(ps.PublicHouses, PublicHouseInfo{
			House:       other.ID,
			Name:        other.Name,
			Prestige:    other.Prestige,
			ColonyCount: colonies,
			Eliminated:  colonies == 0 && fleets == 0,
		})
		return true
	})

	for target, rel := range self.Relations {
		ps.Relations[target] = diplomacy.Relation(rel)
	}

	return ps
}

// expandVisibility adds every system adjacent via any jump lane to a
// present system (§4.K "plus all systems adjacent via any jump lane").
func expandVisibility(st *store.Store, present map[ids.SystemID]bool) map[ids.SystemID]bool {
	visible := map[ids.SystemID]bool{}
	for s := range present {
		visible[s] = true
	}
	for s := range present {
		sys, ok := st.GetSystem(s)
		if !ok {
			continue
		}
		for _, l := range sys.Lanes {
			visible[l.To] = true
		}
	}
	return visible
}

// intelForColony degrades a foreign colony to the quality available from
// passive observation (Visual) or a present own fleet/colony (Scan).
// Derive only ever produces these two tiers; nothing assigns Spy or
// Perfect quality.
func intelForColony(c *orbitables.Colony, ownPresence bool, turn int) IntelColony {
	quality := QualityVisual
	if ownPresence {
		quality = QualityScan
	}
	ic := IntelColony{Colony: c.ID, System: c.System, Owner: c.Owner, Quality: quality, LastObserved: turn}
	if quality == QualityScan || quality == QualitySpy || quality == QualityPerfect {
		pu := c.PopulationUnits()
		iu := c.IndustrialUnits
		ic.EstimatedPopulationUnits = &pu
		ic.EstimatedIndustrialUnits = &iu
	}
	return ic
}

func intelForFleet(f *ships.Fleet, turn int) IntelFleet {
	count := len(f.Squadrons)
	return IntelFleet{Fleet: f.ID, Owner: f.Owner, Location: f.Location, Quality: QualityVisual, LastDetectedTurn: turn, EstimatedShipCount: &count}
}
