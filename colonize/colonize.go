// Package colonize implements new-colony establishment via ETAC
// consumption (§4.G). Grounded on the teacher's orbitables.Planet
// colonization fields, replaced with the spec's fresh-colony seed values
// and prestige award.
package colonize

import (
	"fmt"

	"github.com/nicoberrocal/galaxyCore/config"
	"github.com/nicoberrocal/galaxyCore/ids"
	"github.com/nicoberrocal/galaxyCore/orbitables"
	"github.com/nicoberrocal/galaxyCore/ships"
	"github.com/nicoberrocal/galaxyCore/store"
)

// seedSouls is the starting population of a freshly established colony
// (§8 scenario S1 "souls=50_000, PU=0").
const seedSouls = 50_000

// Colonize establishes a new colony at `target` for `owner` using the ETAC
// fleet's colonizer squadron, which is consumed in the process (§4.G, §3
// "Colonies: created in Command phase by colonization order"). The fleet
// is left empty and will be pruned by the caller.
func Colonize(st *store.Store, cfg *config.AuthoritativeConfig, owner ids.HouseID, target ids.SystemID, etacFleet ids.FleetID) (*orbitables.Colony, error) {
	f, ok := st.GetFleet(etacFleet)
	if !ok {
		return nil, fmt.Errorf("colonize: fleet %d not found", etacFleet)
	}
	if f.Location != target {
		return nil, fmt.Errorf("colonize: fleet %d is not at target system %d", etacFleet, target)
	}

	colonizerSqID, ok := findColonizerSquadron(st, f)
	if !ok {
		return nil, fmt.Errorf("colonize: fleet %d carries no colonizer squadron", etacFleet)
	}

	sys, ok := st.GetSystem(target)
	if !ok {
		return nil, fmt.Errorf("colonize: system %d not found", target)
	}

	colonyID := st.NextColonyID()
	c := &orbitables.Colony{
		ID:     colonyID,
		System: sys.ID,
		Owner:  owner,
		Souls:  seedSouls,
	}
	if err := st.AddColony(c); err != nil {
		return nil, err
	}

	consumeColonizer(st, f, colonizerSqID)

	if h, ok := st.GetHouse(owner); ok {
		h.Prestige += int64(cfg.Prestige.EstablishColonyAward)
	}

	return c, nil
}

func findColonizerSquadron(st *store.Store, f *ships.Fleet) (ids.SquadronID, bool) {
	for _, sqID := range f.Squadrons {
		sq, ok := st.GetSquadron(sqID)
		if !ok {
			continue
		}
		flag, ok := st.GetShip(sq.Flagship)
		if ok && flag.Class == ships.ClassColonizer {
			return sqID, true
		}
	}
	return 0, false
}

// consumeColonizer destroys the colonizer squadron and detaches it from
// the fleet; an ETAC is spent on first colonization of a system (GLOSSARY).
func consumeColonizer(st *store.Store, f *ships.Fleet, sqID ids.SquadronID) {
	if sq, ok := st.GetSquadron(sqID); ok {
		for _, shipID := range sq.AllShips() {
			_ = st.RemoveShip(shipID)
		}
	}
	_ = st.RemoveSquadron(sqID)
	_ = st.RemoveSquadronFromFleet(f.ID, sqID)
}
