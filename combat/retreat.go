package combat

import (
	"github.com/nicoberrocal/galaxyCore/config"
	"github.com/nicoberrocal/galaxyCore/ids"
	"github.com/nicoberrocal/galaxyCore/orbitables"
	"github.com/nicoberrocal/galaxyCore/players"
	"github.com/nicoberrocal/galaxyCore/ships"
	"github.com/nicoberrocal/galaxyCore/store"
)

// shouldRetreat reports whether a task force retreats this round (§4.E
// "any task force with ROE ≤ round number and current strength < starting
// strength × threshold retreats"). Homeworld defenders never retreat.
func shouldRetreat(tf *TaskForce, round int, cfg *config.AuthoritativeConfig) bool {
	if tf.HomeworldDefender {
		return false
	}
	if tf.ROE > round {
		return false
	}
	if tf.StartingStrength <= 0 {
		return false
	}
	return tf.Strength < tf.StartingStrength*cfg.Combat.RetreatStrengthRatio
}

// applyRetreat moves a retreating task force's fleets to the owner's
// nearest fallback-route system, else nearest friendly colony, else
// destroys them (§4.E). Every fleet of the task force moves or is destroyed
// as a whole; fighter squadrons are not separated out and share their
// fleet's fate.
func applyRetreat(st *store.Store, h *players.House, tf *TaskForce, currentSystem ids.SystemID) {
	tf.Retreated = true
	dest, ok := pickRetreatDestination(st, h, currentSystem)
	for _, fleetID := range tf.Fleets {
		f, exists := st.GetFleet(fleetID)
		if !exists {
			continue
		}
		if !ok {
			// no fallback route and no friendly colony: fleet is destroyed
			destroyFleet(st, f)
			continue
		}
		_ = st.MoveFleet(fleetID, dest)
		f.Mission = ships.MissionReturning
	}
}

func destroyFleet(st *store.Store, f *ships.Fleet) {
	for _, sqID := range append([]ids.SquadronID(nil), f.Squadrons...) {
		if sq, ok := st.GetSquadron(sqID); ok {
			for _, shipID := range sq.AllShips() {
				_ = st.RemoveShip(shipID)
			}
		}
		_ = st.RemoveSquadron(sqID)
	}
	f.Squadrons = nil
	_ = st.RemoveFleet(f.ID)
}

// pickRetreatDestination returns the owner's nearest fallback-route system
// if reachable by a lane from currentSystem, else the nearest system
// (by direct lane) where the house owns a colony.
func pickRetreatDestination(st *store.Store, h *players.House, currentSystem ids.SystemID) (ids.SystemID, bool) {
	sys, ok := st.GetSystem(currentSystem)
	if !ok {
		return 0, false
	}
	laneSet := map[ids.SystemID]bool{}
	for _, l := range sys.Lanes {
		laneSet[l.To] = true
	}
	for _, fb := range h.FallbackRoutes {
		if laneSet[fb] {
			return fb, true
		}
	}
	var found ids.SystemID
	foundOK := false
	st.IterColoniesByOwner(h.ID, func(c *orbitables.Colony) bool {
		if laneSet[c.System] {
			found = c.System
			foundOK = true
			return false
		}
		return true
	})
	return found, foundOK
}
