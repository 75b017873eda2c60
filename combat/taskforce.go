// Package combat resolves space battles, bombardment, and invasion (§4.E).
// Grounded on the teacher's battle_report.go document shapes (StackSnapshot,
// BattleRound, CombatantState) generalized from a 1v1 stack duel into an
// N-house, per-bucket task-force battle, and on ships/formation_combat.go
// for the "compute effective stats, then allocate damage" two-pass shape.
package combat

import (
	"github.com/nicoberrocal/galaxyCore/ground"
	"github.com/nicoberrocal/galaxyCore/ids"
	"github.com/nicoberrocal/galaxyCore/orbitables"
	"github.com/nicoberrocal/galaxyCore/ships"
	"github.com/nicoberrocal/galaxyCore/store"
)

// PlanetaryDefense is the colony-side contribution to a task force when its
// owning house is present at the combat system (§4.E "planetary defense if
// the house owns the colony: starbases, ground batteries, armies, marines,
// planetary shield level").
type PlanetaryDefense struct {
	Colony      ids.ColonyID
	Starbases   []ids.FacilityID
	ShieldLevel int
}

// TaskForce is one house's combined combat presence at a system: the union
// of all its fleets/squadrons present, plus planetary defense if it owns
// the colony there (§4.E).
type TaskForce struct {
	House    ids.HouseID
	Fleets   []ids.FleetID
	Squadrons []squadronEntry
	Defense  *PlanetaryDefense

	StartingStrength float64
	Strength         float64

	ROE               int
	HomeworldDefender bool
	Retreated         bool
	Annihilated       bool
}

type squadronEntry struct {
	id      ids.SquadronID
	bucket  ships.TargetBucket
	crippled bool
}

// IsCombatCapable reports whether the task force still has any squadron
// able to fight (§4.E "an invalid task force (zero squadrons) is removed
// pre-round").
func (tf *TaskForce) IsCombatCapable() bool {
	return len(tf.Squadrons) > 0 && !tf.Annihilated
}

// BuildTaskForces merges every fleet present at `sys` into one task force
// per owning house, attaching planetary defense for the colony's owner if
// a colony exists there (§4.E).
func BuildTaskForces(st *store.Store, sys ids.SystemID) []*TaskForce {
	byHouse := map[ids.HouseID]*TaskForce{}
	order := []ids.HouseID{}

	get := func(h ids.HouseID) *TaskForce {
		if tf, ok := byHouse[h]; ok {
			return tf
		}
		tf := &TaskForce{House: h}
		byHouse[h] = tf
		order = append(order, h)
		return tf
	}

	st.IterFleetsBySystem(sys, func(f *ships.Fleet) bool {
		tf := get(f.Owner)
		tf.Fleets = append(tf.Fleets, f.ID)
		tf.ROE = f.ROE
		if f.HomeworldDefender {
			tf.HomeworldDefender = true
		}
		for _, sqID := range f.Squadrons {
			sq, ok := st.GetSquadron(sqID)
			if !ok || sq.Type != ships.SquadronCombat {
				continue
			}
			flag, ok := st.GetShip(sq.Flagship)
			if !ok {
				continue
			}
			entry := squadronEntry{id: sqID, bucket: ships.BucketFor(flag.Class), crippled: flag.Crippled}
			tf.Squadrons = append(tf.Squadrons, entry)
			tf.Strength += squadronStrength(st, sq)
		}
		return true
	})

	st.IterColoniesBySystem(sys, func(c *orbitables.Colony) bool {
		if c.IsNeutral() {
			return true
		}
		tf := get(c.Owner)
		tf.Defense = &PlanetaryDefense{
			Colony:      c.ID,
			Starbases:   append([]ids.FacilityID(nil), c.Starbases...),
			ShieldLevel: len(c.Starbases),
		}
		tf.Strength += defenseStrength(st, c)
		return true
	})

	for _, h := range order {
		byHouse[h].StartingStrength = byHouse[h].Strength
	}

	out := make([]*TaskForce, 0, len(order))
	for _, h := range order {
		out = append(out, byHouse[h])
	}
	return out
}

// defenseStrength sums the ground-unit and starbase contribution of a
// colony's planetary defense, used as part of its owner's task-force
// strength metric (§4.E).
func defenseStrength(st *store.Store, c *orbitables.Colony) float64 {
	total := 0.0
	st.IterGroundUnitsByColony(c.ID, func(g *ground.Unit) bool {
		total += float64(g.Strength)
		return true
	})
	for _, fid := range c.Starbases {
		if f, ok := st.GetFacility(fid); ok && !f.Crippled {
			total += 50 // flat starbase defense contribution, grace of CombatTables starbase weighting elsewhere
		}
	}
	return total
}

// squadronStrength sums the effective attack+defense of every ship in a
// squadron, used as the retreat-threshold strength metric (§4.E).
func squadronStrength(st *store.Store, sq *ships.Squadron) float64 {
	total := 0.0
	for _, shipID := range sq.AllShips() {
		sh, ok := st.GetShip(shipID)
		if !ok {
			continue
		}
		w := float64(sh.Stats.Attack + sh.Stats.Defense)
		if sh.Crippled {
			w *= 0.5
		}
		total += w
	}
	return total
}
