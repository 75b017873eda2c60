package combat

import (
	"github.com/nicoberrocal/galaxyCore/config"
	"github.com/nicoberrocal/galaxyCore/ids"
	"github.com/nicoberrocal/galaxyCore/orbitables"
	"github.com/nicoberrocal/galaxyCore/store"
)

// ApplyBombardment inflicts infrastructure damage on a colony from an
// attacking fleet's bombardment order, executed during Conflict so the
// damage precedes Income's GCO read (§4.D, §4.E "Bombardment ... executed
// here, not in Command"). Rounds-per-turn and diminishing returns are
// configured; ships docked at the colony's facilities may be destroyed.
func ApplyBombardment(st *store.Store, cfg *config.AuthoritativeConfig, c *orbitables.Colony, attacker ids.HouseID) {
	rounds := cfg.Combat.BombardmentRoundsTurn
	if rounds <= 0 {
		rounds = 1
	}
	damagePerRound := 0.1 // base fraction of remaining infrastructure lost per round
	for i := 0; i < rounds; i++ {
		remaining := 1 - c.InfrastructureDamage
		if remaining <= 0 {
			break
		}
		delta := damagePerRound * remaining
		if cfg.Combat.BombardmentDiminish > 0 {
			delta *= 1 - cfg.Combat.BombardmentDiminish*float64(i)
			if delta < 0 {
				delta = 0
			}
		}
		c.InfrastructureDamage += delta
		if c.InfrastructureDamage > 1 {
			c.InfrastructureDamage = 1
		}
	}
	if c.InfrastructureDamage >= 1 {
		destroyDockedShips(st, c)
	}
}

// destroyDockedShips removes every squadron not out at a fleet location
// (i.e. still queued at the colony's facilities as an unassigned squadron)
// when infrastructure has fully collapsed.
func destroyDockedShips(st *store.Store, c *orbitables.Colony) {
	for _, sqID := range c.UnassignedSquadrons {
		if sq, ok := st.GetSquadron(sqID); ok {
			for _, shipID := range sq.AllShips() {
				_ = st.RemoveShip(shipID)
			}
		}
		_ = st.RemoveSquadron(sqID)
	}
	c.UnassignedSquadrons = nil
}
