package combat

import (
	"math/rand"

	"github.com/nicoberrocal/galaxyCore/config"
	"github.com/nicoberrocal/galaxyCore/ground"
	"github.com/nicoberrocal/galaxyCore/ids"
	"github.com/nicoberrocal/galaxyCore/orbitables"
	"github.com/nicoberrocal/galaxyCore/store"
)

// InvasionResult is the outcome of one ground-invasion attempt (§4.E).
type InvasionResult struct {
	AttackerWon  bool
	IULost       int64
	MarinesLost  int
	DefenseLost  int
}

// ResolveInvasion fights attacker marine strength against a colony's
// ground defense (marines, armies, batteries), executed in Conflict along
// with bombardment. On attacker win, ownership transfers with configured
// IU loss; on defender win, attacker marines are destroyed (§4.E).
func ResolveInvasion(st *store.Store, cfg *config.AuthoritativeConfig, c *orbitables.Colony, attacker ids.HouseID, attackerMarines int, rng *rand.Rand) InvasionResult {
	defenseStrength := 0
	var defenders []ids.GroundUnitID
	st.IterGroundUnitsByColony(c.ID, func(g *ground.Unit) bool {
		defenseStrength += g.Strength
		defenders = append(defenders, g.ID)
		return true
	})

	// A small random variance (±10%) keeps invasions from being perfectly
	// deterministic-looking to players while remaining reproducible from
	// the seeded RNG (§4.E "RNG outputs are deterministic from (turn seed,
	// system id)").
	variance := 0.9 + 0.2*rng.Float64()
	effectiveAttack := float64(attackerMarines) * variance

	if effectiveAttack > float64(defenseStrength) {
		for _, id := range defenders {
			_ = st.RemoveGroundUnit(id)
		}
		iuLoss := int64(float64(c.IndustrialUnits) * cfg.Combat.InvasionIULossRatio)
		c.IndustrialUnits -= iuLoss
		if c.IndustrialUnits < 0 {
			c.IndustrialUnits = 0
		}
		_ = st.SetColonyOwner(c.ID, attacker)
		return InvasionResult{AttackerWon: true, IULost: iuLoss, DefenseLost: defenseStrength}
	}

	return InvasionResult{AttackerWon: false, MarinesLost: attackerMarines}
}
