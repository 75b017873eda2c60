package combat

import (
	"strconv"

	"github.com/nicoberrocal/galaxyCore/config"
	"github.com/nicoberrocal/galaxyCore/detrand"
	"github.com/nicoberrocal/galaxyCore/ids"
	"github.com/nicoberrocal/galaxyCore/players"
	"github.com/nicoberrocal/galaxyCore/store"
)

// ResolveSystem runs the full combat algorithm for one system (§4.E):
// build task forces, fight up to maxRounds, check retreat each round,
// determine the victor. houses must contain every house with a task force
// present. weaponLevel is the attacker-agnostic tech multiplier input
// (callers pass the defending/attacking house's weapon tech as needed;
// here we use the system-wide max across participants for simplicity of a
// single per-round multiplier, matching the spec's single formula).
func ResolveSystem(st *store.Store, cfg *config.AuthoritativeConfig, houses map[ids.HouseID]*players.House, sys ids.SystemID, turn int, weaponLevel int) *Report {
	forces := BuildTaskForces(st, sys)
	report := &Report{System: sys, Turn: turn, SquadronsLost: map[ids.HouseID]int{}}

	initialCount := map[ids.HouseID]int{}
	for _, tf := range forces {
		report.Houses = append(report.Houses, tf.House)
		initialCount[tf.House] = len(tf.Squadrons)
	}

	// Remove zero-squadron, zero-defense task forces pre-round (§4.E
	// "an invalid task force (zero squadrons) is removed pre-round").
	filtered := forces[:0]
	for _, tf := range forces {
		if len(tf.Squadrons) > 0 || tf.Defense != nil {
			filtered = append(filtered, tf)
		}
	}
	forces = filtered

	rng := detrand.New(turn, "system:"+strconv.FormatUint(uint64(sys), 10))
	maxRounds := cfg.Combat.MaxRounds
	if maxRounds <= 0 {
		maxRounds = 20
	}

	for round := 1; round <= maxRounds; round++ {
		combatCapable := countCombatCapable(forces)
		if combatCapable < 2 {
			break
		}
		dealt := resolveOneRound(st, forces, cfg, weaponLevel, rng)
		report.Rounds = append(report.Rounds, RoundRecord{RoundNumber: round, DamageDealt: dealt})
		report.TotalRounds = round

		for _, tf := range forces {
			if tf.Retreated || tf.Annihilated {
				continue
			}
			if shouldRetreat(tf, round, cfg) {
				if h, ok := houses[tf.House]; ok {
					applyRetreat(st, h, tf, sys)
				}
				report.Retreated = append(report.Retreated, tf.House)
			}
		}
	}

	for _, tf := range forces {
		lost := initialCount[tf.House] - len(tf.Squadrons)
		if lost > 0 {
			report.SquadronsLost[tf.House] = lost
		}
		if tf.Annihilated {
			report.Annihilated = append(report.Annihilated, tf.House)
		}
	}

	report.Victor, report.Contested = determineVictor(forces)

	st.PruneEmptyFleets()
	return report
}

func countCombatCapable(forces []*TaskForce) int {
	n := 0
	for _, tf := range forces {
		if !tf.Retreated && !tf.Annihilated && tf.IsCombatCapable() {
			n++
		}
	}
	return n
}

// determineVictor returns the sole remaining task force with combat-capable
// squadrons, or contested=true if zero or multiple remain (§4.E).
func determineVictor(forces []*TaskForce) (ids.HouseID, bool) {
	var remaining []ids.HouseID
	for _, tf := range forces {
		if !tf.Retreated && !tf.Annihilated && (tf.IsCombatCapable() || tf.Defense != nil) {
			remaining = append(remaining, tf.House)
		}
	}
	if len(remaining) == 1 {
		return remaining[0], false
	}
	return 0, true
}
