// Package espionage implements detection rolls, action effects, and
// ongoing-effect installation (§4.I). Grounded on the teacher's
// players.PlayerGameState espionage-budget fields, generalized into the
// spec's EBP/CIP detection-roll formula with a pluggable action-effect
// table instead of the teacher's unused placeholder fields.
package espionage

import (
	"math/rand"

	"github.com/nicoberrocal/galaxyCore/config"
	"github.com/nicoberrocal/galaxyCore/effects"
	"github.com/nicoberrocal/galaxyCore/ids"
	"github.com/nicoberrocal/galaxyCore/orbitables"
	"github.com/nicoberrocal/galaxyCore/players"
	"github.com/nicoberrocal/galaxyCore/store"
)

// Action names one espionage action an attacker may take against a target
// (§6 CommandPacket "espionageActions[] (≤1)").
type Action string

const (
	ActionTechTheft       Action = "tech_theft"
	ActionSabotageIU      Action = "sabotage_iu"
	ActionCrippleStarbase Action = "cripple_starbase"
	ActionInstallUnrest   Action = "install_unrest"
)

// Attempt is one house's espionage order for the turn.
type Attempt struct {
	Attacker ids.HouseID
	Target   ids.HouseID
	Action   Action
	EBPSpend int64
}

// Result reports the outcome of one espionage attempt (§4.I).
type Result struct {
	Detected     bool
	Succeeded    bool
	StolenSRP    int64
	PrestigeDelta map[ids.HouseID]int64
}

// Resolve runs one espionage attempt: a detection roll compares attacker
// ELI+EBP spend vs target CIC+CIP spend (§4.I). On success the action
// effect is applied immediately; on detection the attacker loses prestige
// and the target receives an intel report (left to the caller to record).
func Resolve(st *store.Store, cfg *config.AuthoritativeConfig, a Attempt, rng *rand.Rand) Result {
	res := Result{PrestigeDelta: map[ids.HouseID]int64{}}

	attacker, aOK := st.GetHouse(a.Attacker)
	target, tOK := st.GetHouse(a.Target)
	if !aOK || !tOK {
		return res
	}

	attackerScore := float64(attacker.Tech.Fields["espionage"])*10 + float64(a.EBPSpend)
	targetScore := float64(target.Tech.Fields["counter_intelligence"])*10 + float64(target.Espionage.CIP)

	detectionChance := cfg.Espionage.DetectionBaseChance
	if attackerScore > targetScore {
		detectionChance *= targetScore / attackerScore
	}
	res.Detected = rng.Float64() < detectionChance
	res.Succeeded = attackerScore > targetScore

	if res.Succeeded {
		applyActionEffect(st, cfg, a, target)
	} else {
		res.PrestigeDelta[a.Attacker] -= int64(cfg.Prestige.FailedEspionagePenalty)
		attacker.Prestige -= int64(cfg.Prestige.FailedEspionagePenalty)
	}

	if res.Detected {
		res.PrestigeDelta[a.Attacker] -= int64(cfg.Prestige.DetectedEspionageBonus)
		attacker.Prestige -= int64(cfg.Prestige.DetectedEspionageBonus)
	}

	return res
}

func applyActionEffect(st *store.Store, cfg *config.AuthoritativeConfig, a Attempt, target *players.House) {
	switch a.Action {
	case ActionTechTheft:
		stolen := target.Research.SRP / 10
		target.Research.SRP -= stolen
		if attacker, ok := st.GetHouse(a.Attacker); ok {
			attacker.Research.SRP += stolen
		}
	case ActionSabotageIU:
		installOngoing(st, target.ID, effects.KindNCVReduction, 0.25, cfg.Espionage.ScoutSurvivalEffects["ncv_reduction"])
	case ActionCrippleStarbase:
		crippleOneStarbase(st, target.ID)
	case ActionInstallUnrest:
		installOngoing(st, target.ID, effects.KindTaxReduction, 0.15, cfg.Espionage.ScoutSurvivalEffects["tax_reduction"])
	}
}

func installOngoing(st *store.Store, target ids.HouseID, kind effects.Kind, magnitude float64, turns int) {
	if turns <= 0 {
		turns = 3
	}
	e := &effects.Effect{ID: st.NextEffectID(), Target: target, Kind: kind, Magnitude: magnitude, RemainingTurns: turns}
	_ = st.AddEffect(e)
}

func crippleOneStarbase(st *store.Store, target ids.HouseID) {
	st.IterColoniesByOwner(target, func(c *orbitables.Colony) bool {
		for _, fid := range c.Starbases {
			if f, ok := st.GetFacility(fid); ok && !f.Crippled {
				f.Crippled = true
				f.RecomputeEffectiveDocks()
				return false
			}
		}
		return true
	})
}

// ScoutSurvival resolves one outstanding scout's survival check for the
// Income phase (§4.I "each Income phase, for each outstanding spy scout
// in a system occupied by a rival with ELI units, roll a detection check").
func ScoutSurvival(ownerELI, rivalELI int, rivalHasStarbase bool, rng *rand.Rand) (detected bool) {
	rivalEffective := float64(rivalELI)
	if rivalHasStarbase {
		rivalEffective *= 1.2
	}
	chance := rivalEffective / (rivalEffective + float64(ownerELI) + 1)
	return rng.Float64() < chance
}
