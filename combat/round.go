package combat

import (
	"math/rand"

	"github.com/nicoberrocal/galaxyCore/config"
	"github.com/nicoberrocal/galaxyCore/ids"
	"github.com/nicoberrocal/galaxyCore/ships"
	"github.com/nicoberrocal/galaxyCore/store"
)

// squadronEffectiveAttack applies the weapon-tech multiplier and crippled penalty
// for one squadron's flagship+escorts (§4.E "compute each squadron's
// effective attack").
func squadronEffectiveAttack(st *store.Store, sqID ids.SquadronID, weaponLevel int) float64 {
	sq, ok := st.GetSquadron(sqID)
	if !ok {
		return 0
	}
	total := 0.0
	for _, shipID := range sq.AllShips() {
		sh, ok := st.GetShip(shipID)
		if !ok {
			continue
		}
		total += sh.EffectiveAttack(weaponLevel)
	}
	return total
}

// bucketOf returns the TargetBucket for a squadron entry.
func bucketOf(e squadronEntry) ships.TargetBucket { return e.bucket }

// groupByBucket partitions a task force's squadrons by targeting bucket
// (§4.E "Each squadron belongs to one bucket by its flagship's class").
func groupByBucket(tf *TaskForce) map[ships.TargetBucket][]squadronEntry {
	out := map[ships.TargetBucket][]squadronEntry{}
	for _, e := range tf.Squadrons {
		out[bucketOf(e)] = append(out[bucketOf(e)], e)
	}
	return out
}

// rollCritical reports whether an attack rolls a critical hit on the
// configured die, with one reroll for starbase-hull attackers (§4.E).
func rollCritical(rng *rand.Rand, faces int, isStarbase, rerollOnCrit bool) bool {
	if faces <= 0 {
		return false
	}
	roll := rng.Intn(faces) + 1
	crit := roll == faces
	if crit && isStarbase && rerollOnCrit {
		roll = rng.Intn(faces) + 1
		crit = roll == faces
	}
	return crit
}

// resolveOneRound computes damage allocation for one round among all
// task forces still combat-capable, mutating squadron/ship crippled and
// destroyed state in the store. Returns per-house damage dealt this round.
func resolveOneRound(st *store.Store, forces []*TaskForce, cfg *config.AuthoritativeConfig, weaponLevel int, rng *rand.Rand) map[ids.HouseID]int64 {
	dealt := map[ids.HouseID]int64{}

	active := make([]*TaskForce, 0, len(forces))
	for _, tf := range forces {
		if tf.IsCombatCapable() {
			active = append(active, tf)
		}
	}
	if len(active) < 2 {
		return dealt
	}

	// Each task force allocates its total attack this round against every
	// opposing task force's buckets, weighted by config.CombatTables.BucketWeights.
	type allocation struct {
		target *TaskForce
		bucket ships.TargetBucket
		damage float64
	}
	var allocations []allocation

	for _, attacker := range active {
		totalAttack := 0.0
		for _, e := range attacker.Squadrons {
			atk := squadronEffectiveAttack(st, e.id, weaponLevel)
			if rollCritical(rng, cfg.Combat.CriticalDieFaces, e.bucket == ships.BucketStarbase, cfg.Combat.StarbaseRerollOnCrit) {
				atk *= 1.5
			}
			totalAttack += atk
		}
		if totalAttack <= 0 {
			continue
		}
		opponents := make([]*TaskForce, 0, len(active)-1)
		for _, other := range active {
			if other != attacker {
				opponents = append(opponents, other)
			}
		}
		if len(opponents) == 0 {
			continue
		}
		share := totalAttack / float64(len(opponents))
		for _, target := range opponents {
			buckets := groupByBucket(target)
			weightSum := 0.0
			for b := range buckets {
				if b == ships.BucketRaider && !attackerHasDetection(st, attacker) {
					continue // raider bucket only targetable by detection-capable ELI squadrons
				}
				weightSum += bucketWeight(cfg, b)
			}
			if weightSum <= 0 {
				continue
			}
			for b := range buckets {
				if b == ships.BucketRaider && !attackerHasDetection(st, attacker) {
					continue
				}
				w := bucketWeight(cfg, b) / weightSum
				allocations = append(allocations, allocation{target: target, bucket: b, damage: share * w})
			}
			dealt[attacker.House] += int64(share)
		}
	}

	for _, a := range allocations {
		applyBucketDamage(st, a.target, a.bucket, a.damage)
	}

	return dealt
}

func bucketWeight(cfg *config.AuthoritativeConfig, b ships.TargetBucket) float64 {
	if w, ok := cfg.Combat.BucketWeights[string(b)]; ok {
		return w
	}
	return 1.0
}

// attackerHasDetection reports whether any of the attacker's squadrons
// carries a detection-capable ELI ship (§4.E "the raider bucket is only
// targeted by squadrons with detection-capable ELI tech").
func attackerHasDetection(st *store.Store, tf *TaskForce) bool {
	for _, e := range tf.Squadrons {
		sq, ok := st.GetSquadron(e.id)
		if !ok {
			continue
		}
		for _, shipID := range sq.AllShips() {
			if sh, ok := st.GetShip(shipID); ok && sh.Stats.SpecialCapability == "long_range_sensors" {
				return true
			}
		}
	}
	return false
}

// applyBucketDamage distributes `damage` evenly across a target bucket's
// squadrons and compares each squadron's share with its flagship's
// defense: an uncrippled squadron whose share is ≥ defense becomes
// crippled; an already crippled one whose share is ≥ defense is destroyed.
// Each call's share is judged on its own; damage is not accumulated across
// calls or rounds.
func applyBucketDamage(st *store.Store, tf *TaskForce, bucket ships.TargetBucket, damage float64) {
	var members []int
	for i, e := range tf.Squadrons {
		if bucketOf(e) == bucket {
			members = append(members, i)
		}
	}
	if len(members) == 0 {
		return
	}
	per := damage / float64(len(members))
	var destroyedIdx []int
	for _, i := range members {
		entry := &tf.Squadrons[i]
		sq, ok := st.GetSquadron(entry.id)
		if !ok {
			continue
		}
		flag, ok := st.GetShip(sq.Flagship)
		if !ok {
			continue
		}
		defense := float64(flag.Stats.Defense)
		if defense <= 0 {
			defense = 1
		}
		if !flag.Crippled {
			if per >= defense {
				flag.Crippled = true
				entry.crippled = true
			}
			continue
		}
		// already crippled (this battle or earlier): a hit of ≥ defense destroys it
		if per >= defense {
			destroyedIdx = append(destroyedIdx, i)
		}
	}
	if len(destroyedIdx) == 0 {
		return
	}
	keep := tf.Squadrons[:0]
	destroyedSet := map[int]bool{}
	for _, i := range destroyedIdx {
		destroyedSet[i] = true
	}
	for i, e := range tf.Squadrons {
		if destroyedSet[i] {
			sq, ok := st.GetSquadron(e.id)
			if ok {
				for _, shipID := range sq.AllShips() {
					_ = st.RemoveShip(shipID)
				}
			}
			_ = st.RemoveSquadron(e.id)
			continue
		}
		keep = append(keep, e)
	}
	tf.Squadrons = keep
	tf.Annihilated = len(tf.Squadrons) == 0 && tf.Defense == nil
}
