// Package ships holds the mobile military entities: Ship, Squadron, and
// Fleet (§3). Grounded on the teacher's ships.Ship/ShipStack documents —
// kept is the "blueprint vs runtime instance" split (a Ship here still
// names a class and carries its stats) and the BSON document idiom;
// dropped is the teacher's real-time ability-cooldown/gem-socket/
// formation-tree/bio-evolution system, none of which spec.md names. §3
// asks only for a single static "special capability tag" per ship class,
// which SpecialCapability below carries.
package ships

import "github.com/nicoberrocal/galaxyCore/ids"

// Class enumerates the ~17 ship-class variants named in §3.
type Class string

const (
	ClassScout        Class = "scout"
	ClassFighter      Class = "fighter"
	ClassCorvette     Class = "corvette"
	ClassFrigate      Class = "frigate"
	ClassDestroyer    Class = "destroyer"
	ClassCruiser      Class = "cruiser"
	ClassBattleship   Class = "battleship"
	ClassDreadnought  Class = "dreadnought"
	ClassCarrier      Class = "carrier"
	ClassBomber       Class = "bomber"
	ClassRaider       Class = "raider"
	ClassStarbaseHull Class = "starbase_hull"
	ClassFreighter    Class = "freighter"
	ClassColonizer    Class = "colonizer" // ETAC carrier
	ClassTroopship    Class = "troopship"
	ClassTanker       Class = "tanker"
	ClassScoutProbe   Class = "scout_probe"
)

// Role is a coarse tactical/economic role tag, independent of class.
type Role string

const (
	RoleCombat    Role = "combat"
	RoleSpacelift Role = "spacelift"
	RoleSupport   Role = "support"
)

// TargetBucket is the combat targeting bucket a squadron belongs to by its
// flagship's class (§4.E Targeting buckets).
type TargetBucket string

const (
	BucketRaider    TargetBucket = "raider"
	BucketFighter   TargetBucket = "fighter"
	BucketDestroyer TargetBucket = "destroyer"
	BucketCapital   TargetBucket = "capital"
	BucketStarbase  TargetBucket = "starbase"
)

// BucketFor maps a ship class to its targeting bucket.
func BucketFor(c Class) TargetBucket {
	switch c {
	case ClassRaider, ClassScoutProbe:
		return BucketRaider
	case ClassFighter, ClassBomber:
		return BucketFighter
	case ClassCorvette, ClassFrigate, ClassDestroyer:
		return BucketDestroyer
	case ClassStarbaseHull:
		return BucketStarbase
	default:
		return BucketCapital
	}
}

// CargoKind distinguishes the two things a ship's cargo slot can carry (§3).
type CargoKind string

const (
	CargoMarines   CargoKind = "marines"
	CargoColonists CargoKind = "colonists"
)

// Cargo is a ship's optional typed cargo hold.
type Cargo struct {
	Kind     CargoKind `bson:"kind" json:"kind"`
	Quantity int       `bson:"quantity" json:"quantity"`
}

// Stats are the static, tech-independent base numbers for a ship class,
// sourced from config.ShipStats at construction time and frozen onto the
// instance so combat math never has to re-resolve the config mid-battle.
type Stats struct {
	Attack            int    `bson:"attack" json:"attack"`
	Defense           int    `bson:"defense" json:"defense"`
	CommandCost       int    `bson:"commandCost" json:"commandCost"`
	CommandRating     int    `bson:"commandRating" json:"commandRating"`
	TechLevel         int    `bson:"techLevel" json:"techLevel"`
	BuildCostPP       int64  `bson:"buildCostPP" json:"buildCostPP"`
	UpkeepPP          int64  `bson:"upkeepPP" json:"upkeepPP"`
	CarryLimit        int    `bson:"carryLimit" json:"carryLimit"`
	SpecialCapability string `bson:"specialCapability" json:"specialCapability"`
}

// Ship is a single ship instance (§3 Ship).
type Ship struct {
	ID    ids.ShipID `bson:"_id" json:"id"`
	Class Class      `bson:"class" json:"class"`
	Role  Role       `bson:"role" json:"role"`
	Stats Stats      `bson:"stats" json:"stats"`

	Crippled bool   `bson:"crippled" json:"crippled"`
	Cargo    *Cargo `bson:"cargo,omitempty" json:"cargo,omitempty"`

	// AssignedCarrier is the carrier Ship this fighter is embarked on, if
	// any. Carriers reference fighters the other direction via
	// EmbarkedFighters; IDs only, never a live pointer (§9 DESIGN NOTES:
	// "cyclic references ... → IDs only").
	AssignedCarrier  *ids.ShipID `bson:"assignedCarrier,omitempty" json:"assignedCarrier,omitempty"`
	EmbarkedFighters []ids.ShipID `bson:"embarkedFighters,omitempty" json:"embarkedFighters,omitempty"`
}

// IsCarrier reports whether this ship class can embark fighters.
func (s *Ship) IsCarrier() bool { return s.Class == ClassCarrier }

// EffectiveAttack applies the weapon-tech multiplier and the crippled
// penalty (§4.E "effective attack = attack strength × tech multiplier
// 1.10^(wep_level−1) × 0.5 if crippled").
func (s *Ship) EffectiveAttack(weaponLevel int) float64 {
	mult := techMultiplier(weaponLevel)
	atk := float64(s.Stats.Attack) * mult
	if s.Crippled {
		atk *= 0.5
	}
	return atk
}

func techMultiplier(level int) float64 {
	if level < 1 {
		level = 1
	}
	m := 1.0
	for i := 1; i < level; i++ {
		m *= 1.10
	}
	return m
}
