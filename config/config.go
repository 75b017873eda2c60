// Package config defines the authoritative, versioned, hashable rule
// snapshot threaded into every function that needs to read game rules
// (§4.C, §9 "Global mutable singletons for configuration → replaced by an
// explicit AuthoritativeConfig value"). Loading the snapshot from an
// on-disk file is out of scope (§1); this package only defines its shape,
// its invariants, and the handshake semantics described in §4.L/§6.
package config

import (
	"crypto/sha256"
	"fmt"
	"sort"

	"github.com/nicoberrocal/galaxyCore/wire/canonical"
)

// RequiredSection names one of the rule tables a valid config must carry.
type RequiredSection string

const (
	SectionTechCosts     RequiredSection = "tech_costs"
	SectionShipStats     RequiredSection = "ship_stats"
	SectionPrestige      RequiredSection = "prestige_values"
	SectionCombatTables  RequiredSection = "combat_tables"
	SectionPlanetClasses RequiredSection = "planet_classes"
	SectionPopulation    RequiredSection = "population_rules"
	SectionEspionage     RequiredSection = "espionage_rules"
)

// AllRequiredSections lists every section a config must carry to be valid.
var AllRequiredSections = []RequiredSection{
	SectionTechCosts, SectionShipStats, SectionPrestige, SectionCombatTables,
	SectionPlanetClasses, SectionPopulation, SectionEspionage,
}

// TechCosts holds the cost-for-next-level table used by the research
// subsystem (§4.H) for ERP/SRP/TRP level advancement.
type TechCosts struct {
	// CostForLevel[level] is the RP cost to advance FROM `level` TO `level+1`.
	CostForLevel map[int]int64 `json:"costForLevel"`
}

func (t TechCosts) CostForNextLevel(currentLevel int) int64 {
	if c, ok := t.CostForLevel[currentLevel]; ok {
		return c
	}
	// Extrapolate geometrically from the last known tier so high levels
	// never silently cost zero.
	if len(t.CostForLevel) == 0 {
		return 1 << 62
	}
	maxLvl := 0
	for l := range t.CostForLevel {
		if l > maxLvl {
			maxLvl = l
		}
	}
	base := t.CostForLevel[maxLvl]
	for l := maxLvl; l < currentLevel; l++ {
		base = base * 3 / 2
	}
	return base
}

// ShipStats is the per-class base-stat table (§3 Ship).
type ShipStats struct {
	Classes map[string]ShipClassStats `json:"classes"`
}

type ShipClassStats struct {
	Attack            int     `json:"attack"`
	Defense           int     `json:"defense"`
	CommandCost       int     `json:"commandCost"`
	CommandRating     int     `json:"commandRating"`
	TechLevel         int     `json:"techLevel"`
	BuildCostPP       int64   `json:"buildCostPP"`
	UpkeepPP          int64   `json:"upkeepPP"`
	CarryLimit        int     `json:"carryLimit"`
	SpecialCapability string  `json:"specialCapability"`
	Bucket            string  `json:"bucket"` // Raider | Fighter | Destroyer | Capital | Starbase
	DetectionCapable  bool    `json:"detectionCapable"`
	IsFighter         bool    `json:"isFighter"`
	IsSpacelift       bool    `json:"isSpacelift"`
}

// PrestigeValues names the fixed prestige awards/penalties used throughout
// the resolver (establishColony award, blockade penalty, failed espionage
// penalty, etc).
type PrestigeValues struct {
	EstablishColonyAward   int `json:"establishColonyAward"`
	BlockadePenaltyPerTurn int `json:"blockadePenaltyPerTurn"`
	FailedEspionagePenalty int `json:"failedEspionagePenalty"`
	DetectedEspionageBonus int `json:"detectedEspionageBonus"`
	PactBreakPenalty       int `json:"pactBreakPenalty"`
	TechAdvancePrestige    int `json:"techAdvancePrestige"`
	DefensiveCollapseThreshold        int `json:"defensiveCollapseThreshold"`
	DefensiveCollapseConsecutiveTurns int `json:"defensiveCollapseConsecutiveTurns"`
}

// CombatTables carries the per-bucket weighting and round configuration
// consulted by the combat subsystem (§4.E, REDESIGN/Open Question #3).
type CombatTables struct {
	MaxRounds             int                `json:"maxRounds"`
	BucketWeights         map[string]float64 `json:"bucketWeights"` // Raider/Fighter/Destroyer/Capital/Starbase
	CriticalDieFaces      int                `json:"criticalDieFaces"`
	StarbaseRerollOnCrit  bool               `json:"starbaseRerollOnCrit"`
	RetreatStrengthRatio  float64            `json:"retreatStrengthRatio"`
	BombardmentRoundsTurn int                `json:"bombardmentRoundsPerTurn"`
	BombardmentDiminish   float64            `json:"bombardmentDiminishingReturns"`
	InvasionIULossRatio   float64            `json:"invasionIULossRatio"`
	BlockadeDamageRatio   float64            `json:"blockadeDamageRatio"`
}

// PlanetClasses carries per-class production/growth modifiers.
type PlanetClasses struct {
	RawIndex map[string]float64 `json:"rawIndex"`
}

// PopulationRules carries transfer/growth constants (§4.F).
type PopulationRules struct {
	SoulsPerPTU          int64   `json:"soulsPerPTU"`
	SoulsPerPU           int64   `json:"soulsPerPU"`
	MinSoulsToReceive    int64   `json:"minSoulsToReceive"`
	MinSoulsToRemainAsSrc int64  `json:"minSoulsToRemainAsSource"`
	BaseGrowthRatio      float64 `json:"baseGrowthRatio"`
	StarbaseGrowthBonus  float64 `json:"starbaseGrowthBonusPerStarbase"`
	MaxStarbaseGrowthBonuses int  `json:"maxStarbaseGrowthBonuses"`
	JumpCostSurchargePct float64 `json:"perJumpCostSurchargePct"`
}

// EspionageRules carries detection/scout constants (§4.I).
type EspionageRules struct {
	DetectionBaseChance   float64       `json:"detectionBaseChance"`
	ScoutSurvivalEffects  map[string]int `json:"ongoingEffectDurationTurns"`
}

// AuthoritativeConfig is the versioned, hashable rule snapshot (§4.C, §6).
// A config is valid iff every required section and capability is present
// and its computed hash equals its declared hash.
type AuthoritativeConfig struct {
	SchemaVersion     int                `json:"schemaVersion"`
	Capabilities      []string           `json:"capabilities"`
	RequiredSections  []RequiredSection  `json:"requiredSections"`

	TechCosts       TechCosts       `json:"techCosts"`
	ShipStats       ShipStats       `json:"shipStats"`
	Prestige        PrestigeValues  `json:"prestige"`
	Combat          CombatTables    `json:"combat"`
	PlanetClasses   PlanetClasses   `json:"planetClasses"`
	Population      PopulationRules `json:"population"`
	Espionage       EspionageRules  `json:"espionage"`

	// ContentHash is the declared hash; Validate recomputes it and compares.
	ContentHash [32]byte `json:"contentHash"`
}

// sectionPresent reports whether the field backing a required section is
// non-empty; whether the section is in the declared list is checked by
// Validate.
func (c *AuthoritativeConfig) sectionPresent(s RequiredSection) bool {
	switch s {
	case SectionTechCosts:
		return len(c.TechCosts.CostForLevel) > 0
	case SectionShipStats:
		return len(c.ShipStats.Classes) > 0
	case SectionPrestige:
		return c.Prestige != PrestigeValues{}
	case SectionCombatTables:
		return c.Combat.MaxRounds > 0
	case SectionPlanetClasses:
		return len(c.PlanetClasses.RawIndex) > 0
	case SectionPopulation:
		return c.Population.SoulsPerPTU > 0
	case SectionEspionage:
		return c.Espionage.DetectionBaseChance > 0
	default:
		return false
	}
}

// Validate checks that every declared required section/capability is
// actually present and that ComputeHash matches the declared ContentHash.
func (c *AuthoritativeConfig) Validate() error {
	declared := map[RequiredSection]bool{}
	for _, s := range c.RequiredSections {
		declared[s] = true
	}
	for _, want := range AllRequiredSections {
		if !declared[want] {
			return fmt.Errorf("config: missing required section %q", want)
		}
		if !c.sectionPresent(want) {
			return fmt.Errorf("config: required section %q declared but empty", want)
		}
	}
	if len(c.Capabilities) == 0 {
		return fmt.Errorf("config: capability set is empty")
	}
	got := c.ComputeHash()
	if got != c.ContentHash {
		return fmt.Errorf("config: content hash mismatch: declared %x computed %x", c.ContentHash, got)
	}
	return nil
}

// ComputeHash computes the content hash over the schema version, the
// sorted capability set, and the canonical encoding of each declared
// required section, visiting sections in ascending name order so the
// order they are listed in RequiredSections does not change the hash.
func (c *AuthoritativeConfig) ComputeHash() [32]byte {
	sections := append([]RequiredSection(nil), c.RequiredSections...)
	sort.Slice(sections, func(i, j int) bool { return sections[i] < sections[j] })

	enc := canonical.NewEncoder()
	enc.WriteInt(int64(c.SchemaVersion))
	caps := append([]string(nil), c.Capabilities...)
	sort.Strings(caps)
	enc.WriteStringSlice(caps)
	for _, s := range sections {
		enc.WriteString(string(s))
		enc.WriteBytes(canonical.MustEncode(c.sectionPayload(s)))
	}
	return sha256.Sum256(enc.Bytes())
}

func (c *AuthoritativeConfig) sectionPayload(s RequiredSection) any {
	switch s {
	case SectionTechCosts:
		return c.TechCosts
	case SectionShipStats:
		return c.ShipStats
	case SectionPrestige:
		return c.Prestige
	case SectionCombatTables:
		return c.Combat
	case SectionPlanetClasses:
		return c.PlanetClasses
	case SectionPopulation:
		return c.Population
	case SectionEspionage:
		return c.Espionage
	default:
		return nil
	}
}

// Finalize recomputes and stores ContentHash; call after constructing or
// mutating a config before handing it to the wire layer.
func (c *AuthoritativeConfig) Finalize() {
	c.ContentHash = c.ComputeHash()
}

// HasCapability reports whether the config declares a named capability.
func (c *AuthoritativeConfig) HasCapability(name string) bool {
	for _, cap := range c.Capabilities {
		if cap == name {
			return true
		}
	}
	return false
}
