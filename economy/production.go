package economy

import (
	"github.com/nicoberrocal/galaxyCore/config"
	"github.com/nicoberrocal/galaxyCore/orbitables"
)

// GCO computes Gross Colony Output (§4.F "GCO = PU × planet-class-raw-index
// + IU × energy-level-mod"), then applies infrastructure damage.
func GCO(c *orbitables.Colony, cfg *config.AuthoritativeConfig) float64 {
	rawIndex := cfg.PlanetClasses.RawIndex[string(c.PlanetClass)]
	pu := float64(c.PopulationUnits())
	energyLevelMod := 1.0 // energy-level research not modeled beyond tech fields; flat multiplier
	base := pu*rawIndex + float64(c.IndustrialUnits)*energyLevelMod
	return base * (1 - c.InfrastructureDamage)
}

// NCV computes Net Colony Value, the amount actually credited to the
// treasury (§4.F "NCV = GCO × (1 − tax_rate/100) × (1 − blockade_damage)").
func NCV(c *orbitables.Colony, cfg *config.AuthoritativeConfig) float64 {
	gco := GCO(c, cfg)
	ncv := gco * (1 - float64(c.TaxRate)/100)
	if c.Blockade.Blockaded {
		ncv *= 1 - cfg.Combat.BlockadeDamageRatio
	}
	return ncv
}

// ApplyPopulationGrowth grows a colony's souls by the configured base
// ratio, modulated by a starbase growth bonus capped at the configured
// maximum count (§4.F "Population grows in Income by a per-colony ratio
// modulated by starbase growth bonus (+5% per operational starbase, max 3)").
func ApplyPopulationGrowth(c *orbitables.Colony, cfg *config.AuthoritativeConfig) {
	if !c.IsFunctional() {
		return
	}
	bonusCount := len(c.Starbases)
	if bonusCount > cfg.Population.MaxStarbaseGrowthBonuses {
		bonusCount = cfg.Population.MaxStarbaseGrowthBonuses
	}
	ratio := cfg.Population.BaseGrowthRatio + float64(bonusCount)*cfg.Population.StarbaseGrowthBonus
	grown := float64(c.Souls) * ratio
	c.Souls += uint64(grown)
}
