package main

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/nicoberrocal/galaxyCore/config"
)

// daemonSettings is everything galaxyd needs besides the game rule
// snapshot: connection strings, listen address, and the daemon's signing
// key location. Grounded on Knoblauchpilze-sogserver/pkg/arguments'
// env-prefixed viper loading.
type daemonSettings struct {
	MongoURI     string `mapstructure:"mongoUri"`
	MongoDB      string `mapstructure:"mongoDatabase"`
	RedisURL     string `mapstructure:"redisUrl"`
	Environment  string `mapstructure:"environment"`
	RulesFile    string `mapstructure:"rulesFile"`
	SigningKeyFile string `mapstructure:"signingKeyFile"`
}

func loadDaemonSettings(configFile string) (daemonSettings, error) {
	viper.SetEnvPrefix("GALAXYD")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("mongoUri", "mongodb://localhost:27017")
	viper.SetDefault("mongoDatabase", "galaxy")
	viper.SetDefault("redisUrl", "redis://localhost:6379/0")
	viper.SetDefault("environment", "development")
	viper.SetDefault("rulesFile", "rules.json")
	viper.SetDefault("signingKeyFile", "daemon.key")

	viper.SetConfigName(configFile)
	viper.AddConfigPath(".")
	viper.AddConfigPath("data/config")
	if err := viper.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return daemonSettings{}, fmt.Errorf("galaxyd: read config: %w", err)
		}
	}

	var s daemonSettings
	if err := viper.Unmarshal(&s); err != nil {
		return daemonSettings{}, fmt.Errorf("galaxyd: unmarshal config: %w", err)
	}
	return s, nil
}

// authoritativeConfigSource mirrors config.AuthoritativeConfig's section
// shape for on-disk loading (§4.L's config snapshot, the viper-facing side
// of "content hash computed over the canonical encoding of the snapshot's
// required sections"); viper reads into this, then it is copied into the
// hashed, validated in-scope config.AuthoritativeConfig.
type authoritativeConfigSource struct {
	SchemaVersion int      `mapstructure:"schemaVersion"`
	Capabilities  []string `mapstructure:"capabilities"`

	TechCosts     config.TechCosts       `mapstructure:"techCosts"`
	ShipStats     config.ShipStats       `mapstructure:"shipStats"`
	Prestige      config.PrestigeValues  `mapstructure:"prestige"`
	Combat        config.CombatTables    `mapstructure:"combat"`
	PlanetClasses config.PlanetClasses   `mapstructure:"planetClasses"`
	Population    config.PopulationRules `mapstructure:"population"`
	Espionage     config.EspionageRules  `mapstructure:"espionage"`
}

func loadAuthoritativeConfig(rulesFile string) (*config.AuthoritativeConfig, error) {
	rv := viper.New()
	rv.SetConfigFile(rulesFile)
	if err := rv.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("galaxyd: read rules file %q: %w", rulesFile, err)
	}

	var src authoritativeConfigSource
	if err := rv.Unmarshal(&src); err != nil {
		return nil, fmt.Errorf("galaxyd: unmarshal rules file: %w", err)
	}

	cfg := &config.AuthoritativeConfig{
		SchemaVersion:    src.SchemaVersion,
		Capabilities:     src.Capabilities,
		RequiredSections: config.AllRequiredSections,
		TechCosts:        src.TechCosts,
		ShipStats:        src.ShipStats,
		Prestige:         src.Prestige,
		Combat:           src.Combat,
		PlanetClasses:    src.PlanetClasses,
		Population:       src.Population,
		Espionage:        src.Espionage,
	}
	cfg.Finalize()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("galaxyd: loaded rules file is invalid: %w", err)
	}
	return cfg, nil
}
