// Command galaxyd wires the turn-resolution core into a running process:
// load the daemon and rule-snapshot configuration, open the Mongo-backed
// cache and the Redis-backed relay publisher, and start the multi-game
// director. Grounded on freeeve-polite-betrayal/api/cmd/server's
// connect-then-signal-wait main, generalized from an HTTP API server to a
// headless resolver daemon since this module has no outward-facing
// transport of its own (§6's tables and §4.L's envelopes are the only
// wire contract; serving them over HTTP/WS is left to the caller).
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/nicoberrocal/galaxyCore/cache"
	"github.com/nicoberrocal/galaxyCore/director"
	"github.com/nicoberrocal/galaxyCore/relaypub"
)

func main() {
	configFile := flag.String("config", "galaxyd", "daemon config file name (without extension)")
	flag.Parse()

	settings, err := loadDaemonSettings(*configFile)
	log := newLogger(settingsEnvironmentOr(settings, "development"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load daemon settings")
	}
	log.Info().Str("environment", settings.Environment).Msg("galaxyd starting")

	rules, err := loadAuthoritativeConfig(settings.RulesFile)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load authoritative rule snapshot")
	}
	log.Info().Int("schema_version", rules.SchemaVersion).Msg("rule snapshot loaded and validated")

	signingKey, err := loadOrCreateSigningKey(settings.SigningKeyFile)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load daemon signing key")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := cache.Open(ctx, settings.MongoURI, settings.MongoDB)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to cache store")
	}

	pub, err := relaypub.NewPublisher(settings.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to relay publisher")
	}
	defer pub.Close()

	d := director.New(store, pub, signingKey, log)
	log.Info().Int("active_games", d.ActiveGameCount()).Msg("galaxyd ready")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("galaxyd shutting down")
	cancel()
}

func settingsEnvironmentOr(s daemonSettings, fallback string) string {
	if s.Environment == "" {
		return fallback
	}
	return s.Environment
}
