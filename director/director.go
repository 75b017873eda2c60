// Package director schedules resolve_turn calls across every active game
// concurrently (§5 "games independent, may run in parallel threads"). Each
// game is still resolved single-threaded and to completion — the
// concurrency is across games, never within one — and it is the director,
// not the resolver, that persists results and relays them onward. Grounded
// on the teacher's tick-driven top-level scheduler, replaced here with a
// discrete per-turn fan-out using golang.org/x/sync/errgroup the way
// Knoblauchpilze-sogserver drives one goroutine per managed resource.
package director

import (
	"context"
	"crypto/ed25519"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/nicoberrocal/galaxyCore/cache"
	"github.com/nicoberrocal/galaxyCore/fow"
	"github.com/nicoberrocal/galaxyCore/ids"
	"github.com/nicoberrocal/galaxyCore/players"
	"github.com/nicoberrocal/galaxyCore/relaypub"
	"github.com/nicoberrocal/galaxyCore/resolver"
	"github.com/nicoberrocal/galaxyCore/wire"
)

// fullStateEvery is the checkpoint cadence (§4.L "configured checkpoint
// cadence"): every Nth turn a cold full state is relayed instead of a
// delta, bounding how many deltas a reconnecting client must replay.
const fullStateEvery = 20

// GameRuntime is one game's authoritative state plus the lock that
// enforces "one call to resolve_turn runs to completion before any
// subsequent call is admitted" for that game (§5).
type GameRuntime struct {
	ID    wire.GameID
	State *resolver.GameState

	mu sync.Mutex
}

// Director owns every active game's runtime and fans resolve_turn calls
// out across them.
type Director struct {
	cache *cache.Store
	pub   *relaypub.Publisher
	log   zerolog.Logger

	daemonPriv ed25519.PrivateKey
	daemonPub  ed25519.PublicKey

	mu       sync.RWMutex
	runtimes map[wire.GameID]*GameRuntime

	sf singleflight.Group
}

func New(store *cache.Store, pub *relaypub.Publisher, daemonPriv ed25519.PrivateKey, logger zerolog.Logger) *Director {
	return &Director{
		cache:      store,
		pub:        pub,
		log:        logger,
		daemonPriv: daemonPriv,
		daemonPub:  daemonPriv.Public().(ed25519.PublicKey),
		runtimes:   map[wire.GameID]*GameRuntime{},
	}
}

// Register adds a game to the director's active set. The director takes no
// ownership of how gs.Store was populated — only of serializing access to
// it from here on.
func (d *Director) Register(id wire.GameID, gs *resolver.GameState) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.runtimes[id] = &GameRuntime{ID: id, State: gs}
}

// ActiveGameCount reports how many games this director is currently
// responsible for scheduling.
func (d *Director) ActiveGameCount() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.runtimes)
}

func (d *Director) runtime(id wire.GameID) (*GameRuntime, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	gr, ok := d.runtimes[id]
	return gr, ok
}

// ResolveGame runs resolve_turn for exactly one game, then derives and
// relays each house's post-turn snapshot. It blocks until every house's
// snapshot has been published or the context is cancelled.
func (d *Director) ResolveGame(ctx context.Context, id wire.GameID, orders map[ids.HouseID]*wire.CommandPacket) (*resolver.TurnResult, error) {
	gr, ok := d.runtime(id)
	if !ok {
		return nil, fmt.Errorf("director: unknown game %q", id)
	}

	startTurn := gr.State.Turn

	gr.mu.Lock()
	result, err := resolver.ResolveTurn(gr.State, orders)
	gr.mu.Unlock()
	if err != nil {
		d.log.Error().Str("game_id", string(id)).Int("turn", startTurn).Err(err).Msg("resolve_turn failed")
		return nil, err
	}
	d.log.Info().Str("game_id", string(id)).Int("turn", startTurn).
		Int("combat_reports", len(result.CombatReports)).
		Int("eliminations", len(result.Eliminations)).
		Msg("turn resolved")

	if err := d.relayTurn(ctx, gr); err != nil {
		d.log.Error().Str("game_id", string(id)).Int("turn", gr.State.Turn).Err(err).Msg("relay failed")
		return result, err
	}
	return result, nil
}

// ResolveBatch fans ResolveGame out across every game in the batch
// concurrently (§5) and stops at the first failing game's error, the way
// errgroup.Group propagates cancellation to the rest of the fan-out.
func (d *Director) ResolveBatch(ctx context.Context, batch map[wire.GameID]map[ids.HouseID]*wire.CommandPacket) error {
	g, gctx := errgroup.WithContext(ctx)
	for id, orders := range batch {
		id, orders := id, orders
		g.Go(func() error {
			_, err := d.ResolveGame(gctx, id, orders)
			return err
		})
	}
	return g.Wait()
}

// relayTurn derives one snapshot per surviving house and publishes each as
// a signed envelope, fanned out concurrently since derivation and signing
// are both pure CPU work with no shared mutable state across houses.
func (d *Director) relayTurn(ctx context.Context, gr *GameRuntime) error {
	var houses []ids.HouseID
	gr.State.Store.IterActiveHouses(func(h *players.House) bool {
		houses = append(houses, h.ID)
		return true
	})

	g, gctx := errgroup.WithContext(ctx)
	for _, h := range houses {
		h := h
		g.Go(func() error { return d.relayOne(gctx, gr, h) })
	}
	return g.Wait()
}

// relayOne derives, signs, persists, and publishes one house's snapshot
// for the game's current turn. Derivation is singleflight-deduped per
// (game, turn, house) so concurrent callers — a resolved turn and a
// reconnecting client's explicit resync request — share one derivation.
func (d *Director) relayOne(ctx context.Context, gr *GameRuntime, house ids.HouseID) error {
	key := fmt.Sprintf("%s:%d:%d", gr.ID, gr.State.Turn, house)
	snapshot, err, _ := d.sf.Do(key, func() (interface{}, error) {
		return fow.Derive(gr.State.Store, house, gr.State.Turn), nil
	})
	if err != nil {
		return err
	}
	ps := snapshot.(*fow.PlayerState)

	env, payload, err := d.buildEnvelope(gr, house, ps)
	if err != nil {
		return err
	}

	if d.cache != nil {
		if err := d.cache.SavePlayerState(ctx, cache.PlayerStateDoc{
			GameID: gr.ID, HouseID: house, Turn: gr.State.Turn, PayloadBytes: payload,
		}); err != nil {
			return err
		}
	}
	if d.pub != nil {
		if err := d.pub.Publish(ctx, env); err != nil {
			return err
		}
	}
	d.log.Debug().Str("game_id", string(gr.ID)).Int("turn", gr.State.Turn).
		Uint32("house_id", uint32(house)).Str("kind", env.Kind.String()).Msg("snapshot relayed")
	return nil
}

// buildEnvelope decides full-state vs. delta by the checkpoint cadence
// (§4.L) and signs the resulting envelope with the daemon's key.
func (d *Director) buildEnvelope(gr *GameRuntime, house ids.HouseID, ps *fow.PlayerState) (*wire.Envelope, []byte, error) {
	kind := wire.KindDelta
	var payload []byte
	var err error
	if gr.State.Turn == 1 || gr.State.Turn%fullStateEvery == 0 {
		kind = wire.KindFullState
		payload, err = json.Marshal(wire.FullStatePayload{Config: *gr.State.Config, State: *ps})
	} else {
		payload, err = json.Marshal(ps)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("director: marshal snapshot payload: %w", err)
	}

	env := &wire.Envelope{
		Kind: kind,
		Tags: wire.Tags{
			Game:           gr.ID,
			Turn:           gr.State.Turn,
			RecipientHouse: house,
			ConfigHash:     gr.State.Config.ContentHash,
			SchemaVersion:  gr.State.Config.SchemaVersion,
		},
		Payload: payload,
	}
	if err := wire.Sign(env, d.daemonPriv, time.Now()); err != nil {
		return nil, nil, err
	}
	return env, payload, nil
}
