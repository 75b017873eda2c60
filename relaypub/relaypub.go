// Package relaypub publishes signed wire envelopes onto per-game Redis
// pub/sub channels, standing in for the out-of-scope relay transport
// (§5, §6), and fronts the order_drafts table with a Redis hot cache.
// Grounded on freeeve-polite-betrayal's internal/repository/redis.Client
// connection wrapper and internal/service.TimerListener subscribe loop.
package relaypub

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nicoberrocal/galaxyCore/ids"
	"github.com/nicoberrocal/galaxyCore/wire"
)

// Publisher wraps a Redis client for envelope publication and draft
// hot-caching.
type Publisher struct {
	rdb *redis.Client
}

// NewPublisher creates a Publisher from a Redis connection URL.
func NewPublisher(redisURL string) (*Publisher, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("relaypub: parse redis url: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("relaypub: ping: %w", err)
	}
	return &Publisher{rdb: rdb}, nil
}

// NewPublisherFromClient wraps an existing redis.Client, for tests.
func NewPublisherFromClient(rdb *redis.Client) *Publisher {
	return &Publisher{rdb: rdb}
}

func (p *Publisher) Close() error { return p.rdb.Close() }

func channelFor(game wire.GameID) string {
	return fmt.Sprintf("game:%s:events", game)
}

// Publish broadcasts a signed envelope onto its game's channel. Callers
// are expected to have already called wire.Sign.
func (p *Publisher) Publish(ctx context.Context, e *wire.Envelope) error {
	body, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("relaypub: marshal envelope: %w", err)
	}
	return p.rdb.Publish(ctx, channelFor(e.Tags.Game), body).Err()
}

// Subscription streams envelopes for one game channel until Close or ctx
// cancellation.
type Subscription struct {
	pubsub *redis.PubSub
	ch     <-chan *redis.Message
}

// Subscribe opens a subscription to a game's event channel.
func (p *Publisher) Subscribe(ctx context.Context, game wire.GameID) *Subscription {
	pubsub := p.rdb.Subscribe(ctx, channelFor(game))
	return &Subscription{pubsub: pubsub, ch: pubsub.Channel()}
}

func (s *Subscription) Close() error { return s.pubsub.Close() }

// Next blocks until the next envelope arrives, ctx is cancelled, or the
// channel closes.
func (s *Subscription) Next(ctx context.Context) (*wire.Envelope, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case msg, ok := <-s.ch:
		if !ok {
			return nil, fmt.Errorf("relaypub: subscription closed")
		}
		var e wire.Envelope
		if err := json.Unmarshal([]byte(msg.Payload), &e); err != nil {
			return nil, fmt.Errorf("relaypub: unmarshal envelope: %w", err)
		}
		return &e, nil
	}
}

// draftHotCacheTTL bounds how long an in-progress draft lives in Redis
// before it must be re-read from cache.Store. This package never writes
// drafts to Mongo; the durable copy is whatever callers save with
// cache.Store.SaveDraft.
const draftHotCacheTTL = 30 * time.Minute

func draftKey(game wire.GameID, house ids.HouseID) string {
	return fmt.Sprintf("draft:%s:%d", game, house)
}

// CacheDraft stores a house's in-progress order draft in the Redis hot
// cache in front of Mongo's order_drafts table (DOMAIN STACK).
func (p *Publisher) CacheDraft(ctx context.Context, game wire.GameID, house ids.HouseID, payload []byte) error {
	return p.rdb.Set(ctx, draftKey(game, house), payload, draftHotCacheTTL).Err()
}

// GetCachedDraft reads a house's draft from the hot cache; a cache miss is
// not an error, callers fall back to cache.Store.LoadDraft.
func (p *Publisher) GetCachedDraft(ctx context.Context, game wire.GameID, house ids.HouseID) ([]byte, bool, error) {
	b, err := p.rdb.Get(ctx, draftKey(game, house)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

// InvalidateCachedDraft drops a house's cached draft, used when its turn or
// config hash goes stale (§6 "Draft invalidation").
func (p *Publisher) InvalidateCachedDraft(ctx context.Context, game wire.GameID, house ids.HouseID) error {
	return p.rdb.Del(ctx, draftKey(game, house)).Err()
}
