// Package cache persists the relay-facing tables named in §6 to MongoDB:
// games, game_definitions, accounts, player_slots, player_states,
// config_snapshots, order_drafts, messages, intel_notes, and
// received_events. Grounded on the teacher's bson-tagged document style
// (maps.MongoMap, players.Player); the teacher itself never wires a live
// mongo.Client, so the connection and collection plumbing here follows
// the mongo-driver/v2 idiom directly.
package cache

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/nicoberrocal/galaxyCore/ids"
	"github.com/nicoberrocal/galaxyCore/maps"
	"github.com/nicoberrocal/galaxyCore/players"
	"github.com/nicoberrocal/galaxyCore/wire"
)

// Store wraps a Mongo database handle with one method set per table.
type Store struct {
	db *mongo.Database
}

// Open connects to `uri` and returns a Store bound to `dbName`.
func Open(ctx context.Context, uri, dbName string) (*Store, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("cache: connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("cache: ping: %w", err)
	}
	return &Store{db: client.Database(dbName)}, nil
}

func (s *Store) games() *mongo.Collection         { return s.db.Collection("games") }
func (s *Store) playerSlots() *mongo.Collection   { return s.db.Collection("player_slots") }
func (s *Store) playerStates() *mongo.Collection  { return s.db.Collection("player_states") }
func (s *Store) configSnapshots() *mongo.Collection { return s.db.Collection("config_snapshots") }
func (s *Store) orderDrafts() *mongo.Collection   { return s.db.Collection("order_drafts") }
func (s *Store) messages() *mongo.Collection      { return s.db.Collection("messages") }
func (s *Store) intelNotes() *mongo.Collection    { return s.db.Collection("intel_notes") }
func (s *Store) receivedEvents() *mongo.Collection { return s.db.Collection("received_events") }
func (s *Store) gameDefinitions() *mongo.Collection { return s.db.Collection("game_definitions") }
func (s *Store) accounts() *mongo.Collection       { return s.db.Collection("accounts") }

// GameDoc is the `games` table row (§6).
type GameDoc struct {
	ID          wire.GameID `bson:"_id"`
	Name        string      `bson:"name"`
	Turn        int         `bson:"turn"`
	Status      string      `bson:"status"`
	RelayURL    string      `bson:"relayUrl"`
	DaemonPubkey []byte     `bson:"daemonPubkey"`
}

func (s *Store) UpsertGame(ctx context.Context, g GameDoc) error {
	_, err := s.games().ReplaceOne(ctx, bson.M{"_id": g.ID}, g, options.Replace().SetUpsert(true))
	return err
}

func (s *Store) GetGame(ctx context.Context, id wire.GameID) (*GameDoc, error) {
	var g GameDoc
	err := s.games().FindOne(ctx, bson.M{"_id": id}).Decode(&g)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &g, err
}

// SaveGameDefinition upserts the KIND_GAME_DEFINITION record a game is
// created with, keyed by its GameID.
func (s *Store) SaveGameDefinition(ctx context.Context, def maps.Definition) error {
	_, err := s.gameDefinitions().ReplaceOne(ctx, bson.M{"_id": def.GameID}, def, options.Replace().SetUpsert(true))
	return err
}

func (s *Store) GetGameDefinition(ctx context.Context, game wire.GameID) (*maps.Definition, error) {
	var def maps.Definition
	err := s.gameDefinitions().FindOne(ctx, bson.M{"_id": game}).Decode(&def)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &def, err
}

// SaveAccount upserts the operator-account credentials a KIND_SLOT_CLAIM
// envelope is checked against, keyed by its Ed25519 public key.
func (s *Store) SaveAccount(ctx context.Context, a players.Account) error {
	_, err := s.accounts().ReplaceOne(ctx, bson.M{"_id": a.PubKey}, a, options.Replace().SetUpsert(true))
	return err
}

func (s *Store) GetAccountByPubKey(ctx context.Context, pubKey string) (*players.Account, error) {
	var a players.Account
	err := s.accounts().FindOne(ctx, bson.M{"_id": pubKey}).Decode(&a)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &a, err
}

// PlayerSlotDoc is the `player_slots` table row, keyed by (game, pubkey).
type PlayerSlotDoc struct {
	GameID  wire.GameID `bson:"gameId"`
	Pubkey  string      `bson:"pubkey"`
	HouseID ids.HouseID `bson:"houseId"`
}

func (s *Store) ClaimSlot(ctx context.Context, slot PlayerSlotDoc) error {
	_, err := s.playerSlots().UpdateOne(ctx,
		bson.M{"gameId": slot.GameID, "pubkey": slot.Pubkey},
		bson.M{"$set": slot},
		options.Update().SetUpsert(true))
	return err
}

func (s *Store) SlotsForGame(ctx context.Context, game wire.GameID) ([]PlayerSlotDoc, error) {
	cur, err := s.playerSlots().Find(ctx, bson.M{"gameId": game})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []PlayerSlotDoc
	err = cur.All(ctx, &out)
	return out, err
}

// PlayerStateDoc is the `player_states` table row. PayloadBytes is
// zstd-compressed canonical bytes of a fow.PlayerState (DOMAIN STACK).
type PlayerStateDoc struct {
	GameID       wire.GameID `bson:"gameId"`
	HouseID      ids.HouseID `bson:"houseId"`
	Turn         int         `bson:"turn"`
	PayloadBytes []byte      `bson:"payloadBytes"`
}

func (s *Store) SavePlayerState(ctx context.Context, doc PlayerStateDoc) error {
	compressed, err := compress(doc.PayloadBytes)
	if err != nil {
		return err
	}
	doc.PayloadBytes = compressed
	_, err = s.playerStates().UpdateOne(ctx,
		bson.M{"gameId": doc.GameID, "houseId": doc.HouseID},
		bson.M{"$set": doc},
		options.Update().SetUpsert(true))
	return err
}

func (s *Store) LoadPlayerState(ctx context.Context, game wire.GameID, house ids.HouseID) (*PlayerStateDoc, error) {
	var doc PlayerStateDoc
	err := s.playerStates().FindOne(ctx, bson.M{"gameId": game, "houseId": house}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	decompressed, err := decompress(doc.PayloadBytes)
	if err != nil {
		return nil, err
	}
	doc.PayloadBytes = decompressed
	return &doc, nil
}

// ConfigSnapshotDoc is the `config_snapshots` table row.
type ConfigSnapshotDoc struct {
	GameID        wire.GameID `bson:"gameId"`
	SchemaVersion int         `bson:"schemaVersion"`
	ConfigHash    [32]byte    `bson:"configHash"`
	PayloadBytes  []byte      `bson:"payloadBytes"`
}

func (s *Store) SaveConfigSnapshot(ctx context.Context, doc ConfigSnapshotDoc) error {
	compressed, err := compress(doc.PayloadBytes)
	if err != nil {
		return err
	}
	doc.PayloadBytes = compressed
	_, err = s.configSnapshots().UpdateOne(ctx,
		bson.M{"gameId": doc.GameID, "configHash": doc.ConfigHash},
		bson.M{"$set": doc},
		options.Update().SetUpsert(true))
	return err
}

// OrderDraftDoc is the `order_drafts` table row. Drafts are discarded on
// load if stale (§6 "Draft invalidation").
type OrderDraftDoc struct {
	GameID       wire.GameID `bson:"gameId"`
	HouseID      ids.HouseID `bson:"houseId"`
	Turn         int         `bson:"turn"`
	ConfigHash   [32]byte    `bson:"configHash"`
	PayloadBytes []byte      `bson:"payloadBytes"`
}

func (s *Store) SaveDraft(ctx context.Context, doc OrderDraftDoc) error {
	_, err := s.orderDrafts().UpdateOne(ctx,
		bson.M{"gameId": doc.GameID, "houseId": doc.HouseID},
		bson.M{"$set": doc},
		options.Update().SetUpsert(true))
	return err
}

// LoadDraft fetches a house's saved draft, applying the discard rule: a
// draft whose turn or config hash no longer matches current is dropped
// rather than returned (§6 "Draft invalidation: ... if its turn ≠ current
// turn or its config_hash ≠ accepted config hash, discard").
func (s *Store) LoadDraft(ctx context.Context, game wire.GameID, house ids.HouseID, currentTurn int, acceptedConfigHash [32]byte) (*OrderDraftDoc, error) {
	var doc OrderDraftDoc
	err := s.orderDrafts().FindOne(ctx, bson.M{"gameId": game, "houseId": house}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if doc.Turn != currentTurn || doc.ConfigHash != acceptedConfigHash {
		_, _ = s.orderDrafts().DeleteOne(ctx, bson.M{"gameId": game, "houseId": house})
		return nil, nil
	}
	return &doc, nil
}

// MessageDoc is the `messages` table row.
type MessageDoc struct {
	GameID    wire.GameID `bson:"gameId"`
	FromHouse ids.HouseID `bson:"fromHouse"`
	ToHouse   ids.HouseID `bson:"toHouse"` // 0 = broadcast
	Text      string      `bson:"text"`
	Timestamp time.Time   `bson:"ts"`
	IsRead    bool        `bson:"isRead"`
}

func (s *Store) InsertMessage(ctx context.Context, m MessageDoc) error {
	_, err := s.messages().InsertOne(ctx, m)
	return err
}

func (s *Store) MessagesFor(ctx context.Context, game wire.GameID, house ids.HouseID) ([]MessageDoc, error) {
	cur, err := s.messages().Find(ctx, bson.M{
		"gameId": game,
		"$or":    bson.A{bson.M{"toHouse": house}, bson.M{"toHouse": ids.HouseID(0)}, bson.M{"fromHouse": house}},
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []MessageDoc
	err = cur.All(ctx, &out)
	return out, err
}

// IntelNoteDoc is the `intel_notes` table row — free-form per-house,
// per-system annotations, never part of authoritative state.
type IntelNoteDoc struct {
	GameID   wire.GameID  `bson:"gameId"`
	HouseID  ids.HouseID  `bson:"houseId"`
	SystemID ids.SystemID `bson:"systemId"`
	Text     string       `bson:"text"`
}

func (s *Store) SaveIntelNote(ctx context.Context, n IntelNoteDoc) error {
	_, err := s.intelNotes().UpdateOne(ctx,
		bson.M{"gameId": n.GameID, "houseId": n.HouseID, "systemId": n.SystemID},
		bson.M{"$set": n},
		options.Update().SetUpsert(true))
	return err
}

// ReceivedEventDoc is the `received_events` de-dup table row.
type ReceivedEventDoc struct {
	EventID string      `bson:"_id"`
	Kind    wire.Kind   `bson:"kind"`
	GameID  wire.GameID `bson:"gameId"`
}

// MarkReceived records an event id, returning false if it was already
// present (de-dup check for at-least-once relay delivery).
func (s *Store) MarkReceived(ctx context.Context, doc ReceivedEventDoc) (isNew bool, err error) {
	_, err = s.receivedEvents().InsertOne(ctx, doc)
	if mongo.IsDuplicateKeyError(err) {
		return false, nil
	}
	return err == nil, err
}
