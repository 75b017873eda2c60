// Package maps holds the static per-game setup record published as a
// KIND_GAME_DEFINITION envelope (wire.KindGameDefinition) before any turn
// is resolved: how many houses a game seats, how long its peace period
// lasts, and which rule snapshot it is bound to. Grounded on the
// teacher's maps.MongoMap, generalized from one denormalized
// map-plus-player-settings document into the definition/seat-claim split
// KIND_GAME_DEFINITION and KIND_SLOT_CLAIM envelopes require — seat
// claiming itself now lives in cache.PlayerSlotDoc.
package maps

import "github.com/nicoberrocal/galaxyCore/wire"

// Definition is the immutable setup a game is created with.
type Definition struct {
	GameID        wire.GameID `bson:"_id" json:"gameId"`
	Name          string      `bson:"name" json:"name"`
	SeatCount     int         `bson:"seatCount" json:"seatCount"`
	PeaceTurns    int         `bson:"peaceTurns" json:"peaceTurns"` // turns before Conflict may contest a system
	SchemaVersion int         `bson:"schemaVersion" json:"schemaVersion"`
}

// InPeacePeriod reports whether turn still falls within the game's
// opening peace window, during which the Conflict phase skips contest
// resolution entirely (§4.D).
func (d Definition) InPeacePeriod(turn int) bool {
	return turn <= d.PeaceTurns
}
