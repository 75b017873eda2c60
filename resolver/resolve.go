package resolver

import (
	"github.com/nicoberrocal/galaxyCore/ids"
	"github.com/nicoberrocal/galaxyCore/wire"
)

// ResolveTurn runs one full turn: Conflict, Income, Command, Maintenance
// (§4.D), in that fixed order — Conflict precedes Income so bombardment
// damage is visible to production, Command precedes Maintenance so newly
// submitted orders see a still-current turn number when validated.
//
// It never touches a transport or a database; gs.Store is mutated in
// place and the returned TurnResult is the full account of what happened,
// including every rejected order, for the caller to persist and relay.
func ResolveTurn(gs *GameState, orders map[ids.HouseID]*wire.CommandPacket) (*TurnResult, error) {
	if gs.Quarantined {
		return nil, CorruptionError{Reason: "game is quarantined, resolve_turn refused"}
	}
	if orders == nil {
		orders = map[ids.HouseID]*wire.CommandPacket{}
	}

	result := &TurnResult{}

	runConflict(gs, orders, result)
	runIncome(gs, orders, result)
	runCommand(gs, orders, result)
	runMaintenance(gs, result)

	return result, nil
}
