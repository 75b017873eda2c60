package resolver

import (
	"testing"

	"github.com/nicoberrocal/galaxyCore/config"
	"github.com/nicoberrocal/galaxyCore/ids"
	"github.com/nicoberrocal/galaxyCore/orbitables"
	"github.com/nicoberrocal/galaxyCore/players"
	"github.com/nicoberrocal/galaxyCore/ships"
	"github.com/nicoberrocal/galaxyCore/store"
)

func newCollapseTestState(threshold, consecutiveTurns int) (*GameState, *players.House) {
	st := store.New()
	cfg := &config.AuthoritativeConfig{}
	cfg.Prestige.DefensiveCollapseThreshold = threshold
	cfg.Prestige.DefensiveCollapseConsecutiveTurns = consecutiveTurns

	h := &players.House{ID: ids.HouseID(1), Name: "House One"}
	_ = st.AddHouse(h)

	return &GameState{Store: st, Config: cfg, Turn: 1}, h
}

func TestUpdatePrestigeCollapseCountersIncrementsAndResets(t *testing.T) {
	gs, h := newCollapseTestState(0, 3)

	h.Prestige = -5
	updatePrestigeCollapseCounters(gs)
	if h.ConsecutiveNegativePrestigeTurns != 1 {
		t.Fatalf("ConsecutiveNegativePrestigeTurns = %d, want 1", h.ConsecutiveNegativePrestigeTurns)
	}
	updatePrestigeCollapseCounters(gs)
	if h.ConsecutiveNegativePrestigeTurns != 2 {
		t.Fatalf("ConsecutiveNegativePrestigeTurns = %d, want 2", h.ConsecutiveNegativePrestigeTurns)
	}

	h.Prestige = 10
	updatePrestigeCollapseCounters(gs)
	if h.ConsecutiveNegativePrestigeTurns != 0 {
		t.Fatalf("ConsecutiveNegativePrestigeTurns = %d, want reset to 0", h.ConsecutiveNegativePrestigeTurns)
	}
}

func TestCheckEliminationsPrestigeCollapseClearsFleetsAndColonies(t *testing.T) {
	gs, h := newCollapseTestState(0, 2)
	h.Prestige = -100
	h.ConsecutiveNegativePrestigeTurns = 2 // already held below threshold for the configured window

	colID := ids.ColonyID(1)
	_ = gs.Store.AddColony(&orbitables.Colony{ID: colID, Owner: h.ID, System: ids.SystemID(1)})

	shipID := gs.Store.NextShipID()
	_ = gs.Store.AddShip(&ships.Ship{ID: shipID})
	sqID := gs.Store.NextSquadronID()
	_ = gs.Store.AddSquadron(&ships.Squadron{ID: sqID, Owner: h.ID, Flagship: shipID})
	fleetID := gs.Store.NextFleetID()
	_ = gs.Store.AddFleet(&ships.Fleet{ID: fleetID, Owner: h.ID, Squadrons: []ids.SquadronID{sqID}})

	result := &TurnResult{}
	checkEliminations(gs, result)

	if !h.Eliminated {
		t.Fatal("expected house to be eliminated by prestige collapse")
	}
	if len(result.Eliminations) != 1 || result.Eliminations[0] != h.ID {
		t.Fatalf("result.Eliminations = %v, want [%d]", result.Eliminations, h.ID)
	}
	if _, ok := gs.Store.GetFleet(fleetID); ok {
		t.Error("eliminated house's fleet was not cleared")
	}
	if _, ok := gs.Store.GetSquadron(sqID); ok {
		t.Error("eliminated house's squadron was not cleared")
	}
	c, ok := gs.Store.GetColony(colID)
	if !ok {
		t.Fatal("colony unexpectedly removed, want released to neutral")
	}
	if !c.IsNeutral() {
		t.Errorf("colony.Owner = %d, want neutral", c.Owner)
	}
}

func TestCheckEliminationsNotTriggeredBelowConsecutiveTurnCount(t *testing.T) {
	gs, h := newCollapseTestState(0, 5)
	h.Prestige = -100
	h.ConsecutiveNegativePrestigeTurns = 2 // short of the configured 5-turn window

	colID := ids.ColonyID(1)
	_ = gs.Store.AddColony(&orbitables.Colony{ID: colID, Owner: h.ID, System: ids.SystemID(1)})

	result := &TurnResult{}
	checkEliminations(gs, result)

	if h.Eliminated {
		t.Error("house should not be eliminated before the consecutive-turn count is reached")
	}
}

func TestHouseUpkeepPPSumsShipsAcrossSquadrons(t *testing.T) {
	st := store.New()
	h := ids.HouseID(1)

	flagship := ships.Ship{ID: st.NextShipID(), Stats: ships.Stats{UpkeepPP: 10}}
	_ = st.AddShip(&flagship)
	escort := ships.Ship{ID: st.NextShipID(), Stats: ships.Stats{UpkeepPP: 4}}
	_ = st.AddShip(&escort)

	sq := ships.Squadron{ID: st.NextSquadronID(), Owner: h, Flagship: flagship.ID, Escorts: []ids.ShipID{escort.ID}}
	_ = st.AddSquadron(&sq)

	other := ships.Ship{ID: st.NextShipID(), Stats: ships.Stats{UpkeepPP: 999}}
	_ = st.AddShip(&other)
	otherSq := ships.Squadron{ID: st.NextSquadronID(), Owner: ids.HouseID(2), Flagship: other.ID}
	_ = st.AddSquadron(&otherSq)

	gs := &GameState{Store: st, Config: &config.AuthoritativeConfig{}}
	if got := houseUpkeepPP(gs, h); got != 14 {
		t.Errorf("houseUpkeepPP = %d, want 14", got)
	}
}
