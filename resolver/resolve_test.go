package resolver

import (
	"testing"

	"github.com/nicoberrocal/galaxyCore/config"
	"github.com/nicoberrocal/galaxyCore/store"
)

func TestResolveTurnAdvancesTurnOnEmptyGame(t *testing.T) {
	gs := &GameState{Store: store.New(), Config: &config.AuthoritativeConfig{}, Turn: 1}

	result, err := ResolveTurn(gs, nil)
	if err != nil {
		t.Fatalf("ResolveTurn: %v", err)
	}
	if gs.Turn != 2 {
		t.Errorf("gs.Turn = %d, want 2", gs.Turn)
	}
	if result.NewTurn != 2 {
		t.Errorf("result.NewTurn = %d, want 2", result.NewTurn)
	}
}

func TestResolveTurnRefusesQuarantinedGame(t *testing.T) {
	gs := &GameState{Store: store.New(), Config: &config.AuthoritativeConfig{}, Turn: 5, Quarantined: true}

	_, err := ResolveTurn(gs, nil)
	if err == nil {
		t.Fatal("expected an error for a quarantined game, got nil")
	}
	if _, ok := err.(CorruptionError); !ok {
		t.Errorf("err = %T, want CorruptionError", err)
	}
	if gs.Turn != 5 {
		t.Errorf("gs.Turn changed to %d despite quarantine, want unchanged 5", gs.Turn)
	}
}
