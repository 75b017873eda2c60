package diplomacy

import (
	"fmt"

	"github.com/nicoberrocal/galaxyCore/players"
)

// DefaultProposalTimeoutTurns is how long a pact proposal waits for a
// response before lapsing (§9 Open Question #1).
const DefaultProposalTimeoutTurns = 3

// ErrDishonored is returned when a dishonored house attempts to propose a pact.
var ErrDishonored = fmt.Errorf("diplomacy: proposer is dishonored")

// ErrIsolated is returned when an isolated house attempts to propose a pact.
var ErrIsolated = fmt.Errorf("diplomacy: proposer is isolated")

// ProposePact records an outstanding proposal from `from` to `to` for the
// given target relation. A dishonored or isolated proposer cannot propose
// (§4.J "Proposing a pact requires the proposer not be dishonored and not
// isolated").
func ProposePact(from, to *players.House, target Relation, turn int) error {
	if from.DishonoredTurnsRemaining > 0 {
		return ErrDishonored
	}
	if from.IsolatedTurnsRemaining > 0 {
		return ErrIsolated
	}
	from.PendingPactProposals = append(from.PendingPactProposals, players.PactProposal{
		To:             to.ID,
		ProposedAt:     turn,
		ExpiresTurn:    turn + DefaultProposalTimeoutTurns,
		TargetRelation: int(target),
	})
	return nil
}

// RespondPact applies `to`'s answer to a pending proposal from `from`. If
// accept is false, or the proposal already lapsed, no relation change
// occurs. On accept, both directions are set to the proposed relation
// (pacts are always mutual in this model).
func RespondPact(from, to *players.House, turn int, accept bool) bool {
	idx := -1
	for i, p := range from.PendingPactProposals {
		if p.To == to.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}
	prop := from.PendingPactProposals[idx]
	from.PendingPactProposals = append(from.PendingPactProposals[:idx], from.PendingPactProposals[idx+1:]...)
	if prop.ExpiresTurn < turn {
		return false
	}
	if !accept {
		return false
	}
	SetRelation(from.Relations, to.ID, Relation(prop.TargetRelation))
	SetRelation(to.Relations, from.ID, Relation(prop.TargetRelation))
	return true
}

// ExpireLapsedProposals drops proposals whose response window has closed;
// called once per Maintenance phase.
func ExpireLapsedProposals(h *players.House, turn int) {
	kept := h.PendingPactProposals[:0]
	for _, p := range h.PendingPactProposals {
		if p.ExpiresTurn >= turn {
			kept = append(kept, p)
		}
	}
	h.PendingPactProposals = kept
}

// BreakNonAggression processes `breaker` unilaterally breaking a
// NonAggression pact with `victim` (§4.J): records a violation, applies an
// immediate prestige penalty, sets Dishonored (3 turns) and Isolated (5
// turns) on the breaker, and transitions both directions to Enemy.
func BreakNonAggression(breaker, victim *players.House, turn int, prestigePenalty int) {
	breaker.Violations = append(breaker.Violations, players.ViolationRecord{
		Turn: turn, Against: victim.ID, Kind: "broke_non_aggression",
	})
	breaker.Prestige -= int64(prestigePenalty)
	breaker.DishonoredTurnsRemaining = 3
	breaker.IsolatedTurnsRemaining = 5
	SetRelation(breaker.Relations, victim.ID, Enemy)
	SetRelation(victim.Relations, breaker.ID, Enemy)
}

// DecrementTimers advances Dishonored/Isolated countdowns by one turn,
// called once per Maintenance phase (§4.D step 4).
func DecrementTimers(h *players.House) {
	if h.DishonoredTurnsRemaining > 0 {
		h.DishonoredTurnsRemaining--
	}
	if h.IsolatedTurnsRemaining > 0 {
		h.IsolatedTurnsRemaining--
	}
}

// CanProposeTo reports whether `from` may currently propose a pact at all.
func CanProposeTo(from *players.House) bool {
	return from.DishonoredTurnsRemaining == 0 && from.IsolatedTurnsRemaining == 0
}
