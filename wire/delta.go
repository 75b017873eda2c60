package wire

import (
	"crypto/ed25519"
	"errors"

	"github.com/nicoberrocal/galaxyCore/config"
	"github.com/nicoberrocal/galaxyCore/fow"
)

// ErrStaleTurn, ErrConfigMismatch, and ErrNoAcceptedConfig are the rejection
// reasons for the delta-application hard invariant (§4.L).
var (
	ErrStaleTurn        = errors.New("wire: delta turn <= client's current turn")
	ErrConfigMismatch   = errors.New("wire: delta config hash does not match accepted config")
	ErrNoAcceptedConfig = errors.New("wire: no accepted config; all deltas refused until a full-state snapshot arrives")
)

// ClientAcceptedState is the minimal state a client must track to enforce
// the delta-application rule: its current turn, its last-accepted config
// hash, and the daemon pubkey it trusts.
type ClientAcceptedState struct {
	CurrentTurn      int
	AcceptedConfigHash [32]byte
	HasAcceptedConfig bool
	DaemonPubkey      ed25519.PublicKey
}

// AcceptDelta enforces §4.L's hard invariant: a client must reject any
// delta whose declared config hash mismatches, whose declared turn is not
// strictly greater than the client's current turn, or whose author is not
// the known daemon pubkey.
func AcceptDelta(client *ClientAcceptedState, e *Envelope) error {
	if e.Kind != KindDelta {
		return errors.New("wire: AcceptDelta called on non-delta envelope")
	}
	if err := VerifyAuthor(e, client.DaemonPubkey); err != nil {
		return err
	}
	if !client.HasAcceptedConfig {
		return ErrNoAcceptedConfig
	}
	if e.Tags.ConfigHash != client.AcceptedConfigHash {
		return ErrConfigMismatch
	}
	if e.Tags.Turn <= client.CurrentTurn {
		return ErrStaleTurn
	}
	return nil
}

// AcceptFullState validates a full-state snapshot envelope and, on success,
// updates the client's accepted config hash — a full-state snapshot is the
// only event kind that may (re)establish trust after an AuthorityMismatch
// (§7 "client enters a blocking awaiting-snapshot state").
func AcceptFullState(client *ClientAcceptedState, e *Envelope, cfg *config.AuthoritativeConfig) error {
	if e.Kind != KindFullState {
		return errors.New("wire: AcceptFullState called on non-full-state envelope")
	}
	if err := VerifyAuthor(e, client.DaemonPubkey); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	client.CurrentTurn = e.Tags.Turn
	client.AcceptedConfigHash = e.Tags.ConfigHash
	client.HasAcceptedConfig = true
	return nil
}

// FullStatePayload is the canonical payload carried by a KIND_FULL_STATE
// envelope: the recipient house's derived view plus the config snapshot it
// was derived under (§6 "payload = canonical bytes of (AuthoritativeConfig,
// PlayerState)").
type FullStatePayload struct {
	Config config.AuthoritativeConfig `json:"config"`
	State  fow.PlayerState            `json:"state"`
}
