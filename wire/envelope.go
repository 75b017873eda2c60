// Package wire implements the signed-envelope relay protocol (§4.L): event
// kinds, canonical-hash-backed signatures, the command packet shape, and
// the delta-application hard invariant. Grounded on the teacher's BSON
// document style for payload shapes and on freeeve-polite-betrayal's
// internal/auth JWT manager for the signing/verification flow, generalized
// from HMAC user sessions to EdDSA daemon-authored events.
package wire

import (
	"crypto/ed25519"
	"crypto/sha256"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/nicoberrocal/galaxyCore/ids"
	"github.com/nicoberrocal/galaxyCore/wire/canonical"
)

// Kind identifies the shape and purpose of an envelope's payload (§6
// "Relay event kinds").
type Kind int

const (
	KindGameDefinition Kind = iota
	KindSlotClaim
	KindFullState
	KindDelta
	KindCommandSubmit
	KindMessage
	KindJoinError
)

func (k Kind) String() string {
	switch k {
	case KindGameDefinition:
		return "game_definition"
	case KindSlotClaim:
		return "slot_claim"
	case KindFullState:
		return "full_state"
	case KindDelta:
		return "delta"
	case KindCommandSubmit:
		return "command_submit"
	case KindMessage:
		return "message"
	case KindJoinError:
		return "join_error"
	default:
		return "unknown"
	}
}

// GameID is an opaque per-game identifier minted with google/uuid on game
// creation (SPEC_FULL DOMAIN STACK "wire/ event IDs").
type GameID string

// NewGameID mints a fresh game identifier.
func NewGameID() GameID { return GameID(uuid.NewString()) }

// Tags carries the kind-specific routing fields called out in §6, flattened
// into one struct since every kind uses only a handful of them. Unused
// fields are left at zero value for a given kind.
type Tags struct {
	Game          GameID      `json:"g"`
	Turn          int         `json:"turn,omitempty"`
	RecipientHouse ids.HouseID `json:"p,omitempty"`
	FromHouse     ids.HouseID `json:"fromHouse,omitempty"`
	ToHouse       ids.HouseID `json:"toHouse,omitempty"` // 0 = broadcast
	ConfigHash    [32]byte    `json:"configHash,omitempty"`
	SchemaVersion int         `json:"schemaVersion,omitempty"`
	InviteCode    string      `json:"inviteCode,omitempty"`
	PlayerPubkey  string      `json:"playerPubkey,omitempty"`
}

// Envelope is the signed unit of relay transport (§4.L "Every
// server-authored event is a signed envelope"). Payload is opaque canonical
// bytes whose shape is determined by Kind.
type Envelope struct {
	ID        string    `json:"id"`
	Kind      Kind      `json:"kind"`
	AuthorPub ed25519.PublicKey `json:"authorPub"`
	CreatedAt int64     `json:"createdAt"` // unix nanos, monotonic per author
	Tags      Tags      `json:"tags"`
	Payload   []byte    `json:"payload"`
	Signature string    `json:"signature"` // full compact EdDSA JWT (header.claims.signature) carrying the event hash
}

// eventClaims is the JWT claim set carrying the envelope's canonical hash;
// the JWT's own signature IS the envelope signature (SPEC_FULL DOMAIN STACK
// "envelope signature is an EdDSA-signed JWT-style compact token").
type eventClaims struct {
	EventHash string `json:"eh"`
	jwt.RegisteredClaims
}

// Hash computes the canonical event hash over (kind, author, createdAt,
// tags, payload) in declared order (§4.L "signature over the canonical
// event hash").
func (e *Envelope) Hash() [32]byte {
	enc := canonical.NewEncoder()
	enc.WriteInt(int64(e.Kind))
	enc.WriteBytes(e.AuthorPub)
	enc.WriteInt(e.CreatedAt)
	enc.WriteString(string(e.Tags.Game))
	enc.WriteInt(int64(e.Tags.Turn))
	enc.WriteUint32(uint32(e.Tags.RecipientHouse))
	enc.WriteUint32(uint32(e.Tags.FromHouse))
	enc.WriteUint32(uint32(e.Tags.ToHouse))
	enc.WriteBytes(e.Tags.ConfigHash[:])
	enc.WriteInt(int64(e.Tags.SchemaVersion))
	enc.WriteString(e.Tags.InviteCode)
	enc.WriteString(e.Tags.PlayerPubkey)
	enc.WriteBytes(e.Payload)
	return sha256.Sum256(enc.Bytes())
}

// Sign fills in ID, CreatedAt, AuthorPub, and Signature using the given
// Ed25519 private key, minting a fresh event ID.
func Sign(e *Envelope, priv ed25519.PrivateKey, now time.Time) error {
	e.ID = uuid.NewString()
	e.AuthorPub = priv.Public().(ed25519.PublicKey)
	e.CreatedAt = now.UnixNano()

	h := e.Hash()
	claims := eventClaims{
		EventHash: fmt.Sprintf("%x", h),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(now),
			ID:       e.ID,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims)
	signed, err := token.SignedString(priv)
	if err != nil {
		return fmt.Errorf("wire: sign envelope: %w", err)
	}
	e.Signature = signed
	return nil
}

var (
	ErrBadSignature  = errors.New("wire: envelope signature invalid")
	ErrHashMismatch  = errors.New("wire: signed hash does not match envelope contents")
	ErrUnknownAuthor = errors.New("wire: author pubkey does not match expected daemon key")
)

// Verify checks the envelope's signature against its own AuthorPub and that
// the signed hash matches the envelope's current contents (guards against
// payload tampering after signing).
func Verify(e *Envelope) error {
	token, err := jwt.ParseWithClaims(e.Signature, &eventClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodEd25519); !ok {
			return nil, ErrBadSignature
		}
		return ed25519.PublicKey(e.AuthorPub), nil
	})
	if err != nil || !token.Valid {
		return ErrBadSignature
	}
	claims, ok := token.Claims.(*eventClaims)
	if !ok {
		return ErrBadSignature
	}
	if claims.EventHash != fmt.Sprintf("%x", e.Hash()) {
		return ErrHashMismatch
	}
	return nil
}

// VerifyAuthor additionally requires the envelope's author to match the
// known daemon pubkey for the game (§4.L "Clients trust only the author
// matching the game's daemon pubkey").
func VerifyAuthor(e *Envelope, daemonPub ed25519.PublicKey) error {
	if err := Verify(e); err != nil {
		return err
	}
	if !e.AuthorPub.Equal(daemonPub) {
		return ErrUnknownAuthor
	}
	return nil
}
