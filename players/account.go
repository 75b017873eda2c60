package players

import "golang.org/x/crypto/bcrypt"

// Account is the operator-account record behind a House, kept separate
// from in-game House state so that slot-claim authentication (§4.L
// KIND_SLOT_CLAIM) has something to check credentials against. Grounded
// on the teacher's players.Player document (username/email/password),
// which carried a plaintext Password field never exercised by any caller
// in the teacher; here it is hashed with bcrypt before storage.
type Account struct {
	PubKey       string `bson:"pubKey" json:"pubKey"` // Ed25519 public key, hex-encoded; the wire protocol's author identity
	Username     string `bson:"username" json:"username"`
	Email        string `bson:"email" json:"email"`
	PasswordHash []byte `bson:"passwordHash" json:"-"`
}

// SetPassword replaces PasswordHash with the bcrypt digest of password.
func (a *Account) SetPassword(password string) error {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	a.PasswordHash = h
	return nil
}

// CheckPassword reports whether password matches the stored hash.
func (a *Account) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword(a.PasswordHash, []byte(password)) == nil
}
