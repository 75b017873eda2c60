package players

import "testing"

func TestAccountPasswordRoundTrip(t *testing.T) {
	var a Account
	if err := a.SetPassword("correct horse battery staple"); err != nil {
		t.Fatalf("SetPassword: %v", err)
	}
	if !a.CheckPassword("correct horse battery staple") {
		t.Errorf("CheckPassword rejected the password it was just set with")
	}
	if a.CheckPassword("wrong password") {
		t.Errorf("CheckPassword accepted an incorrect password")
	}
}

func TestAccountPasswordNeverStoredPlaintext(t *testing.T) {
	var a Account
	const pw = "hunter2"
	if err := a.SetPassword(pw); err != nil {
		t.Fatalf("SetPassword: %v", err)
	}
	if string(a.PasswordHash) == pw {
		t.Errorf("PasswordHash must not equal the plaintext password")
	}
}
