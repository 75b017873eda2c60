package main

import (
	"crypto/ed25519"
	"fmt"
	"os"
)

// loadOrCreateSigningKey reads a raw ed25519 private key from path,
// generating and persisting a fresh one on first run. The daemon's events
// are only as trustworthy as this file's access control (§4.L "every
// server-authored event is a signed envelope").
func loadOrCreateSigningKey(path string) (ed25519.PrivateKey, error) {
	raw, err := os.ReadFile(path)
	if err == nil {
		if len(raw) != ed25519.PrivateKeySize {
			return nil, fmt.Errorf("galaxyd: signing key file %q has wrong size %d", path, len(raw))
		}
		return ed25519.PrivateKey(raw), nil
	}
	if !os.IsNotExist(err) {
		return nil, fmt.Errorf("galaxyd: read signing key: %w", err)
	}

	_, priv, genErr := ed25519.GenerateKey(nil)
	if genErr != nil {
		return nil, fmt.Errorf("galaxyd: generate signing key: %w", genErr)
	}
	if writeErr := os.WriteFile(path, priv, 0600); writeErr != nil {
		return nil, fmt.Errorf("galaxyd: persist signing key: %w", writeErr)
	}
	return priv, nil
}
