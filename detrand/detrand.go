// Package detrand derives deterministic PRNG sources from a turn number
// plus a domain discriminator (§5: "every stochastic decision is drawn
// from a PRNG seeded by a stable key (turn, plus a domain-specific
// discriminator like system id or (attacker, target) pair)"). Grounded on
// the teacher's `bot.SeedBotRng` pattern — a `math/rand.New(rand.NewSource(...))`
// instance threaded explicitly through call sites rather than mutating a
// package-global source, so combat/espionage resolution stays a pure
// function of its inputs.
package detrand

import (
	"hash/fnv"
	"math/rand"
	"strconv"
)

// SeedFor hashes turn and discriminator into a single int64 seed.
func SeedFor(turn int, discriminator string) int64 {
	h := fnv.New64a()
	h.Write([]byte(discriminator))
	h.Write([]byte(strconv.Itoa(turn)))
	return int64(h.Sum64())
}

// New returns a fresh deterministic source for (turn, discriminator).
func New(turn int, discriminator string) *rand.Rand {
	return rand.New(rand.NewSource(SeedFor(turn, discriminator)))
}
