package main

import (
	"os"

	"github.com/rs/zerolog"
)

// newLogger builds the one zerolog.Logger the whole process threads
// through as a field (§9 DESIGN NOTES "global mutable singletons →
// explicit value passed down"), console-formatted in development and
// JSON in every other environment the way neper-stars-houston's
// zerologAdapter is built once at the call site and handed to consumers.
func newLogger(environment string) zerolog.Logger {
	if environment == "development" {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stdout).With().Timestamp().Logger()
}
