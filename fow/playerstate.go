// Package fow derives per-house fog-of-war projections from authoritative
// state (§4.K). Grounded on the teacher's players.PlayerGameState as the
// per-player view shape, rebuilt as a pure derivation function instead of
// a persisted per-player document, since the spec requires the projection
// be recomputed deterministically from scratch every turn.
package fow

import (
	"github.com/nicoberrocal/galaxyCore/diplomacy"
	"github.com/nicoberrocal/galaxyCore/ids"
	"github.com/nicoberrocal/galaxyCore/orbitables"
)

// IntelQuality tiers the fidelity of observed intel on a foreign entity
// (§4.K "Quality tiers {Visual, Scan, Spy, Perfect}").
type IntelQuality string

const (
	QualityVisual  IntelQuality = "visual"
	QualityScan    IntelQuality = "scan"
	QualitySpy     IntelQuality = "spy"
	QualityPerfect IntelQuality = "perfect"
)

// VisibleSystemView is one visible system's coords and outgoing lanes.
type VisibleSystemView struct {
	System ids.SystemID        `json:"system"`
	Coords orbitables.HexCoord `json:"coords"`
	Lanes  []orbitables.Lane   `json:"lanes"`
}

// IntelColony is a degraded-fidelity view of a foreign colony.
type IntelColony struct {
	Colony       ids.ColonyID `json:"colony"`
	System       ids.SystemID `json:"system"`
	Owner        ids.HouseID  `json:"owner"`
	Quality      IntelQuality `json:"quality"`
	LastObserved int          `json:"lastObserved"`

	// Present only at Scan quality or better.
	EstimatedPopulationUnits *int64 `json:"estimatedPopulationUnits,omitempty"`
	EstimatedIndustrialUnits *int64 `json:"estimatedIndustrialUnits,omitempty"`
	// Present only at Spy quality or better.
	EstimatedDefenseStrength *int `json:"estimatedDefenseStrength,omitempty"`
}

// IntelFleet is a degraded-fidelity view of a foreign fleet.
type IntelFleet struct {
	Fleet            ids.FleetID  `json:"fleet"`
	Owner            ids.HouseID  `json:"owner"`
	Location         ids.SystemID `json:"location"`
	Quality          IntelQuality `json:"quality"`
	LastDetectedTurn int          `json:"lastDetectedTurn"`
	EstimatedShipCount *int       `json:"estimatedShipCount,omitempty"`
}

// PublicHouseInfo is the always-visible summary of every house's public
// standing (§4.K "Public info: prestige and colony counts for all houses").
type PublicHouseInfo struct {
	House        ids.HouseID `json:"house"`
	Name         string      `json:"name"`
	Prestige     int64       `json:"prestige"`
	ColonyCount  int         `json:"colonyCount"`
	Eliminated   bool        `json:"eliminated"`
}

// ActState is the dynamic game-phase marker (GLOSSARY "Act").
type ActState struct {
	Current    string `json:"current"`
	StartTurn  int    `json:"startTurn"`
}

// Message is one entry in a house's message thread (broadcast or direct).
type Message struct {
	From ids.HouseID `json:"from"`
	To   ids.HouseID `json:"to"` // 0 = broadcast
	Text string      `json:"text"`
	Turn int         `json:"turn"`
}

// PlayerState is the complete per-house view derived from authoritative
// state (§4.K). Derivation is a pure function of (state, house); two
// derivations of the same state for the same house must produce identical
// canonical bytes (§8 invariant 9).
type PlayerState struct {
	House ids.HouseID `json:"house"`
	Turn  int         `json:"turn"`

	OwnColonies    []ids.ColonyID     `json:"ownColonies"`
	OwnFleets      []ids.FleetID      `json:"ownFleets"`
	OwnGroundUnits []ids.GroundUnitID `json:"ownGroundUnits"`

	VisibleSystems  []VisibleSystemView `json:"visibleSystems"`
	VisibleColonies []IntelColony       `json:"visibleColonies"`
	VisibleFleets   []IntelFleet        `json:"visibleFleets"`

	PublicHouses []PublicHouseInfo           `json:"publicHouses"`
	Relations    map[ids.HouseID]diplomacy.Relation `json:"relations"`
	Act          ActState                    `json:"act"`
	Messages     []Message                   `json:"messages"`
}
