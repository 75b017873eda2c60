// Package transit holds the Population-in-transit entity (§3) — souls
// moving between colonies aboard Space Guild civilian lift, tracked
// independently of any Fleet/Ship so that arrival/return logic doesn't
// need to resolve through the ship store.
package transit

import "github.com/nicoberrocal/galaxyCore/ids"

// Entry is one in-flight population transfer (§3 Population-in-transit).
// Removed on arrival, or re-credited to Source if the resolver determines
// the destination is unreachable.
type Entry struct {
	ID          uint32       `bson:"_id" json:"id"`
	Source      ids.ColonyID `bson:"source" json:"source"`
	Destination ids.ColonyID `bson:"destination" json:"destination"`
	House       ids.HouseID  `bson:"house" json:"house"`
	PTU         int64        `bson:"ptu" json:"ptu"`
	PPPaid      int64        `bson:"ppPaid" json:"ppPaid"`
	DispatchTurn int         `bson:"dispatchTurn" json:"dispatchTurn"`
	ArrivalTurn int          `bson:"arrivalTurn" json:"arrivalTurn"`
}

// Souls returns the exact soul count represented by this transfer, using
// the spec's fixed 50,000-souls-per-PTU grain (GLOSSARY).
func (e *Entry) Souls() uint64 { return uint64(e.PTU) * 50_000 }
