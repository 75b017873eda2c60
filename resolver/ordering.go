package resolver

import (
	"sort"

	"github.com/nicoberrocal/galaxyCore/ids"
	"github.com/nicoberrocal/galaxyCore/orbitables"
	"github.com/nicoberrocal/galaxyCore/store"
	"github.com/nicoberrocal/galaxyCore/wire"
)

// sortedHouseIDs returns the keys of `m` in ascending canonical order (§5
// "within a phase, order among houses is by a canonical house-id ordering
// (ascending) for any operation whose result could depend on iteration
// order").
func sortedHouseIDs(m map[ids.HouseID]*wire.CommandPacket) []ids.HouseID {
	out := make([]ids.HouseID, 0, len(m))
	for h := range m {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// sortedSystemIDs returns every system in the store in ascending ID order.
func sortedSystemIDs(st *store.Store) []ids.SystemID {
	var out []ids.SystemID
	st.IterSystems(func(s *orbitables.System) bool {
		out = append(out, s.ID)
		return true
	})
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func sortedSystemIDsFromSet(set map[ids.SystemID]bool) []ids.SystemID {
	out := make([]ids.SystemID, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// sortedColonyIDs returns every colony owned by `h` in ascending ID order.
func sortedColonyIDs(st *store.Store, h ids.HouseID) []ids.ColonyID {
	var out []ids.ColonyID
	st.IterColoniesByOwner(h, func(c *orbitables.Colony) bool {
		out = append(out, c.ID)
		return true
	})
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
