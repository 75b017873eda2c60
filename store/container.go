// Package store is the entity store: data-oriented containers with
// secondary indices and invariant-preserving mutators (§4.A). Grounded in
// shape on the teacher's document-per-collection Mongo idiom, but
// restructured per §9 DESIGN NOTES ("object-with-methods tied to heavy
// indirection → a pure data record per entity kind plus a free-function
// entity-ops module"): each entity kind lives in a generic dense
// container, and cross-entity lookups go through dedicated secondary
// indices defined next to their primary storage, never an ad-hoc "table
// of anything".
package store

import "github.com/nicoberrocal/galaxyCore/ids"

// container is a dense-vector-plus-id-index store for one entity kind.
// A removal compacts by swap-with-last and updates the index (§4.A).
type container[ID comparable, T any] struct {
	dense []T
	ids   []ID
	pos   map[ID]int
	idOf  func(T) ID
}

func newContainer[ID comparable, T any](idOf func(T) ID) *container[ID, T] {
	return &container[ID, T]{pos: make(map[ID]int), idOf: idOf}
}

// Add inserts a new entity under `id`. Fails with ids.ErrDuplicateID if the
// ID is already occupied (§4.A add<K>).
func (c *container[ID, T]) Add(kind string, id ID, value T) error {
	if _, ok := c.pos[id]; ok {
		return ids.ErrDuplicateID{Kind: kind, ID: anyToUint32(id)}
	}
	c.pos[id] = len(c.dense)
	c.dense = append(c.dense, value)
	c.ids = append(c.ids, id)
	return nil
}

// Get returns the entity for `id`, or false if absent.
func (c *container[ID, T]) Get(id ID) (T, bool) {
	var zero T
	i, ok := c.pos[id]
	if !ok {
		return zero, false
	}
	return c.dense[i], true
}

// MustGet panics if the id is not found; reserved for code paths already
// protected by an index lookup (internal use only).
func (c *container[ID, T]) MustGet(id ID) T {
	v, ok := c.Get(id)
	if !ok {
		panic("store: id not found in container")
	}
	return v
}

// Update replaces the stored value for `id` wholesale. Callers must not
// use this to change an indexed field (location/owner) — the store's
// dedicated mutators handle those so secondary indices stay consistent
// (§4.A "rejects attempts to change an indexed field").
func (c *container[ID, T]) Update(kind string, id ID, value T) error {
	i, ok := c.pos[id]
	if !ok {
		return ids.ErrNotFound{Kind: kind, ID: anyToUint32(id)}
	}
	c.dense[i] = value
	return nil
}

// Remove deletes the entity for `id` by swap-with-last compaction.
func (c *container[ID, T]) Remove(kind string, id ID) error {
	i, ok := c.pos[id]
	if !ok {
		return ids.ErrNotFound{Kind: kind, ID: anyToUint32(id)}
	}
	last := len(c.dense) - 1
	if i != last {
		c.dense[i] = c.dense[last]
		c.ids[i] = c.ids[last]
		c.pos[c.ids[i]] = i
	}
	c.dense = c.dense[:last]
	c.ids = c.ids[:last]
	delete(c.pos, id)
	return nil
}

// Iter calls fn for every stored entity. fn may not mutate the container.
func (c *container[ID, T]) Iter(fn func(id ID, v T) bool) {
	for i, id := range c.ids {
		if !fn(id, c.dense[i]) {
			return
		}
	}
}

// Len returns the number of entities currently stored.
func (c *container[ID, T]) Len() int { return len(c.dense) }

// anyToUint32 best-effort-converts an ID newtype for error messages; every
// ID kind in this module is a uint32-based newtype (§3).
func anyToUint32(id any) uint32 {
	switch v := id.(type) {
	case ids.HouseID:
		return uint32(v)
	case ids.SystemID:
		return uint32(v)
	case ids.ColonyID:
		return uint32(v)
	case ids.FleetID:
		return uint32(v)
	case ids.SquadronID:
		return uint32(v)
	case ids.ShipID:
		return uint32(v)
	case ids.FacilityID:
		return uint32(v)
	case ids.GroundUnitID:
		return uint32(v)
	case uint32:
		return v
	default:
		return 0
	}
}

// index is a secondary key → entity-ID-list map. Entries are kept
// deduplicated and removed when they become empty, so the contract in
// §4.A holds: an entity appears in exactly the index entries keyed by its
// current indexed fields, and nowhere else.
type index[K comparable, ID comparable] struct {
	m map[K][]ID
}

func newIndex[K comparable, ID comparable]() *index[K, ID] {
	return &index[K, ID]{m: make(map[K][]ID)}
}

func (ix *index[K, ID]) Add(key K, id ID) {
	list := ix.m[key]
	for _, existing := range list {
		if existing == id {
			return
		}
	}
	ix.m[key] = append(list, id)
}

func (ix *index[K, ID]) Remove(key K, id ID) {
	list := ix.m[key]
	for i, existing := range list {
		if existing == id {
			list = append(list[:i], list[i+1:]...)
			break
		}
	}
	if len(list) == 0 {
		delete(ix.m, key)
	} else {
		ix.m[key] = list
	}
}

func (ix *index[K, ID]) Get(key K) []ID {
	return ix.m[key]
}

// Move removes id from oldKey's bucket and adds it to newKey's bucket in
// one step, the way the store's location/owner mutators must (§4.A).
func (ix *index[K, ID]) Move(oldKey, newKey K, id ID) {
	if oldKey == newKey {
		return
	}
	ix.Remove(oldKey, id)
	ix.Add(newKey, id)
}
