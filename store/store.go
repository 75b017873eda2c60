package store

import (
	"fmt"

	"github.com/nicoberrocal/galaxyCore/buildings"
	"github.com/nicoberrocal/galaxyCore/effects"
	"github.com/nicoberrocal/galaxyCore/ground"
	"github.com/nicoberrocal/galaxyCore/ids"
	"github.com/nicoberrocal/galaxyCore/orbitables"
	"github.com/nicoberrocal/galaxyCore/players"
	"github.com/nicoberrocal/galaxyCore/ships"
	"github.com/nicoberrocal/galaxyCore/transit"
)

// Store is the exclusive owner of every entity in one game's authoritative
// state (§3 "The game-state object exclusively owns all entities"). All
// cross-entity references are by ID; secondary indices are private and
// maintained only through the mutators below.
type Store struct {
	houses    *container[ids.HouseID, *players.House]
	systems   *container[ids.SystemID, *orbitables.System]
	colonies  *container[ids.ColonyID, *orbitables.Colony]
	fleets    *container[ids.FleetID, *ships.Fleet]
	squadrons *container[ids.SquadronID, *ships.Squadron]
	shipsC    *container[ids.ShipID, *ships.Ship]
	facilities *container[ids.FacilityID, *buildings.Facility]
	projects  *container[uint32, *buildings.Project]
	groundUnits *container[ids.GroundUnitID, *ground.Unit]
	transitEntries *container[uint32, *transit.Entry]
	ongoingEffects *container[uint32, *effects.Effect]

	byOwnerColony   *index[ids.HouseID, ids.ColonyID]
	byOwnerFleet    *index[ids.HouseID, ids.FleetID]
	byOwnerGroundUnit *index[ids.HouseID, ids.GroundUnitID]
	bySystemColony  *index[ids.SystemID, ids.ColonyID]
	bySystemFleet   *index[ids.SystemID, ids.FleetID]
	byFleetSquadron *index[ids.FleetID, ids.SquadronID]
	byColonyFacility *index[ids.ColonyID, ids.FacilityID]
	byColonyGroundUnit *index[ids.ColonyID, ids.GroundUnitID]
	byTargetEffect  *index[ids.HouseID, uint32]

	allocHouse, allocSystem, allocColony, allocFleet, allocSquadron,
	allocShip, allocFacility, allocProject, allocGroundUnit, allocTransit,
	allocEffect *ids.Allocator

	Turn int
}

// New constructs an empty entity store.
func New() *Store {
	return &Store{
		houses:     newContainer[ids.HouseID, *players.House](func(h *players.House) ids.HouseID { return h.ID }),
		systems:    newContainer[ids.SystemID, *orbitables.System](func(s *orbitables.System) ids.SystemID { return s.ID }),
		colonies:   newContainer[ids.ColonyID, *orbitables.Colony](func(c *orbitables.Colony) ids.ColonyID { return c.ID }),
		fleets:     newContainer[ids.FleetID, *ships.Fleet](func(f *ships.Fleet) ids.FleetID { return f.ID }),
		squadrons:  newContainer[ids.SquadronID, *ships.Squadron](func(s *ships.Squadron) ids.SquadronID { return s.ID }),
		shipsC:     newContainer[ids.ShipID, *ships.Ship](func(s *ships.Ship) ids.ShipID { return s.ID }),
		facilities: newContainer[ids.FacilityID, *buildings.Facility](func(f *buildings.Facility) ids.FacilityID { return f.ID }),
		projects:   newContainer[uint32, *buildings.Project](func(p *buildings.Project) uint32 { return p.ID }),
		groundUnits: newContainer[ids.GroundUnitID, *ground.Unit](func(g *ground.Unit) ids.GroundUnitID { return g.ID }),
		transitEntries: newContainer[uint32, *transit.Entry](func(t *transit.Entry) uint32 { return t.ID }),
		ongoingEffects: newContainer[uint32, *effects.Effect](func(e *effects.Effect) uint32 { return e.ID }),

		byOwnerColony:      newIndex[ids.HouseID, ids.ColonyID](),
		byOwnerFleet:       newIndex[ids.HouseID, ids.FleetID](),
		byOwnerGroundUnit:  newIndex[ids.HouseID, ids.GroundUnitID](),
		bySystemColony:     newIndex[ids.SystemID, ids.ColonyID](),
		bySystemFleet:      newIndex[ids.SystemID, ids.FleetID](),
		byFleetSquadron:    newIndex[ids.FleetID, ids.SquadronID](),
		byColonyFacility:   newIndex[ids.ColonyID, ids.FacilityID](),
		byColonyGroundUnit: newIndex[ids.ColonyID, ids.GroundUnitID](),
		byTargetEffect:     newIndex[ids.HouseID, uint32](),

		allocHouse: ids.NewAllocator(), allocSystem: ids.NewAllocator(), allocColony: ids.NewAllocator(),
		allocFleet: ids.NewAllocator(), allocSquadron: ids.NewAllocator(), allocShip: ids.NewAllocator(),
		allocFacility: ids.NewAllocator(), allocProject: ids.NewAllocator(), allocGroundUnit: ids.NewAllocator(),
		allocTransit: ids.NewAllocator(), allocEffect: ids.NewAllocator(),

		Turn: 1,
	}
}

// ---- Houses ----

func (s *Store) NextHouseID() ids.HouseID { return ids.HouseID(s.allocHouse.Next()) }

func (s *Store) AddHouse(h *players.House) error {
	return s.houses.Add("House", h.ID, h)
}

func (s *Store) GetHouse(id ids.HouseID) (*players.House, bool) { return s.houses.Get(id) }

func (s *Store) IterHouses(fn func(*players.House) bool) {
	s.houses.Iter(func(_ ids.HouseID, h *players.House) bool { return fn(h) })
}

// IterActiveHouses visits only non-eliminated houses, in ascending HouseID
// order (§5 "canonical house-id ordering (ascending)").
func (s *Store) IterActiveHouses(fn func(*players.House) bool) {
	for _, h := range s.activeHousesSorted() {
		if !fn(h) {
			return
		}
	}
}

func (s *Store) activeHousesSorted() []*players.House {
	var out []*players.House
	s.houses.Iter(func(_ ids.HouseID, h *players.House) bool {
		if h.IsActive() {
			out = append(out, h)
		}
		return true
	})
	sortHousesByID(out)
	return out
}

func sortHousesByID(hs []*players.House) {
	for i := 1; i < len(hs); i++ {
		j := i
		for j > 0 && hs[j-1].ID > hs[j].ID {
			hs[j-1], hs[j] = hs[j], hs[j-1]
			j--
		}
	}
}

// ---- Systems ----

func (s *Store) NextSystemID() ids.SystemID { return ids.SystemID(s.allocSystem.Next()) }

func (s *Store) AddSystem(sys *orbitables.System) error {
	return s.systems.Add("System", sys.ID, sys)
}

func (s *Store) GetSystem(id ids.SystemID) (*orbitables.System, bool) { return s.systems.Get(id) }

func (s *Store) IterSystems(fn func(*orbitables.System) bool) {
	s.systems.Iter(func(_ ids.SystemID, v *orbitables.System) bool { return fn(v) })
}

// AddSymmetricLane adds a lane a->b and b->a of the same class, preserving
// the §3 invariant that the lane graph is symmetric.
func (s *Store) AddSymmetricLane(a, b ids.SystemID, class orbitables.LaneClass) error {
	sa, ok := s.GetSystem(a)
	if !ok {
		return fmt.Errorf("store: system %d not found", a)
	}
	sb, ok := s.GetSystem(b)
	if !ok {
		return fmt.Errorf("store: system %d not found", b)
	}
	sa.AddLane(b, class)
	sb.AddLane(a, class)
	return nil
}

// ---- Colonies ----

func (s *Store) NextColonyID() ids.ColonyID { return ids.ColonyID(s.allocColony.Next()) }

// AddColony inserts a colony and indexes it by owner and system.
func (s *Store) AddColony(c *orbitables.Colony) error {
	if err := s.colonies.Add("Colony", c.ID, c); err != nil {
		return err
	}
	s.byOwnerColony.Add(c.Owner, c.ID)
	s.bySystemColony.Add(c.System, c.ID)
	return nil
}

func (s *Store) GetColony(id ids.ColonyID) (*orbitables.Colony, bool) { return s.colonies.Get(id) }

func (s *Store) RemoveColony(id ids.ColonyID) error {
	c, ok := s.GetColony(id)
	if !ok {
		return ids.ErrNotFound{Kind: "Colony", ID: uint32(id)}
	}
	s.byOwnerColony.Remove(c.Owner, id)
	s.bySystemColony.Remove(c.System, id)
	return s.colonies.Remove("Colony", id)
}

// SetColonyOwner is the dedicated mutator for changing a colony's owner
// (an indexed field); it updates byOwnerColony in the same step (§4.A).
func (s *Store) SetColonyOwner(id ids.ColonyID, newOwner ids.HouseID) error {
	c, ok := s.GetColony(id)
	if !ok {
		return ids.ErrNotFound{Kind: "Colony", ID: uint32(id)}
	}
	old := c.Owner
	c.Owner = newOwner
	s.byOwnerColony.Move(old, newOwner, id)
	return nil
}

func (s *Store) IterColonies(fn func(*orbitables.Colony) bool) {
	s.colonies.Iter(func(_ ids.ColonyID, v *orbitables.Colony) bool { return fn(v) })
}

func (s *Store) IterColoniesByOwner(h ids.HouseID, fn func(*orbitables.Colony) bool) {
	for _, id := range s.byOwnerColony.Get(h) {
		c, ok := s.GetColony(id)
		if ok && !fn(c) {
			return
		}
	}
}

func (s *Store) IterColoniesBySystem(sys ids.SystemID, fn func(*orbitables.Colony) bool) {
	for _, id := range s.bySystemColony.Get(sys) {
		c, ok := s.GetColony(id)
		if ok && !fn(c) {
			return
		}
	}
}

// ---- Fleets ----

func (s *Store) NextFleetID() ids.FleetID { return ids.FleetID(s.allocFleet.Next()) }

func (s *Store) AddFleet(f *ships.Fleet) error {
	if err := s.fleets.Add("Fleet", f.ID, f); err != nil {
		return err
	}
	s.byOwnerFleet.Add(f.Owner, f.ID)
	s.bySystemFleet.Add(f.Location, f.ID)
	return nil
}

func (s *Store) GetFleet(id ids.FleetID) (*ships.Fleet, bool) { return s.fleets.Get(id) }

func (s *Store) RemoveFleet(id ids.FleetID) error {
	f, ok := s.GetFleet(id)
	if !ok {
		return ids.ErrNotFound{Kind: "Fleet", ID: uint32(id)}
	}
	s.byOwnerFleet.Remove(f.Owner, id)
	s.bySystemFleet.Remove(f.Location, id)
	return s.fleets.Remove("Fleet", id)
}

// MoveFleet is the dedicated mutator for changing a fleet's location.
func (s *Store) MoveFleet(id ids.FleetID, dest ids.SystemID) error {
	f, ok := s.GetFleet(id)
	if !ok {
		return ids.ErrNotFound{Kind: "Fleet", ID: uint32(id)}
	}
	old := f.Location
	f.Location = dest
	s.bySystemFleet.Move(old, dest, id)
	return nil
}

func (s *Store) IterFleets(fn func(*ships.Fleet) bool) {
	s.fleets.Iter(func(_ ids.FleetID, v *ships.Fleet) bool { return fn(v) })
}

func (s *Store) IterFleetsByOwner(h ids.HouseID, fn func(*ships.Fleet) bool) {
	for _, id := range s.byOwnerFleet.Get(h) {
		f, ok := s.GetFleet(id)
		if ok && !fn(f) {
			return
		}
	}
}

func (s *Store) IterFleetsBySystem(sys ids.SystemID, fn func(*ships.Fleet) bool) {
	for _, id := range s.bySystemFleet.Get(sys) {
		f, ok := s.GetFleet(id)
		if ok && !fn(f) {
			return
		}
	}
}

// PruneEmptyFleets removes every fleet with zero squadrons (§3 Fleet
// invariant: "empty fleets are destroyed at end of any phase that made
// them empty").
func (s *Store) PruneEmptyFleets() {
	var toRemove []ids.FleetID
	s.IterFleets(func(f *ships.Fleet) bool {
		if f.IsEmpty() {
			toRemove = append(toRemove, f.ID)
		}
		return true
	})
	for _, id := range toRemove {
		_ = s.RemoveFleet(id)
	}
}

// ---- Squadrons ----

func (s *Store) NextSquadronID() ids.SquadronID { return ids.SquadronID(s.allocSquadron.Next()) }

func (s *Store) AddSquadron(sq *ships.Squadron) error {
	return s.squadrons.Add("Squadron", sq.ID, sq)
}

func (s *Store) GetSquadron(id ids.SquadronID) (*ships.Squadron, bool) { return s.squadrons.Get(id) }

func (s *Store) RemoveSquadron(id ids.SquadronID) error {
	return s.squadrons.Remove("Squadron", id)
}

func (s *Store) IterSquadrons(fn func(*ships.Squadron) bool) {
	s.squadrons.Iter(func(_ ids.SquadronID, v *ships.Squadron) bool { return fn(v) })
}

// AssignSquadronToFleet appends sq to fleet's squadron list and indexes it.
func (s *Store) AssignSquadronToFleet(fleetID ids.FleetID, sqID ids.SquadronID) error {
	f, ok := s.GetFleet(fleetID)
	if !ok {
		return ids.ErrNotFound{Kind: "Fleet", ID: uint32(fleetID)}
	}
	f.Squadrons = append(f.Squadrons, sqID)
	s.byFleetSquadron.Add(fleetID, sqID)
	return nil
}

// RemoveSquadronFromFleet detaches sq from fleet (e.g. on destruction).
func (s *Store) RemoveSquadronFromFleet(fleetID ids.FleetID, sqID ids.SquadronID) error {
	f, ok := s.GetFleet(fleetID)
	if !ok {
		return ids.ErrNotFound{Kind: "Fleet", ID: uint32(fleetID)}
	}
	out := f.Squadrons[:0]
	for _, id := range f.Squadrons {
		if id != sqID {
			out = append(out, id)
		}
	}
	f.Squadrons = out
	s.byFleetSquadron.Remove(fleetID, sqID)
	return nil
}

// ---- Ships ----

func (s *Store) NextShipID() ids.ShipID { return ids.ShipID(s.allocShip.Next()) }

func (s *Store) AddShip(sh *ships.Ship) error { return s.shipsC.Add("Ship", sh.ID, sh) }

func (s *Store) GetShip(id ids.ShipID) (*ships.Ship, bool) { return s.shipsC.Get(id) }

func (s *Store) RemoveShip(id ids.ShipID) error { return s.shipsC.Remove("Ship", id) }

// ---- Facilities ----

func (s *Store) NextFacilityID() ids.FacilityID { return ids.FacilityID(s.allocFacility.Next()) }

func (s *Store) AddFacility(f *buildings.Facility) error {
	if err := s.facilities.Add("Facility", f.ID, f); err != nil {
		return err
	}
	s.byColonyFacility.Add(f.Colony, f.ID)
	return nil
}

func (s *Store) GetFacility(id ids.FacilityID) (*buildings.Facility, bool) { return s.facilities.Get(id) }

func (s *Store) IterFacilitiesByColony(c ids.ColonyID, fn func(*buildings.Facility) bool) {
	for _, id := range s.byColonyFacility.Get(c) {
		f, ok := s.GetFacility(id)
		if ok && !fn(f) {
			return
		}
	}
}

// ---- Projects ---- (keyed by plain uint32, not an ids.* newtype: projects
// are never referenced across the wire protocol boundary, only from the
// facility/colony queues that own them)

func (s *Store) NextProjectID() uint32 { return s.allocProject.Next() }

func (s *Store) AddProject(p *buildings.Project) error { return s.projects.Add("Project", p.ID, p) }

func (s *Store) GetProject(id uint32) (*buildings.Project, bool) { return s.projects.Get(id) }

func (s *Store) RemoveProject(id uint32) error { return s.projects.Remove("Project", id) }

func (s *Store) IterProjects(fn func(*buildings.Project) bool) {
	s.projects.Iter(func(_ uint32, v *buildings.Project) bool { return fn(v) })
}

// ---- Ground units ----

func (s *Store) NextGroundUnitID() ids.GroundUnitID { return ids.GroundUnitID(s.allocGroundUnit.Next()) }

func (s *Store) AddGroundUnit(g *ground.Unit) error {
	if err := s.groundUnits.Add("GroundUnit", g.ID, g); err != nil {
		return err
	}
	s.byOwnerGroundUnit.Add(g.Owner, g.ID)
	s.byColonyGroundUnit.Add(g.Colony, g.ID)
	return nil
}

func (s *Store) GetGroundUnit(id ids.GroundUnitID) (*ground.Unit, bool) { return s.groundUnits.Get(id) }

func (s *Store) RemoveGroundUnit(id ids.GroundUnitID) error {
	g, ok := s.GetGroundUnit(id)
	if !ok {
		return ids.ErrNotFound{Kind: "GroundUnit", ID: uint32(id)}
	}
	s.byOwnerGroundUnit.Remove(g.Owner, id)
	s.byColonyGroundUnit.Remove(g.Colony, id)
	return s.groundUnits.Remove("GroundUnit", id)
}

func (s *Store) IterGroundUnitsByColony(c ids.ColonyID, fn func(*ground.Unit) bool) {
	for _, id := range s.byColonyGroundUnit.Get(c) {
		g, ok := s.GetGroundUnit(id)
		if ok && !fn(g) {
			return
		}
	}
}

// ---- Population in transit ----

func (s *Store) NextTransitID() uint32 { return s.allocTransit.Next() }

func (s *Store) AddTransit(e *transit.Entry) error { return s.transitEntries.Add("Transit", e.ID, e) }

func (s *Store) RemoveTransit(id uint32) error { return s.transitEntries.Remove("Transit", id) }

func (s *Store) IterTransit(fn func(*transit.Entry) bool) {
	s.transitEntries.Iter(func(_ uint32, v *transit.Entry) bool { return fn(v) })
}

// ---- Ongoing effects ----

func (s *Store) NextEffectID() uint32 { return s.allocEffect.Next() }

func (s *Store) AddEffect(e *effects.Effect) error {
	if err := s.ongoingEffects.Add("Effect", e.ID, e); err != nil {
		return err
	}
	s.byTargetEffect.Add(e.Target, e.ID)
	return nil
}

func (s *Store) RemoveEffect(id uint32) error {
	e, ok := s.ongoingEffects.Get(id)
	if !ok {
		return ids.ErrNotFound{Kind: "Effect", ID: id}
	}
	s.byTargetEffect.Remove(e.Target, id)
	return s.ongoingEffects.Remove("Effect", id)
}

func (s *Store) IterEffectsByTarget(h ids.HouseID, fn func(*effects.Effect) bool) {
	for _, id := range s.byTargetEffect.Get(h) {
		e, ok := s.ongoingEffects.Get(id)
		if ok && !fn(e) {
			return
		}
	}
}

func (s *Store) IterEffects(fn func(*effects.Effect) bool) {
	s.ongoingEffects.Iter(func(_ uint32, v *effects.Effect) bool { return fn(v) })
}
