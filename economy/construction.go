package economy

import (
	"fmt"

	"github.com/nicoberrocal/galaxyCore/buildings"
	"github.com/nicoberrocal/galaxyCore/config"
	"github.com/nicoberrocal/galaxyCore/ids"
	"github.com/nicoberrocal/galaxyCore/orbitables"
	"github.com/nicoberrocal/galaxyCore/ships"
	"github.com/nicoberrocal/galaxyCore/store"
)

// AssignConstruction places a newly created project onto a facility with
// available dock capacity, or queues it FIFO if none is free (§4.F
// "Assignment priority: prefer shipyards over spaceports; among same
// class, prefer most-available"). Fighter projects are not told apart from
// other ship projects: they are placed on a facility and take a dock like
// any other ship.
func AssignConstruction(st *store.Store, c *orbitables.Colony, p *buildings.Project) error {
	best := pickFacility(st, c, p)
	if best == nil {
		return fmt.Errorf("economy: colony %d has no %s facility to host project %d", c.ID, p.FacilityKind, p.ID)
	}
	p.Facility = best.ID
	p.FacilityKind = best.Kind
	if best.HasCapacity() {
		best.ActiveProjects = append(best.ActiveProjects, p.ID)
	} else {
		best.Queue = append(best.Queue, p.ID)
	}
	return nil
}

// pickFacility selects the shipyard-preferred, most-available-docks
// facility among the colony's facilities able to host this project kind.
func pickFacility(st *store.Store, c *orbitables.Colony, p *buildings.Project) *buildings.Facility {
	candidateIDs := c.Shipyards
	if p.Kind == buildings.ProjectRepair {
		candidateIDs = c.Drydocks
	} else if len(candidateIDs) == 0 {
		candidateIDs = c.Spaceports
	}

	var best *buildings.Facility
	bestAvail := -1
	for _, fid := range candidateIDs {
		f, ok := st.GetFacility(fid)
		if !ok || f.Crippled {
			continue
		}
		avail := f.EffectiveDocks - len(f.ActiveProjects)
		if avail > bestAvail {
			bestAvail = avail
			best = f
		}
	}
	if best != nil {
		return best
	}
	// fall back to spaceports if shipyards were tried and found none
	if p.Kind != buildings.ProjectRepair {
		for _, fid := range c.Spaceports {
			f, ok := st.GetFacility(fid)
			if !ok || f.Crippled {
				continue
			}
			avail := f.EffectiveDocks - len(f.ActiveProjects)
			if avail > bestAvail {
				bestAvail = avail
				best = f
			}
		}
	}
	return best
}

// BuildCostPP returns the PP cost for building ship class `itemTag`,
// doubling the base cost for ships built at a spaceport rather than a
// shipyard (§4.F "Ships built at spaceports cost 2× PP").
func BuildCostPP(cfg *config.AuthoritativeConfig, itemTag string, atSpaceport bool) int64 {
	stats, ok := cfg.ShipStats.Classes[itemTag]
	if !ok {
		return 0
	}
	cost := stats.BuildCostPP
	if atSpaceport {
		cost *= 2
	}
	return cost
}

// AdvanceProjects credits one Income-phase worth of PP to every active
// project on the colony's facilities, pulled from the colony's GCO share,
// and applies the effect of any project that completes this phase (§4.F
// "Project completes when paid ≥ total").
func AdvanceProjects(st *store.Store, c *orbitables.Colony, cfg *config.AuthoritativeConfig, pp int64) {
	var activeProjectIDs []uint32
	for _, fid := range allFacilities(c) {
		f, ok := st.GetFacility(fid)
		if !ok {
			continue
		}
		activeProjectIDs = append(activeProjectIDs, f.ActiveProjects...)
	}
	if len(activeProjectIDs) == 0 {
		return
	}
	share := pp / int64(len(activeProjectIDs))
	for _, pid := range activeProjectIDs {
		p, ok := st.GetProject(pid)
		if !ok {
			continue
		}
		if p.Advance(share) {
			applyProjectCompletion(st, c, cfg, p)
			removeFromFacilityQueues(st, c, p)
			promoteQueuedProject(st, p.Facility)
			_ = st.RemoveProject(p.ID)
		}
	}
}

func allFacilities(c *orbitables.Colony) []ids.FacilityID {
	out := append([]ids.FacilityID(nil), c.Spaceports...)
	out = append(out, c.Shipyards...)
	out = append(out, c.Drydocks...)
	out = append(out, c.Starbases...)
	return out
}

func removeFromFacilityQueues(st *store.Store, c *orbitables.Colony, p *buildings.Project) {
	f, ok := st.GetFacility(p.Facility)
	if !ok {
		return
	}
	f.ActiveProjects = removeUint32(f.ActiveProjects, p.ID)
}

func promoteQueuedProject(st *store.Store, facilityID ids.FacilityID) {
	f, ok := st.GetFacility(facilityID)
	if !ok || len(f.Queue) == 0 || !f.HasCapacity() {
		return
	}
	next := f.Queue[0]
	f.Queue = f.Queue[1:]
	f.ActiveProjects = append(f.ActiveProjects, next)
}

func removeUint32(s []uint32, v uint32) []uint32 {
	out := s[:0]
	for _, x := range s {
		if x != v {
			out = append(out, x)
		}
	}
	return out
}

// applyProjectCompletion commissions the finished item: a ship project
// spawns a new squadron in the colony's unassigned list (merged into the
// weakest stationary fleet if auto-assign is set), a building project adds
// a facility, an industrial project raises IU, a repair project clears the
// crippled flag on its target facility.
func applyProjectCompletion(st *store.Store, c *orbitables.Colony, cfg *config.AuthoritativeConfig, p *buildings.Project) {
	switch p.Kind {
	case buildings.ProjectShip:
		commissionShip(st, c, cfg, p)
	case buildings.ProjectBuilding:
		commissionFacility(st, c, p)
	case buildings.ProjectIndustrial:
		c.IndustrialUnits++
	case buildings.ProjectRepair:
		if f, ok := st.GetFacility(p.Facility); ok {
			f.Crippled = false
			f.RecomputeEffectiveDocks()
		}
	case buildings.ProjectTerraform:
		c.TerraformProject = nil
	}
}

func commissionShip(st *store.Store, c *orbitables.Colony, cfg *config.AuthoritativeConfig, p *buildings.Project) {
	classStats, ok := cfg.ShipStats.Classes[p.ItemTag]
	if !ok {
		return
	}
	shipID := st.NextShipID()
	sh := &ships.Ship{
		ID:    shipID,
		Class: ships.Class(p.ItemTag),
		Role:  roleFor(classStats),
		Stats: ships.Stats{
			Attack: classStats.Attack, Defense: classStats.Defense,
			CommandCost: classStats.CommandCost, CommandRating: classStats.CommandRating,
			TechLevel: classStats.TechLevel, BuildCostPP: classStats.BuildCostPP,
			UpkeepPP: classStats.UpkeepPP, CarryLimit: classStats.CarryLimit,
			SpecialCapability: classStats.SpecialCapability,
		},
	}
	_ = st.AddShip(sh)

	sqID := st.NextSquadronID()
	sqType := ships.SquadronCombat
	if classStats.IsSpacelift {
		sqType = ships.SquadronSpacelift
	}
	sq := &ships.Squadron{ID: sqID, Owner: c.Owner, Location: c.System, Type: sqType, Flagship: shipID}
	_ = st.AddSquadron(sq)

	if c.Auto.AutoAssignSquadrons {
		mergeIntoWeakestStationaryFleet(st, c, sqID)
	} else {
		c.UnassignedSquadrons = append(c.UnassignedSquadrons, sqID)
	}
}

func roleFor(s config.ShipClassStats) ships.Role {
	if s.IsFighter {
		return ships.RoleCombat
	}
	if s.IsSpacelift {
		return ships.RoleSpacelift
	}
	return ships.RoleCombat
}

// mergeIntoWeakestStationaryFleet merges sq into the weakest fleet
// currently idle at the colony's system, creating one if none exists
// (§4.F "merged into the weakest stationary fleet at the colony, creating
// one if none exists").
func mergeIntoWeakestStationaryFleet(st *store.Store, c *orbitables.Colony, sqID ids.SquadronID) {
	var weakest *ships.Fleet
	weakestCount := -1
	st.IterFleetsByOwner(c.Owner, func(f *ships.Fleet) bool {
		if f.Location != c.System || f.Mission != ships.MissionIdle {
			return true
		}
		if weakest == nil || len(f.Squadrons) < weakestCount {
			weakest = f
			weakestCount = len(f.Squadrons)
		}
		return true
	})
	if weakest == nil {
		fleetID := st.NextFleetID()
		weakest = &ships.Fleet{ID: fleetID, Owner: c.Owner, Location: c.System, Mission: ships.MissionIdle, ROE: 5}
		_ = st.AddFleet(weakest)
	}
	_ = st.AssignSquadronToFleet(weakest.ID, sqID)
}

func commissionFacility(st *store.Store, c *orbitables.Colony, p *buildings.Project) {
	kind := facilityKindFromTag(p.ItemTag)
	fid := st.NextFacilityID()
	f := &buildings.Facility{ID: fid, Kind: kind, Colony: c.ID}
	f.RecomputeEffectiveDocks()
	_ = st.AddFacility(f)
	switch kind {
	case ids.FacilitySpaceport:
		c.Spaceports = append(c.Spaceports, fid)
	case ids.FacilityShipyard:
		c.Shipyards = append(c.Shipyards, fid)
	case ids.FacilityDrydock:
		c.Drydocks = append(c.Drydocks, fid)
	case ids.FacilityStarbase:
		c.Starbases = append(c.Starbases, fid)
	}
}

func facilityKindFromTag(tag string) ids.FacilityKind {
	switch tag {
	case "spaceport":
		return ids.FacilitySpaceport
	case "shipyard":
		return ids.FacilityShipyard
	case "drydock":
		return ids.FacilityDrydock
	case "starbase":
		return ids.FacilityStarbase
	case "kastra":
		return ids.FacilityKastra
	case "neoria":
		return ids.FacilityNeoria
	default:
		return ids.FacilityUnknown
	}
}
