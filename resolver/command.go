package resolver

import (
	"github.com/nicoberrocal/galaxyCore/buildings"
	"github.com/nicoberrocal/galaxyCore/colonize"
	"github.com/nicoberrocal/galaxyCore/detrand"
	"github.com/nicoberrocal/galaxyCore/diplomacy"
	"github.com/nicoberrocal/galaxyCore/economy"
	"github.com/nicoberrocal/galaxyCore/espionage"
	"github.com/nicoberrocal/galaxyCore/ids"
	"github.com/nicoberrocal/galaxyCore/orbitables"
	"github.com/nicoberrocal/galaxyCore/wire"
)

// runCommand is the resolver's third phase (§4.D): every house's submitted
// orders are applied in the declared sequence, fleet orders sorted by
// priority (§5). A bad order is a ValidationError surfaced in the result
// vector; it never aborts the rest of the packet (§7).
func runCommand(gs *GameState, orders map[ids.HouseID]*wire.CommandPacket, result *TurnResult) {
	for _, h := range sortedHouseIDs(orders) {
		pkt := orders[h]
		if pkt == nil || pkt.Turn != gs.Turn {
			continue // stale or missing packet treated as empty (§5)
		}

		applyFleetCommands(gs, h, pkt.FleetCommands, result)
		applyBuildCommands(gs, h, pkt.BuildCommands, result)
		applyRepairCommands(gs, h, pkt.RepairCommands, result)
		applyScrapCommands(gs, h, pkt.ScrapCommands, result)
		applyColonyManagement(gs, h, pkt.ColonyManagement, result)
		applyPopulationTransfers(gs, h, pkt.PopulationTransfers, result)
		applyTerraformCommands(gs, h, pkt.TerraformCommands, result)
		applyEspionageActions(gs, h, pkt, result)
		applyDiplomaticCommand(gs, h, pkt.DiplomaticCommand, result)
	}
}

// applyFleetCommands sorts by declared priority ascending, ties broken by
// fleet id (§5), then dispatches move/merge/colonize/roe orders.
// Bombard/invade are handled in Conflict and skipped here; any other kind
// (split and mission included) is rejected as unknown.
func applyFleetCommands(gs *GameState, h ids.HouseID, cmds []wire.FleetCommand, result *TurnResult) {
	sorted := append([]wire.FleetCommand(nil), cmds...)
	sortFleetCommands(sorted)

	for _, fc := range sorted {
		switch fc.Kind {
		case "bombard", "invade":
			continue
		case "move":
			applyFleetMove(gs, h, fc, result)
		case "merge":
			applyFleetMerge(gs, h, fc, result)
		case "roe":
			applyFleetROE(gs, h, fc, result)
		case "colonize":
			applyFleetColonize(gs, h, fc, result)
		default:
			result.reject(h, "fleet", "unknown fleet command kind "+fc.Kind)
		}
	}
}

func sortFleetCommands(cmds []wire.FleetCommand) {
	for i := 1; i < len(cmds); i++ {
		j := i
		for j > 0 && less(cmds[j], cmds[j-1]) {
			cmds[j-1], cmds[j] = cmds[j], cmds[j-1]
			j--
		}
	}
}

func less(a, b wire.FleetCommand) bool {
	if a.Priority != b.Priority {
		return a.Priority < b.Priority
	}
	return a.Fleet < b.Fleet
}

func applyFleetMove(gs *GameState, h ids.HouseID, fc wire.FleetCommand, result *TurnResult) {
	f, ok := gs.Store.GetFleet(fc.Fleet)
	if !ok || f.Owner != h {
		result.reject(h, "fleet_move", "fleet not found or not owned")
		return
	}
	sys, ok := gs.Store.GetSystem(f.Location)
	if !ok {
		result.reject(h, "fleet_move", "fleet's current system missing")
		return
	}
	if _, ok := sys.LaneTo(fc.Dest); !ok {
		result.reject(h, "fleet_move", "no lane to destination")
		return
	}
	if err := gs.Store.MoveFleet(fc.Fleet, fc.Dest); err != nil {
		result.reject(h, "fleet_move", err.Error())
		return
	}
	result.accept(h, "fleet_move")
}

func applyFleetMerge(gs *GameState, h ids.HouseID, fc wire.FleetCommand, result *TurnResult) {
	src, ok1 := gs.Store.GetFleet(fc.Fleet)
	dst, ok2 := gs.Store.GetFleet(fc.MergeWith)
	if !ok1 || !ok2 || src.Owner != h || dst.Owner != h || src.Location != dst.Location {
		result.reject(h, "fleet_merge", "fleets not found, not owned, or not co-located")
		return
	}
	for _, sqID := range append([]ids.SquadronID(nil), src.Squadrons...) {
		_ = gs.Store.RemoveSquadronFromFleet(src.ID, sqID)
		_ = gs.Store.AssignSquadronToFleet(dst.ID, sqID)
	}
	result.accept(h, "fleet_merge")
}

func applyFleetROE(gs *GameState, h ids.HouseID, fc wire.FleetCommand, result *TurnResult) {
	f, ok := gs.Store.GetFleet(fc.Fleet)
	if !ok || f.Owner != h || fc.ROE < 1 || fc.ROE > 10 {
		result.reject(h, "fleet_roe", "fleet not found, not owned, or ROE out of range")
		return
	}
	f.ROE = fc.ROE
	result.accept(h, "fleet_roe")
}

func applyFleetColonize(gs *GameState, h ids.HouseID, fc wire.FleetCommand, result *TurnResult) {
	if _, err := colonize.Colonize(gs.Store, gs.Config, h, fc.Dest, fc.Fleet); err != nil {
		result.reject(h, "colonize", err.Error())
		return
	}
	result.accept(h, "colonize")
}

func applyBuildCommands(gs *GameState, h ids.HouseID, cmds []wire.BuildCommand, result *TurnResult) {
	for _, bc := range cmds {
		c, ok := gs.Store.GetColony(bc.Colony)
		if !ok || c.Owner != h {
			result.reject(h, "build", "colony not found or not owned")
			continue
		}
		kind := projectKindFor(gs, bc.ItemTag)
		cost := economy.BuildCostPP(gs.Config, bc.ItemTag, bc.AtSpaceport)
		p := &buildings.Project{
			ID:      gs.Store.NextProjectID(),
			Kind:    kind,
			ItemTag: bc.ItemTag,
			Colony:  bc.Colony,
			Owner:   h,
			PPTotal: cost,
		}
		if err := gs.Store.AddProject(p); err != nil {
			result.reject(h, "build", err.Error())
			continue
		}
		if kind != buildings.ProjectBuilding {
			if err := economy.AssignConstruction(gs.Store, c, p); err != nil {
				result.reject(h, "build", err.Error())
				_ = gs.Store.RemoveProject(p.ID)
				continue
			}
		} else {
			c.ConstructionQueue = append(c.ConstructionQueue, orbitables.ProjectRef{ProjectID: p.ID})
		}
		result.accept(h, "build")
	}
}

func projectKindFor(gs *GameState, itemTag string) buildings.ProjectKind {
	if _, ok := gs.Config.ShipStats.Classes[itemTag]; ok {
		return buildings.ProjectShip
	}
	switch itemTag {
	case "spaceport", "shipyard", "drydock", "starbase", "kastra", "neoria":
		return buildings.ProjectBuilding
	case "industrial_unit":
		return buildings.ProjectIndustrial
	case "terraform":
		return buildings.ProjectTerraform
	default:
		return buildings.ProjectBuilding
	}
}

func applyRepairCommands(gs *GameState, h ids.HouseID, cmds []wire.RepairCommand, result *TurnResult) {
	for _, rc := range cmds {
		f, ok := gs.Store.GetFacility(rc.Facility)
		if !ok || !f.Crippled {
			result.reject(h, "repair", "facility not found or not crippled")
			continue
		}
		c, ok := gs.Store.GetColony(f.Colony)
		if !ok || c.Owner != h {
			result.reject(h, "repair", "colony not found or not owned")
			continue
		}
		p := &buildings.Project{
			ID:           gs.Store.NextProjectID(),
			Kind:         buildings.ProjectRepair,
			Colony:       c.ID,
			Facility:     rc.Facility,
			FacilityKind: f.Kind,
			Owner:        h,
			PPTotal:      100,
		}
		if err := gs.Store.AddProject(p); err != nil {
			result.reject(h, "repair", err.Error())
			continue
		}
		if err := economy.AssignConstruction(gs.Store, c, p); err != nil {
			result.reject(h, "repair", err.Error())
			_ = gs.Store.RemoveProject(p.ID)
			continue
		}
		result.accept(h, "repair")
	}
}

func applyScrapCommands(gs *GameState, h ids.HouseID, cmds []wire.ScrapCommand, result *TurnResult) {
	for _, sc := range cmds {
		switch sc.Kind {
		case "ship":
			if _, ok := gs.Store.GetShip(ids.ShipID(sc.Target)); !ok {
				result.reject(h, "scrap", "ship not found")
				continue
			}
			_ = gs.Store.RemoveShip(ids.ShipID(sc.Target))
			result.accept(h, "scrap")
		case "groundUnit":
			if err := gs.Store.RemoveGroundUnit(ids.GroundUnitID(sc.Target)); err != nil {
				result.reject(h, "scrap", err.Error())
			} else {
				result.accept(h, "scrap")
			}
		default:
			result.reject(h, "scrap", "unsupported scrap kind "+sc.Kind)
		}
	}
}

func applyColonyManagement(gs *GameState, h ids.HouseID, cmds []wire.ColonyManagement, result *TurnResult) {
	for _, cm := range cmds {
		c, ok := gs.Store.GetColony(cm.Colony)
		if !ok || c.Owner != h {
			result.reject(h, "colony_mgmt", "colony not found or not owned")
			continue
		}
		if cm.TaxRate != nil {
			rate := *cm.TaxRate
			if rate < 0 || rate > 100 {
				result.reject(h, "colony_mgmt", "tax rate out of range")
				continue
			}
			c.TaxRate = rate
		}
		result.accept(h, "colony_mgmt")
	}
}

func applyPopulationTransfers(gs *GameState, h ids.HouseID, cmds []wire.PopulationTransfer, result *TurnResult) {
	for _, pt := range cmds {
		src, ok1 := gs.Store.GetColony(pt.Source)
		dst, ok2 := gs.Store.GetColony(pt.Dest)
		if !ok1 || !ok2 || src.Owner != h {
			result.reject(h, "pop_transfer", "colony not found or source not owned")
			continue
		}
		jumps := jumpCount(gs, src.System, dst.System)
		if jumps < 0 {
			result.reject(h, "pop_transfer", "no visible path between colonies")
			continue
		}
		if _, err := economy.DispatchTransfer(gs.Store, gs.Config, src, dst, pt.PTU, jumps, gs.Turn); err != nil {
			result.reject(h, "pop_transfer", err.Error())
			continue
		}
		result.accept(h, "pop_transfer")
	}
}

// jumpCount does a breadth-first search over the lane graph; a negative
// result means no path exists.
func jumpCount(gs *GameState, from, to ids.SystemID) int {
	if from == to {
		return 0
	}
	visited := map[ids.SystemID]bool{from: true}
	frontier := []ids.SystemID{from}
	depth := 0
	for len(frontier) > 0 {
		depth++
		var next []ids.SystemID
		for _, sys := range frontier {
			s, ok := gs.Store.GetSystem(sys)
			if !ok {
				continue
			}
			for _, l := range s.Lanes {
				if l.To == to {
					return depth
				}
				if !visited[l.To] {
					visited[l.To] = true
					next = append(next, l.To)
				}
			}
		}
		frontier = next
	}
	return -1
}

func applyTerraformCommands(gs *GameState, h ids.HouseID, cmds []wire.TerraformCommand, result *TurnResult) {
	for _, tc := range cmds {
		c, ok := gs.Store.GetColony(tc.Colony)
		if !ok || c.Owner != h || c.TerraformProject != nil {
			result.reject(h, "terraform", "colony not found, not owned, or already terraforming")
			continue
		}
		p := &buildings.Project{ID: gs.Store.NextProjectID(), Kind: buildings.ProjectTerraform, Colony: c.ID, Owner: h, PPTotal: 500}
		if err := gs.Store.AddProject(p); err != nil {
			result.reject(h, "terraform", err.Error())
			continue
		}
		id := p.ID
		c.TerraformProject = &id
		result.accept(h, "terraform")
	}
}

func applyEspionageActions(gs *GameState, h ids.HouseID, pkt *wire.CommandPacket, result *TurnResult) {
	if len(pkt.EspionageActions) == 0 {
		return
	}
	a := pkt.EspionageActions[0]
	rng := detrand.New(gs.Turn, espionageDiscriminator(h, a.Target))
	attempt := espionage.Attempt{Attacker: h, Target: a.Target, Action: espionage.Action(a.Action), EBPSpend: pkt.EBPInvestment}
	espionage.Resolve(gs.Store, gs.Config, attempt, rng)
	result.accept(h, "espionage")
}

func espionageDiscriminator(a, b ids.HouseID) string {
	return "espionage:" + itoa(uint32(a)) + ":" + itoa(uint32(b))
}

func itoa(v uint32) string {
	if v == 0 {
		return "0"
	}
	var buf [10]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	return string(buf[i:])
}

func applyDiplomaticCommand(gs *GameState, h ids.HouseID, dc *wire.DiplomaticCommand, result *TurnResult) {
	if dc == nil {
		return
	}
	from, ok1 := gs.Store.GetHouse(h)
	to, ok2 := gs.Store.GetHouse(dc.Target)
	if !ok1 || !ok2 {
		result.reject(h, "diplomacy", "house not found")
		return
	}
	switch dc.Kind {
	case "propose_pact":
		if err := diplomacy.ProposePact(from, to, diplomacy.NonAggression, gs.Turn); err != nil {
			result.reject(h, "diplomacy", err.Error())
			return
		}
	case "respond_pact":
		diplomacy.RespondPact(to, from, gs.Turn, dc.Accept)
	case "break_pact":
		diplomacy.BreakNonAggression(from, to, gs.Turn, gs.Config.Prestige.PactBreakPenalty)
	default:
		result.reject(h, "diplomacy", "unknown diplomatic command kind "+dc.Kind)
		return
	}
	result.accept(h, "diplomacy")
}
