package wire

import "github.com/nicoberrocal/galaxyCore/ids"

// CommandPacket is one house's full order submission for a turn (§6
// "CommandPacket fields"). The resolver's Command phase consumes one
// packet per house; a missing packet is treated as an empty one (§5
// "missing packets are treated as empty packets").
type CommandPacket struct {
	Turn  int         `json:"turn"`
	House ids.HouseID `json:"house"`

	ZeroTurnCommands    []ZeroTurnCommand    `json:"zeroTurnCommands,omitempty"`
	FleetCommands       []FleetCommand       `json:"fleetCommands,omitempty"`
	BuildCommands       []BuildCommand       `json:"buildCommands,omitempty"`
	RepairCommands      []RepairCommand      `json:"repairCommands,omitempty"`
	ScrapCommands       []ScrapCommand       `json:"scrapCommands,omitempty"`
	ColonyManagement    []ColonyManagement   `json:"colonyManagement,omitempty"`
	PopulationTransfers []PopulationTransfer `json:"populationTransfers,omitempty"`
	TerraformCommands   []TerraformCommand   `json:"terraformCommands,omitempty"`

	// EspionageActions holds at most one entry (§6 "espionageActions[] (≤1)").
	EspionageActions []EspionageAction `json:"espionageActions,omitempty"`
	EBPInvestment    int64             `json:"ebpInvestment"`
	CIPInvestment    int64             `json:"cipInvestment"`

	ResearchAllocation ResearchAllocationOrder `json:"researchAllocation"`

	DiplomaticCommand *DiplomaticCommand `json:"diplomaticCommand,omitempty"`
}

// ZeroTurnCommand is an order applied immediately on submission rather than
// at turn resolution (GLOSSARY "zero-turn command").
type ZeroTurnCommand struct {
	Kind   string `json:"kind"`
	Target uint32 `json:"target"`
}

// FleetCommand moves or retasks one fleet; Priority breaks ties in the
// declared-order application rule (§5 "fleet orders sorted by declared
// priority, ties broken by fleet id").
type FleetCommand struct {
	Fleet     ids.FleetID  `json:"fleet"`
	Kind      string       `json:"kind"` // "move" | "merge" | "split" | "colonize" | "roe" | "mission" | "bombard" | "invade"
	Dest      ids.SystemID `json:"dest,omitempty"`
	Priority  int          `json:"priority"`
	ROE       int          `json:"roe,omitempty"`
	MergeWith ids.FleetID  `json:"mergeWith,omitempty"`
	// Marines is the invading strength committed by an "invade" command
	// (§4.E "ground combat resolves attacker marines vs. colony defense").
	Marines int64 `json:"marines,omitempty"`
}

type BuildCommand struct {
	Colony  ids.ColonyID `json:"colony"`
	ItemTag string       `json:"itemTag"`
	AtSpaceport bool     `json:"atSpaceport,omitempty"`
}

type RepairCommand struct {
	Facility ids.FacilityID `json:"facility"`
}

type ScrapCommand struct {
	Kind   string `json:"kind"` // "ship" | "facility" | "groundUnit"
	Target uint32 `json:"target"`
}

type ColonyManagement struct {
	Colony  ids.ColonyID `json:"colony"`
	TaxRate *int         `json:"taxRate,omitempty"`
}

type PopulationTransfer struct {
	Source ids.ColonyID `json:"source"`
	Dest   ids.ColonyID `json:"dest"`
	PTU    int64        `json:"ptu"`
}

type TerraformCommand struct {
	Colony ids.ColonyID `json:"colony"`
}

type EspionageAction struct {
	Target ids.HouseID `json:"target"`
	Action string      `json:"action"`
}

type ResearchAllocationOrder struct {
	Economic int64            `json:"economic"`
	Science  int64            `json:"science"`
	PerField map[string]int64 `json:"perField,omitempty"`
}

type DiplomaticCommand struct {
	Target ids.HouseID `json:"target"`
	Kind   string      `json:"kind"` // "propose_pact" | "respond_pact" | "break_pact"
	Accept bool        `json:"accept,omitempty"`
}
