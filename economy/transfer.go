package economy

import (
	"fmt"

	"github.com/nicoberrocal/galaxyCore/config"
	"github.com/nicoberrocal/galaxyCore/orbitables"
	"github.com/nicoberrocal/galaxyCore/store"
	"github.com/nicoberrocal/galaxyCore/transit"
)

// TransferCost computes the PP cost of moving `ptu` population units to a
// colony of the given planet class across `jumps` lanes (§4.F "Cost per
// PTU varies by destination planet class, with +20% per jump beyond the
// first").
func TransferCost(cfg *config.AuthoritativeConfig, destClass orbitables.PlanetClass, ptu int64, jumps int) int64 {
	base := cfg.PlanetClasses.RawIndex[string(destClass)]
	if base <= 0 {
		base = 1
	}
	surchargeJumps := jumps - 1
	if surchargeJumps < 0 {
		surchargeJumps = 0
	}
	multiplier := 1 + cfg.Population.JumpCostSurchargePct/100*float64(surchargeJumps)
	return int64(base * float64(ptu) * multiplier)
}

// DispatchTransfer deducts the cost and source souls at dispatch time and
// creates a population-in-transit entry (§4.F "Deductions are applied at
// dispatch time"). src must have enough souls to remain ≥ 1 PU after the
// transfer and dest must be functional; the caller is responsible for
// verifying visibility/path constraints (outside this package, since they
// depend on fog-of-war state).
func DispatchTransfer(st *store.Store, cfg *config.AuthoritativeConfig, src, dest *orbitables.Colony, ptu int64, jumps, turn int) (*transit.Entry, error) {
	soulsMoved := ptu * cfg.Population.SoulsPerPTU
	if int64(src.Souls)-soulsMoved < cfg.Population.MinSoulsToRemainAsSrc {
		return nil, fmt.Errorf("economy: source colony %d would drop below minimum souls", src.ID)
	}
	if !dest.IsFunctional() || int64(dest.Souls) < cfg.Population.MinSoulsToReceive {
		return nil, fmt.Errorf("economy: destination colony %d cannot receive transfer", dest.ID)
	}

	cost := TransferCost(cfg, dest.PlanetClass, ptu, jumps)
	h, ok := st.GetHouse(src.Owner)
	if !ok {
		return nil, fmt.Errorf("economy: owner house %d not found", src.Owner)
	}
	if h.Treasury < cost {
		return nil, fmt.Errorf("economy: insufficient treasury for transfer cost %d", cost)
	}
	h.Treasury -= cost
	src.Souls -= uint64(soulsMoved)

	travelTime := jumps
	if travelTime < 1 {
		travelTime = 1
	}
	entry := &transit.Entry{
		ID: st.NextTransitID(), Source: src.ID, Destination: dest.ID, House: src.Owner,
		PTU: ptu, PPPaid: cost, DispatchTurn: turn, ArrivalTurn: turn + travelTime,
	}
	_ = st.AddTransit(entry)
	return entry, nil
}

// ProcessArrivals resolves every in-transit entry whose arrival turn has
// come, crediting the destination or returning souls to the source if the
// destination is now unreachable, lost, captured, or blockaded (§4.F).
func ProcessArrivals(st *store.Store, turn int) {
	var arrived []*transit.Entry
	st.IterTransit(func(e *transit.Entry) bool {
		if e.ArrivalTurn <= turn {
			arrived = append(arrived, e)
		}
		return true
	})

	for _, e := range arrived {
		dest, destOK := st.GetColony(e.Destination)
		src, srcOK := st.GetColony(e.Source)

		returned := false
		if !destOK {
			returned = true
		} else if dest.Owner != e.House {
			returned = true
		} else if !dest.IsFunctional() {
			returned = true
		} else if dest.Blockade.Blockaded {
			returned = true
		}

		if returned {
			if srcOK && src.Owner == e.House {
				src.Souls += e.Souls()
			}
		} else {
			dest.Souls += e.Souls()
		}
		_ = st.RemoveTransit(e.ID)
	}
}
