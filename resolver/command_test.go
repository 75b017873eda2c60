package resolver

import (
	"testing"

	"github.com/nicoberrocal/galaxyCore/ids"
	"github.com/nicoberrocal/galaxyCore/wire"
)

func TestSortFleetCommandsByPriorityThenFleetID(t *testing.T) {
	cmds := []wire.FleetCommand{
		{Fleet: ids.FleetID(3), Priority: 2},
		{Fleet: ids.FleetID(1), Priority: 1},
		{Fleet: ids.FleetID(2), Priority: 1},
		{Fleet: ids.FleetID(5), Priority: 0},
	}
	sortFleetCommands(cmds)

	want := []struct {
		fleet    ids.FleetID
		priority int
	}{
		{5, 0}, {1, 1}, {2, 1}, {3, 2},
	}
	for i, w := range want {
		if cmds[i].Fleet != w.fleet || cmds[i].Priority != w.priority {
			t.Errorf("cmds[%d] = {Fleet:%d Priority:%d}, want {Fleet:%d Priority:%d}",
				i, cmds[i].Fleet, cmds[i].Priority, w.fleet, w.priority)
		}
	}
}
