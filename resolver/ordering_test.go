package resolver

import (
	"testing"

	"github.com/nicoberrocal/galaxyCore/ids"
	"github.com/nicoberrocal/galaxyCore/wire"
)

func TestSortedHouseIDsAscending(t *testing.T) {
	m := map[ids.HouseID]*wire.CommandPacket{
		5: {}, 1: {}, 3: {},
	}
	got := sortedHouseIDs(m)
	want := []ids.HouseID{1, 3, 5}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sortedHouseIDs()[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestSortedSystemIDsFromSetAscending(t *testing.T) {
	set := map[ids.SystemID]bool{9: true, 2: true, 4: true}
	got := sortedSystemIDsFromSet(set)
	want := []ids.SystemID{2, 4, 9}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sortedSystemIDsFromSet()[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}
