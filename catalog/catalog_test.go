package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildingFor(t *testing.T) {
	assert.Equal(t, "building1", BuildingFor("131"))
	assert.Equal(t, "building2", BuildingFor("english"))
	assert.Equal(t, "building3", BuildingFor("library"))
	assert.Equal(t, "building4", BuildingFor("fablab"))
	assert.Equal(t, "building5", BuildingFor("A1"))
	assert.Equal(t, "building6", BuildingFor("canteen"))

	// Anything outside the static layout reports under the catch-all.
	assert.Equal(t, CustomBuilding, BuildingFor("custom-1"))
	assert.Equal(t, CustomBuilding, BuildingFor("no-such-room"))
}

func TestKnown(t *testing.T) {
	assert.True(t, Known("131"))
	assert.True(t, Known("innovation"))
	assert.False(t, Known("custom-1"))
}

func TestNoDuplicateRoomIDs(t *testing.T) {
	seen := make(map[string]string)
	for _, building := range Buildings {
		for _, room := range building.Rooms {
			if other, dup := seen[room.RoomID]; dup {
				t.Errorf("room %s appears in both %s and %s", room.RoomID, other, building.ID)
			}
			seen[room.RoomID] = building.ID
		}
	}
}

func TestDefaultClosedRoomsAreBlocked(t *testing.T) {
	closed := DefaultClosedRooms()
	assert.NotEmpty(t, closed)

	blocked := make(map[string]bool)
	for _, building := range Buildings {
		for _, room := range building.Rooms {
			if room.Blocked {
				blocked[room.RoomID] = true
			}
		}
	}
	for _, id := range closed {
		assert.True(t, blocked[id], "%s is in the default closed set but not blocked in the layout", id)
	}
	assert.Len(t, closed, len(blocked))
}

func TestRoomsByBuildingIsACopy(t *testing.T) {
	m := RoomsByBuilding()
	m["building1"] = append(m["building1"], "tampered")

	fresh := RoomsByBuilding()
	assert.NotContains(t, fresh["building1"], "tampered")
}
