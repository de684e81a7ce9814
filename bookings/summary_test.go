package bookings

import (
	"context"
	"testing"

	"silpa/catalog"
	"silpa/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openRoomCount(t *testing.T, store *memStore, building string) int {
	t.Helper()
	status, err := store.RoomStatus(context.Background())
	require.NoError(t, err)
	closed := make(map[string]bool)
	for _, id := range status.ClosedRooms {
		closed[id] = true
	}
	n := 0
	for _, id := range catalog.RoomsByBuilding()[building] {
		if !closed[id] {
			n++
		}
	}
	return n
}

func TestSummaryArithmetic(t *testing.T) {
	ledger, store := newTestLedger()
	ctx := context.Background()

	store.addUser(models.User{UserID: "u1", Username: "alice"})
	_, err := ledger.Reserve(ctx, testDay, []models.Selection{
		{RoomID: "131", Slot: "am"},
		{RoomID: "131", Slot: "pm"},
		{RoomID: "231", Slot: "am"},
	}, "u1", "", false)
	require.NoError(t, err)

	summary, err := ledger.Summary(ctx)
	require.NoError(t, err)

	for date, buildings := range summary {
		for building, bs := range buildings {
			open := openRoomCount(t, store, building)
			assert.Equal(t, 2*open, bs.BookedSlots+bs.AvailableSlots,
				"%s/%s: bookedSlots + availableSlots must equal 2 x open rooms", date, building)
		}
	}

	b1 := summary[testDay]["building1"]
	assert.Equal(t, 2, b1.BookedSlots)
	assert.Len(t, b1.BookedRooms, 2)
	assert.NotContains(t, b1.AvailableRooms, "131", "fully booked rooms leave the available list")
	assert.Contains(t, b1.AvailableRooms, "133")

	b2 := summary[testDay]["building2"]
	assert.Equal(t, 1, b2.BookedSlots)
	assert.Contains(t, b2.AvailableRooms, "231", "half-booked rooms stay available")
}

func TestSummaryBookerNames(t *testing.T) {
	ledger, store := newTestLedger()
	ctx := context.Background()

	store.addUser(models.User{UserID: "u1", Username: "alice", DisplayName: "Alice A"})
	_, err := ledger.Reserve(ctx, testDay,
		[]models.Selection{{RoomID: "131", Slot: "am"}}, "u1", "", false)
	require.NoError(t, err)
	_, err = ledger.Reserve(ctx, testDay,
		[]models.Selection{{RoomID: "133", Slot: "am"}}, "ghost", "", false)
	require.NoError(t, err)

	summary, err := ledger.Summary(ctx)
	require.NoError(t, err)

	names := make(map[string]string)
	for _, room := range summary[testDay]["building1"].BookedRooms {
		names[room.RoomID] = room.BookedBy
	}
	assert.Equal(t, "Alice A", names["131"])
	assert.Equal(t, "Unknown", names["133"])
}

func TestSummaryCustomRoomsInBuilding6(t *testing.T) {
	ledger, _ := newTestLedger()
	ctx := context.Background()

	room, err := ledger.CreateCustomRoom(ctx, "Gym Annex", "")
	require.NoError(t, err)

	_, err = ledger.Reserve(ctx, testDay,
		[]models.Selection{{RoomID: room.RoomID, Slot: "am"}}, "u1", "", false)
	require.NoError(t, err)

	summary, err := ledger.Summary(ctx)
	require.NoError(t, err)

	b6 := summary[testDay][catalog.CustomBuilding]
	require.NotNil(t, b6)
	require.Len(t, b6.BookedRooms, 1)
	assert.Equal(t, room.RoomID, b6.BookedRooms[0].RoomID)
	assert.Contains(t, b6.AvailableRooms, room.RoomID, "only am is taken")
}

func TestSummaryDatesIncludeActiveDates(t *testing.T) {
	ledger, _ := newTestLedger()
	ctx := context.Background()

	_, err := ledger.AddDate(ctx, "2025-12-24", "Extra day")
	require.NoError(t, err)
	// A built-in day added again must not appear twice.
	dates, err := ledger.SummaryDates(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-12-22", "2025-12-23", "2025-12-24"}, dates)

	summary, err := ledger.Summary(ctx)
	require.NoError(t, err)
	assert.Len(t, summary, 3)
	assert.NotNil(t, summary["2025-12-24"]["building1"])
}
