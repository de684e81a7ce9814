package bookings

import (
	"context"
	"testing"

	"silpa/apperr"
	"silpa/catalog"
	"silpa/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoomStatusSeededWithDefaults(t *testing.T) {
	ledger, _ := newTestLedger()

	status, err := ledger.RoomStatus(context.Background())
	require.NoError(t, err)
	assert.ElementsMatch(t, catalog.DefaultClosedRooms(), status.ClosedRooms)
}

func TestOpenCloseIdempotent(t *testing.T) {
	ledger, _ := newTestLedger()
	ctx := context.Background()

	closed, err := ledger.CloseRoom(ctx, "131")
	require.NoError(t, err)
	assert.Contains(t, closed, "131")
	n := len(closed)

	closed, err = ledger.CloseRoom(ctx, "131")
	require.NoError(t, err)
	assert.Len(t, closed, n, "closing twice does not duplicate the entry")

	closed, err = ledger.OpenRoom(ctx, "131")
	require.NoError(t, err)
	assert.NotContains(t, closed, "131")

	closed, err = ledger.OpenRoom(ctx, "131")
	require.NoError(t, err)
	assert.NotContains(t, closed, "131")
}

func TestToggleRoom(t *testing.T) {
	ledger, _ := newTestLedger()
	ctx := context.Background()

	isClosed, closed, err := ledger.ToggleRoom(ctx, "131")
	require.NoError(t, err)
	assert.True(t, isClosed)
	assert.Contains(t, closed, "131")

	isClosed, closed, err = ledger.ToggleRoom(ctx, "131")
	require.NoError(t, err)
	assert.False(t, isClosed)
	assert.NotContains(t, closed, "131")
}

func TestCreateCustomRoomSequence(t *testing.T) {
	ledger, _ := newTestLedger()
	ctx := context.Background()

	r1, err := ledger.CreateCustomRoom(ctx, "Gym Annex", "west wing")
	require.NoError(t, err)
	assert.Equal(t, "custom-1", r1.RoomID)

	r2, err := ledger.CreateCustomRoom(ctx, "Dance Hall", "")
	require.NoError(t, err)
	assert.Equal(t, "custom-2", r2.RoomID)

	assert.Equal(t, catalog.CustomBuilding, catalog.BuildingFor(r1.RoomID))
}

func TestCreateCustomRoomSkipsTakenIDs(t *testing.T) {
	ledger, store := newTestLedger()
	ctx := context.Background()

	// One room already present as custom-2: the counter (len+1 = 2) collides
	// and must walk forward.
	require.NoError(t, store.InsertCustomRoom(ctx, models.CustomRoom{RoomID: "custom-2", RoomName: "Old"}))

	room, err := ledger.CreateCustomRoom(ctx, "New Room", "")
	require.NoError(t, err)
	assert.Equal(t, "custom-3", room.RoomID)
}

func TestCreateCustomRoomValidation(t *testing.T) {
	ledger, _ := newTestLedger()

	_, err := ledger.CreateCustomRoom(context.Background(), "   ", "")
	assert.IsType(t, &apperr.BadRequestError{}, err)
}

func TestDeleteCustomRoomCascades(t *testing.T) {
	ledger, store := newTestLedger()
	ctx := context.Background()

	room, err := ledger.CreateCustomRoom(ctx, "Gym Annex", "")
	require.NoError(t, err)

	_, err = ledger.Reserve(ctx, testDay,
		[]models.Selection{{RoomID: room.RoomID, Slot: "am"}}, "u1", "", false)
	require.NoError(t, err)
	_, err = ledger.CloseRoom(ctx, room.RoomID)
	require.NoError(t, err)

	require.NoError(t, ledger.DeleteCustomRoom(ctx, room.RoomID))

	exists, err := store.BookingExists(ctx, room.RoomID, mustDay(t, testDay), "am")
	require.NoError(t, err)
	assert.False(t, exists, "bookings on the deleted room are removed")

	status, err := ledger.RoomStatus(ctx)
	require.NoError(t, err)
	assert.NotContains(t, status.ClosedRooms, room.RoomID)

	err = ledger.DeleteCustomRoom(ctx, room.RoomID)
	assert.IsType(t, &apperr.NotFoundError{}, err)
}
