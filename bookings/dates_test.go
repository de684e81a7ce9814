package bookings

import (
	"context"
	"testing"

	"silpa/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddDate(t *testing.T) {
	ledger, _ := newTestLedger()
	ctx := context.Background()

	d, err := ledger.AddDate(ctx, "2025-12-24", "Extra day")
	require.NoError(t, err)
	assert.Equal(t, "2025-12-24", d.Date)
	assert.True(t, d.IsActive)

	dates, err := ledger.ActiveDates(ctx)
	require.NoError(t, err)
	require.Len(t, dates, 1)
	assert.Equal(t, "Extra day", dates[0].DisplayName)
}

func TestAddDateRejectsPast(t *testing.T) {
	ledger, _ := newTestLedger()

	// The test clock is pinned to 2025-12-01.
	_, err := ledger.AddDate(context.Background(), "2025-11-30", "Yesterday")
	require.Error(t, err)
	assert.IsType(t, &apperr.BadRequestError{}, err)

	// Today itself is allowed.
	_, err = ledger.AddDate(context.Background(), "2025-12-01", "Today")
	assert.NoError(t, err)
}

func TestAddDateRejectsDuplicate(t *testing.T) {
	ledger, _ := newTestLedger()
	ctx := context.Background()

	_, err := ledger.AddDate(ctx, "2025-12-24", "Extra day")
	require.NoError(t, err)

	_, err = ledger.AddDate(ctx, "2025-12-24", "Extra day again")
	require.Error(t, err)
	assert.IsType(t, &apperr.ConflictError{}, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestAddDateRequiresDisplayName(t *testing.T) {
	ledger, _ := newTestLedger()

	_, err := ledger.AddDate(context.Background(), "2025-12-24", "  ")
	assert.IsType(t, &apperr.BadRequestError{}, err)
}

func TestRemoveDateSoftDeletes(t *testing.T) {
	ledger, _ := newTestLedger()
	ctx := context.Background()

	_, err := ledger.AddDate(ctx, "2025-12-24", "Extra day")
	require.NoError(t, err)

	require.NoError(t, ledger.RemoveDate(ctx, "2025-12-24"))

	dates, err := ledger.ActiveDates(ctx)
	require.NoError(t, err)
	assert.Empty(t, dates)

	// Removed dates can be re-added.
	_, err = ledger.AddDate(ctx, "2025-12-24", "Extra day back")
	assert.NoError(t, err)
}

func TestRemoveDateNotFound(t *testing.T) {
	ledger, _ := newTestLedger()

	err := ledger.RemoveDate(context.Background(), "2025-12-24")
	assert.IsType(t, &apperr.NotFoundError{}, err)
}
