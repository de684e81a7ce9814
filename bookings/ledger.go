package bookings

import (
	"context"
	"fmt"
	"strings"
	"time"

	"silpa/apperr"
	"silpa/models"

	"github.com/google/uuid"
)

// Ledger owns the reservation facts: it answers availability queries,
// enforces at-most-one-booking-per-slot and builds the per-building summary.
type Ledger struct {
	store Store
	now   func() time.Time
}

func NewLedger(store Store) *Ledger {
	return &Ledger{store: store, now: time.Now}
}

// ReserveResult reports a successful batch.
type ReserveResult struct {
	Message  string           `json:"message"`
	Count    int              `json:"count"`
	Bookings []models.Booking `json:"bookings"`
}

// ParseDay turns a "YYYY-MM-DD" string into UTC midnight. Every stored and
// compared date goes through this so client and server timezones cannot
// drift a booking onto the wrong day.
func ParseDay(date string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return time.Time{}, apperr.BadRequest(fmt.Sprintf("invalid date %q, want YYYY-MM-DD", date))
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

// Reserve books every selection for the given day, or none of them.
// Non-admins cannot touch closed rooms. Admins may book on behalf of another
// user via onBehalfOf. All conflicting (room, slot) pairs are reported in a
// single error so the client can show the whole picture at once.
func (l *Ledger) Reserve(ctx context.Context, date string, selections []models.Selection, requesterID, onBehalfOf string, isAdmin bool) (*ReserveResult, error) {
	if len(selections) == 0 {
		return nil, apperr.BadRequest("at least one selection is required")
	}
	day, err := ParseDay(date)
	if err != nil {
		return nil, err
	}
	for _, sel := range selections {
		if sel.RoomID == "" {
			return nil, apperr.BadRequest("roomId is required")
		}
		if !models.ValidSlot(sel.Slot) {
			return nil, apperr.BadRequest(fmt.Sprintf("invalid slot %q, want am or pm", sel.Slot))
		}
	}

	if !isAdmin {
		status, err := l.store.RoomStatus(ctx)
		if err != nil {
			return nil, err
		}
		closed := make(map[string]bool, len(status.ClosedRooms))
		for _, id := range status.ClosedRooms {
			closed[id] = true
		}
		for _, sel := range selections {
			if closed[sel.RoomID] {
				return nil, apperr.Conflict(fmt.Sprintf("room %s is closed for booking, please contact an administrator", sel.RoomID))
			}
		}
	}

	bookedBy := requesterID
	if isAdmin && onBehalfOf != "" {
		bookedBy = onBehalfOf
	}

	// Pre-check collects every conflict so the whole batch fails with one
	// complete message. The unique index on (roomid, date, slot) closes the
	// window between this check and the insert.
	var conflicts []string
	for _, sel := range selections {
		exists, err := l.store.BookingExists(ctx, sel.RoomID, day, sel.Slot)
		if err != nil {
			return nil, err
		}
		if exists {
			conflicts = append(conflicts, fmt.Sprintf("%s (%s)", sel.RoomID, sel.Slot))
		}
	}
	if len(conflicts) > 0 {
		return nil, apperr.Conflict("These time slots are already booked: " + strings.Join(conflicts, ", "))
	}

	created := make([]models.Booking, len(selections))
	for i, sel := range selections {
		created[i] = models.Booking{
			ID:        uuid.NewString(),
			RoomID:    sel.RoomID,
			Date:      day,
			Slot:      sel.Slot,
			BookedBy:  bookedBy,
			CreatedAt: l.now().UTC(),
		}
	}
	if err := l.store.InsertBookings(ctx, created); err != nil {
		if err == ErrDuplicate {
			// Lost the race between check and insert.
			return nil, apperr.Conflict("These time slots are already booked")
		}
		return nil, err
	}

	return &ReserveResult{
		Message:  "Bookings created successfully",
		Count:    len(created),
		Bookings: created,
	}, nil
}

// ListByDate returns every booking on the UTC calendar day of date.
func (l *Ledger) ListByDate(ctx context.Context, date string) ([]models.Booking, error) {
	day, err := ParseDay(date)
	if err != nil {
		return nil, err
	}
	return l.store.BookingsByDate(ctx, day)
}

// ListWithBooker joins the day's bookings with each booker's displayable
// identity. A dangling user reference yields a nil BookedBy rather than an
// error.
func (l *Ledger) ListWithBooker(ctx context.Context, date string) ([]models.BookingDetail, error) {
	bs, err := l.ListByDate(ctx, date)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(bs))
	for _, b := range bs {
		ids = append(ids, b.BookedBy)
	}
	users, err := l.store.UsersByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]models.BookingDetail, 0, len(bs))
	for _, b := range bs {
		detail := models.BookingDetail{RoomID: b.RoomID, Slot: b.Slot}
		if u, ok := users[b.BookedBy]; ok {
			detail.BookedBy = &models.BookerRef{
				Username:    u.Username,
				DisplayName: u.Display(),
			}
		}
		out = append(out, detail)
	}
	return out, nil
}

// StatusByDate returns roomId → {am, pm} occupancy for a day.
func (l *Ledger) StatusByDate(ctx context.Context, date string) (map[string]map[string]bool, error) {
	bs, err := l.ListByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	status := make(map[string]map[string]bool)
	for _, b := range bs {
		if status[b.RoomID] == nil {
			status[b.RoomID] = make(map[string]bool)
		}
		status[b.RoomID][b.Slot] = true
	}
	return status, nil
}

// Booking fetches one booking by id.
func (l *Ledger) Booking(ctx context.Context, bookingID string) (*models.Booking, error) {
	booking, err := l.store.BookingByID(ctx, bookingID)
	if err == ErrNotFound {
		return nil, apperr.NotFound("booking not found")
	}
	return booking, err
}

// All returns every booking in the ledger, sorted by date, room, slot.
func (l *Ledger) All(ctx context.Context) ([]models.Booking, error) {
	return l.store.AllBookings(ctx)
}

// Cancel deletes one booking. Only the original booker or an admin may do it.
func (l *Ledger) Cancel(ctx context.Context, bookingID, requesterID string, isAdmin bool) (*models.Booking, error) {
	booking, err := l.store.BookingByID(ctx, bookingID)
	if err != nil {
		if err == ErrNotFound {
			return nil, apperr.NotFound("booking not found")
		}
		return nil, err
	}
	if !isAdmin && booking.BookedBy != requesterID {
		return nil, apperr.Conflict("you can only delete your own bookings")
	}
	if err := l.store.DeleteBooking(ctx, bookingID); err != nil && err != ErrNotFound {
		return nil, err
	}
	return booking, nil
}

// ResetRoom deletes every booking for a room on a day. Admin only.
func (l *Ledger) ResetRoom(ctx context.Context, roomID, date string, isAdmin bool) (int64, error) {
	if !isAdmin {
		return 0, apperr.Conflict("only admin can reset room bookings")
	}
	if roomID == "" {
		return 0, apperr.BadRequest("roomId is required")
	}
	day, err := ParseDay(date)
	if err != nil {
		return 0, err
	}
	return l.store.DeleteBookingsByRoomDate(ctx, roomID, day)
}

// ResetAll wipes the whole ledger. Admin only.
func (l *Ledger) ResetAll(ctx context.Context, isAdmin bool) (int64, error) {
	if !isAdmin {
		return 0, apperr.Conflict("only admin can reset all bookings")
	}
	return l.store.DeleteAllBookings(ctx)
}

// UpdateDetails sets the free-text details (the competition name) on a
// booking. Allowed for admins, the god account, and the original booker.
func (l *Ledger) UpdateDetails(ctx context.Context, bookingID, details, requesterID, requesterRole string) (*models.Booking, error) {
	booking, err := l.store.BookingByID(ctx, bookingID)
	if err != nil {
		if err == ErrNotFound {
			return nil, apperr.NotFound("booking not found")
		}
		return nil, err
	}

	isAdmin := requesterRole == models.RoleAdmin || requesterRole == models.RoleGod
	if !isAdmin && booking.BookedBy != requesterID {
		return nil, apperr.Forbidden("you do not have permission to edit this booking")
	}

	return l.store.SetBookingDetails(ctx, bookingID, details)
}
