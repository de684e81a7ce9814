package bookings

import (
	"context"
	"fmt"
	"strings"
	"time"

	"silpa/apperr"
	"silpa/models"
)

// RoomStatus returns the closed-room set, creating the seeded singleton on
// first access.
func (l *Ledger) RoomStatus(ctx context.Context) (*models.RoomStatus, error) {
	return l.store.RoomStatus(ctx)
}

// OpenRoom removes roomID from the closed set. Idempotent.
func (l *Ledger) OpenRoom(ctx context.Context, roomID string) ([]string, error) {
	status, err := l.store.RoomStatus(ctx)
	if err != nil {
		return nil, err
	}
	closed := make([]string, 0, len(status.ClosedRooms))
	for _, id := range status.ClosedRooms {
		if id != roomID {
			closed = append(closed, id)
		}
	}
	if err := l.store.SetClosedRooms(ctx, closed); err != nil {
		return nil, err
	}
	return closed, nil
}

// CloseRoom adds roomID to the closed set. Idempotent.
func (l *Ledger) CloseRoom(ctx context.Context, roomID string) ([]string, error) {
	status, err := l.store.RoomStatus(ctx)
	if err != nil {
		return nil, err
	}
	for _, id := range status.ClosedRooms {
		if id == roomID {
			return status.ClosedRooms, nil
		}
	}
	closed := append(status.ClosedRooms, roomID)
	if err := l.store.SetClosedRooms(ctx, closed); err != nil {
		return nil, err
	}
	return closed, nil
}

// ToggleRoom flips the open/closed state and reports the new state.
func (l *Ledger) ToggleRoom(ctx context.Context, roomID string) (bool, []string, error) {
	status, err := l.store.RoomStatus(ctx)
	if err != nil {
		return false, nil, err
	}
	for _, id := range status.ClosedRooms {
		if id == roomID {
			closed, err := l.OpenRoom(ctx, roomID)
			return false, closed, err
		}
	}
	closed, err := l.CloseRoom(ctx, roomID)
	return true, closed, err
}

// CustomRooms lists admin-created rooms in creation order.
func (l *Ledger) CustomRooms(ctx context.Context) ([]models.CustomRoom, error) {
	return l.store.CustomRooms(ctx)
}

// CreateCustomRoom assigns the next free "custom-N" id. On collision (two
// admins racing, or holes left by deletions) it walks forward until an
// unused id is found; this is the only locally recovered error in the
// system.
func (l *Ledger) CreateCustomRoom(ctx context.Context, roomName, subtitle string) (*models.CustomRoom, error) {
	roomName = strings.TrimSpace(roomName)
	if roomName == "" {
		return nil, apperr.BadRequest("roomName is required")
	}

	existing, err := l.store.CustomRooms(ctx)
	if err != nil {
		return nil, err
	}
	next := len(existing) + 1

	for attempts := 0; attempts < 100; attempts++ {
		room := models.CustomRoom{
			RoomID:    fmt.Sprintf("custom-%d", next),
			RoomName:  roomName,
			Subtitle:  strings.TrimSpace(subtitle),
			CreatedAt: l.now().UTC(),
		}
		err := l.store.InsertCustomRoom(ctx, room)
		if err == nil {
			return &room, nil
		}
		if err != ErrDuplicate {
			return nil, err
		}
		next++
	}
	return nil, apperr.Conflict("could not allocate a custom room id")
}

// DeleteCustomRoom removes the room and cascades: its bookings go, and it is
// dropped from the closed set.
func (l *Ledger) DeleteCustomRoom(ctx context.Context, roomID string) error {
	if _, err := l.store.CustomRoomByID(ctx, roomID); err != nil {
		if err == ErrNotFound {
			return apperr.NotFound("custom room not found")
		}
		return err
	}

	if _, err := l.store.DeleteBookingsByRoom(ctx, roomID); err != nil {
		return err
	}
	if _, err := l.OpenRoom(ctx, roomID); err != nil {
		return err
	}
	if err := l.store.DeleteCustomRoom(ctx, roomID); err != nil && err != ErrNotFound {
		return err
	}
	return nil
}

// today returns the current date truncated to UTC midnight.
func (l *Ledger) today() time.Time {
	now := l.now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
