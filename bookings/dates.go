package bookings

import (
	"context"
	"strings"

	"silpa/apperr"
	"silpa/models"
)

// ActiveDates lists admin-added bookable days, soonest first.
func (l *Ledger) ActiveDates(ctx context.Context) ([]models.BookingDate, error) {
	return l.store.ActiveDates(ctx)
}

// AddDate registers a new bookable day. The date must not already be active
// and must not lie in the past (date-only comparison, so "today" is fine at
// any hour).
func (l *Ledger) AddDate(ctx context.Context, date, displayName string) (*models.BookingDate, error) {
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return nil, apperr.BadRequest("displayName is required")
	}
	day, err := ParseDay(date)
	if err != nil {
		return nil, err
	}

	if _, err := l.store.ActiveDate(ctx, date); err == nil {
		return nil, apperr.Conflict("this date already exists")
	} else if err != ErrNotFound {
		return nil, err
	}

	if day.Before(l.today()) {
		return nil, apperr.BadRequest("cannot add a date in the past")
	}

	d := models.BookingDate{
		Date:        date,
		DisplayName: displayName,
		IsActive:    true,
		CreatedAt:   l.now().UTC(),
	}
	if err := l.store.InsertDate(ctx, d); err != nil {
		return nil, err
	}
	return &d, nil
}

// RemoveDate soft-deletes a bookable day. Bookings already made on it are
// kept for historical reporting.
func (l *Ledger) RemoveDate(ctx context.Context, date string) error {
	err := l.store.DeactivateDate(ctx, date)
	if err == ErrNotFound {
		return apperr.NotFound("date not found")
	}
	return err
}
