package bookings

import (
	"context"
	"fmt"
	"sync"
	"time"

	"silpa/catalog"
	"silpa/models"
)

// memStore is the in-memory Store used by the ledger tests. It enforces the
// same uniqueness the Mongo indexes do: one booking per (roomid, date, slot),
// unique custom-room ids.
type memStore struct {
	mu          sync.Mutex
	bookings    map[string]models.Booking // keyed by booking id
	slots       map[string]string         // slotKey → booking id
	closedRooms []string
	customRooms []models.CustomRoom
	dates       []models.BookingDate
	settings    models.AppSettings
	users       map[string]models.User
}

func newMemStore() *memStore {
	return &memStore{
		bookings:    make(map[string]models.Booking),
		slots:       make(map[string]string),
		closedRooms: catalog.DefaultClosedRooms(),
		users:       make(map[string]models.User),
	}
}

func (m *memStore) addUser(u models.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.UserID] = u
}

func slotKey(roomID string, date time.Time, slot string) string {
	return fmt.Sprintf("%s|%s|%s", roomID, date.Format("2006-01-02"), slot)
}

func (m *memStore) InsertBookings(_ context.Context, bs []models.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range bs {
		if _, taken := m.slots[slotKey(b.RoomID, b.Date, b.Slot)]; taken {
			return ErrDuplicate
		}
	}
	for _, b := range bs {
		m.bookings[b.ID] = b
		m.slots[slotKey(b.RoomID, b.Date, b.Slot)] = b.ID
	}
	return nil
}

func (m *memStore) BookingByID(_ context.Context, id string) (*models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &b, nil
}

func (m *memStore) BookingExists(_ context.Context, roomID string, date time.Time, slot string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.slots[slotKey(roomID, date, slot)]
	return ok, nil
}

func (m *memStore) BookingsByDate(_ context.Context, day time.Time) ([]models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Booking
	for _, b := range m.bookings {
		if b.Date.Equal(day) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *memStore) AllBookings(_ context.Context) ([]models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Booking, 0, len(m.bookings))
	for _, b := range m.bookings {
		out = append(out, b)
	}
	return out, nil
}

func (m *memStore) deleteLocked(id string) {
	b, ok := m.bookings[id]
	if !ok {
		return
	}
	delete(m.bookings, id)
	delete(m.slots, slotKey(b.RoomID, b.Date, b.Slot))
}

func (m *memStore) DeleteBooking(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.bookings[id]; !ok {
		return ErrNotFound
	}
	m.deleteLocked(id)
	return nil
}

func (m *memStore) DeleteBookingsByRoomDate(_ context.Context, roomID string, day time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for id, b := range m.bookings {
		if b.RoomID == roomID && b.Date.Equal(day) {
			m.deleteLocked(id)
			n++
		}
	}
	return n, nil
}

func (m *memStore) DeleteBookingsByRoom(_ context.Context, roomID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for id, b := range m.bookings {
		if b.RoomID == roomID {
			m.deleteLocked(id)
			n++
		}
	}
	return n, nil
}

func (m *memStore) DeleteAllBookings(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := int64(len(m.bookings))
	m.bookings = make(map[string]models.Booking)
	m.slots = make(map[string]string)
	return n, nil
}

func (m *memStore) SetBookingDetails(_ context.Context, id, details string) (*models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	b.Details = details
	m.bookings[id] = b
	return &b, nil
}

func (m *memStore) RoomStatus(_ context.Context) (*models.RoomStatus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return &models.RoomStatus{
		ClosedRooms: append([]string(nil), m.closedRooms...),
		UpdatedAt:   time.Now().UTC(),
	}, nil
}

func (m *memStore) SetClosedRooms(_ context.Context, closed []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closedRooms = append([]string(nil), closed...)
	return nil
}

func (m *memStore) CustomRooms(_ context.Context) ([]models.CustomRoom, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.CustomRoom(nil), m.customRooms...), nil
}

func (m *memStore) CustomRoomByID(_ context.Context, roomID string) (*models.CustomRoom, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, room := range m.customRooms {
		if room.RoomID == roomID {
			r := room
			return &r, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memStore) InsertCustomRoom(_ context.Context, room models.CustomRoom) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.customRooms {
		if existing.RoomID == room.RoomID {
			return ErrDuplicate
		}
	}
	m.customRooms = append(m.customRooms, room)
	return nil
}

func (m *memStore) DeleteCustomRoom(_ context.Context, roomID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, room := range m.customRooms {
		if room.RoomID == roomID {
			m.customRooms = append(m.customRooms[:i], m.customRooms[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (m *memStore) ActiveDates(_ context.Context) ([]models.BookingDate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.BookingDate
	for _, d := range m.dates {
		if d.IsActive {
			out = append(out, d)
		}
	}
	return out, nil
}

func (m *memStore) ActiveDate(_ context.Context, date string) (*models.BookingDate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range m.dates {
		if d.Date == date && d.IsActive {
			found := d
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memStore) InsertDate(_ context.Context, d models.BookingDate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dates = append(m.dates, d)
	return nil
}

func (m *memStore) DeactivateDate(_ context.Context, date string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, d := range m.dates {
		if d.Date == date && d.IsActive {
			m.dates[i].IsActive = false
			return nil
		}
	}
	return ErrNotFound
}

func (m *memStore) Settings(_ context.Context) (*models.AppSettings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.settings.ContestName == "" {
		m.settings.ContestName = DefaultContestName
	}
	s := m.settings
	return &s, nil
}

func (m *memStore) SaveSettings(_ context.Context, s models.AppSettings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings = s
	return nil
}

func (m *memStore) UserByID(_ context.Context, id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (m *memStore) UsersByIDs(_ context.Context, ids []string) (map[string]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]models.User, len(ids))
	for _, id := range ids {
		if u, ok := m.users[id]; ok {
			out[id] = u
		}
	}
	return out, nil
}

var _ Store = (*memStore)(nil)
