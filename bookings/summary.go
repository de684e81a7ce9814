package bookings

import (
	"context"
	"sort"

	"silpa/catalog"
	"silpa/models"
)

// BookedRoom is one occupied (room, slot) pair in the summary, with the
// booker's display name.
type BookedRoom struct {
	RoomID   string `json:"roomId"`
	Slot     string `json:"slot"`
	BookedBy string `json:"bookedBy"`
}

type BuildingSummary struct {
	BookedSlots    int          `json:"bookedSlots"`
	AvailableSlots int          `json:"availableSlots"`
	BookedRooms    []BookedRoom `json:"bookedRooms"`
	AvailableRooms []string     `json:"availableRooms"`
}

// Summary is date → building → aggregate.
type Summary map[string]map[string]*BuildingSummary

// SummaryDates is the list of days the summary covers: the built-in event
// days plus every active admin-added date, sorted, without duplicates.
func (l *Ledger) SummaryDates(ctx context.Context) ([]string, error) {
	seen := make(map[string]bool)
	var dates []string
	for _, d := range catalog.DefaultEventDates {
		if !seen[d] {
			seen[d] = true
			dates = append(dates, d)
		}
	}
	active, err := l.store.ActiveDates(ctx)
	if err != nil {
		return nil, err
	}
	for _, d := range active {
		if !seen[d.Date] {
			seen[d.Date] = true
			dates = append(dates, d.Date)
		}
	}
	sort.Strings(dates)
	return dates, nil
}

// Summary aggregates occupancy per date and building. For every building,
// availableSlots is derived from the open-room count so that
// bookedSlots + availableSlots == 2 × open rooms holds by construction.
func (l *Ledger) Summary(ctx context.Context) (Summary, error) {
	status, err := l.store.RoomStatus(ctx)
	if err != nil {
		return nil, err
	}
	closed := make(map[string]bool, len(status.ClosedRooms))
	for _, id := range status.ClosedRooms {
		closed[id] = true
	}

	customRooms, err := l.store.CustomRooms(ctx)
	if err != nil {
		return nil, err
	}

	// Static layout plus custom rooms, which report under the catch-all
	// building.
	roomsByBuilding := catalog.RoomsByBuilding()
	for _, room := range customRooms {
		roomsByBuilding[catalog.CustomBuilding] = append(roomsByBuilding[catalog.CustomBuilding], room.RoomID)
	}

	openByBuilding := make(map[string][]string, len(roomsByBuilding))
	for building, rooms := range roomsByBuilding {
		open := make([]string, 0, len(rooms))
		for _, id := range rooms {
			if !closed[id] {
				open = append(open, id)
			}
		}
		openByBuilding[building] = open
	}

	dates, err := l.SummaryDates(ctx)
	if err != nil {
		return nil, err
	}

	summary := make(Summary, len(dates))
	bookingsByDate := make(map[string][]models.Booking, len(dates))
	var bookerIDs []string
	for _, date := range dates {
		summary[date] = make(map[string]*BuildingSummary, len(openByBuilding))
		for building, open := range openByBuilding {
			summary[date][building] = &BuildingSummary{
				BookedRooms:    []BookedRoom{},
				AvailableRooms: append([]string(nil), open...),
			}
		}

		day, err := ParseDay(date)
		if err != nil {
			return nil, err
		}
		bs, err := l.store.BookingsByDate(ctx, day)
		if err != nil {
			return nil, err
		}
		bookingsByDate[date] = bs
		for _, b := range bs {
			bookerIDs = append(bookerIDs, b.BookedBy)
		}
	}

	users, err := l.store.UsersByIDs(ctx, bookerIDs)
	if err != nil {
		return nil, err
	}

	for _, date := range dates {
		// roomId → booked slot set, to drop fully booked rooms from the
		// available list afterwards.
		slotsByRoom := make(map[string]map[string]bool)

		for _, b := range bookingsByDate[date] {
			building := catalog.BuildingFor(b.RoomID)
			bs := summary[date][building]

			display := "Unknown"
			if u, ok := users[b.BookedBy]; ok {
				display = u.Display()
			}
			bs.BookedSlots++
			bs.BookedRooms = append(bs.BookedRooms, BookedRoom{
				RoomID:   b.RoomID,
				Slot:     b.Slot,
				BookedBy: display,
			})

			if slotsByRoom[b.RoomID] == nil {
				slotsByRoom[b.RoomID] = make(map[string]bool)
			}
			slotsByRoom[b.RoomID][b.Slot] = true
		}

		for building, bs := range summary[date] {
			bs.AvailableSlots = 2*len(openByBuilding[building]) - bs.BookedSlots

			remaining := bs.AvailableRooms[:0]
			for _, roomID := range bs.AvailableRooms {
				slots := slotsByRoom[roomID]
				if slots[models.SlotAM] && slots[models.SlotPM] {
					continue
				}
				remaining = append(remaining, roomID)
			}
			bs.AvailableRooms = remaining
		}
	}

	return summary, nil
}
