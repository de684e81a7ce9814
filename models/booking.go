package models

import "time"

// Half-day booking slots.
const (
	SlotAM = "am"
	SlotPM = "pm"
)

func ValidSlot(slot string) bool {
	return slot == SlotAM || slot == SlotPM
}

// Booking is one reserved (room, date, slot) triple. Date is always UTC
// midnight; the storage layer enforces uniqueness of (roomid, date, slot).
type Booking struct {
	ID        string    `json:"id" bson:"id"`
	RoomID    string    `json:"roomId" bson:"roomid"`
	Date      time.Time `json:"date" bson:"date"`
	Slot      string    `json:"slot" bson:"slot"`
	BookedBy  string    `json:"bookedBy" bson:"bookedby"`
	Details   string    `json:"details" bson:"details"`
	CreatedAt time.Time `json:"createdAt" bson:"createdat"`
}

// Selection is one requested (room, slot) pair inside a reserve batch.
type Selection struct {
	RoomID string `json:"roomId"`
	Slot   string `json:"slot"`
}

// RoomStatus is the singleton set of rooms closed for booking.
type RoomStatus struct {
	ClosedRooms []string  `json:"closedRooms" bson:"closedrooms"`
	UpdatedAt   time.Time `json:"updatedAt,omitempty" bson:"updatedat,omitempty"`
}

// CustomRoom is an admin-created room outside the static catalog.
type CustomRoom struct {
	RoomID    string    `json:"roomId" bson:"roomid"`
	RoomName  string    `json:"roomName" bson:"roomname"`
	Subtitle  string    `json:"subtitle,omitempty" bson:"subtitle,omitempty"`
	CreatedAt time.Time `json:"createdAt" bson:"createdat"`
}

// BookingDate is an admin-managed bookable day. Removal soft-deletes
// (IsActive=false) so past bookings keep their context.
type BookingDate struct {
	Date        string    `json:"date" bson:"date"`
	DisplayName string    `json:"displayName" bson:"displayname"`
	IsActive    bool      `json:"isActive" bson:"isactive"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdat"`
}

// AppSettings is the singleton display configuration.
type AppSettings struct {
	ContestName string `json:"contestName" bson:"contestname"`
	LogoPath    string `json:"logoPath,omitempty" bson:"logopath,omitempty"`
}

// BookerRef is the displayable identity joined onto a booking.
type BookerRef struct {
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
}

// BookingDetail is one row of GET /bookings/details. BookedBy is nil when
// the user reference cannot be resolved.
type BookingDetail struct {
	RoomID   string     `json:"roomId"`
	Slot     string     `json:"slot"`
	BookedBy *BookerRef `json:"bookedBy"`
}
