// Package catalog holds the static room layout for the six school buildings.
// The layout is configuration, not entity state: it is compiled in, and the
// roomId→building mapping below is built from it once instead of being
// re-derived from roomId prefixes at query time.
package catalog

// Room is one bookable room in the static layout.
type Room struct {
	RoomID   string `json:"roomId"`
	RoomName string `json:"roomName"`
	Subtitle string `json:"subtitle,omitempty"`
	// Blocked rooms start out in the closed set (staff rooms, storage, ...).
	Blocked bool `json:"isBlocked,omitempty"`
}

type Building struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Rooms []Room `json:"rooms"`
}

// CustomBuilding is where custom rooms (and any roomId outside the static
// layout) are grouped for reporting.
const CustomBuilding = "building6"

var Buildings = []Building{
	{
		ID:    "building1",
		Title: "Building 1",
		Rooms: []Room{
			{RoomID: "131", RoomName: "Room 131"},
			{RoomID: "132", RoomName: "Room 132", Subtitle: "staff room", Blocked: true},
			{RoomID: "133", RoomName: "Room 133"},
			{RoomID: "134", RoomName: "Room 134", Subtitle: "chemical storage", Blocked: true},
			{RoomID: "135", RoomName: "Room 135"},
			{RoomID: "136", RoomName: "Room 136"},
			{RoomID: "121", RoomName: "Room 121", Subtitle: "administration", Blocked: true},
			{RoomID: "122", RoomName: "Room 122", Subtitle: "finance office", Blocked: true},
			{RoomID: "123", RoomName: "Room 123"},
			{RoomID: "124", RoomName: "Room 124", Subtitle: "staff room", Blocked: true},
			{RoomID: "125", RoomName: "Room 125"},
			{RoomID: "126", RoomName: "Room 126"},
			{RoomID: "111", RoomName: "Room 111", Subtitle: "planning office", Blocked: true},
			{RoomID: "112", RoomName: "Room 112", Subtitle: "staff room", Blocked: true},
			{RoomID: "113", RoomName: "Room 113"},
			{RoomID: "114", RoomName: "Room 114", Subtitle: "storage", Blocked: true},
			{RoomID: "115", RoomName: "Room 115"},
			{RoomID: "116", RoomName: "Room 116"},
		},
	},
	{
		ID:    "building2",
		Title: "Building 2",
		Rooms: []Room{
			{RoomID: "231", RoomName: "Room 231", Subtitle: "4/1"},
			{RoomID: "232", RoomName: "Room 232", Subtitle: "4/2"},
			{RoomID: "233", RoomName: "Room 233", Subtitle: "4/3"},
			{RoomID: "234", RoomName: "Room 234", Subtitle: "4/4"},
			{RoomID: "235", RoomName: "Room 235", Subtitle: "4/5"},
			{RoomID: "236", RoomName: "Room 236", Subtitle: "4/6"},
			{RoomID: "221", RoomName: "Room 221", Subtitle: "mathematics dept", Blocked: true},
			{RoomID: "english", RoomName: "English dept", Blocked: true},
			{RoomID: "211", RoomName: "Room 211", Subtitle: "6/1"},
			{RoomID: "212", RoomName: "Room 212", Subtitle: "6/2"},
			{RoomID: "213", RoomName: "Room 213", Subtitle: "6/3"},
			{RoomID: "214", RoomName: "Room 214", Subtitle: "6/4"},
			{RoomID: "215", RoomName: "Room 215", Subtitle: "6/5"},
			{RoomID: "216", RoomName: "Room 216", Subtitle: "6/6"},
		},
	},
	{
		ID:    "building3",
		Title: "Building 3",
		Rooms: []Room{
			{RoomID: "331", RoomName: "Room 331", Subtitle: "5/1"},
			{RoomID: "332", RoomName: "Room 332", Subtitle: "5/2"},
			{RoomID: "333", RoomName: "Room 333", Subtitle: "social studies", Blocked: true},
			{RoomID: "334", RoomName: "Room 334", Subtitle: "5/3"},
			{RoomID: "335", RoomName: "Room 335", Subtitle: "5/4"},
			{RoomID: "336", RoomName: "Room 336", Subtitle: "5/5"},
			{RoomID: "337", RoomName: "Room 337", Subtitle: "5/6"},
			{RoomID: "338", RoomName: "Room 338", Subtitle: "prayer room", Blocked: true},
			{RoomID: "321", RoomName: "Room 321", Subtitle: "Thai dept", Blocked: true},
			{RoomID: "322", RoomName: "Room 322", Subtitle: "4/7"},
			{RoomID: "323", RoomName: "Room 323", Subtitle: "4/8"},
			{RoomID: "324", RoomName: "Room 324", Subtitle: "4/9"},
			{RoomID: "325", RoomName: "Room 325", Subtitle: "4/10"},
			{RoomID: "326", RoomName: "Room 326", Subtitle: "3/6"},
			{RoomID: "327", RoomName: "Room 327", Subtitle: "3/7"},
			{RoomID: "328", RoomName: "Room 328", Subtitle: "3/8"},
			{RoomID: "311", RoomName: "Room 311", Subtitle: "computer lab"},
			{RoomID: "312", RoomName: "Room 312", Subtitle: "computer lab"},
			{RoomID: "library", RoomName: "Library", Blocked: true},
			{RoomID: "innovation", RoomName: "Innovation room", Blocked: true},
			{RoomID: "317", RoomName: "Room 317", Subtitle: "computer lab"},
			{RoomID: "318", RoomName: "Room 318", Subtitle: "computer lab"},
		},
	},
	{
		ID:    "building4",
		Title: "Building 4",
		Rooms: []Room{
			{RoomID: "441", RoomName: "Room 441", Subtitle: "3/1"},
			{RoomID: "442", RoomName: "Room 442", Subtitle: "3/2"},
			{RoomID: "443", RoomName: "Room 443", Subtitle: "3/3"},
			{RoomID: "444", RoomName: "Room 444", Subtitle: "3/4"},
			{RoomID: "445", RoomName: "Room 445", Subtitle: "3/5"},
			{RoomID: "446", RoomName: "Room 446", Subtitle: "2/9"},
			{RoomID: "447", RoomName: "Room 447", Subtitle: "2/8"},
			{RoomID: "448", RoomName: "Room 448", Subtitle: "2/7"},
			{RoomID: "431", RoomName: "Room 431", Subtitle: "exam center", Blocked: true},
			{RoomID: "432", RoomName: "Room 432", Subtitle: "1/9"},
			{RoomID: "433", RoomName: "Room 433", Subtitle: "2/6"},
			{RoomID: "434", RoomName: "Room 434", Subtitle: "2/5"},
			{RoomID: "435", RoomName: "Room 435", Subtitle: "2/4"},
			{RoomID: "436", RoomName: "Room 436", Subtitle: "2/3"},
			{RoomID: "437", RoomName: "Room 437", Subtitle: "2/2"},
			{RoomID: "438", RoomName: "Room 438", Subtitle: "2/1"},
			{RoomID: "421", RoomName: "Room 421", Subtitle: "1/1"},
			{RoomID: "422", RoomName: "Room 422", Subtitle: "1/2"},
			{RoomID: "423", RoomName: "Room 423", Subtitle: "1/3"},
			{RoomID: "424", RoomName: "Room 424", Subtitle: "1/4"},
			{RoomID: "425", RoomName: "Room 425", Subtitle: "1/5"},
			{RoomID: "426", RoomName: "Room 426", Subtitle: "1/6"},
			{RoomID: "427", RoomName: "Room 427", Subtitle: "1/7"},
			{RoomID: "428", RoomName: "Room 428", Subtitle: "1/8"},
			{RoomID: "fablab", RoomName: "FABLAB"},
			{RoomID: "meeting1", RoomName: "Meeting room 1"},
			{RoomID: "meeting2", RoomName: "Meeting room 2"},
			{RoomID: "hcec", RoomName: "HCEC room"},
		},
	},
	{
		ID:    "building5",
		Title: "New building (A wing)",
		Rooms: []Room{
			{RoomID: "A4", RoomName: "A4", Subtitle: "6/7"},
			{RoomID: "A3", RoomName: "A3", Subtitle: "6/8"},
			{RoomID: "A2", RoomName: "A2", Subtitle: "6/9"},
			{RoomID: "A1", RoomName: "A1", Subtitle: "6/10"},
		},
	},
	{
		ID:    "building6",
		Title: "Other buildings",
		Rooms: []Room{
			{RoomID: "music1", RoomName: "Music room 1"},
			{RoomID: "music2", RoomName: "Music room 2"},
			{RoomID: "home1", RoomName: "Home economics 1"},
			{RoomID: "home2", RoomName: "Home economics 2"},
			{RoomID: "canteen", RoomName: "Canteen"},
			{RoomID: "phet", RoomName: "Phet hall"},
			{RoomID: "phet-canteen", RoomName: "Phet canteen"},
			{RoomID: "industry1", RoomName: "Industrial arts 1", Subtitle: "5/9"},
			{RoomID: "industry2", RoomName: "Industrial arts 2", Subtitle: "5/10"},
		},
	},
}

// DefaultEventDates are the two built-in competition days; admins can add
// more through the booking-date endpoints.
var DefaultEventDates = []string{"2025-12-22", "2025-12-23"}

var buildingByRoom map[string]string

func init() {
	buildingByRoom = make(map[string]string)
	for _, b := range Buildings {
		for _, r := range b.Rooms {
			buildingByRoom[r.RoomID] = b.ID
		}
	}
}

// BuildingFor maps a roomId to its building. Custom rooms and unknown ids
// fall into the catch-all building.
func BuildingFor(roomID string) string {
	if b, ok := buildingByRoom[roomID]; ok {
		return b
	}
	return CustomBuilding
}

// Known reports whether roomID belongs to the static layout.
func Known(roomID string) bool {
	_, ok := buildingByRoom[roomID]
	return ok
}

// DefaultClosedRooms seeds the RoomStatus singleton on first access: every
// room marked Blocked in the layout.
func DefaultClosedRooms() []string {
	var closed []string
	for _, b := range Buildings {
		for _, r := range b.Rooms {
			if r.Blocked {
				closed = append(closed, r.RoomID)
			}
		}
	}
	return closed
}

// RoomsByBuilding returns buildingID → roomIds for the static layout.
// The caller owns the returned slices.
func RoomsByBuilding() map[string][]string {
	out := make(map[string][]string, len(Buildings))
	for _, b := range Buildings {
		ids := make([]string, 0, len(b.Rooms))
		for _, r := range b.Rooms {
			ids = append(ids, r.RoomID)
		}
		out[b.ID] = ids
	}
	return out
}
