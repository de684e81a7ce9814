package bookings

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"silpa/apperr"
	"silpa/live"
	"silpa/models"
	"silpa/rdx"
	"silpa/utils"

	"github.com/julienschmidt/httprouter"
)

// defaultLedger serves the HTTP layer. MongoStore is stateless; the
// collections behind it are wired in db.Init.
var defaultLedger = NewLedger(NewMongoStore())

const summaryCacheTTL = 30 * time.Second

func respondErr(w http.ResponseWriter, err error) {
	code := apperr.StatusOf(err)
	if code == http.StatusInternalServerError {
		log.Printf("bookings: %v", err)
		utils.RespondWithError(w, code, "internal server error")
		return
	}
	utils.RespondWithError(w, code, err.Error())
}

type reserveRequest struct {
	Date       string             `json:"date"`
	Selections []models.Selection `json:"selections"`
	OnBehalfOf string             `json:"onBehalfOf"`
}

// CreateBookings books a batch of (room, slot) selections for one day.
func CreateBookings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req reserveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := defaultLedger.Reserve(r.Context(), req.Date, req.Selections,
		utils.GetUserIDFromRequest(r), req.OnBehalfOf, utils.IsAdminRequest(r))
	if err != nil {
		respondErr(w, err)
		return
	}

	rdx.InvalidateSummary()
	for _, b := range result.Bookings {
		live.Publish(live.Event{Action: "booked", RoomID: b.RoomID, Date: req.Date, Slot: b.Slot})
	}
	utils.RespondWithJSON(w, http.StatusCreated, result)
}

// GetBookings lists the bookings on ?date=YYYY-MM-DD.
func GetBookings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	bs, err := defaultLedger.ListByDate(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		respondErr(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, bs)
}

// GetBookingDetails lists the day's bookings joined with booker identities.
func GetBookingDetails(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	details, err := defaultLedger.ListWithBooker(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		respondErr(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, details)
}

// GetBookingStatus returns roomId → {am, pm} occupancy for ?date=.
func GetBookingStatus(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	status, err := defaultLedger.StatusByDate(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		respondErr(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, status)
}

// GetAllBookings dumps the whole ledger. Admin only.
func GetAllBookings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if !utils.IsAdminRequest(r) {
		utils.RespondWithError(w, http.StatusConflict, "only admin can view all bookings")
		return
	}
	bs, err := defaultLedger.All(r.Context())
	if err != nil {
		respondErr(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, bs)
}

// GetSummary serves the per-building availability dashboard, cache-aside
// through Redis. The cached value is the raw JSON body.
func GetSummary(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if cached, err := rdx.RdxGet(rdx.SummaryKey); err == nil && cached != "" {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(cached))
		return
	}

	summary, err := defaultLedger.Summary(r.Context())
	if err != nil {
		respondErr(w, err)
		return
	}

	body, err := json.Marshal(summary)
	if err != nil {
		respondErr(w, err)
		return
	}
	if err := rdx.RdxSet(rdx.SummaryKey, string(body), summaryCacheTTL); err != nil {
		log.Printf("bookings: cache summary: %v", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

// DeleteBooking cancels one booking by id.
func DeleteBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	booking, err := defaultLedger.Cancel(r.Context(), ps.ByName("id"),
		utils.GetUserIDFromRequest(r), utils.IsAdminRequest(r))
	if err != nil {
		respondErr(w, err)
		return
	}

	rdx.InvalidateSummary()
	live.Publish(live.Event{
		Action: "cancelled",
		RoomID: booking.RoomID,
		Date:   booking.Date.Format("2006-01-02"),
		Slot:   booking.Slot,
	})
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Booking deleted successfully"})
}

type resetRoomRequest struct {
	RoomID string `json:"roomId"`
	Date   string `json:"date"`
}

// ResetRoom clears every booking for one room on one day. Admin only.
func ResetRoom(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req resetRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	deleted, err := defaultLedger.ResetRoom(r.Context(), req.RoomID, req.Date, utils.IsAdminRequest(r))
	if err != nil {
		respondErr(w, err)
		return
	}

	rdx.InvalidateSummary()
	live.Publish(live.Event{Action: "reset", RoomID: req.RoomID, Date: req.Date})
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"message":      "Room bookings reset successfully",
		"deletedCount": deleted,
	})
}

// ResetAllBookings wipes the whole ledger. Admin only.
func ResetAllBookings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	deleted, err := defaultLedger.ResetAll(r.Context(), utils.IsAdminRequest(r))
	if err != nil {
		respondErr(w, err)
		return
	}

	rdx.InvalidateSummary()
	live.Publish(live.Event{Action: "reset"})
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"message":      "All bookings reset successfully",
		"deletedCount": deleted,
	})
}

type updateDetailsRequest struct {
	Details string `json:"details"`
}

// UpdateBookingDetails sets the competition name on a booking.
func UpdateBookingDetails(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req updateDetailsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	booking, err := defaultLedger.UpdateDetails(r.Context(), ps.ByName("id"), req.Details,
		utils.GetUserIDFromRequest(r), utils.GetRoleFromRequest(r))
	if err != nil {
		respondErr(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, booking)
}

// GetRoomStatus returns the closed-room list.
func GetRoomStatus(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	status, err := defaultLedger.RoomStatus(r.Context())
	if err != nil {
		respondErr(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, status)
}

func requireAdmin(w http.ResponseWriter, r *http.Request, action string) bool {
	if utils.IsAdminRequest(r) {
		return true
	}
	utils.RespondWithError(w, http.StatusConflict, "only admin can "+action)
	return false
}

// OpenRoom reopens a room for booking. Admin only.
func OpenRoom(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if !requireAdmin(w, r, "open rooms") {
		return
	}
	closed, err := defaultLedger.OpenRoom(r.Context(), ps.ByName("roomId"))
	if err != nil {
		respondErr(w, err)
		return
	}

	rdx.InvalidateSummary()
	live.Publish(live.Event{Action: "room-status", RoomID: ps.ByName("roomId")})
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"closedRooms": closed})
}

// CloseRoom closes a room for booking. Admin only.
func CloseRoom(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if !requireAdmin(w, r, "close rooms") {
		return
	}
	closed, err := defaultLedger.CloseRoom(r.Context(), ps.ByName("roomId"))
	if err != nil {
		respondErr(w, err)
		return
	}

	rdx.InvalidateSummary()
	live.Publish(live.Event{Action: "room-status", RoomID: ps.ByName("roomId")})
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"closedRooms": closed})
}

// ToggleRoom flips a room's open/closed state. Admin only.
func ToggleRoom(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if !requireAdmin(w, r, "toggle rooms") {
		return
	}
	isClosed, closed, err := defaultLedger.ToggleRoom(r.Context(), ps.ByName("roomId"))
	if err != nil {
		respondErr(w, err)
		return
	}

	rdx.InvalidateSummary()
	live.Publish(live.Event{Action: "room-status", RoomID: ps.ByName("roomId")})
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"isClosed": isClosed, "closedRooms": closed})
}

// GetCustomRooms lists admin-created rooms.
func GetCustomRooms(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	rooms, err := defaultLedger.CustomRooms(r.Context())
	if err != nil {
		respondErr(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, rooms)
}

type customRoomRequest struct {
	RoomName string `json:"roomName"`
	Subtitle string `json:"subtitle"`
}

// CreateCustomRoom adds a room under the catch-all building. Admin only.
func CreateCustomRoom(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if !requireAdmin(w, r, "create custom rooms") {
		return
	}
	var req customRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	room, err := defaultLedger.CreateCustomRoom(r.Context(), req.RoomName, req.Subtitle)
	if err != nil {
		respondErr(w, err)
		return
	}

	rdx.InvalidateSummary()
	utils.RespondWithJSON(w, http.StatusCreated, room)
}

// DeleteCustomRoom removes a custom room and its bookings. Admin only.
func DeleteCustomRoom(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if !requireAdmin(w, r, "delete custom rooms") {
		return
	}
	if err := defaultLedger.DeleteCustomRoom(r.Context(), ps.ByName("roomId")); err != nil {
		respondErr(w, err)
		return
	}

	rdx.InvalidateSummary()
	live.Publish(live.Event{Action: "room-status", RoomID: ps.ByName("roomId")})
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Custom room deleted successfully"})
}

// GetDates lists the active bookable days.
func GetDates(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	dates, err := defaultLedger.ActiveDates(r.Context())
	if err != nil {
		respondErr(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dates)
}

type addDateRequest struct {
	Date        string `json:"date"`
	DisplayName string `json:"displayName"`
}

// AddDate registers a new bookable day. Admin only.
func AddDate(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if !requireAdmin(w, r, "add dates") {
		return
	}
	var req addDateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	date, err := defaultLedger.AddDate(r.Context(), req.Date, req.DisplayName)
	if err != nil {
		respondErr(w, err)
		return
	}

	rdx.InvalidateSummary()
	live.Publish(live.Event{Action: "dates", Date: req.Date})
	utils.RespondWithJSON(w, http.StatusCreated, date)
}

// DeleteDate soft-deletes a bookable day. Admin only.
func DeleteDate(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if !requireAdmin(w, r, "delete dates") {
		return
	}
	if err := defaultLedger.RemoveDate(r.Context(), ps.ByName("date")); err != nil {
		respondErr(w, err)
		return
	}

	rdx.InvalidateSummary()
	live.Publish(live.Event{Action: "dates", Date: ps.ByName("date")})
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Date deleted successfully"})
}

// GetSettings returns the app settings singleton.
func GetSettings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	settings, err := defaultLedger.Settings(r.Context())
	if err != nil {
		respondErr(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, settings)
}

type settingsRequest struct {
	ContestName string `json:"contestName"`
}

// UpdateSettings renames the contest. Admin only.
func UpdateSettings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if !requireAdmin(w, r, "update settings") {
		return
	}
	var req settingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	settings, err := defaultLedger.UpdateContestName(r.Context(), req.ContestName)
	if err != nil {
		respondErr(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, settings)
}

// UploadLogo replaces the contest logo. Admin only.
func UploadLogo(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if !requireAdmin(w, r, "upload the logo") {
		return
	}
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, _, err := r.FormFile("logo")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "logo file is required")
		return
	}
	defer file.Close()

	settings, err := defaultLedger.SaveLogo(r.Context(), file)
	if err != nil {
		respondErr(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, settings)
}
