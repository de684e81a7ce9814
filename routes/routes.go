package routes

import (
	"net/http"

	"silpa/auth"
	"silpa/bookings"
	"silpa/live"
	"silpa/middleware"
	"silpa/ratelim"
	"silpa/users"

	"github.com/julienschmidt/httprouter"
)

func AddAuthRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/auth/register", rl.Limit(auth.Register))
	router.POST("/api/auth/login", rl.Limit(auth.Login))
}

func AddBookingRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	wrap := func(h httprouter.Handle) httprouter.Handle {
		return rl.Limit(middleware.Authenticate(h))
	}

	router.GET("/api/bookings", wrap(bookings.GetBookings))
	router.GET("/api/bookings/details", wrap(bookings.GetBookingDetails))
	router.GET("/api/bookings/status", wrap(bookings.GetBookingStatus))
	router.GET("/api/bookings/all", wrap(bookings.GetAllBookings))
	router.GET("/api/bookings/summary", wrap(bookings.GetSummary))
	router.GET("/api/bookings/export/excel", wrap(bookings.ExportExcel))
	router.GET("/api/bookings/export/pdf", wrap(bookings.ExportPDF))
	router.GET("/api/bookings/qr/:id", wrap(bookings.BookingQR))
	router.POST("/api/bookings", wrap(bookings.CreateBookings))
	router.POST("/api/bookings/reset-room", wrap(bookings.ResetRoom))
	router.POST("/api/bookings/reset-all", wrap(bookings.ResetAllBookings))
	// DELETEs with a wildcard id live outside /api/bookings so they cannot
	// collide with the static sibling paths above in the router tree.
	router.DELETE("/api/bookings/:id", wrap(bookings.DeleteBooking))
	router.PATCH("/api/bookings/:id/details", wrap(bookings.UpdateBookingDetails))

	router.GET("/api/bookings/room-status", wrap(bookings.GetRoomStatus))
	router.POST("/api/bookings/open-room/:roomId", wrap(bookings.OpenRoom))
	router.POST("/api/bookings/close-room/:roomId", wrap(bookings.CloseRoom))
	router.POST("/api/bookings/toggle-room/:roomId", wrap(bookings.ToggleRoom))

	router.GET("/api/bookings/custom-rooms", wrap(bookings.GetCustomRooms))
	router.POST("/api/bookings/custom-rooms", wrap(bookings.CreateCustomRoom))
	router.DELETE("/api/custom-rooms/:roomId", wrap(bookings.DeleteCustomRoom))

	router.GET("/api/bookings/dates", wrap(bookings.GetDates))
	router.POST("/api/bookings/dates", wrap(bookings.AddDate))
	router.DELETE("/api/dates/:date", wrap(bookings.DeleteDate))

	router.GET("/api/bookings/settings", wrap(bookings.GetSettings))
	router.POST("/api/bookings/settings", wrap(bookings.UpdateSettings))
	router.POST("/api/bookings/settings/logo", wrap(bookings.UploadLogo))
}

func AddUserRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	wrap := func(h httprouter.Handle) httprouter.Handle {
		return rl.Limit(middleware.Authenticate(h))
	}

	router.GET("/api/users", wrap(users.ListUsers))
	router.GET("/api/users/:id", wrap(users.GetUser))
	router.POST("/api/users", wrap(users.CreateUser))
	router.PATCH("/api/users/:id", wrap(users.UpdateUser))
	router.DELETE("/api/users/:id", wrap(users.DeleteUser))
}

func AddLiveRoutes(router *httprouter.Router) {
	router.GET("/ws/updates", live.ServeWS)
}

// AddStaticRoutes serves the uploaded branding assets.
func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/*filepath", http.Dir("static"))
}
