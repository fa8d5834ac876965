package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"cineman/internal/domain"
	"cineman/internal/model"
	"cineman/internal/service"
)

// BookingHandler exposes the booking lifecycle endpoints.  Every route is
// behind the JWT middleware; the subject of the access token is the only
// user whose bookings are ever visible.
type BookingHandler struct {
	bookings *service.BookingService
}

func NewBookingHandler(bookings *service.BookingService) *BookingHandler {
	return &BookingHandler{bookings: bookings}
}

type createBookingRequest struct {
	ShowtimeID string `json:"showtime_id"`
	TimeSlot   string `json:"time_slot"`
	Seats      int    `json:"seats"`
}

type bookingResponse struct {
	ID          string `json:"id"`
	MovieID     string `json:"movie_id"`
	ShowDate    string `json:"show_date"`
	TheatreName string `json:"theatre_name"`
	TimeSlot    string `json:"time_slot"`
	BookedSeats int    `json:"booked_seats"`
	TotalAmount int    `json:"total_amount"`
	Status      string `json:"status"`
	OrderDate   string `json:"order_date"`
}

func toBookingResponse(b *model.Booking) bookingResponse {
	return bookingResponse{
		ID:          b.ID,
		MovieID:     b.MovieID,
		ShowDate:    b.ShowDate.Format("2006-01-02"),
		TheatreName: b.TheatreName,
		TimeSlot:    string(b.TimeSlot),
		BookedSeats: b.BookedSeats,
		TotalAmount: b.TotalAmount,
		Status:      string(b.Status),
		OrderDate:   b.OrderDate.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// Create books seats in one slot of a showtime.
func (h *BookingHandler) Create(c echo.Context) error {
	var req createBookingRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, domain.ErrBadRequest)
	}
	slot, err := model.ParseTimeSlot(req.TimeSlot)
	if err != nil {
		return fail(c, domain.ErrTimeSlotNotAvailable)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()
	b, err := h.bookings.CreateBooking(ctx, userID(c), req.ShowtimeID, slot, req.Seats)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusCreated, toBookingResponse(b))
}

// Get returns one of the caller's bookings.
func (h *BookingHandler) Get(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	b, err := h.bookings.GetBooking(ctx, userID(c), c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, toBookingResponse(b))
}

// List returns the caller's booking history, newest first.
func (h *BookingHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	bookings, err := h.bookings.ListBookings(ctx, userID(c))
	if err != nil {
		return fail(c, err)
	}
	out := make([]bookingResponse, 0, len(bookings))
	for i := range bookings {
		out = append(out, toBookingResponse(&bookings[i]))
	}
	return respond(c, http.StatusOK, out)
}

// Cancel flips one of the caller's bookings to CANCELLED and returns its
// seats to the inventory.
func (h *BookingHandler) Cancel(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.bookings.CancelBooking(ctx, userID(c), c.Param("id")); err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, echo.Map{"message": "booking cancelled"})
}
