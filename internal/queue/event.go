// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingEvent is published when a booking is confirmed or cancelled.
// It contains enough information for downstream consumers to log, notify,
// or trigger analytics without querying the primary database.
type BookingEvent struct {
	BookingID   string `json:"booking_id"`
	UserID      string `json:"user_id"`
	MovieID     string `json:"movie_id"`
	ShowDate    string `json:"show_date"`
	TheatreName string `json:"theatre_name"`
	TimeSlot    string `json:"time_slot"`
	BookedSeats int    `json:"booked_seats"`
	TotalAmount int    `json:"total_amount"`
	Status      string `json:"status"`
	OccurredAt  string `json:"occurred_at"`
}

// Queue names, one per event kind.  Both are durable.
const (
	ConfirmedQueue = "booking.confirmed"
	CancelledQueue = "booking.cancelled"
)
