package model

import "time"

// BookingStatus is the lifecycle state of a booking.  The only legal
// transition is BOOKED to CANCELLED; a cancelled booking never revives.
type BookingStatus string

const (
	StatusBooked    BookingStatus = "BOOKED"
	StatusCancelled BookingStatus = "CANCELLED"
)

// Booking records a user's ticket purchase for one slot of a scheduled
// show, as stored in the `bookings` table.  The show identity is copied
// in at creation time so the booking stays readable even if the
// showtime row is later removed.
type Booking struct {
	ID string // bookings.id
	ScheduledShow
	UserID      string        // bookings.user_id
	TimeSlot    TimeSlot      // bookings.time_slot
	BookedSeats int           // bookings.booked_seats
	TotalAmount int           // bookings.total_amount, seats x price at booking time
	Status      BookingStatus // bookings.status
	OrderDate   time.Time     // bookings.order_date
}
