package model

import (
	"fmt"
	"time"
)

// TimeSlot is one of the fixed showing periods within a show day.
type TimeSlot string

const (
	SlotMorning   TimeSlot = "MORNING"
	SlotAfternoon TimeSlot = "AFTERNOON"
	SlotEvening   TimeSlot = "EVENING"
)

// TimeSlots lists every slot in its canonical day order.  Serialization
// and seat maps iterate in this order so responses stay deterministic.
var TimeSlots = []TimeSlot{SlotMorning, SlotAfternoon, SlotEvening}

// ParseTimeSlot validates a slot value received from a client.
func ParseTimeSlot(s string) (TimeSlot, error) {
	switch TimeSlot(s) {
	case SlotMorning, SlotAfternoon, SlotEvening:
		return TimeSlot(s), nil
	}
	return "", fmt.Errorf("unknown time slot %q", s)
}

// ScheduledShow identifies one screening day of a movie at a theatre.
// It is embedded by both Showtime and Booking so the two stay in sync
// without one deriving from the other.
type ScheduledShow struct {
	MovieID     string    // movie being screened
	ShowDate    time.Time // date only, UTC midnight
	TheatreName string
}

// Showtime is a bookable screening day with per-slot seat inventory,
// as stored in `showtimes` plus its `showtime_slots` rows.
//
// Fields:
//  ID              – opaque UUID primary key.
//  ScheduledShow   – movie, date and theatre of the screening.
//  SeatsPerSlot    – remaining seats keyed by time slot; only slots the
//                    theatre actually offers have an entry.
//  PricePerSeat    – snapshot price in whole currency units.
type Showtime struct {
	ID string
	ScheduledShow
	SeatsPerSlot map[TimeSlot]int
	PricePerSeat int
}

// SeatsFor reports the remaining seats for a slot and whether the slot
// is offered at all.
func (s *Showtime) SeatsFor(slot TimeSlot) (int, bool) {
	n, ok := s.SeatsPerSlot[slot]
	return n, ok
}
