package repository

import (
	"context"
	"database/sql"

	"cineman/internal/model"
)

// Store bundles the repositories and owns the multi-statement transactions
// the booking lifecycle needs.  Services depend on the narrow interfaces
// they declare; Store satisfies all of them.
type Store struct {
	DB        *sql.DB
	Users     *UserRepo
	Movies    *MovieRepo
	Showtimes *ShowtimeRepo
	Bookings  *BookingRepo
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		DB:        db,
		Users:     NewUserRepo(db),
		Movies:    NewMovieRepo(db),
		Showtimes: NewShowtimeRepo(db),
		Bookings:  NewBookingRepo(db),
	}
}

// GetShowtime loads a showtime with its slot inventory.
func (s *Store) GetShowtime(ctx context.Context, id string) (*model.Showtime, error) {
	return s.Showtimes.GetByID(ctx, id)
}

// CreateBooking atomically takes seats from the slot inventory and records
// the booking.  Either both happen or neither does.
func (s *Store) CreateBooking(ctx context.Context, showtimeID string, b *model.Booking) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := s.Showtimes.TakeSeatsTx(ctx, tx, showtimeID, b.TimeSlot, b.BookedSeats); err != nil {
		return err
	}
	if err := s.Bookings.CreateTx(ctx, tx, b); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// CancelBooking atomically flips the booking to CANCELLED and returns its
// seats to the matching slot.  When the inventory row is gone the whole
// transaction rolls back and ErrSlotMissing is reported, leaving the
// booking untouched.
func (s *Store) CancelBooking(ctx context.Context, b *model.Booking) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := s.Bookings.MarkCancelledTx(ctx, tx, b.UserID, b.ID); err != nil {
		return err
	}
	if err := s.Showtimes.RestoreSeatsTx(ctx, tx, b.ScheduledShow, b.TimeSlot, b.BookedSeats); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// GetBookingForUser and ListBookingsForUser surface the read side to the
// booking service without exposing the repos themselves.
func (s *Store) GetBookingForUser(ctx context.Context, userID, id string) (*model.Booking, error) {
	return s.Bookings.GetByIDForUser(ctx, userID, id)
}

func (s *Store) ListBookingsForUser(ctx context.Context, userID string) ([]model.Booking, error) {
	return s.Bookings.ListByUser(ctx, userID)
}
