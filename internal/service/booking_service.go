package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"cineman/internal/domain"
	"cineman/internal/model"
	"cineman/internal/repository"
)

// BookingStore is the persistence surface the booking service needs.
// *repository.Store satisfies it; tests substitute mocks or an in-memory
// implementation.
type BookingStore interface {
	GetShowtime(ctx context.Context, id string) (*model.Showtime, error)
	CreateBooking(ctx context.Context, showtimeID string, b *model.Booking) error
	GetBookingForUser(ctx context.Context, userID, id string) (*model.Booking, error)
	ListBookingsForUser(ctx context.Context, userID string) ([]model.Booking, error)
	CancelBooking(ctx context.Context, b *model.Booking) error
}

// BookingNotifier delivers best-effort notifications after a booking
// changes state.  Failures never fail the booking itself.
type BookingNotifier interface {
	BookingConfirmed(ctx context.Context, b *model.Booking) error
	BookingCancelled(ctx context.Context, b *model.Booking) error
}

type BookingService struct {
	store    BookingStore
	notifier BookingNotifier
	logger   *zerolog.Logger
	now      func() time.Time
}

func NewBookingService(store BookingStore, notifier BookingNotifier, logger *zerolog.Logger) *BookingService {
	return &BookingService{
		store:    store,
		notifier: notifier,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// today returns the current date truncated to UTC midnight, the precision
// all show-date comparisons use.
func (s *BookingService) today() time.Time {
	y, m, d := s.now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// CreateBooking reserves seats in one slot of a showtime for the
// authenticated user and returns the new booking.  All validation happens
// before any seats move; the final decrement is re-checked inside the
// store transaction so concurrent requests cannot overdraw a slot.
func (s *BookingService) CreateBooking(ctx context.Context, userID, showtimeID string, slot model.TimeSlot, seats int) (*model.Booking, error) {
	if seats < 1 {
		return nil, domain.ErrSeatCountInvalid
	}

	st, err := s.store.GetShowtime(ctx, showtimeID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrShowNotAvailable
		}
		return nil, err
	}
	remaining, offered := st.SeatsFor(slot)
	if !offered {
		return nil, domain.ErrTimeSlotNotAvailable
	}
	if !st.ShowDate.After(s.today()) {
		return nil, domain.ErrShowDateInPast
	}
	if remaining < seats {
		return nil, domain.ErrSeatsNotAvailable
	}

	b := &model.Booking{
		ID:            uuid.NewString(),
		ScheduledShow: st.ScheduledShow,
		UserID:        userID,
		TimeSlot:      slot,
		BookedSeats:   seats,
		TotalAmount:   seats * st.PricePerSeat,
		Status:        model.StatusBooked,
		OrderDate:     s.now(),
	}
	if err := s.store.CreateBooking(ctx, showtimeID, b); err != nil {
		switch {
		case errors.Is(err, repository.ErrInsufficientSeats):
			// Another booking won the race between the pre-check and the
			// guarded decrement.
			return nil, domain.ErrSeatsNotAvailable
		case errors.Is(err, repository.ErrSlotMissing):
			return nil, domain.ErrTimeSlotNotAvailable
		}
		return nil, err
	}

	if err := s.notifier.BookingConfirmed(ctx, b); err != nil {
		s.logger.Error().Err(err).Str("booking_id", b.ID).Msg("booking confirmation notification failed")
	}
	return b, nil
}

// CancelBooking flips the caller's booking to CANCELLED and returns its
// seats to the slot inventory.  Only upcoming shows can be cancelled and
// a cancelled booking stays cancelled.
func (s *BookingService) CancelBooking(ctx context.Context, userID, bookingID string) error {
	b, err := s.store.GetBookingForUser(ctx, userID, bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.ErrBookingNotFound
		}
		return err
	}
	if b.ShowDate.Before(s.today()) {
		return domain.ErrCancellingPastShow
	}
	if b.Status == model.StatusCancelled {
		return domain.ErrAlreadyCancelled
	}

	if err := s.store.CancelBooking(ctx, b); err != nil {
		switch {
		case errors.Is(err, repository.ErrAlreadyCancelled):
			return domain.ErrAlreadyCancelled
		case errors.Is(err, repository.ErrSlotMissing):
			return domain.ErrShowNotAvailable
		}
		return err
	}
	b.Status = model.StatusCancelled

	if err := s.notifier.BookingCancelled(ctx, b); err != nil {
		s.logger.Error().Err(err).Str("booking_id", b.ID).Msg("booking cancellation notification failed")
	}
	return nil
}

// GetBooking returns one booking scoped to its owner.
func (s *BookingService) GetBooking(ctx context.Context, userID, bookingID string) (*model.Booking, error) {
	b, err := s.store.GetBookingForUser(ctx, userID, bookingID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, domain.ErrBookingNotFound
	}
	return b, err
}

// ListBookings returns every booking of the user, newest first.  An empty
// history is a successful empty list.
func (s *BookingService) ListBookings(ctx context.Context, userID string) ([]model.Booking, error) {
	return s.store.ListBookingsForUser(ctx, userID)
}
