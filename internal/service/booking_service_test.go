package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"cineman/internal/domain"
	"cineman/internal/model"
	"cineman/internal/repository"
)

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) BookingConfirmed(ctx context.Context, b *model.Booking) error {
	return m.Called(ctx, b).Error(0)
}
func (m *mockNotifier) BookingCancelled(ctx context.Context, b *model.Booking) error {
	return m.Called(ctx, b).Error(0)
}

// memStore mimics the transactional store in memory: the seat decrement is
// re-checked under a lock and a cancellation leaves the booking untouched
// when the inventory row is gone.
type memStore struct {
	mu        sync.Mutex
	showtimes map[string]*model.Showtime
	bookings  map[string]*model.Booking
}

func newMemStore() *memStore {
	return &memStore{
		showtimes: map[string]*model.Showtime{},
		bookings:  map[string]*model.Booking{},
	}
}

func (s *memStore) GetShowtime(_ context.Context, id string) (*model.Showtime, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.showtimes[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *st
	cp.SeatsPerSlot = map[model.TimeSlot]int{}
	for k, v := range st.SeatsPerSlot {
		cp.SeatsPerSlot[k] = v
	}
	return &cp, nil
}

func (s *memStore) CreateBooking(_ context.Context, showtimeID string, b *model.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.showtimes[showtimeID]
	if !ok {
		return repository.ErrSlotMissing
	}
	left, ok := st.SeatsPerSlot[b.TimeSlot]
	if !ok {
		return repository.ErrSlotMissing
	}
	if left < b.BookedSeats {
		return repository.ErrInsufficientSeats
	}
	st.SeatsPerSlot[b.TimeSlot] = left - b.BookedSeats
	cp := *b
	s.bookings[b.ID] = &cp
	return nil
}

func (s *memStore) GetBookingForUser(_ context.Context, userID, id string) (*model.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok || b.UserID != userID {
		return nil, repository.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (s *memStore) ListBookingsForUser(_ context.Context, userID string) ([]model.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []model.Booking{}
	for _, b := range s.bookings {
		if b.UserID == userID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (s *memStore) CancelBooking(_ context.Context, b *model.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.bookings[b.ID]
	if !ok || stored.UserID != b.UserID {
		return repository.ErrNotFound
	}
	if stored.Status == model.StatusCancelled {
		return repository.ErrAlreadyCancelled
	}
	var slot *model.Showtime
	for _, st := range s.showtimes {
		if st.MovieID == b.MovieID && st.ShowDate.Equal(b.ShowDate) && st.TheatreName == b.TheatreName {
			slot = st
			break
		}
	}
	if slot == nil {
		return repository.ErrSlotMissing
	}
	if _, ok := slot.SeatsPerSlot[b.TimeSlot]; !ok {
		return repository.ErrSlotMissing
	}
	stored.Status = model.StatusCancelled
	slot.SeatsPerSlot[b.TimeSlot] += b.BookedSeats
	return nil
}

var testDay = time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)

func newTestBookingService(store BookingStore, n BookingNotifier) *BookingService {
	logger := zerolog.Nop()
	svc := NewBookingService(store, n, &logger)
	svc.now = func() time.Time { return testDay }
	return svc
}

func seedShowtime(store *memStore) *model.Showtime {
	st := &model.Showtime{
		ID: "show-1",
		ScheduledShow: model.ScheduledShow{
			MovieID:     "movie-1",
			ShowDate:    time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC),
			TheatreName: "Grand Central",
		},
		SeatsPerSlot: map[model.TimeSlot]int{
			model.SlotMorning:   10,
			model.SlotAfternoon: 5,
		},
		PricePerSeat: 50,
	}
	store.showtimes[st.ID] = st
	return st
}

func TestCreateBookingDrainsSlotExactly(t *testing.T) {
	store := newMemStore()
	seedShowtime(store)
	notifier := &mockNotifier{}
	notifier.On("BookingConfirmed", mock.Anything, mock.Anything).Return(nil)
	svc := newTestBookingService(store, notifier)

	b, err := svc.CreateBooking(context.Background(), "user-1", "show-1", model.SlotAfternoon, 5)
	require.NoError(t, err)
	assert.Equal(t, 250, b.TotalAmount)
	assert.Equal(t, model.StatusBooked, b.Status)
	assert.Equal(t, 0, store.showtimes["show-1"].SeatsPerSlot[model.SlotAfternoon])
	assert.Equal(t, 10, store.showtimes["show-1"].SeatsPerSlot[model.SlotMorning])

	// Second attempt on the drained slot fails and leaves it at zero.
	_, err = svc.CreateBooking(context.Background(), "user-1", "show-1", model.SlotAfternoon, 1)
	assert.ErrorIs(t, err, domain.ErrSeatsNotAvailable)
	assert.Equal(t, 0, store.showtimes["show-1"].SeatsPerSlot[model.SlotAfternoon])
	assert.Len(t, store.bookings, 1)
}

func TestCreateBookingValidation(t *testing.T) {
	store := newMemStore()
	st := seedShowtime(store)
	notifier := &mockNotifier{}
	svc := newTestBookingService(store, notifier)
	ctx := context.Background()

	_, err := svc.CreateBooking(ctx, "user-1", "show-1", model.SlotMorning, 0)
	assert.ErrorIs(t, err, domain.ErrSeatCountInvalid)

	_, err = svc.CreateBooking(ctx, "user-1", "missing", model.SlotMorning, 1)
	assert.ErrorIs(t, err, domain.ErrShowNotAvailable)

	_, err = svc.CreateBooking(ctx, "user-1", "show-1", model.SlotEvening, 1)
	assert.ErrorIs(t, err, domain.ErrTimeSlotNotAvailable)

	_, err = svc.CreateBooking(ctx, "user-1", "show-1", model.SlotMorning, 11)
	assert.ErrorIs(t, err, domain.ErrSeatsNotAvailable)

	// Same-day and past shows are not bookable; validation must run before
	// any seats move.
	st.ShowDate = time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
	_, err = svc.CreateBooking(ctx, "user-1", "show-1", model.SlotMorning, 1)
	assert.ErrorIs(t, err, domain.ErrShowDateInPast)
	assert.Equal(t, 10, st.SeatsPerSlot[model.SlotMorning])
	assert.Empty(t, store.bookings)
	notifier.AssertNotCalled(t, "BookingConfirmed", mock.Anything, mock.Anything)
}

func TestCreateBookingSurvivesNotifierFailure(t *testing.T) {
	store := newMemStore()
	seedShowtime(store)
	notifier := &mockNotifier{}
	notifier.On("BookingConfirmed", mock.Anything, mock.Anything).Return(errors.New("smtp down"))
	svc := newTestBookingService(store, notifier)

	b, err := svc.CreateBooking(context.Background(), "user-1", "show-1", model.SlotMorning, 2)
	require.NoError(t, err)
	assert.Equal(t, 8, store.showtimes["show-1"].SeatsPerSlot[model.SlotMorning])
	assert.Equal(t, 100, b.TotalAmount)
	notifier.AssertExpectations(t)
}

func TestCancelBookingRestoresSeats(t *testing.T) {
	store := newMemStore()
	seedShowtime(store)
	notifier := &mockNotifier{}
	notifier.On("BookingConfirmed", mock.Anything, mock.Anything).Return(nil)
	notifier.On("BookingCancelled", mock.Anything, mock.Anything).Return(nil)
	svc := newTestBookingService(store, notifier)
	ctx := context.Background()

	b, err := svc.CreateBooking(ctx, "user-1", "show-1", model.SlotMorning, 4)
	require.NoError(t, err)
	require.Equal(t, 6, store.showtimes["show-1"].SeatsPerSlot[model.SlotMorning])

	require.NoError(t, svc.CancelBooking(ctx, "user-1", b.ID))
	assert.Equal(t, 10, store.showtimes["show-1"].SeatsPerSlot[model.SlotMorning])
	assert.Equal(t, model.StatusCancelled, store.bookings[b.ID].Status)

	// Cancelling again must not restore seats twice.
	err = svc.CancelBooking(ctx, "user-1", b.ID)
	assert.ErrorIs(t, err, domain.ErrAlreadyCancelled)
	assert.Equal(t, 10, store.showtimes["show-1"].SeatsPerSlot[model.SlotMorning])
}

func TestCancelBookingGuards(t *testing.T) {
	store := newMemStore()
	seedShowtime(store)
	notifier := &mockNotifier{}
	notifier.On("BookingConfirmed", mock.Anything, mock.Anything).Return(nil)
	svc := newTestBookingService(store, notifier)
	ctx := context.Background()

	b, err := svc.CreateBooking(ctx, "user-1", "show-1", model.SlotMorning, 1)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.CancelBooking(ctx, "user-1", "nope"), domain.ErrBookingNotFound)
	// Another user's booking looks like a missing one.
	assert.ErrorIs(t, svc.CancelBooking(ctx, "user-2", b.ID), domain.ErrBookingNotFound)

	// Once the show day has passed the booking can no longer be cancelled.
	store.bookings[b.ID].ShowDate = time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	assert.ErrorIs(t, svc.CancelBooking(ctx, "user-1", b.ID), domain.ErrCancellingPastShow)
}

func TestCancelBookingMissingInventory(t *testing.T) {
	store := newMemStore()
	seedShowtime(store)
	notifier := &mockNotifier{}
	notifier.On("BookingConfirmed", mock.Anything, mock.Anything).Return(nil)
	svc := newTestBookingService(store, notifier)
	ctx := context.Background()

	b, err := svc.CreateBooking(ctx, "user-1", "show-1", model.SlotMorning, 2)
	require.NoError(t, err)

	// The inventory row disappears between booking and cancellation.
	delete(store.showtimes["show-1"].SeatsPerSlot, model.SlotMorning)
	err = svc.CancelBooking(ctx, "user-1", b.ID)
	assert.ErrorIs(t, err, domain.ErrShowNotAvailable)
	// No state change: the booking is still cancellable once inventory is restored.
	assert.Equal(t, model.StatusBooked, store.bookings[b.ID].Status)
}

func TestListBookingsEmptyHistory(t *testing.T) {
	store := newMemStore()
	notifier := &mockNotifier{}
	svc := newTestBookingService(store, notifier)

	got, err := svc.ListBookings(context.Background(), "user-1")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestGetBookingScopedToOwner(t *testing.T) {
	store := newMemStore()
	seedShowtime(store)
	notifier := &mockNotifier{}
	notifier.On("BookingConfirmed", mock.Anything, mock.Anything).Return(nil)
	svc := newTestBookingService(store, notifier)
	ctx := context.Background()

	b, err := svc.CreateBooking(ctx, "user-1", "show-1", model.SlotMorning, 1)
	require.NoError(t, err)

	got, err := svc.GetBooking(ctx, "user-1", b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)

	_, err = svc.GetBooking(ctx, "user-2", b.ID)
	assert.ErrorIs(t, err, domain.ErrBookingNotFound)
}
