package notify

import (
	"context"
	"time"

	"cineman/internal/model"
	"cineman/internal/queue"
)

// userEmails resolves a user id to the address notifications go to.
// *repository.UserRepo satisfies it.
type userEmails interface {
	GetByID(ctx context.Context, id string) (*model.User, error)
}

// eventPublisher is the broker side of booking notifications.
// *queue.Publisher satisfies it.
type eventPublisher interface {
	Publish(ctx context.Context, queueName string, event queue.BookingEvent) error
}

// BookingNotifier fans a booking state change out to email and the message
// broker.  Both legs are attempted; the first failure is returned so the
// caller can log it, but one leg failing does not stop the other.
type BookingNotifier struct {
	users     userEmails
	mailer    *Mailer
	publisher eventPublisher
}

func NewBookingNotifier(users userEmails, mailer *Mailer, publisher eventPublisher) *BookingNotifier {
	return &BookingNotifier{users: users, mailer: mailer, publisher: publisher}
}

func (n *BookingNotifier) BookingConfirmed(ctx context.Context, b *model.Booking) error {
	return n.notify(ctx, queue.ConfirmedQueue, b)
}

func (n *BookingNotifier) BookingCancelled(ctx context.Context, b *model.Booking) error {
	return n.notify(ctx, queue.CancelledQueue, b)
}

func (n *BookingNotifier) notify(ctx context.Context, queueName string, b *model.Booking) error {
	var firstErr error

	u, err := n.users.GetByID(ctx, b.UserID)
	if err != nil {
		firstErr = err
	} else if err := n.mailer.SendBookingUpdate(u.ContactEmail(), b); err != nil {
		firstErr = err
	}

	ev := queue.BookingEvent{
		BookingID:   b.ID,
		UserID:      b.UserID,
		MovieID:     b.MovieID,
		ShowDate:    b.ShowDate.Format("2006-01-02"),
		TheatreName: b.TheatreName,
		TimeSlot:    string(b.TimeSlot),
		BookedSeats: b.BookedSeats,
		TotalAmount: b.TotalAmount,
		Status:      string(b.Status),
		OccurredAt:  time.Now().UTC().Format(time.RFC3339),
	}
	if err := n.publisher.Publish(ctx, queueName, ev); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}
