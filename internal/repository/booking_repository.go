package repository

import (
	"context"
	"database/sql"
	"errors"

	"cineman/internal/model"
)

type BookingRepo struct{ DB *sql.DB }

func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{DB: db} }

const bookingColumns = "id,user_id,movie_id,show_date,theatre_name,time_slot,booked_seats,total_amount,status,order_date"

// CreateTx inserts a booking row inside the caller's transaction.
func (r *BookingRepo) CreateTx(ctx context.Context, tx *sql.Tx, b *model.Booking) error {
	_, err := tx.ExecContext(ctx,
		"INSERT INTO bookings ("+bookingColumns+") VALUES (?,?,?,?,?,?,?,?,?,?)",
		b.ID, b.UserID, b.MovieID, b.ShowDate, b.TheatreName, string(b.TimeSlot),
		b.BookedSeats, b.TotalAmount, string(b.Status), b.OrderDate)
	return err
}

// GetByIDForUser fetches a booking scoped to its owner.  Bookings of other
// users are indistinguishable from absent ones.
func (r *BookingRepo) GetByIDForUser(ctx context.Context, userID, id string) (*model.Booking, error) {
	var b model.Booking
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+bookingColumns+" FROM bookings WHERE id=? AND user_id=? LIMIT 1",
		id, userID).Scan(
		&b.ID, &b.UserID, &b.MovieID, &b.ShowDate, &b.TheatreName, &b.TimeSlot,
		&b.BookedSeats, &b.TotalAmount, &b.Status, &b.OrderDate)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// ListByUser returns all bookings of one user, newest first.  No bookings
// is an empty slice, not an error.
func (r *BookingRepo) ListByUser(ctx context.Context, userID string) ([]model.Booking, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+bookingColumns+" FROM bookings WHERE user_id=? ORDER BY order_date DESC",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Booking{}
	for rows.Next() {
		var b model.Booking
		if err := rows.Scan(
			&b.ID, &b.UserID, &b.MovieID, &b.ShowDate, &b.TheatreName, &b.TimeSlot,
			&b.BookedSeats, &b.TotalAmount, &b.Status, &b.OrderDate); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// MarkCancelledTx flips a booking to CANCELLED inside the caller's
// transaction.  The status guard makes double cancellation a no-op at the
// SQL level; zero affected rows means the booking was already cancelled.
func (r *BookingRepo) MarkCancelledTx(ctx context.Context, tx *sql.Tx, userID, id string) error {
	res, err := tx.ExecContext(ctx,
		"UPDATE bookings SET status=? WHERE id=? AND user_id=? AND status=?",
		string(model.StatusCancelled), id, userID, string(model.StatusBooked))
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrAlreadyCancelled
	}
	return nil
}
