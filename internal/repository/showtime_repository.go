package repository

import (
	"context"
	"database/sql"
	"errors"

	"cineman/internal/model"
)

type ShowtimeRepo struct{ DB *sql.DB }

func NewShowtimeRepo(db *sql.DB) *ShowtimeRepo { return &ShowtimeRepo{DB: db} }

// GetByID loads a showtime together with its slot inventory.
func (r *ShowtimeRepo) GetByID(ctx context.Context, id string) (*model.Showtime, error) {
	var s model.Showtime
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,movie_id,show_date,theatre_name,price_per_seat FROM showtimes WHERE id=? LIMIT 1",
		id).Scan(&s.ID, &s.MovieID, &s.ShowDate, &s.TheatreName, &s.PricePerSeat)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if s.SeatsPerSlot, err = r.slots(ctx, s.ID); err != nil {
		return nil, err
	}
	return &s, nil
}

// ListForMovie returns every showtime of one movie, inventory included.
func (r *ShowtimeRepo) ListForMovie(ctx context.Context, movieID string) ([]model.Showtime, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,movie_id,show_date,theatre_name,price_per_seat FROM showtimes WHERE movie_id=? ORDER BY show_date ASC",
		movieID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Showtime{}
	for rows.Next() {
		var s model.Showtime
		if err := rows.Scan(&s.ID, &s.MovieID, &s.ShowDate, &s.TheatreName, &s.PricePerSeat); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range out {
		if out[i].SeatsPerSlot, err = r.slots(ctx, out[i].ID); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *ShowtimeRepo) slots(ctx context.Context, showtimeID string) (map[model.TimeSlot]int, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT time_slot,seats_left FROM showtime_slots WHERE showtime_id=?", showtimeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seats := map[model.TimeSlot]int{}
	for rows.Next() {
		var slot model.TimeSlot
		var left int
		if err := rows.Scan(&slot, &left); err != nil {
			return nil, err
		}
		seats[slot] = left
	}
	return seats, rows.Err()
}

// TakeSeatsTx decrements a slot's remaining seats inside the caller's
// transaction.  The slot row is locked first so concurrent bookings
// serialize on it; the decrement itself re-checks the count so the seat
// total can never go negative.
func (r *ShowtimeRepo) TakeSeatsTx(ctx context.Context, tx *sql.Tx, showtimeID string, slot model.TimeSlot, seats int) error {
	var left int
	err := tx.QueryRowContext(ctx,
		"SELECT seats_left FROM showtime_slots WHERE showtime_id=? AND time_slot=? FOR UPDATE",
		showtimeID, string(slot)).Scan(&left)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrSlotMissing
	}
	if err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx,
		"UPDATE showtime_slots SET seats_left = seats_left - ? WHERE showtime_id=? AND time_slot=? AND seats_left >= ?",
		seats, showtimeID, string(slot), seats)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrInsufficientSeats
	}
	return nil
}

// RestoreSeatsTx returns seats to a slot inside the caller's transaction.
// A missing inventory row is reported as ErrSlotMissing so the caller can
// roll back and surface a typed failure instead of silently dropping seats.
func (r *ShowtimeRepo) RestoreSeatsTx(ctx context.Context, tx *sql.Tx, show model.ScheduledShow, slot model.TimeSlot, seats int) error {
	res, err := tx.ExecContext(ctx,
		`UPDATE showtime_slots sl
		 JOIN showtimes st ON st.id = sl.showtime_id
		 SET sl.seats_left = sl.seats_left + ?
		 WHERE st.movie_id=? AND st.show_date=? AND st.theatre_name=? AND sl.time_slot=?`,
		seats, show.MovieID, show.ShowDate, show.TheatreName, string(slot))
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrSlotMissing
	}
	return nil
}
