package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"cineman/internal/model"
)

type MovieRepo struct{ DB *sql.DB }

func NewMovieRepo(db *sql.DB) *MovieRepo { return &MovieRepo{DB: db} }

// MovieQuery defines filters, ordering and pagination for catalog search.
// Zero-valued filters are skipped.
type MovieQuery struct {
	Title    string
	Genre    model.Genre
	Format   model.Format
	Language model.Language
	SortBy   model.SortBy
	Order    model.SortOrder
	Page     int
	PageSize int
}

const movieColumns = "id,name,description,rating,poster_url,running_time,release_date,genre,format,language,is_featured"

// sortColumns whitelists ORDER BY targets; anything else falls back to name.
var sortColumns = map[model.SortBy]string{
	model.SortByTitle:       "name",
	model.SortByRating:      "rating",
	model.SortByReleaseDate: "release_date",
	model.SortByDuration:    "running_time",
}

// Search returns one page of catalog entries plus the total match count.
func (r *MovieRepo) Search(ctx context.Context, q MovieQuery) ([]model.Movie, int64, error) {
	where := []string{}
	args := []any{}

	if q.Title != "" {
		where = append(where, "LOWER(name) LIKE ?")
		args = append(args, "%"+strings.ToLower(q.Title)+"%")
	}
	if q.Genre != "" {
		where = append(where, "genre = ?")
		args = append(args, string(q.Genre))
	}
	if q.Format != "" {
		where = append(where, "format = ?")
		args = append(args, string(q.Format))
	}
	if q.Language != "" {
		where = append(where, "language = ?")
		args = append(args, string(q.Language))
	}

	cond := "1=1"
	if len(where) > 0 {
		cond = strings.Join(where, " AND ")
	}

	var total int64
	if err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM movies WHERE "+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	col, ok := sortColumns[q.SortBy]
	if !ok {
		col = "name"
	}
	dir := "ASC"
	if q.Order == model.SortDescending {
		dir = "DESC"
	}

	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = 20
	}
	limit := q.PageSize
	offset := (q.Page - 1) * q.PageSize

	dataSQL := "SELECT " + movieColumns + " FROM movies WHERE " + cond +
		" ORDER BY " + col + " " + dir + " LIMIT ? OFFSET ?"
	argsData := append(append([]any{}, args...), limit, offset)

	rows, err := r.DB.QueryContext(ctx, dataSQL, argsData...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]model.Movie, 0, limit)
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// GetByID fetches a single catalog entry.
func (r *MovieRepo) GetByID(ctx context.Context, id string) (*model.Movie, error) {
	row := r.DB.QueryRowContext(ctx, "SELECT "+movieColumns+" FROM movies WHERE id=? LIMIT 1", id)
	m, err := scanMovie(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

type rowScanner interface{ Scan(dest ...any) error }

func scanMovie(row rowScanner) (*model.Movie, error) {
	var m model.Movie
	err := row.Scan(&m.ID, &m.Name, &m.Description, &m.Rating, &m.PosterURL,
		&m.RunningTime, &m.ReleaseDate, &m.Genre, &m.Format, &m.Language, &m.IsFeatured)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
