package service

import (
	"context"
	"errors"

	"cineman/internal/domain"
	"cineman/internal/model"
	"cineman/internal/repository"
)

// MovieStore is the catalog read surface.  *repository.MovieRepo together
// with *repository.ShowtimeRepo (via CatalogStore) satisfies it.
type MovieStore interface {
	Search(ctx context.Context, q repository.MovieQuery) ([]model.Movie, int64, error)
	GetByID(ctx context.Context, id string) (*model.Movie, error)
}

// ShowtimeStore lists the bookable screenings of a movie.
type ShowtimeStore interface {
	ListForMovie(ctx context.Context, movieID string) ([]model.Showtime, error)
}

type MovieService struct {
	movies    MovieStore
	showtimes ShowtimeStore
}

func NewMovieService(movies MovieStore, showtimes ShowtimeStore) *MovieService {
	return &MovieService{movies: movies, showtimes: showtimes}
}

// QueryParameters enumerates the filter and sort vocabularies the search
// endpoint accepts, so clients can build pickers without hardcoding them.
type QueryParameters struct {
	Genres    []model.Genre
	Formats   []model.Format
	Languages []model.Language
	SortKeys  []model.SortBy
}

func (s *MovieService) QueryParameters() QueryParameters {
	return QueryParameters{
		Genres:    model.Genres,
		Formats:   model.Formats,
		Languages: model.Languages,
		SortKeys:  model.SortKeys,
	}
}

// Search returns one catalog page plus the total match count.
func (s *MovieService) Search(ctx context.Context, q repository.MovieQuery) ([]model.Movie, int64, error) {
	return s.movies.Search(ctx, q)
}

// GetMovie returns a catalog entry together with its bookable showtimes.
func (s *MovieService) GetMovie(ctx context.Context, id string) (*model.Movie, []model.Showtime, error) {
	m, err := s.movies.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, domain.ErrMovieNotFound
		}
		return nil, nil, err
	}
	shows, err := s.showtimes.ListForMovie(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return m, shows, nil
}
