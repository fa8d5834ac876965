package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"cineman/internal/domain"
	"cineman/internal/model"
	"cineman/internal/repository"
	"cineman/internal/service"
)

// MovieHandler exposes the catalog endpoints.
type MovieHandler struct {
	movies *service.MovieService
}

func NewMovieHandler(movies *service.MovieService) *MovieHandler {
	return &MovieHandler{movies: movies}
}

// QueryParameters lists the vocabularies the search endpoint accepts.
func (h *MovieHandler) QueryParameters(c echo.Context) error {
	p := h.movies.QueryParameters()
	return respond(c, http.StatusOK, echo.Map{
		"genres":    p.Genres,
		"formats":   p.Formats,
		"languages": p.Languages,
		"sort_keys": p.SortKeys,
	})
}

type searchMoviesRequest struct {
	Title    string `json:"title"`
	Genre    string `json:"genre"`
	Format   string `json:"format"`
	Language string `json:"language"`
	SortBy   string `json:"sort_by"`
	Order    string `json:"order"`
}

type movieResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Rating      string  `json:"rating"`
	PosterURL   *string `json:"poster_url"`
	RunningTime int     `json:"running_time"`
	ReleaseDate string  `json:"release_date"`
	Genre       string  `json:"genre"`
	Format      string  `json:"format"`
	Language    string  `json:"language"`
	IsFeatured  bool    `json:"is_featured"`
}

func toMovieResponse(m *model.Movie) movieResponse {
	return movieResponse{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Rating:      m.Rating,
		PosterURL:   m.PosterURL,
		RunningTime: m.RunningTime,
		ReleaseDate: m.ReleaseDate.Format("2006-01-02"),
		Genre:       string(m.Genre),
		Format:      string(m.Format),
		Language:    string(m.Language),
		IsFeatured:  m.IsFeatured,
	}
}

// Search filters, sorts and paginates the catalog.  Page and per_page
// arrive as query parameters; the filters in the body.
func (h *MovieHandler) Search(c echo.Context) error {
	var req searchMoviesRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, domain.ErrBadRequest)
	}
	page, _ := strconv.Atoi(c.QueryParam("page"))
	perPage, _ := strconv.Atoi(c.QueryParam("per_page"))

	q := repository.MovieQuery{
		Title:    req.Title,
		Genre:    model.Genre(req.Genre),
		Format:   model.Format(req.Format),
		Language: model.Language(req.Language),
		Order:    model.SortOrder(req.Order),
		Page:     page,
		PageSize: perPage,
	}
	if req.SortBy != "" {
		sb, err := model.ParseSortBy(req.SortBy)
		if err == nil {
			q.SortBy = sb
		}
	}

	ctx, cancel := reqCtx(c)
	defer cancel()
	movies, total, err := h.movies.Search(ctx, q)
	if err != nil {
		return fail(c, err)
	}

	out := make([]movieResponse, 0, len(movies))
	for i := range movies {
		out = append(out, toMovieResponse(&movies[i]))
	}
	return respond(c, http.StatusOK, echo.Map{
		"movies": out,
		"total":  total,
	})
}

// slotSeats serializes a seat map in canonical day order (morning first)
// instead of Go's alphabetical map ordering.
type slotSeats map[model.TimeSlot]int

func (s slotSeats) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	for _, slot := range model.TimeSlots {
		n, ok := s[slot]
		if !ok {
			continue
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false
		key, _ := json.Marshal(string(slot))
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteString(strconv.Itoa(n))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

type showtimeResponse struct {
	ID           string    `json:"id"`
	ShowDate     string    `json:"show_date"`
	TheatreName  string    `json:"theatre_name"`
	SeatsPerSlot slotSeats `json:"seats_per_slot"`
	PricePerSeat int       `json:"price_per_seat"`
}

// GetByID returns one movie together with its bookable showtimes.
func (h *MovieHandler) GetByID(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	m, shows, err := h.movies.GetMovie(ctx, c.Param("id"))
	if err != nil {
		return fail(c, err)
	}

	out := make([]showtimeResponse, 0, len(shows))
	for _, s := range shows {
		out = append(out, showtimeResponse{
			ID:           s.ID,
			ShowDate:     s.ShowDate.Format("2006-01-02"),
			TheatreName:  s.TheatreName,
			SeatsPerSlot: slotSeats(s.SeatsPerSlot),
			PricePerSeat: s.PricePerSeat,
		})
	}
	return respond(c, http.StatusOK, echo.Map{
		"movie":     toMovieResponse(m),
		"showtimes": out,
	})
}
