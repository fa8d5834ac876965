package model

import (
	"fmt"
	"time"
)

// Genre classifies a movie.  Values are stored as plain strings in the
// `movies` table so the set can grow without a schema migration.
type Genre string

const (
	GenreAction      Genre = "ACTION"
	GenreAdventure   Genre = "ADVENTURE"
	GenreAnimation   Genre = "ANIMATION"
	GenreBiography   Genre = "BIOGRAPHY"
	GenreComedy      Genre = "COMEDY"
	GenreCrime       Genre = "CRIME"
	GenreDocumentary Genre = "DOCUMENTARY"
	GenreDrama       Genre = "DRAMA"
	GenreFamily      Genre = "FAMILY"
	GenreFantasy     Genre = "FANTASY"
	GenreFilmNoir    Genre = "FILMNOIR"
	GenreHistory     Genre = "HISTORY"
	GenreHorror      Genre = "HORROR"
	GenreMusic       Genre = "MUSIC"
	GenreMusical     Genre = "MUSICAL"
	GenreMystery     Genre = "MYSTERY"
	GenreRomance     Genre = "ROMANCE"
	GenreSciFi       Genre = "SCIFI"
	GenreShort       Genre = "SHORT"
	GenreSport       Genre = "SPORT"
	GenreSuperhero   Genre = "SUPERHERO"
	GenreThriller    Genre = "THRILLER"
	GenreWar         Genre = "WAR"
	GenreWestern     Genre = "WESTERN"
)

// Genres lists every known genre in a fixed order.
var Genres = []Genre{
	GenreAction, GenreAdventure, GenreAnimation, GenreBiography,
	GenreComedy, GenreCrime, GenreDocumentary, GenreDrama,
	GenreFamily, GenreFantasy, GenreFilmNoir, GenreHistory,
	GenreHorror, GenreMusic, GenreMusical, GenreMystery,
	GenreRomance, GenreSciFi, GenreShort, GenreSport,
	GenreSuperhero, GenreThriller, GenreWar, GenreWestern,
}

// Format is the projection format a movie is screened in.
type Format string

const (
	FormatTwoD   Format = "TWO_D"
	FormatThreeD Format = "THREE_D"
	FormatIMAX   Format = "IMAX"
	FormatFourDX Format = "FOUR_DX"
)

// Formats lists every known format in a fixed order.
var Formats = []Format{FormatTwoD, FormatThreeD, FormatIMAX, FormatFourDX}

// Language is the audio language of a movie.
type Language string

const (
	LanguageEnglish  Language = "ENGLISH"
	LanguageHindi    Language = "HINDI"
	LanguageSpanish  Language = "SPANISH"
	LanguageFrench   Language = "FRENCH"
	LanguageJapanese Language = "JAPANESE"
	LanguageKorean   Language = "KOREAN"
)

// Languages lists every known language in a fixed order.
var Languages = []Language{
	LanguageEnglish, LanguageHindi, LanguageSpanish,
	LanguageFrench, LanguageJapanese, LanguageKorean,
}

// SortBy names the catalog columns a movie query may be ordered by.
type SortBy string

const (
	SortByTitle       SortBy = "TITLE"
	SortByRating      SortBy = "RATING"
	SortByReleaseDate SortBy = "RELEASE_DATE"
	SortByDuration    SortBy = "DURATION"
)

// SortKeys lists every sortable column in a fixed order.
var SortKeys = []SortBy{SortByTitle, SortByRating, SortByReleaseDate, SortByDuration}

// SortOrder is the direction of a movie query ordering.
type SortOrder string

const (
	SortAscending  SortOrder = "ASCENDING"
	SortDescending SortOrder = "DESCENDING"
)

// ParseSortBy validates a sort key received from a client.
func ParseSortBy(s string) (SortBy, error) {
	for _, k := range SortKeys {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown sort key %q", s)
}

// Movie is a catalog entry as stored in the `movies` table.  Rating is
// kept as a string because upstream sources report it in mixed scales.
type Movie struct {
	ID          string    // movies.id
	Name        string    // movies.name
	Description string    // movies.description
	Rating      string    // movies.rating
	PosterURL   *string   // movies.poster_url (nullable)
	RunningTime int       // movies.running_time (minutes)
	ReleaseDate time.Time // movies.release_date (date only)
	Genre       Genre     // movies.genre
	Format      Format    // movies.format
	Language    Language  // movies.language
	IsFeatured  bool      // movies.is_featured
}
