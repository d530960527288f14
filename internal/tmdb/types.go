package tmdb

// TMDB API response structures. Optional values are pointers so that a
// missing or null field can be told apart from a zero value.

type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Company struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Movie is the payload of /movie/{id}.
type Movie struct {
	ID                  int64     `json:"id"`
	Title               string    `json:"title"`
	PosterPath          *string   `json:"poster_path"`
	ReleaseDate         *string   `json:"release_date"`
	VoteAverage         *float64  `json:"vote_average"`
	Runtime             *int      `json:"runtime"`
	Overview            *string   `json:"overview"`
	Genres              []Genre   `json:"genres"`
	ProductionCompanies []Company `json:"production_companies"`
	Status              *string   `json:"status"`
}

// Show is the payload of /tv/{id}.
type Show struct {
	ID                  int64     `json:"id"`
	Name                string    `json:"name"`
	PosterPath          *string   `json:"poster_path"`
	FirstAirDate        *string   `json:"first_air_date"`
	VoteAverage         *float64  `json:"vote_average"`
	EpisodeRunTime      []int     `json:"episode_run_time"`
	NumberOfEpisodes    *int      `json:"number_of_episodes"`
	Overview            *string   `json:"overview"`
	Genres              []Genre   `json:"genres"`
	Networks            []Company `json:"networks"`
	ProductionCompanies []Company `json:"production_companies"`
	Status              *string   `json:"status"`
}

// ListResult is one entry of a trending or multi-search listing. Movies carry
// title/release_date, shows carry name/first_air_date.
type ListResult struct {
	ID           int64    `json:"id"`
	MediaType    string   `json:"media_type"`
	Title        string   `json:"title"`
	Name         string   `json:"name"`
	PosterPath   *string  `json:"poster_path"`
	ReleaseDate  *string  `json:"release_date"`
	FirstAirDate *string  `json:"first_air_date"`
	VoteAverage  *float64 `json:"vote_average"`
	Overview     *string  `json:"overview"`
	GenreIDs     []int    `json:"genre_ids"`
}

// ListPage is the paginated envelope of listing endpoints.
type ListPage struct {
	Page       int          `json:"page"`
	TotalPages int          `json:"total_pages"`
	Results    []ListResult `json:"results"`
}
