package media

// Item is the normalized catalog record. Pointer fields are nil when the
// upstream service did not report a value.
type Item struct {
	ID             string   `json:"id"`
	Kind           Kind     `json:"media_type"`
	Title          string   `json:"title"`
	PosterPath     *string  `json:"poster_path,omitempty"`
	ReleaseDate    *string  `json:"release_date,omitempty"`
	Score          *float64 `json:"score,omitempty"`
	RuntimeMinutes *int     `json:"runtime_minutes,omitempty"`
	EpisodeCount   *int     `json:"episode_count,omitempty"`
	Overview       *string  `json:"overview,omitempty"`
	Genres         []string `json:"genres"`
	Studios        []string `json:"studios"`
	Status         *string  `json:"status,omitempty"`
}

// Ref returns the identity pair of the item.
func (i Item) Ref() Ref {
	return Ref{ID: i.ID, Kind: i.Kind}
}

// Page is one upstream-driven page of catalog results.
type Page struct {
	Items      []Item `json:"results"`
	TotalPages int    `json:"total_pages"`
	Page       int    `json:"page"`
}
