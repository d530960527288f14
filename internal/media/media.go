package media

import (
	"errors"
	"strings"
)

// Kind distinguishes a single work from an episodic one.
type Kind string

const (
	KindMovie Kind = "movie"
	KindShow  Kind = "show"
)

// ErrInvalidKind is returned when a kind is neither movie nor show.
var ErrInvalidKind = errors.New("invalid media type: must be 'movie' or 'show'")

// ParseKind normalizes a kind string. The upstream catalog spells shows as
// "tv", which is accepted as an alias.
func ParseKind(raw string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "movie":
		return KindMovie, nil
	case "show", "tv":
		return KindShow, nil
	default:
		return "", ErrInvalidKind
	}
}

// Valid reports whether k is one of the supported kinds.
func (k Kind) Valid() bool {
	return k == KindMovie || k == KindShow
}

// Ref is the identity pair stored in a collection.
type Ref struct {
	ID   string `json:"id"`
	Kind Kind   `json:"media_type"`
}

// Key returns a stable identifier combining kind and id.
func (r Ref) Key() string {
	return string(r.Kind) + ":" + r.ID
}

// List names one of the two per-user collections.
type List string

const (
	Favorites List = "favorites"
	Watchlist List = "watchlist"
)

// ErrInvalidList is returned for collection names other than favorites and watchlist.
var ErrInvalidList = errors.New("invalid collection: must be 'favorites' or 'watchlist'")

// ParseList validates a collection name.
func ParseList(raw string) (List, error) {
	switch List(strings.ToLower(strings.TrimSpace(raw))) {
	case Favorites:
		return Favorites, nil
	case Watchlist:
		return Watchlist, nil
	default:
		return "", ErrInvalidList
	}
}

// Collections is the per-owner record holding both lists.
type Collections struct {
	OwnerID   string `json:"owner_id"`
	Favorites []Ref  `json:"favorites"`
	Watchlist []Ref  `json:"watchlist"`
}

// Empty returns a record with no members for the given owner.
func Empty(ownerID string) Collections {
	return Collections{OwnerID: ownerID, Favorites: []Ref{}, Watchlist: []Ref{}}
}

// Members returns the refs of one list.
func (c Collections) Members(list List) []Ref {
	if list == Watchlist {
		return c.Watchlist
	}
	return c.Favorites
}
