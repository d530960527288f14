package catalog

import (
	"strconv"
	"strings"

	"reelshelf/internal/media"
	"reelshelf/internal/tmdb"
)

func movieItem(requestedID string, m *tmdb.Movie) media.Item {
	return media.Item{
		ID:             formatID(m.ID, requestedID),
		Kind:           media.KindMovie,
		Title:          m.Title,
		PosterPath:     optString(m.PosterPath),
		ReleaseDate:    optString(m.ReleaseDate),
		Score:          m.VoteAverage,
		RuntimeMinutes: m.Runtime,
		Overview:       optString(m.Overview),
		Genres:         genreNames(m.Genres),
		Studios:        companyNames(m.ProductionCompanies),
		Status:         optString(m.Status),
	}
}

func showItem(requestedID string, s *tmdb.Show) media.Item {
	item := media.Item{
		ID:           formatID(s.ID, requestedID),
		Kind:         media.KindShow,
		Title:        s.Name,
		PosterPath:   optString(s.PosterPath),
		ReleaseDate:  optString(s.FirstAirDate),
		Score:        s.VoteAverage,
		EpisodeCount: s.NumberOfEpisodes,
		Overview:     optString(s.Overview),
		Genres:       genreNames(s.Genres),
		Studios:      companyNames(s.Networks, s.ProductionCompanies),
		Status:       optString(s.Status),
	}
	if len(s.EpisodeRunTime) > 0 {
		runtime := s.EpisodeRunTime[0]
		item.RuntimeMinutes = &runtime
	}
	return item
}

// inferKind maps a listing entry onto a supported kind. Entries that name an
// unsupported type (people, collections) are rejected; entries that name no
// type are shows when they carry a first-air-date field and movies otherwise.
func inferKind(r tmdb.ListResult) (media.Kind, bool) {
	switch strings.ToLower(r.MediaType) {
	case "movie":
		return media.KindMovie, true
	case "tv":
		return media.KindShow, true
	case "":
		if r.FirstAirDate != nil {
			return media.KindShow, true
		}
		return media.KindMovie, true
	default:
		return "", false
	}
}

func listItem(r tmdb.ListResult, kind media.Kind) media.Item {
	item := media.Item{
		ID:         strconv.FormatInt(r.ID, 10),
		Kind:       kind,
		PosterPath: optString(r.PosterPath),
		Score:      r.VoteAverage,
		Overview:   optString(r.Overview),
		Genres:     genreNamesByID(r.GenreIDs),
		Studios:    []string{},
	}

	if kind == media.KindShow {
		item.Title = firstNonEmpty(r.Name, r.Title)
		item.ReleaseDate = optString(r.FirstAirDate)
	} else {
		item.Title = firstNonEmpty(r.Title, r.Name)
		item.ReleaseDate = optString(r.ReleaseDate)
	}
	return item
}

func listPage(lp *tmdb.ListPage) media.Page {
	page := media.Page{
		Items:      make([]media.Item, 0, len(lp.Results)),
		TotalPages: lp.TotalPages,
		Page:       lp.Page,
	}
	if page.TotalPages == 0 {
		page.TotalPages = 1
	}
	if page.Page == 0 {
		page.Page = 1
	}

	for _, r := range lp.Results {
		kind, ok := inferKind(r)
		if !ok {
			continue
		}
		page.Items = append(page.Items, listItem(r, kind))
	}
	return page
}

func optString(v *string) *string {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func formatID(id int64, fallback string) string {
	if id == 0 {
		return fallback
	}
	return strconv.FormatInt(id, 10)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func genreNames(genres []tmdb.Genre) []string {
	names := make([]string, 0, len(genres))
	for _, g := range genres {
		if g.Name != "" {
			names = append(names, g.Name)
		}
	}
	return names
}

func companyNames(groups ...[]tmdb.Company) []string {
	seen := make(map[string]struct{})
	names := []string{}
	for _, group := range groups {
		for _, c := range group {
			if c.Name == "" {
				continue
			}
			if _, dup := seen[c.Name]; dup {
				continue
			}
			seen[c.Name] = struct{}{}
			names = append(names, c.Name)
		}
	}
	return names
}
