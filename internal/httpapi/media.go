package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"reelshelf/internal/media"
)

// handleGetItem handles GET /api/media/{kind}/{id}
func (s *Server) handleGetItem(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	kind, err := media.ParseKind(vars["kind"])
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	item, err := s.catalog.FetchItem(r.Context(), kind, vars["id"])
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// handleBrowse handles GET /api/media/browse?query=&page=
func (s *Server) handleBrowse(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	page := 1
	if raw := query.Get("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "page must be a positive integer"})
			return
		}
		page = parsed
	}

	result, err := s.catalog.Browse(r.Context(), query.Get("query"), page)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
