package httpapi

import (
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"reelshelf/internal/media"
)

const maxBodyBytes = 1 << 20

type collectionsResponse struct {
	Favorites []media.Ref `json:"favorites"`
	Watchlist []media.Ref `json:"watchlist"`
}

// handleGetCollections handles GET /api/user/{ownerId}
func (s *Server) handleGetCollections(w http.ResponseWriter, r *http.Request) {
	result, err := s.collections.Get(r.Context(), mux.Vars(r)["ownerId"])
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, collectionsResponse{
		Favorites: result.Favorites,
		Watchlist: result.Watchlist,
	})
}

// handleAddMember handles POST /api/user/{ownerId}/{list}
func (s *Server) handleAddMember(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	list, err := media.ParseList(vars["list"])
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.writeError(w, r, fmt.Errorf("%w: %v", errInvalidBody, err))
		return
	}
	payload, err := decodeValidated(addMemberSchema, body)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	kind, err := media.ParseKind(fmt.Sprint(payload["mediaType"]))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	ref := media.Ref{ID: itemID(payload["itemId"]), Kind: kind}

	refs, err := s.collections.Add(r.Context(), vars["ownerId"], list, ref)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":    "Item added to " + string(list),
		string(list): refs,
	})
}

// handleRemoveMember handles DELETE /api/user/{ownerId}/{list}?mediaId=&mediaType=
func (s *Server) handleRemoveMember(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	list, err := media.ParseList(vars["list"])
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	query := r.URL.Query()
	id := strings.TrimSpace(query.Get("mediaId"))
	rawKind := strings.TrimSpace(query.Get("mediaType"))
	if id == "" || rawKind == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "mediaId and mediaType are required query parameters"})
		return
	}
	kind, err := media.ParseKind(rawKind)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	refs, err := s.collections.Remove(r.Context(), vars["ownerId"], list, media.Ref{ID: id, Kind: kind})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":    "Item removed from " + string(list),
		string(list): refs,
	})
}

// itemID renders a schema-validated itemId, which is either a string or an
// integral number, in its canonical string form. 42, 42.0 and 4.2e1 all
// become "42".
func itemID(v any) string {
	switch id := v.(type) {
	case string:
		return strings.TrimSpace(id)
	case json.Number:
		if n, ok := new(big.Rat).SetString(id.String()); ok && n.IsInt() {
			return n.Num().String()
		}
		return id.String()
	default:
		return ""
	}
}
