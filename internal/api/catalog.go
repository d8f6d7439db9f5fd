package api

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/patrickwarner/oxclient/internal/oxapi"
)

// CatalogHandler handles GET /catalog/{kind}, listing the stored snapshots
// of one entity kind.
func (s *Server) CatalogHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	const endpoint = "catalog"
	const method = "GET"

	if s.Catalog == nil {
		http.Error(w, "catalog unavailable", http.StatusServiceUnavailable)
		s.observe(endpoint, method, http.StatusServiceUnavailable, start)
		return
	}

	kind, err := oxapi.ParseKind(mux.Vars(r)["kind"])
	if err != nil {
		http.Error(w, "unknown kind", http.StatusNotFound)
		s.observe(endpoint, method, http.StatusNotFound, start)
		return
	}

	snapshots, err := s.Catalog.LoadEntities(r.Context(), s.Endpoint, string(kind))
	if err != nil {
		s.Logger.Error("load catalog", zap.String("kind", string(kind)), zap.Error(err))
		http.Error(w, "db error", http.StatusInternalServerError)
		s.observe(endpoint, method, http.StatusInternalServerError, start)
		return
	}

	type entry struct {
		ID       int            `json:"id"`
		ParentID int            `json:"parent_id,omitempty"`
		Data     map[string]any `json:"data"`
		SyncedAt time.Time      `json:"synced_at"`
	}
	out := make([]entry, 0, len(snapshots))
	for _, e := range snapshots {
		out = append(out, entry{ID: e.ID, ParentID: e.ParentID, Data: e.Data, SyncedAt: e.SyncedAt})
	}
	s.writeJSON(w, http.StatusOK, out)
	s.observe(endpoint, method, http.StatusOK, start)
}
