package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/dmitrijs2005/lumen/internal/api"
	"github.com/dmitrijs2005/lumen/internal/server/achievements"
	"github.com/dmitrijs2005/lumen/internal/server/resources"
	"github.com/go-chi/chi/v5"
)

type handlers struct {
	store Pinger
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (h *handlers) liveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handlers) readiness(w http.ResponseWriter, r *http.Request) {
	if h.store != nil {
		if err := h.store.Ping(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (h *handlers) listAchievements(w http.ResponseWriter, r *http.Request) {
	catalog := achievements.Catalog()
	out := make([]api.Achievement, 0, len(catalog))
	for _, a := range catalog {
		out = append(out, api.Achievement{ID: a.ID, Name: a.Name, Description: a.Description})
	}
	writeJSON(w, http.StatusOK, api.ListAchievementsResponse{Achievements: out})
}

func toResource(r resources.Resource) api.Resource {
	return api.Resource{
		ID:             r.ID,
		Title:          r.Title,
		Description:    r.Description,
		Type:           r.Type,
		Category:       r.Category,
		EducationLevel: r.EducationLevel,
		URL:            r.URL,
	}
}

// listResources accepts the optional query parameters q, category and level.
func (h *handlers) listResources(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	found := resources.Filter(q.Get("q"), q.Get("category"), q.Get("level"))

	out := make([]api.Resource, 0, len(found))
	for _, res := range found {
		out = append(out, toResource(res))
	}
	writeJSON(w, http.StatusOK, api.ListResourcesResponse{Resources: out})
}

func (h *handlers) getResource(w http.ResponseWriter, r *http.Request) {
	res, ok := resources.Find(chi.URLParam(r, "id"))
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "resource not found"})
		return
	}
	writeJSON(w, http.StatusOK, toResource(res))
}
