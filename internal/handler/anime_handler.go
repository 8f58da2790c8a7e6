package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/23himanshusingh/AnimeGpt/internal/models"
)

// Catalog is implemented by *service.CatalogService.
type Catalog interface {
	Top(ctx context.Context, list string) ([]models.Anime, error)
	Details(ctx context.Context, id int) (*models.Anime, error)
	Related(ctx context.Context, id int) ([]models.Anime, error)
	Search(ctx context.Context, q string, limit int) ([]models.Anime, error)
}

type AnimeHandler struct {
	catalog Catalog
}

func NewAnimeHandler(c Catalog) *AnimeHandler {
	return &AnimeHandler{catalog: c}
}

type animeListResponse struct {
	Data []models.Anime `json:"data"`
}

// @Summary Catalog list
// @Tags anime
// @Produce json
// @Param list path string true "popular | airing | now | movies"
// @Success 200 {object} animeListResponse
// @Failure 400 {object} errorResponse
// @Failure 503 {object} errorResponse
// @Router /anime/top/{list} [get]
func (h *AnimeHandler) Top(w http.ResponseWriter, r *http.Request) {
	items, err := h.catalog.Top(r.Context(), chi.URLParam(r, "list"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, animeListResponse{Data: items})
}

// @Summary Search anime
// @Tags anime
// @Produce json
// @Param q query string true "title"
// @Param limit query int false "max results (25)"
// @Success 200 {object} animeListResponse
// @Router /anime/search [get]
func (h *AnimeHandler) Search(w http.ResponseWriter, r *http.Request) {
	items, err := h.catalog.Search(r.Context(), r.URL.Query().Get("q"), queryInt(r, "limit"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, animeListResponse{Data: items})
}

// @Summary Anime details
// @Tags anime
// @Produce json
// @Param id path int true "MyAnimeList id"
// @Success 200 {object} models.Anime
// @Failure 404 {object} errorResponse
// @Router /anime/{id} [get]
func (h *AnimeHandler) Details(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	a, err := h.catalog.Details(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// @Summary Community recommendations for an anime
// @Tags anime
// @Produce json
// @Param id path int true "MyAnimeList id"
// @Success 200 {object} animeListResponse
// @Router /anime/{id}/related [get]
func (h *AnimeHandler) Related(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	items, err := h.catalog.Related(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, animeListResponse{Data: items})
}
