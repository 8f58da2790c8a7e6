package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/23himanshusingh/AnimeGpt/internal/models"
)

// Watchlists is implemented by *service.WatchlistService.
type Watchlists interface {
	Get(ctx context.Context, userID string) ([]models.WatchlistEntry, error)
	Add(ctx context.Context, userID string, entry models.WatchlistEntry) ([]models.WatchlistEntry, error)
	Update(ctx context.Context, userID string, malID int, upd models.WatchlistUpdate) (*models.WatchlistEntry, error)
	Remove(ctx context.Context, userID string, malID int) ([]models.WatchlistEntry, error)
}

type WatchlistHandler struct {
	svc Watchlists
}

func NewWatchlistHandler(s Watchlists) *WatchlistHandler {
	return &WatchlistHandler{svc: s}
}

type watchlistResponse struct {
	Anime []models.WatchlistEntry `json:"anime"`
}

type addEntryRequest struct {
	ID         int                `json:"mal_id" validate:"required,gt=0"`
	Title      string             `json:"title" validate:"required"`
	Genres     []string           `json:"genres"`
	Type       string             `json:"type"`
	Score      float64            `json:"score" validate:"gte=0,lte=10"`
	Year       int                `json:"year"`
	Studios    []string           `json:"studios"`
	Image      string             `json:"image"`
	Episodes   int                `json:"episodes"`
	Status     models.WatchStatus `json:"status" validate:"omitempty,oneof='Watching' 'Completed' 'On-Hold' 'Dropped' 'Plan to Watch'"`
	UserRating int                `json:"userRating" validate:"gte=0,lte=10"`
}

type updateEntryRequest struct {
	Status     *models.WatchStatus `json:"status" validate:"omitempty,oneof='Watching' 'Completed' 'On-Hold' 'Dropped' 'Plan to Watch'"`
	UserRating *int                `json:"userRating" validate:"omitempty,gte=0,lte=10"`
}

// @Summary Get watchlist
// @Tags watchlist
// @Security BearerAuth
// @Produce json
// @Success 200 {object} watchlistResponse
// @Router /watchlist [get]
func (h *WatchlistHandler) Get(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.Get(r.Context(), UserIDFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, watchlistResponse{Anime: list})
}

// @Summary Add anime to watchlist
// @Tags watchlist
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body addEntryRequest true "anime"
// @Success 201 {object} watchlistResponse
// @Failure 400 {object} errorResponse
// @Router /watchlist [post]
func (h *WatchlistHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req addEntryRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	entry := models.WatchlistEntry{
		Anime: models.Anime{
			ID:       req.ID,
			Title:    req.Title,
			Genres:   req.Genres,
			Type:     req.Type,
			Score:    req.Score,
			Year:     req.Year,
			Studios:  req.Studios,
			Image:    req.Image,
			Episodes: req.Episodes,
		},
		Status:     req.Status,
		UserRating: req.UserRating,
	}

	list, err := h.svc.Add(r.Context(), UserIDFromContext(r.Context()), entry)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, watchlistResponse{Anime: list})
}

// @Summary Update status or rating
// @Tags watchlist
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param malId path int true "MyAnimeList id"
// @Param body body updateEntryRequest true "fields to change"
// @Success 200 {object} models.WatchlistEntry
// @Failure 404 {object} errorResponse
// @Router /watchlist/{malId} [put]
func (h *WatchlistHandler) Update(w http.ResponseWriter, r *http.Request) {
	malID, ok := pathID(w, r, "malId")
	if !ok {
		return
	}
	var req updateEntryRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	e, err := h.svc.Update(r.Context(), UserIDFromContext(r.Context()), malID, models.WatchlistUpdate{
		Status:     req.Status,
		UserRating: req.UserRating,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

// @Summary Remove anime from watchlist
// @Tags watchlist
// @Security BearerAuth
// @Produce json
// @Param malId path int true "MyAnimeList id"
// @Success 200 {object} watchlistResponse
// @Failure 404 {object} errorResponse
// @Router /watchlist/{malId} [delete]
func (h *WatchlistHandler) Remove(w http.ResponseWriter, r *http.Request) {
	malID, ok := pathID(w, r, "malId")
	if !ok {
		return
	}
	list, err := h.svc.Remove(r.Context(), UserIDFromContext(r.Context()), malID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, watchlistResponse{Anime: list})
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return id, true
}

func queryInt(r *http.Request, name string) int {
	v, _ := strconv.Atoi(r.URL.Query().Get(name))
	return v
}
