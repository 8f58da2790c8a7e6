package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/23himanshusingh/AnimeGpt/internal/logging"
	"github.com/23himanshusingh/AnimeGpt/internal/models"
	"github.com/23himanshusingh/AnimeGpt/internal/recommend"
	"github.com/23himanshusingh/AnimeGpt/internal/service"
)

// Recommender is implemented by *service.RecommendService.
type Recommender interface {
	Recommend(ctx context.Context, req service.RecRequest) (*service.RecResult, error)
	Insights(ctx context.Context, userID string) (*models.PreferenceInsights, error)
	Similar(ctx context.Context, animeID, limit int) ([]models.Recommendation, error)
}

type RecommendHandler struct {
	svc Recommender
}

func NewRecommendHandler(s Recommender) *RecommendHandler {
	return &RecommendHandler{svc: s}
}

type insightsResponse struct {
	Insights *models.PreferenceInsights `json:"insights"`
}

type similarResponse struct {
	Data []models.Recommendation `json:"data"`
}

func parseRecRequest(r *http.Request) (service.RecRequest, error) {
	algo, err := recommend.ParseAlgorithm(r.URL.Query().Get("type"))
	if err != nil {
		return service.RecRequest{}, err
	}
	return service.RecRequest{
		UserID:    UserIDFromContext(r.Context()),
		Algorithm: algo,
		Limit:     queryInt(r, "limit"),
	}, nil
}

// @Summary Recommendations for the current user
// @Tags recommendations
// @Security BearerAuth
// @Produce json
// @Param type query string false "content | collaborative | hybrid (default)"
// @Param limit query int false "how many (default 10, max 50)"
// @Success 200 {object} service.RecResult
// @Failure 400 {object} errorResponse
// @Failure 503 {object} errorResponse
// @Router /recommendations [get]
func (h *RecommendHandler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	req, err := parseRecRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.svc.Recommend(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// @Summary Preference insights for the current user
// @Tags recommendations
// @Security BearerAuth
// @Produce json
// @Success 200 {object} insightsResponse
// @Router /recommendations/insights [get]
func (h *RecommendHandler) GetInsights(w http.ResponseWriter, r *http.Request) {
	in, err := h.svc.Insights(r.Context(), UserIDFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, insightsResponse{Insights: in})
}

// @Summary Anime similar to another one
// @Tags anime
// @Produce json
// @Param id path int true "MyAnimeList id"
// @Param limit query int false "how many (default 10, max 50)"
// @Success 200 {object} similarResponse
// @Failure 404 {object} errorResponse
// @Router /anime/{id}/similar [get]
func (h *RecommendHandler) GetSimilar(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	recs, err := h.svc.Similar(r.Context(), id, queryInt(r, "limit"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, similarResponse{Data: recs})
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type wsMessage struct {
	Type        string                  `json:"type"`
	Msg         string                  `json:"msg,omitempty"`
	Stage       string                  `json:"stage,omitempty"`
	Algorithm   recommend.Algorithm     `json:"algorithm,omitempty"`
	Items       []models.Recommendation `json:"items,omitempty"`
	Fallback    bool                    `json:"fallback,omitempty"`
	GeneratedAt *time.Time              `json:"generatedAt,omitempty"`
	Error       string                  `json:"error,omitempty"`
}

// @Summary Recommendations with progress (WebSocket)
// @Description Sends start, one progress message per stage, then recommendations or error.
// @Tags recommendations
// @Security BearerAuth
// @Param type query string false "content | collaborative | hybrid (default)"
// @Param limit query int false "how many (default 10, max 50)"
// @Param token query string false "JWT, for clients that cannot set headers"
// @Router /recommendations/ws [get]
func (h *RecommendHandler) GetRecommendationsWS(w http.ResponseWriter, r *http.Request) {
	req, err := parseRecRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already replied to the client
		logging.Ctx(r.Context()).Debug().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	send := func(m wsMessage) {
		if err := conn.WriteJSON(m); err != nil {
			logging.Ctx(r.Context()).Debug().Err(err).Str("type", m.Type).Msg("websocket write failed")
		}
	}

	send(wsMessage{Type: "start", Msg: "building recommendations", Algorithm: req.Algorithm})

	req.Progress = func(stage string) {
		send(wsMessage{Type: "progress", Stage: stage})
	}
	res, err := h.svc.Recommend(r.Context(), req)
	if err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).Msg("websocket recommendations failed")
		send(wsMessage{Type: "error", Error: publicMessage(err)})
		return
	}

	send(wsMessage{
		Type:        "recommendations",
		Algorithm:   res.Algorithm,
		Items:       res.Items,
		Fallback:    res.Fallback,
		GeneratedAt: &res.GeneratedAt,
	})
	_ = conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "done"))
}

func publicMessage(err error) string {
	if errors.Is(err, service.ErrCatalogUnavailable) {
		return service.ErrCatalogUnavailable.Error()
	}
	return "internal server error"
}
