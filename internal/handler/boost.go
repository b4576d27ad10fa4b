package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tahmid/focusflow/internal/service"
)

// BoostHandler covers the /api/boost routes: personalised video
// recommendations plus direct YouTube search and lookup.
type BoostHandler struct {
	boost  *service.BoostService
	logger *slog.Logger
}

func NewBoostHandler(boost *service.BoostService, logger *slog.Logger) *BoostHandler {
	return &BoostHandler{boost: boost, logger: logger}
}

// HandleRecommendations assembles the personalised video list.
//
// HTTP: GET /api/boost/recommendations?max_results=5
func (h *BoostHandler) HandleRecommendations(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	rec, err := h.boost.Recommend(r.Context(), userID, queryInt(r, "max_results", 5))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, rec)
}

// HandleSearch is a direct video search.
//
// HTTP: GET /api/boost/search?query=...&max_results=10
func (h *BoostHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	if _, ok := callerID(w, r); !ok {
		return
	}

	result, err := h.boost.Search(r.Context(), r.URL.Query().Get("query"), queryInt(r, "max_results", 10))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// HandleGoalVideos returns videos targeted at one goal.
//
// HTTP: GET /api/boost/goal/{goal_id}/videos?max_results=5
func (h *BoostHandler) HandleGoalVideos(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	result, err := h.boost.GoalVideos(r.Context(), userID, chi.URLParam(r, "goal_id"), queryInt(r, "max_results", 5))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// HandleTrending returns popular motivational videos.
//
// HTTP: GET /api/boost/trending?max_results=10
func (h *BoostHandler) HandleTrending(w http.ResponseWriter, r *http.Request) {
	if _, ok := callerID(w, r); !ok {
		return
	}

	result, err := h.boost.Trending(r.Context(), queryInt(r, "max_results", 10))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// HandleVideoDetails returns the full record for one video.
//
// HTTP: GET /api/boost/video/{video_id}/details
func (h *BoostHandler) HandleVideoDetails(w http.ResponseWriter, r *http.Request) {
	if _, ok := callerID(w, r); !ok {
		return
	}

	v, err := h.boost.VideoDetails(r.Context(), chi.URLParam(r, "video_id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, v)
}
