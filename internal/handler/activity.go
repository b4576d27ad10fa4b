package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tahmid/focusflow/internal/model"
	"github.com/tahmid/focusflow/internal/repository"
	"github.com/tahmid/focusflow/internal/service"
)

// ActivityHandler covers the /api/activities routes: the append-only
// log plus the stats summary. There is deliberately no update route.
type ActivityHandler struct {
	activities *service.ActivityService
	logger     *slog.Logger
}

func NewActivityHandler(activities *service.ActivityService, logger *slog.Logger) *ActivityHandler {
	return &ActivityHandler{activities: activities, logger: logger}
}

// HandleCreate logs an activity.
//
// HTTP: POST /api/activities
func (h *ActivityHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	var in service.CreateActivityInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeBadJSON(w)
		return
	}

	activity, err := h.activities.Create(r.Context(), userID, in)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, activity)
}

// HandleList returns the caller's activities, newest first.
//
// HTTP: GET /api/activities?activity_type=&days=&limit=&offset=
func (h *ActivityHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	activities, err := h.activities.List(r.Context(), userID,
		r.URL.Query().Get("activity_type"),
		queryInt(r, "days", 0),
		repository.ListOptions{
			Limit:  queryInt(r, "limit", 0),
			Offset: queryInt(r, "offset", 0),
		})
	if err != nil {
		writeError(w, err)
		return
	}
	if activities == nil {
		activities = []model.Activity{}
	}

	writeJSON(w, http.StatusOK, activities)
}

// HandleGet returns a single activity.
//
// HTTP: GET /api/activities/{id}
func (h *ActivityHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	activity, err := h.activities.Get(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, activity)
}

// HandleDelete removes an activity.
//
// HTTP: DELETE /api/activities/{id}
func (h *ActivityHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	if err := h.activities.Delete(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleStats returns the aggregate summary over a trailing window.
//
// HTTP: GET /api/activities/stats/summary?days=7
func (h *ActivityHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	stats, err := h.activities.Stats(r.Context(), userID, queryInt(r, "days", 7))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}
