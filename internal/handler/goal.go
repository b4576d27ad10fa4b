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

// GoalHandler covers the /api/goals CRUD routes.
type GoalHandler struct {
	goals  *service.GoalService
	logger *slog.Logger
}

func NewGoalHandler(goals *service.GoalService, logger *slog.Logger) *GoalHandler {
	return &GoalHandler{goals: goals, logger: logger}
}

// HandleCreate creates a goal owned by the caller.
//
// HTTP: POST /api/goals
func (h *GoalHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	var in service.CreateGoalInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeBadJSON(w)
		return
	}

	goal, err := h.goals.Create(r.Context(), userID, in)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, goal)
}

// HandleList returns the caller's goals.
//
// HTTP: GET /api/goals?achieved=&category=&limit=&offset=
func (h *GoalHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	f := repository.GoalFilter{
		Achieved: queryBool(r, "achieved"),
		Category: r.URL.Query().Get("category"),
		ListOptions: repository.ListOptions{
			Limit:  queryInt(r, "limit", 0),
			Offset: queryInt(r, "offset", 0),
		},
	}

	goals, err := h.goals.List(r.Context(), userID, f)
	if err != nil {
		writeError(w, err)
		return
	}
	if goals == nil {
		goals = []model.Goal{}
	}

	writeJSON(w, http.StatusOK, goals)
}

// HandleGet returns a single goal.
//
// HTTP: GET /api/goals/{id}
func (h *GoalHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	goal, err := h.goals.Get(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, goal)
}

// HandleUpdate applies a partial update.
//
// HTTP: PUT /api/goals/{id}
func (h *GoalHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	var patch model.GoalPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeBadJSON(w)
		return
	}

	goal, err := h.goals.Update(r.Context(), userID, chi.URLParam(r, "id"), patch)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, goal)
}

// HandleDelete removes a goal.
//
// HTTP: DELETE /api/goals/{id}
func (h *GoalHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	if err := h.goals.Delete(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
