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

// TodoHandler covers the /api/todos CRUD routes.
type TodoHandler struct {
	todos  *service.TodoService
	logger *slog.Logger
}

func NewTodoHandler(todos *service.TodoService, logger *slog.Logger) *TodoHandler {
	return &TodoHandler{todos: todos, logger: logger}
}

// HandleCreate creates a todo owned by the caller.
//
// HTTP: POST /api/todos
func (h *TodoHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	var in service.CreateTodoInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeBadJSON(w)
		return
	}

	todo, err := h.todos.Create(r.Context(), userID, in)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, todo)
}

// HandleList returns the caller's todos.
//
// HTTP: GET /api/todos?completed=&limit=&offset=
func (h *TodoHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	f := repository.TodoFilter{
		Completed: queryBool(r, "completed"),
		ListOptions: repository.ListOptions{
			Limit:  queryInt(r, "limit", 0),
			Offset: queryInt(r, "offset", 0),
		},
	}

	todos, err := h.todos.List(r.Context(), userID, f)
	if err != nil {
		writeError(w, err)
		return
	}
	if todos == nil {
		todos = []model.Todo{}
	}

	writeJSON(w, http.StatusOK, todos)
}

// HandleGet returns a single todo.
//
// HTTP: GET /api/todos/{id}
func (h *TodoHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	todo, err := h.todos.Get(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, todo)
}

// HandleUpdate applies a partial update.
//
// HTTP: PUT /api/todos/{id}
func (h *TodoHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	var patch model.TodoPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeBadJSON(w)
		return
	}

	todo, err := h.todos.Update(r.Context(), userID, chi.URLParam(r, "id"), patch)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, todo)
}

// HandleDelete removes a todo.
//
// HTTP: DELETE /api/todos/{id}
func (h *TodoHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	if err := h.todos.Delete(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
