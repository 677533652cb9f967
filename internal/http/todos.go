package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/tasktrack/tasktrack/internal/domain"
	"github.com/tasktrack/tasktrack/internal/service"
	"github.com/tasktrack/tasktrack/pkg/apierr"
	"github.com/tasktrack/tasktrack/pkg/httpx"
	"github.com/tasktrack/tasktrack/pkg/tasksdk"
)

// TodosHandler serves the /v1/todos collection and item endpoints.
// Every operation is scoped to the authenticated user; todos owned by
// someone else behave exactly like todos that do not exist.
type TodosHandler struct {
	TodoService *service.TodoService
}

// HandleList godoc
//
//	@Summary		List todos
//	@Description	Returns every todo owned by the authenticated user.
//	@Tags			Todos
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		tasksdk.TodoResponse
//	@Failure		401	{object}	tasksdk.ErrorResponse	"Invalid or missing access token"
//	@Router			/v1/todos [get].
func (h *TodosHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	identity, ok := httpx.IdentityFromContext(r.Context())
	if !ok {
		apierr.ErrInvalidToken.WriteError(w)
		return
	}

	todos, err := h.TodoService.List(r.Context(), identity.UserID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	// An empty list marshals as [] rather than null.
	out := make([]tasksdk.TodoResponse, 0, len(todos))
	for _, todo := range todos {
		out = append(out, todoResponse(todo))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleCreate godoc
//
//	@Summary		Create a todo
//	@Description	Creates a todo owned by the authenticated user. The description may be expanded by the configured language model; on failure the original text is stored.
//	@Tags			Todos
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		tasksdk.TodoRequest	true	"Todo fields"
//	@Success		201		{object}	tasksdk.TodoResponse
//	@Failure		400		{object}	tasksdk.ErrorResponse	"Validation failure"
//	@Failure		401		{object}	tasksdk.ErrorResponse	"Invalid or missing access token"
//	@Router			/v1/todos [post].
func (h *TodosHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	identity, ok := httpx.IdentityFromContext(r.Context())
	if !ok {
		apierr.ErrInvalidToken.WriteError(w)
		return
	}

	params, ok := decodeTodoRequest(w, r)
	if !ok {
		return
	}

	todo, err := h.TodoService.Create(r.Context(), identity.UserID, params)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, todoResponse(todo))
}

// HandleGet godoc
//
//	@Summary		Get a todo
//	@Description	Returns one todo by id. Todos owned by another user return 404.
//	@Tags			Todos
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int	true	"Todo id"
//	@Success		200	{object}	tasksdk.TodoResponse
//	@Failure		401	{object}	tasksdk.ErrorResponse	"Invalid or missing access token"
//	@Failure		404	{object}	tasksdk.ErrorResponse	"Todo not found"
//	@Router			/v1/todos/{id} [get].
func (h *TodosHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	identity, id, ok := todoRequestScope(w, r)
	if !ok {
		return
	}

	todo, err := h.TodoService.Get(r.Context(), id, identity.UserID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, todoResponse(todo))
}

// HandleUpdate godoc
//
//	@Summary		Replace a todo
//	@Description	Replaces the client-editable fields of a todo. Todos owned by another user return 404.
//	@Tags			Todos
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int					true	"Todo id"
//	@Param			body	body		tasksdk.TodoRequest	true	"Todo fields"
//	@Success		200		{object}	tasksdk.TodoResponse
//	@Failure		400		{object}	tasksdk.ErrorResponse	"Validation failure"
//	@Failure		401		{object}	tasksdk.ErrorResponse	"Invalid or missing access token"
//	@Failure		404		{object}	tasksdk.ErrorResponse	"Todo not found"
//	@Router			/v1/todos/{id} [put].
func (h *TodosHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	identity, id, ok := todoRequestScope(w, r)
	if !ok {
		return
	}

	params, ok := decodeTodoRequest(w, r)
	if !ok {
		return
	}

	todo, err := h.TodoService.Update(r.Context(), id, identity.UserID, params)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, todoResponse(todo))
}

// HandleDelete godoc
//
//	@Summary		Delete a todo
//	@Description	Deletes one todo by id. Todos owned by another user return 404 and are left untouched.
//	@Tags			Todos
//	@Security		BearerAuth
//	@Param			id	path	int	true	"Todo id"
//	@Success		204	"Todo deleted"
//	@Failure		401	{object}	tasksdk.ErrorResponse	"Invalid or missing access token"
//	@Failure		404	{object}	tasksdk.ErrorResponse	"Todo not found"
//	@Router			/v1/todos/{id} [delete].
func (h *TodosHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	identity, id, ok := todoRequestScope(w, r)
	if !ok {
		return
	}

	if err := h.TodoService.Delete(r.Context(), id, identity.UserID); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// todoRequestScope extracts the caller identity and the {id} path value.
// It writes the error response itself when either is missing.
func todoRequestScope(w http.ResponseWriter, r *http.Request) (httpx.Identity, int64, bool) {
	identity, ok := httpx.IdentityFromContext(r.Context())
	if !ok {
		apierr.ErrInvalidToken.WriteError(w)
		return httpx.Identity{}, 0, false
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		apierr.ErrNotFound.WriteError(w)
		return httpx.Identity{}, 0, false
	}
	return identity, id, true
}

func decodeTodoRequest(w http.ResponseWriter, r *http.Request) (service.TodoParams, bool) {
	var req tasksdk.TodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.ErrInvalidRequest.WriteError(w)
		return service.TodoParams{}, false
	}
	return service.TodoParams{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Completed:   req.Completed,
	}, true
}

func todoResponse(todo domain.Todo) tasksdk.TodoResponse {
	return tasksdk.TodoResponse{
		ID:          todo.ID,
		Title:       todo.Title,
		Description: todo.Description,
		Priority:    todo.Priority,
		Completed:   todo.Completed,
		OwnerID:     todo.OwnerID,
		CreatedAt:   todo.CreatedAt,
		UpdatedAt:   todo.UpdatedAt,
	}
}
