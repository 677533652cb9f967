package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/tasktrack/tasktrack/internal/service"
	"github.com/tasktrack/tasktrack/pkg/apierr"
	"github.com/tasktrack/tasktrack/pkg/tasksdk"
)

// RegisterHandler serves POST /v1/auth/register.
type RegisterHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP godoc
//
//	@Summary		Register a new account
//	@Description	Creates a new active user account. Usernames and email addresses must be unique.
//	@Tags			Auth
//	@Accept			json
//	@Param			body	body	tasksdk.RegisterRequest	true	"Account details"
//	@Success		201		"Account created"
//	@Failure		400		{object}	tasksdk.ErrorResponse	"error, error_description"
//	@Failure		500		{object}	tasksdk.ErrorResponse	"error, error_description"
//	@Router			/v1/auth/register [post].
func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if ct := r.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "application/json") {
		apierr.ErrInvalidRequest.WriteError(w)
		return
	}

	var req tasksdk.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.ErrInvalidRequest.WriteError(w)
		return
	}

	_, err := h.AuthService.Register(r.Context(), service.RegisterParams{
		Username:    req.Username,
		Email:       req.Email,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Password:    req.Password,
		Role:        req.Role,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
}
