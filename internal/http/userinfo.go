package http

import (
	"net/http"

	"github.com/tasktrack/tasktrack/internal/service"
	"github.com/tasktrack/tasktrack/pkg/apierr"
	"github.com/tasktrack/tasktrack/pkg/httpx"
	"github.com/tasktrack/tasktrack/pkg/tasksdk"
)

// UserInfoHandler serves GET /v1/userinfo.
type UserInfoHandler struct {
	UserService *service.UserService
}

// ServeHTTP godoc
//
//	@Summary		Get user information
//	@Description	Returns the profile of the authenticated user.
//	@Tags			Auth
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	tasksdk.UserInfoResponse	"user_id, username, email, first_name, last_name, role"
//	@Failure		401	{object}	tasksdk.ErrorResponse		"Invalid or missing access token"
//	@Failure		500	{object}	tasksdk.ErrorResponse		"error, error_description"
//	@Router			/v1/userinfo [get].
func (h *UserInfoHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, ok := httpx.IdentityFromContext(ctx)
	if !ok {
		apierr.ErrInvalidToken.WriteError(w)
		return
	}

	user, err := h.UserService.GetUserByID(ctx, identity.UserID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, tasksdk.UserInfoResponse{
		UserID:      user.ID,
		Username:    user.Username,
		Email:       user.Email,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		Role:        user.Role,
		PhoneNumber: user.PhoneNumber,
	})
}
