package http

import (
	"net/http"
	"strings"

	"github.com/tasktrack/tasktrack/internal/service"
	"github.com/tasktrack/tasktrack/pkg/apierr"
	"github.com/tasktrack/tasktrack/pkg/httpx"
	"github.com/tasktrack/tasktrack/pkg/tasksdk"
)

// TokenHandler serves POST /v1/auth/token. It accepts
// application/x-www-form-urlencoded credentials in the style of the
// OAuth2 password grant.
type TokenHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP godoc
//
//	@Summary		Obtain an access token
//	@Description	Exchanges a username and password for a signed bearer token. Unknown usernames and wrong passwords are indistinguishable in the response.
//	@Tags			Auth
//	@Accept			application/x-www-form-urlencoded
//	@Produce		json
//	@Param			username	formData	string					true	"Username"
//	@Param			password	formData	string					true	"Password"
//	@Success		200			{object}	tasksdk.TokenResponse	"access_token, token_type"
//	@Failure		400			{object}	tasksdk.ErrorResponse	"error, error_description"
//	@Failure		401			{object}	tasksdk.ErrorResponse	"error, error_description"
//	@Header			200			{string}	Cache-Control			"no-store"
//	@Router			/v1/auth/token [post].
func (h *TokenHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if ct := r.Header.Get("Content-Type"); ct != "" &&
		!strings.HasPrefix(ct, "application/x-www-form-urlencoded") {
		apierr.ErrInvalidRequest.WriteError(w)
		return
	}

	if err := r.ParseForm(); err != nil {
		apierr.ErrInvalidRequest.WriteError(w)
		return
	}

	username := strings.TrimSpace(r.Form.Get("username"))
	password := r.Form.Get("password")
	if username == "" || password == "" {
		apierr.ErrInvalidRequest.WriteError(w)
		return
	}

	token, err := h.AuthService.Login(r.Context(), username, password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, tasksdk.TokenResponse{
		AccessToken: token.AccessToken,
		TokenType:   token.TokenType,
	})
}
