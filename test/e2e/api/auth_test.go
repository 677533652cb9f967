package api_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tasktrack/tasktrack/pkg/apierr"
	"github.com/tasktrack/tasktrack/pkg/tasksdk"
)

func TestRegisterLoginUserInfo(t *testing.T) {
	client := setupServer(t)

	session := registerAndLogin(t, client, "alice", "s3cretpw")
	require.NotEmpty(t, session.AccessToken())

	info, err := session.UserInfo(t.Context())
	require.NoError(t, err)
	require.Equal(t, "alice", info.Username)
	require.Equal(t, "alice@example.com", info.Email)
	require.Equal(t, "user", info.Role)
	require.NotZero(t, info.UserID)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	client := setupServer(t)

	registerUser(t, client, "alice", "s3cretpw")

	err := client.Register(t.Context(), tasksdk.RegisterRequest{
		Username:  "alice",
		Email:     "other@example.com",
		FirstName: "Other",
		LastName:  "User",
		Password:  "s3cretpw",
	})
	require.Error(t, err)

	var apiErr *apierr.APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	require.Equal(t, apierr.CodeValidation, apiErr.Code)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	client := setupServer(t)

	registerUser(t, client, "alice", "s3cretpw")

	_, errWrongPassword := client.PasswordGrant(t.Context(), "alice", "wrong")
	_, errUnknownUser := client.PasswordGrant(t.Context(), "nobody", "s3cretpw")

	for _, err := range []error{errWrongPassword, errUnknownUser} {
		var apiErr *apierr.APIError
		require.True(t, errors.As(err, &apiErr))
		require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	}

	// Identical body for both failure modes.
	require.Equal(t, errWrongPassword.Error(), errUnknownUser.Error())
}

func TestExpiredTokenRejected(t *testing.T) {
	client := setupServer(t)

	session := registerAndLogin(t, client, "alice", "s3cretpw")
	info, err := session.UserInfo(t.Context())
	require.NoError(t, err)

	expired := signToken(t, "alice", info.UserID, time.Hour, time.Now().Add(-2*time.Hour))
	stale := client.NewSessionFromToken(expired)

	_, err = stale.UserInfo(t.Context())
	var apiErr *apierr.APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
}

func TestGarbageTokenRejected(t *testing.T) {
	client := setupServer(t)

	session := client.NewSessionFromToken("not.a.token")
	_, err := session.ListTodos(t.Context())

	var apiErr *apierr.APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	require.Equal(t, apierr.CodeInvalidCredentials, apiErr.Code)
}

func TestRegisterValidation(t *testing.T) {
	client := setupServer(t)

	err := client.Register(t.Context(), tasksdk.RegisterRequest{
		Username: "bob",
		Email:    "bob@example.com",
		Password: "pw",
	})

	var apiErr *apierr.APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
}
