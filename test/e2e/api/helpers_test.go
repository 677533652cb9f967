package api_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tasktrack/tasktrack/internal/expand"
	httpapi "github.com/tasktrack/tasktrack/internal/http"
	"github.com/tasktrack/tasktrack/internal/service"
	"github.com/tasktrack/tasktrack/internal/store/drivers/sqlite"
	"github.com/tasktrack/tasktrack/pkg/cryptox"
	"github.com/tasktrack/tasktrack/pkg/httpx"
	"github.com/tasktrack/tasktrack/pkg/jwtx"
	"github.com/tasktrack/tasktrack/pkg/slogx"
	"github.com/tasktrack/tasktrack/pkg/tasksdk"
)

const (
	testSecret = "e2e-test-secret-e2e-test-secret-e2e"
	testIssuer = "tasktrack-test"
	testLogin  = "/login"
)

func init() {
	// Generous limits so scenario tests are not throttled.
	generous := httpx.RateLimitConfig{RequestsPerWindow: 10_000, Window: time.Minute, Burst: 10_000}
	httpx.StrictLimit = generous
	httpx.ModerateLimit = generous
	httpx.LenientLimit = generous
}

// setupServer starts a fully wired service backed by an in-memory
// database and returns an SDK client pointed at it.
func setupServer(t *testing.T) *tasksdk.SDKClient {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	signer, err := jwtx.NewSignerHS256([]byte(testSecret))
	require.NoError(t, err)
	verifier, err := jwtx.NewVerifierHS256([]byte(testSecret), testIssuer)
	require.NoError(t, err)

	logger := slogx.New(slogx.Config{
		Service: "tasktrack-test",
		Version: "test",
		Env:     "dev",
		Level:   "error",
		Format:  "text",
	})

	router := httpapi.NewRouter(verifier, testLogin, "test", st, logger)
	router.AuthService = &service.AuthService{
		Store:     st,
		Passwords: cryptox.DefaultContext(),
		Signer:    signer,
		TokenTTL:  time.Hour,
		Issuer:    testIssuer,
	}
	router.UserService = &service.UserService{Store: st}
	router.TodoService = &service.TodoService{
		Store:         st,
		Expander:      expand.Noop{},
		ExpandTimeout: time.Second,
	}
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return tasksdk.NewSDKClient(srv.URL)
}

func registerUser(t *testing.T, client *tasksdk.SDKClient, username, password string) {
	t.Helper()

	err := client.Register(t.Context(), tasksdk.RegisterRequest{
		Username:  username,
		Email:     username + "@example.com",
		FirstName: "Test",
		LastName:  "User",
		Password:  password,
	})
	require.NoError(t, err)
}

func registerAndLogin(t *testing.T, client *tasksdk.SDKClient, username, password string) *tasksdk.Session {
	t.Helper()

	registerUser(t, client, username, password)
	session, err := client.PasswordGrant(t.Context(), username, password)
	require.NoError(t, err)
	return session
}

// signToken mints a token directly, bypassing the login endpoint, so
// tests can produce expired or otherwise unusual tokens.
func signToken(t *testing.T, username string, userID int64, ttl time.Duration, issuedAt time.Time) string {
	t.Helper()

	signer, err := jwtx.NewSignerHS256([]byte(testSecret))
	require.NoError(t, err)

	token, err := signer.Sign(jwtx.NewAccessClaims(username, userID, "user", ttl, testIssuer, issuedAt))
	require.NoError(t, err)
	return token
}

func validTodo() tasksdk.TodoRequest {
	return tasksdk.TodoRequest{
		Title:       "Water the plants",
		Description: "All of them, including the fern",
		Priority:    2,
	}
}
