package api_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tasktrack/tasktrack/pkg/httpx"
)

// noRedirectClient returns redirects to the caller instead of following
// them, so tests can assert on the 302 itself.
func noRedirectClient() *http.Client {
	return &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func TestCookieAuthentication(t *testing.T) {
	client := setupServer(t)
	session := registerAndLogin(t, client, "alice", "s3cretpw")

	req, err := http.NewRequestWithContext(t.Context(), http.MethodGet, client.BaseURL+"/v1/todos", nil)
	require.NoError(t, err)
	req.AddCookie(&http.Cookie{Name: httpx.AccessTokenCookie, Value: session.AccessToken()})

	resp, err := noRedirectClient().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestBadCookieRedirectsToLogin(t *testing.T) {
	client := setupServer(t)

	req, err := http.NewRequestWithContext(t.Context(), http.MethodGet, client.BaseURL+"/v1/todos", nil)
	require.NoError(t, err)
	req.AddCookie(&http.Cookie{Name: httpx.AccessTokenCookie, Value: "expired-or-garbage"})

	resp, err := noRedirectClient().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusFound, resp.StatusCode)
	require.Equal(t, testLogin, resp.Header.Get("Location"))

	// The stale cookie must be cleared as part of the redirect.
	var cleared bool
	for _, c := range resp.Cookies() {
		if c.Name == httpx.AccessTokenCookie && c.MaxAge < 0 {
			cleared = true
		}
	}
	require.True(t, cleared, "expected the access_token cookie to be deleted")
}

func TestMissingTokenWithoutCookieIs401(t *testing.T) {
	client := setupServer(t)

	req, err := http.NewRequestWithContext(t.Context(), http.MethodGet, client.BaseURL+"/v1/todos", nil)
	require.NoError(t, err)

	resp, err := noRedirectClient().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.Contains(t, resp.Header.Get("WWW-Authenticate"), "Bearer")
}

func TestHeaderTakesPrecedenceOverCookie(t *testing.T) {
	client := setupServer(t)
	session := registerAndLogin(t, client, "alice", "s3cretpw")

	// Valid cookie, junk header: the header wins, so the request fails.
	req, err := http.NewRequestWithContext(t.Context(), http.MethodGet, client.BaseURL+"/v1/todos", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer junk")
	req.AddCookie(&http.Cookie{Name: httpx.AccessTokenCookie, Value: session.AccessToken()})

	resp, err := noRedirectClient().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
