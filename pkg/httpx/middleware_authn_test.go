package httpx

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tasktrack/tasktrack/pkg/jwtx"
)

type staticVerifier struct {
	claims jwtx.Claims
	err    error
}

func (v staticVerifier) Verify(string) (jwtx.Claims, error) {
	return v.claims, v.err
}

func okClaims(username string, id int64, role string) jwtx.Claims {
	c := jwtx.Claims{UserID: id, Role: role}
	c.Subject = username
	return c
}

func TestBearerFromRequest(t *testing.T) {
	t.Run("header", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Bearer tok-123")

		raw, src := BearerFromRequest(r)
		require.Equal(t, "tok-123", raw)
		require.Equal(t, TokenSourceHeader, src)
	})

	t.Run("cookie", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: "tok-456"})

		raw, src := BearerFromRequest(r)
		require.Equal(t, "tok-456", raw)
		require.Equal(t, TokenSourceCookie, src)
	})

	t.Run("header wins over cookie", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Bearer from-header")
		r.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: "from-cookie"})

		raw, src := BearerFromRequest(r)
		require.Equal(t, "from-header", raw)
		require.Equal(t, TokenSourceHeader, src)
	})

	t.Run("non-bearer authorization ignored", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Basic dXNlcjpwdw==")

		raw, src := BearerFromRequest(r)
		require.Empty(t, raw)
		require.Equal(t, TokenSourceNone, src)
	})

	t.Run("nothing", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)

		raw, src := BearerFromRequest(r)
		require.Empty(t, raw)
		require.Equal(t, TokenSourceNone, src)
	})
}

func TestAuthnMiddleware(t *testing.T) {
	opts := AuthnOptions{LoginURL: "/login"}

	echo := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := IdentityFromContext(r.Context())
		require.True(t, ok)
		require.Equal(t, "alice", id.Username)
		require.Equal(t, int64(1), id.UserID)
		w.WriteHeader(http.StatusOK)
	})

	t.Run("valid header token passes identity", func(t *testing.T) {
		v := staticVerifier{claims: okClaims("alice", 1, "user")}
		h := AuthnMiddleware(v, opts)(echo)

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Bearer any")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)

		require.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing token is 401", func(t *testing.T) {
		v := staticVerifier{claims: okClaims("alice", 1, "user")}
		h := AuthnMiddleware(v, opts)(echo)

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)

		require.Equal(t, http.StatusUnauthorized, w.Code)
		require.Contains(t, w.Header().Get("WWW-Authenticate"), "invalid_token")
	})

	t.Run("bad header token is 401", func(t *testing.T) {
		v := staticVerifier{err: errors.New("nope")}
		h := AuthnMiddleware(v, opts)(echo)

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Bearer bad")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)

		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("bad cookie token redirects and clears cookie", func(t *testing.T) {
		v := staticVerifier{err: errors.New("nope")}
		h := AuthnMiddleware(v, opts)(echo)

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: "stale"})
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)

		require.Equal(t, http.StatusFound, w.Code)
		require.Equal(t, "/login", w.Header().Get("Location"))

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		require.Equal(t, AccessTokenCookie, cookies[0].Name)
		require.Empty(t, cookies[0].Value)
		require.Negative(t, cookies[0].MaxAge)
	})

	t.Run("valid cookie token passes identity", func(t *testing.T) {
		v := staticVerifier{claims: okClaims("alice", 1, "user")}
		h := AuthnMiddleware(v, opts)(echo)

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: "good"})
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)

		require.Equal(t, http.StatusOK, w.Code)
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	cfg := RateLimitConfig{RequestsPerWindow: 2, Window: time.Minute, Burst: 2}
	h := RateLimitByIP(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	send := func(ip string) int {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.RemoteAddr = ip + ":12345"
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		return w.Code
	}

	require.Equal(t, http.StatusOK, send("192.0.2.1"))
	require.Equal(t, http.StatusOK, send("192.0.2.1"))
	require.Equal(t, http.StatusTooManyRequests, send("192.0.2.1"))

	// A different client keeps its own bucket.
	require.Equal(t, http.StatusOK, send("192.0.2.2"))
}
