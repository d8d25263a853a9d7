package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusAnonymous(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	res := env.do(t, http.MethodGet, "/status")
	require.Equal(t, http.StatusOK, res.StatusCode)

	status := decodeJSON[StatusDTO](t, res.Body)
	assert.False(t, status.LoggedIn)
	assert.Nil(t, status.Player)

	// An anonymous status check scrubs any stale cookies.
	cookies := res.Cookies()
	require.NotEmpty(t, cookies)
	for _, c := range cookies {
		assert.Negative(t, c.MaxAge, "cookie %s should be expired", c.Name)
	}
}

func TestStatusLoggedIn(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	token, err := env.jwt.Sign(env.jwt.NewPlayerClaims(17, "hikari"))
	require.NoError(t, err)
	rec := httptest.NewRecorder()
	require.NoError(t, env.cookies.Refresh(rec, token))

	req, err := http.NewRequest(http.MethodGet, env.srv.URL+"/status", nil)
	require.NoError(t, err)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}

	res, err := env.srv.Client().Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	status := decodeJSON[StatusDTO](t, res.Body)
	assert.True(t, status.LoggedIn)
	require.NotNil(t, status.Player)
	assert.Equal(t, int64(17), status.Player.PlayerID)
	assert.Equal(t, "hikari", status.Player.Username)

	// The token cookies come back refreshed, not cleared.
	refreshed := res.Cookies()
	require.NotEmpty(t, refreshed)
	for _, c := range refreshed {
		assert.NotEmpty(t, c.Value, "cookie %s should carry a token piece", c.Name)
	}
}

func TestLogout(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	res := env.do(t, http.MethodPost, "/logout")
	require.Equal(t, http.StatusNoContent, res.StatusCode)

	cookies := res.Cookies()
	require.NotEmpty(t, cookies)
	for _, c := range cookies {
		assert.Negative(t, c.MaxAge, "cookie %s should be expired", c.Name)
	}
}
