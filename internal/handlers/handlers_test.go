package handlers

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/fenying/minesweeper-go/internal/config"
	"github.com/fenying/minesweeper-go/internal/middleware"
	"github.com/fenying/minesweeper-go/internal/session"
)

// testEnv is a complete server minus the database: sessions are
// anonymous, so no handler under test ever reaches for the repository.
type testEnv struct {
	srv     *httptest.Server
	keeper  *session.Keeper
	jwt     *config.JWT
	cookies *config.Cookies
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	privPEM := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})
	pubDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	pubPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubDER})

	jwtCodec, err := config.NewJWT(config.JWTConfig{
		PrivateKey: string(privPEM),
		PublicKey:  string(pubPEM),
	})
	require.NoError(t, err)

	cookies := config.NewCookies(config.CookiesConfig{
		Domain:   "localhost",
		SameSite: "strict",
	}, jwtCodec)

	keeper := session.NewKeeper(time.Hour)
	game := NewGameHandler(logger, nil, keeper, config.NewWebSocket())
	auth := NewAuth(logger, nil, cookies, jwtCodec)

	srv := httptest.NewServer(middleware.Wrap(
		Routes(game, auth),
		middleware.Auth(logger, cookies),
	))
	t.Cleanup(srv.Close)

	return testEnv{srv: srv, keeper: keeper, jwt: jwtCodec, cookies: cookies}
}

func (e testEnv) do(t *testing.T, method, path string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, e.srv.URL+path, nil)
	require.NoError(t, err)
	res, err := e.srv.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { res.Body.Close() })
	return res
}

func decodeJSON[T any](t *testing.T, r io.Reader) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(r).Decode(&v))
	return v
}
