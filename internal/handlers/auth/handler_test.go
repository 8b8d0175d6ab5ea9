package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"gitlab.com/stark-bootcamp.net/internal/adapter/crypto"
	"gitlab.com/stark-bootcamp.net/internal/adapter/logging"
	"gitlab.com/stark-bootcamp.net/internal/config"
	"gitlab.com/stark-bootcamp.net/internal/core/services/auth"
	"gitlab.com/stark-bootcamp.net/internal/domain"
)

func newRouter(t *testing.T) (*mux.Router, auth.IAuthService) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	logger := logging.NewNopLogger()
	cfg := &config.JwtConfig{
		Secret:            "test-secret",
		TokenTTL:          time.Hour,
		AdminUser:         "admin",
		AdminPasswordHash: string(hash),
	}
	svc := auth.NewLocalAuthService(cfg, crypto.NewJWTService(cfg), logger)

	r := mux.NewRouter()
	NewHandler(svc, logger).RegisterRoutes(r)
	return r, svc
}

func login(r http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestLoginIssuesUsableToken(t *testing.T) {
	r, svc := newRouter(t)

	rec := login(r, `{"username":"admin","password":"s3cret"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp domain.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)

	payload, err := svc.Authorize(context.Background(), resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin", payload.Username)
}

func TestLoginWrongPassword(t *testing.T) {
	r, _ := newRouter(t)
	rec := login(r, `{"username":"admin","password":"nope"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
