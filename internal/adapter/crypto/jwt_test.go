package crypto

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/stark-bootcamp.net/internal/config"
	"gitlab.com/stark-bootcamp.net/internal/domain"
)

func newService() *JWTServiceImpl {
	return NewJWTService(&config.JwtConfig{Secret: "test-secret", TokenTTL: time.Minute}).(*JWTServiceImpl)
}

func TestGenerateAndVerifyHMAC(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	token, err := svc.GenerateTokenHMAC(ctx, jwt.SigningMethodHS256.Name, map[string]interface{}{
		"username":   "admin",
		"permission": []string{domain.PermissionContestAdmin},
	})
	require.NoError(t, err)

	ok, err := svc.VerifyTokenHMAC(ctx, token, jwt.SigningMethodHS256.Name)
	require.NoError(t, err)
	assert.True(t, ok)

	payload, err := svc.DecodeTokenPayload(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "admin", payload.Username)
	assert.Equal(t, []string{domain.PermissionContestAdmin}, payload.Permission)
}

func TestVerifyHMACRejectsForeignSecret(t *testing.T) {
	ctx := context.Background()
	other := NewJWTService(&config.JwtConfig{Secret: "other"})
	token, err := other.GenerateTokenHMAC(ctx, jwt.SigningMethodHS256.Name, nil)
	require.NoError(t, err)

	ok, err := newService().VerifyTokenHMAC(ctx, token, jwt.SigningMethodHS256.Name)
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestVerifyHMACRejectsExpired(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	token, err := svc.GenerateTokenHMAC(ctx, jwt.SigningMethodHS256.Name, map[string]interface{}{
		"exp": time.Now().Add(-time.Minute).Unix(),
	})
	require.NoError(t, err)

	ok, err := svc.VerifyTokenHMAC(ctx, token, jwt.SigningMethodHS256.Name)
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestGenerateRejectsNonHMACMethod(t *testing.T) {
	_, err := newService().GenerateTokenHMAC(context.Background(), jwt.SigningMethodRS256.Name, nil)
	assert.Error(t, err)
}

func TestPasswordRoundTrip(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	hash, err := svc.EncryptPassword(ctx, "s3cret")
	require.NoError(t, err)

	ok, err := svc.VerifyPassword(ctx, hash, "s3cret")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.VerifyPassword(ctx, hash, "wrong")
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestDecodeTokenPayloadMalformed(t *testing.T) {
	_, err := newService().DecodeTokenPayload(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
