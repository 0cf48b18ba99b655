package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-reportcard-api/internal/models"
	appErrors "github.com/noah-isme/sma-reportcard-api/pkg/errors"
)

func TestTokenServiceSignAndValidate(t *testing.T) {
	svc := NewTokenService(TokenConfig{Secret: "secret", Issuer: "sma-auth", Audience: "report-cards"})

	token, err := svc.Sign(&models.JWTClaims{UserID: mathManager, Role: models.RoleTeacher, CampusID: testCampus}, time.Hour)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, mathManager, claims.UserID)
	assert.Equal(t, models.RoleTeacher, claims.Role)
	assert.Equal(t, testCampus, claims.CampusID)
	assert.Equal(t, mathManager, claims.Subject)
}

func TestTokenServiceSuperAdminNeedsNoCampus(t *testing.T) {
	svc := NewTokenService(TokenConfig{Secret: "secret"})

	token, err := svc.Sign(&models.JWTClaims{UserID: "root", Role: models.RoleSuperAdmin}, time.Hour)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Empty(t, claims.CampusID)
	assert.Equal(t, models.RoleSuperAdmin, claims.Role)
}

func TestTokenServiceRejectsBadTokens(t *testing.T) {
	svc := NewTokenService(TokenConfig{Secret: "secret"})

	t.Run("expired", func(t *testing.T) {
		past := time.Now().Add(-time.Hour)
		token, err := svc.Sign(&models.JWTClaims{
			UserID: "u-1",
			Role:   models.RoleAdmin,
			RegisteredClaims: jwt.RegisteredClaims{
				IssuedAt:  jwt.NewNumericDate(past.Add(-time.Minute)),
				ExpiresAt: jwt.NewNumericDate(past),
			},
		}, 0)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		require.Error(t, err)
		assert.ErrorIs(t, err, appErrors.ErrUnauthorized)
		assert.Equal(t, "token expired", appErrors.FromError(err).Message)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewTokenService(TokenConfig{Secret: "other"})
		token, err := other.Sign(&models.JWTClaims{UserID: "u-1", Role: models.RoleAdmin}, time.Hour)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, appErrors.ErrUnauthorized)
	})

	t.Run("missing role", func(t *testing.T) {
		token, err := svc.Sign(&models.JWTClaims{UserID: "u-1"}, time.Hour)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		require.Error(t, err)
		assert.Equal(t, "invalid token claims", appErrors.FromError(err).Message)
	})

	t.Run("missing campus", func(t *testing.T) {
		for _, role := range []models.UserRole{models.RoleTeacher, models.RoleAdmin} {
			token, err := svc.Sign(&models.JWTClaims{UserID: "u-1", Role: role}, time.Hour)
			require.NoError(t, err)

			_, err = svc.ValidateToken(token)
			require.Error(t, err, string(role))
			assert.ErrorIs(t, err, appErrors.ErrUnauthorized)
			assert.Equal(t, "token is missing campus_id", appErrors.FromError(err).Message)
		}
	})

	t.Run("wrong signing method", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, &models.JWTClaims{UserID: "u-1", Role: models.RoleAdmin}).SignedString([]byte("secret"))
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, appErrors.ErrUnauthorized)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.ValidateToken("not-a-token")
		assert.ErrorIs(t, err, appErrors.ErrUnauthorized)
	})
}
