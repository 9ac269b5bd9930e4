package jwt

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/geoattendance/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAccessToken_RoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", "1h")
	identity := user.Identity{
		UserID:         "user-1",
		EmployeeID:     "emp-1",
		OrganizationID: "org-1",
		Role:           user.RoleHR,
	}

	token, expiresAt, err := svc.GenerateAccessToken(identity)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Positive(t, expiresAt)

	decoded, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)
	claims, err := decoded.AsMap(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "access", claims["type"])
	assert.Equal(t, identity, IdentityFromClaims(claims))
}

func TestGenerateAccessToken_PendingUserHasNoEmployee(t *testing.T) {
	svc := NewJWTService("test-secret", "1h")

	token, _, err := svc.GenerateAccessToken(user.Identity{UserID: "user-2", Role: user.RolePending})
	require.NoError(t, err)

	decoded, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)
	claims, err := decoded.AsMap(context.Background())
	require.NoError(t, err)

	identity := IdentityFromClaims(claims)
	assert.Empty(t, identity.EmployeeID)
	assert.Empty(t, identity.OrganizationID)
}

func TestGenerateAccessToken_BadExpiration(t *testing.T) {
	svc := NewJWTService("test-secret", "forever")

	_, _, err := svc.GenerateAccessToken(user.Identity{UserID: "user-3"})
	assert.Error(t, err)
}
