package jwt

import (
	"time"

	"github.com/cmlabs-hris/geoattendance/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

type Service interface {
	GenerateAccessToken(identity user.Identity) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
}

// JWTService verifies access tokens issued by the HR platform. Tokens are
// HS256 with the claims user_id, employee_id, company_id, role and type.
type JWTService struct {
	accessTokenExpirationTime string
	tokenAuth                 *jwtauth.JWTAuth
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime string) Service {
	return &JWTService{
		accessTokenExpirationTime: accessTokenExpirationTime,
		tokenAuth:                 jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

// GenerateAccessToken issues an access token. Used by attendctl and tests;
// production tokens come from the platform's auth service.
func (j *JWTService) GenerateAccessToken(identity user.Identity) (token string, expiresAt int64, err error) {
	expDuration, err := time.ParseDuration(j.accessTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	expiresAt = time.Now().Add(expDuration).Unix()

	claims := map[string]interface{}{
		"user_id":     identity.UserID,
		"employee_id": valueOrNil(identity.EmployeeID),
		"company_id":  valueOrNil(identity.OrganizationID),
		"role":        string(identity.Role),
		"type":        "access",
		"exp":         expiresAt,
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

// IdentityFromClaims reads the principal out of verified access token claims.
func IdentityFromClaims(claims map[string]interface{}) user.Identity {
	var identity user.Identity
	identity.UserID, _ = claims["user_id"].(string)
	identity.EmployeeID, _ = claims["employee_id"].(string)
	identity.OrganizationID, _ = claims["company_id"].(string)
	role, _ := claims["role"].(string)
	identity.Role = user.Role(role)
	return identity
}

func valueOrNil(value string) interface{} {
	if value == "" {
		return nil
	}
	return value
}
