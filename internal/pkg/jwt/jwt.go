package jwt

import (
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/kantor-hq/hr-backoffice-go/internal/domain/employee"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Service verifies the access tokens issued by the identity provider and can
// mint them itself for tests and operational tooling.
type Service interface {
	GenerateAccessToken(employeeID string, role employee.Role) (token string, expiresAt int64, err error)
	ValidateAccessToken(tokenString string) (employeeID string, role employee.Role, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	secretKey                 string
	accessTokenExpirationTime string
	tokenAuth                 *jwtauth.JWTAuth
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime string) Service {
	return &JWTService{
		secretKey:                 secretKey,
		accessTokenExpirationTime: accessTokenExpirationTime,
		tokenAuth:                 jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) GenerateAccessToken(employeeID string, role employee.Role) (token string, expiresAt int64, err error) {
	expDuration, err := time.ParseDuration(j.accessTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	expiresAt = time.Now().Add(expDuration).Unix()

	claims := map[string]interface{}{
		"employee_id": employeeID,
		"role":        string(role),
		"is_admin":    role == employee.RoleAdmin,
		"type":        "access",
		"exp":         expiresAt,
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

func (j *JWTService) ValidateAccessToken(tokenString string) (string, employee.Role, error) {
	token, err := j.tokenAuth.Decode(tokenString)
	if err != nil {
		return "", "", err
	}

	tokenType, ok := token.Get("type")
	if !ok || tokenType != "access" {
		return "", "", jwt.ErrInvalidJWT()
	}

	employeeIDVal, ok := token.Get("employee_id")
	if !ok {
		return "", "", jwt.ErrInvalidJWT()
	}
	employeeID, ok := employeeIDVal.(string)
	if !ok {
		return "", "", jwt.ErrInvalidJWT()
	}

	roleVal, ok := token.Get("role")
	if !ok {
		return "", "", jwt.ErrInvalidJWT()
	}
	roleStr, ok := roleVal.(string)
	if !ok {
		return "", "", jwt.ErrInvalidJWT()
	}

	return employeeID, employee.Role(roleStr), nil
}
