package session

import (
	"flowdesk/bizerror"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const DefaultTokenExpiration = 7 * 24 * time.Hour

var (
	// TokenSecret is set once at process start, fatal when left empty.
	TokenSecret     []byte
	TokenExpiration = DefaultTokenExpiration
)

type TokenClaims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

func SignToken(identity Identity, signingTime time.Time) (string, error) {
	claims := TokenClaims{
		UserID: identity.ID,
		Email:  identity.Email,
		Role:   identity.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(signingTime),
			ExpiresAt: jwt.NewNumericDate(signingTime.Add(TokenExpiration)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(TokenSecret)
}

// VerifyToken checks the signature and expiry, returning the embedded
// identity. Any failure is reported as bizerror.ErrUnauthenticated.
func VerifyToken(token string) (*TokenClaims, error) {
	claims := TokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, bizerror.ErrUnauthenticated
		}
		return TokenSecret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, bizerror.ErrUnauthenticated
	}
	return &claims, nil
}
