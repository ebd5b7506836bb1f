package helpers

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenValidity is how long an issued access token stays valid.
const TokenValidity = 24 * time.Hour

var ErrInvalidSubject = errors.New("token subject is not a user id")

// JWTManager issues and verifies HS256 bearer tokens
type JWTManager struct {
	secret []byte
	now    func() time.Time
}

func NewJWTManager(secret string) *JWTManager {
	return &JWTManager{secret: []byte(secret), now: time.Now}
}

// WithClock returns a copy of m that reads the current time from now.
func (m *JWTManager) WithClock(now func() time.Time) *JWTManager {
	return &JWTManager{secret: m.secret, now: now}
}

type Claims struct {
	jwt.RegisteredClaims
}

// UserID returns the subject as a numeric user id.
func (c *Claims) UserID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidSubject
	}
	return id, nil
}

// SubjectFor formats a user id as a token subject.
func SubjectFor(userID int64) string {
	return strconv.FormatInt(userID, 10)
}

// Issue signs a token for subject that expires TokenValidity from now.
func (m *JWTManager) Issue(subject string) (string, time.Time, error) {
	now := m.now()
	exp := now.Add(TokenValidity)
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := t.SignedString(m.secret)
	return s, exp, err
}

// Parse verifies signature and expiry and returns the claims.
func (m *JWTManager) Parse(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, err
	}
	if !tkn.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
