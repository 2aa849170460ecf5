package helpers

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/oksasatya/budget-ledger-api/pkg/apperror"
)

// JWTManager issues and decodes the two token kinds. Access and refresh tokens
// are signed with separate secrets so one leaking never validates the other.
type JWTManager struct {
	AccessSecret  []byte
	RefreshSecret []byte
	AccessTTL     time.Duration
	RefreshTTL    time.Duration

	// Now is the token clock. Defaults to time.Now.
	Now func() time.Time
}

func NewJWTManager(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *JWTManager {
	return &JWTManager{
		AccessSecret:  []byte(accessSecret),
		RefreshSecret: []byte(refreshSecret),
		AccessTTL:     accessTTL,
		RefreshTTL:    refreshTTL,
	}
}

// AccessClaims: sub is the user's email.
type AccessClaims struct {
	UserID uuid.UUID `json:"user_id"`
	jwt.RegisteredClaims
}

// RefreshClaims: sub is the session id.
type RefreshClaims struct {
	jwt.RegisteredClaims
}

// AccessIdentity is what a valid access token proves.
type AccessIdentity struct {
	UserID uuid.UUID
	Email  string
}

var errMalformedSubject = errors.New("token subject is not a session id")

func (m *JWTManager) now() time.Time {
	if m.Now != nil {
		return m.Now()
	}
	return time.Now()
}

func (m *JWTManager) IssueAccess(userID uuid.UUID, email string) (string, time.Time, error) {
	now := m.now()
	exp := now.Add(m.AccessTTL)
	claims := &AccessClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.AccessSecret)
	if err != nil {
		return "", time.Time{}, apperror.Internal(err)
	}
	return s, exp, nil
}

func (m *JWTManager) IssueRefresh(sessionID uuid.UUID) (string, time.Time, error) {
	now := m.now()
	exp := now.Add(m.RefreshTTL)
	claims := &RefreshClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sessionID.String(),
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.RefreshSecret)
	if err != nil {
		return "", time.Time{}, apperror.Internal(err)
	}
	return s, exp, nil
}

// DecodeAccess verifies signature and expiry. Any failure is Unauthorized.
func (m *JWTManager) DecodeAccess(token string) (AccessIdentity, error) {
	claims := &AccessClaims{}
	if err := m.parse(token, claims, m.AccessSecret); err != nil {
		return AccessIdentity{}, err
	}
	if claims.UserID == uuid.Nil {
		return AccessIdentity{}, apperror.Unauthorized()
	}
	return AccessIdentity{UserID: claims.UserID, Email: claims.Subject}, nil
}

// DecodeRefresh verifies a refresh token and returns the session id it is bound to.
func (m *JWTManager) DecodeRefresh(token string) (uuid.UUID, error) {
	claims := &RefreshClaims{}
	if err := m.parse(token, claims, m.RefreshSecret); err != nil {
		return uuid.Nil, err
	}
	sid, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, apperror.UnauthorizedCause(errMalformedSubject)
	}
	return sid, nil
}

func (m *JWTManager) parse(token string, claims jwt.Claims, secret []byte) error {
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return apperror.UnauthorizedCause(err)
	}
	if !tkn.Valid {
		return apperror.Unauthorized()
	}
	return nil
}
