package helpers

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/budget-ledger-api/pkg/apperror"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestJWT(clock *fakeClock) *JWTManager {
	m := NewJWTManager("access-secret", "refresh-secret", 15*time.Minute, 168*time.Hour)
	m.Now = clock.Now
	return m
}

func TestAccessTokenRoundTrip(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	m := newTestJWT(clock)
	uid := uuid.New()

	tok, exp, err := m.IssueAccess(uid, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, clock.t.Add(15*time.Minute), exp)

	id, err := m.DecodeAccess(tok)
	require.NoError(t, err)
	assert.Equal(t, uid, id.UserID)
	assert.Equal(t, "a@x.com", id.Email)
}

func TestAccessTokenExpires(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	m := newTestJWT(clock)

	tok, _, err := m.IssueAccess(uuid.New(), "a@x.com")
	require.NoError(t, err)

	clock.Advance(16 * time.Minute)
	_, err = m.DecodeAccess(tok)
	assert.True(t, apperror.Is(err, apperror.KindUnauthorized))
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	m := newTestJWT(clock)
	sid := uuid.New()

	tok, _, err := m.IssueRefresh(sid)
	require.NoError(t, err)

	got, err := m.DecodeRefresh(tok)
	require.NoError(t, err)
	assert.Equal(t, sid, got)
}

func TestTokenKindsAreNotInterchangeable(t *testing.T) {
	m := newTestJWT(&fakeClock{t: time.Now()})

	access, _, err := m.IssueAccess(uuid.New(), "a@x.com")
	require.NoError(t, err)
	refresh, _, err := m.IssueRefresh(uuid.New())
	require.NoError(t, err)

	_, err = m.DecodeRefresh(access)
	assert.True(t, apperror.Is(err, apperror.KindUnauthorized))
	_, err = m.DecodeAccess(refresh)
	assert.True(t, apperror.Is(err, apperror.KindUnauthorized))
}

func TestDecodeRejectsTamperedAndGarbage(t *testing.T) {
	m := newTestJWT(&fakeClock{t: time.Now()})
	tok, _, err := m.IssueAccess(uuid.New(), "a@x.com")
	require.NoError(t, err)

	other := NewJWTManager("other-secret", "refresh-secret", time.Minute, time.Hour)
	forged, _, err := other.IssueAccess(uuid.New(), "evil@x.com")
	require.NoError(t, err)

	for _, bad := range []string{"", "garbage", tok + "x", forged} {
		_, err := m.DecodeAccess(bad)
		assert.True(t, apperror.Is(err, apperror.KindUnauthorized), "token %q", bad)
	}
}

func TestDecodeRejectsOtherAlgorithms(t *testing.T) {
	m := newTestJWT(&fakeClock{t: time.Now()})
	claims := &AccessClaims{
		UserID: uuid.New(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "a@x.com",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString(m.AccessSecret)
	require.NoError(t, err)

	_, err = m.DecodeAccess(tok)
	assert.True(t, apperror.Is(err, apperror.KindUnauthorized))
}

func TestDecodeRequiresExpiry(t *testing.T) {
	m := newTestJWT(&fakeClock{t: time.Now()})
	claims := &AccessClaims{UserID: uuid.New(), RegisteredClaims: jwt.RegisteredClaims{Subject: "a@x.com"}}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.AccessSecret)
	require.NoError(t, err)

	_, err = m.DecodeAccess(tok)
	assert.True(t, apperror.Is(err, apperror.KindUnauthorized))
}
