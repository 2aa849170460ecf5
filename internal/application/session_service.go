package application

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/budget-ledger-api/internal/domain/entity"
	repo "github.com/oksasatya/budget-ledger-api/internal/domain/repository"
	"github.com/oksasatya/budget-ledger-api/pkg/apperror"
)

// DefaultSessionTTL is the session row lifetime, shared with the refresh token.
const DefaultSessionTTL = 7 * 24 * time.Hour

type TokenPair struct {
	AccessToken  string
	RefreshToken string
	// RefreshExp is the session row expiry; the refresh cookie lives exactly as long.
	RefreshExp time.Time
}

// SessionService creates sessions at signin and redeems them for access tokens.
// Refresh never rotates the refresh token nor extends the session.
type SessionService struct {
	Sessions repo.SessionRepository
	Tokens   TokenCodec
	TTL      time.Duration
	Now      func() time.Time
	Logger   logrus.FieldLogger
}

func NewSessionService(sessions repo.SessionRepository, tokens TokenCodec, ttl time.Duration, logger logrus.FieldLogger) *SessionService {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionService{Sessions: sessions, Tokens: tokens, TTL: ttl, Now: time.Now, Logger: logger}
}

func (s *SessionService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// NewSession persists a session for userID and issues both tokens: the access
// token is bound to the user, the refresh token to the session id.
func (s *SessionService) NewSession(ctx context.Context, userID uuid.UUID, userAgent string) (TokenPair, error) {
	sess := &entity.Session{UserID: userID, UserAgent: userAgent, Exp: s.now().Add(s.TTL)}
	if err := s.Sessions.Create(ctx, sess); err != nil {
		return TokenPair{}, apperror.Internal(err)
	}

	owner, err := s.Sessions.GetOwnerBySessionID(ctx, sess.ID)
	if errors.Is(err, repo.ErrNotFound) {
		return TokenPair{}, apperror.Unauthorized()
	}
	if err != nil {
		return TokenPair{}, apperror.Internal(err)
	}

	access, _, err := s.Tokens.IssueAccess(owner.ID, owner.Email)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, _, err := s.Tokens.IssueRefresh(sess.ID)
	if err != nil {
		return TokenPair{}, err
	}

	s.Logger.WithFields(logrus.Fields{"user_id": owner.ID, "session_id": sess.ID}).Info("session created")
	return TokenPair{AccessToken: access, RefreshToken: refresh, RefreshExp: sess.Exp}, nil
}

// RefreshAccessToken mints a new access token for the live owner of sessionID.
// Expired and unknown sessions are both Unauthorized.
func (s *SessionService) RefreshAccessToken(ctx context.Context, sessionID uuid.UUID) (UserView, error) {
	owner, err := s.Sessions.GetOwnerBySessionID(ctx, sessionID)
	if errors.Is(err, repo.ErrNotFound) {
		return UserView{}, apperror.Unauthorized()
	}
	if err != nil {
		return UserView{}, apperror.Internal(err)
	}

	access, _, err := s.Tokens.IssueAccess(owner.ID, owner.Email)
	if err != nil {
		return UserView{}, err
	}
	s.Logger.WithField("session_id", sessionID).Debug("access token refreshed")
	return NewUserView(owner, access), nil
}
