package application

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/budget-ledger-api/internal/domain/entity"
	repo "github.com/oksasatya/budget-ledger-api/internal/domain/repository"
	"github.com/oksasatya/budget-ledger-api/pkg/apperror"
)

const (
	msgEmailTaken   = "email is taken"
	msgEmailUnknown = "user email does not exist"
	msgUserNotFound = "user was not found"
)

var errAvatarsDisabled = errors.New("avatar storage is not configured")

// UserService is the credential service: signup, signin, profile reads and updates.
type UserService struct {
	Users    repo.UserRepository
	Hasher   PasswordHasher
	Tokens   TokenCodec
	Sessions *SessionService

	// Optional collaborators; nil disables the feature.
	Notifier  Notifier
	Directory UserDirectory
	Avatars   AvatarStore

	Logger logrus.FieldLogger
	Now    func() time.Time
}

type SignupInput struct {
	Name     string
	Email    string
	Password string
}

type SigninInput struct {
	Email     string
	Password  string
	UserAgent string
	IP        string
}

// UpdateInput: nil fields keep the stored value. An empty Password also keeps it.
type UpdateInput struct {
	Name     *string
	Email    *string
	Password *string
	Bio      *string
	Image    *string
}

func (s *UserService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Signup creates the user. No tokens are issued; the client signs in next.
func (s *UserService) Signup(ctx context.Context, in SignupInput) (UserView, error) {
	_, err := s.Users.GetByEmail(ctx, in.Email)
	switch {
	case err == nil:
		return UserView{}, apperror.Conflict(msgEmailTaken)
	case !errors.Is(err, repo.ErrNotFound):
		return UserView{}, apperror.Internal(err)
	}

	hash, err := s.Hasher.Hash(ctx, in.Password)
	if err != nil {
		return UserView{}, err
	}

	u := &entity.User{Name: in.Name, Email: in.Email, Password: hash}
	if err := s.Users.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return UserView{}, apperror.Conflict(msgEmailTaken)
		}
		return UserView{}, apperror.Internal(err)
	}

	s.Logger.WithField("user_id", u.ID).Info("user signed up")
	s.index(ctx, u)
	s.notify(ctx, Notification{Kind: NotifyWelcome, Name: u.Name, Email: u.Email})
	return NewUserView(u, ""), nil
}

// Signin verifies credentials and opens a session. It returns the view carrying
// the access token plus the refresh token for the cookie.
func (s *UserService) Signin(ctx context.Context, in SigninInput) (UserView, TokenPair, error) {
	u, err := s.Users.GetByEmail(ctx, in.Email)
	if errors.Is(err, repo.ErrNotFound) {
		return UserView{}, TokenPair{}, apperror.NotFound(msgEmailUnknown)
	}
	if err != nil {
		return UserView{}, TokenPair{}, apperror.Internal(err)
	}

	ok, err := s.Hasher.Verify(ctx, u.Password, in.Password)
	if err != nil {
		return UserView{}, TokenPair{}, err
	}
	if !ok {
		s.Logger.WithField("user_id", u.ID).Debug("signin rejected")
		return UserView{}, TokenPair{}, apperror.InvalidCredentials()
	}

	pair, err := s.Sessions.NewSession(ctx, u.ID, in.UserAgent)
	if err != nil {
		return UserView{}, TokenPair{}, err
	}

	s.notify(ctx, Notification{Kind: NotifyLogin, Name: u.Name, Email: u.Email, UserAgent: in.UserAgent, IP: in.IP})
	return NewUserView(u, pair.AccessToken), pair, nil
}

// CurrentUser always mints a fresh access token bound to the stored email.
func (s *UserService) CurrentUser(ctx context.Context, userID uuid.UUID) (UserView, error) {
	u, err := s.get(ctx, userID)
	if err != nil {
		return UserView{}, err
	}
	return s.viewWithToken(u)
}

// ResolveUser returns the live user behind an access token. A user that no
// longer exists is Unauthorized, not NotFound.
func (s *UserService) ResolveUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, apperror.Unauthorized()
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return u, nil
}

func (s *UserService) Update(ctx context.Context, userID uuid.UUID, in UpdateInput) (UserView, error) {
	u, err := s.get(ctx, userID)
	if err != nil {
		return UserView{}, err
	}

	changes := map[string]string{}
	if in.Email != nil && *in.Email != u.Email {
		other, err := s.Users.GetByEmail(ctx, *in.Email)
		switch {
		case err == nil && other.ID != u.ID:
			return UserView{}, apperror.Conflict(msgEmailTaken)
		case err != nil && !errors.Is(err, repo.ErrNotFound):
			return UserView{}, apperror.Internal(err)
		}
		u.Email = *in.Email
		changes["email"] = u.Email
	}
	if in.Name != nil && *in.Name != u.Name {
		u.Name = *in.Name
		changes["name"] = u.Name
	}
	if in.Bio != nil && *in.Bio != u.Bio {
		u.Bio = *in.Bio
		changes["bio"] = u.Bio
	}
	if in.Image != nil && *in.Image != u.Image {
		u.Image = *in.Image
		changes["image"] = u.Image
	}
	if in.Password != nil && *in.Password != "" {
		hash, err := s.Hasher.Hash(ctx, *in.Password)
		if err != nil {
			return UserView{}, err
		}
		u.Password = hash
		changes["password"] = "changed"
	}

	if err := s.Users.Update(ctx, u); err != nil {
		switch {
		case errors.Is(err, repo.ErrDuplicate):
			return UserView{}, apperror.Conflict(msgEmailTaken)
		case errors.Is(err, repo.ErrNotFound):
			return UserView{}, apperror.NotFound(msgUserNotFound)
		}
		return UserView{}, apperror.Internal(err)
	}

	if len(changes) > 0 {
		s.Logger.WithField("user_id", u.ID).Info("profile updated")
		s.index(ctx, u)
		s.notify(ctx, Notification{Kind: NotifyProfileUpdated, Name: u.Name, Email: u.Email, Changes: changes})
	}
	return s.viewWithToken(u)
}

// UploadAvatar stores the image and points the profile at it.
func (s *UserService) UploadAvatar(ctx context.Context, userID uuid.UUID, filename, contentType string, r io.Reader) (UserView, error) {
	if s.Avatars == nil {
		return UserView{}, apperror.Internal(errAvatarsDisabled)
	}
	if _, err := s.get(ctx, userID); err != nil {
		return UserView{}, err
	}
	url, err := s.Avatars.Upload(ctx, userID, filename, contentType, r)
	if err != nil {
		return UserView{}, apperror.Internal(err)
	}
	return s.Update(ctx, userID, UpdateInput{Image: &url})
}

// SearchUsers queries the user directory. Without one the result is empty.
func (s *UserService) SearchUsers(ctx context.Context, q string, size int) ([]UserHit, error) {
	if s.Directory == nil {
		return []UserHit{}, nil
	}
	hits, err := s.Directory.Search(ctx, q, size)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return hits, nil
}

func (s *UserService) get(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, apperror.NotFound(msgUserNotFound)
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return u, nil
}

func (s *UserService) viewWithToken(u *entity.User) (UserView, error) {
	access, _, err := s.Tokens.IssueAccess(u.ID, u.Email)
	if err != nil {
		return UserView{}, err
	}
	return NewUserView(u, access), nil
}

func (s *UserService) index(ctx context.Context, u *entity.User) {
	if s.Directory == nil {
		return
	}
	if err := s.Directory.Index(ctx, u); err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("user index failed")
	}
}

func (s *UserService) notify(ctx context.Context, n Notification) {
	if s.Notifier == nil {
		return
	}
	n.At = s.now()
	if err := s.Notifier.Notify(ctx, n); err != nil {
		s.Logger.WithError(err).WithField("kind", n.Kind).Warn("notification not queued")
	}
}
