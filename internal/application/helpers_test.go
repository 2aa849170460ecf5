package application

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oksasatya/budget-ledger-api/internal/domain/entity"
	"github.com/oksasatya/budget-ledger-api/internal/infrastructure/memory"
	"github.com/oksasatya/budget-ledger-api/pkg/helpers"
)

type clock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []Notification
	err  error
}

func (r *recordingNotifier) Notify(_ context.Context, n Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, n)
	return r.err
}

func (r *recordingNotifier) kinds() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.sent))
	for _, n := range r.sent {
		out = append(out, n.Kind)
	}
	return out
}

type memoryDirectory struct {
	mu    sync.Mutex
	users map[string]UserHit
}

func (d *memoryDirectory) Index(_ context.Context, u *entity.User) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.users == nil {
		d.users = map[string]UserHit{}
	}
	d.users[u.ID.String()] = UserHit{ID: u.ID.String(), Name: u.Name, Email: u.Email, Image: u.Image}
	return nil
}

func (d *memoryDirectory) Search(_ context.Context, q string, _ int) ([]UserHit, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := []UserHit{}
	for _, h := range d.users {
		if h.Email == q || h.Name == q {
			out = append(out, h)
		}
	}
	return out, nil
}

type env struct {
	svc        *Services
	store      *memory.Store
	tokens     *helpers.JWTManager
	tokenClock *clock
	storeClock *clock
	notifier   *recordingNotifier
	directory  *memoryDirectory
}

const sessionTTL = 7 * 24 * time.Hour

// newEnv wires the services over the in-memory store with two independent clocks.
func newEnv(t *testing.T) *env {
	t.Helper()
	start := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	tokenClock := &clock{t: start}
	storeClock := &clock{t: start}

	tokens := helpers.NewJWTManager("access-secret", "refresh-secret", time.Hour, sessionTTL)
	tokens.Now = tokenClock.Now
	store := memory.NewStore(storeClock.Now)
	notifier := &recordingNotifier{}
	directory := &memoryDirectory{}

	svc := NewServices(Deps{
		Repos: Repositories{
			Users:      store.Users(),
			Sessions:   store.Sessions(),
			Categories: store.Categories(),
			Budgets:    store.Budgets(),
			Expenses:   store.Expenses(),
		},
		Tokens:     tokens,
		Hasher:     helpers.NewPasswordHasher("test-salt-value", helpers.Argon2Params{Time: 1, Memory: 64, Threads: 1}, 2),
		SessionTTL: sessionTTL,
		Notifier:   notifier,
		Directory:  directory,
		Now:        storeClock.Now,
	})
	return &env{
		svc:        svc,
		store:      store,
		tokens:     tokens,
		tokenClock: tokenClock,
		storeClock: storeClock,
		notifier:   notifier,
		directory:  directory,
	}
}

func (e *env) signup(t *testing.T, email, name, password string) UserView {
	t.Helper()
	v, err := e.svc.Users.Signup(context.Background(), SignupInput{Email: email, Name: name, Password: password})
	require.NoError(t, err)
	return v
}

func (e *env) signin(t *testing.T, email, password string) (UserView, TokenPair) {
	t.Helper()
	v, pair, err := e.svc.Users.Signin(context.Background(), SigninInput{Email: email, Password: password, UserAgent: "test-agent"})
	require.NoError(t, err)
	return v, pair
}

func ptr[T any](v T) *T { return &v }
