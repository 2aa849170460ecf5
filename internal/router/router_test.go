package router

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/oksasatya/budget-ledger-api/config"
	"github.com/oksasatya/budget-ledger-api/internal/container"
	"github.com/oksasatya/budget-ledger-api/internal/interface/middleware"
	"github.com/oksasatya/budget-ledger-api/pkg/helpers"
	"github.com/oksasatya/budget-ledger-api/pkg/validation"
)

func init() {
	gin.SetMode(gin.TestMode)
	validation.Init()
}

type APISuite struct {
	suite.Suite
	app    *container.Container
	engine *gin.Engine
}

func TestAPISuite(t *testing.T) {
	suite.Run(t, new(APISuite))
}

func (s *APISuite) SetupTest() {
	cfg := config.Load()
	cfg.Storage = container.StorageMemory
	cfg.RedisAddr = ""
	cfg.RabbitMQURL = ""
	cfg.ElasticsearchAddrs = ""
	cfg.GCSBucket = ""
	cfg.ArgonTime = 1
	cfg.ArgonMemoryKB = 64
	cfg.DebugMetricsEnabled = true

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	app, err := container.New(context.Background(), cfg, logger)
	s.Require().NoError(err)
	s.app = app

	r := gin.New()
	r.Use(middleware.RealIP(), middleware.RequestIDMiddleware(logger))
	reg := NewRegistry(r)
	InitModules(reg, app)
	reg.RegisterAll()
	s.engine = r
}

func (s *APISuite) TearDownTest() { s.app.Close() }

type reqOpt func(*http.Request)

func bearer(tok string) reqOpt {
	return func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+tok) }
}

func withCookie(c *http.Cookie) reqOpt {
	return func(r *http.Request) { r.AddCookie(c) }
}

func userAgent(ua string) reqOpt {
	return func(r *http.Request) { r.Header.Set("User-Agent", ua) }
}

func (s *APISuite) do(method, path string, body any, opts ...reqOpt) *httptest.ResponseRecorder {
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		s.Require().NoError(err)
		rdr = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, o := range opts {
		o(req)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

type userBody struct {
	User struct {
		ID          uuid.UUID `json:"id"`
		Email       string    `json:"email"`
		Name        string    `json:"name"`
		AccessToken string    `json:"access_token"`
	} `json:"user"`
}

type errBody struct {
	Errors map[string][]string `json:"errors"`
}

func decode[T any](t require.TestingT, w *httptest.ResponseRecorder) T {
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func refreshCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == helpers.RefreshCookie {
			return c
		}
	}
	return nil
}

// signup + signin, returning the access token and refresh cookie.
func (s *APISuite) login(email string) (string, *http.Cookie) {
	w := s.do(http.MethodPost, "/api/v1/users/signup", gin.H{"name": "N", "email": email, "password": "secret1"})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	w = s.do(http.MethodPost, "/api/v1/users/signin", gin.H{"email": email, "password": "secret1"}, userAgent("go-test"))
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	return decode[userBody](s.T(), w).User.AccessToken, refreshCookie(w)
}

func (s *APISuite) TestSignupSigninWhoAmIRefreshSignout() {
	w := s.do(http.MethodPost, "/api/v1/users/signup", gin.H{"name": "A", "email": "a@x.com", "password": "secret1"})
	s.Require().Equal(http.StatusOK, w.Code)
	s.Empty(decode[userBody](s.T(), w).User.AccessToken)

	w = s.do(http.MethodPost, "/api/v1/users/signin", gin.H{"email": "a@x.com", "password": "secret1"})
	s.Equal(http.StatusUnauthorized, w.Code, "signin needs a user agent")

	w = s.do(http.MethodPost, "/api/v1/users/signin", gin.H{"email": "a@x.com", "password": "secret1"}, userAgent("go-test"))
	s.Require().Equal(http.StatusOK, w.Code)
	access := decode[userBody](s.T(), w).User.AccessToken
	cookie := refreshCookie(w)
	s.Require().NotEmpty(access)
	s.Require().NotNil(cookie)
	s.True(cookie.HttpOnly)
	s.NotEqual(access, cookie.Value)

	w = s.do(http.MethodGet, "/api/v1/users/whoami", nil, bearer(access))
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal("a@x.com", decode[userBody](s.T(), w).User.Email)

	w = s.do(http.MethodGet, "/api/v1/users/refresh", nil, withCookie(cookie))
	s.Require().Equal(http.StatusOK, w.Code)
	s.NotEmpty(decode[userBody](s.T(), w).User.AccessToken)
	again := refreshCookie(w)
	s.Require().NotNil(again)
	s.Equal(cookie.Value, again.Value, "refresh re-sets the same cookie")

	w = s.do(http.MethodPost, "/api/v1/users/signout", nil, withCookie(cookie))
	s.Require().Equal(http.StatusOK, w.Code)
	cleared := refreshCookie(w)
	s.Require().NotNil(cleared)
	s.Empty(cleared.Value)
	s.Less(cleared.MaxAge, 0)
}

func (s *APISuite) TestCredentialErrors() {
	s.login("a@x.com")

	w := s.do(http.MethodPost, "/api/v1/users/signin", gin.H{"email": "a@x.com", "password": "wrong-pass"}, userAgent("ua"))
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal([]string{"username or password is incorrect"}, decode[errBody](s.T(), w).Errors["message"])
	s.Nil(refreshCookie(w))

	w = s.do(http.MethodPost, "/api/v1/users/signin", gin.H{"email": "nobody@x.com", "password": "secret1"}, userAgent("ua"))
	s.Equal(http.StatusNotFound, w.Code)

	w = s.do(http.MethodPost, "/api/v1/users/signup", gin.H{"name": "B", "email": "a@x.com", "password": "secret1"})
	s.Equal(http.StatusConflict, w.Code)
	s.Equal([]string{"email is taken"}, decode[errBody](s.T(), w).Errors["message"])
}

func (s *APISuite) TestValidationReportsEveryField() {
	w := s.do(http.MethodPost, "/api/v1/users/signup", gin.H{"name": "", "email": "nope", "password": "123"})
	s.Require().Equal(http.StatusBadRequest, w.Code)
	errs := decode[errBody](s.T(), w).Errors
	s.Contains(errs, "name")
	s.Contains(errs, "email")
	s.Contains(errs, "password")

	w = s.do(http.MethodPost, "/api/v1/users/signup", nil)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *APISuite) TestProtectedRoutesNeedBearer() {
	for _, path := range []string{"/api/v1/users/whoami", "/api/v1/categories", "/api/v1/budgets", "/api/v1/expenses"} {
		w := s.do(http.MethodGet, path, nil)
		s.Equal(http.StatusUnauthorized, w.Code, path)
	}
	w := s.do(http.MethodGet, "/api/v1/users/refresh", nil)
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *APISuite) TestUpdateIsPartial() {
	access, _ := s.login("a@x.com")

	w := s.do(http.MethodPut, "/api/v1/users", gin.H{"name": "Ann", "password": ""}, bearer(access))
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	body := decode[userBody](s.T(), w)
	s.Equal("Ann", body.User.Name)
	s.Equal("a@x.com", body.User.Email)

	w = s.do(http.MethodPost, "/api/v1/users/signin", gin.H{"email": "a@x.com", "password": "secret1"}, userAgent("ua"))
	s.Equal(http.StatusOK, w.Code, "empty password keeps the old one")
}

func (s *APISuite) TestLedgerOwnership() {
	alice, _ := s.login("alice@x.com")
	bob, _ := s.login("bob@x.com")

	w := s.do(http.MethodPost, "/api/v1/categories", gin.H{"name": "Rent", "cat_type": "Essential"}, bearer(bob))
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	cat := decode[struct {
		ID uuid.UUID `json:"id"`
	}](s.T(), w)

	w = s.do(http.MethodPost, "/api/v1/budgets", gin.H{"category_id": cat.ID, "amount": 900}, bearer(bob))
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	budget := decode[struct {
		ID   uuid.UUID `json:"id"`
		Plan string    `json:"plan"`
	}](s.T(), w)
	s.Equal("Monthly", budget.Plan)

	w = s.do(http.MethodGet, "/api/v1/budgets?budget_id="+budget.ID.String(), nil, bearer(bob))
	s.Require().Equal(http.StatusOK, w.Code)
	s.Len(decode[[]map[string]any](s.T(), w), 1)

	// alice cannot touch bob's data
	s.Equal(http.StatusForbidden, s.do(http.MethodGet, "/api/v1/categories?category_id="+cat.ID.String(), nil, bearer(alice)).Code)
	s.Equal(http.StatusForbidden, s.do(http.MethodPut, "/api/v1/categories/"+cat.ID.String(), gin.H{"name": "mine"}, bearer(alice)).Code)
	s.Equal(http.StatusForbidden, s.do(http.MethodDelete, "/api/v1/budgets/"+budget.ID.String(), nil, bearer(alice)).Code)
	s.Equal(http.StatusForbidden, s.do(http.MethodPost, "/api/v1/expenses", gin.H{"category_id": cat.ID, "amount": 1}, bearer(alice)).Code)

	// missing beats foreign
	s.Equal(http.StatusNotFound, s.do(http.MethodDelete, "/api/v1/categories/"+uuid.NewString(), nil, bearer(alice)).Code)
	s.Equal(http.StatusBadRequest, s.do(http.MethodDelete, "/api/v1/categories/not-a-uuid", nil, bearer(alice)).Code)

	w = s.do(http.MethodGet, "/api/v1/budgets", nil, bearer(alice))
	s.Require().Equal(http.StatusOK, w.Code)
	s.JSONEq("[]", w.Body.String())

	s.Equal(http.StatusOK, s.do(http.MethodDelete, "/api/v1/categories/"+cat.ID.String(), nil, bearer(bob)).Code)
	s.Equal(http.StatusNotFound, s.do(http.MethodGet, "/api/v1/budgets?budget_id="+budget.ID.String(), nil, bearer(bob)).Code)
}

func (s *APISuite) TestLedgerValidation() {
	access, _ := s.login("a@x.com")

	w := s.do(http.MethodPost, "/api/v1/budgets", gin.H{"category_id": "x", "amount": -1, "plan": "Yearly"}, bearer(access))
	s.Require().Equal(http.StatusBadRequest, w.Code)
	errs := decode[errBody](s.T(), w).Errors
	s.Contains(errs, "category_id")
	s.Contains(errs, "amount")
	s.Contains(errs, "plan")

	w = s.do(http.MethodPost, "/api/v1/categories", gin.H{"name": "Fun", "cat_type": "Luxury"}, bearer(access))
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *APISuite) TestSearchWithoutDirectoryIsEmpty() {
	access, _ := s.login("a@x.com")
	w := s.do(http.MethodGet, "/api/v1/users/search?q=a", nil, bearer(access))
	s.Require().Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"users":[]}`, w.Body.String())

	w = s.do(http.MethodGet, "/api/v1/users/search?q=a&size=ten", nil, bearer(access))
	s.Require().Equal(http.StatusBadRequest, w.Code)
	s.Equal([]string{"size must be a number"}, decode[errBody](s.T(), w).Errors["size"])
}

func (s *APISuite) TestOperationalRoutes() {
	s.Equal(http.StatusOK, s.do(http.MethodGet, "/health", nil).Code)
	s.Equal(http.StatusOK, s.do(http.MethodGet, "/debug/vars", nil).Code)

	w := s.do(http.MethodGet, "/api/v1/nope", nil)
	s.Equal(http.StatusNotFound, w.Code)
	s.NotEmpty(decode[errBody](s.T(), w).Errors["message"])
}
