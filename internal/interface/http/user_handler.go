package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/budget-ledger-api/internal/application"
	"github.com/oksasatya/budget-ledger-api/internal/interface/middleware"
	"github.com/oksasatya/budget-ledger-api/pkg/apperror"
	"github.com/oksasatya/budget-ledger-api/pkg/helpers"
	"github.com/oksasatya/budget-ledger-api/pkg/response"
	"github.com/oksasatya/budget-ledger-api/pkg/validation"
)

var errMissingUserAgent = errors.New("user-agent header missing")

type UserHandler struct {
	Users          *application.UserService
	Sessions       *application.SessionService
	Cookies        *helpers.CookieManager
	AvatarMaxBytes int64
}

func NewUserHandler(users *application.UserService, sessions *application.SessionService, cookies *helpers.CookieManager, avatarMaxBytes int64) *UserHandler {
	return &UserHandler{Users: users, Sessions: sessions, Cookies: cookies, AvatarMaxBytes: avatarMaxBytes}
}

type signupRequest struct {
	Name     string `json:"name" binding:"required,min=1"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
}

type signinRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
}

// An empty password is accepted and means "keep the current one".
type updateUserRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=1"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Password string  `json:"password" binding:"omitempty,pwd"`
	Bio      *string `json:"bio"`
	Image    *string `json:"image"`
}

func (h *UserHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := validation.Bind(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	view, err := h.Users.Signup(c.Request.Context(), application.SignupInput{Name: req.Name, Email: req.Email, Password: req.Password})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, application.UserEnvelope{User: view})
}

// Signin requires a User-Agent, which is recorded on the session row.
func (h *UserHandler) Signin(c *gin.Context) {
	ua := c.GetHeader("User-Agent")
	if ua == "" {
		response.Error(c, apperror.UnauthorizedCause(errMissingUserAgent))
		return
	}
	var req signinRequest
	if err := validation.Bind(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	view, pair, err := h.Users.Signin(c.Request.Context(), application.SigninInput{
		Email:     req.Email,
		Password:  req.Password,
		UserAgent: ua,
		IP:        middleware.ClientIP(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	h.Cookies.SetRefresh(c, pair.RefreshToken, pair.RefreshExp)
	response.JSON(c, http.StatusOK, application.UserEnvelope{User: view})
}

func (h *UserHandler) WhoAmI(c *gin.Context) {
	uid, ok := actingUser(c)
	if !ok {
		return
	}
	view, err := h.Users.CurrentUser(c.Request.Context(), uid)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, application.UserEnvelope{User: view})
}

func (h *UserHandler) Update(c *gin.Context) {
	uid, ok := actingUser(c)
	if !ok {
		return
	}
	var req updateUserRequest
	if err := validation.Bind(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	in := application.UpdateInput{Name: req.Name, Email: req.Email, Bio: req.Bio, Image: req.Image}
	if req.Password != "" {
		in.Password = &req.Password
	}
	view, err := h.Users.Update(c.Request.Context(), uid, in)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, application.UserEnvelope{User: view})
}

// Refresh mints a new access token and sets the same refresh cookie again.
func (h *UserHandler) Refresh(c *gin.Context) {
	sid, raw, ok := middleware.Session(c)
	if !ok {
		response.Error(c, apperror.Unauthorized())
		return
	}
	view, err := h.Sessions.RefreshAccessToken(c.Request.Context(), sid)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.Cookies.SetRefresh(c, raw, time.Time{})
	response.JSON(c, http.StatusOK, application.UserEnvelope{User: view})
}

// Signout only succeeds for a live session. Sessions are not revoked; the cookie is cleared.
func (h *UserHandler) Signout(c *gin.Context) {
	sid, _, ok := middleware.Session(c)
	if !ok {
		response.Error(c, apperror.Unauthorized())
		return
	}
	if _, err := h.Sessions.RefreshAccessToken(c.Request.Context(), sid); err != nil {
		response.Error(c, err)
		return
	}
	h.Cookies.ClearRefresh(c)
	c.Status(http.StatusOK)
}

func (h *UserHandler) UploadAvatar(c *gin.Context) {
	uid, ok := actingUser(c)
	if !ok {
		return
	}
	if h.AvatarMaxBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.AvatarMaxBytes)
	}
	fh, err := c.FormFile("avatar")
	if err != nil {
		response.Error(c, apperror.Validation(map[string][]string{"avatar": {"avatar is required"}}))
		return
	}
	ct := fh.Header.Get("Content-Type")
	if !allowedImage(ct) {
		response.Error(c, apperror.Validation(map[string][]string{"avatar": {"avatar must be a png, jpeg or webp image"}}))
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.Error(c, apperror.Internal(err))
		return
	}
	defer f.Close()

	view, err := h.Users.UploadAvatar(c.Request.Context(), uid, fh.Filename, ct, f)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, application.UserEnvelope{User: view})
}

func (h *UserHandler) Search(c *gin.Context) {
	if _, ok := actingUser(c); !ok {
		return
	}
	q := c.Query("q")
	if q == "" {
		response.Error(c, apperror.Validation(map[string][]string{"q": {"q is required"}}))
		return
	}
	size, err := strconv.Atoi(c.DefaultQuery("size", "10"))
	if err != nil {
		response.Error(c, apperror.Validation(map[string][]string{"size": {"size must be a number"}}))
		return
	}
	hits, err := h.Users.SearchUsers(c.Request.Context(), q, size)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"users": hits})
}

func allowedImage(ct string) bool {
	switch ct {
	case "image/png", "image/jpeg", "image/webp":
		return true
	}
	return false
}
