package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/budget-ledger-api/internal/interface/http"
	"github.com/oksasatya/budget-ledger-api/internal/interface/middleware"
)

// UserModule mounts /users.
// Public: signup, signin. Cookie: refresh, signout. Bearer: whoami, update, avatar, search.
type UserModule struct {
	Handler *handlers.UserHandler
	Guards  Guards
	// CredentialLimit caps signup/signin/refresh per IP and route.
	CredentialLimit int
}

func NewUserModule(h *handlers.UserHandler, g Guards, credentialLimit int) *UserModule {
	return &UserModule{Handler: h, Guards: g, CredentialLimit: credentialLimit}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	credLimiter := m.Guards.limit(m.CredentialLimit, middleware.KeyByIPAndPath())

	users.POST("/signup", credLimiter, m.Handler.Signup)
	users.POST("/signin", credLimiter, m.Handler.Signin)
	users.GET("/refresh", credLimiter, m.Guards.Session, m.Handler.Refresh)
	users.POST("/signout", m.Guards.Session, m.Handler.Signout)

	auth := users.Group("")
	auth.Use(m.Guards.Auth, m.Guards.limit(m.CredentialLimit*6, middleware.KeyByUserID()))
	{
		auth.GET("/whoami", m.Handler.WhoAmI)
		auth.PUT("", m.Handler.Update)
		auth.POST("/avatar", m.Handler.UploadAvatar)
		auth.GET("/search", m.Handler.Search)
	}
}
