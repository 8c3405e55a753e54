package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/hyb-mobile-app/hyb-api/internal/interface/http"
	"github.com/hyb-mobile-app/hyb-api/internal/interface/middleware"
	"github.com/hyb-mobile-app/hyb-api/pkg/helpers"
)

// AuthModule wires the auth routes.
// Public: POST /api/auth/register, POST /api/auth/login
// Protected: GET /api/auth/profile, PUT /api/auth/profile, PUT /api/auth/profile/avatar
type AuthModule struct {
	Handler *handlers.AuthHandler
	JWT     *helpers.JWTManager
}

func NewAuthModule(h *handlers.AuthHandler, jwt *helpers.JWTManager) *AuthModule {
	return &AuthModule{Handler: h, JWT: jwt}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/auth")
	g.POST("/register", m.Handler.Register)
	g.POST("/login", m.Handler.Login)

	auth := g.Group("/")
	auth.Use(middleware.JWTAuth(m.JWT))
	{
		auth.GET("/profile", m.Handler.Profile)
		auth.PUT("/profile", m.Handler.UpdateProfile)
		auth.PUT("/profile/avatar", m.Handler.UploadAvatar)
	}
}
