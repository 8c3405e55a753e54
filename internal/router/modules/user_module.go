package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/hyb-mobile-app/hyb-api/internal/interface/http"
)

// UserModule exposes the public user resource under /api/users.
type UserModule struct {
	Handler *handlers.UserHandler
}

func NewUserModule(h *handlers.UserHandler) *UserModule {
	return &UserModule{Handler: h}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/users")
	g.POST("/create", m.Handler.Create)
	g.GET("/list", m.Handler.List)
	g.GET("/search", m.Handler.Search)
	g.GET("/:id", m.Handler.Get)
}
