package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/hyb-mobile-app/hyb-api/internal/interface/http"
	"github.com/hyb-mobile-app/hyb-api/internal/interface/middleware"
	"github.com/hyb-mobile-app/hyb-api/pkg/helpers"
)

// PostModule wires the social feed. Reads accept anonymous callers; writes need a bearer token.
type PostModule struct {
	Handler *handlers.PostHandler
	JWT     *helpers.JWTManager
}

func NewPostModule(h *handlers.PostHandler, jwt *helpers.JWTManager) *PostModule {
	return &PostModule{Handler: h, JWT: jwt}
}

func (m *PostModule) Register(rg *gin.RouterGroup) {
	optional := middleware.OptionalJWTAuth(m.JWT)
	required := middleware.JWTAuth(m.JWT)

	rg.GET("/status", optional, m.Handler.List)
	rg.GET("/status/:id", optional, m.Handler.Get)
	rg.POST("/status", required, m.Handler.Create)
	rg.DELETE("/status/:id", required, m.Handler.Delete)

	rg.POST("/like", required, m.Handler.Like)
	rg.DELETE("/like", required, m.Handler.Unlike)

	rg.POST("/comment", required, m.Handler.Comment)
	rg.DELETE("/comment/:commentId", required, m.Handler.DeleteComment)
}
