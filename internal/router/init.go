package router

import (
	"github.com/hyb-mobile-app/hyb-api/internal/application"
	"github.com/hyb-mobile-app/hyb-api/internal/container"
	handlers "github.com/hyb-mobile-app/hyb-api/internal/interface/http"
	"github.com/hyb-mobile-app/hyb-api/internal/router/modules"
)

type moduleDeps struct {
	Auth  *handlers.AuthHandler
	Users *handlers.UserHandler
	Posts *handlers.PostHandler
}

func buildDeps(c *container.Container) moduleDeps {
	ew := handlers.ErrorWriter{Logger: c.Logger, Production: c.Config.IsProduction()}

	authSvc := application.NewAuthService(c.Users, c.JWT, c.Logger)
	authSvc.Config = c.Config
	userSvc := application.NewUserService(c.Users, c.Logger)
	postSvc := application.NewPostService(c.Posts, c.Logger)
	postSvc.EnforceOwnership = c.Config.EnforcePostOwnership

	// typed nils must not leak into the interfaces
	if c.UserIndex != nil {
		authSvc.Indexer = c.UserIndex
		userSvc.Indexer = c.UserIndex
		userSvc.Searcher = c.UserIndex
	}
	if c.RabbitPub != nil {
		authSvc.Jobs = c.RabbitPub
	}
	if c.Avatars != nil {
		authSvc.Avatars = c.Avatars
	}

	return moduleDeps{
		Auth:  handlers.NewAuthHandler(authSvc, c.Config.AvatarMaxBytes, ew),
		Users: handlers.NewUserHandler(userSvc, ew),
		Posts: handlers.NewPostHandler(postSvc, ew),
	}
}

// InitModules wires every feature module from the container into the registry.
// Call once during startup, before RegisterAll.
func InitModules(r *Registry, c *container.Container) {
	deps := buildDeps(c)
	r.Add(modules.NewHealthModule())
	r.Add(modules.NewAuthModule(deps.Auth, c.JWT))
	r.Add(modules.NewUserModule(deps.Users))
	r.Add(modules.NewPostModule(deps.Posts, c.JWT))
	if c.Config.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
