package router

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-task-tracker/config"
	"github.com/oksasatya/go-task-tracker/internal/application"
	"github.com/oksasatya/go-task-tracker/internal/container"
	handlers "github.com/oksasatya/go-task-tracker/internal/interface/http"
	"github.com/oksasatya/go-task-tracker/internal/interface/middleware"
	"github.com/oksasatya/go-task-tracker/internal/router/modules"
	"github.com/oksasatya/go-task-tracker/pkg/helpers"
)

// InitModules builds services and handlers from c and registers every
// module with r. Call once during startup.
func InitModules(r *Registry, c *container.Container) {
	cfg := c.Config
	anonymous := cfg.AuthProfile == config.ProfileAnonymous
	cookies := helpers.NewCookie(cfg.CookieDomain, cfg.CookieSecure)

	authSvc := application.NewAuthService(c.Users, c.JWT, cfg.AuthProfile, c.Notifier, c.Logger)
	userSvc := application.NewUserService(c.Users, c.Logger)
	taskSvc := application.NewTaskService(c.Tasks, c.TaskIndex, !anonymous, c.Logger)

	// Credentials profile: bearer token, and the path user must be the
	// token subject. Anonymous profile: the path user is the owner.
	var protected, ownerGate []gin.HandlerFunc
	if anonymous {
		ownerGate = []gin.HandlerFunc{middleware.PathOwner("user_id")}
	} else {
		protected = []gin.HandlerFunc{middleware.Auth(c.JWT)}
		ownerGate = []gin.HandlerFunc{middleware.Auth(c.JWT), middleware.RequireOwner("user_id")}
	}

	health := &handlers.HealthHandler{}
	if c.PGPool != nil {
		health.DB = c.PGPool
	}
	r.Add(modules.NewHealthModule(health))

	r.Add(modules.NewUserModule(handlers.NewUserHandler(authSvc, userSvc, c.Logger, cookies), protected))
	if !anonymous {
		r.Add(modules.NewAuthModule(handlers.NewAuthHandler(authSvc, c.Logger, cookies)))
	}
	r.Add(modules.NewTaskModule(handlers.NewTaskHandler(taskSvc, c.Logger), ownerGate))

	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
