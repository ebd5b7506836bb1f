package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-task-tracker/internal/interface/http"
)

// UserModule wires registration and the user listing.
// Public: POST /api/users, POST /api/create_user
// Protected: GET /api/get_users
type UserModule struct {
	Handler   *handlers.UserHandler
	Protected []gin.HandlerFunc
}

func NewUserModule(h *handlers.UserHandler, protected []gin.HandlerFunc) *UserModule {
	return &UserModule{Handler: h, Protected: protected}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	rg.POST("/users", m.Handler.Register)
	rg.POST("/create_user", m.Handler.Register)

	auth := rg.Group("/")
	auth.Use(m.Protected...)
	{
		auth.GET("/get_users", m.Handler.List)
	}
}
