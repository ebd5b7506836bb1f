package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-task-tracker/internal/interface/http"
)

// TaskModule mounts the task routes under /api/users/:user_id/tasks behind
// the owner gate.
type TaskModule struct {
	Handler *handlers.TaskHandler
	Gate    []gin.HandlerFunc
}

func NewTaskModule(h *handlers.TaskHandler, gate []gin.HandlerFunc) *TaskModule {
	return &TaskModule{Handler: h, Gate: gate}
}

func (m *TaskModule) Register(rg *gin.RouterGroup) {
	tasks := rg.Group("/users/:user_id/tasks")
	tasks.Use(m.Gate...)
	{
		tasks.POST("", m.Handler.Create)
		tasks.GET("", m.Handler.List)
		tasks.GET("/search", m.Handler.Search)
		tasks.GET("/:task_id", m.Handler.Get)
		tasks.PUT("/:task_id", m.Handler.Update)
		tasks.DELETE("/:task_id", m.Handler.Delete)
	}
}
