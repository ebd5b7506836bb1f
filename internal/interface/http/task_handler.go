package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-task-tracker/internal/application"
	"github.com/oksasatya/go-task-tracker/internal/interface/middleware"
	"github.com/oksasatya/go-task-tracker/pkg/response"
	"github.com/oksasatya/go-task-tracker/pkg/validation"
)

// TaskHandler serves /api/users/:user_id/tasks. The owner always comes from
// the gate middleware, never from the path directly.
type TaskHandler struct {
	Svc    *application.TaskService
	Logger *logrus.Logger
}

func NewTaskHandler(svc *application.TaskService, logger *logrus.Logger) *TaskHandler {
	return &TaskHandler{Svc: svc, Logger: logger}
}

func (h *TaskHandler) owner(c *gin.Context) (int64, bool) {
	id, ok := middleware.OwnerIDFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "unauthorized", nil)
	}
	return id, ok
}

func (h *TaskHandler) scoped(c *gin.Context) (ownerID, taskID int64, ok bool) {
	if ownerID, ok = h.owner(c); !ok {
		return 0, 0, false
	}
	taskID, err := strconv.ParseInt(c.Param("task_id"), 10, 64)
	if err != nil || taskID <= 0 {
		response.Error(c, http.StatusBadRequest, "invalid task_id", nil)
		return 0, 0, false
	}
	return ownerID, taskID, true
}

func (h *TaskHandler) bind(c *gin.Context) (taskRequest, bool) {
	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", response.ErrorBody{Code: "validation", Details: validation.ToDetails(err)})
		return req, false
	}
	return req, true
}

func (h *TaskHandler) Create(c *gin.Context) {
	ownerID, ok := h.owner(c)
	if !ok {
		return
	}
	req, ok := h.bind(c)
	if !ok {
		return
	}
	t, err := h.Svc.Create(c.Request.Context(), ownerID, req.fields())
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toTaskResponse(t), "task created", nil)
}

func (h *TaskHandler) List(c *gin.Context) {
	ownerID, ok := h.owner(c)
	if !ok {
		return
	}
	tasks, err := h.Svc.List(c.Request.Context(), ownerID)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toTaskResponses(tasks), "tasks", nil)
}

// Search GET /api/users/:user_id/tasks/search?q=&size=
func (h *TaskHandler) Search(c *gin.Context) {
	ownerID, ok := h.owner(c)
	if !ok {
		return
	}
	size, _ := strconv.Atoi(c.Query("size"))
	tasks, err := h.Svc.Search(c.Request.Context(), ownerID, c.Query("q"), size)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toTaskResponses(tasks), "tasks", map[string]any{"count": len(tasks)})
}

func (h *TaskHandler) Get(c *gin.Context) {
	ownerID, taskID, ok := h.scoped(c)
	if !ok {
		return
	}
	t, err := h.Svc.Get(c.Request.Context(), ownerID, taskID)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toTaskResponse(t), "task", nil)
}

func (h *TaskHandler) Update(c *gin.Context) {
	ownerID, taskID, ok := h.scoped(c)
	if !ok {
		return
	}
	req, ok := h.bind(c)
	if !ok {
		return
	}
	t, err := h.Svc.Update(c.Request.Context(), ownerID, taskID, req.fields())
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toTaskResponse(t), "task updated", nil)
}

func (h *TaskHandler) Delete(c *gin.Context) {
	ownerID, taskID, ok := h.scoped(c)
	if !ok {
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), ownerID, taskID); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.NoContent(c)
}
