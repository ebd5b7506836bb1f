package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-task-tracker/internal/application"
	"github.com/oksasatya/go-task-tracker/pkg/helpers"
	"github.com/oksasatya/go-task-tracker/pkg/response"
	"github.com/oksasatya/go-task-tracker/pkg/validation"
)

type UserHandler struct {
	Auth    *application.AuthService
	Users   *application.UserService
	Logger  *logrus.Logger
	Cookies *helpers.Manager
}

func NewUserHandler(auth *application.AuthService, users *application.UserService, logger *logrus.Logger, cookies *helpers.Manager) *UserHandler {
	return &UserHandler{Auth: auth, Users: users, Logger: logger, Cookies: cookies}
}

// registerRequest also takes "name", the field name-only clients send.
type registerRequest struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

func (r registerRequest) username() string {
	if strings.TrimSpace(r.Username) != "" {
		return r.Username
	}
	return r.Name
}

// Register POST /api/users and /api/create_user
func (h *UserHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", response.ErrorBody{Code: "validation", Details: validation.ToDetails(err)})
		return
	}

	res, err := h.Auth.Register(c.Request.Context(), application.RegisterInput{
		Username: req.username(),
		Password: req.Password,
		Email:    req.Email,
	})
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	if h.Cookies != nil {
		h.Cookies.SetAccess(c, res.Token, res.ExpiresAt)
	}
	response.Success(c, http.StatusOK, authResponse{User: toUserResponse(res.User), Token: res.Token, ExpiresAt: res.ExpiresAt}, "user registered", nil)
}

// List GET /api/get_users
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.Users.List(c.Request.Context())
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	out := make([]userResponse, 0, len(users))
	for i := range users {
		out = append(out, toUserResponse(&users[i]))
	}
	response.Success(c, http.StatusOK, out, "users", nil)
}
