package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-task-tracker/internal/application"
	"github.com/oksasatya/go-task-tracker/pkg/helpers"
	"github.com/oksasatya/go-task-tracker/pkg/response"
	"github.com/oksasatya/go-task-tracker/pkg/validation"
)

type AuthHandler struct {
	Svc     *application.AuthService
	Logger  *logrus.Logger
	Cookies *helpers.Manager
}

func NewAuthHandler(svc *application.AuthService, logger *logrus.Logger, cookies *helpers.Manager) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger, Cookies: cookies}
}

type signInRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// SignIn POST /api/sign_in
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req signInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", response.ErrorBody{Code: "validation", Details: validation.ToDetails(err)})
		return
	}

	res, err := h.Svc.SignIn(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	if h.Cookies != nil {
		h.Cookies.SetAccess(c, res.Token, res.ExpiresAt)
	}
	response.Success(c, http.StatusOK, authResponse{User: toUserResponse(res.User), Token: res.Token, ExpiresAt: res.ExpiresAt}, "signed in", nil)
}

// SignOut POST /api/sign_out clears the access cookie. Tokens stay valid
// until they expire.
func (h *AuthHandler) SignOut(c *gin.Context) {
	if h.Cookies != nil {
		h.Cookies.Clear(c)
	}
	response.NoContent(c)
}
