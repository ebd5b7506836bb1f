package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-task-tracker/pkg/apperror"
	"github.com/oksasatya/go-task-tracker/pkg/response"
)

// respondError maps err to a status through its kind. The cause is logged
// for 5xx responses and never sent to the client.
func respondError(c *gin.Context, logger *logrus.Logger, err error) {
	ae := apperror.As(err)
	status := ae.StatusCode()
	if status >= 500 && logger != nil {
		logger.WithFields(logrus.Fields{
			"request_id": c.GetString("request_id"),
			"kind":       ae.Kind.String(),
		}).WithError(err).Error(ae.Message)
	}
	response.Error(c, status, ae.Message, response.ErrorBody{Code: ae.Kind.String(), Details: ae.Fields})
}
