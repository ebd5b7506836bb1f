package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-task-tracker/pkg/response"
)

// CtxOwnerIDKey holds the owner every task operation is scoped to.
const CtxOwnerIDKey = "ownerID"

func pathID(c *gin.Context, param string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// RequireOwner binds the owner to the authenticated user. The path
// parameter must name that same user. Must run after Auth.
func RequireOwner(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, ok := UserIDFrom(c)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "unauthorized", nil)
			return
		}
		pid, ok := pathID(c, param)
		if !ok {
			response.Error(c, http.StatusBadRequest, "invalid "+param, nil)
			return
		}
		if pid != uid {
			response.Error(c, http.StatusForbidden, "forbidden", nil)
			return
		}
		c.Set(CtxOwnerIDKey, uid)
		c.Next()
	}
}

// PathOwner takes the owner straight from the path with no token check.
// Only mounted in the anonymous profile.
func PathOwner(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		pid, ok := pathID(c, param)
		if !ok {
			response.Error(c, http.StatusBadRequest, "invalid "+param, nil)
			return
		}
		c.Set(CtxOwnerIDKey, pid)
		c.Next()
	}
}

func OwnerIDFrom(c *gin.Context) (int64, bool) {
	v, ok := c.Get(CtxOwnerIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}
