package handler

import (
	"net/http"

	"github.com/palak-raj09/eil-project/internal/models"
	"github.com/palak-raj09/eil-project/internal/util"

	"github.com/gin-gonic/gin"
)

// currentUser 从 context 取出 RequireAuth 放入的当前用户
func currentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get("currentUser")
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	if !ok || user == nil {
		return nil, false
	}
	return user, true
}

// GetUser 返回当前登录用户信息（需要经过 RequireAuth）
func GetUser(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Not authenticated")
		return
	}

	util.Success(c, util.Response{
		"user": sanitizeUser(user),
	})
}
