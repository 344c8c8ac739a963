package middleware

import (
	"errors"
	"net/http"

	"github.com/palak-raj09/eil-project/internal/config"
	"github.com/palak-raj09/eil-project/internal/models"
	"github.com/palak-raj09/eil-project/internal/session"
	"github.com/palak-raj09/eil-project/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RequireAuth 校验会话 cookie，并在 context 里放入当前用户。
// 会话不存在时回退到 remember-me token（如果有），成功则自动补建会话。
func RequireAuth(sessions *session.Manager, db *gorm.DB, cfg config.SessionConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		var sess *models.Session

		// 1) 会话 cookie
		if id, err := c.Cookie(cfg.CookieName); err == nil && id != "" {
			s, err := sessions.Get(id)
			if err == nil {
				sess = s
			} else if !errors.Is(err, session.ErrNotFound) && !errors.Is(err, session.ErrExpired) {
				util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Internal server error")
				c.Abort()
				return
			}
		}

		// 2) remember-me token 回退：校验通过则补建一个新会话
		if sess == nil {
			if tokenStr, err := c.Cookie(util.RememberCookieName); err == nil && tokenStr != "" {
				if claims, err := util.ParseRememberToken(cfg.Secret, tokenStr); err == nil {
					s, err := sessions.Create(claims.UserID)
					if err == nil {
						sess = s
						c.SetCookie(cfg.CookieName, s.ID, int(sessions.TTL.Seconds()), "/", "", cfg.Secure, true)
					}
				}
			}
		}

		if sess == nil {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Not authenticated")
			c.Abort()
			return
		}

		var user models.User
		if err := db.First(&user, "id = ?", sess.UserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Not authenticated")
			} else {
				util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Internal server error")
			}
			c.Abort()
			return
		}

		// 停用账号的已有会话同样拒绝
		if !user.IsActive {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Account is deactivated")
			c.Abort()
			return
		}

		c.Set("currentUser", &user)
		c.Set("currentSession", sess)
		c.Next()
	}
}

// RequireRole 要求当前用户角色与 role 一致，否则 403。
// 必须挂在 RequireAuth 之后。
func RequireRole(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, ok := c.Get("currentUser")
		if !ok {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Not authenticated")
			c.Abort()
			return
		}
		user, ok := v.(*models.User)
		if !ok || user == nil {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Not authenticated")
			c.Abort()
			return
		}
		if user.Role != role {
			util.Error(c, http.StatusForbidden, util.CodeForbidden, "Forbidden")
			c.Abort()
			return
		}
		c.Next()
	}
}
