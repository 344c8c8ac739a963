package handler

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/palak-raj09/eil-project/internal/config"
	"github.com/palak-raj09/eil-project/internal/mailer"
	"github.com/palak-raj09/eil-project/internal/models"
	"github.com/palak-raj09/eil-project/internal/ratelimit"
	"github.com/palak-raj09/eil-project/internal/recaptcha"
	"github.com/palak-raj09/eil-project/internal/session"
	"github.com/palak-raj09/eil-project/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// 限流窗口：登录每 IP 15 分钟 5 次，找回密码每 IP 1 小时 3 次
const (
	loginLimitMax    = 5
	loginLimitWindow = 15 * time.Minute
	resetLimitMax    = 3
	resetLimitWindow = time.Hour

	resetTokenBytes = 32
	resetTokenTTL   = time.Hour
)

// 登录失败原因。角色不符和密码错误必须返回同一条消息，
// 避免泄露到底是哪个字段错了；账号停用是唯一例外。
var (
	errInvalidCredentials = errors.New("Invalid credentials")
	errAccountDeactivated = errors.New("Account is deactivated")
)

// AuthHandler 负责注册/登录/登出/密码重置相关接口
type AuthHandler struct {
	DB         *gorm.DB
	Sessions   *session.Manager
	Recaptcha  recaptcha.Verifier
	Mailer     mailer.Mailer
	SessionCfg config.SessionConfig

	loginLimiter *ratelimit.Limiter
	resetLimiter *ratelimit.Limiter
}

// NewAuthHandler 构造函数
func NewAuthHandler(db *gorm.DB, sessions *session.Manager, verifier recaptcha.Verifier, m mailer.Mailer, sessionCfg config.SessionConfig) *AuthHandler {
	return &AuthHandler{
		DB:           db,
		Sessions:     sessions,
		Recaptcha:    verifier,
		Mailer:       m,
		SessionCfg:   sessionCfg,
		loginLimiter: ratelimit.New(loginLimitMax, loginLimitWindow),
		resetLimiter: ratelimit.New(resetLimitMax, resetLimitWindow),
	}
}

// sanitizeUser 去掉密码字段后的用户对象，唯一允许出服务端边界的形式
func sanitizeUser(u *models.User) gin.H {
	return gin.H{
		"id":        u.ID,
		"username":  u.Username,
		"email":     u.Email,
		"role":      u.Role,
		"firstName": u.FirstName,
		"lastName":  u.LastName,
		"isActive":  u.IsActive,
		"lastLogin": u.LastLoginAt,
		"createdAt": u.CreatedAt,
	}
}

// ---------- 注册 ----------

type registerReq struct {
	Username  string `json:"username" binding:"required"`
	Email     string `json:"email" binding:"required"`
	Password  string `json:"password" binding:"required"`
	Role      string `json:"role" binding:"required"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Invalid request body")
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)

	if err := util.ValidateUsername(req.Username); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}
	if err := util.ValidateEmail(req.Email); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}
	if err := util.ValidatePassword(req.Password); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}
	role, ok := models.ParseRole(req.Role)
	if !ok {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Invalid role")
		return
	}

	// 用户名和邮箱分别检查唯一性，给出可区分的错误
	var count int64
	if err := h.DB.Model(&models.User{}).
		Where("username = ?", req.Username).
		Count(&count).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Internal server error")
		return
	}
	if count > 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Username already exists")
		return
	}
	if err := h.DB.Model(&models.User{}).
		Where("email = ?", req.Email).
		Count(&count).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Internal server error")
		return
	}
	if count > 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Email already exists")
		return
	}

	hash, err := util.HashPassword(req.Password)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Internal server error")
		return
	}

	user := models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         role,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		IsActive:     true,
	}
	if err := h.DB.Create(&user).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Internal server error")
		return
	}

	// 注册成功后直接建立会话（自动登录）
	sess, err := h.Sessions.Create(user.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Internal server error")
		return
	}
	h.setSessionCookie(c, sess.ID)

	util.Created(c, util.Response{
		"user": sanitizeUser(&user),
	})
}

// ---------- 登录 ----------

type loginReq struct {
	UserID         string `json:"userId" binding:"required"`
	Password       string `json:"password" binding:"required"`
	Role           string `json:"role" binding:"required"`
	RememberMe     bool   `json:"rememberMe"`
	RecaptchaToken string `json:"recaptchaToken" binding:"required"`
}

// checkLogin 纯判定函数：只看用户记录和请求，不做任何 IO。
// 副作用（审计、会话）由 Login 在判定之后按顺序执行。
func checkLogin(user *models.User, role models.Role, password string) error {
	if user == nil || user.Role != role {
		return errInvalidCredentials
	}
	if !user.IsActive {
		return errAccountDeactivated
	}
	if !util.CheckPassword(password, user.PasswordHash) {
		return errInvalidCredentials
	}
	return nil
}

func (h *AuthHandler) Login(c *gin.Context) {
	ip := c.ClientIP()

	// 先限流，再做任何凭证相关的工作
	if !h.loginLimiter.Allow(ip) {
		util.Error(c, http.StatusTooManyRequests, util.CodeRateLimited, "Too many login attempts, please try again later.")
		return
	}

	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Invalid request body")
		return
	}

	role, ok := models.ParseRole(req.Role)
	if !ok {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Invalid role")
		return
	}

	// reCAPTCHA 不通过就不查库，挡住自动化请求
	if !h.Recaptcha.Verify(req.RecaptchaToken, ip) {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "reCAPTCHA verification failed")
		return
	}

	// 含 "@" 按邮箱查，否则按用户名查，精确匹配
	req.UserID = strings.TrimSpace(req.UserID)
	var u models.User
	var err error
	if strings.Contains(req.UserID, "@") {
		err = h.DB.Where("email = ?", req.UserID).First(&u).Error
	} else {
		err = h.DB.Where("username = ?", req.UserID).First(&u).Error
	}

	var user *models.User
	if err == nil {
		user = &u
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Internal server error")
		return
	}
	// 用户不存在时 user 为 nil，后面统一走通用错误

	decision := checkLogin(user, role, req.Password)

	// 无论成败都先写审计，再返回结果
	attempt := models.LoginAttempt{
		Email:      req.UserID,
		IP:         ip,
		Successful: decision == nil,
	}
	if err := h.DB.Create(&attempt).Error; err != nil {
		log.Printf("log login attempt: %v", err)
	}

	if decision != nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, decision.Error())
		return
	}

	// 登录成功：记录登录时间和 IP
	now := time.Now()
	user.LastLoginAt = &now
	user.LastLoginIP = ip
	if err := h.DB.Model(user).Updates(map[string]interface{}{
		"last_login_at": now,
		"last_login_ip": ip,
	}).Error; err != nil {
		log.Printf("update last login: %v", err)
	}

	sess, err := h.Sessions.Create(user.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Internal server error")
		return
	}
	h.setSessionCookie(c, sess.ID)

	// 记住登录：额外下发一个长期 token，会话过期后可自动续建
	if req.RememberMe {
		ttl := time.Duration(h.SessionCfg.RememberMeDays) * 24 * time.Hour
		token, err := util.GenerateRememberToken(h.SessionCfg.Secret, user.ID, ttl)
		if err == nil {
			c.SetCookie(util.RememberCookieName, token, int(ttl.Seconds()), "/", "", h.SessionCfg.Secure, true)
		}
	}

	util.Success(c, util.Response{
		"user": sanitizeUser(user),
	})
}

// ---------- 登出 ----------

func (h *AuthHandler) Logout(c *gin.Context) {
	if id, err := c.Cookie(h.SessionCfg.CookieName); err == nil && id != "" {
		if err := h.Sessions.Revoke(id); err != nil {
			log.Printf("revoke session: %v", err)
		}
	}

	// 清掉两个 cookie
	c.SetCookie(h.SessionCfg.CookieName, "", -1, "/", "", h.SessionCfg.Secure, true)
	c.SetCookie(util.RememberCookieName, "", -1, "/", "", h.SessionCfg.Secure, true)

	util.Success(c, util.Response{
		"message": "Logged out",
	})
}

// ---------- 找回密码 ----------

type forgotPasswordReq struct {
	Email string `json:"email" binding:"required"`
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	ip := c.ClientIP()
	if !h.resetLimiter.Allow(ip) {
		util.Error(c, http.StatusTooManyRequests, util.CodeRateLimited, "Too many password reset requests, please try again later.")
		return
	}

	var req forgotPasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Invalid request body")
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if err := util.ValidateEmail(req.Email); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	// 先返回统一应答，查库和发信放到后台执行：
	// 响应内容和耗时都不暴露邮箱是否存在
	util.Success(c, util.Response{
		"message": "If the email exists, a reset link has been sent",
	})

	email := req.Email
	go h.issueReset(email)
}

// issueReset 为存在的账号生成重置记录并发邮件；账号不存在则什么都不做。
func (h *AuthHandler) issueReset(email string) {
	var user models.User
	if err := h.DB.Where("email = ?", email).First(&user).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("lookup user for reset: %v", err)
		}
		return
	}

	token, err := util.RandomToken(resetTokenBytes)
	if err != nil {
		log.Printf("generate reset token: %v", err)
		return
	}

	reset := models.PasswordReset{
		Email:     email,
		Token:     token,
		ExpiresAt: time.Now().Add(resetTokenTTL),
		Used:      false,
	}
	if err := h.DB.Create(&reset).Error; err != nil {
		log.Printf("create password reset: %v", err)
		return
	}

	if err := h.Mailer.SendPasswordReset(email, token); err != nil {
		log.Printf("send reset mail to %s: %v", email, err)
	}
}

// ---------- 重置密码 ----------

type resetPasswordReq struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Invalid request body")
		return
	}
	if err := util.ValidatePassword(req.NewPassword); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	var reset models.PasswordReset
	if err := h.DB.Where("token = ?", req.Token).First(&reset).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Invalid or expired reset token")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Internal server error")
		}
		return
	}
	if reset.Used || time.Now().After(reset.ExpiresAt) {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Invalid or expired reset token")
		return
	}

	var user models.User
	if err := h.DB.Where("email = ?", reset.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "User not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Internal server error")
		}
		return
	}

	// 带条件地标记已用：并发重放时只有一个请求能成功
	res := h.DB.Model(&models.PasswordReset{}).
		Where("id = ? AND used = ?", reset.ID, false).
		Update("used", true)
	if res.Error != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Internal server error")
		return
	}
	if res.RowsAffected == 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Invalid or expired reset token")
		return
	}

	hash, err := util.HashPassword(req.NewPassword)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Internal server error")
		return
	}
	if err := h.DB.Model(&user).Update("password_hash", hash).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Internal server error")
		return
	}

	util.Success(c, util.Response{
		"message": "Password reset successfully",
	})
}

// ---------- cookie helpers ----------

func (h *AuthHandler) setSessionCookie(c *gin.Context, sessionID string) {
	c.SetCookie(h.SessionCfg.CookieName, sessionID, int(h.Sessions.TTL.Seconds()), "/", "", h.SessionCfg.Secure, true)
}
