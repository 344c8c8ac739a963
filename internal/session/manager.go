package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/palak-raj09/eil-project/internal/models"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when no session exists for the given id.
	ErrNotFound = errors.New("session not found")
	// ErrExpired is returned when the session exists but is revoked or past expiry.
	ErrExpired = errors.New("session expired")
)

// Manager 基于数据库的会话存储，通过依赖注入传给 handler 和中间件，
// 不使用进程级全局状态。
type Manager struct {
	DB  *gorm.DB
	TTL time.Duration
}

// NewManager 构造函数
func NewManager(db *gorm.DB, ttlHours int) *Manager {
	if ttlHours <= 0 {
		ttlHours = 24
	}
	return &Manager{
		DB:  db,
		TTL: time.Duration(ttlHours) * time.Hour,
	}
}

// Create 为用户新建会话，返回的 ID 即 cookie 值。
func (m *Manager) Create(userID string) (*models.Session, error) {
	s := models.Session{
		UserID:    userID,
		ExpiresAt: time.Now().Add(m.TTL),
	}
	if err := m.DB.Create(&s).Error; err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return &s, nil
}

// Get 按 ID 查找会话，已撤销或已过期的会话视为不存在。
func (m *Manager) Get(id string) (*models.Session, error) {
	if id == "" {
		return nil, ErrNotFound
	}
	var s models.Session
	if err := m.DB.First(&s, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query session: %w", err)
	}
	if s.Revoked || time.Now().After(s.ExpiresAt) {
		return nil, ErrExpired
	}
	return &s, nil
}

// Revoke 使会话立即失效（登出）。对不存在的会话静默成功。
func (m *Manager) Revoke(id string) error {
	if id == "" {
		return nil
	}
	if err := m.DB.Model(&models.Session{}).
		Where("id = ?", id).
		Update("revoked", true).Error; err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}
