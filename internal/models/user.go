package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role 用户角色（登录时作为凭证的一部分提交，同时决定可访问的看板）
type Role string

const (
	RoleManagement Role = "management"
	RoleEmployee   Role = "employee"
	RoleTrainee    Role = "trainee"
)

// ParseRole returns the Role for s, or false when s is not a known role.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleManagement, RoleEmployee, RoleTrainee:
		return Role(s), true
	}
	return "", false
}

// User represents a portal account.
type User struct {
	ID           string    `gorm:"primaryKey;size:36"`
	Username     string    `gorm:"size:64;uniqueIndex;not null"`
	Email        string    `gorm:"size:128;uniqueIndex;not null"` // 必须是 @eil.com 公司邮箱
	PasswordHash string    `gorm:"size:255;not null"`
	Role         Role      `gorm:"size:16;not null;index"`
	FirstName    string    `gorm:"size:64;not null"`
	LastName     string    `gorm:"size:64;not null"`
	IsActive     bool      `gorm:"not null;default:true"` // false 表示账号已停用
	CreatedAt    time.Time
	UpdatedAt    time.Time

	LastLoginAt *time.Time                  // 最近登录时间
	LastLoginIP string     `gorm:"size:64"` // 最近登录 IP
}

// BeforeCreate assigns an opaque UUID primary key.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
