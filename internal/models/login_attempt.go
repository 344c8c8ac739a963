package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LoginAttempt records every login attempt for auditing (append-only).
type LoginAttempt struct {
	ID         string    `gorm:"primaryKey;size:36"`
	Email      string    `gorm:"size:128;index"` // 用户提交的原始标识（用户名或邮箱）
	IP         string    `gorm:"size:64"`
	Successful bool      `gorm:"not null"`
	CreatedAt  time.Time `gorm:"index"`
}

func (a *LoginAttempt) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
