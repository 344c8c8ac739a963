package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PasswordReset 密码重置记录：一次性、限时的重置凭证
type PasswordReset struct {
	ID        string    `gorm:"primaryKey;size:36"`
	Email     string    `gorm:"size:128;index;not null"`
	Token     string    `gorm:"size:128;uniqueIndex;not null"` // 高熵随机 token（hex）
	ExpiresAt time.Time `gorm:"not null"`                      // 签发时间 + 1 小时
	Used      bool      `gorm:"not null"`                      // 兑换后标记，token 只能用一次
	CreatedAt time.Time
}

func (p *PasswordReset) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
