package session

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/palak-raj09/eil-project/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("打开测试数据库失败: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Session{}); err != nil {
		t.Fatalf("迁移失败: %v", err)
	}
	return db
}

func createTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	user := models.User{
		Username:     "sessionuser",
		Email:        "session.user@eil.com",
		PasswordHash: "x$y",
		Role:         models.RoleEmployee,
		FirstName:    "Session",
		LastName:     "User",
		IsActive:     true,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("创建用户失败: %v", err)
	}
	return &user
}

// TestManager_CreateAndGet 创建会话后能按 ID 查回
func TestManager_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	m := NewManager(db, 24)
	user := createTestUser(t, db)

	sess, err := m.Create(user.ID)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if sess.ID == "" {
		t.Fatal("会话 ID 不应为空")
	}

	got, err := m.Get(sess.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.UserID != user.ID {
		t.Errorf("UserID 不匹配: 期望 %s，实际 %s", user.ID, got.UserID)
	}
}

// TestManager_GetMissing 不存在的会话返回 ErrNotFound
func TestManager_GetMissing(t *testing.T) {
	db := setupTestDB(t)
	m := NewManager(db, 24)

	if _, err := m.Get("no-such-session"); !errors.Is(err, ErrNotFound) {
		t.Errorf("期望 ErrNotFound，实际 %v", err)
	}
	if _, err := m.Get(""); !errors.Is(err, ErrNotFound) {
		t.Errorf("空 ID 期望 ErrNotFound，实际 %v", err)
	}
}

// TestManager_Revoke 撤销后的会话视为过期
func TestManager_Revoke(t *testing.T) {
	db := setupTestDB(t)
	m := NewManager(db, 24)
	user := createTestUser(t, db)

	sess, _ := m.Create(user.ID)
	if err := m.Revoke(sess.ID); err != nil {
		t.Fatalf("Revoke failed: %v", err)
	}

	if _, err := m.Get(sess.ID); !errors.Is(err, ErrExpired) {
		t.Errorf("撤销的会话期望 ErrExpired，实际 %v", err)
	}

	// 撤销不存在的会话不报错
	if err := m.Revoke("no-such-session"); err != nil {
		t.Errorf("撤销不存在的会话不应报错: %v", err)
	}
}

// TestManager_Expired 过期会话视为不存在
func TestManager_Expired(t *testing.T) {
	db := setupTestDB(t)
	m := NewManager(db, 24)
	user := createTestUser(t, db)

	sess, _ := m.Create(user.ID)

	// 把过期时间改到过去
	past := time.Now().Add(-time.Minute)
	if err := db.Model(&models.Session{}).Where("id = ?", sess.ID).
		Update("expires_at", past).Error; err != nil {
		t.Fatalf("更新过期时间失败: %v", err)
	}

	if _, err := m.Get(sess.ID); !errors.Is(err, ErrExpired) {
		t.Errorf("过期会话期望 ErrExpired，实际 %v", err)
	}
}
