package util

import (
	"fmt"
	"regexp"
	"strings"
)

// CompanyDomain 公司邮箱域名，注册和找回密码都只接受该域名
const CompanyDomain = "@eil.com"

var (
	usernameRe = regexp.MustCompile(`^[A-Za-z0-9_]{3,20}$`)
	emailRe    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// ValidateUsername 验证用户名（3-20 位，仅字母、数字、下划线）
func ValidateUsername(username string) error {
	if !usernameRe.MatchString(username) {
		return fmt.Errorf("username must be 3-20 letters, digits or underscores")
	}
	return nil
}

// ValidateEmail 验证公司邮箱（必须是 @eil.com）
func ValidateEmail(email string) error {
	if !emailRe.MatchString(email) {
		return fmt.Errorf("invalid email address")
	}
	if !strings.HasSuffix(email, CompanyDomain) {
		return fmt.Errorf("email must be from the company domain (%s)", CompanyDomain)
	}
	return nil
}

// ValidatePassword 验证密码长度（至少 8 位）
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}
	if len(password) > 72 {
		return fmt.Errorf("password too long, max 72 characters")
	}
	return nil
}
