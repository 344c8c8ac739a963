package util

import (
	"testing"
)

// TestValidateUsername_Valid 测试有效用户名
func TestValidateUsername_Valid(t *testing.T) {
	testCases := []string{"jdoe", "j_doe_99", "ABC", "a1234567890123456789"}

	for _, username := range testCases {
		err := ValidateUsername(username)
		if err != nil {
			t.Errorf("ValidateUsername(%q) error = %v, want nil", username, err)
		}
	}
}

// TestValidateUsername_Invalid 测试无效用户名（异常）
func TestValidateUsername_Invalid(t *testing.T) {
	testCases := []string{
		"",
		"ab",                     // 太短
		"a123456789012345678901", // 太长
		"j.doe",                  // 含非法字符
		"j doe",
		"j-doe",
		"用户名",
	}

	for _, username := range testCases {
		err := ValidateUsername(username)
		if err == nil {
			t.Errorf("ValidateUsername(%q) error = nil, want error", username)
		}
	}
}

// TestValidateEmail_Valid 测试有效公司邮箱
func TestValidateEmail_Valid(t *testing.T) {
	testCases := []string{
		"j.doe@eil.com",
		"jdoe@eil.com",
		"a_b+c@eil.com",
	}

	for _, email := range testCases {
		err := ValidateEmail(email)
		if err != nil {
			t.Errorf("ValidateEmail(%q) error = %v, want nil", email, err)
		}
	}
}

// TestValidateEmail_Invalid 测试无效邮箱（异常）
func TestValidateEmail_Invalid(t *testing.T) {
	testCases := []string{
		"",
		"not-an-email",
		"j.doe@gmail.com", // 非公司域名
		"j.doe@eil.org",
		"@eil.com",
		"j doe@eil.com",
	}

	for _, email := range testCases {
		err := ValidateEmail(email)
		if err == nil {
			t.Errorf("ValidateEmail(%q) error = nil, want error", email)
		}
	}
}

// TestValidatePassword 测试密码长度规则
func TestValidatePassword(t *testing.T) {
	if err := ValidatePassword("secret123"); err != nil {
		t.Errorf("ValidatePassword(\"secret123\") error = %v, want nil", err)
	}
	if err := ValidatePassword("12345678"); err != nil {
		t.Errorf("8位密码应通过: %v", err)
	}
	if err := ValidatePassword("1234567"); err == nil {
		t.Error("7位密码应返回错误")
	}
	if err := ValidatePassword(""); err == nil {
		t.Error("空密码应返回错误")
	}
}
