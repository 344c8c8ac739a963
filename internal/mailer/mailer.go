package mailer

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/palak-raj09/eil-project/internal/config"
)

// Mailer 发送密码重置邮件。handler 通过接口依赖，测试时用桩实现收集邮件。
type Mailer interface {
	SendPasswordReset(email, token string) error
}

// SMTPMailer 通过公司 SMTP 网关发信。
type SMTPMailer struct {
	cfg         config.SMTPConfig
	frontendURL string
}

// NewSMTPMailer 构造函数
func NewSMTPMailer(cfg config.SMTPConfig, frontendURL string) *SMTPMailer {
	return &SMTPMailer{cfg: cfg, frontendURL: frontendURL}
}

// SendPasswordReset 发送包含重置链接的邮件，链接 1 小时内有效。
func (m *SMTPMailer) SendPasswordReset(email, token string) error {
	resetURL := fmt.Sprintf("%s/reset-password?token=%s", m.frontendURL, token)

	var b strings.Builder
	b.WriteString("From: " + m.cfg.From + "\r\n")
	b.WriteString("To: " + email + "\r\n")
	b.WriteString("Subject: EIL Password Reset Request\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">`)
	b.WriteString(`<h2 style="color: #003366;">Password Reset Request</h2>`)
	b.WriteString(`<p>You have requested to reset your password for your EIL account.</p>`)
	b.WriteString(`<p>Click the link below to reset your password:</p>`)
	b.WriteString(`<a href="` + resetURL + `" style="background-color: #003366; color: white; padding: 12px 24px; text-decoration: none; border-radius: 5px; display: inline-block;">Reset Password</a>`)
	b.WriteString(`<p>This link will expire in 1 hour.</p>`)
	b.WriteString(`<p>If you did not request this password reset, please ignore this email.</p>`)
	b.WriteString(`<p>Best regards,<br>EIL IT Support</p>`)
	b.WriteString(`</div>`)

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}
	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{email}, []byte(b.String())); err != nil {
		return fmt.Errorf("send reset mail: %w", err)
	}
	return nil
}
