package recaptcha

import (
	"encoding/json"
	"net/http"
	"net/url"
	"time"
)

// GoogleVerifyURL Google reCAPTCHA 校验接口
const GoogleVerifyURL = "https://www.google.com/recaptcha/api/siteverify"

// Verifier 校验客户端提交的 reCAPTCHA token。
// handler 通过接口依赖它，测试时可以替换为桩实现。
type Verifier interface {
	Verify(token, remoteIP string) bool
}

// GoogleVerifier 调用 Google siteverify 的实现。
type GoogleVerifier struct {
	Secret   string
	Endpoint string
	Client   *http.Client
}

// NewGoogleVerifier 构造函数
func NewGoogleVerifier(secret string) *GoogleVerifier {
	return &GoogleVerifier{
		Secret:   secret,
		Endpoint: GoogleVerifyURL,
		Client:   &http.Client{Timeout: 5 * time.Second},
	}
}

type verifyResponse struct {
	Success bool `json:"success"`
}

// Verify 校验 token，任何网络或接口错误都按失败处理。
func (v *GoogleVerifier) Verify(token, remoteIP string) bool {
	if token == "" {
		return false
	}

	form := url.Values{}
	form.Set("secret", v.Secret)
	form.Set("response", token)
	if remoteIP != "" {
		form.Set("remoteip", remoteIP)
	}

	resp, err := v.Client.PostForm(v.Endpoint, form)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false
	}

	var result verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return false
	}
	return result.Success
}
