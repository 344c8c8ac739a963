package recaptcha

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestVerifier(endpoint string) *GoogleVerifier {
	return &GoogleVerifier{
		Secret:   "test-secret",
		Endpoint: endpoint,
		Client:   &http.Client{Timeout: time.Second},
	}
}

// TestVerify_Success 接口返回 success=true 时校验通过
func TestVerify_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Fatalf("解析表单失败: %v", err)
		}
		if r.PostForm.Get("secret") != "test-secret" {
			t.Errorf("secret 未透传: %q", r.PostForm.Get("secret"))
		}
		if r.PostForm.Get("response") != "the-token" {
			t.Errorf("token 未透传: %q", r.PostForm.Get("response"))
		}
		w.Write([]byte(`{"success": true}`))
	}))
	defer srv.Close()

	v := newTestVerifier(srv.URL)
	if !v.Verify("the-token", "1.2.3.4") {
		t.Error("期望校验通过")
	}
}

// TestVerify_Failure success=false 或接口异常都按失败处理
func TestVerify_Failure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": false, "error-codes": ["invalid-input-response"]}`))
	}))
	defer srv.Close()

	v := newTestVerifier(srv.URL)
	if v.Verify("bad-token", "") {
		t.Error("success=false 时不应通过")
	}
}

// TestVerify_EmptyToken 空 token 直接失败，不发请求
func TestVerify_EmptyToken(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	v := newTestVerifier(srv.URL)
	if v.Verify("", "") {
		t.Error("空 token 不应通过")
	}
	if called {
		t.Error("空 token 不应发起请求")
	}
}

// TestVerify_ServerError 5xx、非法 JSON、网络错误都按失败处理
func TestVerify_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	v := newTestVerifier(srv.URL)
	if v.Verify("token", "") {
		t.Error("5xx 时不应通过")
	}

	srv2 := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer srv2.Close()

	v2 := newTestVerifier(srv2.URL)
	if v2.Verify("token", "") {
		t.Error("非法 JSON 时不应通过")
	}

	// 服务不可达
	srv.Close()
	if v.Verify("token", "") {
		t.Error("网络错误时不应通过")
	}
}
