package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func newTestRouter(m *Manager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/login", m.Login)
	router.POST("/login", m.Login)
	router.GET("/logout", m.Logout)
	return router
}

func postLogin(router *gin.Engine, username, password string) *httptest.ResponseRecorder {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func sessionIDFromResponse(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	cookie := rec.Header().Get("Set-Cookie")
	if !strings.HasPrefix(cookie, "id=") {
		t.Fatalf("expected id cookie, got %q", cookie)
	}
	return strings.SplitN(strings.TrimPrefix(cookie, "id="), ";", 2)[0]
}

func TestLoginHandlerNewCredentials(t *testing.T) {
	m, st := newTestManager(t)
	router := newTestRouter(m)

	rec := postLogin(router, "alice", "p1")

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	cookie := rec.Header().Get("Set-Cookie")
	if !strings.Contains(cookie, "; Expires=") || !strings.Contains(cookie, "; Path=/") {
		t.Fatalf("unexpected cookie attributes: %q", cookie)
	}
	if body := rec.Body.String(); !strings.Contains(body, "welcome alice") {
		t.Fatalf("expected welcome view, got %q", body)
	}

	// ストアに1行追加されていること
	id := sessionIDFromResponse(t, rec)
	identity, err := st.FindByID(context.Background(), id)
	if err != nil {
		t.Fatalf("FindByID returned error: %v", err)
	}
	if identity.Username != "alice" {
		t.Fatalf("unexpected username: %q", identity.Username)
	}
}

func TestLoginHandlerRepeatReturnsSameIdentity(t *testing.T) {
	m, _ := newTestManager(t)
	router := newTestRouter(m)

	first := sessionIDFromResponse(t, postLogin(router, "alice", "p1"))
	second := sessionIDFromResponse(t, postLogin(router, "alice", "p1"))

	if first != second {
		t.Fatalf("expected the same identity id, got %q and %q", first, second)
	}
}

func TestLoginHandlerResolvesCookieSession(t *testing.T) {
	m, _ := newTestManager(t)
	router := newTestRouter(m)

	id := sessionIDFromResponse(t, postLogin(router, "alice", "p1"))

	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	req.Header.Set("Cookie", "id="+id)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	if body := rec.Body.String(); !strings.Contains(body, "welcome alice") {
		t.Fatalf("expected welcome view, got %q", body)
	}
	// クッキーでの解決時は新しい Set-Cookie を発行しない
	if cookie := rec.Header().Get("Set-Cookie"); cookie != "" {
		t.Fatalf("unexpected Set-Cookie: %q", cookie)
	}
}

func TestLoginHandlerAnonymous(t *testing.T) {
	m, _ := newTestManager(t)
	router := newTestRouter(m)

	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	if body := rec.Body.String(); !strings.Contains(body, "login form") {
		t.Fatalf("expected login form, got %q", body)
	}
	if cookie := rec.Header().Get("Set-Cookie"); cookie != "" {
		t.Fatalf("unexpected Set-Cookie: %q", cookie)
	}
}

func TestLoginHandlerUnknownCookieFallsThrough(t *testing.T) {
	m, _ := newTestManager(t)
	router := newTestRouter(m)

	// 解決できないIDはエラーではなく匿名扱い
	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	req.Header.Set("Cookie", "id=never-issued")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	if body := rec.Body.String(); !strings.Contains(body, "login form") {
		t.Fatalf("expected login form, got %q", body)
	}
}

func TestLogout(t *testing.T) {
	m, st := newTestManager(t)
	router := newTestRouter(m)

	id := sessionIDFromResponse(t, postLogin(router, "alice", "p1"))

	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	req.Header.Set("Cookie", "id="+id)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusFound {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Fatalf("unexpected location: %q", loc)
	}
	want := "id=; Expires=Thu, 01 Jan 1970 00:00:00 GMT; Path=/"
	if cookie := rec.Header().Get("Set-Cookie"); cookie != want {
		t.Fatalf("unexpected clear cookie: %q", cookie)
	}

	// ログアウトはサーバー側のレコードを消さない
	if _, err := st.FindByID(context.Background(), id); err != nil {
		t.Fatalf("identity should survive logout: %v", err)
	}
}

func TestLogoutIdempotent(t *testing.T) {
	m, _ := newTestManager(t)
	router := newTestRouter(m)

	var cookies [2]string
	for i := range cookies {
		req := httptest.NewRequest(http.MethodGet, "/logout", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusFound {
			t.Fatalf("unexpected status on call %d: %d", i+1, rec.Code)
		}
		cookies[i] = rec.Header().Get("Set-Cookie")
	}
	if cookies[0] != cookies[1] {
		t.Fatalf("logout not idempotent: %q vs %q", cookies[0], cookies[1])
	}
}

func TestLoginHandlerStoreFailure(t *testing.T) {
	m, st := newTestManager(t)
	router := newTestRouter(m)

	// ストアを閉じて書き込み失敗を起こす
	if err := st.Close(); err != nil {
		t.Fatalf("failed to close store: %v", err)
	}

	rec := postLogin(router, "alice", "p1")

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Error:") {
		t.Fatalf("expected generic error page, got %q", body)
	}
	// 生のエラーメッセージを漏らさない
	if strings.Contains(body, "sql") || strings.Contains(body, "database") {
		t.Fatalf("error page leaked internal detail: %q", body)
	}
}
