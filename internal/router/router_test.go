package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/adventcalendar/internal/handler"
	"github.com/adventcalendar/internal/service"
	"github.com/gin-gonic/gin"
)

func testContent(t *testing.T) *service.CalendarContent {
	t.Helper()
	entries := make([]service.CalendarEntry, 0, service.DoorCount)
	for day := 1; day <= service.DoorCount; day++ {
		entries = append(entries, service.CalendarEntry{Day: day, Type: service.ContentText, Title: "Tag", Content: "Inhalt"})
	}
	content, err := service.NewCalendarContent(entries)
	if err != nil {
		t.Fatalf("failed to build content: %v", err)
	}
	return content
}

func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	at := time.Date(2025, 12, 5, 12, 0, 0, 0, service.LoadReferenceLocation(service.ReferenceTimezone))
	policy := service.NewUnlockPolicy(service.WithClock(func() time.Time { return at }))

	return SetupRouter("test-secret", handler.Options{
		Content: testContent(t),
		Policy:  policy,
	})
}

func TestSetupRouterServesEmbeddedAssets(t *testing.T) {
	r := setupTestRouter(t)

	for _, path := range []string{"/static/advent.js", "/static/advent.css"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		if rr.Code != http.StatusOK {
			t.Fatalf("%s: expected status %d, got %d", path, http.StatusOK, rr.Code)
		}
		if rr.Body.Len() == 0 {
			t.Fatalf("%s: expected non-empty body", path)
		}
	}
}

func TestSetupRouterPing(t *testing.T) {
	r := setupTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), "pong") {
		t.Fatalf("unexpected ping response %d %q", rr.Code, rr.Body.String())
	}
}

func TestSetupRouterSecretModeUsesSessionCookie(t *testing.T) {
	r := setupTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/secret-mode", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}

	session := findCookie(rr.Result().Cookies(), handler.ModeSessionName)
	if session == nil {
		t.Fatalf("expected %s cookie to be set", handler.ModeSessionName)
	}
	if !session.HttpOnly || session.SameSite != http.SameSiteLaxMode {
		t.Fatalf("unexpected cookie attributes: %+v", session)
	}
	// 隐藏模式只是浏览器会话 Cookie，不带 Max-Age/Expires
	if session.MaxAge != 0 || !session.Expires.IsZero() {
		t.Fatalf("expected browser-session cookie, got MaxAge=%d Expires=%v", session.MaxAge, session.Expires)
	}
	if findCookie(rr.Result().Cookies(), handler.VisitorSessionName) != nil {
		t.Fatalf("secret mode should not touch %s", handler.VisitorSessionName)
	}

	// 带上会话后第 24 扇门也应可以访问
	req = httptest.NewRequest(http.MethodGet, "/api/doors/24", nil)
	req.AddCookie(session)
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected door 24 unlocked in secret mode, got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestSetupRouterOpenedDoorsUseLongLivedCookie(t *testing.T) {
	r := setupTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/doors/3/open", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rr.Code, rr.Body.String())
	}
	visitor := findCookie(rr.Result().Cookies(), handler.VisitorSessionName)
	if visitor == nil || visitor.MaxAge != 365*24*60*60 {
		t.Fatalf("expected year-long %s cookie, got %+v", handler.VisitorSessionName, visitor)
	}
}

func TestSetupRouterUnknownRoute(t *testing.T) {
	r := setupTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, rr.Code)
	}
}

func findCookie(cookies []*http.Cookie, name string) *http.Cookie {
	for _, c := range cookies {
		if c.Name == name {
			return c
		}
	}
	return nil
}
