package handler

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/adventcalendar/internal/config"
	"github.com/adventcalendar/internal/service"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// VisitorSessionName 保存访客的本地记录，长期有效
	VisitorSessionName = "advent_session"
	// ModeSessionName 只保存隐藏模式，关闭浏览器即失效
	ModeSessionName = "advent_mode"

	sessionKeySecretMode = "secret_mode"

	visitorCookieName    = "advent_visitor_id"
	visitorCookieMaxAge  = 365 * 24 * 60 * 60
	visitorIDContextKey  = "__visitor_id"
	sessionStoragePrefix = "ls:"
)

// sessionStorage 把访客的“localStorage”放进签名的会话 Cookie，数据只留在浏览器里。
type sessionStorage struct {
	session sessions.Session
}

func newSessionStorage(c *gin.Context) *sessionStorage {
	return &sessionStorage{session: sessions.DefaultMany(c, VisitorSessionName)}
}

func (s *sessionStorage) GetItem(key string) (string, bool, error) {
	raw := s.session.Get(sessionStoragePrefix + key)
	if raw == nil {
		return "", false, nil
	}
	value, ok := raw.(string)
	if !ok {
		return "", false, fmt.Errorf("session item %s has type %T", key, raw)
	}
	return value, true, nil
}

func (s *sessionStorage) SetItem(key, value string) error {
	s.session.Set(sessionStoragePrefix+key, value)
	return s.session.Save()
}

func (s *sessionStorage) RemoveItem(key string) error {
	s.session.Delete(sessionStoragePrefix + key)
	return s.session.Save()
}

// storageFor 根据配置的驱动返回当前访客的存储。
func (a *API) storageFor(c *gin.Context) service.KeyValueStorage {
	if a.storageDriver == config.StorageDriverSQLite && a.db != nil {
		return service.NewSQLiteStorage(a.db, a.ensureVisitorID(c))
	}
	return newSessionStorage(c)
}

func (a *API) ensureVisitorID(c *gin.Context) string {
	if cached, exists := c.Get(visitorIDContextKey); exists {
		if id, ok := cached.(string); ok {
			return id
		}
	}

	if id, err := c.Cookie(visitorCookieName); err == nil && strings.TrimSpace(id) != "" {
		c.Set(visitorIDContextKey, id)
		return id
	}

	visitorID := uuid.NewString()
	secure := strings.EqualFold(detectScheme(c), "https")

	http.SetCookie(c.Writer, &http.Cookie{
		Name:     visitorCookieName,
		Value:    visitorID,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		MaxAge:   visitorCookieMaxAge,
		Expires:  time.Now().Add(365 * 24 * time.Hour),
		SameSite: http.SameSiteLaxMode,
	})

	c.Set(visitorIDContextKey, visitorID)
	return visitorID
}

// SessionNames 列出需要通过 sessions.SessionsMany 注册的会话
func SessionNames() []string {
	return []string{VisitorSessionName, ModeSessionName}
}

// modeSessionOptions 不设置 MaxAge，隐藏模式不会跨浏览器会话保留
var modeSessionOptions = sessions.Options{
	Path:     "/",
	MaxAge:   0,
	HttpOnly: true,
	SameSite: http.SameSiteLaxMode,
}

func secretModeEnabled(c *gin.Context) bool {
	enabled, _ := sessions.DefaultMany(c, ModeSessionName).Get(sessionKeySecretMode).(bool)
	return enabled
}

// newAdventSession 为当前请求组装状态对象。
func (a *API) newAdventSession(c *gin.Context) *service.AdventSession {
	doors := service.NewOpenedDoorStore(a.storageFor(c))
	return service.NewAdventSession(a.policy, doors, service.SessionOptions{
		Preview: previewRequested(c),
		Secret:  secretModeEnabled(c),
	})
}
