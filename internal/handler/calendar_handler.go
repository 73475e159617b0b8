package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/adventcalendar/internal/service"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	calendarLoadErrorMessage = "Failed to load calendar data"
	doorLockedMessage        = "this door is still locked"
	doorNotFoundMessage      = "door not found"
)

// doorItem 是页面与 API 共用的门视图
type doorItem struct {
	Day      int    `json:"day"`
	Title    string `json:"title"`
	Type     string `json:"type"`
	State    string `json:"state"`
	Unlocked bool   `json:"unlocked"`
	Opened   bool   `json:"opened"`
}

func (a *API) buildDoorItems(session *service.AdventSession) []doorItem {
	entries := a.content.Entries()
	items := make([]doorItem, 0, len(entries))
	for _, entry := range entries {
		view := session.Door(entry.Day)
		items = append(items, doorItem{
			Day:      entry.Day,
			Title:    entry.Title,
			Type:     string(entry.Type),
			State:    string(view.State),
			Unlocked: view.Unlocked,
			Opened:   view.Opened,
		})
	}
	return items
}

// contentReady 在内容加载失败时返回 false，调用方不再渲染任何门。
func (a *API) contentReady() bool {
	return a.contentErr == nil && a.content != nil
}

// ShowCalendar 渲染日历主页
func (a *API) ShowCalendar(c *gin.Context) {
	pref := requestLocale(c)
	text := pageText(pref.Language)

	if !a.contentReady() {
		c.HTML(http.StatusServiceUnavailable, "error.html", gin.H{
			"title":    a.siteTitle,
			"htmlLang": pref.HTMLLang,
			"text":     text,
			"error":    text["loadError"],
		})
		return
	}

	session := a.newAdventSession(c)

	c.HTML(http.StatusOK, "calendar.html", gin.H{
		"title":      a.siteTitle,
		"lang":       pref.Language,
		"htmlLang":   pref.HTMLLang,
		"langSwitch": buildLanguageSwitch(c),
		"text":       text,
		"today":      a.policy.FormatDate(a.policy.CurrentDate()),
		"doors":      a.buildDoorItems(session),
		"preview":    session.PreviewMode(),
		"secret":     session.SecretMode(),
		"override":   session.OverrideActive(),
		"footer":     "Frohe Weihnachten",
	})
}

// ListDoors 返回全部门的状态
func (a *API) ListDoors(c *gin.Context) {
	if !a.contentReady() {
		respondError(c, http.StatusServiceUnavailable, calendarLoadErrorMessage)
		return
	}

	session := a.newAdventSession(c)

	c.JSON(http.StatusOK, gin.H{
		"doors":   a.buildDoorItems(session),
		"preview": session.PreviewMode(),
		"secret":  session.SecretMode(),
	})
}

// GetDoor 返回已解锁门后的内容
func (a *API) GetDoor(c *gin.Context) {
	day, ok := a.parseDay(c)
	if !ok {
		return
	}

	session := a.newAdventSession(c)
	if !session.IsUnlocked(day) {
		respondError(c, http.StatusForbidden, doorLockedMessage)
		return
	}

	entry, _ := a.content.Entry(day)
	view := session.Door(day)

	c.JSON(http.StatusOK, gin.H{
		"entry":  entryToPayload(entry),
		"state":  view.State,
		"opened": view.Opened,
	})
}

// OpenDoor 打开门并记录
func (a *API) OpenDoor(c *gin.Context) {
	day, ok := a.parseDay(c)
	if !ok {
		return
	}

	session := a.newAdventSession(c)
	changed, err := session.Open(day)
	if err != nil {
		handleDoorError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"day":     day,
		"state":   session.State(day),
		"opened":  true,
		"changed": changed,
	})
}

// ToggleDoor 直接翻转门的开启记录
func (a *API) ToggleDoor(c *gin.Context) {
	day, ok := a.parseDay(c)
	if !ok {
		return
	}

	session := a.newAdventSession(c)
	opened, err := session.Toggle(day)
	if err != nil {
		handleDoorError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"day":    day,
		"state":  session.State(day),
		"opened": opened,
	})
}

// ToggleSecretMode 翻转隐藏模式，状态只保存在浏览器会话 Cookie 里
func (a *API) ToggleSecretMode(c *gin.Context) {
	session := sessions.DefaultMany(c, ModeSessionName)
	enabled, _ := session.Get(sessionKeySecretMode).(bool)
	enabled = !enabled
	session.Options(modeSessionOptions)
	session.Set(sessionKeySecretMode, enabled)
	if err := session.Save(); err != nil {
		log.Printf("[ERROR] save secret mode failed: %v", err)
		respondError(c, http.StatusInternalServerError, "failed to save session")
		return
	}

	if enabled {
		log.Printf("[INFO] secret mode activated")
	} else {
		log.Printf("[INFO] secret mode deactivated")
	}

	c.JSON(http.StatusOK, gin.H{"secret": enabled})
}

func (a *API) parseDay(c *gin.Context) (int, bool) {
	if !a.contentReady() {
		respondError(c, http.StatusServiceUnavailable, calendarLoadErrorMessage)
		return 0, false
	}

	day, err := parseIntParam(c, "day")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid day")
		return 0, false
	}

	if _, exists := a.content.Entry(day); !exists {
		respondError(c, http.StatusNotFound, doorNotFoundMessage)
		return 0, false
	}

	return day, true
}

func handleDoorError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrDoorLocked):
		respondError(c, http.StatusForbidden, doorLockedMessage)
	case errors.Is(err, service.ErrDayOutOfRange):
		respondError(c, http.StatusNotFound, doorNotFoundMessage)
	default:
		respondError(c, http.StatusInternalServerError, "operation failed")
	}
}
