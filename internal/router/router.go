package router

import (
	"html/template"
	"io/fs"
	"net/http"
	"strings"

	"github.com/adventcalendar/internal/handler"
	"github.com/adventcalendar/web"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(sessionSecret string, opts handler.Options) *gin.Engine {
	r := gin.Default()

	// 配置会话中间件
	secret := strings.TrimSpace(sessionSecret)
	if secret == "" {
		secret = "advent-dev-secret"
	}
	store := cookie.NewStore([]byte(secret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   365 * 24 * 60 * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	// advent_session 长期保存开门记录，advent_mode 只活在当前浏览器会话
	r.Use(sessions.SessionsMany(handler.SessionNames(), store))

	// 加载内嵌模板
	tmpl := template.Must(template.New("").ParseFS(web.Assets, "template/*.html"))
	r.SetHTMLTemplate(tmpl)

	// 静态文件服务
	staticFS, err := fs.Sub(web.Assets, "static")
	if err != nil {
		panic(err)
	}
	r.StaticFS("/static", http.FS(staticFS))

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	api := handler.NewAPI(opts)
	r.Use(api.LocaleMiddleware())

	r.GET("/", api.ShowCalendar)

	doors := r.Group("/api")
	{
		doors.GET("/doors", api.ListDoors)
		doors.GET("/doors/:day", api.GetDoor)
		doors.POST("/doors/:day/open", api.OpenDoor)
		doors.POST("/doors/:day/toggle", api.ToggleDoor)
		doors.POST("/secret-mode", api.ToggleSecretMode)
	}

	return r
}
