package handler

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/adventcalendar/internal/locale"
	"github.com/gin-gonic/gin"
)

const (
	localeContextKey     = "__request_locale"
	languageCookieName   = "advent_lang"
	languageCookieMaxAge = 365 * 24 * 60 * 60
)

var countryHeaderCandidates = []string{
	"CF-IPCountry",
	"X-Geo-Country",
	"X-Forwarded-Country",
	"X-Country-Code",
}

// LocaleMiddleware resolves request language and sets headers for downstream caching.
func (a *API) LocaleMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		pref := requestLocale(c)
		c.Header("Content-Language", pref.HTMLLang)
		varyHeaders := append([]string{"Accept-Language"}, countryHeaderCandidates...)
		if readLanguageCookie(c) != "" || locale.NormalizeLanguage(c.Query("lang")) != "" {
			varyHeaders = append(varyHeaders, "Cookie")
		}
		appendVaryHeader(c, varyHeaders...)
		c.Next()
	}
}

func requestLocale(c *gin.Context) locale.Preference {
	if cached, exists := c.Get(localeContextKey); exists {
		if pref, ok := cached.(locale.Preference); ok {
			return pref
		}
	}
	language, persist := resolveLanguage(c)
	pref := locale.PreferenceForLanguage(language)
	if persist {
		persistLanguage(c, pref.Language)
	}
	c.Set(localeContextKey, pref)
	return pref
}

// resolveLanguage 优先级：?lang= > cookie > 国家头 > Accept-Language > 英文
func resolveLanguage(c *gin.Context) (string, bool) {
	if override := locale.NormalizeLanguage(c.Query("lang")); override != "" {
		return override, true
	}
	if cookie := readLanguageCookie(c); cookie != "" {
		return cookie, false
	}
	if country := readCountryHeader(c); country != "" {
		return locale.LanguageFromCountryCode(country), false
	}
	if fromHeader := locale.LanguageFromAcceptLanguage(c.GetHeader("Accept-Language")); fromHeader != "" {
		return fromHeader, false
	}
	return locale.LanguageEnglish, false
}

func readLanguageCookie(c *gin.Context) string {
	value, err := c.Cookie(languageCookieName)
	if err != nil {
		return ""
	}
	return locale.NormalizeLanguage(value)
}

func persistLanguage(c *gin.Context, language string) {
	normalized := locale.NormalizeLanguage(language)
	if normalized == "" {
		return
	}
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     languageCookieName,
		Value:    normalized,
		Path:     "/",
		HttpOnly: true,
		Secure:   strings.EqualFold(detectScheme(c), "https"),
		MaxAge:   languageCookieMaxAge,
		Expires:  time.Now().Add(365 * 24 * time.Hour),
		SameSite: http.SameSiteLaxMode,
	})
}

func detectScheme(c *gin.Context) string {
	if proto := strings.TrimSpace(c.GetHeader("X-Forwarded-Proto")); proto != "" {
		first, _, _ := strings.Cut(proto, ",")
		return strings.ToLower(strings.TrimSpace(first))
	}
	if c.Request != nil && c.Request.TLS != nil {
		return "https"
	}
	return "http"
}

// buildLanguageSwitch 生成切换语言的链接，保留其余查询参数（例如 preview）
func buildLanguageSwitch(c *gin.Context) map[string]string {
	path := "/"
	rawQuery := ""
	if c.Request != nil && c.Request.URL != nil {
		path = c.Request.URL.Path
		rawQuery = c.Request.URL.RawQuery
	}
	values, _ := url.ParseQuery(rawQuery)
	links := make(map[string]string, 2)
	for _, language := range []string{locale.LanguageEnglish, locale.LanguageGerman} {
		values.Set("lang", language)
		links[language] = path + "?" + values.Encode()
	}
	return links
}

func readCountryHeader(c *gin.Context) string {
	for _, header := range countryHeaderCandidates {
		value := strings.TrimSpace(c.GetHeader(header))
		if value == "" {
			continue
		}
		candidate, _, _ := strings.Cut(value, ",")
		if candidate = strings.TrimSpace(candidate); candidate != "" {
			return candidate
		}
	}
	return ""
}

func appendVaryHeader(c *gin.Context, headers ...string) {
	existing := c.Writer.Header().Get("Vary")
	seen := make(map[string]struct{})
	order := make([]string, 0, len(headers))
	for _, token := range append(strings.Split(existing, ","), headers...) {
		trimmed := strings.TrimSpace(token)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}
		order = append(order, trimmed)
	}
	if len(order) > 0 {
		c.Header("Vary", strings.Join(order, ", "))
	}
}
