package locale

import "strings"

const (
	LanguageEnglish = "en"
	LanguageGerman  = "de"
)

type Preference struct {
	Language string
	HTMLLang string
}

func NormalizeLanguage(raw string) string {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	if trimmed == "" {
		return ""
	}
	if strings.HasPrefix(trimmed, "de") {
		return LanguageGerman
	}
	if strings.HasPrefix(trimmed, "en") {
		return LanguageEnglish
	}
	return ""
}

// LanguageFromCountryCode 只识别德语区国家
func LanguageFromCountryCode(code string) string {
	switch strings.ToUpper(strings.TrimSpace(code)) {
	case "":
		return ""
	case "DE", "AT", "CH", "LI":
		return LanguageGerman
	default:
		return LanguageEnglish
	}
}

// LanguageFromAcceptLanguage 取第一个可识别的语言标签
func LanguageFromAcceptLanguage(header string) string {
	for _, part := range strings.Split(header, ",") {
		tag, _, _ := strings.Cut(part, ";")
		if language := NormalizeLanguage(tag); language != "" {
			return language
		}
	}
	return ""
}

func PreferenceForLanguage(language string) Preference {
	if NormalizeLanguage(language) == LanguageGerman {
		return Preference{Language: LanguageGerman, HTMLLang: "de-DE"}
	}
	return Preference{Language: LanguageEnglish, HTMLLang: "en-US"}
}
