package locale

// Pick returns the text matching the request language, defaulting to English.
func Pick(language, english, german string) string {
	if NormalizeLanguage(language) == LanguageGerman {
		if german != "" {
			return german
		}
		return english
	}
	if english != "" {
		return english
	}
	return german
}
