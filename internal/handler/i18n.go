package handler

import "github.com/adventcalendar/internal/locale"

// pageMessages 页面固定文案，[英文, 德文]
var pageMessages = map[string][2]string{
	"today":         {"Today", "Heute"},
	"door":          {"Door", "Türchen"},
	"december":      {"December", "Dezember"},
	"stillLocked":   {"still locked", "noch verschlossen"},
	"alreadyOpened": {"already opened", "bereits geöffnet"},
	"secretActive":  {"Secret Mode Active", "Geheimmodus aktiv"},
	"previewActive": {"Preview Mode Active", "Vorschaumodus aktiv"},
	"allUnlocked":   {"All doors are unlocked for you", "Alle Türchen sind für dich geöffnet"},
	"secretHint":    {`Press "#" again to return to normal mode`, `Drücke erneut "#", um zum normalen Modus zurückzukehren`},
	"close":         {"Close", "Schließen"},
	"openLink":      {"Open Link", "Link öffnen"},
	"validUntil":    {"Valid until:", "Gültig bis:"},
	"errorHint":     {"Please try refreshing the page", "Bitte lade die Seite neu"},
	"loadError":     {calendarLoadErrorMessage, "Fehler beim Laden der Daten"},
}

func pageText(language string) map[string]string {
	text := make(map[string]string, len(pageMessages))
	for key, pair := range pageMessages {
		text[key] = locale.Pick(language, pair[0], pair[1])
	}
	return text
}
