package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/adventcalendar/internal/config"
	"github.com/adventcalendar/internal/db"
	"github.com/adventcalendar/internal/service"
)

const demoVisitorID = "demo-visitor"

// 示例日历生成器
func main() {
	cfg := config.Load()

	fmt.Println("开始生成示例日历...")

	entries := buildSampleEntries()
	if _, err := service.NewCalendarContent(entries); err != nil {
		log.Fatal("示例数据校验失败:", err)
	}
	if err := writeCalendarFile(cfg.CalendarDataPath, entries); err != nil {
		log.Fatal("写入日历文件失败:", err)
	}

	// 为演示访客预置几扇已打开的门
	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatal("数据库初始化失败:", err)
	}
	seedDemoVisitor([]int{1, 2, 3})

	fmt.Println("示例数据生成完成！")
	fmt.Printf("日历: %s (%d 扇门)\n", cfg.CalendarDataPath, len(entries))
	fmt.Printf("演示访客: %s\n", demoVisitorID)
}

func writeCalendarFile(path string, entries []service.CalendarEntry) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

func seedDemoVisitor(days []int) {
	doors := service.NewOpenedDoorStore(service.NewSQLiteStorage(db.DB, demoVisitorID))
	for _, day := range days {
		if doors.MarkOpened(day) {
			fmt.Printf("已打开第 %d 扇门\n", day)
		}
	}
}

// 24 天的示例内容，覆盖所有内容类型
func buildSampleEntries() []service.CalendarEntry {
	text := func(day int, title, content string) service.CalendarEntry {
		return service.CalendarEntry{Day: day, Type: service.ContentText, Title: title, Content: content}
	}
	image := func(day int, title, content, url string) service.CalendarEntry {
		return service.CalendarEntry{Day: day, Type: service.ContentImage, Title: title, Content: content, ImageURL: url}
	}

	return []service.CalendarEntry{
		text(1, "Willkommen!", "Schön, dass du da bist. **24 Türchen** warten auf dich."),
		image(2, "Winterwald", "Ein verschneiter Spaziergang.", "https://picsum.photos/seed/advent-2/800/600"),
		text(3, "Plätzchen-Rezept", "## Vanillekipferl\n\n- 250 g Mehl\n- 200 g Butter\n- 100 g gemahlene Mandeln\n- 80 g Zucker"),
		{
			Day:     4,
			Type:    service.ContentLink,
			Title:   "Weihnachtsplaylist",
			Content: "Die passende Musik für den Abend.",
			LinkURL: "https://example.com/playlist",
		},
		text(5, "Nikolaus-Vorabend", "Stiefel putzen nicht vergessen!"),
		{
			Day:               6,
			Type:              service.ContentVoucher,
			Title:             "Nikolaus-Gutschein",
			Content:           "Ein gemeinsamer Besuch auf dem Weihnachtsmarkt.",
			VoucherCode:       "NIKO-2025",
			VoucherValidUntil: "31.12.2025",
		},
		image(7, "Lichterglanz", "", "https://picsum.photos/seed/advent-7/800/600"),
		text(8, "Gedicht", "Advent, Advent,\nein Lichtlein brennt."),
		{
			Day:           9,
			Type:          service.ContentGallery,
			Title:         "Erinnerungen",
			Content:       "Ein paar Bilder vom letzten Winter.",
			GalleryImages: []string{"https://picsum.photos/seed/advent-9a/800/600", "https://picsum.photos/seed/advent-9b/800/600", "https://picsum.photos/seed/advent-9c/800/600"},
		},
		text(10, "Rätsel", "Was hat Wurzeln, die niemand sieht, und ist größer als Bäume? *Ein Berg.*"),
		image(11, "Schneemann", "Gebaut aus drei Kugeln.", "https://picsum.photos/seed/advent-11/800/600"),
		{
			Day:      12,
			Type:     service.ContentText,
			Title:    "Musik",
			Content:  "Heute gibt es ein Lied zum Mitsingen.",
			AudioURL: "https://example.com/audio/jingle.mp3",
		},
		text(13, "Santa Lucia", "Heute ist Luciatag."),
		{
			Day:               14,
			Type:              service.ContentVoucher,
			Title:             "Filmabend",
			Content:           "Popcorn inklusive.",
			VoucherCode:       "KINO-14",
			VoucherValidUntil: "15.01.2026",
		},
		text(15, "Dritter Advent", "Drei Kerzen brennen schon."),
		image(16, "Glühwein", "Mit Zimt und Orange.", "https://picsum.photos/seed/advent-16/800/600"),
		{
			Day:     17,
			Type:    service.ContentLink,
			Title:   "Bastelanleitung",
			Content: "Papiersterne falten.",
			LinkURL: "https://example.com/sterne",
		},
		text(18, "Fun Fact", "Der erste Adventskranz hatte 24 Kerzen."),
		image(19, "Eiszapfen", "", "https://picsum.photos/seed/advent-19/800/600"),
		text(20, "Vorfreude", "Nur noch vier Mal schlafen."),
		{
			Day:           21,
			Type:          service.ContentGallery,
			Title:         "Wintersonnenwende",
			GalleryImages: []string{"https://picsum.photos/seed/advent-21a/800/600", "https://picsum.photos/seed/advent-21b/800/600"},
		},
		text(22, "Vierter Advent", "Alle Kerzen brennen."),
		{
			Day:               23,
			Type:              service.ContentVoucher,
			Title:             "Frühstück im Bett",
			VoucherCode:       "BETT-23",
			VoucherValidUntil: "28.02.2026",
		},
		image(24, "Frohe Weihnachten!", "Danke fürs Mitmachen.", "https://picsum.photos/seed/advent-24/800/600"),
	}
}
