package handler

import (
	"bytes"
	"log"
	"strings"

	"github.com/adventcalendar/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	markdownEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML()),
	)
	sanitizer = bluemonday.UGCPolicy()
)

// renderContentHTML 把条目正文当作 Markdown 渲染，并做 UGC 级别的清洗。
func renderContentHTML(content string) string {
	content = strings.TrimSpace(content)
	if content == "" {
		return ""
	}

	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(content), &buf); err != nil {
		log.Printf("[WARN] render entry markdown failed: %v", err)
		return sanitizer.Sanitize(content)
	}
	return sanitizer.Sanitize(buf.String())
}

func entryToPayload(entry service.CalendarEntry) gin.H {
	item := gin.H{
		"day":         entry.Day,
		"type":        entry.Type,
		"title":       entry.Title,
		"content":     entry.Content,
		"contentHtml": renderContentHTML(entry.Content),
	}

	if entry.ImageURL != "" {
		item["imageUrl"] = entry.ImageURL
	}
	if len(entry.GalleryImages) > 0 {
		item["galleryImages"] = entry.GalleryImages
	}
	if entry.LinkURL != "" {
		item["linkUrl"] = entry.LinkURL
	}
	if entry.AudioURL != "" {
		item["audioUrl"] = entry.AudioURL
	}
	if entry.VoucherCode != "" {
		item["voucherCode"] = entry.VoucherCode
	}
	if entry.VoucherValidUntil != "" {
		item["voucherValidUntil"] = entry.VoucherValidUntil
	}

	return item
}
