package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// ErrCalendarInvalid 表示日历内容的结构不符合要求
var ErrCalendarInvalid = errors.New("invalid calendar data format")

// ContentType 是门后内容的类型
type ContentType string

const (
	ContentText    ContentType = "text"
	ContentImage   ContentType = "image"
	ContentVoucher ContentType = "voucher"
	ContentLink    ContentType = "link"
	ContentGallery ContentType = "gallery"
)

var supportedContentTypes = []ContentType{ContentText, ContentImage, ContentVoucher, ContentLink, ContentGallery}

// CalendarEntry 是某一天门后的内容，JSON 字段沿用静态数据文件的命名。
type CalendarEntry struct {
	Day               int         `json:"day"`
	Type              ContentType `json:"type"`
	Title             string      `json:"title"`
	Content           string      `json:"content"`
	ImageURL          string      `json:"imageUrl,omitempty"`
	GalleryImages     []string    `json:"galleryImages,omitempty"`
	LinkURL           string      `json:"linkUrl,omitempty"`
	AudioURL          string      `json:"audioUrl,omitempty"`
	VoucherCode       string      `json:"voucherCode,omitempty"`
	VoucherValidUntil string      `json:"voucherValidUntil,omitempty"`
}

// CalendarContent 在启动时加载一次日历内容，之后只读。
type CalendarContent struct {
	entries []CalendarEntry
	byDay   map[int]int
}

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ContentLoader 从文件路径或 http(s) 地址读取日历内容。
type ContentLoader struct {
	httpClient httpDoer
	timeout    time.Duration
}

// NewContentLoader 构造默认 10 秒超时的加载器。
func NewContentLoader() *ContentLoader {
	return &ContentLoader{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		timeout:    10 * time.Second,
	}
}

// Load 读取并校验日历内容；任何失败都视为致命错误，不重试。
func (l *ContentLoader) Load(ctx context.Context, source string) (*CalendarContent, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return nil, errors.New("calendar data source is empty")
	}

	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return l.fetch(ctx, source)
	}

	file, err := os.Open(source)
	if err != nil {
		return nil, fmt.Errorf("open calendar data: %w", err)
	}
	defer file.Close()

	return ParseCalendarContent(file)
}

func (l *ContentLoader) fetch(ctx context.Context, url string) (*CalendarContent, error) {
	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build calendar request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch calendar data: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("failed to load calendar data: %s", resp.Status)
	}

	return ParseCalendarContent(resp.Body)
}

// ParseCalendarContent 解析 JSON 数组并校验：恰好 24 条、日期 1..24 不重复、类型合法。
func ParseCalendarContent(r io.Reader) (*CalendarContent, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read calendar data: %w", err)
	}

	// 整个文档必须是一个 JSON 数组，后面不能再跟其他内容
	var entries []CalendarEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCalendarInvalid, err)
	}
	return NewCalendarContent(entries)
}

// NewCalendarContent 校验并包装内存中的条目，保留原始顺序。
func NewCalendarContent(entries []CalendarEntry) (*CalendarContent, error) {
	if len(entries) != DoorCount {
		return nil, fmt.Errorf("%w: expected %d entries, got %d", ErrCalendarInvalid, DoorCount, len(entries))
	}

	byDay := make(map[int]int, len(entries))
	for i, entry := range entries {
		if !ValidDay(entry.Day) {
			return nil, fmt.Errorf("%w: entry %d has day %d", ErrCalendarInvalid, i, entry.Day)
		}
		if _, exists := byDay[entry.Day]; exists {
			return nil, fmt.Errorf("%w: duplicate day %d", ErrCalendarInvalid, entry.Day)
		}
		if !isSupportedContentType(entry.Type) {
			return nil, fmt.Errorf("%w: day %d has unknown type %q", ErrCalendarInvalid, entry.Day, entry.Type)
		}
		byDay[entry.Day] = i
	}

	copied := make([]CalendarEntry, len(entries))
	copy(copied, entries)

	return &CalendarContent{entries: copied, byDay: byDay}, nil
}

func isSupportedContentType(t ContentType) bool {
	for _, supported := range supportedContentTypes {
		if t == supported {
			return true
		}
	}
	return false
}

// Entries 按数据源顺序返回全部条目。
func (c *CalendarContent) Entries() []CalendarEntry {
	entries := make([]CalendarEntry, len(c.entries))
	copy(entries, c.entries)
	return entries
}

// Entry 返回某一天的内容。
func (c *CalendarContent) Entry(day int) (CalendarEntry, bool) {
	idx, ok := c.byDay[day]
	if !ok {
		return CalendarEntry{}, false
	}
	return c.entries[idx], true
}
