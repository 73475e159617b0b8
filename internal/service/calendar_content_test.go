package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func sampleEntries(n int) []CalendarEntry {
	entries := make([]CalendarEntry, 0, n)
	for i := 1; i <= n; i++ {
		entries = append(entries, CalendarEntry{
			Day:     i,
			Type:    ContentText,
			Title:   fmt.Sprintf("第 %d 天", i),
			Content: fmt.Sprintf("今天的惊喜 #%d", i),
		})
	}
	return entries
}

func encodeEntries(t *testing.T, entries []CalendarEntry) []byte {
	t.Helper()
	data, err := json.Marshal(entries)
	if err != nil {
		t.Fatalf("failed to encode entries: %v", err)
	}
	return data
}

func TestParseCalendarContentValid(t *testing.T) {
	entries := sampleEntries(DoorCount)
	// 数据源不要求按日期排序
	entries[0], entries[5] = entries[5], entries[0]
	entries[7].Type = ContentVoucher
	entries[7].VoucherCode = "XMAS-2025"
	entries[7].VoucherValidUntil = "31.12.2025"

	content, err := ParseCalendarContent(bytes.NewReader(encodeEntries(t, entries)))
	if err != nil {
		t.Fatalf("ParseCalendarContent returned error: %v", err)
	}

	if got := content.Entries(); len(got) != DoorCount || got[0].Day != 6 {
		t.Fatalf("expected source order to be kept, got first day %d", got[0].Day)
	}

	entry, ok := content.Entry(8)
	if !ok || entry.VoucherCode != "XMAS-2025" {
		t.Fatalf("expected voucher entry for day 8, got %+v", entry)
	}

	if _, ok := content.Entry(25); ok {
		t.Fatal("expected no entry for day 25")
	}
}

func TestParseCalendarContentRejectsInvalid(t *testing.T) {
	duplicate := sampleEntries(DoorCount)
	duplicate[23].Day = 1

	outOfRange := sampleEntries(DoorCount)
	outOfRange[23].Day = 25

	badType := sampleEntries(DoorCount)
	badType[3].Type = "video"

	tests := []struct {
		name string
		raw  []byte
	}{
		{name: "23 entries", raw: encodeEntries(t, sampleEntries(23))},
		{name: "25 entries", raw: encodeEntries(t, sampleEntries(25))},
		{name: "not an array", raw: []byte(`{"day":1}`)},
		{name: "garbage", raw: []byte(`<html>`)},
		{name: "duplicate day", raw: encodeEntries(t, duplicate)},
		{name: "day out of range", raw: encodeEntries(t, outOfRange)},
		{name: "unknown type", raw: encodeEntries(t, badType)},
		{name: "trailing data", raw: append(encodeEntries(t, sampleEntries(DoorCount)), []byte(` {"day":25}`)...)},
		{name: "second array", raw: append(encodeEntries(t, sampleEntries(DoorCount)), []byte(`[]`)...)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCalendarContent(bytes.NewReader(tt.raw))
			if !errors.Is(err, ErrCalendarInvalid) {
				t.Fatalf("expected ErrCalendarInvalid, got %v", err)
			}
		})
	}
}

func TestContentLoaderLoadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calendar.json")
	if err := os.WriteFile(path, encodeEntries(t, sampleEntries(DoorCount)), 0o644); err != nil {
		t.Fatalf("failed to write calendar file: %v", err)
	}

	content, err := NewContentLoader().Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(content.Entries()) != DoorCount {
		t.Fatalf("expected %d entries", DoorCount)
	}

	if _, err := NewContentLoader().Load(context.Background(), filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestContentLoaderFetchesURL(t *testing.T) {
	payload := encodeEntries(t, sampleEntries(DoorCount))
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/data/calendar.json":
			w.Header().Set("Content-Type", "application/json")
			w.Write(payload)
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	loader := NewContentLoader()

	content, err := loader.Load(context.Background(), server.URL+"/data/calendar.json")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(content.Entries()) != DoorCount {
		t.Fatalf("expected %d entries", DoorCount)
	}

	_, err = loader.Load(context.Background(), server.URL+"/missing.json")
	if err == nil || !strings.Contains(err.Error(), "404") {
		t.Fatalf("expected non-OK status error, got %v", err)
	}
}
