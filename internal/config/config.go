package config

import (
	"fmt"
	"os"
	"strings"
)

const (
	// StorageDriverCookie 将已开启门的记录保存在访客自己的会话 Cookie 中。
	StorageDriverCookie = "cookie"
	// StorageDriverSQLite 将记录保存在服务端 SQLite，按访客 ID 隔离。
	StorageDriverSQLite = "sqlite"
)

// AppConfig 汇总运行服务所需的基础配置。
type AppConfig struct {
	ListenAddr       string
	Port             string
	DatabasePath     string
	SessionSecret    string
	GinMode          string
	CalendarDataPath string
	StorageDriver    string
	Timezone         string
}

// Load 从环境变量读取应用配置，并为缺失项提供安全的默认值。
func Load() AppConfig {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	listenAddr := strings.TrimSpace(os.Getenv("LISTEN_ADDR"))
	if listenAddr == "" {
		listenAddr = fmt.Sprintf(":%s", port)
	}

	databasePath := strings.TrimSpace(os.Getenv("DATABASE_PATH"))
	if databasePath == "" {
		databasePath = "advent.db"
	}

	sessionSecret := strings.TrimSpace(os.Getenv("SESSION_SECRET"))
	if sessionSecret == "" {
		sessionSecret = "advent-dev-secret"
	}

	ginMode := strings.TrimSpace(os.Getenv("GIN_MODE"))
	if ginMode == "" {
		ginMode = "release"
	}

	calendarDataPath := strings.TrimSpace(os.Getenv("CALENDAR_DATA_PATH"))
	if calendarDataPath == "" {
		calendarDataPath = "data/calendar.json"
	}

	timezone := strings.TrimSpace(os.Getenv("TIMEZONE"))
	if timezone == "" {
		timezone = "Europe/Berlin"
	}

	return AppConfig{
		ListenAddr:       listenAddr,
		Port:             port,
		DatabasePath:     databasePath,
		SessionSecret:    sessionSecret,
		GinMode:          ginMode,
		CalendarDataPath: calendarDataPath,
		StorageDriver:    normalizeStorageDriver(os.Getenv("STORAGE_DRIVER")),
		Timezone:         timezone,
	}
}

// normalizeStorageDriver 未识别的取值一律回退到 cookie。
func normalizeStorageDriver(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case StorageDriverSQLite:
		return StorageDriverSQLite
	default:
		return StorageDriverCookie
	}
}
