package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/adventcalendar/internal/db"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrStorageNamespaceMissing 在未提供访客 ID 时返回
var ErrStorageNamespaceMissing = errors.New("storage namespace is required")

// SQLiteStorage 把 KeyValueStorage 落到 storage_items 表，按访客 ID 隔离。
type SQLiteStorage struct {
	db        *gorm.DB
	namespace string
}

// NewSQLiteStorage 构造绑定到某个访客的存储。
func NewSQLiteStorage(gdb *gorm.DB, namespace string) *SQLiteStorage {
	return &SQLiteStorage{db: gdb, namespace: strings.TrimSpace(namespace)}
}

// Namespace 返回当前绑定的访客 ID。
func (s *SQLiteStorage) Namespace() string {
	return s.namespace
}

func (s *SQLiteStorage) check() error {
	if s.db == nil {
		return errors.New("database not initialized")
	}
	if s.namespace == "" {
		return ErrStorageNamespaceMissing
	}
	return nil
}

// GetItem 读取键值，不存在时 ok 为 false。
func (s *SQLiteStorage) GetItem(key string) (string, bool, error) {
	if err := s.check(); err != nil {
		return "", false, err
	}

	var item db.StorageItem
	err := s.db.Where("namespace = ? AND key = ?", s.namespace, key).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get storage item %s: %w", key, err)
	}
	return item.Value, true, nil
}

// SetItem 以 upsert 方式写入键值。
func (s *SQLiteStorage) SetItem(key, value string) error {
	if err := s.check(); err != nil {
		return err
	}

	item := db.StorageItem{Namespace: s.namespace, Key: key, Value: value}
	if err := s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "namespace"}, {Name: "key"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"value":      value,
			"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
		}),
	}).Create(&item).Error; err != nil {
		return fmt.Errorf("upsert storage item %s: %w", key, err)
	}
	return nil
}

// RemoveItem 删除键值。
func (s *SQLiteStorage) RemoveItem(key string) error {
	if err := s.check(); err != nil {
		return err
	}

	if err := s.db.Unscoped().
		Where("namespace = ? AND key = ?", s.namespace, key).
		Delete(&db.StorageItem{}).Error; err != nil {
		return fmt.Errorf("remove storage item %s: %w", key, err)
	}
	return nil
}
