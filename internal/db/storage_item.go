package db

import "gorm.io/gorm"

// StorageItem 模拟浏览器 localStorage 的一条记录。
// Namespace 为访客 ID，Namespace + Key 唯一。
type StorageItem struct {
	gorm.Model
	Namespace string `gorm:"size:64;not null;uniqueIndex:idx_storage_item_key"`
	Key       string `gorm:"size:100;not null;uniqueIndex:idx_storage_item_key"`
	Value     string `gorm:"type:text"`
}

// TableName 自定义表名以保持命名一致。
func (StorageItem) TableName() string {
	return "storage_items"
}
