package service

import (
	"encoding/json"
	"log"
	"slices"
)

// OpenedDoorsStorageKey 是已开启门记录在存储中的固定键名。
const OpenedDoorsStorageKey = "advent-calendar-opened-doors"

// KeyValueStorage 抽象出与浏览器 localStorage 等价的键值存储。
type KeyValueStorage interface {
	GetItem(key string) (string, bool, error)
	SetItem(key, value string) error
	RemoveItem(key string) error
}

// OpenedDoorStore 记录访客已经打开过的门。
// 构造时从存储恢复，每次变更后立即整体写回；存储错误只记录日志。
type OpenedDoorStore struct {
	storage KeyValueStorage
	order   []int
	opened  map[int]struct{}
}

// NewOpenedDoorStore 从 storage 恢复已开启的门，读取或解析失败时得到空集合。
func NewOpenedDoorStore(storage KeyValueStorage) *OpenedDoorStore {
	s := &OpenedDoorStore{
		storage: storage,
		opened:  make(map[int]struct{}),
	}
	s.load()
	return s
}

func (s *OpenedDoorStore) load() {
	if s.storage == nil {
		return
	}

	raw, ok, err := s.storage.GetItem(OpenedDoorsStorageKey)
	if err != nil {
		log.Printf("[WARN] failed to load opened doors: %v", err)
		return
	}
	if !ok || raw == "" {
		return
	}

	var days []int
	if err := json.Unmarshal([]byte(raw), &days); err != nil {
		log.Printf("[WARN] failed to parse opened doors %q: %v", raw, err)
		return
	}

	for _, day := range days {
		s.add(day)
	}
}

func (s *OpenedDoorStore) persist() {
	if s.storage == nil {
		return
	}

	data, err := json.Marshal(s.Days())
	if err != nil {
		log.Printf("[WARN] failed to encode opened doors: %v", err)
		return
	}

	if err := s.storage.SetItem(OpenedDoorsStorageKey, string(data)); err != nil {
		log.Printf("[WARN] failed to save opened doors: %v", err)
	}
}

func (s *OpenedDoorStore) add(day int) bool {
	if _, exists := s.opened[day]; exists {
		return false
	}
	s.opened[day] = struct{}{}
	s.order = append(s.order, day)
	return true
}

func (s *OpenedDoorStore) remove(day int) {
	delete(s.opened, day)
	s.order = slices.DeleteFunc(s.order, func(d int) bool { return d == day })
}

// IsOpened 判断某天的门是否已打开。
func (s *OpenedDoorStore) IsOpened(day int) bool {
	_, ok := s.opened[day]
	return ok
}

// Toggle 翻转某天的开启状态并写回存储。
func (s *OpenedDoorStore) Toggle(day int) {
	if s.IsOpened(day) {
		s.remove(day)
	} else {
		s.add(day)
	}
	s.persist()
}

// MarkOpened 仅在尚未打开时加入集合，返回是否发生了变化。
func (s *OpenedDoorStore) MarkOpened(day int) bool {
	if s.IsOpened(day) {
		return false
	}
	s.Toggle(day)
	return true
}

// Days 按加入顺序返回已开启的门。
func (s *OpenedDoorStore) Days() []int {
	days := make([]int, len(s.order))
	copy(days, s.order)
	return days
}
