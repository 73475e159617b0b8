package service

import (
	"errors"
	"fmt"
)

var (
	// ErrDoorLocked 在门尚未解锁时尝试打开返回
	ErrDoorLocked = errors.New("door is still locked")
	// ErrDayOutOfRange 当日期不在 1..24 时返回
	ErrDayOutOfRange = errors.New("day out of range")
)

// DoorState 描述单扇门的状态
type DoorState string

const (
	DoorLocked         DoorState = "locked"
	DoorUnlockedClosed DoorState = "unlocked_closed"
	DoorUnlockedOpen   DoorState = "unlocked_open"
)

// DoorView 汇总一扇门在当前时刻的状态
type DoorView struct {
	Day      int       `json:"day"`
	State    DoorState `json:"state"`
	Unlocked bool      `json:"unlocked"`
	Opened   bool      `json:"opened"`
}

// AdventSession 是一次访问的全部状态：解锁策略、已开启门记录与两个覆盖开关。
// 状态只通过 Open/Toggle/ToggleSecretMode 修改。
type AdventSession struct {
	policy  *UnlockPolicy
	doors   *OpenedDoorStore
	preview bool
	secret  bool
}

// SessionOptions 定义会话的覆盖开关
type SessionOptions struct {
	Preview bool
	Secret  bool
}

// NewAdventSession 组合策略与存储。
func NewAdventSession(policy *UnlockPolicy, doors *OpenedDoorStore, opts SessionOptions) *AdventSession {
	if policy == nil {
		policy = NewUnlockPolicy()
	}
	if doors == nil {
		doors = NewOpenedDoorStore(nil)
	}
	return &AdventSession{
		policy:  policy,
		doors:   doors,
		preview: opts.Preview,
		secret:  opts.Secret,
	}
}

// ValidDay 判断 day 是否是日历中的一天。
func ValidDay(day int) bool {
	return day >= 1 && day <= DoorCount
}

// PreviewMode 返回 URL 预览开关。
func (s *AdventSession) PreviewMode() bool {
	return s.preview
}

// SecretMode 返回按键触发的隐藏开关。
func (s *AdventSession) SecretMode() bool {
	return s.secret
}

// OverrideActive 任一覆盖开关打开即全部解锁。
func (s *AdventSession) OverrideActive() bool {
	return s.preview || s.secret
}

// ToggleSecretMode 翻转隐藏模式并返回新值。
func (s *AdventSession) ToggleSecretMode() bool {
	s.secret = !s.secret
	return s.secret
}

// IsUnlocked 结合覆盖开关判断某天是否已解锁。
func (s *AdventSession) IsUnlocked(day int) bool {
	return s.policy.IsUnlocked(day, s.OverrideActive())
}

// IsOpened 判断某天是否已打开过。
func (s *AdventSession) IsOpened(day int) bool {
	return s.doors.IsOpened(day)
}

// State 每次调用都重新计算门的状态。
func (s *AdventSession) State(day int) DoorState {
	if !s.IsUnlocked(day) {
		return DoorLocked
	}
	if s.doors.IsOpened(day) {
		return DoorUnlockedOpen
	}
	return DoorUnlockedClosed
}

// Open 打开一扇已解锁的门，返回记录是否发生变化。
func (s *AdventSession) Open(day int) (bool, error) {
	if !ValidDay(day) {
		return false, fmt.Errorf("%w: %d", ErrDayOutOfRange, day)
	}
	if !s.IsUnlocked(day) {
		return false, fmt.Errorf("%w: day %d", ErrDoorLocked, day)
	}
	return s.doors.MarkOpened(day), nil
}

// Toggle 直接翻转存储中的开启状态，是回到 UnlockedClosed 的唯一途径。
func (s *AdventSession) Toggle(day int) (bool, error) {
	if !ValidDay(day) {
		return false, fmt.Errorf("%w: %d", ErrDayOutOfRange, day)
	}
	s.doors.Toggle(day)
	return s.doors.IsOpened(day), nil
}

// Door 返回单扇门的视图。
func (s *AdventSession) Door(day int) DoorView {
	state := s.State(day)
	return DoorView{
		Day:      day,
		State:    state,
		Unlocked: state != DoorLocked,
		Opened:   s.doors.IsOpened(day),
	}
}

// Doors 返回 1..24 全部门的视图。
func (s *AdventSession) Doors() []DoorView {
	views := make([]DoorView, 0, DoorCount)
	for day := 1; day <= DoorCount; day++ {
		views = append(views, s.Door(day))
	}
	return views
}
