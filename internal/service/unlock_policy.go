package service

import (
	"log"
	"time"
	_ "time/tzdata"
)

const (
	// ReferenceTimezone 决定“今天”的时区，保证解锁时间与访客所在时区无关。
	ReferenceTimezone = "Europe/Berlin"
	// DoorCount 是日历中门的数量。
	DoorCount = 24

	displayDateFormat = "02.01.2006"
)

// UnlockPolicy 判断某一天的门今天能否打开。
// 只认十二月，不区分年份。
type UnlockPolicy struct {
	location *time.Location
	now      func() time.Time
}

// PolicyOption 用于定制 UnlockPolicy。
type PolicyOption func(*UnlockPolicy)

// WithClock 替换时钟，测试中用来固定当前时间。
func WithClock(now func() time.Time) PolicyOption {
	return func(p *UnlockPolicy) {
		if now != nil {
			p.now = now
		}
	}
}

// WithLocation 指定参考时区。
func WithLocation(loc *time.Location) PolicyOption {
	return func(p *UnlockPolicy) {
		if loc != nil {
			p.location = loc
		}
	}
}

// NewUnlockPolicy 构造默认使用 Europe/Berlin 与系统时钟的策略。
func NewUnlockPolicy(opts ...PolicyOption) *UnlockPolicy {
	p := &UnlockPolicy{
		location: LoadReferenceLocation(ReferenceTimezone),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// LoadReferenceLocation 加载时区，失败时退回固定的 CET(+01:00)。
func LoadReferenceLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("[WARN] load timezone %q failed, falling back to fixed CET: %v", name, err)
		return time.FixedZone("CET", 60*60)
	}
	return loc
}

// Location 返回策略使用的参考时区。
func (p *UnlockPolicy) Location() *time.Location {
	return p.location
}

// CurrentDate 返回参考时区下的当前时间。
func (p *UnlockPolicy) CurrentDate() time.Time {
	return p.now().In(p.location)
}

// CurrentDay 返回参考时区下的日期（1-31）。
func (p *UnlockPolicy) CurrentDay() int {
	return p.CurrentDate().Day()
}

// CurrentMonth 返回参考时区下的月份。
func (p *UnlockPolicy) CurrentMonth() time.Month {
	return p.CurrentDate().Month()
}

// IsUnlocked 判断 day 当前是否已解锁；overrideAll 为 true 时全部解锁。
func (p *UnlockPolicy) IsUnlocked(day int, overrideAll bool) bool {
	return p.IsUnlockedAt(day, overrideAll, p.now())
}

// IsUnlockedAt 以给定时刻代替当前时间做同样的判断。
func (p *UnlockPolicy) IsUnlockedAt(day int, overrideAll bool, at time.Time) bool {
	if overrideAll {
		return true
	}

	local := at.In(p.location)
	if local.Month() != time.December {
		return false
	}

	return day <= local.Day()
}

// FormatDate 以 dd.MM.yyyy 格式输出参考时区下的日期。
func (p *UnlockPolicy) FormatDate(t time.Time) string {
	return t.In(p.location).Format(displayDateFormat)
}
