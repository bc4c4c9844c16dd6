package almanac_core

import (
	"sync"
)

var (
	// 当日黄历缓存和锁
	cachedDay  *AlmanacDay
	cachedDate string
	cacheMutex sync.RWMutex
)

// getCachedDay 获取缓存的黄历数据（线程安全）
// 返回缓存副本和对应的日期，缓存为空时返回nil
func getCachedDay() (*AlmanacDay, string) {
	cacheMutex.RLock()
	defer cacheMutex.RUnlock()
	if cachedDay == nil {
		return nil, ""
	}
	// 返回副本，避免外部修改
	day := *cachedDay
	return &day, cachedDate
}

// setCachedDay 设置缓存的黄历数据（线程安全）
func setCachedDay(day *AlmanacDay, date string) {
	cacheMutex.Lock()
	defer cacheMutex.Unlock()
	cachedDay = day
	cachedDate = date
}
