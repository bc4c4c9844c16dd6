package cmn

import (
	"fmt"
	"math/rand"
	"time"
)

// RandDigits 生成指定位数的随机数字字符串，用于短信验证码等场景
func RandDigits(length int) string {
	if length <= 0 {
		return ""
	}

	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	digits := make([]byte, length)
	for i := 0; i < length; i++ {
		digits[i] = '0' + byte(r.Intn(10))
	}
	return string(digits)
}

// GetDurationUntilNextTargetTime 计算当前时间到下一个指定时间点的间隔，
// 用于各模块的定时维护协程
func GetDurationUntilNextTargetTime(hour, minute, second int, locationName string) (time.Duration, error) {
	loc, err := time.LoadLocation(locationName)
	if err != nil {
		return 0, fmt.Errorf("failed to load location %s: %w", locationName, err)
	}

	now := time.Now().In(loc)

	targetTime := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, second, 0, loc)

	// 今天的目标时间已过则顺延到明天
	if now.After(targetTime) {
		targetTime = targetTime.AddDate(0, 0, 1)
	}

	return targetTime.Sub(now), nil
}
