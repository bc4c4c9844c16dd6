package almanac_core

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"BaziMeta/cmn"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

// GetToday 获取当日黄历数据
// 优先返回缓存；缓存过期时实时拉取，拉取失败则退回旧缓存
func GetToday() (*AlmanacDay, error) {
	if !enabled {
		return nil, fmt.Errorf("almanac module is not enabled")
	}

	today := todayString()

	day, date := getCachedDay()
	if day != nil && date == today {
		return day, nil
	}

	fresh, err := fetchAlmanacDay(today)
	if err != nil {
		if day != nil {
			// 拉取失败时退回旧缓存，避免接口完全不可用
			z.Warn("failed to fetch almanac, falling back to cached data",
				zap.Error(err),
				zap.String("cached_date", date))
			return day, nil
		}
		return nil, err
	}

	setCachedDay(fresh, today)

	result := *fresh
	return &result, nil
}

// Refresh 拉取当日黄历并更新缓存
func Refresh() error {
	today := todayString()

	day, err := fetchAlmanacDay(today)
	if err != nil {
		z.Error("failed to refresh almanac", zap.Error(err), zap.String("date", today))
		return err
	}

	setCachedDay(day, today)
	z.Info("almanac cache refreshed", zap.String("date", today), zap.String("yinli", day.Yinli))

	return nil
}

// StartMaintainer 启动黄历刷新协程
// 每天零点后刷新当日黄历缓存
func StartMaintainer(ctx context.Context) {
	go func() {
		z.Info("almanac maintainer started")

		for {
			duration, err := cmn.GetDurationUntilNextTargetTime(0, 0, 30, "Asia/Shanghai")
			if err != nil {
				z.Error("failed to get duration until next target time", zap.Error(err))
				return
			}

			timer := time.NewTimer(duration)

			select {
			case <-ctx.Done():
				z.Info("almanac maintainer stopped")
				timer.Stop()
				return
			case <-timer.C:
				if err := Refresh(); err != nil {
					// 刷新失败不中断循环，GetToday 会按需补拉
					z.Error("scheduled almanac refresh failed", zap.Error(err))
				}
			}
		}
	}()
}

// fetchAlmanacDay 从聚合数据API获取指定日期的黄历数据
func fetchAlmanacDay(date string) (*AlmanacDay, error) {
	url := fmt.Sprintf("%s?key=%s&date=%s", apiUrl, apiKey, date)

	fastReq := fasthttp.AcquireRequest()
	fastResp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(fastReq)
	defer fasthttp.ReleaseResponse(fastResp)

	fastReq.SetRequestURI(url)
	fastReq.Header.SetMethod("GET")

	client := &fasthttp.Client{
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	err := client.Do(fastReq, fastResp)
	if err != nil {
		return nil, fmt.Errorf("failed to send request to almanac API: %w", err)
	}

	return decodeAlmanacResponse(fastResp.Body())
}

// decodeAlmanacResponse 解析聚合数据API的响应体
func decodeAlmanacResponse(body []byte) (*AlmanacDay, error) {
	var resp juheAlmanacResponse
	err := json.Unmarshal(body, &resp)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal almanac response: %w", err)
	}

	if resp.ErrorCode != 0 {
		return nil, fmt.Errorf("almanac API returned error, error_code: %d, reason: %s", resp.ErrorCode, resp.Reason)
	}

	if resp.Result == nil {
		return nil, fmt.Errorf("almanac API returned empty result")
	}

	return resp.Result, nil
}

// todayString 获取东八区当日日期，格式 2006-01-02
func todayString() string {
	loc, err := time.LoadLocation("Asia/Shanghai")
	if err != nil {
		z.Error("failed to load location Asia/Shanghai", zap.Error(err))
		loc = time.Local
	}
	return time.Now().In(loc).Format("2006-01-02")
}
