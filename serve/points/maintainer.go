package points

import (
	"context"
	"time"

	"BaziMeta/cmn"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// historyRetention 签到记录与积分流水的保留时长
const historyRetention = 365 * 24 * time.Hour

// historyCleanupMaintainer 每天凌晨清理过期的短信验证码、超过保留期的签到记录与积分流水
func historyCleanupMaintainer(ctx context.Context, db *gorm.DB) {
	for {
		// 计算距离下一次 03:30 的时间
		duration, err := cmn.GetDurationUntilNextTargetTime(3, 30, 0, "Asia/Shanghai")
		if err != nil {
			z.Error("failed to get duration until next target time", zap.Error(err))
			return
		}
		z.Info("historyCleanupMaintainer sleep until next target time", zap.Duration("duration", duration))

		timer := time.NewTimer(duration)

		select {
		case <-ctx.Done():
			z.Info("historyCleanupMaintainer stopped")
			timer.Stop()
			return
		case <-timer.C:
			go cleanupExpiredHistory(ctx, db)
		}
	}
}

func cleanupExpiredHistory(ctx context.Context, db *gorm.DB) {
	res := db.WithContext(ctx).Where("expires_at < ?", time.Now().UnixMilli()).Delete(&cmn.TSmsCodes{})
	if res.Error != nil {
		z.Error("failed to cleanup expired sms codes", zap.Error(res.Error))
	} else if res.RowsAffected > 0 {
		z.Info("cleaned up expired sms codes", zap.Int64("rows", res.RowsAffected))
	}

	cutoff := time.Now().Add(-historyRetention).UnixMilli()

	res = db.WithContext(ctx).Where("created_at < ?", cutoff).Delete(&cmn.TUserCheckIn{})
	if res.Error != nil {
		z.Error("failed to cleanup check in records", zap.Error(res.Error))
	} else if res.RowsAffected > 0 {
		z.Info("cleaned up check in records", zap.Int64("rows", res.RowsAffected))
	}

	res = db.WithContext(ctx).Where("created_at < ?", cutoff).Delete(&cmn.TPointsLog{})
	if res.Error != nil {
		z.Error("failed to cleanup points logs", zap.Error(res.Error))
	} else if res.RowsAffected > 0 {
		z.Info("cleaned up points logs", zap.Int64("rows", res.RowsAffected))
	}
}
