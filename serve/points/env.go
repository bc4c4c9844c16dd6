package points

import (
	"context"
	"sync"

	"BaziMeta/cmn"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var once sync.Once

var z *zap.Logger

// dailyCheckInPoints 每日签到奖励的积分数
var dailyCheckInPoints float64

func Init() {
	z = cmn.GetLogger()

	dailyCheckInPoints = viper.GetFloat64("points.reward.dailyCheckInPoints")
	if dailyCheckInPoints <= 0 {
		z.Fatal("[ FAIL ] points.reward.dailyCheckInPoints must be positive")
	}

	once.Do(func() {
		go historyCleanupMaintainer(context.Background(), cmn.GormDB)
	})

	cmn.MiniLogger.Info("[ OK ] points module initialized")
}
