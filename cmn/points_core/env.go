package points_core

import (
	"BaziMeta/cmn"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var z *zap.Logger

// initialPoints 新用户积分账户的初始余额
var initialPoints float64

func Init() {
	z = cmn.GetLogger()

	initialPoints = viper.GetFloat64("points.initialPoints")

	cmn.MiniLogger.Info("[ OK ] points-core module initialized")
}
