package destiny

import (
	"BaziMeta/cmn"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	z *zap.Logger

	// firstAnalysisScore 首次命盘分析的积分奖励
	firstAnalysisScore float64
)

// Init 初始化命盘分析模块
func Init() {
	z = cmn.GetLogger()

	if !viper.GetBool("destiny.enable") {
		cmn.MiniLogger.Info("[ -- ] destiny module disabled")
		return
	}

	firstAnalysisScore = viper.GetFloat64("destiny.reward.firstAnalysisPoints")
	if firstAnalysisScore <= 0 {
		z.Fatal("[ FAIL ] destiny.reward.firstAnalysisPoints must be positive")
	}

	cmn.MiniLogger.Info("[ OK ] destiny module initialized")
}
