package almanac_core

import (
	"context"

	"BaziMeta/cmn"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	enabled bool
	apiUrl  string
	apiKey  string
)

var z *zap.Logger

func Init() {
	z = cmn.GetLogger()

	// 如果没有开启黄历服务，则不进行初始化
	enabled = viper.GetBool("almanac.enable")
	if !enabled {
		cmn.MiniLogger.Info("[ -- ] almanac module is disabled")
		return
	}

	apiUrl = viper.GetString("almanac.apiUrl")
	if apiUrl == "" {
		z.Fatal("[ FAIL ] almanac.apiUrl is empty")
	}
	apiKey = viper.GetString("almanac.key")
	if apiKey == "" {
		z.Fatal("[ FAIL ] almanac.key is empty")
	}

	// 预热当日黄历缓存，失败不阻塞启动，维护协程和按需拉取会补齐
	if err := Refresh(); err != nil {
		z.Warn("initial almanac refresh failed", zap.Error(err))
	}

	// 启动黄历刷新协程
	StartMaintainer(context.Background())

	cmn.MiniLogger.Info("[ OK ] almanac module initialized",
		zap.String("apiUrl", apiUrl))
}
