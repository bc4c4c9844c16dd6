package cmn

import (
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// InitConfig 初始化配置模块，配置文件为 JSON 格式的 .config 文件，
// 从当前目录开始逐级向上查找
func InitConfig() {
	viper.SetConfigName(".config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")
	viper.AddConfigPath("../../..")
	viper.SetConfigType("json")

	err := viper.ReadInConfig()
	if err != nil {
		logger.Fatal("[ FAIL ] failed to read config file", zap.Error(err))
	}

	MiniLogger.Info("[ OK ] config module initialized", zap.String("path", viper.ConfigFileUsed()))
}
