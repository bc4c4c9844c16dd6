package llm

import (
	"BaziMeta/cmn"
	"fmt"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	logger   *zap.Logger
	enable   bool
	platform string

	deepSeekConfig DeepSeekConfig
)

func Init() {
	logger = cmn.GetLogger()

	enable = viper.GetBool("llm.enable")
	if !enable {
		cmn.MiniLogger.Info("[ -- ] llm module disabled")
		return
	}

	platform = viper.GetString("llm.platform")
	if platform == "" {
		logger.Fatal("[ FAIL ] llm platform not set")
	}

	switch platform {
	case "deepseek":
		err := initDeepSeek()
		if err != nil {
			logger.Fatal("[ FAIL ] failed to init deepseek", zap.Error(err))
		}
	}

	cmn.MiniLogger.Info("[ OK ] llm module initialized", zap.String("platform", platform))
}

func initDeepSeek() error {
	deepSeekConfig.ApiKey = viper.GetString("llm.data.apiKey")
	if deepSeekConfig.ApiKey == "" {
		logger.Error("api key not set")
		return fmt.Errorf("llm module api key not set")
	}

	deepSeekConfig.BaseUrl = viper.GetString("llm.data.baseUrl")
	if deepSeekConfig.BaseUrl == "" {
		logger.Error("base url not set")
		return fmt.Errorf("llm module base url not set")
	}

	// 模型名允许留空，调用时回落到默认模型
	deepSeekConfig.Model = viper.GetString("llm.data.model")

	return nil
}

// Enabled 返回 llm 模块是否启用
func Enabled() bool {
	return enable
}

// DefaultCredentials 返回配置文件中的默认调用凭证，供上层填充请求参数
func DefaultCredentials() (apiKey, baseUrl, model string) {
	return deepSeekConfig.ApiKey, deepSeekConfig.BaseUrl, deepSeekConfig.Model
}
