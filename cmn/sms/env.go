package sms

import (
	"BaziMeta/cmn"

	"github.com/spf13/viper"
	v20210111 "github.com/tencentcloud/tencentcloud-sdk-go/tencentcloud/sms/v20210111"
	"go.uber.org/zap"
)

var (
	z        *zap.Logger
	platform string

	tencentConfig TencentConfig
	tencentClient *v20210111.Client

	shxConfig ShxTongConfig
)

func Init() {
	z = cmn.GetLogger()

	// 没有开启短信服务则不进行初始化
	if !viper.GetBool("sms.enable") {
		cmn.MiniLogger.Info("[ -- ] sms module is disabled")
		return
	}

	platform = viper.GetString("sms.platform")
	switch platform {
	case "tencent":
		if err := initTencentConfig(); err != nil {
			z.Fatal("[ FAIL ] init tencent sms config", zap.Error(err))
		}
	case "shx":
		if err := initShxTongConfig(); err != nil {
			z.Fatal("[ FAIL ] init shx sms config", zap.Error(err))
		}
	default:
		z.Fatal("[ FAIL ] sms platform is not supported", zap.String("platform", platform))
	}

	cmn.MiniLogger.Info("[ OK ] sms module initialized", zap.String("platform", platform))
}
