package sms

import (
	"fmt"

	"github.com/spf13/viper"
	"github.com/tencentcloud/tencentcloud-sdk-go/tencentcloud/common"
	"github.com/tencentcloud/tencentcloud-sdk-go/tencentcloud/common/profile"
	tencentSMS "github.com/tencentcloud/tencentcloud-sdk-go/tencentcloud/sms/v20210111"
	"go.uber.org/zap"
)

// 初始化腾讯云平台配置
func initTencentConfig() error {
	tencentConfig.AppID = viper.GetString("sms.data.appId")
	if tencentConfig.AppID == "" {
		z.Error("tencent appId is empty")
		return fmt.Errorf("tencent appId is empty")
	}
	tencentConfig.AppKey = viper.GetString("sms.data.appKey")
	if tencentConfig.AppKey == "" {
		z.Error("tencent appKey is empty")
		return fmt.Errorf("tencent appKey is empty")
	}
	tencentConfig.TemplateID = viper.GetString("sms.data.templateId")
	if tencentConfig.TemplateID == "" {
		z.Error("tencent templateId is empty")
		return fmt.Errorf("tencent templateId is empty")
	}
	tencentConfig.SignName = viper.GetString("sms.data.signName")
	if tencentConfig.SignName == "" {
		z.Error("tencent signName is empty")
		return fmt.Errorf("tencent signName is empty")
	}

	secretID := viper.GetString("sms.data.secretId")
	if secretID == "" {
		z.Error("tencent secretId is empty")
		return fmt.Errorf("tencent secretId is empty")
	}
	secretKey := viper.GetString("sms.data.secretKey")
	if secretKey == "" {
		z.Error("tencent secretKey is empty")
		return fmt.Errorf("tencent secretKey is empty")
	}

	var err error

	// 初始化客户端
	credential := common.NewCredential(
		secretID,
		secretKey,
	)
	cpf := profile.NewClientProfile()
	cpf.HttpProfile.ReqMethod = "POST"
	cpf.HttpProfile.ReqTimeout = 10 // 请求超时时间，单位为秒(默认60秒)
	cpf.HttpProfile.Endpoint = "sms.tencentcloudapi.com"
	cpf.SignMethod = "HmacSHA1"
	tencentClient, err = tencentSMS.NewClient(credential, "ap-guangzhou", cpf)
	if err != nil {
		z.Error("init tencent sms client failed", zap.Error(err))
		return fmt.Errorf("init tencent sms client failed: %v", err)
	}

	return nil
}

// 初始化闪信通平台配置
func initShxTongConfig() error {
	shxConfig.ApiUrl = viper.GetString("sms.data.apiUrl")
	if shxConfig.ApiUrl == "" {
		z.Error("shxtong apiUrl is empty")
		return fmt.Errorf("shxtong apiUrl is empty")
	}
	shxConfig.UserName = viper.GetString("sms.data.userName")
	if shxConfig.UserName == "" {
		z.Error("shxtong userName is empty")
		return fmt.Errorf("shxtong userName is empty")
	}
	shxConfig.Password = viper.GetString("sms.data.password")
	if shxConfig.Password == "" {
		z.Error("shxtong password is empty")
		return fmt.Errorf("shxtong password is empty")
	}
	shxConfig.Template = viper.GetString("sms.data.template")
	if shxConfig.Template == "" {
		z.Error("shxtong template is empty")
		return fmt.Errorf("shxtong template is empty")
	}
	return nil
}
