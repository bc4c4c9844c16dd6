package sms

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/tencentcloud/tencentcloud-sdk-go/tencentcloud/common"
	tencentSMS "github.com/tencentcloud/tencentcloud-sdk-go/tencentcloud/sms/v20210111"
	"go.uber.org/zap"
)

type Service interface {
	SendVerifyCode(phone string, code string) error
}

type tencentServiceImpl struct {
}

type shxServiceImpl struct {
}

func NewService() Service {
	switch platform {
	case "tencent":
		return &tencentServiceImpl{}
	case "shx":
		return &shxServiceImpl{}
	default:
		z.Warn("sms platform is not supported", zap.String("platform", platform))
	}
	return nil
}

// SendVerifyCode 发送验证码
func (*tencentServiceImpl) SendVerifyCode(phone string, code string) error {
	if tencentConfig.AppKey == "" {
		z.Error("tencent sms is not enabled")
		return fmt.Errorf("tencent sms appKey is empty")
	}
	if phone == "" || code == "" {
		z.Error("sms phone or code is empty")
		return fmt.Errorf("phone or code is empty")
	}
	if !IsValidPhone(phone) {
		z.Error("sms phone is invalid")
		return fmt.Errorf("phone is invalid")
	}

	request := tencentSMS.NewSendSmsRequest()

	request.SmsSdkAppId = common.StringPtr(tencentConfig.AppID)
	request.SignName = common.StringPtr(tencentConfig.SignName)
	request.TemplateId = common.StringPtr(tencentConfig.TemplateID)

	// 模板变量为验证码与有效期(分钟)
	request.TemplateParamSet = common.StringPtrs([]string{code, "5"})

	phoneNumber := "+86" + phone

	request.PhoneNumberSet = common.StringPtrs([]string{phoneNumber})
	request.SessionContext = common.StringPtr("")
	request.ExtendCode = common.StringPtr("")
	request.SenderId = common.StringPtr("")

	response, err := tencentClient.SendSms(request)
	if err != nil {
		z.Error("failed to send tencent sms", zap.Error(err))
		return err
	}

	z.Info("tencent sms sent", zap.Any("response", response.Response))

	return nil
}

// SendVerifyCode 发送验证码
func (*shxServiceImpl) SendVerifyCode(phone string, code string) error {
	if shxConfig.ApiUrl == "" {
		z.Error("shx sms is not enabled")
		return fmt.Errorf("shx sms apiUrl is empty")
	}
	if phone == "" || code == "" {
		z.Error("sms phone or code is empty")
		return fmt.Errorf("phone or code is empty")
	}
	if !IsValidPhone(phone) {
		z.Error("sms phone is invalid")
		return fmt.Errorf("phone is invalid")
	}

	// 构造请求参数
	form := url.Values{}
	form.Set("UserName", shxConfig.UserName)
	form.Set("Password", shxConfig.Password)
	form.Set("TimeStamp", "")
	form.Set("MobileNumber", phone)
	form.Set("MsgContent", fmt.Sprintf(shxConfig.Template, code))
	form.Set("MsgIdentify", fmt.Sprintf("shx-%d", time.Now().UnixNano()))

	// 发送 POST 请求
	resp, err := http.PostForm(shxConfig.ApiUrl, form)
	if err != nil {
		z.Error("failed to send sms", zap.Error(err))
		return fmt.Errorf("failed to send sms: %w", err)
	}
	defer func(Body io.ReadCloser) {
		err := Body.Close()
		if err != nil {
			z.Error("failed to close body", zap.Error(err))
		}
	}(resp.Body)

	// 读取返回结果
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		z.Error("failed to read sms response", zap.Error(err))
		return fmt.Errorf("failed to read sms response: %w", err)
	}

	z.Info("sms sent", zap.String("response", string(body)))

	return nil
}
