package sms

type TencentConfig struct {
	AppID      string
	AppKey     string
	SignName   string
	TemplateID string
}

type ShxTongConfig struct {
	ApiUrl   string
	UserName string
	Password string
	Template string
}
