package llm

// DeepSeekConfig deepseek 平台配置
type DeepSeekConfig struct {
	ApiKey  string
	Model   string
	BaseUrl string
}

// ChatParams 一次 JSON 对话调用的全部输入
type ChatParams struct {
	ApiKey  string // 为空或全空白时返回配置错误
	BaseUrl string // 结尾斜杠会被去除
	Model   string // 为空时回落到 DefaultModel
	System  string // 系统指令
	Prompt  string // 用户提示词
}
