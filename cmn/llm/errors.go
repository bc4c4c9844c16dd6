package llm

import (
	"errors"
	"fmt"
)

// Kind 标识一次对话调用失败的具体类别。重试与上层分支只依赖 Kind
// 判断，不解析错误文本
type Kind int

const (
	KindUnknown           Kind = iota // 兜底错误
	KindConfiguration                 // 凭证缺失等配置错误
	KindServiceUnavailable            // 503，重试耗尽
	KindHTTP                          // 其他非 2xx 状态码
	KindNetwork                       // 网络层错误，重试耗尽
	KindEmptyResponse                 // 响应中没有可用内容
	KindMalformedResponse             // 模型输出无法解析为 JSON
	KindMissingField                  // 模型输出缺少必要字段
)

// Error 对话调用的结构化错误，Msg 为可直接展示给用户的中文描述
type Error struct {
	Kind       Kind
	StatusCode int    // HTTP 状态码，非 HTTP 类错误为 0
	Attempts   int    // 已消耗的尝试次数，非重试类错误为 0
	Body       string // 响应体原文或内容片段
	Msg        string
	Err        error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf 返回 err 所属的错误类别，非本包错误返回 KindUnknown
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
