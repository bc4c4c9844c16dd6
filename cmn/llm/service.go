package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultModel 未指定模型时使用的默认模型
	DefaultModel = "deepseek-chat"

	// maxAttempts 单次调用的总尝试次数上限
	maxAttempts = 3

	// unavailableBackoffUnit 503 的退避单位，实际等待为该值乘以当前尝试序号
	unavailableBackoffUnit = 2 * time.Second

	// networkRetryDelay 网络错误的固定重试间隔
	networkRetryDelay = 2 * time.Second

	chatTemperature = 0.7
)

// Message 对话消息
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ResponseFormat 输出格式约束
type ResponseFormat struct {
	Type string `json:"type"`
}

// ChatRequest 对话请求体
type ChatRequest struct {
	Model          string          `json:"model"`
	Messages       []Message       `json:"messages"`
	ResponseFormat *ResponseFormat `json:"response_format,omitempty"`
	Temperature    float64         `json:"temperature"`
}

// ChatResponse 对话响应体（只取 content 字段）
type ChatResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

type Service interface {
	// ChatJSON 以 JSON 输出模式执行一次对话调用，返回模型输出的原始内容。
	// 503 与网络错误在固定预算内自动重试，其余失败立即返回
	ChatJSON(ctx context.Context, params ChatParams) (string, error)
}

type deepSeekImpl struct {
	client       *http.Client
	backoffUnit  time.Duration
	networkDelay time.Duration
}

func NewService() Service {
	switch platform {
	case "deepseek":
		return newDeepSeek()
	}

	return newDeepSeek()
}

func newDeepSeek() *deepSeekImpl {
	return &deepSeekImpl{
		client:       &http.Client{},
		backoffUnit:  unavailableBackoffUnit,
		networkDelay: networkRetryDelay,
	}
}

func (s *deepSeekImpl) ChatJSON(ctx context.Context, params ChatParams) (string, error) {
	apiKey := strings.TrimSpace(params.ApiKey)
	if apiKey == "" {
		return "", &Error{Kind: KindConfiguration, Msg: "API Key 未配置"}
	}

	baseUrl := strings.TrimSpace(params.BaseUrl)
	if baseUrl == "" {
		return "", &Error{Kind: KindConfiguration, Msg: "API 地址未配置"}
	}
	// 容忍配置里带一个或多个结尾斜杠的地址
	baseUrl = strings.TrimRight(baseUrl, "/")

	model := strings.TrimSpace(params.Model)
	if model == "" {
		model = DefaultModel
	}

	requestBody := ChatRequest{
		Model: model,
		Messages: []Message{
			{Role: "system", Content: params.System},
			{Role: "user", Content: params.Prompt},
		},
		ResponseFormat: &ResponseFormat{Type: "json_object"},
		Temperature:    chatTemperature,
	}

	jsonData, err := json.Marshal(requestBody)
	if err != nil {
		logger.Error("json marshal fail", zap.Error(err))
		return "", &Error{Kind: KindUnknown, Msg: "构造请求失败", Err: err}
	}

	url := baseUrl + "/chat/completions"

	// 显式的重试状态机：每轮要么成功返回，要么按错误类别决定立即失败
	// 或等待后重试，预算耗尽后返回最后一次的错误
	var lastErr *Error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		content, attemptErr := s.attempt(ctx, url, apiKey, jsonData)
		if attemptErr == nil {
			return content, nil
		}

		switch attemptErr.Kind {
		case KindServiceUnavailable, KindNetwork:
			attemptErr.Attempts = attempt
			lastErr = attemptErr
		default:
			return "", attemptErr
		}

		if attempt == maxAttempts {
			break
		}

		// 503 按尝试序号线性退避，网络错误固定间隔
		var delay time.Duration
		if attemptErr.Kind == KindServiceUnavailable {
			delay = s.backoffUnit * time.Duration(attempt)
		} else {
			delay = s.networkDelay
		}

		logger.Warn("chat completions attempt failed, retrying",
			zap.Int("attempt", attempt),
			zap.Int("status", attemptErr.StatusCode),
			zap.Duration("delay", delay),
			zap.Error(attemptErr))

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delay):
		}
	}

	if lastErr == nil {
		// 理论上不可达，防御性兜底
		return "", &Error{Kind: KindUnknown, Msg: "未知错误，请稍后再试"}
	}

	switch lastErr.Kind {
	case KindServiceUnavailable:
		lastErr.Msg = fmt.Sprintf("AI服务暂时不可用(503)，已重试%d次: %s", lastErr.Attempts, lastErr.Body)
	case KindNetwork:
		lastErr.Msg = fmt.Sprintf("网络请求失败，已重试%d次", lastErr.Attempts)
	}

	logger.Error("chat completions failed after retries",
		zap.Int("attempts", lastErr.Attempts),
		zap.Error(lastErr))

	return "", lastErr
}

// attempt 执行一次完整的 HTTP 交互，失败时返回按 Kind 分类好的错误
func (s *deepSeekImpl) attempt(ctx context.Context, url, apiKey string, body []byte) (string, *Error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return "", &Error{Kind: KindNetwork, Msg: "构造请求失败", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", &Error{Kind: KindNetwork, Msg: "网络请求失败", Err: err}
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Error("close response body fail", zap.Error(err))
		}
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &Error{Kind: KindNetwork, Msg: "读取响应失败", Err: err}
	}

	if resp.StatusCode == http.StatusServiceUnavailable {
		return "", &Error{
			Kind:       KindServiceUnavailable,
			StatusCode: resp.StatusCode,
			Body:       string(respBody),
			Msg:        "AI服务暂时不可用(503)",
		}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", &Error{
			Kind:       KindHTTP,
			StatusCode: resp.StatusCode,
			Body:       string(respBody),
			Msg:        fmt.Sprintf("AI服务请求失败(状态码%d): %s", resp.StatusCode, string(respBody)),
		}
	}

	var chatResp ChatResponse
	err = json.Unmarshal(respBody, &chatResp)
	if err != nil {
		// 响应体不是合法 JSON，按网络层故障处理并重试
		return "", &Error{Kind: KindNetwork, Msg: "响应解析失败", Err: err}
	}

	if len(chatResp.Choices) == 0 || chatResp.Choices[0].Message.Content == "" {
		return "", &Error{Kind: KindEmptyResponse, Msg: "AI服务未返回有效内容"}
	}

	return chatResp.Choices[0].Message.Content, nil
}
