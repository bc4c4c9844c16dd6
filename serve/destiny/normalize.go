package destiny

import (
	"encoding/json"
	"math"
	"regexp"
	"strings"

	"BaziMeta/cmn/llm"

	"go.uber.org/zap"
)

// 字段缺失时的默认文案与评分
const (
	defaultSummaryText   = "暂无总评"
	defaultDimensionText = "暂无建议"
	defaultScore         = 5

	// malformedSnippetLen 解析失败时随错误携带的内容片段长度
	malformedSnippetLen = 50
)

var codeFenceJSONRe = regexp.MustCompile("(?i)```json")

// StripCodeFences 去掉模型输出中的 Markdown 代码围栏标记，```json 不区分大小写
func StripCodeFences(raw string) string {
	cleaned := codeFenceJSONRe.ReplaceAllString(raw, "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	return strings.TrimSpace(cleaned)
}

// SliceBraceSpan 截取首个 { 到最后一个 } 之间的内容，容忍模型在 JSON
// 前后追加的说明文字。找不到合法区间时原样返回
func SliceBraceSpan(raw string) string {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end <= start {
		return raw
	}
	return raw[start : end+1]
}

// rawDestinyPayload 模型输出的宽松结构，指针用于区分字段缺失与零值
type rawDestinyPayload struct {
	ChartPoints json.RawMessage `json:"chartPoints"`
	Bazi        *string         `json:"bazi"`

	Summary       *string  `json:"summary"`
	SummaryScore  *float64 `json:"summaryScore"`
	Industry      *string  `json:"industry"`
	IndustryScore *float64 `json:"industryScore"`
	Wealth        *string  `json:"wealth"`
	WealthScore   *float64 `json:"wealthScore"`
	Marriage      *string  `json:"marriage"`
	MarriageScore *float64 `json:"marriageScore"`
	Health        *string  `json:"health"`
	HealthScore   *float64 `json:"healthScore"`
	Family        *string  `json:"family"`
	FamilyScore   *float64 `json:"familyScore"`
}

// ParseDestinyReply 将模型返回的原始内容清洗并解析为命理分析结果。
// 流程固定为几个独立阶段：去围栏、截取大括号区间、JSON 反序列化、
// chartPoints 结构校验、带默认值的字段映射
func ParseDestinyReply(content string) (*LifeDestinyResult, error) {
	cleaned := StripCodeFences(content)
	sliced := SliceBraceSpan(cleaned)

	var payload rawDestinyPayload
	if err := json.Unmarshal([]byte(sliced), &payload); err != nil {
		z.Warn("failed to parse llm reply", zap.Error(err), zap.String("snippet", snippet(cleaned)))
		return nil, &llm.Error{
			Kind: llm.KindMalformedResponse,
			Body: snippet(cleaned),
			Msg:  "AI返回内容解析失败，请稍后重试",
			Err:  err,
		}
	}

	chartData, ok := chartPointsArray(payload.ChartPoints)
	if !ok {
		z.Warn("llm reply missing chartPoints array", zap.String("snippet", snippet(cleaned)))
		return nil, &llm.Error{
			Kind: llm.KindMissingField,
			Msg:  "AI返回数据缺少命盘曲线(chartPoints)",
		}
	}

	result := &LifeDestinyResult{
		ChartData: chartData,
		Bazi:      textOr(payload.Bazi, ""),
		Analysis: DestinyAnalysis{
			Summary:       textOr(payload.Summary, defaultSummaryText),
			SummaryScore:  scoreOr(payload.SummaryScore),
			Industry:      textOr(payload.Industry, defaultDimensionText),
			IndustryScore: scoreOr(payload.IndustryScore),
			Wealth:        textOr(payload.Wealth, defaultDimensionText),
			WealthScore:   scoreOr(payload.WealthScore),
			Marriage:      textOr(payload.Marriage, defaultDimensionText),
			MarriageScore: scoreOr(payload.MarriageScore),
			Health:        textOr(payload.Health, defaultDimensionText),
			HealthScore:   scoreOr(payload.HealthScore),
			Family:        textOr(payload.Family, defaultDimensionText),
			FamilyScore:   scoreOr(payload.FamilyScore),
		},
	}

	return result, nil
}

// chartPointsArray 校验 chartPoints 字段存在且为数组，数组元素原样透传
func chartPointsArray(raw json.RawMessage) ([]json.RawMessage, bool) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return nil, false
	}

	var arr []json.RawMessage
	if err := json.Unmarshal(raw, &arr); err != nil {
		return nil, false
	}
	return arr, true
}

// snippet 截取内容开头一段用于诊断，按字符截取避免切断多字节字符
func snippet(s string) string {
	runes := []rune(s)
	if len(runes) <= malformedSnippetLen {
		return s
	}
	return string(runes[:malformedSnippetLen])
}

func textOr(v *string, def string) string {
	if v == nil || *v == "" {
		return def
	}
	return *v
}

func scoreOr(v *float64) int {
	if v == nil {
		return defaultScore
	}
	return int(math.Round(*v))
}
