package destiny

import (
	"errors"
	"strings"
	"testing"

	"BaziMeta/cmn/llm"

	"go.uber.org/zap"
)

func init() {
	z = zap.NewNop()
}

func TestStripCodeFences(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```JSON\n{\"a\":1}\n```", `{"a":1}`},
		{"```Json\n{\"a\":1}\n```", `{"a":1}`},
		{"```\n{\"a\":1}\n```", `{"a":1}`},
		{`{"a":1}`, `{"a":1}`},
		{"  {\"a\":1}\n", `{"a":1}`},
	}

	for _, tc := range cases {
		if got := StripCodeFences(tc.raw); got != tc.want {
			t.Errorf("StripCodeFences(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestSliceBraceSpan(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{`好的，以下是结果：{"a":1}希望对您有帮助`, `{"a":1}`},
		{`{"a":{"b":2}}`, `{"a":{"b":2}}`},
		{"没有大括号", "没有大括号"},
		{"只有左括号 {", "只有左括号 {"},
		{"只有右括号 }", "只有右括号 }"},
		{"}{", "}{"},
	}

	for _, tc := range cases {
		if got := SliceBraceSpan(tc.raw); got != tc.want {
			t.Errorf("SliceBraceSpan(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestParseDestinyReplyComplete(t *testing.T) {
	content := "好的，以下是命盘分析结果：\n```json\n" + `{
  "chartPoints": [{"age":8,"pillar":"丁卯","score":6},{"age":18,"pillar":"戊辰","score":7}],
  "bazi": "丙寅 庚寅 甲辰 丙寅",
  "summary": "命局中和，一生平顺",
  "summaryScore": 8,
  "industry": "宜从事文教行业",
  "industryScore": 7,
  "wealth": "中年后财运渐旺",
  "wealthScore": 6,
  "marriage": "婚姻平稳",
  "marriageScore": 7,
  "health": "注意肝胆",
  "healthScore": 5,
  "family": "六亲和睦",
  "familyScore": 6
}` + "\n```\n希望对您有帮助。"

	result, err := ParseDestinyReply(content)
	if err != nil {
		t.Fatalf("ParseDestinyReply returned error: %v", err)
	}

	if len(result.ChartData) != 2 {
		t.Fatalf("ChartData length = %d, want 2", len(result.ChartData))
	}
	if result.Bazi != "丙寅 庚寅 甲辰 丙寅" {
		t.Errorf("Bazi = %q", result.Bazi)
	}
	if result.Analysis.Summary != "命局中和，一生平顺" {
		t.Errorf("Summary = %q", result.Analysis.Summary)
	}
	if result.Analysis.SummaryScore != 8 {
		t.Errorf("SummaryScore = %d, want 8", result.Analysis.SummaryScore)
	}
	if result.Analysis.Industry != "宜从事文教行业" {
		t.Errorf("Industry = %q", result.Analysis.Industry)
	}
	if result.Analysis.HealthScore != 5 {
		t.Errorf("HealthScore = %d, want 5", result.Analysis.HealthScore)
	}
}

func TestParseDestinyReplyFencedWithProse(t *testing.T) {
	content := "好的，以下是分析结果：\n```json\n{\"chartPoints\": [1, 2, 3]}\n```\n希望对您有帮助。"

	result, err := ParseDestinyReply(content)
	if err != nil {
		t.Fatalf("ParseDestinyReply returned error: %v", err)
	}

	if len(result.ChartData) != 3 {
		t.Fatalf("ChartData length = %d, want 3", len(result.ChartData))
	}
	for i, want := range []string{"1", "2", "3"} {
		if got := string(result.ChartData[i]); got != want {
			t.Errorf("ChartData[%d] = %q, want %q", i, got, want)
		}
	}
}

func TestParseDestinyReplyDefaults(t *testing.T) {
	result, err := ParseDestinyReply(`{"chartPoints":[]}`)
	if err != nil {
		t.Fatalf("ParseDestinyReply returned error: %v", err)
	}

	if result.Bazi != "" {
		t.Errorf("Bazi = %q, want empty", result.Bazi)
	}
	if result.Analysis.Summary != "暂无总评" {
		t.Errorf("Summary = %q, want 暂无总评", result.Analysis.Summary)
	}
	for name, got := range map[string]string{
		"Industry": result.Analysis.Industry,
		"Wealth":   result.Analysis.Wealth,
		"Marriage": result.Analysis.Marriage,
		"Health":   result.Analysis.Health,
		"Family":   result.Analysis.Family,
	} {
		if got != "暂无建议" {
			t.Errorf("%s = %q, want 暂无建议", name, got)
		}
	}
	for name, got := range map[string]int{
		"SummaryScore":  result.Analysis.SummaryScore,
		"IndustryScore": result.Analysis.IndustryScore,
		"WealthScore":   result.Analysis.WealthScore,
		"MarriageScore": result.Analysis.MarriageScore,
		"HealthScore":   result.Analysis.HealthScore,
		"FamilyScore":   result.Analysis.FamilyScore,
	} {
		if got != 5 {
			t.Errorf("%s = %d, want 5", name, got)
		}
	}
}

func TestParseDestinyReplyEmptyTextFallsBack(t *testing.T) {
	result, err := ParseDestinyReply(`{"chartPoints":[],"summary":"","wealth":""}`)
	if err != nil {
		t.Fatalf("ParseDestinyReply returned error: %v", err)
	}

	if result.Analysis.Summary != "暂无总评" {
		t.Errorf("Summary = %q, want 暂无总评", result.Analysis.Summary)
	}
	if result.Analysis.Wealth != "暂无建议" {
		t.Errorf("Wealth = %q, want 暂无建议", result.Analysis.Wealth)
	}
}

func TestParseDestinyReplyScoreRounding(t *testing.T) {
	result, err := ParseDestinyReply(`{"chartPoints":[],"summaryScore":7.6,"wealthScore":4.4}`)
	if err != nil {
		t.Fatalf("ParseDestinyReply returned error: %v", err)
	}

	if result.Analysis.SummaryScore != 8 {
		t.Errorf("SummaryScore = %d, want 8", result.Analysis.SummaryScore)
	}
	if result.Analysis.WealthScore != 4 {
		t.Errorf("WealthScore = %d, want 4", result.Analysis.WealthScore)
	}
}

func TestParseDestinyReplyMissingChartPoints(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"absent", `{"summary":"命局中和"}`},
		{"null", `{"chartPoints":null}`},
		{"object", `{"chartPoints":{"a":1}}`},
		{"string", `{"chartPoints":"not an array"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseDestinyReply(tc.content)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if kind := llm.KindOf(err); kind != llm.KindMissingField {
				t.Errorf("error kind = %v, want KindMissingField", kind)
			}
		})
	}
}

func TestParseDestinyReplyMalformed(t *testing.T) {
	content := "模型没有按要求输出结构化内容" + strings.Repeat("，非常抱歉", 12)

	_, err := ParseDestinyReply(content)
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	var lerr *llm.Error
	if !errors.As(err, &lerr) {
		t.Fatalf("error type = %T, want *llm.Error", err)
	}
	if lerr.Kind != llm.KindMalformedResponse {
		t.Errorf("error kind = %v, want KindMalformedResponse", lerr.Kind)
	}
	if lerr.Err == nil {
		t.Error("expected wrapped parse error")
	}

	wantSnippet := string([]rune(content)[:50])
	if lerr.Body != wantSnippet {
		t.Errorf("Body = %q, want first 50 chars %q", lerr.Body, wantSnippet)
	}
}
