package destiny

import (
	"context"
	"strings"
	"testing"

	"BaziMeta/cmn/llm"
)

// stubLLM 记录收到的参数并返回预设内容
type stubLLM struct {
	gotParams llm.ChatParams
	reply     string
	err       error
}

func (s *stubLLM) ChatJSON(_ context.Context, params llm.ChatParams) (string, error) {
	s.gotParams = params
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func TestAnalyzeLifeDestiny(t *testing.T) {
	stub := &stubLLM{
		reply: "```json\n{\"chartPoints\":[{\"age\":3,\"pillar\":\"己卯\",\"score\":6}],\"bazi\":\"庚午 戊寅 甲子 丙寅\",\"summary\":\"命局中和\",\"summaryScore\":8}\n```",
	}
	input := DestinyInput{
		ApiKey:      "sk-test",
		BaseUrl:     "https://api.example.com/v1",
		Model:       "deepseek-chat",
		Name:        "张三",
		Gender:      "男",
		BirthYear:   "1990",
		YearPillar:  "庚午",
		MonthPillar: "戊寅",
		DayPillar:   "甲子",
		HourPillar:  "丙寅",
		StartAge:    "3",
		FirstDaYun:  "己卯",
	}

	result, err := AnalyzeLifeDestiny(context.Background(), stub, input)
	if err != nil {
		t.Fatalf("AnalyzeLifeDestiny returned error: %v", err)
	}

	if stub.gotParams.ApiKey != "sk-test" {
		t.Errorf("ApiKey = %q", stub.gotParams.ApiKey)
	}
	if stub.gotParams.BaseUrl != "https://api.example.com/v1" {
		t.Errorf("BaseUrl = %q", stub.gotParams.BaseUrl)
	}
	if stub.gotParams.Model != "deepseek-chat" {
		t.Errorf("Model = %q", stub.gotParams.Model)
	}
	if stub.gotParams.System != systemInstruction {
		t.Error("System instruction not passed through")
	}
	// 男命年干庚为阳，应推导为顺排
	if !strings.Contains(stub.gotParams.Prompt, "排列方向：顺排") {
		t.Error("prompt missing derived direction")
	}
	if !strings.Contains(stub.gotParams.Prompt, "姓名：张三") {
		t.Error("prompt missing subject name")
	}

	if len(result.ChartData) != 1 {
		t.Fatalf("ChartData length = %d, want 1", len(result.ChartData))
	}
	if result.Analysis.Summary != "命局中和" {
		t.Errorf("Summary = %q", result.Analysis.Summary)
	}
	if result.Analysis.WealthScore != 5 {
		t.Errorf("WealthScore = %d, want default 5", result.Analysis.WealthScore)
	}
}

func TestAnalyzeLifeDestinyNoSubjectValidation(t *testing.T) {
	// 命主信息不做校验，四柱留空也照常调用模型
	stub := &stubLLM{reply: `{"chartPoints":[]}`}
	input := DestinyInput{
		ApiKey:  "sk-test",
		BaseUrl: "https://api.example.com",
	}

	if _, err := AnalyzeLifeDestiny(context.Background(), stub, input); err != nil {
		t.Fatalf("AnalyzeLifeDestiny returned error: %v", err)
	}
	if !strings.Contains(stub.gotParams.Prompt, "排列方向：逆排") {
		t.Error("empty year pillar should default to yang, female absent means 女命阳年逆排")
	}
}

func TestAnalyzeLifeDestinyPropagatesError(t *testing.T) {
	stub := &stubLLM{
		err: &llm.Error{
			Kind:     llm.KindServiceUnavailable,
			Attempts: 3,
			Msg:      "AI服务暂时不可用(503)，已重试3次: overloaded",
		},
	}

	_, err := AnalyzeLifeDestiny(context.Background(), stub, DestinyInput{ApiKey: "k", BaseUrl: "u"})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if kind := llm.KindOf(err); kind != llm.KindServiceUnavailable {
		t.Errorf("error kind = %v, want KindServiceUnavailable", kind)
	}
}

func TestAnalyzeLifeDestinyNilService(t *testing.T) {
	if _, err := AnalyzeLifeDestiny(context.Background(), nil, DestinyInput{}); err == nil {
		t.Fatal("expected error for nil service")
	}
}
