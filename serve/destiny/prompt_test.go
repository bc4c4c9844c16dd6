package destiny

import (
	"strings"
	"testing"
)

func TestBuildPromptForward(t *testing.T) {
	input := DestinyInput{
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

	prompt := BuildPrompt(input, DirectionForward, 3)

	for _, want := range []string{
		"姓名：张三",
		"性别：男",
		"出生年份：1990",
		"年柱：庚午",
		"月柱：戊寅",
		"日柱：甲子",
		"时柱：丙寅",
		"起运年龄：3岁",
		"第一步大运：己卯",
		"排列方向：顺排",
		"chartPoints",
		"summaryScore",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}

	if strings.Contains(prompt, "逆排") {
		t.Error("forward prompt should not mention 逆排")
	}
}

func TestBuildPromptBackward(t *testing.T) {
	input := DestinyInput{
		Name:       "李四",
		Gender:     "女",
		YearPillar: "庚午",
		FirstDaYun: "丁亥",
	}

	prompt := BuildPrompt(input, DirectionBackward, 1)

	if !strings.Contains(prompt, "排列方向：逆排") {
		t.Error("prompt missing 排列方向：逆排")
	}
	if !strings.Contains(prompt, "癸亥") {
		t.Error("prompt missing backward example sequence")
	}
	if !strings.Contains(prompt, "起运年龄：1岁") {
		t.Error("prompt missing default start age")
	}
}
