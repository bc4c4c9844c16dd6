package almanac_core

import (
	"testing"

	"go.uber.org/zap"
)

func init() {
	z = zap.NewNop()
}

func TestDecodeAlmanacResponse(t *testing.T) {
	body := []byte(`{
		"reason": "successed",
		"result": {
			"id": "623",
			"yangli": "2025-08-25",
			"yinli": "乙巳(蛇)年七月初三",
			"wuxing": "泉中水 执位",
			"chongsha": "冲鼠(甲子)煞北",
			"baiji": "丙不修灶 必见灾殃",
			"jishen": "官日 六仪 益後",
			"yi": "祭祀 出行 扫舍",
			"xiongshen": "月建 小时 土府",
			"ji": "诸事不宜"
		},
		"error_code": 0
	}`)

	day, err := decodeAlmanacResponse(body)
	if err != nil {
		t.Fatalf("decodeAlmanacResponse() error = %v", err)
	}
	if day.Yangli != "2025-08-25" {
		t.Errorf("Yangli = %q, want %q", day.Yangli, "2025-08-25")
	}
	if day.Yinli != "乙巳(蛇)年七月初三" {
		t.Errorf("Yinli = %q, want %q", day.Yinli, "乙巳(蛇)年七月初三")
	}
	if day.Yi != "祭祀 出行 扫舍" {
		t.Errorf("Yi = %q, want %q", day.Yi, "祭祀 出行 扫舍")
	}
	if day.Ji != "诸事不宜" {
		t.Errorf("Ji = %q, want %q", day.Ji, "诸事不宜")
	}
}

func TestDecodeAlmanacResponseAPIError(t *testing.T) {
	body := []byte(`{"reason": "错误的请求KEY", "result": null, "error_code": 10001}`)

	_, err := decodeAlmanacResponse(body)
	if err == nil {
		t.Fatal("decodeAlmanacResponse() error = nil, want error")
	}
}

func TestDecodeAlmanacResponseEmptyResult(t *testing.T) {
	body := []byte(`{"reason": "successed", "error_code": 0}`)

	_, err := decodeAlmanacResponse(body)
	if err == nil {
		t.Fatal("decodeAlmanacResponse() error = nil, want error")
	}
}

func TestDecodeAlmanacResponseMalformed(t *testing.T) {
	_, err := decodeAlmanacResponse([]byte("not json"))
	if err == nil {
		t.Fatal("decodeAlmanacResponse() error = nil, want error")
	}
}

func TestCachedDayCopy(t *testing.T) {
	setCachedDay(&AlmanacDay{Yangli: "2025-08-25", Yi: "祭祀"}, "2025-08-25")
	defer setCachedDay(nil, "")

	day, date := getCachedDay()
	if day == nil {
		t.Fatal("getCachedDay() = nil, want cached day")
	}
	if date != "2025-08-25" {
		t.Errorf("date = %q, want %q", date, "2025-08-25")
	}

	// 修改返回值不应影响缓存
	day.Yi = "changed"
	again, _ := getCachedDay()
	if again.Yi != "祭祀" {
		t.Errorf("cached Yi = %q, want %q", again.Yi, "祭祀")
	}
}

func TestCachedDayEmpty(t *testing.T) {
	setCachedDay(nil, "")

	day, date := getCachedDay()
	if day != nil {
		t.Errorf("getCachedDay() = %v, want nil", day)
	}
	if date != "" {
		t.Errorf("date = %q, want empty", date)
	}
}
