package sms

import "testing"

func TestIsValidPhone(t *testing.T) {
	cases := []struct {
		phone string
		want  bool
	}{
		{"15819888226", true},
		{"13000000000", true},
		{"19999999999", true},
		{"12345678901", false}, // 第二位不能是 1 或 2
		{"1581988822", false},  // 少一位
		{"158198882261", false},
		{"05819888226", false},
		{"", false},
		{"abcdefghijk", false},
	}

	for _, tc := range cases {
		if got := IsValidPhone(tc.phone); got != tc.want {
			t.Errorf("IsValidPhone(%q) = %v, want %v", tc.phone, got, tc.want)
		}
	}
}

// TestSendVerifyCode 真实发送短信的冒烟测试，未配置平台时跳过
func TestSendVerifyCode(t *testing.T) {
	if platform == "" {
		t.Skip("sms platform not configured")
	}

	service := NewService()

	err := service.SendVerifyCode("15819888226", "1234")
	if err != nil {
		t.Errorf("SendVerifyCode failed: %v", err)
	}
}
