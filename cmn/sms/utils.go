package sms

import "regexp"

var phoneRe = regexp.MustCompile(`^1[3-9]\d{9}$`)

// IsValidPhone 验证手机号是否合法
func IsValidPhone(phone string) bool {
	return phoneRe.MatchString(phone)
}
