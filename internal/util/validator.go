package util

import (
	"fmt"
	"regexp"
)

var (
	emailRe  = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	mobileRe = regexp.MustCompile(`^\+?[0-9]{1,15}$`)
)

// ValidateEmail 验证邮箱格式（允许为空，email 是可选字段）
func ValidateEmail(email string) error {
	if email == "" {
		return nil
	}
	if !emailRe.MatchString(email) {
		return fmt.Errorf("invalid email format: %s", email)
	}
	return nil
}

// ValidateMobile 验证手机号（允许为空，可带 + 前缀，最长 15 位数字）
func ValidateMobile(mobile string) error {
	if mobile == "" {
		return nil
	}
	if !mobileRe.MatchString(mobile) {
		return fmt.Errorf("invalid mobile format: %s", mobile)
	}
	return nil
}

// ValidatePin 验证 PIN（必填，长度限制防止超长输入打爆 bcrypt）
func ValidatePin(pin string) error {
	if pin == "" {
		return fmt.Errorf("pin is required")
	}
	if len(pin) > 64 {
		return fmt.Errorf("pin too long, max 64 characters")
	}
	return nil
}
