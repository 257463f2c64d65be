package validator

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	// インドの携帯番号。先頭6〜9の10桁。
	phoneRe = regexp.MustCompile(`^[6-9]\d{9}$`)
	// 郵便番号は6桁固定。
	pincodeRe = regexp.MustCompile(`^\d{6}$`)
)

// チェックアウトの配送先入力
type ShippingInput struct {
	FullName     string
	Phone        string
	Email        string
	AddressLine1 string
	AddressLine2 string
	City         string
	State        string
	Pincode      string
}

// ValidateShipping は配送先入力を検証する。
// ネットワーク呼び出しの前に済ませる（fail fast）。
// エラーメッセージはどのフィールドが悪いかを必ず示す。
func ValidateShipping(in ShippingInput) error {
	required := []struct {
		name  string
		value string
	}{
		{"full_name", in.FullName},
		{"phone", in.Phone},
		{"email", in.Email},
		{"address_line1", in.AddressLine1},
		{"city", in.City},
		{"state", in.State},
		{"pincode", in.Pincode},
	}

	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%s is required", f.name)
		}
	}

	if !phoneRe.MatchString(in.Phone) {
		return fmt.Errorf("invalid phone")
	}
	if !pincodeRe.MatchString(in.Pincode) {
		return fmt.Errorf("invalid pincode")
	}

	return nil
}
