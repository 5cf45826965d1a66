// utils/validation.go
package utils

import (
	"regexp"
	"strings"
)

var phonePattern = regexp.MustCompile(`^\+?[1-9]\d{6,14}$`)

// CleanPhone strips spaces, dashes and brackets from a phone number.
func CleanPhone(phone string) string {
	return strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(phone)
}

// ValidatePhone checks if a phone number is in a valid international format
func ValidatePhone(phone string) bool {
	// Allows + prefix followed by 7-15 digits
	return phonePattern.MatchString(CleanPhone(phone))
}

// WhatsAppNumber turns a stored phone number into an E.164 number, assuming
// India for bare ten-digit numbers.
func WhatsAppNumber(phone string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)
	switch {
	case digits == "":
		return ""
	case len(digits) == 10:
		return "+91" + digits
	case len(digits) == 11 && digits[0] == '0':
		return "+91" + digits[1:]
	}
	return "+" + digits
}
