package quiz

import (
	"regexp"
	"strings"
)

const (
	MinPhoneDigits = 10
	CPFDigits      = 11
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func IsValidEmail(s string) bool {
	return s != "" && emailPattern.MatchString(s)
}

// NormalizeEmail trims and lower-cases an address so it can serve as the lead key.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Digits strips every non-digit character: "(11) 98765-4321" -> "11987654321".
func Digits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func IsValidPhone(s string) bool {
	return len(Digits(s)) >= MinPhoneDigits
}

func IsValidCPF(s string) bool {
	return len(Digits(s)) == CPFDigits
}
