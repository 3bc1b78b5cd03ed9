package vietnamese

import (
	"math"
	"regexp"
	"strings"
)

var (
	// Mobile prefixes in use after the 2018 renumbering.
	vietnamesePhonePattern = regexp.MustCompile(`^(\+84|84|0)(3[2-9]|5[689]|7[06-9]|8[1-689]|9[0-46-9])\d{7}$`)
	usPhonePattern         = regexp.MustCompile(`^(\+1|1)?[2-9]\d{2}[2-9]\d{2}\d{4}$`)
	emailPattern           = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	vnPostalPattern        = regexp.MustCompile(`^\d{6}$`)
	usPostalPattern        = regexp.MustCompile(`^\d{5}(-\d{4})?$`)
)

// ValidateVietnamesePhone accepts +84/84/0-prefixed Vietnamese mobile numbers.
func ValidateVietnamesePhone(phone string) bool {
	return vietnamesePhonePattern.MatchString(stripPhoneSeparators(phone))
}

// ValidateUSPhone accepts NANP numbers with an optional +1/1 prefix.
func ValidateUSPhone(phone string) bool {
	return usPhonePattern.MatchString(stripPhoneSeparators(phone))
}

func ValidateEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidatePrice reports whether price is a finite number within [min, max].
func ValidatePrice(price, min, max float64) bool {
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return false
	}
	return price >= min && price <= max
}

// ValidatePostalCode checks a postal code for country "vn" or "us".
func ValidatePostalCode(code, country string) bool {
	if country == "vn" {
		return vnPostalPattern.MatchString(code)
	}
	return usPostalPattern.MatchString(code)
}

func stripPhoneSeparators(phone string) string {
	return strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(phone)
}
