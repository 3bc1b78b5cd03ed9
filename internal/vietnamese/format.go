// Package vietnamese holds the localization helpers used across the
// marketplace: currency and number formatting, phone formatting and
// validation, and Vietnamese text normalization for search.
package vietnamese

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// FormatVND renders an amount per Vietnamese convention: dot-grouped digits,
// no decimal places, trailing dong sign. 50000 -> "50.000 ₫".
func FormatVND(amount float64) string {
	p := message.NewPrinter(language.Vietnamese)
	return p.Sprintf("%v ₫", number.Decimal(amount, number.MaxFractionDigits(0)))
}

// FormatUSD renders an amount per US convention with up to two decimals.
func FormatUSD(amount float64) string {
	p := message.NewPrinter(language.AmericanEnglish)
	return p.Sprintf("$%v", number.Decimal(amount, number.MaxFractionDigits(2)))
}

// FormatNumber compacts large counts for display: 1532 -> "1.5K".
func FormatNumber(n float64) string {
	switch {
	case n >= 1_000_000:
		return strconv.FormatFloat(n/1_000_000, 'f', 1, 64) + "M"
	case n >= 1_000:
		return strconv.FormatFloat(n/1_000, 'f', 1, 64) + "K"
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// FormatVietnameseNumber is FormatNumber with Vietnamese unit words.
func FormatVietnameseNumber(n float64) string {
	switch {
	case n >= 1_000_000:
		return strconv.FormatFloat(n/1_000_000, 'f', 1, 64) + " triệu"
	case n >= 1_000:
		return strconv.FormatFloat(n/1_000, 'f', 1, 64) + " nghìn"
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// FormatPhoneNumber groups a phone number for display. Country is "vn" or
// "us"; numbers that do not match a known shape are returned unchanged.
func FormatPhoneNumber(phone, country string) string {
	cleaned := digitsOnly(phone)

	switch country {
	case "vn":
		if strings.HasPrefix(cleaned, "84") && len(cleaned) >= 11 {
			n := cleaned[2:]
			return fmt.Sprintf("+84 %s %s %s", n[:3], n[3:6], n[6:])
		}
		if strings.HasPrefix(cleaned, "0") && len(cleaned) >= 10 {
			return fmt.Sprintf("%s %s %s", cleaned[:4], cleaned[4:7], cleaned[7:])
		}
	case "us":
		if len(cleaned) == 10 {
			return fmt.Sprintf("(%s) %s-%s", cleaned[:3], cleaned[3:6], cleaned[6:])
		}
		if len(cleaned) == 11 && strings.HasPrefix(cleaned, "1") {
			return fmt.Sprintf("+1 (%s) %s-%s", cleaned[1:4], cleaned[4:7], cleaned[7:])
		}
	}
	return phone
}

// FormatRelativeTime renders the age of a timestamp in Vietnamese.
func FormatRelativeTime(t time.Time) string {
	minutes := int(time.Since(t).Minutes())

	switch {
	case minutes < 1:
		return "Vừa xong"
	case minutes < 60:
		return fmt.Sprintf("%d phút trước", minutes)
	}

	hours := minutes / 60
	if hours < 24 {
		return fmt.Sprintf("%d giờ trước", hours)
	}

	days := hours / 24
	switch {
	case days < 7:
		return fmt.Sprintf("%d ngày trước", days)
	case days < 28:
		return fmt.Sprintf("%d tuần trước", days/7)
	case days < 365:
		return fmt.Sprintf("%d tháng trước", days/30)
	}
	return fmt.Sprintf("%d năm trước", days/365)
}

// TruncateText shortens to maxLen runes, appending an ellipsis when cut.
func TruncateText(text string, maxLen int) string {
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	return string(runes[:maxLen]) + "..."
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
