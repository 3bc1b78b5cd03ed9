package vietnamese

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatVND(t *testing.T) {
	assert.Equal(t, "50.000 ₫", FormatVND(50_000))
	assert.Equal(t, "1.000.000 ₫", FormatVND(1_000_000))
	assert.Equal(t, "0 ₫", FormatVND(0))
}

func TestFormatUSD(t *testing.T) {
	assert.Equal(t, "$1,500", FormatUSD(1500))
	assert.Equal(t, "$12.5", FormatUSD(12.5))
	assert.Equal(t, "$1,234.56", FormatUSD(1234.56))
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "999", FormatNumber(999))
	assert.Equal(t, "1.5K", FormatNumber(1500))
	assert.Equal(t, "2.3M", FormatNumber(2_300_000))
}

func TestFormatVietnameseNumber(t *testing.T) {
	assert.Equal(t, "500", FormatVietnameseNumber(500))
	assert.Equal(t, "1.5 nghìn", FormatVietnameseNumber(1500))
	assert.Equal(t, "2.3 triệu", FormatVietnameseNumber(2_300_000))
}

func TestFormatPhoneNumber(t *testing.T) {
	tests := []struct {
		phone   string
		country string
		want    string
	}{
		{"84912345678", "vn", "+84 912 345 678"},
		{"+84 912 345 678", "vn", "+84 912 345 678"},
		{"0912345678", "vn", "0912 345 678"},
		{"4081234567", "us", "(408) 123-4567"},
		{"14081234567", "us", "+1 (408) 123-4567"},
		{"123", "vn", "123"},
		{"123", "us", "123"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatPhoneNumber(tt.phone, tt.country), "phone %q (%s)", tt.phone, tt.country)
	}
}

func TestFormatRelativeTime(t *testing.T) {
	now := time.Now()

	assert.Equal(t, "Vừa xong", FormatRelativeTime(now))
	assert.Equal(t, "5 phút trước", FormatRelativeTime(now.Add(-5*time.Minute)))
	assert.Equal(t, "3 giờ trước", FormatRelativeTime(now.Add(-3*time.Hour)))
	assert.Equal(t, "2 ngày trước", FormatRelativeTime(now.Add(-49*time.Hour)))
	assert.Equal(t, "2 tuần trước", FormatRelativeTime(now.Add(-15*24*time.Hour)))
	assert.Equal(t, "2 tháng trước", FormatRelativeTime(now.Add(-70*24*time.Hour)))
	assert.Equal(t, "2 năm trước", FormatRelativeTime(now.Add(-800*24*time.Hour)))
}

func TestTruncateText(t *testing.T) {
	assert.Equal(t, "ngắn", TruncateText("ngắn", 10))
	assert.Equal(t, "Phở bò...", TruncateText("Phở bò Hà Nội", 6))
}
