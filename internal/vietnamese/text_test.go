package vietnamese

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRemoveAccents(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Phở Bò", "Pho Bo"},
		{"Nhà Đất", "Nha Dat"},
		{"đường", "duong"},
		{"no accents", "no accents"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, RemoveAccents(tt.in))
	}
}

func TestNormalizeText(t *testing.T) {
	assert.Equal(t, "viec lam", NormalizeText("  Việc Làm "))
}

func TestSearchSlug(t *testing.T) {
	assert.Equal(t, "nha-dat-quan-1", SearchSlug("Nhà Đất Quận 1"))
	assert.Equal(t, "banh-mi-thit", SearchSlug("Bánh mì!! thịt"))
	assert.Equal(t, "", SearchSlug("!!!"))
}

func TestSearchableText(t *testing.T) {
	got := SearchableText("Phở")
	assert.Contains(t, got, "phở")
	assert.Contains(t, got, "pho")
}

func TestIsVietnameseText(t *testing.T) {
	assert.True(t, IsVietnameseText("Đồ điện tử"))
	assert.False(t, IsVietnameseText("used bicycle"))
}

func TestInitials(t *testing.T) {
	assert.Equal(t, "NV", Initials("Nguyễn Văn An"))
	assert.Equal(t, "A", Initials("An"))
	assert.Equal(t, "", Initials(""))
}

func TestSanitizeInput(t *testing.T) {
	assert.Equal(t, "gia tốt", SanitizeInput("  <b>gia tốt</b> "))
	assert.Equal(t, "plain", SanitizeInput("plain"))
}
