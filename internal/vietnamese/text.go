package vietnamese

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	vietnameseLetters = regexp.MustCompile(`[àáạảãâầấậẩẫăằắặẳẵèéẹẻẽêềếệểễìíịỉĩòóọỏõôồốộổỗơờớợởỡùúụủũưừứựửữỳýỵỷỹđ]`)
	slugStrip         = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugSpaces        = regexp.MustCompile(`\s+`)
	slugDashes        = regexp.MustCompile(`-+`)
	htmlTags          = regexp.MustCompile(`<[^>]*>`)
)

// RemoveAccents strips Vietnamese diacritics: "Phở Bò" -> "Pho Bo".
// The đ/Đ letters have no combining form, so they are mapped by hand.
func RemoveAccents(s string) string {
	decomposed := norm.NFD.String(s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		switch r {
		case 'đ':
			b.WriteRune('d')
		case 'Đ':
			b.WriteRune('D')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormalizeText lowercases and strips accents, for accent-insensitive search.
func NormalizeText(s string) string {
	return strings.TrimSpace(strings.ToLower(RemoveAccents(s)))
}

// SearchSlug builds a URL- and search-safe slug from Vietnamese text:
// "Nhà Đất Quận 1" -> "nha-dat-quan-1".
func SearchSlug(s string) string {
	slug := NormalizeText(s)
	slug = slugStrip.ReplaceAllString(slug, "")
	slug = slugSpaces.ReplaceAllString(slug, "-")
	slug = slugDashes.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// SearchableText pairs the original text with its accent-stripped form so a
// single substring match covers both spellings.
func SearchableText(s string) string {
	return strings.ToLower(s + " " + RemoveAccents(s))
}

// IsVietnameseText reports whether the text contains Vietnamese letters.
func IsVietnameseText(s string) bool {
	return vietnameseLetters.MatchString(strings.ToLower(s))
}

// Initials returns up to two uppercased word initials from a name.
func Initials(name string) string {
	var initials []rune
	for _, word := range strings.Fields(name) {
		initials = append(initials, unicode.ToUpper([]rune(word)[0]))
		if len(initials) == 2 {
			break
		}
	}
	return string(initials)
}

// SanitizeInput trims whitespace and strips any embedded markup tags.
func SanitizeInput(s string) string {
	return strings.TrimSpace(htmlTags.ReplaceAllString(s, ""))
}
