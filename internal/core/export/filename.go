package export

import (
	"strings"
	"unicode"
)

const maxStemRunes = 100

// FileStem 由標題產生安全的檔名主體，空白轉為底線
func FileStem(title string) string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsControl(r) || strings.ContainsRune(`/\:*?"<>|`, r) {
			return -1
		}
		return r
	}, title)

	stem := strings.Join(strings.Fields(cleaned), "_")
	if runes := []rune(stem); len(runes) > maxStemRunes {
		stem = string(runes[:maxStemRunes])
	}
	stem = strings.Trim(stem, "._")
	if stem == "" {
		return "recipe"
	}
	return stem
}
