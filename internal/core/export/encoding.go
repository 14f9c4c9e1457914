package export

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// UnsupportedPolicy 處理 ISO-8859-1 無法表示之字元的方式
type UnsupportedPolicy string

const (
	// PolicyFail 回傳 EncodingError，只有 PDF 失敗
	PolicyFail UnsupportedPolicy = "fail"
	// PolicyDrop 直接略過該字元
	PolicyDrop UnsupportedPolicy = "drop"
	// PolicyReplace 以 '?' 取代
	PolicyReplace UnsupportedPolicy = "replace"
)

// ParsePolicy 解析設定值，空字串視為 fail
func ParsePolicy(s string) (UnsupportedPolicy, error) {
	switch p := UnsupportedPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return PolicyFail, nil
	case PolicyFail, PolicyDrop, PolicyReplace:
		return p, nil
	}
	return "", fmt.Errorf("unknown unsupported-character policy %q", s)
}

// EncodingError 清理後仍有字元無法以 ISO-8859-1 編碼
type EncodingError struct {
	Rune   rune
	Offset int // 清理後文字中的位元組位置
	Line   int // 從 1 起算
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("pdf export: character %q (U+%04X) on line %d cannot be encoded as ISO-8859-1", e.Rune, e.Rune, e.Line)
}

// encodeLatin1 將 UTF-8 文字轉成 ISO-8859-1 位元組字串
func encodeLatin1(text string, policy UnsupportedPolicy) (string, error) {
	var b strings.Builder
	b.Grow(len(text))

	line := 1
	for i, r := range text {
		if c, ok := charmap.ISO8859_1.EncodeRune(r); ok {
			b.WriteByte(c)
			if r == '\n' {
				line++
			}
			continue
		}

		switch policy {
		case PolicyDrop:
		case PolicyReplace:
			b.WriteByte('?')
		default:
			return "", &EncodingError{Rune: r, Offset: i, Line: line}
		}
	}
	return b.String(), nil
}
