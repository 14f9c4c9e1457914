package export

import "strings"

// Substitution 一組字面替換
type Substitution struct {
	From string
	To   string
}

// DefaultSubstitutions 回傳預設替換表的副本，依序套用
func DefaultSubstitutions() []Substitution {
	return []Substitution{
		{From: "–", To: "-"},   // en dash
		{From: "—", To: "-"},   // em dash
		{From: "“", To: "\""},  // left double quotation mark
		{From: "”", To: "\""},  // right double quotation mark
		{From: "‘", To: "'"},   // left single quotation mark
		{From: "’", To: "'"},   // right single quotation mark
		{From: "₹", To: "Rs."}, // indian rupee sign
		{From: "•", To: "-"},   // bullet
	}
}

// Sanitizer 將排版字元換成單位元組編碼可表示的 ASCII
type Sanitizer struct {
	table []Substitution
}

// NewSanitizer 以指定替換表建立 Sanitizer，nil 表示使用預設表
func NewSanitizer(table []Substitution) *Sanitizer {
	if table == nil {
		table = DefaultSubstitutions()
	}
	copied := make([]Substitution, 0, len(table))
	for _, sub := range table {
		if sub.From == "" {
			continue
		}
		copied = append(copied, sub)
	}
	return &Sanitizer{table: copied}
}

// Table 回傳替換表的副本
func (s *Sanitizer) Table() []Substitution {
	return append([]Substitution(nil), s.table...)
}

// Sanitize 依序套用替換表，其他字元原樣保留
func (s *Sanitizer) Sanitize(text string) string {
	for _, sub := range s.table {
		text = strings.ReplaceAll(text, sub.From, sub.To)
	}
	return text
}
