package export

import (
	"context"
	"fmt"
	"strings"
	"time"

	"recipe-master/internal/pkg/common"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Format 匯出格式
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
	FormatTXT  Format = "txt"
)

// Formats 依固定順序列出所有格式
var Formats = []Format{FormatPDF, FormatDOCX, FormatTXT}

// ParseFormat 解析格式名稱（不分大小寫，可帶前置的點）
func ParseFormat(s string) (Format, error) {
	f := Format(strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "."))
	switch f {
	case FormatPDF, FormatDOCX, FormatTXT:
		return f, nil
	}
	return "", fmt.Errorf("unknown export format %q", s)
}

// MIMEType 格式對應的媒體類型
func (f Format) MIMEType() string {
	switch f {
	case FormatPDF:
		return "application/pdf"
	case FormatDOCX:
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case FormatTXT:
		return "text/plain; charset=utf-8"
	}
	return "application/octet-stream"
}

// Extension 副檔名（不含點）
func (f Format) Extension() string {
	return string(f)
}

// 未帶建立時間的文件一律使用此時間戳，讓輸出位元組可重現
var fixedStamp = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// Document 匯出的輸入：標題與已生成的內文
type Document struct {
	Title     string
	Body      string
	CreatedAt time.Time
}

// DocumentFromRecipe 由生成結果建立匯出文件
func DocumentFromRecipe(r *common.GeneratedRecipe) Document {
	return Document{
		Title:     r.Title,
		Body:      r.BodyText,
		CreatedAt: r.CreatedAt,
	}
}

func (d Document) stamp() time.Time {
	if d.CreatedAt.IsZero() {
		return fixedStamp
	}
	// zip 時間戳僅到秒
	return d.CreatedAt.UTC().Truncate(time.Second)
}

// Artifact 一個可下載的匯出檔
type Artifact struct {
	Format   Format
	Filename string
	MIMEType string
	Data     []byte
}

// Result 單一格式的匯出結果，Artifact 與 Err 擇一
type Result struct {
	Format   Format
	Artifact *Artifact
	Err      error
}

// Bundle 一次匯出所有格式的結果，順序同 Formats
type Bundle struct {
	Results []Result
}

// Get 取得指定格式的結果
func (b *Bundle) Get(f Format) (Result, bool) {
	for _, r := range b.Results {
		if r.Format == f {
			return r, true
		}
	}
	return Result{}, false
}

// Failed 回傳失敗的格式
func (b *Bundle) Failed() []Format {
	var failed []Format
	for _, r := range b.Results {
		if r.Err != nil {
			failed = append(failed, r.Format)
		}
	}
	return failed
}

// OK 所有格式皆成功
func (b *Bundle) OK() bool {
	return len(b.Failed()) == 0
}

// Options 匯出設定
type Options struct {
	PDF            PDFOptions
	FilenamePrefix string
	// Substitutions 為 nil 時使用預設替換表
	Substitutions []Substitution
}

// DefaultOptions 預設匯出設定
func DefaultOptions() Options {
	return Options{PDF: DefaultPDFOptions()}
}

// Exporter 將同一份文件轉成 PDF、DOCX 與 TXT
type Exporter struct {
	opts      Options
	sanitizer *Sanitizer
}

// NewExporter 創建新的匯出器
func NewExporter(opts Options) *Exporter {
	def := DefaultPDFOptions()
	if opts.PDF.FontFamily == "" {
		opts.PDF.FontFamily = def.FontFamily
	}
	if opts.PDF.FontSize <= 0 {
		opts.PDF.FontSize = def.FontSize
	}
	if opts.PDF.LineHeight <= 0 {
		opts.PDF.LineHeight = def.LineHeight
	}
	if opts.PDF.Margin <= 0 {
		opts.PDF.Margin = def.Margin
	}
	if opts.PDF.Policy == "" {
		opts.PDF.Policy = def.Policy
	}
	return &Exporter{
		opts:      opts,
		sanitizer: NewSanitizer(opts.Substitutions),
	}
}

// Filename 格式對應的下載檔名
func (e *Exporter) Filename(doc Document, f Format) string {
	return e.opts.FilenamePrefix + FileStem(doc.Title) + "." + f.Extension()
}

// Render 產生單一格式的匯出檔
func (e *Exporter) Render(f Format, doc Document) (*Artifact, error) {
	var (
		data []byte
		err  error
	)
	switch f {
	case FormatPDF:
		data, err = RenderPDF(doc, e.opts.PDF, e.sanitizer)
	case FormatDOCX:
		data, err = RenderDOCX(doc)
	case FormatTXT:
		data = RenderTXT(doc)
	default:
		return nil, fmt.Errorf("unknown export format %q", f)
	}

	common.LogExport(string(f), len(data), err, zap.String("title", doc.Title))
	if err != nil {
		return nil, err
	}
	return &Artifact{
		Format:   f,
		Filename: e.Filename(doc, f),
		MIMEType: f.MIMEType(),
		Data:     data,
	}, nil
}

// Export 並行產生所有格式。單一格式失敗不影響其他格式，
// 錯誤記錄在對應的 Result 中；只有 ctx 取消時才回傳錯誤。
func (e *Exporter) Export(ctx context.Context, doc Document) (*Bundle, error) {
	bundle := &Bundle{Results: make([]Result, len(Formats))}

	g, ctx := errgroup.WithContext(ctx)
	for i, f := range Formats {
		i, f := i, f
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			artifact, err := e.Render(f, doc)
			bundle.Results[i] = Result{Format: f, Artifact: artifact, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return bundle, nil
}
