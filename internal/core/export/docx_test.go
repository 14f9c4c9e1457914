package export

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type docxParagraph struct {
	Style string
	Text  string
}

// readDOCX 解析 word/document.xml，回傳每個段落的樣式與文字
func readDOCX(t *testing.T, data []byte) []docxParagraph {
	t.Helper()

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	var body []byte
	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		body, err = io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
	}
	require.NotNil(t, body, "word/document.xml missing")

	var (
		paragraphs []docxParagraph
		current    *docxParagraph
		text       strings.Builder
		inText     bool
	)
	dec := xml.NewDecoder(bytes.NewReader(body))
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)

		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "p":
				current = &docxParagraph{}
				text.Reset()
			case "pStyle":
				for _, a := range el.Attr {
					if a.Name.Local == "val" {
						current.Style = a.Value
					}
				}
			case "t":
				inText = true
			case "br":
				text.WriteString("\n")
			case "tab":
				text.WriteString("\t")
			}
		case xml.EndElement:
			switch el.Name.Local {
			case "p":
				current.Text = text.String()
				paragraphs = append(paragraphs, *current)
				current = nil
			case "t":
				inText = false
			}
		case xml.CharData:
			if inText {
				text.Write(el)
			}
		}
	}
	return paragraphs
}

func TestRenderDOCX(t *testing.T) {
	doc := Document{
		Title: "Paneer Butter Masala",
		Body:  "Serves: 4\n\nIngredients:\n\t• 200g paneer\nSalt & “love” <to taste> ₹",
	}

	data, err := RenderDOCX(doc)
	require.NoError(t, err)

	paragraphs := readDOCX(t, data)
	require.Len(t, paragraphs, 2)
	assert.Equal(t, headingStyle, paragraphs[0].Style)
	assert.Equal(t, doc.Title, paragraphs[0].Text)
	assert.Empty(t, paragraphs[1].Style)
	assert.Equal(t, doc.Body, paragraphs[1].Text)
}

func TestRenderDOCXStripsInvalidControlChars(t *testing.T) {
	doc := Document{Title: "Soup\x0b", Body: "Whisk\x0cwell\x0b\tthen\x00 serve\r\nhot"}

	data, err := RenderDOCX(doc)
	require.NoError(t, err)

	paragraphs := readDOCX(t, data)
	require.Len(t, paragraphs, 2)
	assert.Equal(t, "Soup", paragraphs[0].Text)
	assert.Equal(t, "Whiskwell\tthen serve\r\nhot", paragraphs[1].Text)
	assert.NotContains(t, paragraphs[1].Text, "\uFFFD")
}

func TestRenderDOCXParts(t *testing.T) {
	data, err := RenderDOCX(Document{Title: "Dal", Body: "Boil."})
	require.NoError(t, err)

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	assert.Equal(t, "[Content_Types].xml", names[0])
	assert.Contains(t, names, "_rels/.rels")
	assert.Contains(t, names, "word/document.xml")
	assert.Contains(t, names, "word/styles.xml")
}

func TestRenderDOCXEmptyBody(t *testing.T) {
	data, err := RenderDOCX(Document{Title: "Nothing yet"})
	require.NoError(t, err)

	paragraphs := readDOCX(t, data)
	require.Len(t, paragraphs, 2)
	assert.Equal(t, "Nothing yet", paragraphs[0].Text)
	assert.Empty(t, paragraphs[1].Text)
}

func TestRenderDOCXDeterministic(t *testing.T) {
	doc := Document{Title: "Kheer", Body: "Milk, rice, sugar.", CreatedAt: time.Date(2025, 5, 2, 8, 0, 0, 0, time.UTC)}

	first, err := RenderDOCX(doc)
	require.NoError(t, err)
	second, err := RenderDOCX(doc)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
