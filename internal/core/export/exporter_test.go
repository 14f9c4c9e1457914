package export

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportAllFormats(t *testing.T) {
	e := NewExporter(Options{FilenamePrefix: "RecipeMaster_"})
	doc := Document{Title: "Paneer Butter Masala", Body: "Serves: 4\n– Paneer"}

	bundle, err := e.Export(context.Background(), doc)
	require.NoError(t, err)
	require.True(t, bundle.OK())
	require.Len(t, bundle.Results, 3)

	for i, f := range Formats {
		r := bundle.Results[i]
		assert.Equal(t, f, r.Format)
		require.NotNil(t, r.Artifact)
		assert.Equal(t, "RecipeMaster_Paneer_Butter_Masala."+string(f), r.Artifact.Filename)
		assert.Equal(t, f.MIMEType(), r.Artifact.MIMEType)
		assert.NotEmpty(t, r.Artifact.Data)
	}

	txt, ok := bundle.Get(FormatTXT)
	require.True(t, ok)
	assert.Equal(t, doc.Body, string(txt.Artifact.Data))
}

func TestExportPDFFailureKeepsOthers(t *testing.T) {
	e := NewExporter(DefaultOptions())
	doc := Document{Title: "Chai", Body: "Serve hot ☕"}

	bundle, err := e.Export(context.Background(), doc)
	require.NoError(t, err)
	assert.False(t, bundle.OK())
	assert.Equal(t, []Format{FormatPDF}, bundle.Failed())

	pdf, _ := bundle.Get(FormatPDF)
	var encErr *EncodingError
	assert.ErrorAs(t, pdf.Err, &encErr)
	assert.Nil(t, pdf.Artifact)

	docx, _ := bundle.Get(FormatDOCX)
	require.NoError(t, docx.Err)
	assert.NotEmpty(t, docx.Artifact.Data)

	txt, _ := bundle.Get(FormatTXT)
	require.NoError(t, txt.Err)
	assert.Equal(t, doc.Body, string(txt.Artifact.Data))
}

func TestExportEmptyBody(t *testing.T) {
	e := NewExporter(DefaultOptions())

	bundle, err := e.Export(context.Background(), Document{Title: "Empty", Body: ""})
	require.NoError(t, err)
	require.True(t, bundle.OK())

	for _, r := range bundle.Results {
		require.NotNil(t, r.Artifact, r.Format)
	}
	txt, _ := bundle.Get(FormatTXT)
	assert.Empty(t, txt.Artifact.Data)
	pdf, _ := bundle.Get(FormatPDF)
	assert.True(t, strings.HasPrefix(string(pdf.Artifact.Data), "%PDF-"))
	docx, _ := bundle.Get(FormatDOCX)
	assert.NotEmpty(t, docx.Artifact.Data)
}

func TestExportCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewExporter(DefaultOptions()).Export(ctx, Document{Title: "x", Body: "y"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"pdf": FormatPDF, ".DOCX": FormatDOCX, " txt ": FormatTXT} {
		got, err := ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseFormat("odt")
	assert.Error(t, err)
}

func TestFileStem(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Paneer Butter Masala", "Paneer_Butter_Masala"},
		{"  Aloo   Gobi  ", "Aloo_Gobi"},
		{"Mac/Cheese: \"Deluxe\"?", "MacCheese_Deluxe"},
		{"Crème brûlée", "Crème_brûlée"},
		{"..", "recipe"},
		{"", "recipe"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FileStem(tt.in), tt.in)
	}
}
