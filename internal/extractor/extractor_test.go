package extractor

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, data, 0o644))
	return p
}

func TestIsSupported(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"notes.pdf", true},
		{"notes.PDF", true},
		{"/tmp/a/b/essay.docx", true},
		{"legacy.doc", true},
		{"readme.txt", true},
		{"image.png", false},
		{"archive.tar.gz", false},
		{"noext", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, IsSupported(tt.path))
		})
	}
}

func TestSupportedExtensions_ReturnsCopy(t *testing.T) {
	exts := SupportedExtensions()
	assert.Equal(t, []string{".pdf", ".docx", ".doc", ".txt"}, exts)

	exts[0] = ".exe"
	assert.False(t, IsSupported("x.exe"))
}

func TestExtract_TXT(t *testing.T) {
	p := writeFile(t, "hello.txt", []byte("  hello world \n\n"))

	text, err := Extract(p)

	require.NoError(t, err)
	assert.Equal(t, "hello world", text)
}

func TestExtract_TXTWithBOM(t *testing.T) {
	p := writeFile(t, "bom.txt", []byte("\xef\xbb\xbfhello"))

	text, err := Extract(p)

	require.NoError(t, err)
	assert.Equal(t, "hello", text)
}

func TestExtract_PDF(t *testing.T) {
	p := writeFile(t, "lecture.pdf", buildPDF(t, "Hello PDF", "Second page"))

	text, err := Extract(p)

	require.NoError(t, err)
	assert.Contains(t, text, "Hello PDF")
	assert.Contains(t, text, "Second page")
	assert.Less(t, strings.Index(text, "Hello PDF"), strings.Index(text, "Second page"))
	assert.Equal(t, strings.TrimSpace(text), text)
}

func TestExtract_DOCX(t *testing.T) {
	p := writeFile(t, "essay.docx", buildDOCX(t, "First paragraph", "Second\tpart"))

	text, err := Extract(p)

	require.NoError(t, err)
	assert.Equal(t, "First paragraph\nSecond\tpart", text)
}

func TestExtract_DOCUsesDocxReader(t *testing.T) {
	p := writeFile(t, "OLD.DOC", buildDOCX(t, "saved as ooxml"))

	text, err := Extract(p)

	require.NoError(t, err)
	assert.Equal(t, "saved as ooxml", text)
}

func TestExtract_Unsupported(t *testing.T) {
	p := writeFile(t, "slides.pptx", []byte("whatever"))

	_, err := Extract(p)

	var ufe *UnsupportedFormatError
	require.True(t, errors.As(err, &ufe))
	assert.Equal(t, ".pptx", ufe.Ext)
	assert.Contains(t, err.Error(), ".pptx")
	assert.False(t, IsSupported(p))
}

func TestExtract_FileNotFound(t *testing.T) {
	_, err := Extract(filepath.Join(t.TempDir(), "missing.txt"))

	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestExtract_Failures(t *testing.T) {
	tests := []struct {
		name string
		file string
		data []byte
	}{
		{"corrupt pdf", "broken.pdf", []byte("%PDF-1.4\nthis is not a pdf")},
		{"not a zip", "broken.docx", []byte("plain bytes")},
		{"binary doc", "legacy.doc", []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}},
		{"invalid utf8", "bad.txt", []byte{0xff, 0xfe, 0xfd}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := writeFile(t, tt.file, tt.data)

			text, err := Extract(p)

			assert.Empty(t, text)
			var ee *ExtractionError
			require.True(t, errors.As(err, &ee), "got %v", err)
			assert.NotEmpty(t, ee.Error())
		})
	}
}

func TestExtractBytes_ExtensionForms(t *testing.T) {
	for _, ext := range []string{".txt", "txt", ".TXT", "TXT"} {
		t.Run(ext, func(t *testing.T) {
			text, err := ExtractBytes([]byte("hi"), ext)
			require.NoError(t, err)
			assert.Equal(t, "hi", text)
		})
	}

	_, err := ExtractBytes([]byte("hi"), "")
	var ufe *UnsupportedFormatError
	assert.True(t, errors.As(err, &ufe))
}

func TestExtractBytes_StripsNUL(t *testing.T) {
	text, err := ExtractBytes([]byte("hello\x00world\x00"), ".txt")

	require.NoError(t, err)
	assert.Equal(t, "helloworld", text)
	assert.NotContains(t, text, "\x00")
}

func TestExtract_PDFWithNUL(t *testing.T) {
	// \000 is the PDF string escape for a NUL byte
	path := writeFile(t, "nul.pdf", buildPDF(t, `alpha\000beta`))

	text, err := Extract(path)

	require.NoError(t, err)
	assert.NotContains(t, text, "\x00")
	assert.Contains(t, text, "alpha")
}

func TestParagraphText(t *testing.T) {
	xmlDoc := `<w:document xmlns:w="w"><w:body>
<w:p><w:r><w:t>a</w:t></w:r><w:r><w:t>b</w:t></w:r></w:p>
<w:p/>
<w:p><w:r><w:t>line</w:t><w:br/><w:t>break</w:t></w:r></w:p>
</w:body></w:document>`

	got, err := paragraphText(xmlDoc)

	require.NoError(t, err)
	assert.Equal(t, []string{"ab", "", "line\nbreak"}, got)
}

func TestParagraphText_Malformed(t *testing.T) {
	_, err := paragraphText("<w:p><w:t>unterminated")
	assert.Error(t, err)
}
