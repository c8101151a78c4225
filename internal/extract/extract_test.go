package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cvmaker-backend/internal/shared/storage/object/local"
)

func buildZip(t *testing.T, entries map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, body := range entries {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

const documentXML = `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>
<w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p>
<w:p><w:r><w:t>Senior</w:t></w:r><w:r><w:tab/><w:t>Go Developer</w:t></w:r></w:p>
</w:body>
</w:document>`

func TestFromBytesZipDocxNormalizes(t *testing.T) {
	data := buildZip(t, map[string]string{"word/document.xml": documentXML})

	text, err := FromBytes(context.Background(), data, "application/zip", "cv.docx")
	require.NoError(t, err)
	assert.Contains(t, text, "Jane Doe\n")
	assert.Contains(t, text, "Senior\tGo Developer")
}

func TestFromBytesRealZipRejected(t *testing.T) {
	data := buildZip(t, map[string]string{"notes.txt": "hello"})

	_, err := FromBytes(context.Background(), data, "application/zip", "notes.zip")
	require.ErrorIs(t, err, ErrUnreadable)
	assert.Contains(t, err.Error(), "unsupported mime type: application/zip")
}

func TestFromBytesPlainText(t *testing.T) {
	text, err := FromBytes(context.Background(), []byte("\xef\xbb\xbf  Jane Doe\nGo developer  "), "text/plain; charset=utf-8", "cv.txt")
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nGo developer", text)
}

func TestFromBytesUnreadable(t *testing.T) {
	cases := []struct {
		name string
		data []byte
		mime string
		file string
	}{
		{"blank text", []byte("   \n\t"), "text/plain", "cv.txt"},
		{"invalid utf8", []byte{0xff, 0xfe, 0xfd}, "text/plain", "cv.txt"},
		{"corrupt pdf", []byte("%PDF-1.4 not really"), "application/pdf", "cv.pdf"},
		{"image", []byte("\x89PNG\r\n\x1a\n"), "image/png", "cv.png"},
		{"docx without body", buildZip(t, map[string]string{"word/styles.xml": "<x/>"}), MimeDOCX, "cv.docx"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := FromBytes(context.Background(), tc.data, tc.mime, tc.file)
			assert.ErrorIs(t, err, ErrUnreadable)
		})
	}
}

func TestNormalizeMimeType(t *testing.T) {
	assert.Equal(t, MimePDF, NormalizeMimeType("application/octet-stream", "CV.PDF", nil))
	assert.Equal(t, MimeText, NormalizeMimeType("", "notes.md", nil))
	assert.Equal(t, MimeText, NormalizeMimeType("text/plain; charset=utf-8", "cv.txt", nil))
	assert.Equal(t, "image/png", NormalizeMimeType("image/png", "cv.png", nil))
}

func TestTextReadsFromStore(t *testing.T) {
	ctx := context.Background()
	store := local.New(t.TempDir())
	key, _, mime, err := store.Save(ctx, "user-1", "cv.txt", strings.NewReader("Jane Doe, Go developer"))
	require.NoError(t, err)

	text, err := Text(ctx, store, key, mime, "cv.txt")
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe, Go developer", text)
}
