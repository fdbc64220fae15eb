package uploads

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	pngBytes = append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 32)...)
	pdfBytes = []byte("%PDF-1.4\n%âãÏÓ\n1 0 obj\n<<>>\nendobj\ntrailer\n<<>>\n%%EOF\n")
)

func fileHeader(t *testing.T, field, filename, contentType string, data []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	form, err := multipart.NewReader(&buf, mw.Boundary()).ReadForm(10 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	return form.File[field][0]
}

func TestImagePolicyAcceptsPNG(t *testing.T) {
	fh := fileHeader(t, "image", "Logo.PNG", "image/png", pngBytes)

	acc, err := ImagePolicy.Check(fh, 10<<20)
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(acc.Name, ".png"))
	assert.Len(t, strings.TrimSuffix(acc.Name, ".png"), 36)
	assert.Equal(t, "image/png", acc.ContentType)
	assert.Equal(t, "/uploads/"+acc.Name, URL(acc.Name))
}

func TestResumePolicyRejectsPNG(t *testing.T) {
	fh := fileHeader(t, "resume", "cv.png", "image/png", pngBytes)

	_, err := ResumePolicy.Check(fh, 10<<20)
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestResumePolicyAcceptsPDF(t *testing.T) {
	fh := fileHeader(t, "resume", "cv.pdf", "application/pdf", pdfBytes)

	acc, err := ResumePolicy.Check(fh, 10<<20)
	require.NoError(t, err)
	assert.Equal(t, ".pdf", filepath.Ext(acc.Name))
}

func TestPolicyRejectsSpoofedContent(t *testing.T) {
	fh := fileHeader(t, "image", "evil.png", "image/png", []byte("<html><script>alert(1)</script></html>"))

	_, err := ImagePolicy.Check(fh, 10<<20)
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestPolicyRejectsOversize(t *testing.T) {
	fh := fileHeader(t, "image", "big.png", "image/png", pngBytes)

	_, err := ImagePolicy.Check(fh, 8)
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestPolicyUsesSniffedExtensionWhenMissing(t *testing.T) {
	fh := fileHeader(t, "image", "noext", "image/png", pngBytes)

	acc, err := ImagePolicy.Check(fh, 10<<20)
	require.NoError(t, err)
	assert.Equal(t, ".png", filepath.Ext(acc.Name))
}

func TestPolicyReplacesMismatchedExtension(t *testing.T) {
	for _, name := range []string{"x.html", "x.svg", "x.gif", "x.exe"} {
		fh := fileHeader(t, "image", name, "image/png", pngBytes)

		acc, err := ImagePolicy.Check(fh, 10<<20)
		require.NoError(t, err, name)
		assert.Equal(t, ".png", filepath.Ext(acc.Name), name)
		assert.Equal(t, "image/png", acc.ContentType, name)
	}
}

func TestPolicyKeepsMatchingExtension(t *testing.T) {
	fh := fileHeader(t, "resume", "CV.PDF", "application/pdf", pdfBytes)

	acc, err := ResumePolicy.Check(fh, 10<<20)
	require.NoError(t, err)
	assert.Equal(t, ".pdf", filepath.Ext(acc.Name))
}

func TestValidName(t *testing.T) {
	tests := map[string]bool{
		"abc.png":         true,
		"":                false,
		"..":              false,
		"../etc/passwd":   false,
		"a/b.png":         false,
		`a\b.png`:         false,
		"x..png":          false,
		"9b2f.resume.pdf": true,
	}
	for name, want := range tests {
		assert.Equal(t, want, ValidName(name), name)
	}
}

func TestDiskSaveAndOpen(t *testing.T) {
	d, err := NewDisk(filepath.Join(t.TempDir(), "uploads"))
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, d.Save(ctx, "a.pdf", bytes.NewReader(pdfBytes), int64(len(pdfBytes)), "application/pdf"))

	rc, info, err := d.Open(ctx, "a.pdf")
	require.NoError(t, err)
	defer rc.Close()

	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, pdfBytes, got)
	assert.Equal(t, int64(len(pdfBytes)), info.Size)
	assert.Equal(t, "application/pdf", info.ContentType)

	entries, err := os.ReadDir(d.dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files should not be left behind")
}

func TestDiskOpenErrors(t *testing.T) {
	d, err := NewDisk(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	_, _, err = d.Open(ctx, "missing.png")
	assert.True(t, errors.Is(err, ErrNotExist))

	_, _, err = d.Open(ctx, "../secret")
	assert.ErrorIs(t, err, ErrInvalidName)

	assert.ErrorIs(t, d.Save(ctx, "../x", bytes.NewReader(nil), 0, ""), ErrInvalidName)
}
