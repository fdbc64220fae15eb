// Package uploads validates multipart uploads and stores them under generated names.
package uploads

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

var (
	ErrTooLarge        = errors.New("file exceeds the upload size limit")
	ErrUnsupportedType = errors.New("file type is not allowed")
	ErrInvalidName     = errors.New("invalid file name")
	ErrNotExist        = errors.New("file does not exist")
)

// Policy describes one upload route: which form field it reads and which
// content types it accepts.
type Policy struct {
	Kind    string
	Field   string
	Allowed []string
}

var (
	ImagePolicy  = Policy{Kind: "image", Field: "image", Allowed: []string{"image/jpeg", "image/png", "image/gif"}}
	ResumePolicy = Policy{Kind: "resume", Field: "resume", Allowed: []string{"application/pdf"}}
)

func (p Policy) allows(contentType string) bool {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	for _, a := range p.Allowed {
		if strings.EqualFold(mt, a) {
			return true
		}
	}
	return false
}

// Accepted is a file that passed the policy; Open re-reads it from the start.
type Accepted struct {
	Name        string
	ContentType string
	Size        int64
	header      *multipart.FileHeader
}

func (a Accepted) Open() (multipart.File, error) {
	return a.header.Open()
}

// Check enforces the size cap, the declared content type and the sniffed content
// type, and assigns a uuid-based name. The client's extension is kept only when it
// maps to the sniffed type; otherwise the sniffed type's extension is used.
func (p Policy) Check(fh *multipart.FileHeader, maxBytes int64) (Accepted, error) {
	if fh.Size > maxBytes {
		return Accepted{}, ErrTooLarge
	}

	declared := fh.Header.Get("Content-Type")
	if !p.allows(declared) {
		return Accepted{}, fmt.Errorf("%w: %s", ErrUnsupportedType, declared)
	}

	f, err := fh.Open()
	if err != nil {
		return Accepted{}, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	sniffed, err := mimetype.DetectReader(io.LimitReader(f, 3072))
	if err != nil {
		return Accepted{}, fmt.Errorf("sniff upload: %w", err)
	}
	if !p.allows(sniffed.String()) {
		return Accepted{}, fmt.Errorf("%w: content is %s", ErrUnsupportedType, sniffed.String())
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !extensionMatches(ext, sniffed) {
		ext = sniffed.Extension()
	}

	ct, _, _ := mime.ParseMediaType(sniffed.String())
	return Accepted{
		Name:        uuid.NewString() + ext,
		ContentType: ct,
		Size:        fh.Size,
		header:      fh,
	}, nil
}

func extensionMatches(ext string, sniffed *mimetype.MIME) bool {
	if ext == "" {
		return false
	}
	mt, _, err := mime.ParseMediaType(mime.TypeByExtension(ext))
	return err == nil && sniffed.Is(mt)
}

// URL is the public path a stored file is served from.
func URL(name string) string {
	return "/uploads/" + name
}

// ValidName rejects anything that could escape the uploads directory.
func ValidName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	if strings.Contains(name, "..") || strings.ContainsAny(name, `/\`) {
		return false
	}
	return filepath.Base(name) == name
}
