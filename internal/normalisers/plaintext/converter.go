// Package plaintext converts text documents.
package plaintext

import (
	"bytes"
	"context"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/custodia-labs/acronyms/internal/core/domain"
	"github.com/custodia-labs/acronyms/internal/core/ports/driven"
)

// Ensure Converter implements the interface.
var _ driven.Converter = (*Converter)(nil)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// Converter handles plain text documents.
type Converter struct{}

// New creates a new plain text converter.
func New() *Converter {
	return &Converter{}
}

// SupportedMIMETypes returns the MIME types this converter handles.
func (c *Converter) SupportedMIMETypes() []string {
	return []string{domain.MIMETypePlainText}
}

// Convert decodes the bytes as UTF-8, or UTF-16 when a BOM says so.
// Invalid sequences become U+FFFD.
func (c *Converter) Convert(_ context.Context, doc *domain.Document, content []byte) (string, error) {
	if doc == nil {
		return "", domain.ErrInvalidInput
	}

	if bytes.HasPrefix(content, bomUTF16LE) || bytes.HasPrefix(content, bomUTF16BE) {
		decoded, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), content)
		if err != nil {
			return "", err
		}
		content = decoded
	}
	content = bytes.TrimPrefix(content, bomUTF8)

	if utf8.Valid(content) {
		return string(content), nil
	}
	return strings.ToValidUTF8(string(content), string(utf8.RuneError)), nil
}
