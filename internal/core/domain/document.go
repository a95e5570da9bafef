package domain

import (
	"strings"
	"time"
)

// Document represents a registered document whose text feeds acronym extraction.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// Title is the human-readable title.
	Title string

	// URI is the location of the document bytes (file path, file:// or http(s) URL).
	URI string

	// MIMEType selects the text extractor (e.g. application/pdf, text/plain).
	MIMEType string

	// CreatedAt is when the document was registered.
	CreatedAt time.Time
}

// Common MIME types understood by the extractors.
const (
	MIMETypePDF       = "application/pdf"
	MIMETypePlainText = "text/plain"
	MIMETypeMarkdown  = "text/markdown"
	MIMETypeHTML      = "text/html"
	MIMETypeDOCX      = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// MIMETypeForExtension returns the document MIME type for a file extension
// such as ".pdf", or an empty string if documents of that kind are not read.
func MIMETypeForExtension(ext string) string {
	switch strings.ToLower(ext) {
	case ".pdf":
		return MIMETypePDF
	case ".txt", ".text":
		return MIMETypePlainText
	case ".md", ".markdown":
		return MIMETypeMarkdown
	case ".html", ".htm":
		return MIMETypeHTML
	case ".docx":
		return MIMETypeDOCX
	default:
		return ""
	}
}
