// Package pdf converts PDF documents to plain text.
//
// Poppler's pdftotext is used when installed since it preserves reading
// order better. The pure Go reader serves as the fallback.
package pdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/custodia-labs/acronyms/internal/core/domain"
	"github.com/custodia-labs/acronyms/internal/core/ports/driven"
	"github.com/custodia-labs/acronyms/internal/logger"
)

const toolName = "pdftotext"

// ErrPDFToolNotFound indicates pdftotext is not installed.
var ErrPDFToolNotFound = errors.New("pdftotext not found in PATH")

// Ensure Converter implements the interface.
var _ driven.Converter = (*Converter)(nil)

// CommandRunner executes external commands.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil && stderr.Len() > 0 {
		return nil, fmt.Errorf("%w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return out, err
}

// Converter extracts text from PDF bytes.
type Converter struct {
	runner     CommandRunner
	lookPath   func(string) (string, error)
	preferTool bool
}

// New creates a converter that prefers pdftotext when it is available.
func New() *Converter {
	return NewWithRunner(execRunner{})
}

// NewWithRunner creates a converter using the given command runner.
func NewWithRunner(runner CommandRunner) *Converter {
	return &Converter{
		runner:     runner,
		lookPath:   exec.LookPath,
		preferTool: true,
	}
}

// SetPreferTool toggles use of pdftotext. When off only the built-in reader
// is used.
func (c *Converter) SetPreferTool(prefer bool) {
	c.preferTool = prefer
}

// SupportedMIMETypes returns the MIME types this converter handles.
func (c *Converter) SupportedMIMETypes() []string {
	return []string{domain.MIMETypePDF}
}

// Convert extracts the text of a PDF.
func (c *Converter) Convert(ctx context.Context, doc *domain.Document, content []byte) (string, error) {
	if doc == nil {
		return "", domain.ErrInvalidInput
	}
	if len(content) == 0 {
		return "", fmt.Errorf("%w: empty pdf", domain.ErrInvalidInput)
	}

	if c.preferTool && c.toolAvailable() {
		text, err := c.runTool(ctx, content)
		if err == nil {
			return text, nil
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		logger.Warn("%v, falling back to built-in reader for %s", err, doc.URI)
	}

	return readText(content)
}

func (c *Converter) toolAvailable() bool {
	_, err := c.lookPath(toolName)
	return err == nil
}

// runTool writes the PDF to a temp file and reads pdftotext's stdout.
func (c *Converter) runTool(ctx context.Context, content []byte) (string, error) {
	tmp, err := os.CreateTemp("", "acronyms-*.pdf")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close temp file: %w", err)
	}

	out, err := c.runner.Run(ctx, toolName, "-enc", "UTF-8", tmp.Name(), "-")
	if err != nil {
		return "", fmt.Errorf("pdftotext failed: %w", err)
	}
	return string(out), nil
}

// readText extracts text page by page with the pure Go reader.
func readText(content []byte) (text string, err error) {
	// The reader panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("read pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("read pdf: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("read pdf page %d: %w", i, err)
		}
		sb.WriteString(pageText)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

// CheckAvailable returns nil if pdftotext is installed.
func CheckAvailable() error {
	if _, err := exec.LookPath(toolName); err != nil {
		return ErrPDFToolNotFound
	}
	return nil
}

// InstallInstructions returns platform-specific installation instructions.
func InstallInstructions() string {
	return `pdftotext is optional but gives better PDF text extraction.

Install poppler:
  macOS:         brew install poppler
  Ubuntu/Debian: sudo apt install poppler-utils
  Fedora:        sudo dnf install poppler-utils
  Arch:          sudo pacman -S poppler`
}
