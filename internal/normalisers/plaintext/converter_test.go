package plaintext

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/acronyms/internal/core/domain"
	"github.com/custodia-labs/acronyms/internal/core/ports/driven"
)

func TestNew(t *testing.T) {
	require.NotNil(t, New())
}

func TestInterfaceCompliance(t *testing.T) {
	var _ driven.Converter = (*Converter)(nil)
}

func TestSupportedMIMETypes(t *testing.T) {
	assert.Equal(t, []string{"text/plain"}, New().SupportedMIMETypes())
}

func TestConvert(t *testing.T) {
	doc := &domain.Document{ID: "doc-1", URI: "/notes.txt"}

	tests := []struct {
		name     string
		content  []byte
		expected string
	}{
		{
			name:     "plain ascii",
			content:  []byte("Long Short Term Memory (LSTM)"),
			expected: "Long Short Term Memory (LSTM)",
		},
		{
			name:     "utf8 bom stripped",
			content:  append([]byte{0xEF, 0xBB, 0xBF}, []byte("Café (CF)")...),
			expected: "Café (CF)",
		},
		{
			name:     "utf16 little endian",
			content:  []byte{0xFF, 0xFE, 'H', 0, 'i', 0},
			expected: "Hi",
		},
		{
			name:     "utf16 big endian",
			content:  []byte{0xFE, 0xFF, 0, 'H', 0, 'i'},
			expected: "Hi",
		},
		{
			name:     "invalid bytes replaced",
			content:  []byte{'a', 0xFF, 'b'},
			expected: "a�b",
		},
		{
			name:     "empty",
			content:  nil,
			expected: "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			text, err := New().Convert(context.Background(), doc, tc.content)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, text)
		})
	}
}

func TestConvert_NilDocument(t *testing.T) {
	_, err := New().Convert(context.Background(), nil, []byte("x"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
