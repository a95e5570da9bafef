package acronyms

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected []string
	}{
		{
			name:     "empty",
			text:     "",
			expected: []string{},
		},
		{
			name:     "whitespace only",
			text:     " \n\t ",
			expected: []string{},
		},
		{
			name: "punctuation stripped",
			text: "Support Vector Machine (SVM) is popular.\nSVM works well.",
			expected: []string{
				"Support", "Vector", "Machine", "SVM", "is", "popular", "SVM", "works", "well",
			},
		},
		{
			name:     "line breaks become spaces",
			text:     "Natural\r\nLanguage\rProcessing\nNLP",
			expected: []string{"Natural", "Language", "Processing", "NLP"},
		},
		{
			name:     "hyphenated words split",
			text:     "state-of-the-art",
			expected: []string{"state", "of", "the", "art"},
		},
		{
			name:     "possessive split",
			text:     "SVM's margin",
			expected: []string{"SVM", "'s", "margin"},
		},
		{
			name:     "numbers kept",
			text:     "Los Alamos, NM 87545",
			expected: []string{"Los", "Alamos", "NM", "87545"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Tokenize(tt.text))
		})
	}
}

func TestTokenize_NFC(t *testing.T) {
	tokens := Tokenize("Cafe\u0301 Society")
	assert.Equal(t, []string{"Caf\u00e9", "Society"}, tokens)
}

func TestIsWordSegment(t *testing.T) {
	assert.True(t, isWordSegment("SVM"))
	assert.True(t, isWordSegment("87545"))
	assert.False(t, isWordSegment(" "))
	assert.False(t, isWordSegment("("))
	assert.False(t, isWordSegment("—"))
	assert.False(t, isWordSegment("+"))
	assert.False(t, isWordSegment(""))
}
