package generation

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt("Mitochondria are the powerhouse of the cell.", 7)

	assert.Contains(t, prompt, "generate exactly 7 flashcards")
	assert.Contains(t, prompt, "Mitochondria are the powerhouse of the cell.")
	assert.Contains(t, prompt, `"question" and "answer"`)
	assert.Contains(t, prompt, `single key "flashcards"`)
	assert.Equal(t, prompt, BuildPrompt("Mitochondria are the powerhouse of the cell.", 7), "must be deterministic")
}

func TestBuildPrompt_DoesNotEscapeContent(t *testing.T) {
	content := `if a < b && c > d { return "x" }`
	assert.Contains(t, BuildPrompt(content, 1), content)
}

func TestBuildPrompt_TruncatesContent(t *testing.T) {
	long := strings.Repeat("a", MaxContentRunes) + "TAIL"
	prompt := BuildPrompt(long, 3)

	assert.NotContains(t, prompt, "TAIL")
	assert.Contains(t, prompt, strings.Repeat("a", MaxContentRunes))
}

func TestTruncateContent(t *testing.T) {
	assert.Equal(t, "short", TruncateContent("short"))

	exact := strings.Repeat("x", MaxContentRunes)
	assert.Equal(t, exact, TruncateContent(exact))

	multibyte := strings.Repeat("é", MaxContentRunes+10)
	got := TruncateContent(multibyte)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, MaxContentRunes, utf8.RuneCountInString(got))

	// Byte length above the limit but rune count below it.
	fits := strings.Repeat("é", MaxContentRunes-1)
	assert.Equal(t, fits, TruncateContent(fits))
}

func TestNewPromptBuilder(t *testing.T) {
	t.Run("empty path uses built-in template", func(t *testing.T) {
		b, err := NewPromptBuilder("")
		require.NoError(t, err)
		prompt, err := b.Build("content", 2)
		require.NoError(t, err)
		assert.Equal(t, BuildPrompt("content", 2), prompt)
	})

	t.Run("custom template", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "prompt.tmpl")
		require.NoError(t, os.WriteFile(path, []byte("Make {{.Count}} cards from: {{.Content}}"), 0o600))

		b, err := NewPromptBuilder(path)
		require.NoError(t, err)
		prompt, err := b.Build("photosynthesis", 4)
		require.NoError(t, err)
		assert.Equal(t, "Make 4 cards from: photosynthesis", prompt)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := NewPromptBuilder(filepath.Join(t.TempDir(), "absent.tmpl"))
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("parse error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.tmpl")
		require.NoError(t, os.WriteFile(path, []byte("{{.Count"), 0o600))

		_, err := NewPromptBuilder(path)
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("unknown field fails at load", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "unknown.tmpl")
		require.NoError(t, os.WriteFile(path, []byte("{{.Title}}"), 0o600))

		_, err := NewPromptBuilder(path)
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})
}
