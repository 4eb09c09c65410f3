package generation

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"text/template"
)

// MaxContentRunes is the longest note prefix embedded in a prompt. It leaves
// room for the instructions inside the model's context window.
const MaxContentRunes = 7500

// SystemInstruction accompanies every prompt as the system message.
const SystemInstruction = "You are an AI assistant that generates flashcards from text " +
	"and strictly follows JSON output format instructions."

//go:embed templates/flashcards.tmpl
var defaultTemplate string

var defaultBuilder = &PromptBuilder{
	tmpl: template.Must(template.New("flashcards").Parse(defaultTemplate)),
}

// promptData is the data passed to prompt templates.
type promptData struct {
	Content string
	Count   int
}

// PromptBuilder renders generation prompts from a text template that
// receives .Content and .Count.
type PromptBuilder struct {
	tmpl *template.Template
}

// NewPromptBuilder loads the template at path. An empty path selects the
// built-in template. The template is executed once against sample data so
// that a broken file fails at startup rather than on the first request.
func NewPromptBuilder(path string) (*PromptBuilder, error) {
	if path == "" {
		return defaultBuilder, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read prompt template from %s: %v",
			ErrInvalidConfig, path, err)
	}

	tmpl, err := template.New("flashcards").Option("missingkey=error").Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse prompt template: %v", ErrInvalidConfig, err)
	}

	if err := tmpl.Execute(io.Discard, promptData{Content: "sample", Count: 1}); err != nil {
		return nil, fmt.Errorf("%w: prompt template does not render: %v", ErrInvalidConfig, err)
	}

	return &PromptBuilder{tmpl: tmpl}, nil
}

// Build renders the prompt for content and count. Content longer than
// MaxContentRunes is cut silently.
func (b *PromptBuilder) Build(content string, count int) (string, error) {
	var buf bytes.Buffer
	if err := b.tmpl.Execute(&buf, promptData{Content: TruncateContent(content), Count: count}); err != nil {
		return "", fmt.Errorf("failed to execute prompt template: %w", err)
	}
	return buf.String(), nil
}

// BuildPrompt renders the built-in prompt. It is deterministic and does no I/O.
func BuildPrompt(content string, count int) string {
	prompt, err := defaultBuilder.Build(content, count)
	if err != nil {
		// The built-in template only references fields of promptData.
		panic(err)
	}
	return prompt
}

// TruncateContent returns at most the first MaxContentRunes characters of
// content.
func TruncateContent(content string) string {
	if len(content) <= MaxContentRunes {
		return content
	}
	runes := []rune(content)
	if len(runes) <= MaxContentRunes {
		return content
	}
	return string(runes[:MaxContentRunes])
}
