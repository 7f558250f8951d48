package lineedit

// Prompt is an immutable textual prefix for the current line. Its display
// width in characters is recorded once at construction. It may be built
// from a single string or a concatenation of parts (useful for prompts
// assembled from differently-styled segments).
type Prompt struct {
	text  string
	width int
}

// NewPrompt returns a Prompt from a single string.
func NewPrompt(text string) Prompt {
	return Prompt{text: text, width: StringWidth(text)}
}

// NewPromptFromParts concatenates parts into one Prompt, computing the
// total width once.
func NewPromptFromParts(parts ...string) Prompt {
	total := 0
	for _, p := range parts {
		total += len(p)
	}
	buf := make([]byte, 0, total)
	width := 0
	for _, p := range parts {
		buf = append(buf, p...)
		width += StringWidth(p)
	}
	return Prompt{text: string(buf), width: width}
}

// String returns the prompt text.
func (p Prompt) String() string {
	return p.text
}

// Width returns the prompt's display width in character columns.
func (p Prompt) Width() int {
	return p.width
}
