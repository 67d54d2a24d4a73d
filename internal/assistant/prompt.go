// Package assistant defines the system prompt shared by chat and ask.
package assistant

import "fmt"

// BuildPrompt returns the system prompt used for provider calls.
func BuildPrompt(renderMarkdown bool) string {
	formatInstruction := "Use plain text only: no markdown headings, bullet markers, or code fences. "
	if renderMarkdown {
		formatInstruction = "Use clean, minimal Markdown: short headings, concise bullet lists, and inline code where helpful. "
	}

	return fmt.Sprintf(
		"You are a CLI-based coding assistant. Help with programming, debugging, and explaining code clearly. "+
			"Keep responses concise (100-200 words) and written in a clean, readable terminal style. "+
			"Provide short, practical code snippets when needed and do not repeat explanations. "+
			"%sFocus on clarity, not decoration.",
		formatInstruction,
	)
}
