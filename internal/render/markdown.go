// Package render formats model replies for the terminal.
package render

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

var (
	mu        sync.Mutex
	renderers = map[int]*glamour.TermRenderer{}
)

// Markdown renders text as terminal markdown wrapped to width.
// It falls back to plain trimmed text if rendering fails.
func Markdown(text string, width int) string {
	clean := strings.TrimSpace(text)
	if clean == "" {
		return ""
	}
	if width <= 0 {
		width = 100
	}

	renderer, err := getRenderer(width)
	if err != nil {
		return clean
	}
	out, err := renderer.Render(clean)
	if err != nil {
		return clean
	}
	return strings.TrimRight(out, "\n")
}

func getRenderer(width int) (*glamour.TermRenderer, error) {
	mu.Lock()
	defer mu.Unlock()

	if renderer, ok := renderers[width]; ok {
		return renderer, nil
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, fmt.Errorf("create markdown renderer: %w", err)
	}
	renderers[width] = renderer
	return renderer, nil
}
