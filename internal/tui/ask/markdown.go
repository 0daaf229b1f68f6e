package ask

import (
	"charm.land/glamour/v2"
)

// markdownRenderer caches a glamour renderer per wrap width.
type markdownRenderer struct {
	width    int
	renderer *glamour.TermRenderer
}

func newMarkdownRenderer() *markdownRenderer {
	return &markdownRenderer{}
}

// Render renders md wrapped at width columns.
func (m *markdownRenderer) Render(md string, width int) (string, error) {
	if width < 20 {
		width = 20
	}
	if m.renderer == nil || m.width != width {
		r, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle("dark"),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return "", err
		}
		m.renderer = r
		m.width = width
	}
	return m.renderer.Render(md)
}
