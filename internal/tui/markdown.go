package tui

import (
	"sync"

	"github.com/charmbracelet/glamour"
)

const markdownWrapWidth = 80

//nolint:gochecknoglobals // cached renderers
var (
	markdownOnce     sync.Once
	markdownRenderer *glamour.TermRenderer
)

func getMarkdownRenderer() *glamour.TermRenderer {
	markdownOnce.Do(func() {
		opts := []glamour.TermRendererOption{glamour.WithWordWrap(markdownWrapWidth)}
		if HasColorSupport() {
			opts = append(opts, glamour.WithAutoStyle())
		} else {
			opts = append(opts, glamour.WithStandardStyle("notty"))
		}
		r, err := glamour.NewTermRenderer(opts...)
		if err == nil {
			markdownRenderer = r
		}
	})
	return markdownRenderer
}

// RenderMarkdown renders md for the terminal. If rendering fails the
// markdown source is returned unchanged.
func RenderMarkdown(md string) string {
	r := getMarkdownRenderer()
	if r == nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}
