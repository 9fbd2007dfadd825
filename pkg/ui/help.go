package ui

import (
	"github.com/charmbracelet/glamour"
)

const helpMarkdown = `# mediadeck

Browse the connected media library. Tabs along the top are the catalog's
top-level sections; everything below is your navigation history.

## Keys

| Key | Action |
|-----|--------|
| up/down, k/j | Move the cursor |
| enter | Open a folder or play a track |
| backspace, h | Go back one level |
| left/right | Switch tab |
| / | Search the catalog |
| esc | Leave search |
| a | Queue the selected track |
| e | Show the play queue |
| n / p | Next / previous track |
| d | Toggle driving mode |
| y | Copy the selected item's ID |
| ? | Toggle this help |
| q | Quit |

While driving, long listings are cut short and items past the cut cannot
be opened. Park to lift the restriction.
`

// renderHelp renders the help markdown for the given width. Falls back to
// the raw markdown if the renderer cannot be built.
func renderHelp(width int) string {
	if width < 20 {
		width = 20
	}
	if width > 100 {
		width = 100
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return helpMarkdown
	}
	out, err := r.Render(helpMarkdown)
	if err != nil {
		return helpMarkdown
	}
	return out
}
