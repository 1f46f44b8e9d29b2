// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/localrag/ragchat-cli/internal/adapters/driving/tui/styles"
	"github.com/localrag/ragchat-cli/internal/core/domain"
)

// DocList displays catalog documents in a navigable list.
type DocList struct {
	docs     []domain.DocumentRecord
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewDocList creates a new document list component.
func NewDocList(s *styles.Styles) *DocList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &DocList{
		docs:     nil,
		selected: 0,
		styles:   s,
		width:    80,
		height:   10,
	}
}

// Init initialises the document list.
func (d *DocList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (d *DocList) Update(msg tea.Msg) (*DocList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		//nolint:exhaustive // handling only relevant key types
		switch msg.Type {
		case tea.KeyUp:
			d.MoveUp()
		case tea.KeyDown:
			d.MoveDown()
		default:
			// Handle other keys
		}
		switch msg.String() {
		case "k":
			d.MoveUp()
		case "j":
			d.MoveDown()
		}
	}
	return d, nil
}

// View renders the document list.
func (d *DocList) View() string {
	if len(d.docs) == 0 {
		return d.styles.Muted.Render("No documents")
	}

	lines := make([]string, 0, len(d.docs)+2)

	// Header
	header := d.styles.Subtitle.Render(fmt.Sprintf("Documents (%d)", len(d.docs)))
	lines = append(lines, header, "")

	// Calculate visible range based on height
	visibleCount := d.height - 4
	if visibleCount < 1 {
		visibleCount = 1
	}

	start := 0
	if d.selected >= visibleCount {
		start = d.selected - visibleCount + 1
	}
	end := start + visibleCount
	if end > len(d.docs) {
		end = len(d.docs)
	}

	for i := start; i < end; i++ {
		lines = append(lines, d.renderDocument(i, &d.docs[i]))
	}

	return strings.Join(lines, "\n")
}

// renderDocument formats a single catalog entry.
func (d *DocList) renderDocument(index int, doc *domain.DocumentRecord) string {
	indicator := "  "
	if index == d.selected {
		indicator = "> "
	}

	source := doc.Source
	if source == "" {
		source = "(unnamed)"
	}

	// Truncate source if too long
	maxSourceLen := d.width - 24
	if maxSourceLen < 10 {
		maxSourceLen = 10
	}
	if len(source) > maxSourceLen {
		source = source[:maxSourceLen-3] + "..."
	}

	chunks := fmt.Sprintf("%d chunks", doc.Chunks)

	if index == d.selected {
		return d.styles.Selected.Render(fmt.Sprintf("%s%-*s  %s", indicator, maxSourceLen, source, chunks))
	}
	return d.styles.Normal.Render(fmt.Sprintf("%s%-*s  ", indicator, maxSourceLen, source)) +
		d.styles.Muted.Render(chunks)
}

// SetDocuments replaces the list contents. Selection is clamped so a
// shrinking catalog cannot leave the cursor out of range.
func (d *DocList) SetDocuments(docs []domain.DocumentRecord) {
	d.docs = docs
	if d.selected >= len(docs) {
		d.selected = len(docs) - 1
	}
	if d.selected < 0 {
		d.selected = 0
	}
}

// Documents returns the current documents.
func (d *DocList) Documents() []domain.DocumentRecord {
	return d.docs
}

// Selected returns the index of the selected document.
func (d *DocList) Selected() int {
	return d.selected
}

// SetSelected sets the selected index.
func (d *DocList) SetSelected(index int) {
	if index >= 0 && index < len(d.docs) {
		d.selected = index
	}
}

// SelectedDocument returns the currently selected document, or nil if none.
func (d *DocList) SelectedDocument() *domain.DocumentRecord {
	if len(d.docs) == 0 || d.selected < 0 || d.selected >= len(d.docs) {
		return nil
	}
	return &d.docs[d.selected]
}

// MoveUp moves selection up.
func (d *DocList) MoveUp() {
	if d.selected > 0 {
		d.selected--
	}
}

// MoveDown moves selection down.
func (d *DocList) MoveDown() {
	if d.selected < len(d.docs)-1 {
		d.selected++
	}
}

// SetDimensions sets the component dimensions.
func (d *DocList) SetDimensions(width, height int) {
	d.width = width
	d.height = height
}

// Width returns the current width.
func (d *DocList) Width() int {
	return d.width
}

// Height returns the current height.
func (d *DocList) Height() int {
	return d.height
}

// Count returns the number of documents.
func (d *DocList) Count() int {
	return len(d.docs)
}

// IsEmpty returns whether the list is empty.
func (d *DocList) IsEmpty() bool {
	return len(d.docs) == 0
}
