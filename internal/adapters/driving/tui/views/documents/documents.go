// Package documents provides the document catalog view for the TUI.
package documents

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/localrag/ragchat-cli/internal/adapters/driving/tui/components/list"
	"github.com/localrag/ragchat-cli/internal/adapters/driving/tui/components/status"
	"github.com/localrag/ragchat-cli/internal/adapters/driving/tui/keymap"
	"github.com/localrag/ragchat-cli/internal/adapters/driving/tui/messages"
	"github.com/localrag/ragchat-cli/internal/adapters/driving/tui/styles"
	"github.com/localrag/ragchat-cli/internal/core/domain"
	"github.com/localrag/ragchat-cli/internal/core/ports/driving"
)

// View is the document catalog view. It shows the cached snapshot from
// the catalog service and keeps it fresh with a periodic poll while
// visible.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	list      *list.DocList
	statusbar *status.Bar

	catalog driving.CatalogService
	ctx     context.Context

	width  int
	height int
	ready  bool
	err    error

	// tickGen identifies the current poll chain. Init bumps it, so
	// ticks scheduled before a re-entry carry a stale generation and
	// are dropped instead of doubling the chain.
	tickGen int

	// confirming holds the document awaiting delete confirmation, or
	// nil when no overlay is shown.
	confirming *domain.DocumentRecord
}

// NewView creates a new documents view.
func NewView(s *styles.Styles, km *keymap.KeyMap, catalog driving.CatalogService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:    s,
		keymap:    km,
		list:      list.NewDocList(s),
		statusbar: status.NewBar(s, km),
		catalog:   catalog,
		ctx:       context.Background(),
		width:     80,
		height:    24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init starts the first fetch and a fresh poll cycle.
func (v *View) Init() tea.Cmd {
	v.syncFromCatalog()
	v.tickGen++
	return tea.Batch(v.refreshCmd(), v.tickCmd())
}

// Update handles messages for the documents view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		if v.confirming != nil {
			return v.handleConfirmKey(msg)
		}
		return v.handleKeyMsg(msg)

	case messages.CatalogTick:
		if msg.Gen != v.tickGen {
			return v, nil
		}
		return v, tea.Batch(v.pollCmd(), v.tickCmd())

	case messages.CatalogRefreshed:
		v.syncFromCatalog()
		return v, nil

	case messages.DocumentDeleted:
		v.handleDeleted(msg)
		return v, nil

	}

	return v, nil
}

// handleKeyMsg handles key presses in list mode.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if msg.Type == tea.KeyEsc {
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	switch {
	case keymap.Matches(msg.String(), v.keymap.Delete):
		if doc := v.list.SelectedDocument(); doc != nil {
			v.confirming = doc
		}
		return v, nil

	case keymap.Matches(msg.String(), v.keymap.Refresh):
		v.statusbar.SetMessage("Refreshing...")
		return v, v.refreshCmd()
	}

	var cmd tea.Cmd
	v.list, cmd = v.list.Update(msg)
	return v, cmd
}

// handleConfirmKey handles the delete confirmation overlay.
func (v *View) handleConfirmKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		doc := v.confirming
		v.confirming = nil
		v.statusbar.SetMessage("Deleting " + doc.Source + "...")
		return v, v.deleteCmd(doc.ID)

	case "n", "esc":
		v.confirming = nil
		return v, nil
	}
	return v, nil
}

// refreshCmd fetches the catalog immediately.
func (v *View) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		if v.catalog == nil {
			return messages.CatalogRefreshed{Err: fmt.Errorf("catalog service not available")}
		}
		return messages.CatalogRefreshed{Err: v.catalog.Refresh(v.ctx)}
	}
}

// pollCmd is the scheduled catalog fetch. It goes through Poll so a
// tick racing a mutation-triggered refresh does not stack requests.
func (v *View) pollCmd() tea.Cmd {
	return func() tea.Msg {
		if v.catalog == nil {
			return messages.CatalogRefreshed{Err: fmt.Errorf("catalog service not available")}
		}
		return messages.CatalogRefreshed{Err: v.catalog.Poll(v.ctx)}
	}
}

// tickCmd schedules the next poll for the current chain.
func (v *View) tickCmd() tea.Cmd {
	interval := domain.DefaultPollInterval
	if v.catalog != nil {
		interval = v.catalog.Interval()
	}
	gen := v.tickGen
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return messages.CatalogTick{Gen: gen}
	})
}

// deleteCmd removes a document. The overlay already answered the
// confirmation, so the gate passed to the service always approves.
func (v *View) deleteCmd(documentID string) tea.Cmd {
	return func() tea.Msg {
		err := v.catalog.Delete(v.ctx, documentID, func(domain.DocumentRecord) bool {
			return true
		})
		return messages.DocumentDeleted{DocumentID: documentID, Err: err}
	}
}

// syncFromCatalog re-reads the cached snapshot into the list and
// mirrors the catalog state on the status bar.
func (v *View) syncFromCatalog() {
	if v.catalog == nil {
		return
	}

	docs := v.catalog.Snapshot()
	v.list.SetDocuments(docs)
	v.statusbar.SetDocCount(len(docs))

	switch v.catalog.State() {
	case driving.CatalogError:
		v.err = v.catalog.Err()
		v.statusbar.SetState(status.StateError)
		if v.err != nil {
			v.statusbar.SetMessage(v.err.Error())
		}
	case driving.CatalogReady:
		v.err = nil
		v.statusbar.SetState(status.StateReady)
		if refreshErr := v.catalog.Err(); refreshErr != nil {
			// Stale but usable snapshot
			v.statusbar.SetMessage("Refresh failed, showing cached list")
		} else {
			v.statusbar.SetMessage("")
		}
	case driving.CatalogLoading:
		v.err = nil
		v.statusbar.SetState(status.StateReady)
		v.statusbar.SetMessage("Loading...")
	}
}

// handleDeleted processes the outcome of a delete.
func (v *View) handleDeleted(msg messages.DocumentDeleted) {
	if msg.Err != nil {
		v.err = msg.Err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return
	}

	v.syncFromCatalog()
	v.statusbar.SetMessage("Document deleted")
}

// View renders the documents view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 6)

	header := v.styles.Title.Render("Documents")
	sections = append(sections, header, "")

	if v.catalog != nil && v.catalog.State() == driving.CatalogLoading {
		sections = append(sections, v.styles.Muted.Render("Loading documents..."))
	} else if v.catalog != nil && v.catalog.State() == driving.CatalogError {
		msg := "Could not load documents"
		if err := v.catalog.Err(); err != nil {
			msg = "Could not load documents: " + err.Error()
		}
		sections = append(sections, v.styles.Error.Render(msg))
	} else {
		sections = append(sections, v.list.View())
	}

	if v.confirming != nil {
		sections = append(sections, "", v.renderConfirm())
	}

	sections = append(sections, "", v.statusbar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderConfirm renders the delete confirmation overlay.
func (v *View) renderConfirm() string {
	prompt := fmt.Sprintf("Delete %q? This cannot be undone.", v.confirming.Source)
	hint := v.styles.Muted.Render("y: delete | n: cancel")
	content := strings.Join([]string{v.styles.Warning.Render(prompt), hint}, "\n")
	return v.styles.Border.Padding(0, 1).Render(content)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.list.SetDimensions(width, height-8)
	v.statusbar.SetWidth(width)
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// Confirming returns the document awaiting delete confirmation, or nil.
func (v *View) Confirming() *domain.DocumentRecord {
	return v.confirming
}

// SelectedDocument returns the currently selected document, or nil.
func (v *View) SelectedDocument() *domain.DocumentRecord {
	return v.list.SelectedDocument()
}

// Documents returns the documents currently displayed.
func (v *View) Documents() []domain.DocumentRecord {
	return v.list.Documents()
}
