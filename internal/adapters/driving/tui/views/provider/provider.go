// Package provider provides the provider and model selection view for the TUI.
package provider

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/localrag/ragchat-cli/internal/adapters/driving/tui/messages"
	"github.com/localrag/ragchat-cli/internal/adapters/driving/tui/styles"
	"github.com/localrag/ragchat-cli/internal/core/domain"
	"github.com/localrag/ragchat-cli/internal/core/ports/driving"
)

// Phase tracks which selection step is active.
type Phase int

const (
	// PhaseProvider is the provider list.
	PhaseProvider Phase = iota
	// PhaseModel is the model list, shown for local providers only.
	PhaseModel
)

// View lets the user pick the provider for subsequent chat turns. For
// the local provider it follows up with a model list fetched from the
// server; hosted providers use their default model.
type View struct {
	styles *styles.Styles

	chat     driving.ChatService
	models   driving.ModelService
	settings driving.SettingsService

	ctx context.Context

	width  int
	height int
	ready  bool
	err    error

	phase         Phase
	providers     []domain.Provider
	selected      int
	modelNames    []string
	modelSelected int
	loading       bool
	saved         string
}

// NewView creates a new provider view.
func NewView(
	s *styles.Styles,
	chat driving.ChatService,
	models driving.ModelService,
	settings driving.SettingsService,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles:    s,
		chat:      chat,
		models:    models,
		settings:  settings,
		ctx:       context.Background(),
		width:     80,
		height:    24,
		providers: domain.AllProviders(),
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the provider view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.ModelsLoaded:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			v.phase = PhaseProvider
			return v, nil
		}
		v.err = nil
		v.modelNames = msg.Models
		v.modelSelected = 0
		v.phase = PhaseModel
		return v, nil

	case messages.SettingsSaved:
		if msg.Err != nil {
			v.err = msg.Err
		} else {
			v.err = nil
			provider, model := v.currentSelection()
			v.saved = string(provider)
			if model != "" {
				v.saved += " / " + model
			}
		}
		return v, nil

	}

	return v, nil
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if msg.Type == tea.KeyEsc {
		if v.phase == PhaseModel {
			v.phase = PhaseProvider
			return v, nil
		}
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	switch msg.String() {
	case "up", "k":
		v.moveUp()
		return v, nil

	case "down", "j":
		v.moveDown()
		return v, nil

	case "enter":
		return v.confirm()
	}

	return v, nil
}

func (v *View) moveUp() {
	if v.phase == PhaseModel {
		if v.modelSelected > 0 {
			v.modelSelected--
		}
		return
	}
	if v.selected > 0 {
		v.selected--
	}
}

func (v *View) moveDown() {
	if v.phase == PhaseModel {
		if v.modelSelected < len(v.modelNames)-1 {
			v.modelSelected++
		}
		return
	}
	if v.selected < len(v.providers)-1 {
		v.selected++
	}
}

// confirm applies the current selection. Picking a local provider
// first fetches the installed models.
func (v *View) confirm() (*View, tea.Cmd) {
	if v.phase == PhaseModel {
		if len(v.modelNames) == 0 {
			return v, nil
		}
		return v, v.saveCmd(v.providers[v.selected], v.modelNames[v.modelSelected])
	}

	provider := v.providers[v.selected]
	if provider.Local() && v.models != nil {
		v.loading = true
		v.saved = ""
		return v, v.loadModelsCmd()
	}
	return v, v.saveCmd(provider, "")
}

// loadModelsCmd fetches the model list from the server.
func (v *View) loadModelsCmd() tea.Cmd {
	return func() tea.Msg {
		names, err := v.models.List(v.ctx)
		return messages.ModelsLoaded{Models: names, Err: err}
	}
}

// saveCmd persists the selection and switches the active chat provider.
func (v *View) saveCmd(provider domain.Provider, model string) tea.Cmd {
	return func() tea.Msg {
		if v.chat != nil {
			v.chat.SetProvider(provider, model)
		}
		if v.settings == nil {
			return messages.SettingsSaved{}
		}
		return messages.SettingsSaved{Err: v.settings.SetProvider(provider, model)}
	}
}

// currentSelection returns the provider and model of the active cursor.
func (v *View) currentSelection() (domain.Provider, string) {
	provider := v.providers[v.selected]
	if v.phase == PhaseModel && len(v.modelNames) > 0 {
		return provider, v.modelNames[v.modelSelected]
	}
	return provider, ""
}

// View renders the provider view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 6)
	sections = append(sections, v.styles.Title.Render("Provider"), "")

	if v.loading {
		sections = append(sections, v.styles.Muted.Render("Loading models..."))
	} else if v.phase == PhaseModel {
		sections = append(sections, v.renderModels())
	} else {
		sections = append(sections, v.renderProviders())
	}

	if v.err != nil {
		sections = append(sections, "", v.styles.Error.Render("Error: "+v.err.Error()))
	}
	if v.saved != "" {
		sections = append(sections, "", v.styles.Success.Render("Using "+v.saved))
	}

	sections = append(sections, "", v.styles.Help.Render("↑/↓: navigate | enter: select | esc: back"))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (v *View) renderProviders() string {
	active, activeModel := v.activeProvider()

	lines := make([]string, 0, len(v.providers))
	for i, p := range v.providers {
		cursor := "  "
		label := string(p)
		if p == active {
			marker := " (current"
			if activeModel != "" && p.Local() {
				marker += ": " + activeModel
			}
			marker += ")"
			label += marker
		}

		if i == v.selected {
			cursor = "> "
			lines = append(lines, v.styles.Selected.Render(cursor+label))
		} else {
			lines = append(lines, v.styles.Normal.Render(cursor+label))
		}
	}
	return strings.Join(lines, "\n")
}

func (v *View) renderModels() string {
	if len(v.modelNames) == 0 {
		return v.styles.Muted.Render("No models installed")
	}

	lines := make([]string, 0, len(v.modelNames)+2)
	lines = append(lines, v.styles.Subtitle.Render(fmt.Sprintf("Models (%d)", len(v.modelNames))), "")
	for i, name := range v.modelNames {
		cursor := "  "
		if i == v.modelSelected {
			cursor = "> "
			lines = append(lines, v.styles.Selected.Render(cursor+name))
		} else {
			lines = append(lines, v.styles.Normal.Render(cursor+name))
		}
	}
	return strings.Join(lines, "\n")
}

func (v *View) activeProvider() (domain.Provider, string) {
	if v.chat == nil {
		return domain.DefaultProvider, ""
	}
	return v.chat.Provider()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// CurrentPhase returns the active selection phase.
func (v *View) CurrentPhase() Phase {
	return v.phase
}

// Selected returns the index of the selected provider.
func (v *View) Selected() int {
	return v.selected
}

// Models returns the fetched model names.
func (v *View) Models() []string {
	return v.modelNames
}

// Reset returns the view to the provider list.
func (v *View) Reset() {
	v.phase = PhaseProvider
	v.modelNames = nil
	v.modelSelected = 0
	v.loading = false
	v.err = nil
	v.saved = ""
}
