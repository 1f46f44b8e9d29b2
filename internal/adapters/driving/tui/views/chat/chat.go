// Package chat provides the conversation view for the TUI.
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/localrag/ragchat-cli/internal/adapters/driving/tui/components/input"
	"github.com/localrag/ragchat-cli/internal/adapters/driving/tui/components/status"
	"github.com/localrag/ragchat-cli/internal/adapters/driving/tui/keymap"
	"github.com/localrag/ragchat-cli/internal/adapters/driving/tui/messages"
	"github.com/localrag/ragchat-cli/internal/adapters/driving/tui/styles"
	"github.com/localrag/ragchat-cli/internal/core/domain"
	"github.com/localrag/ragchat-cli/internal/core/ports/driving"
)

// View represents the conversation view with transcript, input, and
// status bar. The transcript itself lives in the chat service; the view
// re-reads it on every render.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.TextInput
	statusbar *status.Bar

	chatService driving.ChatService
	ctx         context.Context

	width       int
	height      int
	ready       bool
	err         error
	showSources bool
}

// NewView creates a new chat view.
func NewView(s *styles.Styles, km *keymap.KeyMap, chatService driving.ChatService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:      s,
		keymap:      km,
		input:       input.NewChatInput(s),
		statusbar:   status.NewBar(s, km),
		chatService: chatService,
		ctx:         context.Background(),
		width:       80,
		height:      24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the chat view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.ChatCompleted:
		v.handleChatCompleted(msg)
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if msg.Type == tea.KeyEsc {
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	if keymap.Matches(msg.String(), v.keymap.Sources) {
		v.showSources = !v.showSources
		return v, nil
	}

	if msg.Type == tea.KeyEnter {
		return v.submit()
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// submit starts a chat turn from the current input text. The user
// message appears in the transcript immediately; the network call runs
// as a command.
func (v *View) submit() (*View, tea.Cmd) {
	if v.chatService == nil {
		return v, nil
	}

	req, err := v.chatService.Submit(v.input.Value())
	if err != nil {
		if errors.Is(err, domain.ErrEmptyMessage) {
			return v, nil
		}
		if errors.Is(err, domain.ErrSendInProgress) {
			v.statusbar.SetMessage("Still thinking, hold on")
			return v, nil
		}
		v.err = err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(err.Error())
		return v, nil
	}

	v.input.SetValue("")
	v.err = nil
	v.showSources = false
	v.statusbar.SetState(status.StateThinking)
	v.statusbar.SetMessage("")
	return v, v.performSend(req)
}

// performSend executes the network call and reports the outcome.
func (v *View) performSend(req domain.TurnRequest) tea.Cmd {
	return func() tea.Msg {
		reply, err := v.chatService.Send(v.ctx, req)
		return messages.ChatCompleted{RequestID: req.ID, Reply: reply, Err: err}
	}
}

// handleChatCompleted resolves a finished turn. Stale completions are
// discarded by the service; the view only reflects accepted ones.
func (v *View) handleChatCompleted(msg messages.ChatCompleted) {
	accepted := v.chatService.Resolve(msg.RequestID, msg.Reply, msg.Err)
	if !accepted {
		return
	}

	if msg.Err != nil {
		v.err = msg.Err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return
	}

	v.err = nil
	v.statusbar.SetState(status.StateReady)
	v.statusbar.SetMessage("")
}

// View renders the chat view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 8)

	provider, model := v.providerLabel()
	header := v.styles.Title.Render("Chat") + "  " + v.styles.Muted.Render(provider+model)
	sections = append(sections, header, "")

	sections = append(sections, v.renderTranscript())

	if v.showSources {
		if cites := v.renderSources(); cites != "" {
			sections = append(sections, "", cites)
		}
	}

	sections = append(sections, "", v.input.View(), "", v.statusbar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (v *View) providerLabel() (string, string) {
	if v.chatService == nil {
		return "", ""
	}
	provider, model := v.chatService.Provider()
	if model != "" {
		return string(provider), " / " + model
	}
	return string(provider), ""
}

// renderTranscript renders the most recent messages that fit the
// available height.
func (v *View) renderTranscript() string {
	if v.chatService == nil {
		return v.styles.Muted.Render("Ask a question about your documents")
	}

	history := v.chatService.History()
	if len(history) == 0 {
		return v.styles.Muted.Render("Ask a question about your documents")
	}

	// Reserve space for header, input, and status bar.
	budget := v.height - 10
	if budget < 2 {
		budget = 2
	}

	lines := make([]string, 0, budget)
	for _, m := range history {
		lines = append(lines, v.renderMessage(m)...)
	}
	if len(lines) > budget {
		lines = lines[len(lines)-budget:]
	}

	if v.chatService.Pending() {
		lines = append(lines, v.styles.Muted.Render("Assistant is thinking..."))
	}

	return strings.Join(lines, "\n")
}

// renderMessage formats one transcript entry, wrapping long content.
func (v *View) renderMessage(m domain.Message) []string {
	wrapWidth := v.width - 4
	if wrapWidth < 20 {
		wrapWidth = 20
	}

	var label string
	var bodyStyle lipgloss.Style
	switch m.Role {
	case domain.RoleUser:
		label = v.styles.UserMessage.Render("You")
		bodyStyle = v.styles.Normal
	case domain.RoleAssistant:
		label = v.styles.Subtitle.Render("Assistant")
		bodyStyle = v.styles.AssistantMessage
	default:
		label = v.styles.Muted.Render(string(m.Role))
		bodyStyle = v.styles.Muted
	}

	body := lipgloss.NewStyle().Width(wrapWidth).Render(m.Content)
	out := []string{label}
	for _, line := range strings.Split(body, "\n") {
		out = append(out, bodyStyle.Render("  "+line))
	}
	return out
}

// renderSources renders the citations for the last successful reply.
func (v *View) renderSources() string {
	if v.chatService == nil {
		return ""
	}

	refs := v.chatService.Sources()
	if len(refs) == 0 {
		return v.styles.Muted.Render("No sources for the last reply")
	}

	lines := make([]string, 0, len(refs)+1)
	lines = append(lines, v.styles.Subtitle.Render("Sources"))
	for _, ref := range refs {
		entry := ref.Source
		if ref.Page != nil {
			entry = fmt.Sprintf("%s (p. %d)", entry, *ref.Page)
		}
		lines = append(lines, v.styles.Citation.Render("  "+entry))
	}
	return strings.Join(lines, "\n")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
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

// ShowingSources returns whether citations are visible.
func (v *View) ShowingSources() bool {
	return v.showSources
}

// Input returns the current input text.
func (v *View) Input() string {
	return v.input.Value()
}

// SetInput sets the input text.
func (v *View) SetInput(text string) {
	v.input.SetValue(text)
}

// Reset clears view-local state. The transcript is owned by the chat
// service and survives view switches.
func (v *View) Reset() {
	v.err = nil
	v.showSources = false
	v.input.SetValue("")
	v.input.Focus()
	v.statusbar.SetState(status.StateReady)
	v.statusbar.SetMessage("")
	if v.chatService != nil && v.chatService.Pending() {
		v.statusbar.SetState(status.StateThinking)
	}
}
