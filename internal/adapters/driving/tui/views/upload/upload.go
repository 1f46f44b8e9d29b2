// Package upload provides the document upload view for the TUI.
package upload

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/localrag/ragchat-cli/internal/adapters/driving/tui/components/input"
	"github.com/localrag/ragchat-cli/internal/adapters/driving/tui/components/status"
	"github.com/localrag/ragchat-cli/internal/adapters/driving/tui/keymap"
	"github.com/localrag/ragchat-cli/internal/adapters/driving/tui/messages"
	"github.com/localrag/ragchat-cli/internal/adapters/driving/tui/styles"
	"github.com/localrag/ragchat-cli/internal/core/ports/driving"
)

// State tracks where the current upload is in its lifecycle.
type State int

const (
	// StateIdle means no upload has been started.
	StateIdle State = iota
	// StateUploading means a file is in flight. Entered synchronously
	// on submit so the UI never shows idle for an active upload.
	StateUploading
	// StateSuccess means the last upload finished and its result is
	// cached for display.
	StateSuccess
	// StateError means the last upload failed.
	StateError
)

// String returns the string representation of the upload state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateUploading:
		return "uploading"
	case StateSuccess:
		return "success"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// View is the upload view. It projects the upload lifecycle into a
// status line: the submitted filename is cached on entry so it can
// still be shown after the input is cleared, and the chunk count is
// cached from the server response.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.TextInput
	statusbar *status.Bar

	uploads driving.UploadService
	ctx     context.Context

	width  int
	height int
	ready  bool

	state    State
	fileName string
	chunks   int
	err      error
}

// NewView creates a new upload view.
func NewView(s *styles.Styles, km *keymap.KeyMap, uploads driving.UploadService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:    s,
		keymap:    km,
		input:     input.NewPathInput(s),
		statusbar: status.NewBar(s, km),
		uploads:   uploads,
		ctx:       context.Background(),
		width:     80,
		height:    24,
		state:     StateIdle,
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

// Update handles messages for the upload view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.UploadCompleted:
		v.handleCompleted(msg)
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

	if msg.Type == tea.KeyEnter {
		return v.submit()
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// submit starts an upload for the path in the input. The uploading
// state and cached filename are set before the command runs.
func (v *View) submit() (*View, tea.Cmd) {
	if v.uploads == nil || v.state == StateUploading {
		return v, nil
	}

	path := strings.TrimSpace(v.input.Value())
	if path == "" {
		return v, nil
	}

	v.state = StateUploading
	v.fileName = filepath.Base(path)
	v.chunks = 0
	v.err = nil
	v.input.SetValue("")
	v.statusbar.SetState(status.StateUploading)
	v.statusbar.SetMessage("")

	return v, v.performUpload(path)
}

// performUpload executes the upload and reports the outcome.
func (v *View) performUpload(path string) tea.Cmd {
	return func() tea.Msg {
		result, err := v.uploads.Upload(v.ctx, path)
		return messages.UploadCompleted{Result: result, Err: err}
	}
}

// handleCompleted records the upload outcome.
func (v *View) handleCompleted(msg messages.UploadCompleted) {
	if msg.Err != nil {
		v.state = StateError
		v.err = msg.Err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return
	}

	v.state = StateSuccess
	v.err = nil
	if msg.Result.Filename != "" {
		v.fileName = msg.Result.Filename
	}
	v.chunks = msg.Result.Chunks
	v.statusbar.SetState(status.StateReady)
	v.statusbar.SetMessage(fmt.Sprintf("Uploaded %s (%d chunks)", v.fileName, v.chunks))
}

// View renders the upload view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 6)

	header := v.styles.Title.Render("Upload")
	sections = append(sections, header, "")

	sections = append(sections, v.renderStatus(), "")
	sections = append(sections, v.input.View(), "", v.statusbar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderStatus renders the lifecycle line for the current upload.
func (v *View) renderStatus() string {
	switch v.state {
	case StateUploading:
		return v.styles.Muted.Render(fmt.Sprintf("Uploading %s...", v.fileName))
	case StateSuccess:
		return v.styles.Success.Render(fmt.Sprintf("Uploaded %s (%d chunks)", v.fileName, v.chunks))
	case StateError:
		msg := fmt.Sprintf("Upload of %s failed", v.fileName)
		if v.err != nil {
			msg += ": " + v.err.Error()
		}
		return v.styles.Error.Render(msg)
	case StateIdle:
		return v.styles.Muted.Render("Enter the path of a document to ingest")
	}
	return ""
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

// State returns the current upload lifecycle state.
func (v *View) State() State {
	return v.state
}

// FileName returns the cached filename for the current upload.
func (v *View) FileName() string {
	return v.fileName
}

// Chunks returns the cached chunk count from the last success.
func (v *View) Chunks() int {
	return v.chunks
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// Input returns the current input text.
func (v *View) Input() string {
	return v.input.Value()
}

// SetInput sets the input text.
func (v *View) SetInput(text string) {
	v.input.SetValue(text)
}
