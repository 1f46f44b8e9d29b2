package upload

import (
	"context"
	"errors"
	"io"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localrag/ragchat-cli/internal/adapters/driving/tui/messages"
	"github.com/localrag/ragchat-cli/internal/core/domain"
)

type mockUploadService struct {
	uploadFunc func(ctx context.Context, path string) (domain.UploadResult, error)
	pending    bool
}

func (m *mockUploadService) Upload(ctx context.Context, path string) (domain.UploadResult, error) {
	if m.uploadFunc != nil {
		return m.uploadFunc(ctx, path)
	}
	return domain.UploadResult{}, nil
}

func (m *mockUploadService) UploadReader(ctx context.Context, filename string, content io.Reader) (domain.UploadResult, error) {
	return domain.UploadResult{Filename: filename}, nil
}

func (m *mockUploadService) Pending() bool { return m.pending }

func newTestView(svc *mockUploadService) *View {
	v := NewView(nil, nil, svc)
	v.SetDimensions(80, 24)
	return v
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "uploading", StateUploading.String())
	assert.Equal(t, "success", StateSuccess.String())
	assert.Equal(t, "error", StateError.String())
	assert.Equal(t, "unknown", State(99).String())
}

func TestView_StartsIdle(t *testing.T) {
	v := newTestView(&mockUploadService{})

	assert.Equal(t, StateIdle, v.State())
	assert.Contains(t, v.View(), "Enter the path")
}

func TestView_Submit_EntersUploadingSynchronously(t *testing.T) {
	svc := &mockUploadService{
		uploadFunc: func(_ context.Context, path string) (domain.UploadResult, error) {
			return domain.UploadResult{Filename: "report.pdf", Chunks: 12}, nil
		},
	}
	v := newTestView(svc)
	v.SetInput("/tmp/docs/report.pdf")

	v, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	// State flips before the command runs
	assert.Equal(t, StateUploading, v.State())
	assert.Equal(t, "report.pdf", v.FileName())
	assert.Empty(t, v.Input())
	assert.Contains(t, v.View(), "Uploading report.pdf...")
	require.NotNil(t, cmd)
}

func TestView_UploadLifecycle_Success(t *testing.T) {
	svc := &mockUploadService{
		uploadFunc: func(_ context.Context, path string) (domain.UploadResult, error) {
			return domain.UploadResult{Filename: "report.pdf", Chunks: 12}, nil
		},
	}
	v := newTestView(svc)
	v.SetInput("/tmp/docs/report.pdf")

	v, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg := cmd()
	completed, ok := msg.(messages.UploadCompleted)
	require.True(t, ok)

	v, _ = v.Update(completed)

	assert.Equal(t, StateSuccess, v.State())
	assert.Equal(t, "report.pdf", v.FileName())
	assert.Equal(t, 12, v.Chunks())
	assert.Contains(t, v.View(), "Uploaded report.pdf (12 chunks)")
}

func TestView_UploadLifecycle_Failure(t *testing.T) {
	cause := errors.New("connection refused")
	svc := &mockUploadService{
		uploadFunc: func(context.Context, string) (domain.UploadResult, error) {
			return domain.UploadResult{}, cause
		},
	}
	v := newTestView(svc)
	v.SetInput("/tmp/docs/report.pdf")

	v, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	v, _ = v.Update(cmd())

	assert.Equal(t, StateError, v.State())
	assert.Equal(t, cause, v.Err())
	// The cached filename survives the failure
	assert.Equal(t, "report.pdf", v.FileName())
	assert.Contains(t, v.View(), "Upload of report.pdf failed")
}

func TestView_Submit_EmptyPath_Ignored(t *testing.T) {
	v := newTestView(&mockUploadService{})

	v, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.Equal(t, StateIdle, v.State())
}

func TestView_Submit_WhileUploading_Ignored(t *testing.T) {
	calls := 0
	svc := &mockUploadService{
		uploadFunc: func(context.Context, string) (domain.UploadResult, error) {
			calls++
			return domain.UploadResult{}, nil
		},
	}
	v := newTestView(svc)
	v.SetInput("/tmp/a.txt")
	v, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	_ = cmd()

	// Second submit while still uploading
	v.SetInput("/tmp/b.txt")
	_, cmd2 := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd2)
	assert.Equal(t, 1, calls)
}

func TestView_NewUploadAfterSuccess(t *testing.T) {
	svc := &mockUploadService{
		uploadFunc: func(_ context.Context, path string) (domain.UploadResult, error) {
			return domain.UploadResult{Filename: "notes.md", Chunks: 3}, nil
		},
	}
	v := newTestView(svc)

	v.SetInput("/tmp/report.pdf")
	v, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	v, _ = v.Update(cmd())
	require.Equal(t, StateSuccess, v.State())

	v.SetInput("/tmp/notes.md")
	v, cmd = v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, StateUploading, v.State())
	assert.Equal(t, "notes.md", v.FileName())
	require.NotNil(t, cmd)
}

func TestView_Esc_ReturnsToMenu(t *testing.T) {
	v := newTestView(&mockUploadService{})

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	changed, ok := cmd().(messages.ViewChanged)
	require.True(t, ok)
	assert.Equal(t, messages.ViewMenu, changed.View)
}

func TestView_Typing_GoesToInput(t *testing.T) {
	v := newTestView(&mockUploadService{})

	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("/tmp")})

	assert.Equal(t, "/tmp", v.Input())
}
