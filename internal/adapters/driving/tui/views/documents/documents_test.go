package documents

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localrag/ragchat-cli/internal/adapters/driving/tui/components/status"
	"github.com/localrag/ragchat-cli/internal/adapters/driving/tui/messages"
	"github.com/localrag/ragchat-cli/internal/core/domain"
	"github.com/localrag/ragchat-cli/internal/core/ports/driving"
)

type mockCatalogService struct {
	refreshFunc func(ctx context.Context) error
	pollFunc    func(ctx context.Context) error
	deleteFunc  func(ctx context.Context, id string, confirm driving.ConfirmFunc) error
	snapshot    []domain.DocumentRecord
	state       driving.CatalogState
	err         error
	interval    time.Duration
}

func (m *mockCatalogService) Refresh(ctx context.Context) error {
	if m.refreshFunc != nil {
		return m.refreshFunc(ctx)
	}
	return nil
}

func (m *mockCatalogService) Poll(ctx context.Context) error {
	if m.pollFunc != nil {
		return m.pollFunc(ctx)
	}
	return nil
}

func (m *mockCatalogService) Invalidate(ctx context.Context) error { return m.Refresh(ctx) }

func (m *mockCatalogService) Snapshot() []domain.DocumentRecord { return m.snapshot }

func (m *mockCatalogService) Get(id string) (domain.DocumentRecord, bool) {
	for _, doc := range m.snapshot {
		if doc.ID == id {
			return doc, true
		}
	}
	return domain.DocumentRecord{}, false
}

func (m *mockCatalogService) State() driving.CatalogState { return m.state }
func (m *mockCatalogService) Err() error                  { return m.err }

func (m *mockCatalogService) Delete(ctx context.Context, id string, confirm driving.ConfirmFunc) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id, confirm)
	}
	return nil
}

func (m *mockCatalogService) Interval() time.Duration {
	if m.interval > 0 {
		return m.interval
	}
	return domain.DefaultPollInterval
}

func readyCatalog() *mockCatalogService {
	return &mockCatalogService{
		snapshot: []domain.DocumentRecord{
			{ID: "d1", Source: "report.pdf", Chunks: 12},
			{ID: "d2", Source: "notes.md", Chunks: 3},
		},
		state: driving.CatalogReady,
	}
}

func newTestView(catalog *mockCatalogService) *View {
	v := NewView(nil, nil, catalog)
	v.SetDimensions(80, 24)
	return v
}

func TestView_Init_SchedulesRefresh(t *testing.T) {
	catalog := readyCatalog()
	v := newTestView(catalog)

	cmd := v.Init()

	require.NotNil(t, cmd)
	assert.Equal(t, 2, len(v.Documents()))
}

func TestView_CatalogRefreshed_SyncsSnapshot(t *testing.T) {
	catalog := readyCatalog()
	v := newTestView(catalog)

	v, _ = v.Update(messages.CatalogRefreshed{})

	assert.Len(t, v.Documents(), 2)
	assert.Equal(t, 2, v.statusbar.DocCount())
	assert.NoError(t, v.Err())
}

func TestView_CatalogRefreshed_FirstLoadFailure(t *testing.T) {
	cause := errors.New("connection refused")
	catalog := &mockCatalogService{state: driving.CatalogError, err: cause}
	v := newTestView(catalog)

	v, _ = v.Update(messages.CatalogRefreshed{Err: cause})

	assert.Equal(t, cause, v.Err())
	assert.Equal(t, status.StateError, v.statusbar.State())
	assert.Contains(t, v.View(), "Could not load documents")
}

func TestView_CatalogRefreshed_StaleSnapshotKept(t *testing.T) {
	catalog := readyCatalog()
	catalog.err = errors.New("timeout")
	v := newTestView(catalog)

	v, _ = v.Update(messages.CatalogRefreshed{Err: catalog.err})

	// Snapshot still shown, with a staleness notice rather than an error
	assert.Len(t, v.Documents(), 2)
	assert.NoError(t, v.Err())
	assert.Contains(t, v.statusbar.Message(), "cached")
}

func TestView_CatalogTick_PollsAndReschedules(t *testing.T) {
	polled := false
	catalog := readyCatalog()
	catalog.pollFunc = func(context.Context) error {
		polled = true
		return nil
	}
	v := newTestView(catalog)
	_ = v.Init()

	_, cmd := v.Update(messages.CatalogTick{Gen: v.tickGen})

	require.NotNil(t, cmd)
	// Batch contains the poll command and the next tick; executing the
	// batch members runs the poll.
	if batch, ok := cmd().(tea.BatchMsg); ok {
		for _, c := range batch {
			if c != nil {
				_ = c()
			}
		}
	}
	assert.True(t, polled)
}

func TestView_CatalogTick_StaleGenerationDropped(t *testing.T) {
	polled := false
	catalog := readyCatalog()
	catalog.pollFunc = func(context.Context) error {
		polled = true
		return nil
	}
	v := newTestView(catalog)

	// Two Inits model leaving and re-entering the view. A tick queued
	// by the first visit must not survive into the second, or two poll
	// chains would run side by side.
	_ = v.Init()
	stale := v.tickGen
	_ = v.Init()

	_, cmd := v.Update(messages.CatalogTick{Gen: stale})

	assert.Nil(t, cmd)
	assert.False(t, polled)

	_, cmd = v.Update(messages.CatalogTick{Gen: v.tickGen})
	assert.NotNil(t, cmd)
}

func TestView_DeleteKey_OpensConfirmation(t *testing.T) {
	v := newTestView(readyCatalog())
	v, _ = v.Update(messages.CatalogRefreshed{})

	v, cmd := v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")})

	assert.Nil(t, cmd)
	require.NotNil(t, v.Confirming())
	assert.Equal(t, "d1", v.Confirming().ID)
	assert.Contains(t, v.View(), "report.pdf")
}

func TestView_ConfirmDelete_CallsService(t *testing.T) {
	var deletedID string
	catalog := readyCatalog()
	catalog.deleteFunc = func(_ context.Context, id string, confirm driving.ConfirmFunc) error {
		deletedID = id
		// The overlay already confirmed; the gate must approve
		assert.True(t, confirm(domain.DocumentRecord{ID: id}))
		return nil
	}
	v := newTestView(catalog)
	v, _ = v.Update(messages.CatalogRefreshed{})
	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")})

	v, cmd := v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})

	assert.Nil(t, v.Confirming())
	require.NotNil(t, cmd)
	msg := cmd()
	deleted, ok := msg.(messages.DocumentDeleted)
	require.True(t, ok)
	assert.Equal(t, "d1", deleted.DocumentID)
	assert.NoError(t, deleted.Err)
	assert.Equal(t, "d1", deletedID)
}

func TestView_DeclineDelete_NoServiceCall(t *testing.T) {
	called := false
	catalog := readyCatalog()
	catalog.deleteFunc = func(context.Context, string, driving.ConfirmFunc) error {
		called = true
		return nil
	}
	v := newTestView(catalog)
	v, _ = v.Update(messages.CatalogRefreshed{})
	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")})

	v, cmd := v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})

	assert.Nil(t, v.Confirming())
	assert.Nil(t, cmd)
	assert.False(t, called)
}

func TestView_DocumentDeleted_Failure(t *testing.T) {
	cause := errors.New("server error")
	v := newTestView(readyCatalog())

	v, _ = v.Update(messages.DocumentDeleted{DocumentID: "d1", Err: cause})

	assert.Equal(t, cause, v.Err())
	assert.Equal(t, status.StateError, v.statusbar.State())
}

func TestView_DocumentDeleted_Success_ResyncsList(t *testing.T) {
	catalog := readyCatalog()
	v := newTestView(catalog)
	v, _ = v.Update(messages.CatalogRefreshed{})

	// Server-side delete reflected in the next snapshot
	catalog.snapshot = catalog.snapshot[1:]
	v, _ = v.Update(messages.DocumentDeleted{DocumentID: "d1"})

	assert.Len(t, v.Documents(), 1)
	assert.Equal(t, "d2", v.Documents()[0].ID)
	assert.Contains(t, v.statusbar.Message(), "deleted")
}

func TestView_RefreshKey(t *testing.T) {
	refreshed := false
	catalog := readyCatalog()
	catalog.refreshFunc = func(context.Context) error {
		refreshed = true
		return nil
	}
	v := newTestView(catalog)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})

	require.NotNil(t, cmd)
	_ = cmd()
	assert.True(t, refreshed)
}

func TestView_Esc_ReturnsToMenu(t *testing.T) {
	v := newTestView(readyCatalog())

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	changed, ok := cmd().(messages.ViewChanged)
	require.True(t, ok)
	assert.Equal(t, messages.ViewMenu, changed.View)
}

func TestView_Navigation(t *testing.T) {
	v := newTestView(readyCatalog())
	v, _ = v.Update(messages.CatalogRefreshed{})

	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})

	require.NotNil(t, v.SelectedDocument())
	assert.Equal(t, "d2", v.SelectedDocument().ID)
}
