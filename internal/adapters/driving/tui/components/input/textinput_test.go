package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewChatInput(t *testing.T) {
	in := NewChatInput(nil)

	require.NotNil(t, in)
	assert.Empty(t, in.Value())
	assert.True(t, in.Focused())
}

func TestNewPathInput(t *testing.T) {
	in := NewPathInput(nil)

	require.NotNil(t, in)
	assert.Empty(t, in.Value())
}

func TestTextInput_SetValue(t *testing.T) {
	in := NewChatInput(nil)

	in.SetValue("what is in the report?")

	assert.Equal(t, "what is in the report?", in.Value())
}

func TestTextInput_Reset(t *testing.T) {
	in := NewChatInput(nil)
	in.SetValue("some text")

	in.Reset()

	assert.Empty(t, in.Value())
}

func TestTextInput_FocusBlur(t *testing.T) {
	in := NewChatInput(nil)

	in.Blur()
	assert.False(t, in.Focused())

	in.Focus()
	assert.True(t, in.Focused())
}

func TestTextInput_SetWidth(t *testing.T) {
	in := NewChatInput(nil)

	in.SetWidth(100)
	assert.Equal(t, 100, in.Width())

	// Narrow terminals clamp the inner field, not the recorded width
	in.SetWidth(15)
	assert.Equal(t, 15, in.Width())
}

func TestTextInput_Update_TypesCharacters(t *testing.T) {
	in := NewChatInput(nil)

	in, _ = in.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("hi")})

	assert.Equal(t, "hi", in.Value())
}

func TestTextInput_View_RendersLabel(t *testing.T) {
	in := NewChatInput(nil)

	view := in.View()

	assert.Contains(t, view, "You:")
}
