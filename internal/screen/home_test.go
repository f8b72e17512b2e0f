package screen

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHomeListsRoutesWithoutItself(t *testing.T) {
	h := NewHome()
	h.SetSize(60, 30)
	for _, item := range h.list.Items() {
		assert.NotEqual(t, "/", item.(routeItem).route.Path)
	}
	assert.Len(t, h.list.Items(), 6)
}

func TestHomeEnterNavigates(t *testing.T) {
	h := NewHome()
	h.SetSize(60, 30)
	path, ok := h.Selected()
	require.True(t, ok)
	assert.Equal(t, "/game", path)

	h.Update(tea.KeyMsg{Type: tea.KeyDown})
	path, _ = h.Selected()
	assert.Equal(t, "/index", path)

	_, cmd := h.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, NavigateMsg{Path: "/index"}, cmd())
}

func TestTermsView(t *testing.T) {
	tm := NewTerms()
	tm.SetSize(80, 20)
	assert.Contains(t, tm.View(), "Terms and conditions")
	assert.False(t, tm.Capturing())
}
