package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kwbasket/kwbasket/internal/model"
)

func testBaskets() model.Baskets {
	return model.Baskets{
		{Index: 0, Name: "Shoes", Keywords: []string{"running shoe", "boot"}},
		{Index: 1, Name: model.Uncategorized, Keywords: []string{"garden hose"}},
	}
}

func TestBasketItem(t *testing.T) {
	single := basketItem{basket: model.Basket{Index: 1, Name: "Shirts", Keywords: []string{"tee"}}}
	assert.Equal(t, "Basket 1: Shirts", single.Title())
	assert.Equal(t, "1 keyword", single.Description())
	assert.Equal(t, "Shirts", single.FilterValue())

	many := basketItem{basket: testBaskets()[0]}
	assert.Equal(t, "2 keywords", many.Description())
}

func TestModelShowsLoadingBeforeFirstResize(t *testing.T) {
	m := New(testBaskets())
	assert.Equal(t, "loading...", m.View())
}

func TestModelWindowSize(t *testing.T) {
	m := New(testBaskets())

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	browser, ok := updated.(Model)
	require.True(t, ok)

	assert.True(t, browser.ready)
	assert.NotEqual(t, "loading...", browser.View())
}

func TestModelQuitKeys(t *testing.T) {
	for _, key := range []string{"q", "ctrl+c"} {
		t.Run(key, func(t *testing.T) {
			m := New(testBaskets())

			msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
			if key == "ctrl+c" {
				msg = tea.KeyMsg{Type: tea.KeyCtrlC}
			}

			_, cmd := m.Update(msg)
			require.NotNil(t, cmd)
			assert.Equal(t, tea.Quit(), cmd())
		})
	}
}

func TestModelEnterOpensDetail(t *testing.T) {
	m := New(testBaskets())

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	browser := updated.(Model)

	updated, _ = browser.Update(tea.KeyMsg{Type: tea.KeyEnter})
	browser = updated.(Model)

	assert.Equal(t, viewDetail, browser.view)
	assert.Equal(t, "Shoes", browser.selected.Name)
	assert.Contains(t, browser.View(), "Basket 0: Shoes")

	// esc returns to the list.
	updated, _ = browser.Update(tea.KeyMsg{Type: tea.KeyEsc})
	browser = updated.(Model)
	assert.Equal(t, viewList, browser.view)
}

func TestRenderKeywords(t *testing.T) {
	out := renderKeywords(testBaskets()[0])
	assert.Equal(t, "  - running shoe\n  - boot\n", out)
}
