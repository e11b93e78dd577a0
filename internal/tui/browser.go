// Package tui implements an interactive basket browser on top of bubbletea.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kwbasket/kwbasket/internal/model"
)

var (
	detailHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#9ECE6A"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// basketItem adapts a basket for the bubbles list component.
type basketItem struct {
	basket model.Basket
}

func (i basketItem) Title() string {
	return fmt.Sprintf("Basket %d: %s", i.basket.Index, i.basket.Name)
}

func (i basketItem) Description() string {
	if i.basket.Count() == 1 {
		return "1 keyword"
	}
	return fmt.Sprintf("%d keywords", i.basket.Count())
}

func (i basketItem) FilterValue() string {
	return i.basket.Name
}

// view identifies which screen the browser is showing.
type view int

const (
	viewList view = iota
	viewDetail
)

// Model is the bubbletea model for the basket browser.
type Model struct {
	selected model.Basket
	list     list.Model
	viewport viewport.Model
	view     view
	width    int
	height   int
	ready    bool
}

// New creates a browser over the given basket collection.
func New(baskets model.Baskets) Model {
	items := make([]list.Item, 0, len(baskets))
	for _, b := range baskets {
		items = append(items, basketItem{basket: b})
	}

	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Keyword Baskets"
	l.SetShowHelp(true)

	return Model{list: l}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, msg.Height-1)
		m.viewport = viewport.New(msg.Width, msg.Height-3)
		m.ready = true
		if m.view == viewDetail {
			m.viewport.SetContent(renderKeywords(m.selected))
		}

	case tea.KeyMsg:
		// Don't intercept keys while the list filter input is active.
		if m.view == viewList && m.list.FilterState() == list.Filtering {
			break
		}

		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "enter":
			if m.view == viewList {
				if item, ok := m.list.SelectedItem().(basketItem); ok {
					m.selected = item.basket
					m.viewport.SetContent(renderKeywords(m.selected))
					m.viewport.GotoTop()
					m.view = viewDetail
				}
				return m, nil
			}
		case "esc":
			if m.view == viewDetail {
				m.view = viewList
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	if m.view == viewList {
		m.list, cmd = m.list.Update(msg)
	} else {
		m.viewport, cmd = m.viewport.Update(msg)
	}
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "loading..."
	}

	if m.view == viewDetail {
		header := detailHeaderStyle.Render(
			fmt.Sprintf("Basket %d: %s (%d keywords)", m.selected.Index, m.selected.Name, m.selected.Count()))
		help := helpStyle.Render("↑/↓ scroll · esc back · q quit")
		return lipgloss.JoinVertical(lipgloss.Left, header, m.viewport.View(), help)
	}

	return m.list.View()
}

func renderKeywords(b model.Basket) string {
	var sb strings.Builder
	for _, kw := range b.Keywords {
		sb.WriteString("  - ")
		sb.WriteString(kw)
		sb.WriteString("\n")
	}
	return sb.String()
}

// Browse runs the basket browser until the user quits.
func Browse(baskets model.Baskets) error {
	p := tea.NewProgram(New(baskets), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("browser failed: %w", err)
	}
	return nil
}
