package chart

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"pricehistory/internal/feature/pricehistory/domain/entity"
)

// Mode selects which chart the viewer draws.
type Mode int

const (
	ModeCandles Mode = iota
	ModeLine
)

func (m Mode) String() string {
	if m == ModeLine {
		return "high"
	}
	return "candles"
}

var footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#555555"))

// Model is a bubbletea model showing a static CandleTable.
type Model struct {
	title  string
	table  entity.CandleTable
	mode   Mode
	width  int
	height int
}

// NewModel returns a viewer for table starting in mode.
func NewModel(title string, table entity.CandleTable, mode Mode) Model {
	return Model{title: title, table: table, mode: mode}
}

// Mode returns the chart currently shown.
func (m Model) Mode() Mode {
	return m.mode
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "tab", "l", "c":
			if m.mode == ModeCandles {
				m.mode = ModeLine
			} else {
				m.mode = ModeCandles
			}
		}
	}
	return m, nil
}

func (m Model) View() string {
	if m.width == 0 {
		return "loading…"
	}
	// 1行はフッター用に確保
	size := Size{Width: m.width, Height: m.height - 1}
	title := m.title + "  [" + m.mode.String() + "]"

	var b strings.Builder
	if m.mode == ModeLine {
		b.WriteString(Line(title, m.table, size))
	} else {
		b.WriteString(Candlesticks(title, m.table, size))
	}
	b.WriteString(footerStyle.Render("[tab] switch chart  [q] quit"))
	return b.String()
}

// Run shows table full screen until the user quits.
func Run(title string, table entity.CandleTable, mode Mode) error {
	p := tea.NewProgram(NewModel(title, table, mode), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
