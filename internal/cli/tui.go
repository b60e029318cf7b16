package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/causallab/dagcheck/pkg/scenario"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// ScenarioListModel - Interactive scenario selection
// =============================================================================

// ScenarioListModel is the bubbletea model for picking a scenario out of a
// multi-scenario file. Selected is nil until the user confirms a row.
type ScenarioListModel struct {
	Scenarios []scenario.Scenario
	Cursor    int
	Selected  *scenario.Scenario
	Height    int
	Offset    int
}

// NewScenarioListModel creates a new scenario list model.
func NewScenarioListModel(scenarios []scenario.Scenario) ScenarioListModel {
	return ScenarioListModel{
		Scenarios: scenarios,
		Cursor:    0,
		Height:    15,
		Offset:    0,
	}
}

func (m ScenarioListModel) Init() tea.Cmd {
	return nil
}

func (m ScenarioListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Scenarios)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			sc := m.Scenarios[m.Cursor]
			m.Selected = &sc
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m ScenarioListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Scenario"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Scenarios) {
		end = len(m.Scenarios)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		sc := m.Scenarios[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		rows = append(rows, []string{
			cursor,
			scenarioDisplayName(sc),
			formatQuery(sc),
			formatAdjustment(sc.AdjustmentSet),
			truncate(sc.Structure, 40),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Scenario", "Query", "Adjustment", "Structure").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}

			actualIdx := m.Offset + row
			if actualIdx >= len(m.Scenarios) {
				return lipgloss.NewStyle()
			}
			isCurrent := actualIdx == m.Cursor

			base := lipgloss.NewStyle()
			if col == 4 {
				base = base.Foreground(colorDim)
			}

			if isCurrent {
				if col != 4 {
					return base.Foreground(colorGreen).Bold(true)
				}
				return base.Bold(true)
			}
			if col != 4 {
				return base.Foreground(colorWhite)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Scenarios))))

	return b.String()
}

// selectScenario runs the interactive picker and returns the chosen scenario.
// A nil scenario with nil error means the user quit without selecting.
func selectScenario(scenarios []scenario.Scenario) (*scenario.Scenario, error) {
	m := NewScenarioListModel(scenarios)
	p := tea.NewProgram(m)
	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	fm, ok := finalModel.(ScenarioListModel)
	if !ok || fm.Selected == nil {
		return nil, nil
	}
	return fm.Selected, nil
}

// =============================================================================
// Helpers
// =============================================================================

func scenarioDisplayName(sc scenario.Scenario) string {
	if sc.Title != "" {
		return sc.Title
	}
	if sc.ID != "" {
		return sc.ID
	}
	return "(unnamed)"
}

func formatQuery(sc scenario.Scenario) string {
	if sc.Treatment == "" || sc.Outcome == "" {
		return "—"
	}
	return sc.Treatment + " " + iconArrow + " " + sc.Outcome
}

func formatAdjustment(set []string) string {
	if len(set) == 0 {
		return "—"
	}
	return "{" + strings.Join(set, ", ") + "}"
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
