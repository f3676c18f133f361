package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/suechart/pkg/chart"
	"github.com/matzehuels/suechart/pkg/pipeline"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	inputBoxStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim).Padding(0, 1)
)

// =============================================================================
// ChartTypeModel - Interactive chart type selection
// =============================================================================

// ChartTypeModel is the bubbletea model for choosing a chart type.
type ChartTypeModel struct {
	Prompt    string
	Types     []chart.Type
	Cursor    int
	Selected  chart.Type
	Cancelled bool
	Height    int
	Offset    int
}

// NewChartTypeModel creates a chart type list.
func NewChartTypeModel(prompt string, types []chart.Type) ChartTypeModel {
	return ChartTypeModel{
		Prompt: prompt,
		Types:  types,
		Height: 12,
	}
}

func (m ChartTypeModel) Init() tea.Cmd {
	return nil
}

func (m ChartTypeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.Cancelled = true
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Types)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Types) == 0 {
				return m, nil
			}
			m.Selected = m.Types[m.Cursor]
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 5)
	}
	return m, nil
}

func (m ChartTypeModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Prompt))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Types))
	for i := m.Offset; i < end; i++ {
		line := fmt.Sprintf("  %2d  %s", i+1, m.Types[i])
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render("▸" + line[1:]))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Types))))
	return b.String()
}

// =============================================================================
// DataInputModel - Multi-line TSV input
// =============================================================================

// DataInputModel is the bubbletea model for pasting tabular data.
// Submitting an empty buffer accepts the example.
type DataInputModel struct {
	Prompt    string
	Example   string
	Value     string
	Submitted bool
	Cancelled bool
}

// NewDataInputModel creates an empty data input.
func NewDataInputModel(prompt, example string) DataInputModel {
	return DataInputModel{Prompt: prompt, Example: example}
}

func (m DataInputModel) Init() tea.Cmd {
	return nil
}

func (m DataInputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.Type {
	case tea.KeyEsc, tea.KeyCtrlC:
		m.Cancelled = true
		return m, tea.Quit
	case tea.KeyCtrlD:
		if m.Value == "" {
			m.Value = m.Example
		}
		m.Submitted = true
		return m, tea.Quit
	case tea.KeyEnter:
		m.Value += "\n"
	case tea.KeyTab:
		m.Value += "\t"
	case tea.KeySpace:
		m.Value += " "
	case tea.KeyBackspace:
		if r := []rune(m.Value); len(r) > 0 {
			m.Value = string(r[:len(r)-1])
		}
	case tea.KeyRunes:
		m.Value += string(key.Runes)
	}
	return m, nil
}

func (m DataInputModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Prompt))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("paste or type TSV  ctrl+d submit  esc quit"))
	b.WriteString("\n")

	body := StyleValue.Render(showTabs(m.Value) + "█")
	if m.Value == "" {
		body = "█\n" + listDimStyle.Render(showTabs(m.Example))
	}
	b.WriteString(inputBoxStyle.Render(body))
	b.WriteString("\n")
	return b.String()
}

// showTabs makes tab separators visible.
func showTabs(s string) string {
	return strings.ReplaceAll(s, "\t", StyleDim.Render(" → "))
}

// =============================================================================
// Prompters
// =============================================================================

// terminalPrompter asks through full-screen bubbletea programs.
type terminalPrompter struct {
	in  io.Reader
	out io.Writer
}

func (p terminalPrompter) run(ctx context.Context, m tea.Model) (tea.Model, error) {
	prog := tea.NewProgram(m, tea.WithContext(ctx), tea.WithInput(p.in), tea.WithOutput(p.out))
	return prog.Run()
}

func (p terminalPrompter) SelectChartType(ctx context.Context, prompt string, catalog []chart.Type) (chart.Type, bool, error) {
	final, err := p.run(ctx, NewChartTypeModel(prompt, catalog))
	if err != nil {
		return "", false, err
	}
	m := final.(ChartTypeModel)
	return m.Selected, !m.Cancelled && m.Selected != "", nil
}

func (p terminalPrompter) EnterData(ctx context.Context, prompt, example string) (string, bool, error) {
	final, err := p.run(ctx, NewDataInputModel(prompt, example))
	if err != nil {
		return "", false, err
	}
	m := final.(DataInputModel)
	return m.Value, m.Submitted, nil
}

// flagPrompter answers from command-line flags where given and falls back to
// an interactive prompter otherwise. A flag that is set but empty dismisses
// its prompt.
type flagPrompter struct {
	flags    pipeline.StaticPrompter
	typeSet  bool
	dataSet  bool
	fallback pipeline.Prompter
}

func (p flagPrompter) SelectChartType(ctx context.Context, prompt string, catalog []chart.Type) (chart.Type, bool, error) {
	if p.typeSet || p.fallback == nil {
		return p.flags.SelectChartType(ctx, prompt, catalog)
	}
	return p.fallback.SelectChartType(ctx, prompt, catalog)
}

func (p flagPrompter) EnterData(ctx context.Context, prompt, example string) (string, bool, error) {
	if p.dataSet || p.fallback == nil {
		return p.flags.EnterData(ctx, prompt, example)
	}
	return p.fallback.EnterData(ctx, prompt, example)
}
