// Package ui renders cross-check progress in the terminal.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"bigword/internal/crosscheck"
)

type progressModel struct {
	title    string
	events   <-chan crosscheck.Event
	spinner  spinner.Model
	prog     progress.Model
	items    []propertyItem
	index    map[string]int
	finished int
	failed   int
	width    int
	done     bool
}

type propertyItem struct {
	name   string
	status crosscheck.Status
	cases  int
	err    error
}

type eventMsg crosscheck.Event
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model with one row per property.
// The model quits when events is closed.
func NewProgressModel(title string, properties []string, events <-chan crosscheck.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76

	items := make([]propertyItem, 0, len(properties))
	index := make(map[string]int, len(properties))
	for i, name := range properties {
		items = append(items, propertyItem{name: name, status: crosscheck.StatusQueued})
		index[name] = i
	}
	return &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		prog:    prog,
		items:   items,
		index:   index,
		width:   80,
	}
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		cmd := m.applyEvent(crosscheck.Event(msg))
		return m, tea.Batch(cmd, m.listenForEvent())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m, nil
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.prog.Width = msg.Width - 4
		}
		return m, nil
	case progress.FrameMsg:
		pm, cmd := m.prog.Update(msg)
		m.prog = pm.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) View() string {
	if len(m.items) == 0 {
		return ""
	}
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	header := fmt.Sprintf("%s (%d/%d)", m.title, m.finished, len(m.items))
	if m.failed > 0 {
		header += fmt.Sprintf(", %d failed", m.failed)
	}
	if m.done {
		header = "done: " + header
	} else {
		header = m.spinner.View() + " " + header
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	const statusWidth = 8
	nameWidth := max(m.width-statusWidth-16, 20)

	for _, item := range m.items {
		status := styleStatus(item.status).Render(fmt.Sprintf("%*s", statusWidth, item.status))
		line := fmt.Sprintf("  %s %s", status, truncate(item.name, nameWidth))
		if item.cases > 0 {
			line += fmt.Sprintf("  %d cases", item.cases)
		}
		b.WriteString(line)
		b.WriteString("\n")
		if item.err != nil {
			b.WriteString("           ")
			b.WriteString(styleStatus(crosscheck.StatusError).Render(truncate(item.err.Error(), m.width-12)))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	if m.done {
		b.WriteString(m.prog.ViewAs(1.0))
	} else {
		b.WriteString(m.prog.View())
	}
	b.WriteString("\n")

	return b.String()
}

func (m *progressModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *progressModel) applyEvent(ev crosscheck.Event) tea.Cmd {
	idx, ok := m.index[ev.Property]
	if !ok {
		return nil
	}
	item := &m.items[idx]
	if isFinal(item.status) {
		return nil
	}
	item.status = ev.Status
	item.cases = ev.Cases
	item.err = ev.Err
	if !isFinal(ev.Status) {
		return nil
	}
	m.finished++
	if ev.Status == crosscheck.StatusError {
		m.failed++
	}
	return m.prog.SetPercent(float64(m.finished) / float64(len(m.items)))
}

func isFinal(s crosscheck.Status) bool {
	return s == crosscheck.StatusDone || s == crosscheck.StatusError
}

func styleStatus(status crosscheck.Status) lipgloss.Style {
	switch status {
	case crosscheck.StatusDone:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	case crosscheck.StatusError:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	case crosscheck.StatusWorking:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	}
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}
