// Command tlview is an interactive viewer for the timeline built by
// cmd/tl's pipeline: enter an input path, watch it parse, then browse the
// sorted events. Same bubbletea model/update/view shape and lipgloss
// styling as the recovery TUI, slimmed to path entry, progress, and a
// browsable result list.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/shubham030/tl/internal/disk"
	"github.com/shubham030/tl/internal/pipeline"
	"github.com/shubham030/tl/internal/progress"
	"github.com/shubham030/tl/internal/timeline"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FF00")).
			Bold(true)
)

// State represents the current screen.
type State int

const (
	StateEnterPath State = iota
	StateRunning
	StateResults
)

type eventItem struct {
	e timeline.TimelineEvent
}

func (i eventItem) Title() string { return i.e.Filename }
func (i eventItem) Description() string {
	return fmt.Sprintf("%s  %s  %s", i.e.Timestamp.UTC().Format("2006-01-02 15:04:05"), i.e.EventDescription(), i.e.Location)
}
func (i eventItem) FilterValue() string { return i.e.Filename }

type timelineReadyMsg struct {
	result pipeline.Result
	err    error
}

type model struct {
	state     State
	width     int
	height    int
	err       error
	pathInput textinput.Model
	spinner   spinner.Model
	list      list.Model
	summary   string
}

func initialModel() model {
	pathInput := textinput.New()
	pathInput.Placeholder = "/path/to/$MFT, image.dd, archive.zip, or C:"
	pathInput.Focus()
	pathInput.Width = 60

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4"))

	return model{
		state:     StateEnterPath,
		pathInput: pathInput,
		spinner:   s,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "q":
			if m.state != StateRunning {
				return m, tea.Quit
			}
		case "esc":
			if m.state == StateResults {
				m.state = StateEnterPath
				return m, nil
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case timelineReadyMsg:
		m.state = StateResults
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		items := make([]list.Item, len(msg.result.Events))
		for i, e := range msg.result.Events {
			items[i] = eventItem{e: e}
		}
		m.list = list.New(items, list.NewDefaultDelegate(), m.width-4, m.height-8)
		m.list.Title = "Timeline"
		m.list.SetShowStatusBar(true)
		m.summary = fmt.Sprintf("%d events, %d parse errors", len(msg.result.Events), msg.result.ParseErrors)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	switch m.state {
	case StateEnterPath:
		return m.updateEnterPath(msg)
	case StateResults:
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) updateEnterPath(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		path := m.pathInput.Value()
		if path != "" {
			m.state = StateRunning
			m.err = nil
			return m, tea.Batch(m.spinner.Tick, runPipeline(path))
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.pathInput, cmd = m.pathInput.Update(msg)
	return m, cmd
}

func runPipeline(path string) tea.Cmd {
	return func() tea.Msg {
		reader, err := disk.Open(path)
		if err != nil {
			return timelineReadyMsg{err: err}
		}
		defer reader.Close()

		result, err := pipeline.Run(context.Background(), path, reader, reader.Size(), pipeline.DefaultOptions(), progress.Discard{})
		return timelineReadyMsg{result: result, err: err}
	}
}

func (m model) View() string {
	switch m.state {
	case StateEnterPath:
		s := titleStyle.Render("tlview — forensic timeline viewer") + "\n\n"
		s += m.pathInput.View() + "\n\n"
		if m.err != nil {
			s += errorStyle.Render(m.err.Error()) + "\n\n"
		}
		s += helpStyle.Render("enter: parse  ·  ctrl+c/q: quit")
		return s

	case StateRunning:
		return fmt.Sprintf("\n  %s parsing timeline...\n\n%s", m.spinner.View(), helpStyle.Render("ctrl+c: quit"))

	case StateResults:
		if m.err != nil {
			return errorStyle.Render(m.err.Error()) + "\n\n" + helpStyle.Render("esc: back  ·  q: quit")
		}
		return m.list.View() + "\n" + successStyle.Render(m.summary) + "\n" + helpStyle.Render("esc: back  ·  q: quit")
	}
	return ""
}

func main() {
	p := tea.NewProgram(initialModel(), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "tlview: %v\n", err)
		os.Exit(1)
	}
}
