package picker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	selectLabel = "Select this folder"
	upLabel     = "Up"
	cancelLabel = "Cancel"
)

// Model is the folder browser state.
type Model struct {
	path        string
	directories []string
	cursor      int
	selected    string
	cancelled   bool
	message     string
}

// NewModel starts browsing at start, or the working directory when empty.
func NewModel(start string) Model {
	if start == "" {
		start, _ = os.Getwd()
	}
	if abs, err := filepath.Abs(start); err == nil {
		start = abs
	}
	return Model{path: start, directories: listDirectories(start)}
}

// Path returns the folder currently being browsed.
func (m Model) Path() string { return m.path }

// Selected returns the chosen folder, or "" when nothing was chosen.
func (m Model) Selected() string { return m.selected }

// Cancelled reports whether the user dismissed the browser.
func (m Model) Cancelled() bool { return m.cancelled }

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "ctrl+c", "esc", "q":
		m.cancelled = true
		return m, tea.Quit
	}

	options := m.options()
	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(options)-1 {
			m.cursor++
		}
	case "backspace", "left", "h":
		m.ascend()
	case "enter", "right", "l":
		switch option := options[m.cursor]; option {
		case selectLabel:
			m.selected = m.path
			return m, tea.Quit
		case upLabel:
			m.ascend()
		case cancelLabel:
			m.cancelled = true
			return m, tea.Quit
		default:
			m.descend(option)
		}
	}
	return m, nil
}

func (m Model) View() string {
	if m.cancelled || m.selected != "" {
		return ""
	}
	var s strings.Builder
	s.WriteString(titleStyle.Render("Select a folder to organize"))
	s.WriteString("\n\n")
	s.WriteString(headerStyle.Render(m.path))
	s.WriteString("\n")
	for i, option := range m.options() {
		style := normalStyle
		if i == m.cursor {
			style = selectedStyle
		}
		label := option
		if option != selectLabel && option != upLabel && option != cancelLabel {
			label = option + string(filepath.Separator)
		}
		s.WriteString(style.Render(label))
		s.WriteString("\n")
	}
	if m.message != "" {
		s.WriteString("\n" + errorStyle.Render(m.message))
	}
	s.WriteString("\n" + infoStyle.Render("↑/↓: navigate • Enter: open/select • Backspace: up • Esc: cancel"))
	return s.String()
}

func (m Model) canAscend() bool {
	return filepath.Dir(m.path) != m.path
}

func (m Model) options() []string {
	options := []string{selectLabel}
	if m.canAscend() {
		options = append(options, upLabel)
	}
	options = append(options, m.directories...)
	return append(options, cancelLabel)
}

func (m *Model) ascend() {
	if !m.canAscend() {
		return
	}
	m.path = filepath.Dir(m.path)
	m.directories = listDirectories(m.path)
	m.cursor = 0
	m.message = ""
}

func (m *Model) descend(name string) {
	next := filepath.Join(m.path, name)
	if _, err := os.ReadDir(next); err != nil {
		m.message = fmt.Sprintf("Cannot open %s: %v", name, err)
		return
	}
	m.path = next
	m.directories = listDirectories(next)
	m.cursor = 0
	m.message = ""
}

func listDirectories(path string) []string {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil
	}
	var dirs []string
	for _, entry := range entries {
		if entry.IsDir() && !strings.HasPrefix(entry.Name(), ".") {
			dirs = append(dirs, entry.Name())
		}
	}
	sort.Strings(dirs)
	return dirs
}

// Run shows the browser on the terminal attached to in/out and returns the
// chosen folder. Cancellation returns "" and a nil error.
func Run(ctx context.Context, start string, in io.Reader, out io.Writer) (string, error) {
	program := tea.NewProgram(NewModel(start),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
		tea.WithAltScreen(),
	)
	final, err := program.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return "", nil
		}
		return "", fmt.Errorf("folder picker: %w", err)
	}
	model, ok := final.(Model)
	if !ok || model.Cancelled() {
		return "", nil
	}
	return model.Selected(), nil
}
