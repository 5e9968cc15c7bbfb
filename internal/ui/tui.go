// Package ui provides the optional terminal interface.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tasktrackdev/tasktrack/internal/task"
)

// RunTUI starts the read-only task dashboard against the given task file.
func RunTUI(ctx context.Context, taskFile string) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}

	model := newTUIModel(taskFile)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

type tuiModel struct {
	taskFile     string
	loadErr      error
	tasks        []task.Task
	counts       map[task.Status]int
	filter       task.Status // empty means no filter
	showHelp     bool
	tickInterval time.Duration
}

type tickMsg time.Time

func newTUIModel(taskFile string) *tuiModel {
	return &tuiModel{
		taskFile:     taskFile,
		tickInterval: 2 * time.Second,
	}
}

func (m *tuiModel) Init() tea.Cmd {
	m.refresh()
	return tickCmd(m.tickInterval)
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r", "f5":
			m.refresh()
			return m, nil
		case "h", "?":
			m.showHelp = !m.showHelp
			return m, nil
		case "1":
			m.filter = task.StatusTodo
			return m, nil
		case "2":
			m.filter = task.StatusInProgress
			return m, nil
		case "3":
			m.filter = task.StatusDone
			return m, nil
		case "0":
			m.filter = ""
			return m, nil
		}
	case tickMsg:
		m.refresh()
		return m, tickCmd(m.tickInterval)
	}

	return m, nil
}

func (m *tuiModel) View() string {
	var b strings.Builder
	writeTitle(&b)

	if m.showHelp {
		writeHelp(&b)
		writeFooter(&b, m.tickInterval)
		return b.String()
	}

	if m.filter != "" {
		b.WriteString(fmt.Sprintf("Filter: %s (0 to clear)\n\n", m.filter))
	}

	if m.loadErr != nil {
		b.WriteString("Error loading task file:\n")
		b.WriteString("  " + m.loadErr.Error() + "\n\n")
		writeFooter(&b, m.tickInterval)
		return b.String()
	}

	writeOverview(&b, m.counts)
	writeTasks(&b, m.visibleTasks())
	b.WriteString(fmt.Sprintf("Task file: %s\n\n", m.taskFile))
	writeFooter(&b, m.tickInterval)
	return b.String()
}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *tuiModel) refresh() {
	store, err := task.Load(m.taskFile)
	if err != nil {
		m.loadErr = err
		m.tasks = nil
		m.counts = nil
		return
	}
	m.loadErr = nil
	m.tasks = store.Tasks()

	m.counts = map[task.Status]int{
		task.StatusTodo:       0,
		task.StatusInProgress: 0,
		task.StatusDone:       0,
	}
	for _, t := range m.tasks {
		m.counts[t.Status]++
	}
}

func (m *tuiModel) visibleTasks() []task.Task {
	if m.filter == "" {
		return m.tasks
	}
	var out []task.Task
	for _, t := range m.tasks {
		if t.Status == m.filter {
			out = append(out, t)
		}
	}
	return out
}

func writeTitle(b *strings.Builder) {
	title := "tasktrack"
	b.WriteString(title + "\n")
	b.WriteString(strings.Repeat("=", len(title)) + "\n\n")
}

func writeOverview(b *strings.Builder, counts map[task.Status]int) {
	b.WriteString("Task Overview\n\n")
	b.WriteString(fmt.Sprintf("  Todo: %d  In Progress: %d  Done: %d\n\n",
		counts[task.StatusTodo],
		counts[task.StatusInProgress],
		counts[task.StatusDone],
	))
}

func writeTasks(b *strings.Builder, tasks []task.Task) {
	b.WriteString("Tasks\n\n")
	if len(tasks) == 0 {
		b.WriteString("  No tasks found.\n\n")
		return
	}
	for i := range tasks {
		b.WriteString(formatTask(&tasks[i]))
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

func writeHelp(b *strings.Builder) {
	b.WriteString("Keyboard Shortcuts\n\n")
	b.WriteString("  q, ctrl+c    Quit\n")
	b.WriteString("  r, F5        Refresh data\n")
	b.WriteString("  h, ?         Toggle this help screen\n")
	b.WriteString("  1            Filter by todo\n")
	b.WriteString("  2            Filter by in-progress\n")
	b.WriteString("  3            Filter by done\n")
	b.WriteString("  0            Clear filter\n\n")
}

func writeFooter(b *strings.Builder, interval time.Duration) {
	b.WriteString(fmt.Sprintf("Press h for help | q to quit | Refreshing every %s\n", interval))
}

func formatTask(t *task.Task) string {
	statusIcon := " "
	switch t.Status {
	case task.StatusInProgress:
		statusIcon = ">"
	case task.StatusDone:
		statusIcon = "x"
	}

	desc := t.Description
	if len(desc) > 60 {
		desc = desc[:57] + "..."
	}
	return fmt.Sprintf("  %s [%d] %s (%s)", statusIcon, t.ID, desc, t.Status)
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, _ := f.Stat()
	return (info.Mode() & os.ModeCharDevice) != 0
}
