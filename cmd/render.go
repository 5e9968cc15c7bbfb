package cmd

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/tasktrackdev/tasktrack/internal/task"
)

const tableTimeLayout = "2006-01-02 15:04"

// renderTaskTable renders tasks as a bordered table for the list command.
func renderTaskTable(tasks []task.Task) string {
	headerStyle := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers("ID", "Description", "Status", "Created At", "Updated At")

	for i := range tasks {
		tk := &tasks[i]
		t.Row(
			strconv.Itoa(tk.ID),
			tk.Description,
			string(tk.Status),
			tk.CreatedAt.Local().Format(tableTimeLayout),
			tk.UpdatedAt.Local().Format(tableTimeLayout),
		)
	}

	return t.Render() + "\n"
}
