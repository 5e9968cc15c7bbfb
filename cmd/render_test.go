package cmd

import (
	"strings"
	"testing"
	"time"

	"github.com/tasktrackdev/tasktrack/internal/task"
)

func TestRenderTaskTable(t *testing.T) {
	now := time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)
	tasks := []task.Task{
		{ID: 1, Description: "Buy milk", Status: task.StatusDone, CreatedAt: now, UpdatedAt: now},
		{ID: 42, Description: "Walk the dog", Status: task.StatusInProgress, CreatedAt: now, UpdatedAt: now},
	}

	out := renderTaskTable(tasks)

	for _, want := range []string{
		"ID", "Description", "Status", "Created At", "Updated At",
		"Buy milk", "Walk the dog", "done", "in-progress", "42",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
	if !strings.HasSuffix(out, "\n") {
		t.Error("table output should end with a newline")
	}
}
