package ui

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tasktrackdev/tasktrack/internal/task"
)

func writeTaskFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tasks.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	return path
}

const sampleTasks = `[
  {"id": 1, "description": "Buy milk", "status": "done", "created_at": "2026-01-02T15:04:05Z", "updated_at": "2026-01-03T09:00:00Z"},
  {"id": 2, "description": "Walk the dog", "status": "in-progress", "created_at": "2026-01-02T15:04:05Z", "updated_at": "2026-01-02T15:04:05Z"},
  {"id": 3, "description": "Water the plants", "status": "todo", "created_at": "2026-01-02T15:04:05Z", "updated_at": "2026-01-02T15:04:05Z"}
]
`

func TestRefreshCounts(t *testing.T) {
	m := newTUIModel(writeTaskFile(t, sampleTasks))
	m.refresh()

	if m.loadErr != nil {
		t.Fatalf("refresh failed: %v", m.loadErr)
	}
	if len(m.tasks) != 3 {
		t.Fatalf("tasks: got %d, want 3", len(m.tasks))
	}
	want := map[task.Status]int{
		task.StatusTodo:       1,
		task.StatusInProgress: 1,
		task.StatusDone:       1,
	}
	for status, n := range want {
		if m.counts[status] != n {
			t.Errorf("counts[%s]: got %d, want %d", status, m.counts[status], n)
		}
	}
}

func TestRefreshCorruptFile(t *testing.T) {
	m := newTUIModel(writeTaskFile(t, "{broken"))
	m.refresh()

	if m.loadErr == nil {
		t.Fatal("expected load error for corrupt file")
	}
	view := m.View()
	if !strings.Contains(view, "Error loading task file") {
		t.Errorf("view should show the load error: %q", view)
	}
}

func TestVisibleTasksFilter(t *testing.T) {
	m := newTUIModel(writeTaskFile(t, sampleTasks))
	m.refresh()

	if got := len(m.visibleTasks()); got != 3 {
		t.Errorf("no filter: got %d tasks, want 3", got)
	}

	m.filter = task.StatusDone
	visible := m.visibleTasks()
	if len(visible) != 1 {
		t.Fatalf("done filter: got %d tasks, want 1", len(visible))
	}
	if visible[0].ID != 1 {
		t.Errorf("done filter ID: got %d, want 1", visible[0].ID)
	}
}

func TestViewShowsTasks(t *testing.T) {
	m := newTUIModel(writeTaskFile(t, sampleTasks))
	m.refresh()

	view := m.View()
	for _, want := range []string{"Buy milk", "Walk the dog", "Water the plants", "Todo: 1", "In Progress: 1", "Done: 1"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestViewHelpToggle(t *testing.T) {
	m := newTUIModel(writeTaskFile(t, sampleTasks))
	m.refresh()
	m.showHelp = true

	view := m.View()
	if !strings.Contains(view, "Keyboard Shortcuts") {
		t.Errorf("help view missing shortcuts: %q", view)
	}
	if strings.Contains(view, "Buy milk") {
		t.Error("help view should not render tasks")
	}
}

func TestFormatTask(t *testing.T) {
	tests := []struct {
		name string
		task task.Task
		want string
	}{
		{
			name: "todo",
			task: task.Task{ID: 1, Description: "Buy milk", Status: task.StatusTodo},
			want: "  [1] Buy milk (todo)",
		},
		{
			name: "in-progress",
			task: task.Task{ID: 2, Description: "Walk the dog", Status: task.StatusInProgress},
			want: "> [2] Walk the dog (in-progress)",
		},
		{
			name: "done",
			task: task.Task{ID: 3, Description: "Water the plants", Status: task.StatusDone},
			want: "x [3] Water the plants (done)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatTask(&tt.task)
			if !strings.Contains(got, tt.want) {
				t.Errorf("formatTask = %q, want it to contain %q", got, tt.want)
			}
		})
	}
}

func TestFormatTaskTruncatesLongDescriptions(t *testing.T) {
	long := strings.Repeat("x", 100)
	got := formatTask(&task.Task{ID: 1, Description: long, Status: task.StatusTodo})
	if !strings.Contains(got, "...") {
		t.Errorf("long description should be truncated: %q", got)
	}
	if strings.Contains(got, long) {
		t.Error("full description should not appear")
	}
}

func TestIsTTY(t *testing.T) {
	if IsTTY(&bytes.Buffer{}) {
		t.Error("a bytes.Buffer is not a TTY")
	}

	f, err := os.CreateTemp(t.TempDir(), "plain")
	if err != nil {
		t.Fatalf("CreateTemp failed: %v", err)
	}
	defer f.Close()
	if IsTTY(f) {
		t.Error("a regular file is not a TTY")
	}
}
