package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestOpenAuditCreatesDirectory(t *testing.T) {
	baseDir := filepath.Join(t.TempDir(), "logs")
	workDir := t.TempDir()

	al, err := OpenAudit(baseDir, workDir)
	if err != nil {
		t.Fatalf("OpenAudit failed: %v", err)
	}
	defer al.Close()

	info, err := os.Stat(al.Dir)
	if err != nil {
		t.Fatalf("Stat audit dir failed: %v", err)
	}
	if !info.IsDir() {
		t.Error("audit dir should be a directory")
	}
	if filepath.Base(al.Path) != AuditFileName {
		t.Errorf("audit file name: got %s, want %s", filepath.Base(al.Path), AuditFileName)
	}
	if !strings.HasPrefix(al.Dir, baseDir) {
		t.Errorf("audit dir %s should be under base dir %s", al.Dir, baseDir)
	}
}

func TestOpenAuditEmptyBaseDir(t *testing.T) {
	if _, err := OpenAudit("", t.TempDir()); err == nil {
		t.Error("OpenAudit with empty base dir should fail")
	}
}

func TestRecordWritesJSONLines(t *testing.T) {
	baseDir := t.TempDir()
	workDir := t.TempDir()

	al, err := OpenAudit(baseDir, workDir)
	if err != nil {
		t.Fatalf("OpenAudit failed: %v", err)
	}

	entries := []Entry{
		{Op: "add", TaskID: 1, Status: "todo", Detail: "Buy milk"},
		{Op: "mark", TaskID: 1, Status: "done"},
		{Op: "delete", TaskID: 1},
	}
	for _, e := range entries {
		if err := al.Record(e); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}
	if err := al.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, err := os.ReadFile(al.Path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != len(entries) {
		t.Fatalf("line count: got %d, want %d", len(lines), len(entries))
	}

	for i, line := range lines {
		var got Entry
		if err := json.Unmarshal([]byte(line), &got); err != nil {
			t.Fatalf("line %d is not valid JSON: %v", i, err)
		}
		if got.Op != entries[i].Op {
			t.Errorf("line %d Op: got %s, want %s", i, got.Op, entries[i].Op)
		}
		if got.TaskID != entries[i].TaskID {
			t.Errorf("line %d TaskID: got %d, want %d", i, got.TaskID, entries[i].TaskID)
		}
		if got.Time.IsZero() {
			t.Errorf("line %d: timestamp should be filled in", i)
		}
	}
}

func TestRecordAppends(t *testing.T) {
	baseDir := t.TempDir()
	workDir := t.TempDir()

	for i := 0; i < 2; i++ {
		al, err := OpenAudit(baseDir, workDir)
		if err != nil {
			t.Fatalf("OpenAudit failed: %v", err)
		}
		if err := al.Record(Entry{Op: "add", TaskID: i + 1}); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
		al.Close()
	}

	path, err := FindAuditLog(baseDir, workDir)
	if err != nil {
		t.Fatalf("FindAuditLog failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Errorf("line count after reopen: got %d, want 2", len(lines))
	}
}

func TestNilAuditLoggerIsNoOp(t *testing.T) {
	var al *AuditLogger
	if err := al.Record(Entry{Op: "add"}); err != nil {
		t.Errorf("nil Record should be a no-op, got %v", err)
	}
	if err := al.Close(); err != nil {
		t.Errorf("nil Close should be a no-op, got %v", err)
	}
}

func TestFindAuditLogMissing(t *testing.T) {
	path, err := FindAuditLog(t.TempDir(), t.TempDir())
	if err != nil {
		t.Fatalf("FindAuditLog failed: %v", err)
	}
	if path != "" {
		t.Errorf("FindAuditLog: got %s, want empty string", path)
	}
}

func TestProjectSlugIsStable(t *testing.T) {
	workDir := "/home/user/projects/my app"
	first := projectSlug(workDir)
	second := projectSlug(workDir)
	if first != second {
		t.Errorf("projectSlug not stable: %s vs %s", first, second)
	}
	other := projectSlug("/home/user/projects/other")
	if first == other {
		t.Error("different paths should produce different slugs")
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"my-project", "my-project"},
		{"My Project", "My_Project"},
		{"a//b??c", "a_b_c"},
		{"  ", "project"},
		{"", "project"},
		{"___", "project"},
		{"v1.2.3", "v1.2.3"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := slugify(tt.input); got != tt.want {
				t.Errorf("slugify(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTailLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), AuditFileName)
	var content strings.Builder
	for i := 1; i <= 5; i++ {
		entry, _ := json.Marshal(Entry{Time: time.Now().UTC(), Op: "add", TaskID: i})
		content.Write(entry)
		content.WriteByte('\n')
	}
	if err := os.WriteFile(path, []byte(content.String()), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	var buf bytes.Buffer
	if err := TailLog(&buf, path, 0, false); err != nil {
		t.Fatalf("TailLog failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 5 {
		t.Errorf("line count: got %d, want 5", len(lines))
	}
}

func TestTailLogMissingFile(t *testing.T) {
	var buf bytes.Buffer
	if err := TailLog(&buf, filepath.Join(t.TempDir(), "nope.jsonl"), 0, false); err == nil {
		t.Error("TailLog on missing file should fail")
	}
}
