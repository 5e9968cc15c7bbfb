// Package logging writes console diagnostics and the JSONL audit log.
package logging

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// AuditFileName is the per-project audit log file name.
const AuditFileName = "audit.jsonl"

// Entry is one audit log record: a single successful mutation.
type Entry struct {
	Time   time.Time `json:"ts"`
	Op     string    `json:"op"`
	TaskID int       `json:"task_id,omitempty"`
	Status string    `json:"status,omitempty"`
	Detail string    `json:"detail,omitempty"`
}

// AuditLogger appends mutation records to a per-project JSONL file.
// The file lives under <baseDir>/<project-slug>-<hash>/audit.jsonl so
// separate projects never share a log.
type AuditLogger struct {
	Dir  string
	Path string
	file *os.File
}

// OpenAudit opens (creating if needed) the audit log for workDir.
func OpenAudit(baseDir, workDir string) (*AuditLogger, error) {
	if baseDir == "" {
		return nil, fmt.Errorf("audit base dir is empty")
	}

	dir, err := auditDir(baseDir, workDir)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create audit dir: %w", err)
	}

	path := filepath.Join(dir, AuditFileName)
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("open audit log: %w", err)
	}

	return &AuditLogger{
		Dir:  dir,
		Path: path,
		file: file,
	}, nil
}

// Record appends one entry to the log. A nil logger is a no-op so
// callers can keep the audit optional without branching.
func (a *AuditLogger) Record(e Entry) error {
	if a == nil || a.file == nil {
		return nil
	}
	if e.Time.IsZero() {
		e.Time = time.Now().UTC()
	}
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal audit entry: %w", err)
	}
	data = append(data, '\n')
	if _, err := a.file.Write(data); err != nil {
		return fmt.Errorf("write audit entry: %w", err)
	}
	return nil
}

// Close closes the log file.
func (a *AuditLogger) Close() error {
	if a == nil || a.file == nil {
		return nil
	}
	return a.file.Close()
}

// FindAuditLog returns the audit log path for a working directory, or
// empty string if none has been written yet.
func FindAuditLog(baseDir, workDir string) (string, error) {
	if baseDir == "" {
		return "", fmt.Errorf("audit base dir is empty")
	}
	dir, err := auditDir(baseDir, workDir)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, AuditFileName)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	return path, nil
}

func auditDir(baseDir, workDir string) (string, error) {
	resolved := workDir
	if resolved == "" {
		resolved = "."
	}
	if abs, err := filepath.Abs(resolved); err == nil {
		resolved = abs
	}
	return filepath.Join(resolveBaseDir(baseDir, resolved), projectSlug(resolved)), nil
}

func resolveBaseDir(baseDir, workDir string) string {
	if filepath.IsAbs(baseDir) {
		return filepath.Clean(baseDir)
	}
	return filepath.Clean(filepath.Join(workDir, baseDir))
}

// projectSlug builds a stable directory name from the project path:
// a sanitized base name plus a short hash of the full path.
func projectSlug(workDir string) string {
	name := filepath.Base(workDir)
	return fmt.Sprintf("%s-%s", slugify(name), hashPath(workDir))
}

func slugify(input string) string {
	if strings.TrimSpace(input) == "" {
		return "project"
	}

	var b strings.Builder
	lastUnderscore := false
	for i := 0; i < len(input); i++ {
		c := input[i]
		valid := (c >= 'A' && c <= 'Z') ||
			(c >= 'a' && c <= 'z') ||
			(c >= '0' && c <= '9') ||
			c == '.' || c == '_' || c == '-'
		if !valid {
			if !lastUnderscore {
				b.WriteByte('_')
				lastUnderscore = true
			}
			continue
		}
		b.WriteByte(c)
		lastUnderscore = false
	}

	slug := strings.Trim(b.String(), "_")
	if slug == "" {
		return "project"
	}
	return slug
}

func hashPath(input string) string {
	sum := sha1.Sum([]byte(input))
	return hex.EncodeToString(sum[:])[:8]
}

// TailLog tails an audit log file to a writer, optionally following.
func TailLog(w io.Writer, path string, n int, follow bool) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open audit log: %w", err)
	}
	defer file.Close()

	// If n > 0, seek to show only the last n lines
	if n > 0 {
		if err := tailSeek(file, n); err != nil {
			return fmt.Errorf("seek to tail position: %w", err)
		}
	}

	if follow {
		return tailFollow(w, file)
	}

	_, err = io.Copy(w, file)
	return err
}

// tailSeek seeks to a position that shows approximately the last n lines.
func tailSeek(file *os.File, n int) error {
	const avgLineLength = 120

	stat, err := file.Stat()
	if err != nil {
		return err
	}

	size := stat.Size()
	if size < avgLineLength*int64(n) {
		_, err = file.Seek(0, io.SeekStart)
		return err
	}

	offset := size - int64(n*avgLineLength)
	if offset < 0 {
		offset = 0
	}
	if _, err := file.Seek(offset, io.SeekStart); err != nil {
		return err
	}

	// Discard the partial first line
	buf := make([]byte, 1)
	if _, err := file.Read(buf); err != nil {
		return err
	}
	for buf[0] != '\n' {
		if _, err := file.Read(buf); err != nil {
			break
		}
	}

	return nil
}

// tailFollow follows a file like tail -f.
func tailFollow(w io.Writer, file *os.File) error {
	if _, err := io.Copy(w, file); err != nil {
		return err
	}

	for {
		if _, err := io.Copy(w, file); err != nil {
			return err
		}

		time.Sleep(200 * time.Millisecond)

		var buf [1]byte
		_, err := file.Read(buf[:])
		if err != nil {
			if err == io.EOF {
				continue
			}
			return err
		}
		if _, err := w.Write(buf[:]); err != nil {
			return err
		}
	}
}
