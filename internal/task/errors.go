package task

import "fmt"

// CorruptError reports a backing file that exists but cannot be used:
// unparseable content or a record that fails validation. The file is
// left untouched; callers must not overwrite it.
type CorruptError struct {
	Path   string // backing file path
	Record string // offending record, e.g. "tasks[3] (id 7)", empty for file-level problems
	Err    error
}

func (e *CorruptError) Error() string {
	if e.Record != "" {
		return fmt.Sprintf("corrupt task file %s: %s: %v", e.Path, e.Record, e.Err)
	}
	return fmt.Sprintf("corrupt task file %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *CorruptError) Unwrap() error {
	return e.Err
}

// PersistError reports a failed write of the backing file. The mutation
// that triggered the write is not durably applied.
type PersistError struct {
	Path string
	Err  error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("write task file %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *PersistError) Unwrap() error {
	return e.Err
}

// NotFoundError reports an operation against a task ID that is not in
// the store.
type NotFoundError struct {
	ID int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("task %d not found", e.ID)
}

// ArgumentError reports invalid caller input: a blank description, an
// unknown status value, or a non-integer ID at the CLI boundary.
type ArgumentError struct {
	Arg    string
	Reason string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Arg, e.Reason)
}
