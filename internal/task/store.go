package task

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Store is the full set of tasks backed by a single JSON file. It is
// loaded fresh at the start of an invocation, owns its task slice, and
// is discarded after the final save. The next assigned ID comes from a
// high-water mark that never decreases, so deleted IDs are not reused.
//
// Concurrent invocations against the same file are last-writer-wins;
// the store does no locking.
type Store struct {
	path      string
	tasks     []Task
	highWater int
}

// Load reads the backing file at path and builds a store from it.
// A missing file yields an empty store; a present but unreadable or
// invalid file yields a *CorruptError and the file is left untouched.
func Load(path string) (*Store, error) {
	s := &Store{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return s, nil
		}
		return nil, &CorruptError{Path: path, Err: err}
	}

	var tasks []Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, &CorruptError{Path: path, Err: err}
	}
	if tasks == nil {
		// "null" parses but is not an array of tasks.
		return nil, &CorruptError{Path: path, Err: fmt.Errorf("expected a JSON array of tasks")}
	}
	if cerr := validateRecords(path, tasks); cerr != nil {
		return nil, cerr
	}

	s.tasks = tasks
	for _, t := range tasks {
		if t.ID > s.highWater {
			s.highWater = t.ID
		}
	}
	return s, nil
}

// validateRecords checks every loaded record for the fields the store
// requires. The first failure wins and names the record by position and,
// when present, by ID.
func validateRecords(path string, tasks []Task) *CorruptError {
	seen := make(map[int]int, len(tasks))
	for i, t := range tasks {
		rec := recordLabel(i, t.ID)
		if err := checkRecord(&t); err != nil {
			return &CorruptError{Path: path, Record: rec, Err: err}
		}
		if prev, dup := seen[t.ID]; dup {
			return &CorruptError{Path: path, Record: rec, Err: fmt.Errorf("duplicate id, first seen at tasks[%d]", prev)}
		}
		seen[t.ID] = i
	}
	return nil
}

func recordLabel(i, id int) string {
	if id > 0 {
		return fmt.Sprintf("tasks[%d] (id %d)", i, id)
	}
	return fmt.Sprintf("tasks[%d]", i)
}

// save writes the full task list back to the backing file with 2-space
// indentation and a trailing newline. The write goes to a temp file in
// the same directory followed by a rename, so a failure mid-write does
// not clobber the previous content.
func (s *Store) save() error {
	tasks := s.tasks
	if tasks == nil {
		tasks = []Task{}
	}
	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return &PersistError{Path: s.path, Err: err}
	}
	data = append(data, '\n')

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return &PersistError{Path: s.path, Err: err}
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return &PersistError{Path: s.path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return &PersistError{Path: s.path, Err: err}
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return &PersistError{Path: s.path, Err: err}
	}
	return nil
}

// Add appends a new task with the next unused ID and status "todo",
// then persists the store. No ID is consumed when the description is
// blank.
func (s *Store) Add(description string) (Task, error) {
	if strings.TrimSpace(description) == "" {
		return Task{}, &ArgumentError{Arg: "description", Reason: "must not be empty"}
	}

	now := time.Now().UTC()
	t := Task{
		ID:          s.highWater + 1,
		Description: description,
		Status:      StatusTodo,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.tasks = append(s.tasks, t)
	s.highWater = t.ID

	if err := s.save(); err != nil {
		return Task{}, err
	}
	return t, nil
}

// Update replaces the description of an existing task, refreshes
// updated_at, and persists the store. ID, status, and created_at are
// untouched.
func (s *Store) Update(id int, description string) (Task, error) {
	if strings.TrimSpace(description) == "" {
		return Task{}, &ArgumentError{Arg: "description", Reason: "must not be empty"}
	}
	i := s.find(id)
	if i < 0 {
		return Task{}, &NotFoundError{ID: id}
	}

	s.tasks[i].Description = description
	s.tasks[i].UpdatedAt = time.Now().UTC()

	if err := s.save(); err != nil {
		return Task{}, err
	}
	return s.tasks[i], nil
}

// Delete removes an existing task and persists the store. The high-water
// mark is unchanged, so the deleted ID is never reassigned.
func (s *Store) Delete(id int) error {
	i := s.find(id)
	if i < 0 {
		return &NotFoundError{ID: id}
	}
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	return s.save()
}

// SetStatus moves an existing task to the given status and persists the
// store. Any valid status may follow any other; the store does not
// treat "done" as terminal. Setting the status a task already has
// succeeds without touching updated_at or the file.
func (s *Store) SetStatus(id int, status Status) (Task, error) {
	if !status.IsValid() {
		return Task{}, &ArgumentError{
			Arg:    "status",
			Reason: fmt.Sprintf("must be one of: todo, in-progress, done, got %q", string(status)),
		}
	}
	i := s.find(id)
	if i < 0 {
		return Task{}, &NotFoundError{ID: id}
	}
	if s.tasks[i].Status == status {
		return s.tasks[i], nil
	}

	s.tasks[i].Status = status
	s.tasks[i].UpdatedAt = time.Now().UTC()

	if err := s.save(); err != nil {
		return Task{}, err
	}
	return s.tasks[i], nil
}

// Get returns a task by ID.
func (s *Store) Get(id int) (Task, bool) {
	i := s.find(id)
	if i < 0 {
		return Task{}, false
	}
	return s.tasks[i], true
}

// List returns a restartable sequence over the tasks in insertion
// order. An empty filter yields every task; otherwise only tasks with
// the given status. Pure query, nothing is written.
func (s *Store) List(filter Status) iter.Seq[Task] {
	return func(yield func(Task) bool) {
		for _, t := range s.tasks {
			if filter != "" && t.Status != filter {
				continue
			}
			if !yield(t) {
				return
			}
		}
	}
}

// Tasks returns a copy of the task slice in insertion order.
func (s *Store) Tasks() []Task {
	out := make([]Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Len returns the number of tasks in the store.
func (s *Store) Len() int {
	return len(s.tasks)
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// NextID returns the ID the next Add would assign.
func (s *Store) NextID() int {
	return s.highWater + 1
}

func (s *Store) find(id int) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}
