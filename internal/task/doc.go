// Package task loads, mutates, validates, and saves the task file.
//
// The task file (tasks.json) is a UTF-8 JSON array of task records:
//
//	[
//	  {
//	    "id": 1,
//	    "description": "Buy milk",
//	    "status": "todo",
//	    "created_at": "2024-01-01T00:00:00Z",
//	    "updated_at": "2024-01-01T00:00:00Z"
//	  }
//	]
//
// # Lifecycle
//
// A Store is loaded fresh from the file at the start of each CLI
// invocation and discarded after the operation finishes. Mutating
// operations (Add, Update, Delete, SetStatus) rewrite the whole file
// through a temp-file-and-rename so a failed write leaves the previous
// content intact. Read-only operations (Get, List) never touch the file.
//
// # ID Assignment
//
// IDs are positive integers from a high-water mark: the next ID is one
// greater than the largest ID ever seen by this store, so interleaved
// deletes never cause an ID to be reused.
//
// # Task Status Values
//
//   - "todo": task is pending (the only status Add assigns)
//   - "in-progress": task is being worked on
//   - "done": task is complete (not terminal, tasks stay editable)
//
// The store allows any valid status to follow any other.
//
// # Errors
//
// A missing file is an empty store, not an error. Everything else is a
// typed error: *CorruptError (file present but unparseable or holding an
// invalid record), *PersistError (write failure, mutation not durably
// applied), *NotFoundError (unknown ID), *ArgumentError (blank
// description or invalid status). The store never prints and never
// retries; errors propagate unmodified to the CLI boundary.
//
// # Validation
//
// Two validation modes, used by the doctor command:
//
// 1. JSON Schema validation (when tasks.schema.json is available),
// against JSON Schema draft-2020-12.
//
// 2. Built-in record checks (id, description, status enum, timestamps,
// duplicate IDs) when no schema file is present.
package task
