package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# tasktrack configuration file
# Values can be overridden by TASKTRACK_* environment variables or CLI flags

# Task file (relative to the working directory)
task_file = "tasks.json"

# JSON Schema used by the doctor command
schema_file = "tasks.schema.json"

# Directory for per-project audit logs (supports ~ expansion)
log_dir = "~/.tasktrack"

# Record every mutation in an append-only JSONL audit log
audit = true

# Console diagnostics (stderr)
log_level = "warn"      # debug, info, warn, error
log_format = "text"     # text, json, logfmt
log_timestamps = false
log_caller = false
`
}
