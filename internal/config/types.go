package config

// Default values.
const (
	DefaultTaskFile   = "tasks.json"
	DefaultSchemaFile = "tasks.schema.json"
	DefaultLogDir     = "~/.tasktrack"
	DefaultAudit      = true
)

// Config holds the full configuration for tasktrack.
type Config struct {
	// Paths
	TaskFile   string `toml:"task_file"`
	SchemaFile string `toml:"schema_file"`
	LogDir     string `toml:"log_dir"`

	// Audit log of mutations (JSONL, under log_dir)
	Audit bool `toml:"audit"`

	// Logging configuration
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`

	// Working directory the task file resolves against (computed)
	WorkDir string `toml:"-"`
}
