package config

import "flag"

// parseFlags defines and parses the global CLI flags.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string) error {
	if fs == nil {
		fs = flag.NewFlagSet("tasktrack", flag.ContinueOnError)
	}

	fs.StringVar(&cfg.TaskFile, "file", cfg.TaskFile, "Path to the task file")
	fs.StringVar(&cfg.SchemaFile, "schema", cfg.SchemaFile, "Path to the task file JSON Schema")
	fs.StringVar(&cfg.LogDir, "log-dir", cfg.LogDir, "Directory for audit logs")
	fs.BoolVar(&cfg.Audit, "audit", cfg.Audit, "Record mutations in the audit log")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text, json, logfmt)")
	fs.BoolVar(&cfg.LogTimestamps, "log-timestamps", cfg.LogTimestamps, "Show timestamps in logs")
	fs.BoolVar(&cfg.LogCaller, "log-caller", cfg.LogCaller, "Show caller location in logs")

	return fs.Parse(args)
}
