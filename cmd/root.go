// Package cmd implements the CLI command structure for tasktrack.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/tasktrackdev/tasktrack/internal/config"
	"github.com/tasktrackdev/tasktrack/internal/logging"
	"github.com/tasktrackdev/tasktrack/internal/task"
	"github.com/tasktrackdev/tasktrack/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Run executes the tasktrack CLI.
func Run(ctx context.Context, args []string) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("tasktrack", flag.ContinueOnError)
	fs.Usage = func() {
		printUsage(fs, os.Stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	// Global flags
	cfg, err := config.Load(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, os.Stdout)
		return nil
	}
	if *showVersion {
		return versionCommand()
	}

	remainingArgs := fs.Args()
	if len(remainingArgs) == 0 {
		printUsage(fs, os.Stderr)
		return fmt.Errorf("missing command")
	}
	subcommand := remainingArgs[0]
	remainingArgs = remainingArgs[1:]

	a := &app{
		cfg: cfg,
		log: logging.NewConsole(os.Stderr, logging.ConsoleOptions{
			Level:           cfg.LogLevel,
			Format:          cfg.LogFormat,
			ReportTimestamp: cfg.LogTimestamps,
			ReportCaller:    cfg.LogCaller,
		}),
	}

	// Execute the subcommand
	switch subcommand {
	case "add":
		return a.addCommand(remainingArgs)
	case "list":
		return a.listCommand(remainingArgs)
	case "update":
		return a.updateCommand(remainingArgs)
	case "delete":
		return a.deleteCommand(remainingArgs)
	case "mark-in-progress":
		return a.markCommand(remainingArgs, task.StatusInProgress)
	case "mark-done":
		return a.markCommand(remainingArgs, task.StatusDone)
	case "tui":
		return ui.RunTUI(ctx, cfg.TaskFile)
	case "doctor":
		return a.doctorCommand(remainingArgs)
	case "config":
		return configCommand()
	case "tail":
		return a.tailCommand(remainingArgs)
	case "version", "--version", "-v":
		return versionCommand()
	case "help", "--help", "-h":
		printUsage(fs, os.Stdout)
		return nil
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, os.Stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// app carries the loaded config and diagnostics logger across commands.
type app struct {
	cfg *config.Config
	log *log.Logger
}

// addCommand creates a new task.
func (a *app) addCommand(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: tasktrack add <description>")
	}

	store, err := task.Load(a.cfg.TaskFile)
	if err != nil {
		return err
	}
	t, err := store.Add(args[0])
	if err != nil {
		return err
	}

	a.log.Debug("task added", "id", t.ID, "file", a.cfg.TaskFile)
	a.audit(logging.Entry{Op: "add", TaskID: t.ID, Status: string(t.Status), Detail: t.Description})
	fmt.Printf("Task added successfully (ID: %d)\n", t.ID)
	return nil
}

// listCommand lists tasks, optionally filtered by status.
func (a *app) listCommand(args []string) error {
	fs := flag.NewFlagSet("tasktrack list", flag.ContinueOnError)
	statusFilter := fs.String("status", "", "Filter by status (todo|in-progress|done)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	remaining := fs.Args()
	if len(remaining) >= 1 && *statusFilter == "" {
		*statusFilter = remaining[0]
		remaining = remaining[1:]
	}
	if len(remaining) > 0 {
		return fmt.Errorf("unexpected arguments: %v", remaining)
	}

	var filter task.Status
	if *statusFilter != "" {
		var err error
		filter, err = task.ParseStatus(*statusFilter)
		if err != nil {
			return err
		}
	}

	store, err := task.Load(a.cfg.TaskFile)
	if err != nil {
		return err
	}

	tasks := slices.Collect(store.List(filter))
	if len(tasks) == 0 {
		fmt.Println("No tasks found.")
		return nil
	}
	fmt.Print(renderTaskTable(tasks))
	return nil
}

// updateCommand replaces a task's description.
func (a *app) updateCommand(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: tasktrack update <id> <description>")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	store, err := task.Load(a.cfg.TaskFile)
	if err != nil {
		return err
	}
	t, err := store.Update(id, args[1])
	if err != nil {
		return err
	}

	a.log.Debug("task updated", "id", t.ID)
	a.audit(logging.Entry{Op: "update", TaskID: t.ID, Detail: t.Description})
	fmt.Printf("Task %d updated successfully.\n", t.ID)
	return nil
}

// deleteCommand removes a task. Its ID is never reassigned.
func (a *app) deleteCommand(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: tasktrack delete <id>")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	store, err := task.Load(a.cfg.TaskFile)
	if err != nil {
		return err
	}
	if err := store.Delete(id); err != nil {
		return err
	}

	a.log.Debug("task deleted", "id", id)
	a.audit(logging.Entry{Op: "delete", TaskID: id})
	fmt.Printf("Task %d deleted successfully.\n", id)
	return nil
}

// markCommand backs mark-in-progress and mark-done.
func (a *app) markCommand(args []string, status task.Status) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: tasktrack mark-%s <id>", statusSuffix(status))
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	store, err := task.Load(a.cfg.TaskFile)
	if err != nil {
		return err
	}
	t, err := store.SetStatus(id, status)
	if err != nil {
		return err
	}

	a.log.Debug("task status set", "id", t.ID, "status", t.Status)
	a.audit(logging.Entry{Op: "mark", TaskID: t.ID, Status: string(t.Status)})
	fmt.Printf("Task %d marked as %s.\n", t.ID, t.Status)
	return nil
}

// tailCommand shows the audit log of mutations.
func (a *app) tailCommand(args []string) error {
	fs := flag.NewFlagSet("tasktrack tail", flag.ContinueOnError)
	follow := fs.Bool("f", false, "Follow the log (like tail -f)")
	fs.BoolVar(follow, "follow", false, "Follow the log (like tail -f)")
	n := fs.Int("n", 0, "Number of lines to show (0 = all)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	logPath, err := logging.FindAuditLog(a.cfg.LogDir, a.cfg.WorkDir)
	if err != nil {
		return fmt.Errorf("finding audit log: %w", err)
	}
	if logPath == "" {
		fmt.Println("No audit log found.")
		return nil
	}

	fmt.Printf("Tailing: %s\n", logPath)
	if *follow {
		fmt.Println("(Ctrl+C to stop)")
	}
	fmt.Println()

	return logging.TailLog(os.Stdout, logPath, *n, *follow)
}

// doctorCommand checks config, task file, and schema validity.
func (a *app) doctorCommand(args []string) error {
	fs := flag.NewFlagSet("tasktrack doctor", flag.ContinueOnError)
	verbose := fs.Bool("v", false, "Show more details")

	if err := fs.Parse(args); err != nil {
		return err
	}

	allOK := true

	fmt.Printf("Task file: %s\n", a.cfg.TaskFile)
	info, err := os.Stat(a.cfg.TaskFile)
	switch {
	case os.IsNotExist(err):
		fmt.Println("  ⚠️  Not found (will be created on first add)")
	case err != nil:
		fmt.Printf("  ❌ Error: %v\n", err)
		allOK = false
	case info.IsDir():
		fmt.Println("  ❌ Error: path is a directory")
		allOK = false
	default:
		fmt.Println("  ✅ OK")
		store, loadErr := task.Load(a.cfg.TaskFile)
		if loadErr != nil {
			fmt.Printf("  ❌ Load error: %v\n", loadErr)
			allOK = false
			break
		}
		result := store.Validate(task.ValidationOptions{SchemaPath: a.cfg.SchemaFile})
		for _, w := range result.Warnings {
			fmt.Printf("  ⚠️  %s\n", w)
		}
		if result.Valid {
			fmt.Println("  ✅ Valid")
		} else {
			fmt.Println("  ❌ Validation failed:")
			for _, e := range result.Errors {
				fmt.Printf("     - %v\n", e)
			}
			allOK = false
		}
		if *verbose {
			fmt.Printf("  Tasks: %d\n", store.Len())
			for _, t := range store.Tasks() {
				fmt.Printf("    - [%s] %d: %s\n", t.Status, t.ID, t.Description)
			}
		}
	}
	fmt.Println()

	fmt.Printf("Schema file: %s\n", a.cfg.SchemaFile)
	if info, err := os.Stat(a.cfg.SchemaFile); err != nil {
		if os.IsNotExist(err) {
			fmt.Println("  ⚠️  Not found (validation falls back to built-in checks)")
		} else {
			fmt.Printf("  ❌ Error: %v\n", err)
			allOK = false
		}
	} else if info.IsDir() {
		fmt.Println("  ❌ Error: path is a directory")
		allOK = false
	} else {
		fmt.Println("  ✅ OK")
	}
	fmt.Println()

	fmt.Printf("Log directory: %s\n", a.cfg.LogDir)
	if !a.cfg.Audit {
		fmt.Println("  ⚠️  Audit log disabled")
	} else if _, err := os.Stat(a.cfg.LogDir); err != nil {
		if os.IsNotExist(err) {
			fmt.Println("  ⚠️  Not found (will be created on first mutation)")
		} else {
			fmt.Printf("  ❌ Error: %v\n", err)
			allOK = false
		}
	} else {
		fmt.Println("  ✅ OK")
	}
	fmt.Println()

	if allOK {
		fmt.Println("✅ All checks passed!")
		return nil
	}
	fmt.Println("⚠️  Some checks failed. tasktrack may not function correctly.")
	return fmt.Errorf("doctor checks failed")
}

// configCommand prints an example configuration file.
func configCommand() error {
	fmt.Print(config.ExampleConfig())
	return nil
}

// versionCommand prints version information.
func versionCommand() error {
	fmt.Printf("tasktrack version %s\n", Version)
	return nil
}

// audit appends one entry to the per-project audit log. Audit failures
// are reported as warnings, never as command failures.
func (a *app) audit(e logging.Entry) {
	if !a.cfg.Audit {
		return
	}
	al, err := logging.OpenAudit(a.cfg.LogDir, a.cfg.WorkDir)
	if err != nil {
		a.log.Warn("audit log unavailable", "error", err)
		return
	}
	defer al.Close()
	if err := al.Record(e); err != nil {
		a.log.Warn("audit write failed", "error", err)
	}
}

// parseID parses a task ID from user input.
func parseID(raw string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || id <= 0 {
		return 0, &task.ArgumentError{
			Arg:    "id",
			Reason: fmt.Sprintf("must be a positive integer, got %q", raw),
		}
	}
	return id, nil
}

func statusSuffix(status task.Status) string {
	if status == task.StatusDone {
		return "done"
	}
	return "in-progress"
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "tasktrack - A file-backed task tracker")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  tasktrack [options] <command> [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  add <description>        Add a new task")
	fmt.Fprintln(w, "  list [status]            List tasks (todo|in-progress|done)")
	fmt.Fprintln(w, "  update <id> <description>  Change a task's description")
	fmt.Fprintln(w, "  delete <id>              Delete a task")
	fmt.Fprintln(w, "  mark-in-progress <id>    Mark a task as in-progress")
	fmt.Fprintln(w, "  mark-done <id>           Mark a task as done")
	fmt.Fprintln(w, "  tui                      Launch the terminal dashboard")
	fmt.Fprintln(w, "  doctor                   Check config and task file validity")
	fmt.Fprintln(w, "  config                   Print an example configuration file")
	fmt.Fprintln(w, "  tail                     Show the mutation audit log")
	fmt.Fprintln(w, "  version                  Show version information")
	fmt.Fprintln(w, "  help                     Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Tail Options (use with 'tail' command):")
	fmt.Fprintln(w, "  -f, --follow")
	fmt.Fprintln(w, "        Follow the log (like tail -f)")
	fmt.Fprintln(w, "  -n int")
	fmt.Fprintln(w, "        Number of lines to show (0 = all)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "List Options (use with 'list' command):")
	fmt.Fprintln(w, "  -status string")
	fmt.Fprintln(w, "        Filter by status (todo|in-progress|done)")
}
