// Package cmd implements the CLI command structure for taskpad.
package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/taskpad/internal/config"
	"github.com/nibzard/taskpad/internal/kv"
	"github.com/nibzard/taskpad/internal/logging"
	"github.com/nibzard/taskpad/internal/todo"
	"github.com/nibzard/taskpad/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Run executes the taskpad CLI.
func Run(ctx context.Context, args []string) error {
	return run(ctx, args, os.Stdout, os.Stderr)
}

// env carries what every subcommand needs.
type env struct {
	cfg     *config.Config
	sources map[string]config.ConfigSource
	stdout  io.Writer
	stderr  io.Writer
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("taskpad", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		printUsage(fs, stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	// Global flags
	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, stdout)
		return nil
	}
	if *showVersion {
		return versionCommand(stdout)
	}

	e := &env{
		cfg:     cws.Config,
		sources: cws.Sources,
		stdout:  stdout,
		stderr:  stderr,
	}

	// No subcommand opens the TUI
	subcommand := "tui"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	switch subcommand {
	case "tui":
		return tuiCommand(ctx, e, remainingArgs)
	case "add":
		return addCommand(ctx, e, remainingArgs)
	case "ls", "list":
		return lsCommand(ctx, e, remainingArgs)
	case "rm":
		return rmCommand(ctx, e, remainingArgs)
	case "clear":
		return clearCommand(ctx, e, remainingArgs)
	case "doctor":
		return doctorCommand(ctx, e, remainingArgs)
	case "logs":
		return logsCommand(e, remainingArgs)
	case "version":
		return versionCommand(stdout)
	case "help":
		printUsage(fs, stdout)
		return nil
	default:
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// consoleLogger logs to stderr with the configured options.
func (e *env) consoleLogger() *log.Logger {
	return logging.New(e.stderr, logging.OptionsFromConfig(
		e.cfg.LogLevel, e.cfg.LogFormat, e.cfg.LogTimestamps, e.cfg.LogCaller))
}

// openStore opens the configured backend and wraps it in a loaded task store.
// Callers must close the returned kv.Store.
func (e *env) openStore(ctx context.Context, logger *log.Logger) (*todo.Store, kv.Store, error) {
	backend, err := kv.Open(e.cfg.StoreBackend, e.cfg.StorePath)
	if err != nil {
		return nil, nil, fmt.Errorf("opening store: %w", err)
	}
	store := todo.NewStore(backend,
		todo.WithKey(e.cfg.StorageKey),
		todo.WithLogger(logger),
	)
	if err := store.Load(ctx); err != nil {
		backend.Close()
		return nil, nil, err
	}
	return store, backend, nil
}

func newFlagSet(name string, e *env) *flag.FlagSet {
	fs := flag.NewFlagSet("taskpad "+name, flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	return fs
}

// tuiCommand runs the full-screen shell. Logs go to a session file.
func tuiCommand(ctx context.Context, e *env, args []string) error {
	fs := newFlagSet("tui", e)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	session, err := logging.NewSessionLog(e.cfg.LogDir)
	if err != nil {
		return fmt.Errorf("opening session log: %w", err)
	}
	defer session.Close()
	logger := logging.New(session.Writer(), logging.OptionsFromConfig(
		e.cfg.LogLevel, e.cfg.LogFormat, true, e.cfg.LogCaller))
	logger.Info("Session started", "store", e.cfg.StoreBackend, "path", e.cfg.StorePath, "key", e.cfg.StorageKey)

	backend, err := kv.Open(e.cfg.StoreBackend, e.cfg.StorePath)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer backend.Close()

	// The shell performs the startup load itself.
	store := todo.NewStore(backend, todo.WithKey(e.cfg.StorageKey), todo.WithLogger(logger))
	return ui.RunTUI(ctx, store, logger)
}

// addCommand adds one task built from the remaining arguments.
func addCommand(ctx context.Context, e *env, args []string) error {
	fs := newFlagSet("add", e)
	if err := fs.Parse(args); err != nil {
		return err
	}

	store, backend, err := e.openStore(ctx, e.consoleLogger())
	if err != nil {
		return err
	}
	defer backend.Close()

	task, err := store.Add(ctx, strings.Join(fs.Args(), " "))
	if err != nil {
		return noticeError(err)
	}
	fmt.Fprintln(e.stdout, task.ID)
	return nil
}

// lsCommand lists tasks in insertion order.
func lsCommand(ctx context.Context, e *env, args []string) error {
	fs := newFlagSet("ls", e)
	asJSON := fs.Bool("json", false, "Print the stored JSON array")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	store, backend, err := e.openStore(ctx, e.consoleLogger())
	if err != nil {
		return err
	}
	defer backend.Close()

	tasks := store.Tasks()
	if *asJSON {
		data, err := json.MarshalIndent(tasks, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal tasks: %w", err)
		}
		fmt.Fprintln(e.stdout, string(data))
		return nil
	}
	printTaskList(e.stdout, tasks)
	return nil
}

// rmCommand removes one task by id.
func rmCommand(ctx context.Context, e *env, args []string) error {
	fs := newFlagSet("rm", e)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: taskpad rm <id>")
	}
	id := fs.Arg(0)

	store, backend, err := e.openStore(ctx, e.consoleLogger())
	if err != nil {
		return err
	}
	defer backend.Close()

	if !hasTask(store.Tasks(), id) {
		return fmt.Errorf("task %q not found", id)
	}
	if err := store.Delete(ctx, id); err != nil {
		return noticeError(err)
	}
	return nil
}

// clearCommand removes every task and the storage key.
func clearCommand(ctx context.Context, e *env, args []string) error {
	fs := newFlagSet("clear", e)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	store, backend, err := e.openStore(ctx, e.consoleLogger())
	if err != nil {
		return err
	}
	defer backend.Close()

	if err := store.DeleteAll(ctx); err != nil {
		return noticeError(err)
	}
	return nil
}

// logsCommand prints the latest TUI session log.
func logsCommand(e *env, args []string) error {
	fs := newFlagSet("logs", e)
	n := fs.Int("n", 0, "Number of lines to show (0 = all)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	path, err := logging.FindLatestLog(e.cfg.LogDir)
	if err != nil {
		return fmt.Errorf("finding latest log: %w", err)
	}
	if path == "" {
		fmt.Fprintln(e.stdout, "No log files found.")
		return nil
	}
	return logging.TailLog(e.stdout, path, *n)
}

// versionCommand prints version information.
func versionCommand(w io.Writer) error {
	fmt.Fprintf(w, "taskpad version %s\n", Version)
	return nil
}

// noticeError puts the user-facing notice in front of the underlying error.
func noticeError(err error) error {
	if errors.Is(err, todo.ErrEmptyTask) {
		return errors.New(todo.Notice(err))
	}
	return fmt.Errorf("%s: %w", todo.Notice(err), err)
}

func hasTask(tasks []todo.Task, id string) bool {
	for _, t := range tasks {
		if t.ID == id {
			return true
		}
	}
	return false
}

// printTaskList prints one "<id>  <value>" line per task.
func printTaskList(w io.Writer, tasks []todo.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, "No tasks.")
		return
	}
	for _, t := range tasks {
		fmt.Fprintf(w, "%s  %s\n", t.ID, t.Value)
	}
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "taskpad - a terminal to-do list")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  taskpad [options] [command] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  tui           Open the task screen (default command)")
	fmt.Fprintln(w, "  add <text>    Add a task and print its id")
	fmt.Fprintln(w, "  ls [-json]    List tasks in insertion order")
	fmt.Fprintln(w, "  rm <id>       Remove one task")
	fmt.Fprintln(w, "  clear         Remove all tasks")
	fmt.Fprintln(w, "  doctor        Check config and the stored task list")
	fmt.Fprintln(w, "  logs [-n N]   Print the latest TUI session log")
	fmt.Fprintln(w, "  version       Show version information")
	fmt.Fprintln(w, "  help          Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "TUI keys:")
	fmt.Fprintln(w, "  enter         Save the typed task")
	fmt.Fprintln(w, "  ctrl+d        Delete all tasks")
	fmt.Fprintln(w, "  up/down       Select a task")
	fmt.Fprintln(w, "  ctrl+x, del   Remove the selected task")
	fmt.Fprintln(w, "  esc, ctrl+c   Quit")
}
