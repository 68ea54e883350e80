package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/nibzard/taskpad/internal/config"
	"github.com/nibzard/taskpad/internal/kv"
	"github.com/nibzard/taskpad/internal/todo"
)

// doctorCommand prints the resolved config and checks the stored task list.
func doctorCommand(ctx context.Context, e *env, args []string) error {
	fs := newFlagSet("doctor", e)
	showExample := fs.Bool("example", false, "Print an example config file and exit")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *showExample {
		fmt.Fprint(e.stdout, config.ExampleConfig())
		return nil
	}

	printConfig(e.stdout, e.cfg, e.sources)
	fmt.Fprintln(e.stdout)

	backend, err := kv.Open(e.cfg.StoreBackend, e.cfg.StorePath)
	if err != nil {
		fmt.Fprintf(e.stdout, "store:  FAIL (%v)\n", err)
		return fmt.Errorf("opening store: %w", err)
	}
	defer backend.Close()
	fmt.Fprintf(e.stdout, "store:  ok (%s)\n", describeStore(e.cfg.StoreBackend, backend))

	status, err := checkKey(ctx, backend, e.cfg.StorageKey)
	if err != nil {
		fmt.Fprintf(e.stdout, "key:    FAIL (%v)\n", err)
		return fmt.Errorf("reading %s: %w", e.cfg.StorageKey, err)
	}
	fmt.Fprintf(e.stdout, "key:    %s\n", status)
	return nil
}

// describeStore names the backend and, for file-backed stores, its file.
func describeStore(name string, backend kv.Store) string {
	if p, ok := backend.(interface{ Path() string }); ok {
		return fmt.Sprintf("%s at %s", name, p.Path())
	}
	return name
}

// checkKey reports whether key is absent, a valid task list, or malformed.
func checkKey(ctx context.Context, backend kv.Store, key string) (string, error) {
	raw, ok, err := backend.Get(ctx, key)
	if err != nil {
		return "", err
	}
	if !ok {
		return fmt.Sprintf("%s absent (no tasks saved yet)", key), nil
	}
	tasks, err := todo.ParseList(raw)
	if err != nil {
		var verr *todo.ValidationError
		if errors.As(err, &verr) && verr.Path != "" {
			return fmt.Sprintf("%s malformed at %s: %v (will be ignored on load)", key, verr.Path, verr.Err), nil
		}
		return fmt.Sprintf("%s malformed: %v (will be ignored on load)", key, err), nil
	}
	return fmt.Sprintf("%s valid (%d tasks)", key, len(tasks)), nil
}

func printConfig(w io.Writer, cfg *config.Config, sources map[string]config.ConfigSource) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, field := range config.Fields() {
		fmt.Fprintf(tw, "%s\t%s\t(%s)\n", field, cfg.Value(field), sources[field])
	}
	tw.Flush()
	for _, f := range cfg.Files {
		fmt.Fprintf(w, "config file: %s\n", f)
	}
}
