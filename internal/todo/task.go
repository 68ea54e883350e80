package todo

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// Task is a single entry in the list.
type Task struct {
	ID    string `json:"id"`
	Value string `json:"value"`
}

// listSchema describes the stored value.
const listSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "value"],
    "properties": {
      "id": {"type": "string"},
      "value": {"type": "string"}
    }
  }
}`

var compiledListSchema = jsonschema.MustCompileString("taskpad-tasks.schema.json", listSchema)

// ValidationError reports why a stored value is not a task list.
type ValidationError struct {
	Path string // dotted path to the offending element, empty for the root
	Err  error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ParseList decodes a stored value into a task list.
// It fails unless raw is a single JSON array of task objects.
func ParseList(raw string) ([]Task, error) {
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()

	var doc interface{}
	if err := dec.Decode(&doc); err != nil {
		return nil, &ValidationError{Err: fmt.Errorf("invalid JSON: %w", err)}
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, &ValidationError{Err: fmt.Errorf("invalid JSON: trailing data")}
	}

	if err := compiledListSchema.Validate(doc); err != nil {
		return nil, schemaError(err)
	}

	tasks := []Task{}
	if err := json.Unmarshal([]byte(raw), &tasks); err != nil {
		return nil, &ValidationError{Err: err}
	}
	return tasks, nil
}

// EncodeList encodes tasks as the stored JSON array.
// A nil list encodes as [].
func EncodeList(tasks []Task) (string, error) {
	if tasks == nil {
		tasks = []Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return "", fmt.Errorf("marshal task list: %w", err)
	}
	return string(data), nil
}

// schemaError reduces a schema failure to its first leaf cause.
func schemaError(err error) error {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return &ValidationError{Err: err}
	}
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	return &ValidationError{
		Path: jsonPointerToPath(ve.InstanceLocation),
		Err:  errors.New(ve.Message),
	}
}

// jsonPointerToPath turns "/0/id" into "[0].id".
func jsonPointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return ""
	}

	var b strings.Builder
	for _, part := range strings.Split(ptr, "/") {
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		if part == "" {
			continue
		}
		if idx, err := strconv.Atoi(part); err == nil {
			fmt.Fprintf(&b, "[%d]", idx)
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(part)
	}
	return b.String()
}

func cloneTasks(tasks []Task) []Task {
	out := make([]Task, len(tasks))
	copy(out, tasks)
	return out
}
