package todo

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseList(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		want     []Task
		wantErr  bool
		wantPath string
	}{
		{name: "empty array", raw: "[]", want: []Task{}},
		{name: "two tasks", raw: `[{"id":"1","value":"a"},{"id":"2","value":"b"}]`, want: []Task{{"1", "a"}, {"2", "b"}}},
		{name: "extra fields ignored", raw: `[{"id":"1","value":"a","done":true}]`, want: []Task{{"1", "a"}}},
		{name: "whitespace around", raw: " \n[]\n", want: []Task{}},
		{name: "broken", raw: "{not json", wantErr: true},
		{name: "object", raw: `{}`, wantErr: true},
		{name: "bad id type", raw: `[{"id":"1","value":"a"},{"id":2,"value":"b"}]`, wantErr: true, wantPath: "[1].id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseList(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseList: err=%v, wantErr=%v", err, tt.wantErr)
			}
			if tt.wantErr {
				var ve *ValidationError
				if !errors.As(err, &ve) {
					t.Fatalf("error type: got %T, want *ValidationError", err)
				}
				if tt.wantPath != "" && ve.Path != tt.wantPath {
					t.Errorf("Path: got %q, want %q", ve.Path, tt.wantPath)
				}
				return
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestEncodeList(t *testing.T) {
	got, err := EncodeList(nil)
	if err != nil || got != "[]" {
		t.Errorf("EncodeList(nil): got %q, %v", got, err)
	}
	got, err = EncodeList([]Task{{ID: "1", Value: "a"}})
	if err != nil {
		t.Fatal(err)
	}
	if want := `[{"id":"1","value":"a"}]`; got != want {
		t.Errorf("EncodeList: got %s, want %s", got, want)
	}
}

func TestJSONPointerToPath(t *testing.T) {
	tests := map[string]string{
		"":          "",
		"#":         "",
		"/0":        "[0]",
		"/0/id":     "[0].id",
		"#/3/value": "[3].value",
		"/a~1b/c~0": "a/b.c~",
	}
	for in, want := range tests {
		if got := jsonPointerToPath(in); got != want {
			t.Errorf("jsonPointerToPath(%q): got %q, want %q", in, got, want)
		}
	}
}

func TestNotice(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{ErrEmptyTask, "Please enter a task."},
		{&PersistError{Op: OpAdd, Err: errDisk}, "Could not save the task."},
		{&PersistError{Op: OpDelete, Err: errDisk}, "Could not remove the task."},
		{&PersistError{Op: OpDeleteAll, Err: errDisk}, "Could not remove all tasks."},
		{&PersistError{Op: OpLoad, Err: errDisk}, "Could not load tasks."},
		{errors.New("other"), "other"},
	}
	for _, tt := range tests {
		if got := Notice(tt.err); got != tt.want {
			t.Errorf("Notice(%v): got %q, want %q", tt.err, got, tt.want)
		}
	}
}
