package todo

import (
	"context"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/nibzard/taskpad/internal/kv"
)

// DefaultKey is the storage key holding the task list.
const DefaultKey = "@tasks"

// Store owns the in-memory task list and its storage key.
// A Store is safe for concurrent use.
type Store struct {
	kv     kv.Store
	key    string
	logger *log.Logger
	newID  func() string

	mu      sync.Mutex // guards tasks, cleared and gen
	tasks   []Task
	cleared bool   // latest mutation was a delete-all
	gen     uint64 // bumped on every mutation

	// writeMu serializes storage access. It is never acquired while mu is held.
	writeMu sync.Mutex
}

// Option configures a Store.
type Option func(*Store)

// WithKey overrides the storage key.
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithLogger sets the logger used for swallowed and failed operations.
func WithLogger(logger *log.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithIDFunc replaces the task ID generator.
func WithIDFunc(fn func() string) Option {
	return func(s *Store) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// NewStore returns an empty Store over backend. Call Load to hydrate it.
func NewStore(backend kv.Store, opts ...Option) *Store {
	s := &Store{
		kv:     backend,
		key:    DefaultKey,
		logger: log.New(io.Discard),
		newID:  newTaskID,
		tasks:  []Task{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// newTaskID returns a time-ordered UUID.
func newTaskID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Key returns the storage key.
func (s *Store) Key() string {
	return s.key
}

// Tasks returns a copy of the current list in insertion order.
func (s *Store) Tasks() []Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneTasks(s.tasks)
}

// Load hydrates the list from storage.
//
// An absent key leaves the list as is. A malformed value is logged and
// discarded; Load still returns nil. A read failure is logged and returned.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	gen := s.gen
	s.mu.Unlock()

	s.writeMu.Lock()
	raw, ok, err := s.kv.Get(ctx, s.key)
	s.writeMu.Unlock()
	if err != nil {
		s.logger.Error("Failed to load tasks", "key", s.key, "err", err)
		return &PersistError{Op: OpLoad, Err: err}
	}
	if !ok {
		s.logger.Debug("No stored tasks", "key", s.key)
		return nil
	}

	tasks, err := ParseList(raw)
	if err != nil {
		s.logger.Warn("Discarding malformed task list", "key", s.key, "err", err)
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// A mutation that raced the read wins over the stored value.
	if s.gen != gen {
		s.logger.Debug("List changed during load, keeping in-memory tasks")
		return nil
	}
	s.tasks = tasks
	s.logger.Debug("Loaded tasks", "count", len(tasks))
	return nil
}

// Add appends a task with the trimmed text and persists the list.
//
// Empty text returns ErrEmptyTask and changes nothing. If the write fails the
// task stays in the list and a *PersistError is returned with the task.
func (s *Store) Add(ctx context.Context, text string) (Task, error) {
	p, err := s.StageAdd(text)
	if err != nil {
		return Task{}, err
	}
	return p.Task(), p.Persist(ctx)
}

// Delete removes the task with id, if any, and persists the list.
func (s *Store) Delete(ctx context.Context, id string) error {
	return s.StageDelete(id).Persist(ctx)
}

// DeleteAll empties the list and removes the storage key.
//
// The list is emptied even if the key cannot be removed, matching the other
// mutations; the next successful write brings storage back in line.
func (s *Store) DeleteAll(ctx context.Context) error {
	return s.StageDeleteAll().Persist(ctx)
}

// StageAdd appends a task in memory only. The caller persists it with
// Persist on the returned Pending.
func (s *Store) StageAdd(text string) (*Pending, error) {
	value := strings.TrimSpace(text)
	if value == "" {
		return nil, ErrEmptyTask
	}
	task := Task{ID: s.newID(), Value: value}
	p := s.stage(OpAdd, false, func(tasks []Task) []Task {
		return append(tasks, task)
	})
	p.task = task
	return p, nil
}

// StageDelete removes the first task with id in memory only.
func (s *Store) StageDelete(id string) *Pending {
	return s.stage(OpDelete, false, func(tasks []Task) []Task {
		for i := range tasks {
			if tasks[i].ID == id {
				out := make([]Task, 0, len(tasks)-1)
				out = append(out, tasks[:i]...)
				return append(out, tasks[i+1:]...)
			}
		}
		return tasks
	})
}

// StageDeleteAll empties the list in memory only.
func (s *Store) StageDeleteAll() *Pending {
	return s.stage(OpDeleteAll, true, func([]Task) []Task {
		return []Task{}
	})
}

func (s *Store) stage(op Op, cleared bool, mutate func([]Task) []Task) *Pending {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = mutate(s.tasks)
	s.cleared = cleared
	s.gen++
	return &Pending{store: s, op: op}
}

// Pending is a mutation already visible through Tasks whose write has not
// run yet.
type Pending struct {
	store *Store
	op    Op
	task  Task
}

// Op returns the mutation kind.
func (p *Pending) Op() Op {
	return p.op
}

// Task returns the added task for an OpAdd mutation.
func (p *Pending) Task() Task {
	return p.task
}

// Persist writes the store's current list, or removes the key when the
// latest mutation was a delete-all. Writes are serialized and each one
// carries the newest state, so storage never moves back to an older list.
// Readers are not blocked while the write runs.
func (p *Pending) Persist(ctx context.Context) error {
	s := p.store
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	snapshot := cloneTasks(s.tasks)
	cleared := s.cleared
	s.mu.Unlock()

	var err error
	if cleared {
		err = s.kv.Remove(ctx, s.key)
	} else {
		err = s.save(ctx, snapshot)
	}
	if err != nil {
		s.logger.Error("Failed to persist tasks", "op", string(p.op), "key", s.key, "err", err)
		return &PersistError{Op: p.op, Err: err}
	}
	s.logger.Debug("Persisted tasks", "op", string(p.op), "count", len(snapshot))
	return nil
}

func (s *Store) save(ctx context.Context, tasks []Task) error {
	raw, err := EncodeList(tasks)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, s.key, raw)
}
