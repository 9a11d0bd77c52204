// Package tasksmemstore keeps tasks in process memory behind a single lock.
package tasksmemstore

import (
	"context"
	"slices"
	"sync"

	"github.com/jrazmi/canaryapi/core/repositories"
	"github.com/jrazmi/canaryapi/core/repositories/tasksrepo"
)

// Store is an insertion-ordered, lock-guarded task collection. Readers share
// the lock, writers hold it exclusively, so a read that starts after a write
// returns sees that write.
type Store struct {
	mu     sync.RWMutex
	tasks  []tasksrepo.Task
	highID int
}

// NewStore creates a store holding seed, created in order with ids 1..n.
func NewStore(seed ...tasksrepo.CreateTask) *Store {
	s := &Store{tasks: make([]tasksrepo.Task, 0, len(seed))}
	for _, ct := range seed {
		s.tasks = append(s.tasks, tasksrepo.Task{
			ID:          s.nextID(),
			Title:       ct.Title,
			Description: ct.Description,
		})
	}
	return s
}

// List returns a copy of every task in insertion order.
func (s *Store) List(ctx context.Context) ([]tasksrepo.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.tasks), nil
}

// Get returns the first task whose id matches.
func (s *Store) Get(ctx context.Context, id int) (tasksrepo.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.index(id)
	if i < 0 {
		return tasksrepo.Task{}, repositories.ErrNotFound
	}
	return s.tasks[i], nil
}

// Create appends a new task with id one above the highest id the store has
// ever held.
func (s *Store) Create(ctx context.Context, input tasksrepo.CreateTask) (tasksrepo.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task := tasksrepo.Task{
		ID:          s.nextID(),
		Title:       input.Title,
		Description: input.Description,
	}
	s.tasks = append(s.tasks, task)

	return task, nil
}

// Update applies input to the first task whose id matches.
func (s *Store) Update(ctx context.Context, id int, input tasksrepo.UpdateTask) (tasksrepo.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return tasksrepo.Task{}, repositories.ErrNotFound
	}

	s.tasks[i] = input.Apply(s.tasks[i])
	return s.tasks[i], nil
}

// Delete removes the first task whose id matches.
func (s *Store) Delete(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return repositories.ErrNotFound
	}

	s.tasks = slices.Delete(s.tasks, i, i+1)
	return nil
}

// index returns the position of the first task with id, or -1. Callers hold mu.
func (s *Store) index(id int) int {
	return slices.IndexFunc(s.tasks, func(t tasksrepo.Task) bool {
		return t.ID == id
	})
}

// nextID returns one above the largest id ever assigned, 1 for a new store.
// It never falls below max(present ids)+1, and an id freed by a delete is
// not handed out again. Callers hold mu.
func (s *Store) nextID() int {
	for _, t := range s.tasks {
		s.highID = max(s.highID, t.ID)
	}
	s.highID++
	return s.highID
}
