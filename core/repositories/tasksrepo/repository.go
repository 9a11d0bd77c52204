// Package tasksrepo is the task repository: the Task model, request
// decoding, and the Repository that fronts a Storer.
package tasksrepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jrazmi/canaryapi/core/repositories"
	"github.com/jrazmi/canaryapi/sdk/logger"
)

// Storer is the storage contract for tasks. Each call is atomic with respect
// to every other call; Get, Update and Delete act on the first task in
// insertion order whose id matches and return repositories.ErrNotFound when
// none does.
type Storer interface {
	List(ctx context.Context) ([]Task, error)
	Get(ctx context.Context, id int) (Task, error)
	Create(ctx context.Context, input CreateTask) (Task, error)
	Update(ctx context.Context, id int, input UpdateTask) (Task, error)
	Delete(ctx context.Context, id int) error
}

// Repository provides access to task storage.
type Repository struct {
	log    *logger.Logger
	storer Storer
}

// NewRepository creates a new Task repository
func NewRepository(log *logger.Logger, storer Storer) *Repository {
	return &Repository{
		log:    log,
		storer: storer,
	}
}

// List returns every task in insertion order.
func (r *Repository) List(ctx context.Context) ([]Task, error) {
	tasks, err := r.storer.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// Get returns the task with the given id.
func (r *Repository) Get(ctx context.Context, id int) (Task, error) {
	task, err := r.storer.Get(ctx, id)
	if err != nil {
		return Task{}, fmt.Errorf("get task %d: %w", id, err)
	}
	return task, nil
}

// Create stores a new task and returns it with its assigned id.
func (r *Repository) Create(ctx context.Context, input CreateTask) (Task, error) {
	task, err := r.storer.Create(ctx, input)
	if err != nil {
		r.log.ErrorContext(ctx, "failed to create task", "error", err)
		return Task{}, fmt.Errorf("create task: %w", err)
	}

	r.log.InfoContext(ctx, "created task", "id", task.ID)
	return task, nil
}

// Update applies the set fields of input to the task with the given id.
func (r *Repository) Update(ctx context.Context, id int, input UpdateTask) (Task, error) {
	task, err := r.storer.Update(ctx, id, input)
	if err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			r.log.ErrorContext(ctx, "failed to update task", "id", id, "error", err)
		}
		return Task{}, fmt.Errorf("update task %d: %w", id, err)
	}

	r.log.InfoContext(ctx, "updated task", "id", id)
	return task, nil
}

// Delete removes the task with the given id.
func (r *Repository) Delete(ctx context.Context, id int) error {
	if err := r.storer.Delete(ctx, id); err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			r.log.ErrorContext(ctx, "failed to delete task", "id", id, "error", err)
		}
		return fmt.Errorf("delete task %d: %w", id, err)
	}

	r.log.InfoContext(ctx, "deleted task", "id", id)
	return nil
}
