package tasksrepobridge

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/jrazmi/canaryapi/bridge/scaffolding/errs"
	"github.com/jrazmi/canaryapi/core/repositories"
	"github.com/jrazmi/canaryapi/core/repositories/tasksrepo"
	"github.com/jrazmi/canaryapi/infrastructure/web"
)

// bridge provides HTTP handlers for Task operations under one route prefix.
type bridge struct {
	prefix         string
	taskRepository *tasksrepo.Repository
}

// newBridge creates a new Task bridge
func newBridge(prefix string, taskRepository *tasksrepo.Repository) *bridge {
	return &bridge{
		prefix:         prefix,
		taskRepository: taskRepository,
	}
}

func (b *bridge) httpList(ctx context.Context, r *http.Request) web.Encoder {
	tasks, err := b.taskRepository.List(ctx)
	if err != nil {
		return errs.New(errs.Internal, err)
	}
	return web.NewJSONResponse(ListResponse{Context: b.marshalList(r, tasks)})
}

func (b *bridge) httpGetByID(ctx context.Context, r *http.Request) web.Encoder {
	id, err := parseID(r)
	if err != nil {
		return err
	}

	task, ierr := b.taskRepository.Get(ctx, id)
	if ierr != nil {
		return toError(ierr)
	}
	return web.NewJSONResponse(TaskResponse{Task: b.marshal(r, task)})
}

func (b *bridge) httpCreate(ctx context.Context, r *http.Request) web.Encoder {
	data, err := web.ReadBody(r)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	input, err := tasksrepo.DecodeCreate(data)
	if err != nil {
		return toError(err)
	}

	task, err := b.taskRepository.Create(ctx, input)
	if err != nil {
		return toError(err)
	}
	return web.NewJSONResponseWithStatus(TaskResponse{Task: b.marshal(r, task)}, http.StatusCreated)
}

// httpUpdate reports a missing task before a malformed body.
func (b *bridge) httpUpdate(ctx context.Context, r *http.Request) web.Encoder {
	id, perr := parseID(r)
	if perr != nil {
		return perr
	}

	input, err := decodeUpdate(r)
	if err != nil {
		if _, gerr := b.taskRepository.Get(ctx, id); gerr != nil {
			return toError(gerr)
		}
		return toError(err)
	}

	task, err := b.taskRepository.Update(ctx, id, input)
	if err != nil {
		return toError(err)
	}
	return web.NewJSONResponse(TaskResponse{Task: b.marshal(r, task)})
}

func (b *bridge) httpDelete(ctx context.Context, r *http.Request) web.Encoder {
	id, err := parseID(r)
	if err != nil {
		return err
	}

	if err := b.taskRepository.Delete(ctx, id); err != nil {
		return toError(err)
	}
	return web.NewJSONResponse(ResultResponse{Result: true})
}

// parseID accepts only a run of decimal digits. Anything else cannot name a
// task, so it is reported as not found.
func parseID(r *http.Request) (int, *errs.Error) {
	raw := web.Param(r, "id")
	if raw == "" {
		return 0, errs.Newf(errs.NotFound, "missing task id")
	}
	for i := range len(raw) {
		if raw[i] < '0' || raw[i] > '9' {
			return 0, errs.Newf(errs.NotFound, "task id %q is not a non-negative integer", raw)
		}
	}

	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errs.Newf(errs.NotFound, "task id %q out of range", raw)
	}
	return id, nil
}

func decodeUpdate(r *http.Request) (tasksrepo.UpdateTask, error) {
	data, err := web.ReadBody(r)
	if err != nil {
		return tasksrepo.UpdateTask{}, fmt.Errorf("%w: %w", repositories.ErrInvalidArgument, err)
	}
	return tasksrepo.DecodeUpdate(data)
}

func toError(err error) *errs.Error {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return errs.New(errs.NotFound, err)
	case errors.Is(err, repositories.ErrInvalidArgument):
		return errs.New(errs.InvalidArgument, err)
	default:
		return errs.New(errs.Internal, err)
	}
}
