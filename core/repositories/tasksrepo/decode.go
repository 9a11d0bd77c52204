package tasksrepo

import (
	"fmt"

	"github.com/jrazmi/canaryapi/core/repositories"
	"github.com/jrazmi/canaryapi/sdk/validation"
)

// DecodeCreate parses a create request body. The body must be a non-empty
// JSON object whose title is a string. A null or absent description becomes
// the empty string. Errors wrap repositories.ErrInvalidArgument.
func DecodeCreate(data []byte) (CreateTask, error) {
	obj, err := validation.JSONObject(data)
	if err != nil {
		return CreateTask{}, invalid("create", err)
	}

	rawTitle, ok := obj["title"]
	if !ok {
		return CreateTask{}, invalid("create", fmt.Errorf("title is required"))
	}

	var ct CreateTask
	if ct.Title, err = validation.JSONString(rawTitle); err != nil {
		return CreateTask{}, invalid("create: title", err)
	}

	if raw, ok := obj["description"]; ok && !validation.IsNull(raw) {
		if ct.Description, err = validation.JSONString(raw); err != nil {
			return CreateTask{}, invalid("create: description", err)
		}
	}

	return ct, nil
}

// DecodeUpdate parses an update request body. Every present field is type
// checked before the patch is returned, so a rejected body never leads to a
// partial update. Unknown fields are ignored.
func DecodeUpdate(data []byte) (UpdateTask, error) {
	obj, err := validation.JSONObject(data)
	if err != nil {
		return UpdateTask{}, invalid("update", err)
	}

	var ut UpdateTask

	if raw, ok := obj["title"]; ok {
		s, err := validation.JSONString(raw)
		if err != nil {
			return UpdateTask{}, invalid("update: title", err)
		}
		ut.Title = &s
	}

	if raw, ok := obj["description"]; ok {
		s, err := validation.JSONString(raw)
		if err != nil {
			return UpdateTask{}, invalid("update: description", err)
		}
		ut.Description = &s
	}

	if raw, ok := obj["done"]; ok {
		b, err := validation.JSONBool(raw)
		if err != nil {
			return UpdateTask{}, invalid("update: done", err)
		}
		ut.Done = &b
	}

	return ut, nil
}

func invalid(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, repositories.ErrInvalidArgument, err)
}
