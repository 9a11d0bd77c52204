package tasksrepo_test

import (
	"errors"
	"testing"

	"github.com/jrazmi/canaryapi/core/repositories"
	"github.com/jrazmi/canaryapi/core/repositories/tasksrepo"
)

func TestDecodeCreate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    tasksrepo.CreateTask
		wantErr bool
	}{
		{name: "title only", body: `{"title":"A"}`, want: tasksrepo.CreateTask{Title: "A"}},
		{name: "with description", body: `{"title":"A","description":"d"}`, want: tasksrepo.CreateTask{Title: "A", Description: "d"}},
		{name: "null description", body: `{"title":"A","description":null}`, want: tasksrepo.CreateTask{Title: "A"}},
		{name: "empty title is allowed", body: `{"title":""}`, want: tasksrepo.CreateTask{}},
		{name: "unknown keys ignored", body: `{"title":"A","done":true,"id":9}`, want: tasksrepo.CreateTask{Title: "A"}},
		{name: "empty body", body: ``, wantErr: true},
		{name: "empty object", body: `{}`, wantErr: true},
		{name: "array", body: `[{"title":"A"}]`, wantErr: true},
		{name: "malformed", body: `{"title":`, wantErr: true},
		{name: "missing title", body: `{"description":"d"}`, wantErr: true},
		{name: "numeric title", body: `{"title":5}`, wantErr: true},
		{name: "null title", body: `{"title":null}`, wantErr: true},
		{name: "numeric description", body: `{"title":"A","description":5}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tasksrepo.DecodeCreate([]byte(tt.body))
			if tt.wantErr {
				if !errors.Is(err, repositories.ErrInvalidArgument) {
					t.Fatalf("err = %v, want ErrInvalidArgument", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDecodeUpdate(t *testing.T) {
	base := tasksrepo.Task{ID: 1, Title: "Cento 6", Description: "RHEL 6 based"}

	tests := []struct {
		name    string
		body    string
		want    tasksrepo.Task
		wantErr bool
	}{
		{name: "done", body: `{"done":true}`, want: tasksrepo.Task{ID: 1, Title: "Cento 6", Description: "RHEL 6 based", Done: true}},
		{name: "title and description", body: `{"title":"T","description":""}`, want: tasksrepo.Task{ID: 1, Title: "T"}},
		{name: "unknown key only", body: `{"priority":3}`, want: base},
		{name: "done as string", body: `{"done":"yes"}`, wantErr: true},
		{name: "done as number", body: `{"done":1}`, wantErr: true},
		{name: "null title", body: `{"title":null}`, wantErr: true},
		{name: "null description", body: `{"description":null}`, wantErr: true},
		{name: "one bad field rejects all", body: `{"title":"T","done":"yes"}`, wantErr: true},
		{name: "empty object", body: `{}`, wantErr: true},
		{name: "empty body", body: ``, wantErr: true},
		{name: "string body", body: `"done"`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			patch, err := tasksrepo.DecodeUpdate([]byte(tt.body))
			if tt.wantErr {
				if !errors.Is(err, repositories.ErrInvalidArgument) {
					t.Fatalf("err = %v, want ErrInvalidArgument", err)
				}
				if patch != (tasksrepo.UpdateTask{}) {
					t.Errorf("rejected body produced a patch: %+v", patch)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if got := patch.Apply(base); got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}
