package tasksrepobridge

import (
	"net/http"
	"strconv"

	"github.com/jrazmi/canaryapi/core/repositories/tasksrepo"
	"github.com/jrazmi/canaryapi/infrastructure/web"
)

// MarshalToBridge converts a stored task to its public form, replacing the id
// with uri.
func MarshalToBridge(task tasksrepo.Task, uri string) Task {
	return Task{
		URI:         uri,
		Title:       task.Title,
		Description: task.Description,
		Done:        task.Done,
	}
}

// TaskPath is the group-relative path a task is fetched from.
func TaskPath(prefix string, id int) string {
	return prefix + "/get/context/" + strconv.Itoa(id)
}

func (b *bridge) marshal(r *http.Request, task tasksrepo.Task) Task {
	return MarshalToBridge(task, web.ExternalURL(r, TaskPath(b.prefix, task.ID)))
}

func (b *bridge) marshalList(r *http.Request, tasks []tasksrepo.Task) []Task {
	out := make([]Task, len(tasks))
	for i, task := range tasks {
		out[i] = b.marshal(r, task)
	}
	return out
}
