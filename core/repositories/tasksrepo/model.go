package tasksrepo

// Task is a single to-do record. ID is assigned by the store on creation and
// never changes.
type Task struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Done        bool   `json:"done"`
}

// CreateTask contains fields for creating a new task. New tasks start with
// Done false.
type CreateTask struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// UpdateTask contains fields for updating an existing task.
// All fields are optional (pointers) to support partial updates.
type UpdateTask struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Done        *bool   `json:"done,omitempty"`
}

// Apply returns t with every field set in u replaced.
func (u UpdateTask) Apply(t Task) Task {
	if u.Title != nil {
		t.Title = *u.Title
	}
	if u.Description != nil {
		t.Description = *u.Description
	}
	if u.Done != nil {
		t.Done = *u.Done
	}
	return t
}

// SeedTasks is the collection a fresh process starts with when seeding is on.
func SeedTasks() []CreateTask {
	return []CreateTask{
		{Title: "Cento 6", Description: "RHEL 6 based"},
		{Title: "Centos 7", Description: "RHEL 7 based"},
		{Title: "Centos 8", Description: "RHEL 8 based"},
		{Title: "Centos stream", Description: "Fedora + RHEL based"},
	}
}
