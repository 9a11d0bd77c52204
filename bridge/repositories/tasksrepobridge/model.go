package tasksrepobridge

// Task is the public representation of a task. Field order is the order keys
// appear on the wire.
type Task struct {
	URI         string `json:"uri"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Done        bool   `json:"done"`
}

// ListResponse is the body of the list endpoint.
type ListResponse struct {
	Context []Task `json:"context"`
}

type TaskResponse struct {
	Task Task `json:"task"`
}

type ResultResponse struct {
	Result bool `json:"result"`
}
