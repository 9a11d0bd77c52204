package web

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is a bare {"error": "..."} body for failures raised inside
// the framework, before any application error handling runs.
type ErrorResponse struct {
	Error  string `json:"error"`
	status int
}

func NewError(msg string, status int) ErrorResponse {
	return ErrorResponse{Error: msg, status: status}
}

// NewNotFound is the body sent for requests that match no route.
func NewNotFound() ErrorResponse {
	return NewError("Not found", http.StatusNotFound)
}

func (e ErrorResponse) Encode() ([]byte, string, error) {
	data, err := json.Marshal(e)
	return data, "application/json; charset=utf-8", err
}

func (e ErrorResponse) HTTPStatus() int {
	if e.status == 0 {
		return http.StatusInternalServerError
	}
	return e.status
}
