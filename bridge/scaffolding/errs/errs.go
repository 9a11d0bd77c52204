// Package errs provides the error type bridges return to the web layer. Each
// error carries a code that fixes both the HTTP status and the public message.
package errs

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"runtime"
)

// ErrCode classifies an error for the client.
type ErrCode int

const (
	InvalidArgument ErrCode = iota + 1
	NotFound
	Internal
	InternalOnlyLog
)

var codeStatus = map[ErrCode]int{
	InvalidArgument: http.StatusBadRequest,
	NotFound:        http.StatusNotFound,
	Internal:        http.StatusInternalServerError,
	InternalOnlyLog: http.StatusInternalServerError,
}

var codePublic = map[ErrCode]string{
	InvalidArgument: "Bad request",
	NotFound:        "Not found",
	Internal:        "Internal Server Error",
	InternalOnlyLog: "Internal Server Error",
}

func (c ErrCode) String() string {
	switch c {
	case InvalidArgument:
		return "invalid_argument"
	case NotFound:
		return "not_found"
	case Internal:
		return "internal"
	case InternalOnlyLog:
		return "internal_only_log"
	}
	return "unknown"
}

// Error is an error with a code and the location it was raised from. Message
// is for logs; clients only ever see the code's public text.
type Error struct {
	Code     ErrCode
	Message  string
	FuncName string
	FileName string
	err      error
}

// New wraps err with code, recording the caller.
func New(code ErrCode, err error) *Error {
	e := newAt(code, err.Error())
	e.err = err
	return e
}

// Newf constructs an error with a formatted message, recording the caller.
func Newf(code ErrCode, format string, v ...any) *Error {
	return newAt(code, fmt.Sprintf(format, v...))
}

func newAt(code ErrCode, msg string) *Error {
	e := &Error{Code: code, Message: msg}
	if pc, file, line, ok := runtime.Caller(2); ok {
		e.FileName = fmt.Sprintf("%s:%d", file, line)
		if fn := runtime.FuncForPC(pc); fn != nil {
			e.FuncName = fn.Name()
		}
	}
	return e
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.err
}

// HTTPStatus implements the web package's status interface.
func (e *Error) HTTPStatus() int {
	if s, ok := codeStatus[e.Code]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// Encode implements web.Encoder, writing {"error": "<public text>"}.
func (e *Error) Encode() ([]byte, string, error) {
	msg, ok := codePublic[e.Code]
	if !ok {
		msg = codePublic[Internal]
	}
	data, err := json.Marshal(struct {
		Error string `json:"error"`
	}{Error: msg})
	return data, "application/json; charset=utf-8", err
}

// IsError reports whether err is, or wraps, an *Error.
func IsError(err error) bool {
	var e *Error
	return errors.As(err, &e)
}

// GetError returns the *Error inside err, or nil.
func GetError(err error) *Error {
	var e *Error
	if !errors.As(err, &e) {
		return nil
	}
	return e
}
