package model

import "net/http"

// Result is the outcome of a directory operation, shaped like an HTTP response.
type Result struct {
	Status  int    `json:"status"`
	Text    string `json:"text"`
	Message string `json:"message"`
}

func NewResult(status int, message string) Result {
	return Result{Status: status, Text: http.StatusText(status), Message: message}
}

func OK(message string) Result            { return NewResult(http.StatusOK, message) }
func BadRequest(message string) Result    { return NewResult(http.StatusBadRequest, message) }
func Unauthorized(message string) Result  { return NewResult(http.StatusUnauthorized, message) }
func NotFound(message string) Result      { return NewResult(http.StatusNotFound, message) }
func Conflict(message string) Result      { return NewResult(http.StatusConflict, message) }
func InternalError(message string) Result { return NewResult(http.StatusInternalServerError, message) }

func (r Result) IsOK() bool {
	return r.Status == http.StatusOK
}
