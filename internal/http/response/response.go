// Package response builds the JSON envelope every handler answers with:
// {"status": "OK"|"Error", "error": ..., "data": ...}.
package response

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator"

	"github.com/AMULYA007-hub/campus-hire/internal/models"
)

// Response is the envelope of every API answer.
type Response struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
	Data   any    `json:"data,omitempty"`
}

const (
	StatusOK    = "OK"
	StatusError = "Error"
)

// OK returns a successful Response without data.
func OK() Response {
	return Response{Status: StatusOK}
}

// StatusOKWithData returns a successful Response carrying data.
func StatusOKWithData(data any) Response {
	return Response{
		Status: StatusOK,
		Data:   data,
	}
}

// Error returns a failed Response with msg.
func Error(msg string) Response {
	return Response{
		Status: StatusError,
		Error:  msg,
	}
}

// ValidationError joins the validation failures into one readable message.
func ValidationError(errs validator.ValidationErrors) Response {
	var errsMsgs []string
	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is a required field", err.Field()))
		case "email":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be a valid email", err.Field()))
		case "oneof":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be one of [%s]", err.Field(), err.Param()))
		case "date":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be a date in format %s", err.Field(), models.DateLayout))
		case "min", "gte":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be at least %s", err.Field(), err.Param()))
		default:
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is not valid", err.Field()))
		}
	}
	return Response{
		Status: StatusError,
		Error:  strings.Join(errsMsgs, ", "),
	}
}
