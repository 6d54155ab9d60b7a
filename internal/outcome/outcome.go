package outcome

import (
	"errors"

	"front-auditor/internal/apperr"
)

type Status string

const (
	StatusSuccess     Status = "success"
	StatusError       Status = "error"
	StatusInformative Status = "informative"
)

// Result is the uniform outcome of a menu action.
type Result struct {
	Status    Status   `json:"status"`
	Message   string   `json:"message"`
	ErrorCode int      `json:"errorCode,omitempty"`
	Payload   *Payload `json:"payload,omitempty"`
}

// Payload carries the artifacts produced by an action and every failure
// met along the way.
type Payload struct {
	Files  []string `json:"files,omitempty"`
	Errors []Result `json:"errors,omitempty"`
}

func Success(message string) Result {
	return Result{Status: StatusSuccess, Message: message}
}

func Informative(message string) Result {
	return Result{Status: StatusInformative, Message: message}
}

// FromError converts err into a Result using the kind's status, code and
// user-facing message. Errors without a kind become a generic error.
func FromError(err error) Result {
	kind := apperr.KindOf(err)
	status := StatusError
	if kind.Status() == apperr.StatusInformative {
		status = StatusInformative
	}
	return Result{
		Status:    status,
		Message:   kind.Message(),
		ErrorCode: kind.Code(),
	}
}

// Step is like FromError but prefixes the message with the failing step,
// used for entries of Payload.Errors.
func Step(step string, err error) Result {
	r := FromError(err)
	r.Message = step + ": " + r.Message
	return r
}

func (r Result) OK() bool {
	return r.Status == StatusSuccess
}

// Aggregate builds the result of a multi-step action: success when there
// are no failures, otherwise a result carrying every failure along with the
// files that were produced. It is informative only if every failure is.
func Aggregate(message string, files []string, failures []Result) Result {
	if len(failures) == 0 {
		r := Success(message)
		if len(files) > 0 {
			r.Payload = &Payload{Files: files}
		}
		return r
	}

	status := StatusInformative
	for _, f := range failures {
		if f.Status != StatusInformative {
			status = StatusError
		}
	}
	r := Result{
		Status:    status,
		Message:   failures[0].Message,
		ErrorCode: failures[0].ErrorCode,
		Payload: &Payload{
			Files:  files,
			Errors: failures,
		},
	}
	if len(failures) > 1 {
		r.Message = "Algunos pasos fallaron."
	}
	return r
}

// Errors joins the failures of a payload, handy for logging.
func (r Result) Errors() error {
	if r.Payload == nil {
		return nil
	}
	errs := make([]error, len(r.Payload.Errors))
	for i, e := range r.Payload.Errors {
		errs[i] = errors.New(e.Message)
	}
	return errors.Join(errs...)
}
