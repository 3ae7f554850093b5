package reply

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/upb/api-scaffold/utils"
)

// Response is a successful payload ready to be written.
type Response struct {
	Status      int
	ContentType string
	Body        []byte
	Header      http.Header
}

// ErrorDetail describes a failed request. Cause is logged but never sent to
// the client.
type ErrorDetail struct {
	Status  int
	Message string
	Details map[string]interface{}
	Cause   error
}

// Error implements the error interface
func (e *ErrorDetail) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%d %s: %v", e.Status, e.Message, e.Cause)
	}
	return fmt.Sprintf("%d %s", e.Status, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ErrorDetail) Unwrap() error {
	return e.Cause
}

// Result holds exactly one of a Response or an ErrorDetail.
// The zero Result is an empty 204 response.
type Result struct {
	ok  *Response
	err *ErrorDetail
}

// Ok wraps a successful response.
func Ok(resp Response) Result {
	if resp.Status == 0 {
		resp.Status = http.StatusOK
	}
	return Result{ok: &resp}
}

// Err wraps a failure.
func Err(detail ErrorDetail) Result {
	if detail.Status == 0 {
		detail.Status = http.StatusInternalServerError
	}
	return Result{err: &detail}
}

// Ok returns the response arm.
func (r Result) Ok() (Response, bool) {
	if r.ok == nil {
		return Response{}, false
	}
	return *r.ok, true
}

// Err returns the error arm.
func (r Result) Err() (ErrorDetail, bool) {
	if r.err == nil {
		return ErrorDetail{}, false
	}
	return *r.err, true
}

// IsErr reports whether r is the error arm.
func (r Result) IsErr() bool {
	return r.err != nil
}

// Status returns the HTTP status r will be written with.
func (r Result) Status() int {
	switch {
	case r.err != nil:
		return r.err.Status
	case r.ok != nil:
		return r.ok.Status
	default:
		return http.StatusNoContent
	}
}

// Write sends r to w.
func (r Result) Write(w http.ResponseWriter) error {
	switch {
	case r.err != nil:
		return utils.WriteError(w, r.err.Status, r.err.Message, r.err.Details)
	case r.ok != nil:
		for k, vs := range r.ok.Header {
			for _, v := range vs {
				w.Header().Add(k, v)
			}
		}
		return utils.WriteBody(w, r.ok.Status, r.ok.ContentType, r.ok.Body)
	default:
		w.WriteHeader(http.StatusNoContent)
		return nil
	}
}

// Text returns a 200 plain text response.
func Text(body string) Result {
	return Ok(Response{
		Status:      http.StatusOK,
		ContentType: "text/plain; charset=utf-8",
		Body:        []byte(body),
	})
}

// HTML returns a 200 HTML response.
func HTML(body []byte) Result {
	return Ok(Response{
		Status:      http.StatusOK,
		ContentType: "text/html; charset=utf-8",
		Body:        body,
	})
}

// JSON returns a response with v encoded as JSON. An encoding failure turns
// into a 500.
func JSON(status int, v interface{}) Result {
	body, err := json.Marshal(v)
	if err != nil {
		return Fail(fmt.Errorf("encoding response: %w", err))
	}
	return Ok(Response{
		Status:      status,
		ContentType: "application/json",
		Body:        body,
	})
}

// Fail converts err into an error result. An *ErrorDetail anywhere in the
// chain is used as is; anything else becomes a generic 500.
func Fail(err error) Result {
	var detail *ErrorDetail
	if errors.As(err, &detail) {
		return Err(*detail)
	}
	return Err(ErrorDetail{
		Status:  http.StatusInternalServerError,
		Message: utils.InternalErrorMessage,
		Cause:   err,
	})
}

// BadRequest returns a 400 error result.
func BadRequest(message string, details map[string]interface{}, cause error) Result {
	return Err(ErrorDetail{
		Status:  http.StatusBadRequest,
		Message: message,
		Details: details,
		Cause:   cause,
	})
}

// Unauthorized returns a 401 error result.
func Unauthorized(message string, cause error) Result {
	return Err(ErrorDetail{
		Status:  http.StatusUnauthorized,
		Message: message,
		Cause:   cause,
	})
}

// NotFound returns a 404 error result.
func NotFound(cause error) Result {
	return Err(ErrorDetail{
		Status:  http.StatusNotFound,
		Message: "Not Found",
		Cause:   cause,
	})
}

// MethodNotAllowed returns a 405 error result.
func MethodNotAllowed(cause error) Result {
	return Err(ErrorDetail{
		Status:  http.StatusMethodNotAllowed,
		Message: "Method Not Allowed",
		Cause:   cause,
	})
}
