package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrorKind classifies a failed backend call into what the user is shown
type ErrorKind string

const (
	KindTimeout      ErrorKind = "timeout"
	KindNoResponse   ErrorKind = "no_response"
	KindCancelled    ErrorKind = "cancelled"
	KindUnauthorized ErrorKind = "unauthorized"
	KindForbidden    ErrorKind = "forbidden"
	KindNotFound     ErrorKind = "not_found"
	KindValidation   ErrorKind = "validation"
	KindServer       ErrorKind = "server"
)

// Error is returned by every Client method that fails
type Error struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
	Method     string
	Path       string
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("backend %s %s: %d %s", e.Method, e.Path, e.StatusCode, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("backend %s %s: %s: %v", e.Method, e.Path, e.Kind, e.Err)
	}
	return fmt.Sprintf("backend %s %s: %s", e.Method, e.Path, e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the classification of err, or "" when err is not a backend error
func KindOf(err error) ErrorKind {
	var be *Error
	if errors.As(err, &be) {
		return be.Kind
	}
	return ""
}

// IsKind reports whether err is a backend error of the given kind
func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}

// UserMessage converts err into the text shown next to the failed action
func UserMessage(err error) string {
	var be *Error
	if !errors.As(err, &be) {
		return err.Error()
	}

	switch be.Kind {
	case KindTimeout:
		return "The request timed out. Please try again."
	case KindNoResponse:
		return "No response from server. Please check your connection and try again."
	case KindCancelled:
		return "The request was cancelled."
	case KindUnauthorized:
		return "Your session has expired. Please log in again."
	case KindForbidden:
		return "You do not have permission to perform this action."
	case KindNotFound:
		return "The requested resource was not found. Please contact support if the problem persists."
	case KindValidation:
		if be.Message != "" {
			return be.Message
		}
		return "The request could not be processed."
	default:
		return fmt.Sprintf("Server error (%d): %s", be.StatusCode, be.Message)
	}
}

func kindForStatus(code int) ErrorKind {
	switch {
	case code == http.StatusUnauthorized:
		return KindUnauthorized
	case code == http.StatusForbidden:
		return KindForbidden
	case code == http.StatusNotFound:
		return KindNotFound
	case code == http.StatusRequestTimeout || code == http.StatusGatewayTimeout:
		return KindTimeout
	case code >= http.StatusInternalServerError:
		return KindServer
	default:
		return KindValidation
	}
}

// errorMessage pulls the human readable message out of a backend error body.
// The backend answers with {"message"}, {"error"} or {"errors":[...]}.
func errorMessage(raw []byte, code int) string {
	var body struct {
		Message string          `json:"message"`
		Error   string          `json:"error"`
		Errors  json.RawMessage `json:"errors"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Message != "" {
			return body.Message
		}
		if body.Error != "" {
			return body.Error
		}
		if msgs := fieldMessages(body.Errors); len(msgs) > 0 {
			return strings.Join(msgs, "; ")
		}
	}
	if text := strings.TrimSpace(string(raw)); text != "" && len(text) < 200 && !strings.HasPrefix(text, "<") {
		return text
	}
	return http.StatusText(code)
}

func fieldMessages(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}

	var plain []string
	if err := json.Unmarshal(raw, &plain); err == nil {
		return plain
	}

	var objs []struct {
		Msg     string `json:"msg"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &objs); err == nil {
		out := make([]string, 0, len(objs))
		for _, o := range objs {
			if o.Message != "" {
				out = append(out, o.Message)
			} else if o.Msg != "" {
				out = append(out, o.Msg)
			}
		}
		return out
	}
	return nil
}
