package transport

import (
	"fmt"
	"net/http"
)

// Kind classifies a transport failure
type Kind string

const (
	KindConnection Kind = "CONNECTION" // dial, TLS or reset failures
	KindTimeout    Kind = "TIMEOUT"    // connect or overall deadline exceeded
	KindHTTP       Kind = "HTTP"       // non-2xx status
	KindPanel      Kind = "PANEL"      // 2xx response carrying a panel error payload
	KindDecode     Kind = "DECODE"     // response body could not be parsed
)

// Error represents a transport layer error with classification
type Error struct {
	Kind       Kind
	StatusCode int    // HTTP status, zero when no response was received
	Message    string // panel supplied error text, if any
	PanelCode  string // panel specific error code, if any
	Body       string // raw response body, truncated
	Underlying error
}

func (e *Error) Error() string {
	switch {
	case e.Message != "":
		return e.Message
	case e.StatusCode != 0:
		return fmt.Sprintf("%s %d %s", e.Kind, e.StatusCode, http.StatusText(e.StatusCode))
	case e.Underlying != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Underlying)
	default:
		return string(e.Kind)
	}
}

func (e *Error) Unwrap() error {
	return e.Underlying
}

// PanelError reports an error the panel returned inside a successful
// response, such as WHM's metadata.result=0 or a Plesk status=error node.
func PanelError(message string, code string) *Error {
	return &Error{
		Kind:      KindPanel,
		Message:   message,
		PanelCode: code,
	}
}

// DecodeError reports a response body that could not be parsed.
func DecodeError(body []byte, err error) *Error {
	return &Error{
		Kind:       KindDecode,
		Body:       truncate(body),
		Underlying: err,
	}
}

const maxBody = 2048

func truncate(body []byte) string {
	if len(body) > maxBody {
		return string(body[:maxBody]) + "..."
	}
	return string(body)
}
