package errors

import (
	"errors"
	"fmt"
)

// UpstreamCallError carries the HTTP detail of a failed commerce API call so the
// structured log keeps the endpoint and status even after wrapping.
type UpstreamCallError struct {
	Method   string
	Endpoint string
	Status   int
	Message  string
	Err      error
}

func (e *UpstreamCallError) Error() string {
	if e == nil {
		return ""
	}
	if e.Status > 0 {
		return fmt.Sprintf("upstream %s %s: status %d", e.Method, e.Endpoint, e.Status)
	}
	return fmt.Sprintf("upstream %s %s: %v", e.Method, e.Endpoint, e.Err)
}

func (e *UpstreamCallError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

type ErrorDump struct {
	TopMessage string `json:"top_message"`
	Code       Code   `json:"code,omitempty"`

	Chain []string `json:"chain,omitempty"`

	UpstreamMethod   string `json:"upstream_method,omitempty"`
	UpstreamEndpoint string `json:"upstream_endpoint,omitempty"`
	UpstreamStatus   int    `json:"upstream_status,omitempty"`
	UpstreamMessage  string `json:"upstream_message,omitempty"`
}

func Dump(err error) ErrorDump {
	if err == nil {
		return ErrorDump{}
	}

	d := ErrorDump{
		TopMessage: err.Error(),
	}

	if te := As(err); te != nil {
		d.Code = te.Code()
	}

	for e := err; e != nil; e = errors.Unwrap(e) {
		d.Chain = append(d.Chain, fmt.Sprintf("%T: %v", e, e))
	}

	var callErr *UpstreamCallError
	if errors.As(err, &callErr) {
		d.UpstreamMethod = callErr.Method
		d.UpstreamEndpoint = callErr.Endpoint
		d.UpstreamStatus = callErr.Status
		d.UpstreamMessage = callErr.Message
	}

	return d
}
