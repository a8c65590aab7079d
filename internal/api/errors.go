package api

import (
	"errors"
	"fmt"
)

const (
	KindFetch = "fetch"
	KindParse = "parse"
)

// FetchError reports a failure that happened before a response body was
// available for decoding: DNS, connect, TLS, timeouts, cancelled contexts,
// body read failures and non-2xx statuses.
type FetchError struct {
	Op         string
	StatusCode int // zero when no response was received
	Err        error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch %s: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ParseError reports a body that was received but does not decode into the
// expected envelope.
type ParseError struct {
	Op  string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s response: %v", e.Op, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Kind classifies err as KindFetch, KindParse or "" for anything else.
func Kind(err error) string {
	var fe *FetchError
	if errors.As(err, &fe) {
		return KindFetch
	}
	var pe *ParseError
	if errors.As(err, &pe) {
		return KindParse
	}
	return ""
}
