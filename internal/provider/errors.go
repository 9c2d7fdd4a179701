package provider

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingCredentials is returned when AskGeo credentials are not configured.
	ErrMissingCredentials = errors.New("askgeo account id and api key are required")
	// ErrUnsupportedZenith is returned by providers that only know the official zenith.
	ErrUnsupportedZenith = errors.New("zenith kind not supported by provider")
	// ErrUnsupportedDate is returned by providers that only answer for the current day.
	ErrUnsupportedDate = errors.New("date not supported by provider")
)

// APIError represents an error status returned by a remote API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error %d: %s", e.StatusCode, e.Message)
}

// NetworkError represents a transport failure while talking to a remote API.
type NetworkError struct {
	Operation string
	Err       error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error during %s: %v", e.Operation, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// PayloadError represents a response body that could not be interpreted.
type PayloadError struct {
	Reason string
	Err    error
}

func (e *PayloadError) Error() string {
	if e.Err == nil {
		return "malformed payload: " + e.Reason
	}

	return fmt.Sprintf("malformed payload: %s: %v", e.Reason, e.Err)
}

func (e *PayloadError) Unwrap() error {
	return e.Err
}
