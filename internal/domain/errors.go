package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput signals malformed settings or input (e.g. a non-numeric result limit).
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidCredentials signals that the dictionary API rejected the api key.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrWordNotFound signals that the dictionary has nothing for the word.
	ErrWordNotFound = errors.New("word not found")
	// ErrRemote signals any other transport or HTTP failure of the dictionary API.
	ErrRemote = errors.New("remote dictionary error")
	// ErrInternal signals an unexpected failure.
	ErrInternal = errors.New("internal error")
	// ErrMalformedPayload signals an API payload of unexpected shape.
	ErrMalformedPayload = fmt.Errorf("%w: malformed payload", ErrInternal)
)

// RemoteError wraps ErrRemote with the fetch kind and HTTP status (0 for transport failures).
type RemoteError struct {
	Kind   FetchKind
	Status int
	Err    error
}

func (e *RemoteError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s: %s: %v", ErrRemote.Error(), e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s: status %d", ErrRemote.Error(), e.Kind, e.Status)
}

func (e *RemoteError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrRemote}
	}
	return []error{ErrRemote, e.Err}
}

// NewRemoteError creates a remote error for a non-2xx status.
func NewRemoteError(kind FetchKind, status int) error {
	return &RemoteError{Kind: kind, Status: status}
}

// InvalidSettingError wraps ErrInvalidInput with the offending settings key.
type InvalidSettingError struct {
	Key   string
	Value string
}

func (e *InvalidSettingError) Error() string {
	return fmt.Sprintf("%s: setting %q has invalid value %q", ErrInvalidInput.Error(), e.Key, e.Value)
}

func (e *InvalidSettingError) Unwrap() error { return ErrInvalidInput }
