package provider

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingSessionInfo indicates no session capability was supplied.
	ErrMissingSessionInfo = errors.New("missing session info")
	// ErrMissingIdentifier indicates neither an id nor a reference was supplied.
	ErrMissingIdentifier = errors.New("missing identifier")
	// ErrAnonymousLoginUnavailable indicates no token and no usable anonymous fallback.
	ErrAnonymousLoginUnavailable = errors.New("anonymous login unavailable")
	// ErrTransportFailure wraps whatever the transport collaborator reported.
	ErrTransportFailure = errors.New("transport failure")
	// ErrMalformedPayload indicates the response body could not be decoded.
	ErrMalformedPayload = errors.New("malformed payload")
	// ErrIncompleteResponse indicates fewer classified elements than the operation requires.
	ErrIncompleteResponse = errors.New("incomplete response")
	// ErrInvalidResponse indicates a structurally complete but semantically empty
	// response, e.g. an entry with zero playable sources.
	ErrInvalidResponse = errors.New("invalid response")
)

// ServerError is an explicit error element declared by the service.
type ServerError struct {
	Code    string
	Message string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server error code=%s message=%s", e.Code, e.Message)
}
