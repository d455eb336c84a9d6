package wordex

import "github.com/kailas-cloud/wordex/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrInvalidInput       = domain.ErrInvalidInput
	ErrInvalidCredentials = domain.ErrInvalidCredentials
	ErrWordNotFound       = domain.ErrWordNotFound
	ErrRemote             = domain.ErrRemote
	ErrInternal           = domain.ErrInternal
)
