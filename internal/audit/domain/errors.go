package domain

import (
	"github.com/finbase/securemsg/internal/errors"
)

var (
	// ErrSignatureInvalid indicates an audit entry whose signature does not
	// match its contents, meaning the entry was modified after recording.
	ErrSignatureInvalid = errors.Wrap(errors.ErrInvalidInput, "audit log signature verification failed")

	// ErrEntryNotFound indicates the requested audit entry does not exist.
	ErrEntryNotFound = errors.Wrap(errors.ErrNotFound, "audit log entry not found")
)
