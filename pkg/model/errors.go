// Copyright © 2018 One Concern

package model

import (
	"strings"

	"github.com/oneconcern/vcbackup/pkg/errors"
	"go.uber.org/multierr"
)

var (
	// ErrMalformedBackupName is returned when a name looks like a backup but its suffix cannot be parsed
	ErrMalformedBackupName = errors.New("malformed backup name")

	// ErrNoBackupsFound is returned when a tracked file has no history
	ErrNoBackupsFound = errors.New("no backups found")

	// ErrNotFound is returned when a revision has no corresponding file
	ErrNotFound = errors.New("revision not found")

	// ErrInvalidTag is returned when a string is not a revision tag
	ErrInvalidTag = errors.New("invalid revision tag")

	// ErrPartialOperation is the kind of PartialOperationFailure
	ErrPartialOperation = errors.New("partial operation failure")
)

// PartialOperationFailure reports a change-set operation which stopped partway.
//
// There is no atomicity: operations are best-effort and resumable. Items which
// were processed stay processed, Failed lists what remains to be done.
type PartialOperationFailure struct {
	Op     string
	Failed []string
	Err    error
}

func (e *PartialOperationFailure) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	b.WriteString(": ")
	b.WriteString(ErrPartialOperation.Error())
	b.WriteString(" on ")
	b.WriteString(strings.Join(e.Failed, ", "))
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Is matches ErrPartialOperation
func (e *PartialOperationFailure) Is(target error) bool {
	return errors.Is(ErrPartialOperation, target)
}

// Unwrap returns the individual causes
func (e *PartialOperationFailure) Unwrap() []error {
	return multierr.Errors(e.Err)
}

// Add records a failed item
func (e *PartialOperationFailure) Add(item string, err error) {
	e.Failed = append(e.Failed, item)
	e.Err = multierr.Append(e.Err, err)
}

// ErrOrNil returns nil when no failure has been recorded
func (e *PartialOperationFailure) ErrOrNil() error {
	if e == nil || len(e.Failed) == 0 {
		return nil
	}
	return e
}
