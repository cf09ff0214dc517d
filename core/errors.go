package core

import "errors"

var (
	// ErrEmptyLog is returned by MemoryLog.Last when the log contains no
	// entries. It marks the defined terminal-result extraction point for
	// delegation: an empty callee log is a reportable outcome, not a fault.
	ErrEmptyLog = errors.New("memory log is empty")

	// ErrEmptyKind is returned by MemoryLog.Append when the entry carries
	// no kind.
	ErrEmptyKind = errors.New("entry kind must not be empty")
)
