// Package dispatch implements the command table (spec.md §4.9): it
// matches the first token of an expanded line against roughly 100
// verbs and aliases, routing to navigation, listing, selection,
// file-op, config, and meta handlers. An unknown verb is an input
// error; there is no autocd or auto-open step. Lines whose first
// token is not a verb do not reach the table: the REPL hands them to
// RunShell.
package dispatch

import "fmt"

// Kind classifies a CmdError per spec.md §7, driving both the
// user-visible message and whether the failure is fatal.
type Kind int

const (
	KindInput      Kind = iota // bad syntax, bad ELN, empty selection, no such bookmark/workspace
	KindIO                     // cannot open, read, or write a file
	KindPermission             // access denied
	KindChildExit              // child exited non-zero; Code preserves the exit status
	KindChildCrash             // child terminated by a signal
	KindAllocation             // allocation failure; no handler returns this kind
)

// CmdError is the one error type every dispatch handler returns,
// formatted as "fman: <subject>: <reason>" for the user.
type CmdError struct {
	Kind    Kind
	Subject string
	Reason  string
	Code    int // child exit code, when Kind == KindChildExit
	Err     error
}

func (e *CmdError) Error() string {
	return fmt.Sprintf("fman: %s: %s", e.Subject, e.Reason)
}

func (e *CmdError) Unwrap() error { return e.Err }

func InputError(subject, reason string) *CmdError {
	return &CmdError{Kind: KindInput, Subject: subject, Reason: reason}
}

func IOError(subject string, err error) *CmdError {
	return &CmdError{Kind: KindIO, Subject: subject, Reason: err.Error(), Err: err}
}

func PermissionError(subject string, err error) *CmdError {
	return &CmdError{Kind: KindPermission, Subject: subject, Reason: "permission denied", Err: err}
}

func ChildExitError(subject string, code int) *CmdError {
	return &CmdError{Kind: KindChildExit, Subject: subject, Reason: fmt.Sprintf("exited with status %d", code), Code: code}
}

func ChildCrashError(subject string, err error) *CmdError {
	return &CmdError{Kind: KindChildCrash, Subject: subject, Reason: "child process crashed", Err: err}
}
