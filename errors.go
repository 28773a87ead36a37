// Package router implements a batched command-execution engine for
// chained token, swap, and marketplace operations.
package router

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure conditions.
var (
	// ErrDeadlineExpired indicates the batch deadline passed before any
	// command ran.
	ErrDeadlineExpired = errors.New("router: batch deadline expired")

	// ErrTruncatedCommands indicates the command bytes are not a positive
	// multiple of the 8-byte word size.
	ErrTruncatedCommands = errors.New("router: command bytes are not a positive multiple of 8")

	// ErrUnknownCommand indicates a flags byte carried an operation tag
	// with no dispatch entry.
	ErrUnknownCommand = errors.New("router: unknown operation tag")

	// ErrSlotOutOfRange indicates a descriptor byte referenced a slot
	// beyond the store's length.
	ErrSlotOutOfRange = errors.New("router: slot index out of range")

	// ErrSlotEmpty indicates a descriptor byte referenced a slot that was
	// never populated.
	ErrSlotEmpty = errors.New("router: slot is not populated")

	// ErrNoPendingOutput indicates the dynamic-output sentinel was used
	// before any command produced an output.
	ErrNoPendingOutput = errors.New("router: no command output pending")

	// ErrInvalidWord indicates an operand blob is not a 32-byte word.
	ErrInvalidWord = errors.New("router: operand is not a 32-byte word")

	// ErrOperandCount indicates a program was built with the wrong number
	// of operands for the operation's arity.
	ErrOperandCount = errors.New("router: operand count does not match operation arity")

	// ErrSettlementRejected indicates a marketplace adapter reported an
	// unsuccessful settlement.
	ErrSettlementRejected = errors.New("router: marketplace settlement rejected")

	// ErrUnsolicitedValue indicates incoming value from an address other
	// than the wrapped-native collaborator.
	ErrUnsolicitedValue = errors.New("router: unsolicited value transfer rejected")

	// ErrReentrantExecution indicates Execute was entered while a batch
	// was already running on the same Router.
	ErrReentrantExecution = errors.New("router: reentrant batch execution")

	// ErrMissingCollaborator indicates a Services field was left nil.
	ErrMissingCollaborator = errors.New("router: missing collaborator")

	// ErrMissingAddress indicates a required Config address was left zero.
	ErrMissingAddress = errors.New("router: missing config address")
)

// ExecutionError reports the command that aborted a batch.
type ExecutionError struct {
	CommandIndex int
	Command      CommandTag
	Response     []byte // raw collaborator diagnostic, when one was returned
	Err          error
}

func (e *ExecutionError) Error() string {
	if len(e.Response) > 0 {
		return fmt.Sprintf("router: command %d (%s): %v (response %#x)", e.CommandIndex, e.Command, e.Err, e.Response)
	}
	return fmt.Sprintf("router: command %d (%s): %v", e.CommandIndex, e.Command, e.Err)
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}

// OperandError indicates one operand of a command could not be resolved
// or decoded.
type OperandError struct {
	Operand int
	Err     error
}

func (e *OperandError) Error() string {
	return fmt.Sprintf("router: operand %d: %v", e.Operand, e.Err)
}

func (e *OperandError) Unwrap() error {
	return e.Err
}

// PathError indicates an invalid swap path description.
type PathError struct {
	Tokens int
	Fees   int
}

func (e *PathError) Error() string {
	return fmt.Sprintf("router: path needs one fee per hop: %d tokens, %d fees", e.Tokens, e.Fees)
}
