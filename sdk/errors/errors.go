package sdkerrors

import (
	"errors"
	"fmt"
)

// ErrBuilderFinalized is returned when instructions are added to a builder that
// has already been built.
var ErrBuilderFinalized = errors.New("builder already finalized")

type UnknownDiscriminatorError struct {
	Program       string
	Discriminator []byte
}

func (e *UnknownDiscriminatorError) Error() string {
	return fmt.Sprintf("unknown %s instruction discriminator: %x", e.Program, e.Discriminator)
}

func NewUnknownDiscriminatorError(program string, discriminator []byte) *UnknownDiscriminatorError {
	return &UnknownDiscriminatorError{Program: program, Discriminator: discriminator}
}

type AccountCountError struct {
	Operation string
	Want      int
	Got       int
}

func (e *AccountCountError) Error() string {
	return fmt.Sprintf("%s expects at least %d accounts, got %d", e.Operation, e.Want, e.Got)
}

func NewAccountCountError(operation string, want, got int) *AccountCountError {
	return &AccountCountError{Operation: operation, Want: want, Got: got}
}

// TooManyInstructionsError is returned when a proposal cannot index another instruction.
type TooManyInstructionsError struct {
	Count int
	Max   int
}

// Error returns the error message.
func (e *TooManyInstructionsError) Error() string {
	return fmt.Sprintf("too many instructions: %d, a proposal can only support %d", e.Count, e.Max)
}

func NewTooManyInstructionsError(count, maxInstructions int) *TooManyInstructionsError {
	return &TooManyInstructionsError{Count: count, Max: maxInstructions}
}

// InvalidAccountDataError is returned when on-chain account data cannot be decoded.
type InvalidAccountDataError struct {
	Account string
	Reason  string
}

func (e *InvalidAccountDataError) Error() string {
	return fmt.Sprintf("invalid account data for %s: %s", e.Account, e.Reason)
}

func NewInvalidAccountDataError(account, reason string) *InvalidAccountDataError {
	return &InvalidAccountDataError{Account: account, Reason: reason}
}

// UnrecognizedInstructionError is returned when no decoder understands an instruction.
type UnrecognizedInstructionError struct {
	Program   string
	ProgramID string
}

func (e *UnrecognizedInstructionError) Error() string {
	return fmt.Sprintf("unrecognized %s instruction for program %s", e.Program, e.ProgramID)
}

func NewUnrecognizedInstructionError(program, programID string) *UnrecognizedInstructionError {
	return &UnrecognizedInstructionError{Program: program, ProgramID: programID}
}
