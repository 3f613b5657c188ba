package domain

import "errors"

var (
	// ErrNotFound is returned when a referenced row does not exist
	ErrNotFound = errors.New("not found")

	// ErrContractDisabled is returned when a sync targets a disabled contract
	ErrContractDisabled = errors.New("contract disabled")

	// ErrEventNotInInterface is returned when a listener names an event missing from the contract ABI
	ErrEventNotInInterface = errors.New("event not found in contract interface")

	// ErrUnknownNetwork is returned for a network id that is not configured
	ErrUnknownNetwork = errors.New("undefined network")

	// ErrUnknownHandler is returned when a task names a handler outside the known set
	ErrUnknownHandler = errors.New("unknown task handler")

	// ErrInvalidInput is returned when caller supplied data fails validation
	ErrInvalidInput = errors.New("invalid input")
)
