package cart

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes reducer failures.
type ErrorCode string

const (
	// ErrCodeMissingPayload indicates ADD, REMOVE or QUANTITY arrived without a payload.
	ErrCodeMissingPayload ErrorCode = "MISSING_PAYLOAD"

	// ErrCodeItemNotFound indicates QUANTITY named a SKU that is not in the cart.
	ErrCodeItemNotFound ErrorCode = "ITEM_NOT_FOUND"

	// ErrCodeUnknownActionType indicates a type other than ADD, REMOVE, QUANTITY or SUBMIT.
	ErrCodeUnknownActionType ErrorCode = "UNKNOWN_ACTION_TYPE"

	// ErrCodeInvalidQuantity indicates QUANTITY asked for fewer than one unit.
	ErrCodeInvalidQuantity ErrorCode = "INVALID_QUANTITY"
)

// Error is returned by Reduce, Dispatch and Envelope.Decode.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Action is the action type being applied, when known.
	Action ActionType

	// SKU is the line the action targeted, when relevant.
	SKU string

	// Message is a human-readable description.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.SKU != "" {
		return fmt.Sprintf("%s: %s (action=%s, sku=%s)", e.Code, e.Message, e.Action, e.SKU)
	}
	if e.Action != "" {
		return fmt.Sprintf("%s: %s (action=%s)", e.Code, e.Message, e.Action)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// CodeOf returns the ErrorCode of err, or "" if err is not a cart error.
// Uses errors.As to handle wrapped errors.
func CodeOf(err error) ErrorCode {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Code
	}
	return ""
}

// IsMissingPayload returns true if err is a MISSING_PAYLOAD error.
func IsMissingPayload(err error) bool {
	return CodeOf(err) == ErrCodeMissingPayload
}

// IsItemNotFound returns true if err is an ITEM_NOT_FOUND error.
func IsItemNotFound(err error) bool {
	return CodeOf(err) == ErrCodeItemNotFound
}

// IsUnknownActionType returns true if err is an UNKNOWN_ACTION_TYPE error.
func IsUnknownActionType(err error) bool {
	return CodeOf(err) == ErrCodeUnknownActionType
}

// IsInvalidQuantity returns true if err is an INVALID_QUANTITY error.
func IsInvalidQuantity(err error) bool {
	return CodeOf(err) == ErrCodeInvalidQuantity
}

func newMissingPayload(t ActionType) *Error {
	return &Error{
		Code:    ErrCodeMissingPayload,
		Action:  t,
		Message: fmt.Sprintf("payload missing in %s action", t),
	}
}

func newItemNotFound(sku string) *Error {
	return &Error{
		Code:    ErrCodeItemNotFound,
		Action:  TypeQuantity,
		SKU:     sku,
		Message: "item must exist in order to update quantity",
	}
}

func newUnknownActionType(t ActionType) *Error {
	return &Error{
		Code:    ErrCodeUnknownActionType,
		Action:  t,
		Message: fmt.Sprintf("unidentified action type %q", t),
	}
}

func newInvalidQuantity(sku string, qty int64) *Error {
	return &Error{
		Code:    ErrCodeInvalidQuantity,
		Action:  TypeQuantity,
		SKU:     sku,
		Message: fmt.Sprintf("quantity must be at least 1, got %d", qty),
	}
}
