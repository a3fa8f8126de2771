package models

import (
	"errors"
	"fmt"
)

// Common errors used throughout the application
var (
	ErrAttractionNotFound = errors.New("attraction not found")
	ErrOrderNotFound      = errors.New("order not found")
	ErrInvoiceNotFound    = errors.New("invoice not found")
	ErrNoCart             = errors.New("no cart has been created")
	ErrSlotUnavailable    = errors.New("time slot is full")
	ErrInvalidQuantity    = errors.New("quantity must be a non-negative integer")
	ErrEmptySelection     = errors.New("no tickets selected")
)

// TransportError represents a network, timeout or non-2xx failure against the
// booking backend. Status is 0 when no HTTP response was received.
type TransportError struct {
	Op     string
	Status int
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: backend returned status %d", e.Op, e.Status)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// MalformedResponseError indicates the backend answered with a shape the
// declared schema for the endpoint does not allow.
type MalformedResponseError struct {
	Op     string
	Reason string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("%s: malformed response: %s", e.Op, e.Reason)
}

// ReservationError indicates a single ticket category could not be reserved
// (sold out, invalid date, or a backend rejection).
type ReservationError struct {
	TicketCategoryID int64
	CategoryName     string
	Err              error
}

func (e *ReservationError) Error() string {
	name := e.CategoryName
	if name == "" {
		name = fmt.Sprintf("category %d", e.TicketCategoryID)
	}
	return fmt.Sprintf("reservation failed for %s: %v", name, e.Err)
}

func (e *ReservationError) Unwrap() error {
	return e.Err
}

// CartReservationError indicates the backend refused to finalize the cart,
// for example because an item's inventory hold expired.
type CartReservationError struct {
	CartID string
	Err    error
}

func (e *CartReservationError) Error() string {
	return fmt.Sprintf("cart %s could not be reserved: %v", e.CartID, e.Err)
}

func (e *CartReservationError) Unwrap() error {
	return e.Err
}

// CheckoutError indicates checkout was rejected: incomplete customer details,
// a cart that is not reserved, or a backend/payment rejection.
type CheckoutError struct {
	Reason string
	Err    error
}

func (e *CheckoutError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("checkout failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("checkout failed: %s", e.Reason)
}

func (e *CheckoutError) Unwrap() error {
	return e.Err
}

// StateError indicates an operation was invoked out of sequence. It signals a
// programming defect in the caller, not a recoverable condition.
type StateError struct {
	Op    string
	State string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("%s is not valid in state %s", e.Op, e.State)
}
