package models

import "strings"

// Order represents a finalized checkout. Terminal: never mutated after creation.
type Order struct {
	ID        string `json:"id"`
	InvoiceID string `json:"invoice_id"`
}

// CustomerInfo holds the contact details submitted at checkout.
type CustomerInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Validate checks that all required contact fields are filled in.
func (c CustomerInfo) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return &CheckoutError{Reason: "customer name is required"}
	}
	if strings.TrimSpace(c.Email) == "" || !strings.Contains(c.Email, "@") {
		return &CheckoutError{Reason: "a valid customer email is required"}
	}
	if strings.TrimSpace(c.Phone) == "" {
		return &CheckoutError{Reason: "customer phone is required"}
	}
	return nil
}
