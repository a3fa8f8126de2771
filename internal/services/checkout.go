package services

import (
	"context"
	"fmt"

	"attraction-booking-portal/internal/models"
)

// CheckoutService finalizes a reserved cart into an order and exposes the
// post-purchase resources: invoice, ticket attachments, ticket inventory.
type CheckoutService struct {
	backend *BackendClient
	store   CartStore
}

// NewCheckoutService creates a checkout service bound to the same cart store
// as the cart service, so a completed order can clear the mirror.
func NewCheckoutService(backend *BackendClient, store CartStore) *CheckoutService {
	return &CheckoutService{backend: backend, store: store}
}

type checkoutRequest struct {
	CartID   string              `json:"cart_id"`
	Customer models.CustomerInfo `json:"customer"`
}

// Checkout responses have carried the order id as either id or orderId; id
// wins when both are present.
type checkoutResponse struct {
	ID        string `json:"id"`
	OrderID   string `json:"orderId"`
	InvoiceID string `json:"invoice_id"`
}

// Checkout submits the customer details against the reserved cart and returns
// the created order. The cart mirror is cleared on success: a cart is
// single-use and the order is terminal.
func (s *CheckoutService) Checkout(ctx context.Context, customer models.CustomerInfo) (*models.Order, error) {
	if err := customer.Validate(); err != nil {
		return nil, err
	}

	cart, err := s.store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if cart.ID == "" {
		return nil, models.ErrNoCart
	}

	var resp checkoutResponse
	body := checkoutRequest{CartID: cart.ID, Customer: customer}
	if err := s.backend.Post(ctx, "checkout", "/checkout", body, &resp); err != nil {
		return nil, &models.CheckoutError{Reason: "backend rejected the checkout", Err: err}
	}

	orderID := resp.ID
	if orderID == "" {
		orderID = resp.OrderID
	}
	if orderID == "" {
		return nil, &models.MalformedResponseError{Op: "checkout", Reason: "response carries neither id nor orderId"}
	}
	if resp.InvoiceID == "" {
		return nil, &models.MalformedResponseError{Op: "checkout", Reason: "response carries no invoice_id"}
	}

	if err := s.store.Clear(); err != nil {
		return nil, fmt.Errorf("order %s created but cart mirror could not be cleared: %w", orderID, err)
	}

	return &models.Order{ID: orderID, InvoiceID: resp.InvoiceID}, nil
}

// FetchInvoice retrieves the invoice document for an order. The bytes are the
// backend's document as-is; contentType reports what the backend declared.
func (s *CheckoutService) FetchInvoice(ctx context.Context, orderID string) (data []byte, contentType string, err error) {
	if orderID == "" {
		return nil, "", models.ErrOrderNotFound
	}
	return s.backend.GetRaw(ctx, "get invoice", fmt.Sprintf("/orders/%s/invoice", orderID))
}

// FetchTicketAttachments returns the downloadable ticket artifacts for an
// invoice. The list may be empty while tickets are still generating.
func (s *CheckoutService) FetchTicketAttachments(ctx context.Context, invoiceID string) ([]models.Attachment, error) {
	if invoiceID == "" {
		return nil, models.ErrInvoiceNotFound
	}

	var attachments []models.Attachment
	path := fmt.Sprintf("/bookings/attachments/by-invoice/%s", invoiceID)
	if err := s.backend.Get(ctx, "get ticket attachments", path, nil, &attachments); err != nil {
		return nil, err
	}
	return attachments, nil
}

// FetchTicketInventory returns the issued-ticket status records for an invoice.
func (s *CheckoutService) FetchTicketInventory(ctx context.Context, invoiceID string) ([]models.TicketInventoryRecord, error) {
	if invoiceID == "" {
		return nil, models.ErrInvoiceNotFound
	}

	var records []models.TicketInventoryRecord
	path := fmt.Sprintf("/ticket_inventories/invoice/%s", invoiceID)
	if err := s.backend.Get(ctx, "get ticket inventory", path, nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}
