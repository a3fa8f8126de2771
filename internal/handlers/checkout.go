package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"

	"attraction-booking-portal/internal/models"
	"attraction-booking-portal/internal/services"
)

// CheckoutServiceFactory builds a checkout service bound to a request's cart
// store, mirroring CartServiceFactory.
type CheckoutServiceFactory func(store services.CartStore) services.CheckoutServiceInterface

// CheckoutHandler handles order placement and post-purchase lookups.
type CheckoutHandler struct {
	checkouts CheckoutServiceFactory
	store     sessions.Store
}

// NewCheckoutHandler creates a new checkout handler.
func NewCheckoutHandler(checkouts CheckoutServiceFactory, store sessions.Store) *CheckoutHandler {
	return &CheckoutHandler{checkouts: checkouts, store: store}
}

func (h *CheckoutHandler) checkoutService(w http.ResponseWriter, r *http.Request) services.CheckoutServiceInterface {
	return h.checkouts(NewSessionCartStore(h.store, r, w))
}

type checkoutRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Checkout handles POST /checkout: it places the order for the session's cart
// and returns the order and invoice ids. The cart is cleared on success.
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	customer := models.CustomerInfo{Name: req.Name, Email: req.Email, Phone: req.Phone}
	order, err := h.checkoutService(w, r).Checkout(r.Context(), customer)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"order_id":   order.ID,
		"invoice_id": order.InvoiceID,
	})
}

// Invoice handles GET /orders/{id}/invoice: the invoice document is streamed
// through unchanged, with whatever content type the backend produced.
func (h *CheckoutHandler) Invoice(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")
	body, contentType, err := h.checkoutService(w, r).FetchInvoice(r.Context(), orderID)
	if err != nil {
		writeError(w, err)
		return
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

// Attachments handles GET /orders/attachments?invoice=
func (h *CheckoutHandler) Attachments(w http.ResponseWriter, r *http.Request) {
	invoiceID := r.URL.Query().Get("invoice")
	attachments, err := h.checkoutService(w, r).FetchTicketAttachments(r.Context(), invoiceID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"attachments": attachments})
}

// Inventory handles GET /orders/inventory?invoice=
func (h *CheckoutHandler) Inventory(w http.ResponseWriter, r *http.Request) {
	invoiceID := r.URL.Query().Get("invoice")
	records, err := h.checkoutService(w, r).FetchTicketInventory(r.Context(), invoiceID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"tickets": records})
}
