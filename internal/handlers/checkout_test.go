package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"attraction-booking-portal/internal/models"
	"attraction-booking-portal/internal/services"
)

func newCheckoutRouter(checkouts *services.MockCheckoutService) *chi.Mux {
	factory := func(store services.CartStore) services.CheckoutServiceInterface { return checkouts }
	h := NewCheckoutHandler(factory, sessions.NewCookieStore([]byte("test-secret")))
	r := chi.NewRouter()
	r.Post("/checkout", h.Checkout)
	r.Route("/orders", func(r chi.Router) {
		r.Get("/attachments", h.Attachments)
		r.Get("/inventory", h.Inventory)
		r.Get("/{id}/invoice", h.Invoice)
	})
	return r
}

func TestCheckoutHandler_Checkout(t *testing.T) {
	checkouts := new(services.MockCheckoutService)
	customer := models.CustomerInfo{Name: "Jane Visitor", Email: "jane@example.com", Phone: "+10000000000"}
	checkouts.On("Checkout", mock.Anything, customer).
		Return(&models.Order{ID: "o1", InvoiceID: "inv1"}, nil)

	body := `{"name": "Jane Visitor", "email": "jane@example.com", "phone": "+10000000000"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/checkout", strings.NewReader(body))
	newCheckoutRouter(checkouts).ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		OrderID   string `json:"order_id"`
		InvoiceID string `json:"invoice_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "o1", resp.OrderID)
	assert.Equal(t, "inv1", resp.InvoiceID)

	checkouts.AssertExpectations(t)
}

func TestCheckoutHandler_CheckoutValidationFailure(t *testing.T) {
	checkouts := new(services.MockCheckoutService)
	checkouts.On("Checkout", mock.Anything, mock.Anything).
		Return(nil, &models.CheckoutError{Reason: "customer name is required"})

	body := `{"email": "jane@example.com", "phone": "+10000000000"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/checkout", strings.NewReader(body))
	newCheckoutRouter(checkouts).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestCheckoutHandler_CheckoutWithoutCart(t *testing.T) {
	checkouts := new(services.MockCheckoutService)
	checkouts.On("Checkout", mock.Anything, mock.Anything).Return(nil, models.ErrNoCart)

	body := `{"name": "Jane", "email": "jane@example.com", "phone": "+1"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/checkout", strings.NewReader(body))
	newCheckoutRouter(checkouts).ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCheckoutHandler_Invoice(t *testing.T) {
	checkouts := new(services.MockCheckoutService)
	checkouts.On("FetchInvoice", mock.Anything, "o1").
		Return([]byte("%PDF-1.4"), "application/pdf", nil)

	w := httptest.NewRecorder()
	newCheckoutRouter(checkouts).ServeHTTP(w, httptest.NewRequest("GET", "/orders/o1/invoice", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, "%PDF-1.4", w.Body.String())
}

func TestCheckoutHandler_InvoiceNotFound(t *testing.T) {
	checkouts := new(services.MockCheckoutService)
	checkouts.On("FetchInvoice", mock.Anything, "missing").
		Return(nil, "", models.ErrOrderNotFound)

	w := httptest.NewRecorder()
	newCheckoutRouter(checkouts).ServeHTTP(w, httptest.NewRequest("GET", "/orders/missing/invoice", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCheckoutHandler_Attachments(t *testing.T) {
	checkouts := new(services.MockCheckoutService)
	checkouts.On("FetchTicketAttachments", mock.Anything, "inv1").
		Return([]models.Attachment{{PublicURL: "https://cdn.example.com/ticket1.pdf"}}, nil)

	w := httptest.NewRecorder()
	newCheckoutRouter(checkouts).ServeHTTP(w, httptest.NewRequest("GET", "/orders/attachments?invoice=inv1", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Attachments []models.Attachment `json:"attachments"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Attachments, 1)
	assert.Equal(t, "https://cdn.example.com/ticket1.pdf", resp.Attachments[0].PublicURL)
}

func TestCheckoutHandler_Inventory(t *testing.T) {
	checkouts := new(services.MockCheckoutService)
	checkouts.On("FetchTicketInventory", mock.Anything, "inv1").
		Return([]models.TicketInventoryRecord{{ID: 1, SerialNumber: "SN-100", Status: "ISSUED"}}, nil)

	w := httptest.NewRecorder()
	newCheckoutRouter(checkouts).ServeHTTP(w, httptest.NewRequest("GET", "/orders/inventory?invoice=inv1", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Tickets []models.TicketInventoryRecord `json:"tickets"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Tickets, 1)
	assert.Equal(t, "SN-100", resp.Tickets[0].SerialNumber)
}

func TestCheckoutHandler_InventoryMissingInvoice(t *testing.T) {
	checkouts := new(services.MockCheckoutService)
	checkouts.On("FetchTicketInventory", mock.Anything, "").Return(nil, models.ErrInvoiceNotFound)

	w := httptest.NewRecorder()
	newCheckoutRouter(checkouts).ServeHTTP(w, httptest.NewRequest("GET", "/orders/inventory", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}
