package handlers

import (
	"net/http"

	"github.com/gorilla/sessions"

	"attraction-booking-portal/internal/models"
	"attraction-booking-portal/internal/services"
)

// CartServiceFactory builds a cart service bound to a request's cart store.
// The indirection keeps the handler testable with a mocked cart service.
type CartServiceFactory func(store services.CartStore) services.CartServiceInterface

// CartHandler handles the shopping cart endpoints.
type CartHandler struct {
	catalog services.CatalogServiceInterface
	carts   CartServiceFactory
	store   sessions.Store
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(catalog services.CatalogServiceInterface, carts CartServiceFactory, store sessions.Store) *CartHandler {
	return &CartHandler{catalog: catalog, carts: carts, store: store}
}

func (h *CartHandler) cartService(w http.ResponseWriter, r *http.Request) services.CartServiceInterface {
	return h.carts(NewSessionCartStore(h.store, r, w))
}

// Show handles GET /cart
func (h *CartHandler) Show(w http.ResponseWriter, r *http.Request) {
	cart, err := h.cartService(w, r).Cart()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"cart_id": cart.ID,
		"items":   cart.Items,
		"total":   cart.Total(),
	})
}

// addItemsRequest is a booking-panel selection aimed at a specific attraction.
type addItemsRequest struct {
	AttractionID int64 `json:"attraction_id"`
	selectionRequest
}

// AddItems handles POST /cart/items: it replays the visitor's selection
// through the booking flow, then reserves each chosen category. Categories
// reserved before a failure stay reserved; the response names the one that
// failed so the visitor sees exactly what is held.
func (h *CartHandler) AddItems(w http.ResponseWriter, r *http.Request) {
	var req addItemsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	flow, err := buildSelection(r.Context(), h.catalog, req.AttractionID, req.selectionRequest)
	if err != nil {
		writeError(w, err)
		return
	}

	driver := services.NewFlowDriver(flow, h.catalog)
	carts := h.cartService(w, r)
	reserved, err := driver.AddToCart(r.Context(), carts)
	if err != nil {
		// Surface the partial result alongside the failure: earlier categories
		// remain reserved server-side.
		writeJSON(w, http.StatusConflict, map[string]interface{}{
			"error":    err.Error(),
			"reserved": reserved,
		})
		return
	}

	cart, err := carts.Cart()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"cart_id":  cart.ID,
		"reserved": reserved,
		"items":    cart.Items,
		"total":    cart.Total(),
	})
}

// Reserve handles POST /cart/reserve: it locks the cart's inventory ahead of
// checkout.
func (h *CartHandler) Reserve(w http.ResponseWriter, r *http.Request) {
	carts := h.cartService(w, r)
	if err := carts.ReserveCart(r.Context()); err != nil {
		writeError(w, err)
		return
	}

	cart, err := carts.Cart()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"cart_id":  cart.ID,
		"reserved": true,
	})
}

// Clear handles DELETE /cart
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.cartService(w, r).Clear(); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"cart_id": "", "items": []models.ReservedItem{}})
}
