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

func newCartRouter(catalog *services.MockCatalogService, carts *services.MockCartService) *chi.Mux {
	factory := func(store services.CartStore) services.CartServiceInterface { return carts }
	h := NewCartHandler(catalog, factory, sessions.NewCookieStore([]byte("test-secret")))
	r := chi.NewRouter()
	r.Route("/cart", func(r chi.Router) {
		r.Get("/", h.Show)
		r.Post("/items", h.AddItems)
		r.Post("/reserve", h.Reserve)
		r.Delete("/", h.Clear)
	})
	return r
}

func TestCartHandler_Show(t *testing.T) {
	carts := new(services.MockCartService)
	carts.On("Cart").Return(models.Cart{
		ID: "c1",
		Items: []models.ReservedItem{
			{TicketCategoryID: 7, CategoryName: "Adult", Quantity: 2, UnitPrice: 15},
		},
	}, nil)

	w := httptest.NewRecorder()
	newCartRouter(new(services.MockCatalogService), carts).ServeHTTP(w, httptest.NewRequest("GET", "/cart", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		CartID string                `json:"cart_id"`
		Items  []models.ReservedItem `json:"items"`
		Total  float64               `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "c1", body.CartID)
	require.Len(t, body.Items, 1)
	assert.Equal(t, 30.0, body.Total)
}

func TestCartHandler_AddItems(t *testing.T) {
	catalog := new(services.MockCatalogService)
	catalog.On("GetAttraction", mock.Anything, int64(7)).
		Return(&models.Attraction{ID: 7, Title: "Desert Safari", TimingType: models.TimingOpen}, nil)
	catalog.On("CheckAvailability", mock.Anything, int64(7), "2024-06-01", "", "").
		Return([]models.TicketCategory{{ID: 7, Name: "Adult", Price: 15}}, nil)

	expectedRequests := []services.CartItemRequest{{
		TicketCategoryID: 7,
		CategoryName:     "Adult",
		DisplayTitle:     "Desert Safari",
		Quantity:         2,
		Date:             "2024-06-01",
		UnitPrice:        15,
	}}
	reserved := []models.ReservedItem{{
		TicketCategoryID: 7,
		CategoryName:     "Adult",
		DisplayTitle:     "Desert Safari",
		Quantity:         2,
		Date:             "2024-06-01",
		UnitPrice:        15,
	}}

	carts := new(services.MockCartService)
	carts.On("AddSelection", mock.Anything, expectedRequests).Return(reserved, nil)
	carts.On("Cart").Return(models.Cart{ID: "c1", Items: reserved}, nil)

	body := `{"attraction_id": 7, "date": "2024-06-01", "quantities": {"7": 2}}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/cart/items", strings.NewReader(body))
	newCartRouter(catalog, carts).ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		CartID   string                `json:"cart_id"`
		Reserved []models.ReservedItem `json:"reserved"`
		Total    float64               `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "c1", resp.CartID)
	require.Len(t, resp.Reserved, 1)
	assert.Equal(t, 30.0, resp.Total)

	catalog.AssertExpectations(t)
	carts.AssertExpectations(t)
}

func TestCartHandler_AddItemsPartialFailure(t *testing.T) {
	catalog := new(services.MockCatalogService)
	catalog.On("GetAttraction", mock.Anything, int64(7)).
		Return(&models.Attraction{ID: 7, Title: "Desert Safari", TimingType: models.TimingOpen}, nil)
	catalog.On("CheckAvailability", mock.Anything, int64(7), "2024-06-01", "", "").
		Return([]models.TicketCategory{
			{ID: 7, Name: "Adult", Price: 15},
			{ID: 8, Name: "Child", Price: 10},
		}, nil)

	reserved := []models.ReservedItem{{TicketCategoryID: 7, CategoryName: "Adult", Quantity: 1}}
	reservationErr := &models.ReservationError{TicketCategoryID: 8, CategoryName: "Child", Err: models.ErrSlotUnavailable}

	carts := new(services.MockCartService)
	carts.On("AddSelection", mock.Anything, mock.Anything).Return(reserved, reservationErr)

	body := `{"attraction_id": 7, "date": "2024-06-01", "quantities": {"7": 1, "8": 1}}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/cart/items", strings.NewReader(body))
	newCartRouter(catalog, carts).ServeHTTP(w, req)

	require.Equal(t, http.StatusConflict, w.Code)

	var resp struct {
		Error    string                `json:"error"`
		Reserved []models.ReservedItem `json:"reserved"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Error, "Child")
	require.Len(t, resp.Reserved, 1)
	assert.Equal(t, int64(7), resp.Reserved[0].TicketCategoryID)
}

func TestCartHandler_AddItemsRejectsBadBody(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/cart/items", strings.NewReader("not json"))
	newCartRouter(new(services.MockCatalogService), new(services.MockCartService)).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCartHandler_Reserve(t *testing.T) {
	carts := new(services.MockCartService)
	carts.On("ReserveCart", mock.Anything).Return(nil)
	carts.On("Cart").Return(models.Cart{ID: "c1"}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/cart/reserve", nil)
	newCartRouter(new(services.MockCatalogService), carts).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	carts.AssertExpectations(t)
}

func TestCartHandler_ReserveWithoutCart(t *testing.T) {
	carts := new(services.MockCartService)
	carts.On("ReserveCart", mock.Anything).Return(models.ErrNoCart)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/cart/reserve", nil)
	newCartRouter(new(services.MockCatalogService), carts).ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCartHandler_Clear(t *testing.T) {
	carts := new(services.MockCartService)
	carts.On("Clear").Return(nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("DELETE", "/cart", nil)
	newCartRouter(new(services.MockCatalogService), carts).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	carts.AssertExpectations(t)
}
