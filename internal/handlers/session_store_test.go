package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"attraction-booking-portal/internal/models"
)

func testCart() models.Cart {
	return models.Cart{
		ID: "c1",
		Items: []models.ReservedItem{
			{TicketCategoryID: 7, CategoryName: "Adult", DisplayTitle: "Desert Safari", Quantity: 2, Date: "2024-06-01", UnitPrice: 15},
		},
	}
}

// Saves through one request/response pair and loads through a follow-up
// request carrying the same cookies, the way a browser would.
func TestSessionCartStore_RoundTrip(t *testing.T) {
	cookieStore := sessions.NewCookieStore([]byte("test-secret"))

	w := httptest.NewRecorder()
	r := httptest.NewRequest("POST", "/cart/items", nil)
	store := NewSessionCartStore(cookieStore, r, w)
	require.NoError(t, store.Save(testCart()))

	next := httptest.NewRequest("GET", "/cart", nil)
	for _, cookie := range w.Result().Cookies() {
		next.AddCookie(cookie)
	}
	store = NewSessionCartStore(cookieStore, next, httptest.NewRecorder())

	cart, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "c1", cart.ID)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "Desert Safari", cart.Items[0].DisplayTitle)
	assert.Equal(t, 30.0, cart.Total())
}

func TestSessionCartStore_LoadWithoutSession(t *testing.T) {
	cookieStore := sessions.NewCookieStore([]byte("test-secret"))
	store := NewSessionCartStore(cookieStore, httptest.NewRequest("GET", "/cart", nil), httptest.NewRecorder())

	cart, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, cart.ID)
	assert.Empty(t, cart.Items)
}

func TestSessionCartStore_LoadToleratesBrokenCookie(t *testing.T) {
	cookieStore := sessions.NewCookieStore([]byte("test-secret"))
	r := httptest.NewRequest("GET", "/cart", nil)
	r.AddCookie(&http.Cookie{Name: sessionName, Value: "garbage"})

	store := NewSessionCartStore(cookieStore, r, httptest.NewRecorder())
	cart, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, cart.ID)
}

func TestSessionCartStore_Clear(t *testing.T) {
	cookieStore := sessions.NewCookieStore([]byte("test-secret"))

	w := httptest.NewRecorder()
	r := httptest.NewRequest("POST", "/cart/items", nil)
	store := NewSessionCartStore(cookieStore, r, w)
	require.NoError(t, store.Save(testCart()))

	cleared := httptest.NewRequest("DELETE", "/cart", nil)
	for _, cookie := range w.Result().Cookies() {
		cleared.AddCookie(cookie)
	}
	clearedW := httptest.NewRecorder()
	store = NewSessionCartStore(cookieStore, cleared, clearedW)
	require.NoError(t, store.Clear())

	after := httptest.NewRequest("GET", "/cart", nil)
	for _, cookie := range clearedW.Result().Cookies() {
		after.AddCookie(cookie)
	}
	store = NewSessionCartStore(cookieStore, after, httptest.NewRecorder())

	cart, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, cart.ID)
	assert.Empty(t, cart.Items)
}
