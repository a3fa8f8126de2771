package handlers

import (
	"encoding/gob"
	"fmt"
	"net/http"

	"github.com/gorilla/sessions"

	"attraction-booking-portal/internal/models"
	"attraction-booking-portal/internal/services"
)

const (
	sessionName    = "booking-session"
	sessionCartKey = "cart"
)

func init() {
	// Register types for session serialization
	gob.Register(&models.Cart{})
	gob.Register(models.ReservedItem{})
	gob.Register([]models.ReservedItem{})
}

// sessionCartStore persists the cart mirror in the visitor's cookie session.
// It is the web-portal analogue of the original localStorage cart id: the cart
// survives page reloads until it is cleared or checked out.
type sessionCartStore struct {
	store sessions.Store
	r     *http.Request
	w     http.ResponseWriter
}

// NewSessionCartStore binds a cart store to one request/response pair.
func NewSessionCartStore(store sessions.Store, r *http.Request, w http.ResponseWriter) services.CartStore {
	return &sessionCartStore{store: store, r: r, w: w}
}

func (s *sessionCartStore) Load() (models.Cart, error) {
	session, err := s.store.Get(s.r, sessionName)
	if err != nil {
		// A broken cookie means no cart; a fresh session replaces it on save.
		return models.Cart{}, nil
	}
	if cart, ok := session.Values[sessionCartKey].(*models.Cart); ok && cart != nil {
		return *cart, nil
	}
	return models.Cart{}, nil
}

func (s *sessionCartStore) Save(cart models.Cart) error {
	session, _ := s.store.Get(s.r, sessionName)
	session.Values[sessionCartKey] = &cart
	if err := session.Save(s.r, s.w); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (s *sessionCartStore) Clear() error {
	session, _ := s.store.Get(s.r, sessionName)
	delete(session.Values, sessionCartKey)
	if err := session.Save(s.r, s.w); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}
