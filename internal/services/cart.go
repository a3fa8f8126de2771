package services

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"attraction-booking-portal/internal/models"
)

// CartStore persists the cart mirror between requests. The host application
// injects the implementation: the web portal keeps it in the visitor's session
// cookie, tests and CLI tools use MemoryCartStore. Core logic never touches
// ambient storage directly.
type CartStore interface {
	Load() (models.Cart, error)
	Save(cart models.Cart) error
	Clear() error
}

// MemoryCartStore is an in-process CartStore, safe for concurrent use.
type MemoryCartStore struct {
	mu   sync.Mutex
	cart models.Cart
}

// NewMemoryCartStore creates an empty in-memory cart store.
func NewMemoryCartStore() *MemoryCartStore {
	return &MemoryCartStore{}
}

func (s *MemoryCartStore) Load() (models.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart, nil
}

func (s *MemoryCartStore) Save(cart models.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = cart
	return nil
}

func (s *MemoryCartStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = models.Cart{}
	return nil
}

// CartService owns the server-side cart id and the local mirror of reserved
// items. A cart is created lazily on the first reservation and reused until
// explicitly cleared or checked out.
type CartService struct {
	backend  *BackendClient
	store    CartStore
	creation singleflight.Group
}

// NewCartService creates a cart service bound to a cart store.
func NewCartService(backend *BackendClient, store CartStore) *CartService {
	return &CartService{backend: backend, store: store}
}

// CartItemRequest describes one reservation to place: a ticket category with
// quantity plus the date/slot scope and display metadata for the mirror.
type CartItemRequest struct {
	TicketCategoryID int64
	CategoryName     string
	DisplayTitle     string
	Quantity         int
	Date             string
	EntryTime        string
	ExitTime         string
	UnitPrice        float64
}

// Wire shapes for the reservation endpoints. Entry and exit times serialize as
// null for OPEN attractions, matching what the backend expects.
type reserveTicketRequest struct {
	Quantity  int     `json:"quantity"`
	Date      string  `json:"date"`
	EntryTime *string `json:"entry_time"`
	ExitTime  *string `json:"exit_time"`
	CartID    string  `json:"cart_id"`
}

// Cart creation may report the new id as cart_id or id depending on backend
// version; cart_id wins when both are present.
type createCartResponse struct {
	CartID string `json:"cart_id"`
	ID     string `json:"id"`
}

// Cart returns the current cart mirror.
func (s *CartService) Cart() (models.Cart, error) {
	return s.store.Load()
}

// EnsureCart returns the existing cart id, creating a cart on the backend if
// none exists yet. Concurrent callers share a single creation request and all
// receive the same id.
func (s *CartService) EnsureCart(ctx context.Context) (string, error) {
	cart, err := s.store.Load()
	if err != nil {
		return "", fmt.Errorf("failed to load cart: %w", err)
	}
	if cart.ID != "" {
		return cart.ID, nil
	}

	id, err, _ := s.creation.Do("create-cart", func() (interface{}, error) {
		// Re-check under the guard: a concurrent caller may have won the race
		// and persisted an id already.
		cart, err := s.store.Load()
		if err != nil {
			return "", fmt.Errorf("failed to load cart: %w", err)
		}
		if cart.ID != "" {
			return cart.ID, nil
		}

		var resp createCartResponse
		if err := s.backend.Post(ctx, "create cart", "/carts/new", struct{}{}, &resp); err != nil {
			return "", err
		}
		cartID := resp.CartID
		if cartID == "" {
			cartID = resp.ID
		}
		if cartID == "" {
			return "", &models.MalformedResponseError{Op: "create cart", Reason: "response carries neither cart_id nor id"}
		}

		cart.ID = cartID
		if err := s.store.Save(cart); err != nil {
			return "", fmt.Errorf("failed to persist cart id: %w", err)
		}
		return cartID, nil
	})
	if err != nil {
		return "", err
	}
	return id.(string), nil
}

// AddItem reserves one ticket category on the backend and, on success, appends
// the reserved item to the local mirror. The mirror is never mutated before
// the reservation call succeeds.
func (s *CartService) AddItem(ctx context.Context, req CartItemRequest) (*models.ReservedItem, error) {
	if req.Quantity <= 0 {
		return nil, &models.ReservationError{
			TicketCategoryID: req.TicketCategoryID,
			CategoryName:     req.CategoryName,
			Err:              models.ErrInvalidQuantity,
		}
	}

	cartID, err := s.EnsureCart(ctx)
	if err != nil {
		return nil, err
	}

	body := reserveTicketRequest{
		Quantity:  req.Quantity,
		Date:      req.Date,
		EntryTime: nullableString(req.EntryTime),
		ExitTime:  nullableString(req.ExitTime),
		CartID:    cartID,
	}

	// The reservation object in the response is not used; the mirror entry is
	// built from the request that was accepted.
	path := fmt.Sprintf("/tickets/%d/reserve", req.TicketCategoryID)
	if err := s.backend.Post(ctx, "reserve ticket", path, body, nil); err != nil {
		return nil, &models.ReservationError{
			TicketCategoryID: req.TicketCategoryID,
			CategoryName:     req.CategoryName,
			Err:              err,
		}
	}

	item := models.ReservedItem{
		TicketCategoryID: req.TicketCategoryID,
		CategoryName:     req.CategoryName,
		DisplayTitle:     req.DisplayTitle,
		Quantity:         req.Quantity,
		Date:             req.Date,
		EntryTime:        req.EntryTime,
		ExitTime:         req.ExitTime,
		UnitPrice:        req.UnitPrice,
	}

	cart, err := s.store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	cart.ID = cartID
	cart.Items = append(cart.Items, item)
	if err := s.store.Save(cart); err != nil {
		return nil, fmt.Errorf("failed to persist cart: %w", err)
	}
	return &item, nil
}

// AddSelection reserves each requested category in order. The calls are
// independent: categories reserved before a failure stay reserved (and stay in
// the mirror), and the returned error names the category that failed. The
// successfully reserved items are returned in both outcomes.
func (s *CartService) AddSelection(ctx context.Context, requests []CartItemRequest) ([]models.ReservedItem, error) {
	if len(requests) == 0 {
		return nil, models.ErrEmptySelection
	}

	reserved := make([]models.ReservedItem, 0, len(requests))
	for _, req := range requests {
		item, err := s.AddItem(ctx, req)
		if err != nil {
			return reserved, err
		}
		reserved = append(reserved, *item)
	}
	return reserved, nil
}

// ReserveCart finalizes all items in the cart server-side, locking inventory
// ahead of payment.
func (s *CartService) ReserveCart(ctx context.Context) error {
	cart, err := s.store.Load()
	if err != nil {
		return fmt.Errorf("failed to load cart: %w", err)
	}
	if cart.ID == "" {
		return models.ErrNoCart
	}

	path := fmt.Sprintf("/carts/%s/reserve", cart.ID)
	if err := s.backend.Post(ctx, "reserve cart", path, struct{}{}, nil); err != nil {
		return &models.CartReservationError{CartID: cart.ID, Err: err}
	}
	return nil
}

// Clear drops the cart id and the item mirror. Used after a completed order or
// on explicit user action.
func (s *CartService) Clear() error {
	return s.store.Clear()
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
