package services

import (
	"context"

	"attraction-booking-portal/internal/models"
)

// CatalogServiceInterface defines the interface for catalog queries
type CatalogServiceInterface interface {
	ListAttractions(ctx context.Context, filters AttractionFilters) ([]models.Attraction, error)
	ListCombos(ctx context.Context) ([]models.Combo, error)
	GetAttraction(ctx context.Context, id int64) (*models.Attraction, error)
	ListTicketCategories(ctx context.Context, attractionID int64) ([]models.TicketCategory, error)
	ListTimeSlots(ctx context.Context, attractionID int64, date string) ([]models.TimeSlot, error)
	CheckAvailability(ctx context.Context, attractionID int64, date, entryTime, exitTime string) ([]models.TicketCategory, error)
}

// CartServiceInterface defines the interface for cart operations
type CartServiceInterface interface {
	Cart() (models.Cart, error)
	EnsureCart(ctx context.Context) (string, error)
	AddItem(ctx context.Context, req CartItemRequest) (*models.ReservedItem, error)
	AddSelection(ctx context.Context, requests []CartItemRequest) ([]models.ReservedItem, error)
	ReserveCart(ctx context.Context) error
	Clear() error
}

// CheckoutServiceInterface defines the interface for checkout and
// post-purchase retrieval
type CheckoutServiceInterface interface {
	Checkout(ctx context.Context, customer models.CustomerInfo) (*models.Order, error)
	FetchInvoice(ctx context.Context, orderID string) ([]byte, string, error)
	FetchTicketAttachments(ctx context.Context, invoiceID string) ([]models.Attachment, error)
	FetchTicketInventory(ctx context.Context, invoiceID string) ([]models.TicketInventoryRecord, error)
}
