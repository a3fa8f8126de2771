package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"attraction-booking-portal/internal/models"
)

// MockCatalogService is a testify mock for CatalogServiceInterface
type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) ListAttractions(ctx context.Context, filters AttractionFilters) ([]models.Attraction, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Attraction), args.Error(1)
}

func (m *MockCatalogService) ListCombos(ctx context.Context) ([]models.Combo, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Combo), args.Error(1)
}

func (m *MockCatalogService) GetAttraction(ctx context.Context, id int64) (*models.Attraction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Attraction), args.Error(1)
}

func (m *MockCatalogService) ListTicketCategories(ctx context.Context, attractionID int64) ([]models.TicketCategory, error) {
	args := m.Called(ctx, attractionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TicketCategory), args.Error(1)
}

func (m *MockCatalogService) ListTimeSlots(ctx context.Context, attractionID int64, date string) ([]models.TimeSlot, error) {
	args := m.Called(ctx, attractionID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TimeSlot), args.Error(1)
}

func (m *MockCatalogService) CheckAvailability(ctx context.Context, attractionID int64, date, entryTime, exitTime string) ([]models.TicketCategory, error) {
	args := m.Called(ctx, attractionID, date, entryTime, exitTime)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TicketCategory), args.Error(1)
}

// MockCartService is a testify mock for CartServiceInterface
type MockCartService struct {
	mock.Mock
}

func (m *MockCartService) Cart() (models.Cart, error) {
	args := m.Called()
	return args.Get(0).(models.Cart), args.Error(1)
}

func (m *MockCartService) EnsureCart(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockCartService) AddItem(ctx context.Context, req CartItemRequest) (*models.ReservedItem, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ReservedItem), args.Error(1)
}

func (m *MockCartService) AddSelection(ctx context.Context, requests []CartItemRequest) ([]models.ReservedItem, error) {
	args := m.Called(ctx, requests)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ReservedItem), args.Error(1)
}

func (m *MockCartService) ReserveCart(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCartService) Clear() error {
	args := m.Called()
	return args.Error(0)
}

// MockCheckoutService is a testify mock for CheckoutServiceInterface
type MockCheckoutService struct {
	mock.Mock
}

func (m *MockCheckoutService) Checkout(ctx context.Context, customer models.CustomerInfo) (*models.Order, error) {
	args := m.Called(ctx, customer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockCheckoutService) FetchInvoice(ctx context.Context, orderID string) ([]byte, string, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).([]byte), args.String(1), args.Error(2)
}

func (m *MockCheckoutService) FetchTicketAttachments(ctx context.Context, invoiceID string) ([]models.Attachment, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Attachment), args.Error(1)
}

func (m *MockCheckoutService) FetchTicketInventory(ctx context.Context, invoiceID string) ([]models.TicketInventoryRecord, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TicketInventoryRecord), args.Error(1)
}
