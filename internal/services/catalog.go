package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"attraction-booking-portal/internal/models"
)

// CatalogService provides read-only queries against the attraction catalog.
// All operations are idempotent and perform no automatic retries; surfacing a
// retry affordance is the caller's concern.
type CatalogService struct {
	backend *BackendClient
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(backend *BackendClient) *CatalogService {
	return &CatalogService{backend: backend}
}

// AttractionFilters represents search filters for the attraction list.
type AttractionFilters struct {
	Title    string
	Category string
	Page     int
	Size     int
}

type attractionPage struct {
	Content []models.Attraction `json:"content"`
}

type comboPage struct {
	Content []models.Combo `json:"content"`
}

type categoryPage struct {
	Content []models.TicketCategory `json:"content"`
}

// ListAttractions returns a page of active attractions matching the filters.
func (s *CatalogService) ListAttractions(ctx context.Context, filters AttractionFilters) ([]models.Attraction, error) {
	if filters.Page < 0 {
		return nil, fmt.Errorf("page must not be negative, got %d", filters.Page)
	}
	if filters.Size <= 0 {
		filters.Size = 20
	}

	query := url.Values{}
	if filters.Title != "" {
		query.Set("title", filters.Title)
	}
	query.Set("activeAttractions", "true")
	query.Set("includeAttachments", "true")
	query.Set("page", strconv.Itoa(filters.Page))
	query.Set("size", strconv.Itoa(filters.Size))
	if filters.Category != "" {
		query.Set("category", filters.Category)
	}

	var page attractionPage
	if err := s.backend.Get(ctx, "list attractions", "/attractions/single", query, &page); err != nil {
		return nil, err
	}
	return page.Content, nil
}

// ListCombos returns the available combo bundles.
func (s *CatalogService) ListCombos(ctx context.Context) ([]models.Combo, error) {
	var page comboPage
	if err := s.backend.Get(ctx, "list combos", "/attractions/combo", nil, &page); err != nil {
		return nil, err
	}
	return page.Content, nil
}

// GetAttraction returns a single attraction by id.
func (s *CatalogService) GetAttraction(ctx context.Context, id int64) (*models.Attraction, error) {
	var attraction models.Attraction
	err := s.backend.Get(ctx, "get attraction", fmt.Sprintf("/attractions/single/%d", id), nil, &attraction)
	if err != nil {
		var transportErr *models.TransportError
		if errors.As(err, &transportErr) && transportErr.Status == http.StatusNotFound {
			return nil, fmt.Errorf("attraction %d: %w", id, models.ErrAttractionNotFound)
		}
		return nil, err
	}
	return &attraction, nil
}

// ListTicketCategories returns the ticket categories generally offered by an
// attraction, independent of any date.
func (s *CatalogService) ListTicketCategories(ctx context.Context, attractionID int64) ([]models.TicketCategory, error) {
	var page categoryPage
	path := fmt.Sprintf("/attractions/single/%d/ticket_categories", attractionID)
	if err := s.backend.Get(ctx, "list ticket categories", path, nil, &page); err != nil {
		return nil, err
	}
	return page.Content, nil
}

// ListTimeSlots returns the entry windows for a TIME_SLOT attraction on a date,
// in the order the backend reports them.
func (s *CatalogService) ListTimeSlots(ctx context.Context, attractionID int64, date string) ([]models.TimeSlot, error) {
	query := url.Values{}
	query.Set("date", date)

	var slots []models.TimeSlot
	path := fmt.Sprintf("/attractions/single/%d/time_slots/available", attractionID)
	if err := s.backend.Get(ctx, "list time slots", path, query, &slots); err != nil {
		return nil, err
	}
	return slots, nil
}

// Availability response wire shapes. Categories come back grouped; each group
// carries the tickets with live price and discount.
type availabilityResponse struct {
	Content []availabilityGroup `json:"content"`
}

type availabilityGroup struct {
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Tickets     []availabilityTicket `json:"tickets"`
}

type availabilityTicket struct {
	ID              int64    `json:"id"`
	Price           float64  `json:"price"`
	DiscountedPrice *float64 `json:"discounted_price"`
	TicketType      struct {
		Name string `json:"name"`
	} `json:"ticket_type"`
}

// CheckAvailability returns the ticket categories bookable for a date, with
// live pricing, flattened from the grouped response. Only the first group is
// used; multiple simultaneous category groups are not supported by this design.
// Entry and exit times scope the query to a time slot and may be empty for
// OPEN attractions.
func (s *CatalogService) CheckAvailability(ctx context.Context, attractionID int64, date, entryTime, exitTime string) ([]models.TicketCategory, error) {
	query := url.Values{}
	query.Set("date", date)
	if entryTime != "" {
		query.Set("entry", entryTime)
	}
	if exitTime != "" {
		query.Set("exit", exitTime)
	}

	var resp availabilityResponse
	path := fmt.Sprintf("/attractions/single/%d/ticket_categories/available", attractionID)
	if err := s.backend.Get(ctx, "check availability", path, query, &resp); err != nil {
		return nil, err
	}

	if len(resp.Content) == 0 {
		return []models.TicketCategory{}, nil
	}

	group := resp.Content[0]
	categories := make([]models.TicketCategory, 0, len(group.Tickets))
	for _, ticket := range group.Tickets {
		categories = append(categories, models.TicketCategory{
			ID:              ticket.ID,
			Name:            ticket.TicketType.Name,
			GroupName:       group.Name,
			Description:     group.Description,
			Price:           ticket.Price,
			DiscountedPrice: ticket.DiscountedPrice,
		})
	}
	return categories, nil
}
