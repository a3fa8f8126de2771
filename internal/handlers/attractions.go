package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"attraction-booking-portal/internal/models"
	"attraction-booking-portal/internal/services"
)

// AttractionHandler serves the catalog browsing and booking-panel queries.
type AttractionHandler struct {
	catalog services.CatalogServiceInterface
}

// NewAttractionHandler creates a new attraction handler.
func NewAttractionHandler(catalog services.CatalogServiceInterface) *AttractionHandler {
	return &AttractionHandler{catalog: catalog}
}

// List handles GET /attractions?search=&category=&page=&size=
func (h *AttractionHandler) List(w http.ResponseWriter, r *http.Request) {
	filters := services.AttractionFilters{
		Title:    r.URL.Query().Get("search"),
		Category: r.URL.Query().Get("category"),
		Page:     0,
		Size:     20,
	}
	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil || page < 0 {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "page must be a non-negative integer"})
			return
		}
		filters.Page = page
	}
	if sizeStr := r.URL.Query().Get("size"); sizeStr != "" {
		size, err := strconv.Atoi(sizeStr)
		if err != nil || size <= 0 {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "size must be a positive integer"})
			return
		}
		filters.Size = size
	}

	attractions, err := h.catalog.ListAttractions(r.Context(), filters)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"attractions": attractions})
}

// Combos handles GET /attractions/combos
func (h *AttractionHandler) Combos(w http.ResponseWriter, r *http.Request) {
	combos, err := h.catalog.ListCombos(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"combos": combos})
}

// Detail handles GET /attractions/{id}
func (h *AttractionHandler) Detail(w http.ResponseWriter, r *http.Request) {
	id, err := attractionID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	attraction, err := h.catalog.GetAttraction(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, attraction)
}

// Categories handles GET /attractions/{id}/categories: the ticket categories
// an attraction generally offers, independent of any date. Date-scoped pricing
// comes from Availability instead.
func (h *AttractionHandler) Categories(w http.ResponseWriter, r *http.Request) {
	id, err := attractionID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	categories, err := h.catalog.ListTicketCategories(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"categories": categories})
}

// Slots handles GET /attractions/{id}/slots?date=
func (h *AttractionHandler) Slots(w http.ResponseWriter, r *http.Request) {
	id, err := attractionID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	date := r.URL.Query().Get("date")
	if date == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "date is required"})
		return
	}

	slots, err := h.catalog.ListTimeSlots(r.Context(), id, date)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"slots": slots})
}

// Availability handles GET /attractions/{id}/availability?date=&entry=&exit=
func (h *AttractionHandler) Availability(w http.ResponseWriter, r *http.Request) {
	id, err := attractionID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	date := r.URL.Query().Get("date")
	if date == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "date is required"})
		return
	}

	categories, err := h.catalog.CheckAvailability(r.Context(), id,
		date, r.URL.Query().Get("entry"), r.URL.Query().Get("exit"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"categories": categories})
}

// selectionRequest carries a full booking-panel selection: the date, the slot
// for TIME_SLOT attractions (identified by entry time) and the ticket counts
// per category id.
type selectionRequest struct {
	Date       string         `json:"date"`
	EntryTime  string         `json:"entry_time,omitempty"`
	Quantities map[string]int `json:"quantities"`
}

// Quote handles POST /attractions/{id}/quote: it replays the selection through
// the booking flow and returns the running total without touching the cart.
func (h *AttractionHandler) Quote(w http.ResponseWriter, r *http.Request) {
	id, err := attractionID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	var req selectionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	flow, err := buildSelection(r.Context(), h.catalog, id, req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"state":         flow.State().String(),
		"total":         flow.Total(),
		"total_tickets": flow.TotalTickets(),
		"bookable":      flow.CanAddToCart(),
	})
}

func attractionID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid attraction id")
	}
	return id, nil
}

// buildSelection drives a fresh booking flow through the visitor's selection,
// executing each fetch command the flow emits against the catalog.
func buildSelection(ctx context.Context, catalog services.CatalogServiceInterface, attractionID int64, req selectionRequest) (*services.BookingFlow, error) {
	attraction, err := catalog.GetAttraction(ctx, attractionID)
	if err != nil {
		return nil, err
	}

	flow := services.NewBookingFlow(*attraction)
	cmd, err := flow.SelectDate(req.Date)
	if err != nil {
		return nil, err
	}

	if fetch, ok := cmd.(services.FetchTimeSlots); ok {
		slots, err := catalog.ListTimeSlots(ctx, fetch.AttractionID, fetch.Date)
		if err != nil {
			return nil, err
		}
		flow.ApplyTimeSlots(fetch.Generation, slots)

		index := -1
		for i, slot := range slots {
			if slot.EntryTime == req.EntryTime {
				index = i
				break
			}
		}
		if index < 0 {
			return nil, fmt.Errorf("no time slot with entry time %q on %s: %w", req.EntryTime, req.Date, models.ErrSlotUnavailable)
		}
		cmd, err = flow.SelectSlot(index)
		if err != nil {
			return nil, err
		}
	}

	fetch, ok := cmd.(services.FetchAvailability)
	if !ok {
		return nil, fmt.Errorf("unexpected flow command %T", cmd)
	}
	categories, err := catalog.CheckAvailability(ctx, fetch.AttractionID, fetch.Date, fetch.EntryTime, fetch.ExitTime)
	if err != nil {
		return nil, err
	}
	flow.ApplyAvailability(fetch.Generation, categories)

	for key, quantity := range req.Quantities {
		categoryID, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid ticket category id %q", key)
		}
		if err := flow.SetQuantity(categoryID, quantity); err != nil {
			return nil, err
		}
	}
	return flow, nil
}
