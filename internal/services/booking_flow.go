package services

import (
	"fmt"
	"sync"
	"time"

	"attraction-booking-portal/internal/models"
)

// FlowState names a position in the booking flow.
type FlowState int

const (
	FlowIdle FlowState = iota
	FlowDateSelected
	FlowSlotSelected
	FlowCategoriesLoaded
	FlowQuantitiesChosen
	FlowReserving
	FlowReserved
)

func (s FlowState) String() string {
	switch s {
	case FlowIdle:
		return "idle"
	case FlowDateSelected:
		return "date_selected"
	case FlowSlotSelected:
		return "slot_selected"
	case FlowCategoriesLoaded:
		return "categories_loaded"
	case FlowQuantitiesChosen:
		return "quantities_chosen"
	case FlowReserving:
		return "reserving"
	case FlowReserved:
		return "reserved"
	default:
		return "unknown"
	}
}

// FlowCommand is a side effect a transition asks the host to run. The flow
// itself performs no I/O; the host executes the command and feeds the result
// back through ApplyTimeSlots or ApplyAvailability with the command's
// generation stamp.
type FlowCommand interface {
	flowCommand()
}

// FetchTimeSlots asks for the entry windows of a TIME_SLOT attraction.
type FetchTimeSlots struct {
	AttractionID int64
	Date         string
	Generation   uint64
}

func (FetchTimeSlots) flowCommand() {}

// FetchAvailability asks for the bookable ticket categories with live pricing.
// EntryTime and ExitTime are empty for OPEN attractions.
type FetchAvailability struct {
	AttractionID int64
	Date         string
	EntryTime    string
	ExitTime     string
	Generation   uint64
}

func (FetchAvailability) flowCommand() {}

// BookingFlow is the per-attraction selection state machine:
// date, time slot, ticket categories and quantities.
//
// Every transition that invalidates downstream state bumps a generation
// counter, and fetch results are only applied when their stamp still matches.
// A stale response arriving after a reset is discarded, never merged.
type BookingFlow struct {
	mu sync.Mutex

	attraction models.Attraction
	state      FlowState
	generation uint64

	date       string
	slots      []models.TimeSlot
	slot       *models.TimeSlot
	categories []models.TicketCategory
	quantities map[int64]int
}

// NewBookingFlow creates an idle flow for one attraction.
func NewBookingFlow(attraction models.Attraction) *BookingFlow {
	return &BookingFlow{
		attraction: attraction,
		state:      FlowIdle,
		quantities: make(map[int64]int),
	}
}

// State returns the current flow state.
func (f *BookingFlow) State() FlowState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Attraction returns the attraction this flow books.
func (f *BookingFlow) Attraction() models.Attraction {
	return f.attraction
}

// Date returns the selected date, empty while idle.
func (f *BookingFlow) Date() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.date
}

// Slots returns the fetched time slots for the selected date.
func (f *BookingFlow) Slots() []models.TimeSlot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.slots
}

// SelectedSlot returns the chosen slot, nil when none is chosen.
func (f *BookingFlow) SelectedSlot() *models.TimeSlot {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.slot == nil {
		return nil
	}
	slot := *f.slot
	return &slot
}

// Categories returns the fetched ticket categories.
func (f *BookingFlow) Categories() []models.TicketCategory {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.categories
}

// Quantity returns the chosen quantity for a category.
func (f *BookingFlow) Quantity(categoryID int64) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.quantities[categoryID]
}

// SelectDate moves the flow to DateSelected and clears all downstream state:
// slots, selected slot, categories, quantities. The reset is total so a new
// date's prices can never mix with a stale category list. The returned command
// is the fetch the host must run next.
func (f *BookingFlow) SelectDate(date string) (FlowCommand, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state == FlowReserving {
		return nil, &models.StateError{Op: "select date", State: f.state.String()}
	}

	f.generation++
	f.date = date
	f.slots = nil
	f.slot = nil
	f.categories = nil
	f.quantities = make(map[int64]int)
	f.state = FlowDateSelected

	if f.attraction.TimingType == models.TimingTimeSlot {
		return FetchTimeSlots{
			AttractionID: f.attraction.ID,
			Date:         date,
			Generation:   f.generation,
		}, nil
	}
	return FetchAvailability{
		AttractionID: f.attraction.ID,
		Date:         date,
		Generation:   f.generation,
	}, nil
}

// ApplyTimeSlots feeds a completed slot fetch back into the flow. The result
// is discarded (returns false) when the flow has moved on since the fetch was
// issued.
func (f *BookingFlow) ApplyTimeSlots(generation uint64, slots []models.TimeSlot) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if generation != f.generation || f.state != FlowDateSelected {
		return false
	}
	f.slots = slots
	return true
}

// SelectSlot picks a time slot by its position in the fetched list. Full slots
// (capacity 0) are rejected and the state does not advance. The returned
// command fetches availability scoped to the slot's entry window.
func (f *BookingFlow) SelectSlot(index int) (FlowCommand, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.attraction.TimingType != models.TimingTimeSlot {
		return nil, &models.StateError{Op: "select slot", State: "open attraction"}
	}
	if f.state != FlowDateSelected && f.state != FlowSlotSelected {
		return nil, &models.StateError{Op: "select slot", State: f.state.String()}
	}
	if index < 0 || index >= len(f.slots) {
		return nil, fmt.Errorf("slot index %d out of range", index)
	}

	slot := f.slots[index]
	if !slot.Available() {
		return nil, models.ErrSlotUnavailable
	}

	f.generation++
	f.slot = &slot
	f.categories = nil
	f.quantities = make(map[int64]int)
	f.state = FlowSlotSelected

	return FetchAvailability{
		AttractionID: f.attraction.ID,
		Date:         f.date,
		EntryTime:    slot.EntryTime,
		ExitTime:     slot.ExitTime,
		Generation:   f.generation,
	}, nil
}

// ApplyAvailability feeds a completed availability fetch back into the flow,
// moving it to CategoriesLoaded with all quantities at zero. Stale results are
// discarded.
func (f *BookingFlow) ApplyAvailability(generation uint64, categories []models.TicketCategory) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if generation != f.generation {
		return false
	}
	if f.state != FlowDateSelected && f.state != FlowSlotSelected {
		return false
	}

	f.categories = categories
	f.quantities = make(map[int64]int)
	for _, c := range categories {
		f.quantities[c.ID] = 0
	}
	f.state = FlowCategoriesLoaded
	return true
}

// SetQuantity sets the ticket count for a loaded category. The flow sits in
// QuantitiesChosen while any quantity is positive and drops back to
// CategoriesLoaded when they are all zero; moving between the two is free.
func (f *BookingFlow) SetQuantity(categoryID int64, quantity int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != FlowCategoriesLoaded && f.state != FlowQuantitiesChosen {
		return &models.StateError{Op: "set quantity", State: f.state.String()}
	}
	if quantity < 0 {
		return models.ErrInvalidQuantity
	}
	if _, ok := f.quantities[categoryID]; !ok {
		return fmt.Errorf("unknown ticket category %d", categoryID)
	}

	f.quantities[categoryID] = quantity
	if f.totalTicketsLocked() > 0 {
		f.state = FlowQuantitiesChosen
	} else {
		f.state = FlowCategoriesLoaded
	}
	return nil
}

// Total returns the running total: sum over selected categories of the
// discounted price when present, the base price otherwise, times quantity.
// It is recomputed from current state on every call, never cached.
func (f *BookingFlow) Total() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()

	var total float64
	for _, c := range f.categories {
		qty := f.quantities[c.ID]
		if qty > 0 {
			total += c.EffectivePrice() * float64(qty)
		}
	}
	return total
}

// TotalTickets returns the number of tickets currently selected.
func (f *BookingFlow) TotalTickets() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.totalTicketsLocked()
}

func (f *BookingFlow) totalTicketsLocked() int {
	var n int
	for _, qty := range f.quantities {
		n += qty
	}
	return n
}

// CanAddToCart reports whether at least one ticket is selected and the flow is
// not already reserving.
func (f *BookingFlow) CanAddToCart() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state == FlowQuantitiesChosen
}

// BeginAddToCart moves the flow to Reserving and returns the reservation
// requests for every category with a positive quantity, in category order.
func (f *BookingFlow) BeginAddToCart() ([]CartItemRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != FlowQuantitiesChosen {
		return nil, &models.StateError{Op: "add to cart", State: f.state.String()}
	}

	var entryTime, exitTime string
	if f.slot != nil {
		entryTime = f.slot.EntryTime
		exitTime = f.slot.ExitTime
	}

	var requests []CartItemRequest
	for _, c := range f.categories {
		qty := f.quantities[c.ID]
		if qty <= 0 {
			continue
		}
		requests = append(requests, CartItemRequest{
			TicketCategoryID: c.ID,
			CategoryName:     c.Name,
			DisplayTitle:     f.attraction.Title,
			Quantity:         qty,
			Date:             f.date,
			EntryTime:        entryTime,
			ExitTime:         exitTime,
			UnitPrice:        c.EffectivePrice(),
		})
	}
	if len(requests) == 0 {
		return nil, models.ErrEmptySelection
	}

	f.state = FlowReserving
	return requests, nil
}

// FinishAddToCart completes a Reserving cycle. On success the local selection
// is cleared and the flow parks in Reserved, ready for a fresh SelectDate. On
// failure the selection is kept so the visitor can retry.
func (f *BookingFlow) FinishAddToCart(success bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != FlowReserving {
		return
	}
	if !success {
		f.state = FlowQuantitiesChosen
		return
	}

	f.generation++
	f.date = ""
	f.slots = nil
	f.slot = nil
	f.categories = nil
	f.quantities = make(map[int64]int)
	f.state = FlowReserved
}
