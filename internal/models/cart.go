package models

// Cart mirrors the server-side cart: the server-issued id plus the items
// reserved so far. The mirror is informational only; the backend owns the
// authoritative cart contents.
type Cart struct {
	ID    string         `json:"cart_id"`
	Items []ReservedItem `json:"items"`
}

// ReservedItem represents a successful ticket reservation held in the cart.
// It is appended only after the reservation call succeeds and is immutable
// once created.
type ReservedItem struct {
	TicketCategoryID int64   `json:"ticket_category_id"`
	CategoryName     string  `json:"category_name"`
	DisplayTitle     string  `json:"display_title"`
	Quantity         int     `json:"quantity"`
	Date             string  `json:"date"`
	EntryTime        string  `json:"entry_time,omitempty"`
	ExitTime         string  `json:"exit_time,omitempty"`
	UnitPrice        float64 `json:"unit_price"`
}

// Subtotal returns the line total for the item.
func (i ReservedItem) Subtotal() float64 {
	return i.UnitPrice * float64(i.Quantity)
}

// Total returns the sum of all line subtotals.
func (c Cart) Total() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.Subtotal()
	}
	return total
}
