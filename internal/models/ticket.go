package models

// TicketCategory represents one purchasable ticket kind for an attraction,
// with live pricing as returned by the availability endpoint.
type TicketCategory struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	GroupName       string   `json:"group_name,omitempty"`
	Description     string   `json:"description,omitempty"`
	Price           float64  `json:"price"`
	DiscountedPrice *float64 `json:"discounted_price,omitempty"`
}

// EffectivePrice returns the discounted price when present, the base price otherwise.
func (c TicketCategory) EffectivePrice() float64 {
	if c.DiscountedPrice != nil {
		return *c.DiscountedPrice
	}
	return c.Price
}

// TicketInventoryRecord represents an issued ticket's status and validity
// window, queried post-purchase by invoice.
type TicketInventoryRecord struct {
	ID           int64  `json:"id"`
	SerialNumber string `json:"serial_number,omitempty"`
	Status       string `json:"status"`
	ValidFrom    string `json:"valid_from,omitempty"`
	ValidUntil   string `json:"valid_until,omitempty"`
}
