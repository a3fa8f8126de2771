package models

// TimingType selects the booking flow branch for an attraction.
type TimingType string

const (
	// TimingTimeSlot requires the visitor to pick an entry window.
	TimingTimeSlot TimingType = "TIME_SLOT"
	// TimingOpen allows entry any time on the selected date.
	TimingOpen TimingType = "OPEN"
)

// Attraction represents a bookable venue or experience.
type Attraction struct {
	ID          int64        `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Category    string       `json:"category,omitempty"`
	TimingType  TimingType   `json:"timing_type"`
	BasePrice   float64      `json:"base_price"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

// Combo represents a bundle of attractions sold as one ticket.
type Combo struct {
	ID          int64        `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	BasePrice   float64      `json:"base_price"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

// Attachment is a downloadable or displayable artifact (image, PDF) hosted by the backend.
type Attachment struct {
	PublicURL string `json:"public_url"`
}

// TimeSlot represents an entry window for a TIME_SLOT attraction.
// Capacity 0 means the slot is full and must not be selectable.
type TimeSlot struct {
	EntryTime string `json:"entry_time"`
	ExitTime  string `json:"exit_time"`
	Capacity  int    `json:"capacity"`
}

// Available reports whether the slot can still be booked.
func (s TimeSlot) Available() bool {
	return s.Capacity != 0
}
