package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"attraction-booking-portal/internal/models"
)

// writeJSON writes a JSON response
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Failed to encode JSON response: %v", err)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeError maps the service error taxonomy onto HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	var (
		transportErr   *models.TransportError
		malformedErr   *models.MalformedResponseError
		reservationErr *models.ReservationError
		cartReserveErr *models.CartReservationError
		checkoutErr    *models.CheckoutError
		stateErr       *models.StateError
	)

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, models.ErrAttractionNotFound),
		errors.Is(err, models.ErrOrderNotFound),
		errors.Is(err, models.ErrInvoiceNotFound):
		status = http.StatusNotFound
	case errors.Is(err, models.ErrInvalidQuantity),
		errors.Is(err, models.ErrEmptySelection):
		status = http.StatusBadRequest
	case errors.Is(err, models.ErrNoCart),
		errors.Is(err, models.ErrSlotUnavailable):
		status = http.StatusConflict
	case errors.As(err, &reservationErr),
		errors.As(err, &cartReserveErr),
		errors.As(err, &stateErr):
		status = http.StatusConflict
	case errors.As(err, &checkoutErr):
		status = http.StatusUnprocessableEntity
	case errors.As(err, &transportErr),
		errors.As(err, &malformedErr):
		status = http.StatusBadGateway
	}

	if status >= http.StatusInternalServerError {
		log.Printf("Request failed: %v", err)
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

// decodeJSON decodes a request body, rejecting unknown garbage loudly.
func decodeJSON(r *http.Request, dst interface{}) error {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return err
	}
	return nil
}
