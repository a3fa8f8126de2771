package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"attraction-booking-portal/internal/models"
)

// stubCatalog lets each test script the fetch behavior per call.
type stubCatalog struct {
	listTimeSlots     func(ctx context.Context, attractionID int64, date string) ([]models.TimeSlot, error)
	checkAvailability func(ctx context.Context, attractionID int64, date, entryTime, exitTime string) ([]models.TicketCategory, error)
}

func (s *stubCatalog) ListAttractions(ctx context.Context, filters AttractionFilters) ([]models.Attraction, error) {
	return nil, nil
}

func (s *stubCatalog) ListCombos(ctx context.Context) ([]models.Combo, error) {
	return nil, nil
}

func (s *stubCatalog) GetAttraction(ctx context.Context, id int64) (*models.Attraction, error) {
	return nil, nil
}

func (s *stubCatalog) ListTicketCategories(ctx context.Context, attractionID int64) ([]models.TicketCategory, error) {
	return nil, nil
}

func (s *stubCatalog) ListTimeSlots(ctx context.Context, attractionID int64, date string) ([]models.TimeSlot, error) {
	return s.listTimeSlots(ctx, attractionID, date)
}

func (s *stubCatalog) CheckAvailability(ctx context.Context, attractionID int64, date, entryTime, exitTime string) ([]models.TicketCategory, error) {
	return s.checkAvailability(ctx, attractionID, date, entryTime, exitTime)
}

func TestFlowDriver_SelectDateFetchesSlots(t *testing.T) {
	slots := []models.TimeSlot{{EntryTime: "10:00", ExitTime: "12:00", Capacity: 5}}
	catalog := &stubCatalog{
		listTimeSlots: func(ctx context.Context, attractionID int64, date string) ([]models.TimeSlot, error) {
			assert.Equal(t, int64(42), attractionID)
			assert.Equal(t, "2024-06-01", date)
			return slots, nil
		},
	}

	flow := NewBookingFlow(timeSlotAttraction())
	driver := NewFlowDriver(flow, catalog)
	defer driver.Close()

	require.NoError(t, driver.SelectDate(context.Background(), "2024-06-01"))
	driver.Wait()

	require.NoError(t, driver.Err())
	assert.Equal(t, slots, flow.Slots())
}

func TestFlowDriver_RapidDateChangeKeepsNewestResult(t *testing.T) {
	firstDone := make(chan struct{})
	freshSlots := []models.TimeSlot{{EntryTime: "09:00", ExitTime: "11:00", Capacity: 8}}

	catalog := &stubCatalog{
		listTimeSlots: func(ctx context.Context, attractionID int64, date string) ([]models.TimeSlot, error) {
			if date == "2024-06-01" {
				// The first fetch is cancelled by the second SelectDate and
				// finishes last.
				<-firstDone
				return nil, ctx.Err()
			}
			defer close(firstDone)
			return freshSlots, nil
		},
	}

	flow := NewBookingFlow(timeSlotAttraction())
	driver := NewFlowDriver(flow, catalog)
	defer driver.Close()

	require.NoError(t, driver.SelectDate(context.Background(), "2024-06-01"))
	require.NoError(t, driver.SelectDate(context.Background(), "2024-06-02"))
	driver.Wait()

	// The superseded fetch's failure is as stale as its data would have been.
	assert.NoError(t, driver.Err())
	assert.Equal(t, freshSlots, flow.Slots())
	assert.Equal(t, FlowDateSelected, flow.State())
}

func TestFlowDriver_FetchFailureIsReported(t *testing.T) {
	fetchErr := errors.New("backend down")
	catalog := &stubCatalog{
		checkAvailability: func(ctx context.Context, attractionID int64, date, entryTime, exitTime string) ([]models.TicketCategory, error) {
			return nil, fetchErr
		},
	}

	flow := NewBookingFlow(openAttraction())
	driver := NewFlowDriver(flow, catalog)
	defer driver.Close()

	require.NoError(t, driver.SelectDate(context.Background(), "2024-06-01"))
	driver.Wait()

	assert.ErrorIs(t, driver.Err(), fetchErr)
	assert.Equal(t, FlowDateSelected, flow.State())
}

func TestFlowDriver_CloseCancelsInFlightFetch(t *testing.T) {
	started := make(chan struct{})
	catalog := &stubCatalog{
		checkAvailability: func(ctx context.Context, attractionID int64, date, entryTime, exitTime string) ([]models.TicketCategory, error) {
			close(started)
			<-ctx.Done()
			return nil, ctx.Err()
		},
	}

	flow := NewBookingFlow(openAttraction())
	driver := NewFlowDriver(flow, catalog)

	require.NoError(t, driver.SelectDate(context.Background(), "2024-06-01"))

	select {
	case <-started:
	case <-time.After(2 * time.Second):
		t.Fatal("fetch never started")
	}

	driver.Close()
	assert.Empty(t, flow.Categories())
}

func TestFlowDriver_AddToCart(t *testing.T) {
	catalog := &stubCatalog{
		checkAvailability: func(ctx context.Context, attractionID int64, date, entryTime, exitTime string) ([]models.TicketCategory, error) {
			return testCategories(), nil
		},
	}

	flow := NewBookingFlow(openAttraction())
	driver := NewFlowDriver(flow, catalog)
	defer driver.Close()

	require.NoError(t, driver.SelectDate(context.Background(), "2024-06-01"))
	driver.Wait()
	require.NoError(t, flow.SetQuantity(7, 1))

	carts := new(MockCartService)
	reserved := []models.ReservedItem{{TicketCategoryID: 7, CategoryName: "Adult", Quantity: 1, UnitPrice: 15}}
	carts.On("AddSelection", mock.Anything, mock.Anything).Return(reserved, nil)

	items, err := driver.AddToCart(context.Background(), carts)
	require.NoError(t, err)
	assert.Equal(t, reserved, items)
	assert.Equal(t, FlowReserved, flow.State())
}

func TestFlowDriver_AddToCartFailureKeepsSelection(t *testing.T) {
	catalog := &stubCatalog{
		checkAvailability: func(ctx context.Context, attractionID int64, date, entryTime, exitTime string) ([]models.TicketCategory, error) {
			return testCategories(), nil
		},
	}

	flow := NewBookingFlow(openAttraction())
	driver := NewFlowDriver(flow, catalog)
	defer driver.Close()

	require.NoError(t, driver.SelectDate(context.Background(), "2024-06-01"))
	driver.Wait()
	require.NoError(t, flow.SetQuantity(7, 2))

	carts := new(MockCartService)
	reservationErr := &models.ReservationError{TicketCategoryID: 7, CategoryName: "Adult", Err: models.ErrSlotUnavailable}
	carts.On("AddSelection", mock.Anything, mock.Anything).Return(nil, reservationErr)

	_, err := driver.AddToCart(context.Background(), carts)
	require.Error(t, err)

	assert.Equal(t, FlowQuantitiesChosen, flow.State())
	assert.Equal(t, 2, flow.Quantity(7))
}
