package services

import (
	"context"
	"sync"

	"attraction-booking-portal/internal/models"
)

// FlowDriver runs a BookingFlow's fetch commands against the catalog. Each new
// trigger cancels the previous in-flight fetch; results that outlive their
// trigger are dropped by the flow's generation check, so a slow response for
// an abandoned date can never repopulate state.
type FlowDriver struct {
	flow    *BookingFlow
	catalog CatalogServiceInterface

	mu      sync.Mutex
	cancel  context.CancelFunc
	lastErr error
	lastGen uint64
	wg      sync.WaitGroup
}

// NewFlowDriver creates a driver for one booking flow instance.
func NewFlowDriver(flow *BookingFlow, catalog CatalogServiceInterface) *FlowDriver {
	return &FlowDriver{flow: flow, catalog: catalog}
}

// Flow returns the driven flow.
func (d *FlowDriver) Flow() *BookingFlow {
	return d.flow
}

// SelectDate advances the flow and starts the follow-up fetch.
func (d *FlowDriver) SelectDate(ctx context.Context, date string) error {
	cmd, err := d.flow.SelectDate(date)
	if err != nil {
		return err
	}
	d.dispatch(ctx, cmd)
	return nil
}

// SelectSlot advances the flow and starts the availability fetch for the slot.
func (d *FlowDriver) SelectSlot(ctx context.Context, index int) error {
	cmd, err := d.flow.SelectSlot(index)
	if err != nil {
		return err
	}
	d.dispatch(ctx, cmd)
	return nil
}

// AddToCart reserves the current selection through the cart service. The
// reserved-so-far items are returned even when a later category fails, along
// with the error naming the failed category.
func (d *FlowDriver) AddToCart(ctx context.Context, carts CartServiceInterface) ([]models.ReservedItem, error) {
	requests, err := d.flow.BeginAddToCart()
	if err != nil {
		return nil, err
	}

	reserved, err := carts.AddSelection(ctx, requests)
	d.flow.FinishAddToCart(err == nil)
	return reserved, err
}

// Err returns the failure of the most recent fetch, if it is still relevant to
// the flow's current generation.
func (d *FlowDriver) Err() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lastErr
}

// Wait blocks until all dispatched fetches have completed or been cancelled.
func (d *FlowDriver) Wait() {
	d.wg.Wait()
}

// Close cancels any outstanding fetch. Used when the visitor navigates away
// from the booking panel.
func (d *FlowDriver) Close() {
	d.mu.Lock()
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.mu.Unlock()
	d.wg.Wait()
}

func (d *FlowDriver) dispatch(ctx context.Context, cmd FlowCommand) {
	d.mu.Lock()
	if d.cancel != nil {
		d.cancel()
	}
	fetchCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel
	d.mu.Unlock()

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer cancel()

		switch c := cmd.(type) {
		case FetchTimeSlots:
			slots, err := d.catalog.ListTimeSlots(fetchCtx, c.AttractionID, c.Date)
			if err != nil {
				d.record(c.Generation, err)
				return
			}
			d.flow.ApplyTimeSlots(c.Generation, slots)
			d.record(c.Generation, nil)
		case FetchAvailability:
			categories, err := d.catalog.CheckAvailability(fetchCtx, c.AttractionID, c.Date, c.EntryTime, c.ExitTime)
			if err != nil {
				d.record(c.Generation, err)
				return
			}
			d.flow.ApplyAvailability(c.Generation, categories)
			d.record(c.Generation, nil)
		}
	}()
}

// record keeps only the newest fetch outcome; an error from a superseded fetch
// is as stale as its data would have been.
func (d *FlowDriver) record(generation uint64, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if generation >= d.lastGen {
		d.lastGen = generation
		d.lastErr = err
	}
}
