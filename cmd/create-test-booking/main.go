package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"attraction-booking-portal/internal/config"
	"attraction-booking-portal/internal/models"
	"attraction-booking-portal/internal/services"
)

// Walks a complete booking against the live backend: pick an attraction,
// select a date (and slot where required), reserve one ticket of the first
// available category, reserve the cart and check out as a test customer.
func main() {
	attractionID := flag.Int64("attraction", 0, "attraction id to book")
	date := flag.String("date", time.Now().AddDate(0, 0, 1).Format("2006-01-02"), "visit date (YYYY-MM-DD)")
	quantity := flag.Int("quantity", 1, "tickets to reserve")
	checkout := flag.Bool("checkout", false, "place a real order at the end")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	backend := services.NewBackendClient(cfg.Backend)
	catalog := services.NewCatalogService(backend)
	store := services.NewMemoryCartStore()
	carts := services.NewCartService(backend, store)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if *attractionID == 0 {
		attractions, err := catalog.ListAttractions(ctx, services.AttractionFilters{Size: 1})
		if err != nil {
			log.Fatal("Failed to list attractions:", err)
		}
		if len(attractions) == 0 {
			log.Fatal("No active attractions on the backend")
		}
		*attractionID = attractions[0].ID
	}

	attraction, err := catalog.GetAttraction(ctx, *attractionID)
	if err != nil {
		log.Fatal("Failed to load attraction:", err)
	}
	fmt.Printf("Booking %q (id %d, timing %s) for %s\n", attraction.Title, attraction.ID, attraction.TimingType, *date)

	flow := services.NewBookingFlow(*attraction)
	driver := services.NewFlowDriver(flow, catalog)
	defer driver.Close()

	if err := driver.SelectDate(ctx, *date); err != nil {
		log.Fatal("Failed to select date:", err)
	}
	driver.Wait()
	if err := driver.Err(); err != nil {
		log.Fatal("Fetch after date selection failed:", err)
	}

	if attraction.TimingType == models.TimingTimeSlot {
		slots := flow.Slots()
		if len(slots) == 0 {
			log.Fatal("No time slots on", *date)
		}
		index := -1
		for i, slot := range slots {
			if slot.Available() {
				index = i
				break
			}
		}
		if index < 0 {
			log.Fatal("All time slots are full on", *date)
		}
		fmt.Printf("Selecting slot %s - %s\n", slots[index].EntryTime, slots[index].ExitTime)
		if err := driver.SelectSlot(ctx, index); err != nil {
			log.Fatal("Failed to select slot:", err)
		}
		driver.Wait()
		if err := driver.Err(); err != nil {
			log.Fatal("Availability fetch failed:", err)
		}
	}

	categories := flow.Categories()
	if len(categories) == 0 {
		log.Fatal("No ticket categories available")
	}
	fmt.Println("Available ticket categories:")
	for _, c := range categories {
		fmt.Printf("  %d %s (%s) %.2f\n", c.ID, c.Name, c.GroupName, c.EffectivePrice())
	}

	if err := flow.SetQuantity(categories[0].ID, *quantity); err != nil {
		log.Fatal("Failed to set quantity:", err)
	}
	fmt.Printf("Selected %d x %s, total %.2f\n", *quantity, categories[0].Name, flow.Total())

	reserved, err := driver.AddToCart(ctx, carts)
	if err != nil {
		log.Fatal("Failed to add to cart:", err)
	}
	cart, _ := carts.Cart()
	fmt.Printf("Reserved %d item(s) in cart %s, cart total %.2f\n", len(reserved), cart.ID, cart.Total())

	if err := carts.ReserveCart(ctx); err != nil {
		log.Fatal("Failed to reserve cart:", err)
	}
	fmt.Println("Cart reserved")

	if !*checkout {
		fmt.Println("Skipping checkout (pass -checkout to place a real order)")
		return
	}

	checkouts := services.NewCheckoutService(backend, store)
	order, err := checkouts.Checkout(ctx, models.CustomerInfo{
		Name:  "Test Customer",
		Email: "test@example.com",
		Phone: "+10000000000",
	})
	if err != nil {
		log.Fatal("Checkout failed:", err)
	}
	fmt.Printf("Order placed: order %s, invoice %s\n", order.ID, order.InvoiceID)
}
