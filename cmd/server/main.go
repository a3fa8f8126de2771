package main

import (
	"fmt"
	"log"
	"net/http"

	"attraction-booking-portal/internal/config"
	"attraction-booking-portal/internal/handlers"
	"attraction-booking-portal/internal/middleware"
	"attraction-booking-portal/internal/services"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/sessions"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Create session store
	sessionStore := sessions.NewCookieStore([]byte(cfg.Session.Secret))
	sessionStore.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   cfg.Session.MaxAge,
		HttpOnly: true,
		Secure:   cfg.Server.Env == "production",
		SameSite: http.SameSiteLaxMode,
	}

	// Initialize the booking backend client and services
	backend := services.NewBackendClient(cfg.Backend)
	catalogService := services.NewCatalogService(backend)

	cartFactory := func(store services.CartStore) services.CartServiceInterface {
		return services.NewCartService(backend, store)
	}
	checkoutFactory := func(store services.CartStore) services.CheckoutServiceInterface {
		return services.NewCheckoutService(backend, store)
	}

	// Initialize handlers
	attractionHandler := handlers.NewAttractionHandler(catalogService)
	cartHandler := handlers.NewCartHandler(catalogService, cartFactory, sessionStore)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutFactory, sessionStore)

	// Setup router
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.LoggingMiddleware)
	r.Use(middleware.CORSMiddleware(middleware.DefaultCORSConfig()))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/attractions", func(r chi.Router) {
		r.Get("/", attractionHandler.List)
		r.Get("/combos", attractionHandler.Combos)
		r.Get("/{id}", attractionHandler.Detail)
		r.Get("/{id}/categories", attractionHandler.Categories)
		r.Get("/{id}/slots", attractionHandler.Slots)
		r.Get("/{id}/availability", attractionHandler.Availability)
		r.Post("/{id}/quote", attractionHandler.Quote)
	})

	r.Route("/cart", func(r chi.Router) {
		r.Get("/", cartHandler.Show)
		r.Post("/items", cartHandler.AddItems)
		r.Post("/reserve", cartHandler.Reserve)
		r.Delete("/", cartHandler.Clear)
	})

	r.Post("/checkout", checkoutHandler.Checkout)

	r.Route("/orders", func(r chi.Router) {
		r.Get("/attachments", checkoutHandler.Attachments)
		r.Get("/inventory", checkoutHandler.Inventory)
		r.Get("/{id}/invoice", checkoutHandler.Invoice)
	})

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Starting server on %s (backend: %s)", addr, cfg.Backend.BaseURL)
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatal("Server failed:", err)
	}
}
