package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"

	"autocare/internal/api"
	"autocare/internal/auth"
	"autocare/internal/repository"
	"autocare/internal/service"
)

func main() {
	godotenv.Load()

	store := openStore()

	senderSvc := service.NewSenderService()
	catalogSvc := service.NewCatalogService(store)
	vehicleSvc := service.NewVehicleService(store)
	bookingSvc := service.NewBookingService(store, senderSvc)
	authSvc := service.NewAuthService(store)
	jobSvc := service.NewJobService(store, senderSvc)

	authHandler := api.NewAuthHandler(authSvc)
	catalogHandler := api.NewCatalogHandler(catalogSvc)
	vehicleHandler := api.NewVehicleHandler(vehicleSvc)
	bookingHandler := api.NewBookingHandler(bookingSvc)

	r := mux.NewRouter()
	r.Use(api.RequestTimeout(10 * time.Second))

	// Public endpoints
	r.HandleFunc("/api/auth/signup", authHandler.SignUp).Methods("POST")
	r.HandleFunc("/api/auth/signin", authHandler.SignIn).Methods("POST")
	r.HandleFunc("/api/services", catalogHandler.ListServices).Methods("GET")
	r.HandleFunc("/api/services/{id}", catalogHandler.GetService).Methods("GET")

	// Authenticated endpoints
	private := r.PathPrefix("/api").Subrouter()
	private.Use(auth.Middleware)
	private.HandleFunc("/profile", authHandler.UpdateProfile).Methods("PUT")
	private.HandleFunc("/profile/password", authHandler.ChangePassword).Methods("PUT")
	private.HandleFunc("/vehicles", vehicleHandler.ListVehicles).Methods("GET")
	private.HandleFunc("/vehicles", vehicleHandler.AddVehicle).Methods("POST")
	private.HandleFunc("/vehicles/{id}", vehicleHandler.UpdateVehicle).Methods("PUT")
	private.HandleFunc("/vehicles/{id}", vehicleHandler.DeleteVehicle).Methods("DELETE")
	private.HandleFunc("/bookings", bookingHandler.ListBookings).Methods("GET")
	private.HandleFunc("/bookings", bookingHandler.CreateBooking).Methods("POST")
	private.HandleFunc("/bookings/{id}", bookingHandler.GetBooking).Methods("GET")
	private.HandleFunc("/bookings/{id}/status", bookingHandler.UpdateStatus).Methods("PUT")
	private.HandleFunc("/bookings/{id}", bookingHandler.CancelBooking).Methods("DELETE")

	c := cron.New()
	if _, err := c.AddFunc("0 9 * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if err := jobSvc.SendAppointmentReminders(ctx); err != nil {
			log.Printf("Reminder sweep failed: %v", err)
		}
	}); err != nil {
		log.Fatalf("Failed to schedule reminder job: %v", err)
	}
	c.Start()
	defer c.Stop()

	corsHandler := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Authorization", "Content-Type"}),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server running on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, corsHandler(handlers.LoggingHandler(os.Stdout, r))))
}

// openStore picks the persistence backend once at startup. The two
// implementations are never mixed at runtime.
func openStore() repository.Store {
	backend := os.Getenv("STORE_BACKEND")
	if backend == "fixture" {
		log.Println("Using in-memory fixture store")
		return repository.NewFixtureStore()
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL not set")
	}
	database, err := sql.Open("postgres", dbURL)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	if err := database.Ping(); err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	return repository.NewPostgresStore(database)
}
