package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/akshatsri47/credit-card-approval/config"
	"github.com/akshatsri47/credit-card-approval/controllers"
	"github.com/akshatsri47/credit-card-approval/database"
	"github.com/akshatsri47/credit-card-approval/middleware"
	"github.com/akshatsri47/credit-card-approval/services"
	"github.com/akshatsri47/credit-card-approval/utils"
	"github.com/gorilla/mux"
)

func main() {
	// Initialize the configuration
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	// Initialize the database connection
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Database connection error: %v", err)
	}
	defer db.Close()

	// Initialize the response cache
	var cache database.Cache
	if cfg.Redis.Addr != "" {
		cache = database.NewRedisCache(cfg.Redis.Addr)
	} else {
		cache = database.NewMemoryCache()
	}

	// Initialize the email service
	emailService := services.NewEmailService(cfg)

	// Start the import scheduler
	importService := services.NewImportService(db.DB, cfg.Import.Dir)
	scheduler := services.NewImportSchedulerService(importService, emailService)
	if err := scheduler.Start(cfg.Import.Cron); err != nil {
		log.Fatalf("Import scheduler error: %v", err)
	}
	defer scheduler.Stop()
	if cfg.Import.RunOnStart {
		go scheduler.RunNow()
	}

	// Initialize the services and controllers
	customerService := services.NewCustomerService(db)
	loanService := services.NewLoanService(db, cache, emailService)
	customerController := controllers.NewCustomerController(customerService)
	loanController := controllers.NewLoanController(loanService)

	// Start the admin server
	adminController := controllers.NewAdminController()
	go func() {
		adminPort := fmt.Sprintf(":%d", cfg.Server.AdminPort)
		log.Printf("Admin server listening on %s", adminPort)
		if err := adminController.Router().Run(adminPort); err != nil {
			log.Fatalf("Admin server error: %v", err)
		}
	}()

	// Build the router
	router := mux.NewRouter()

	api := router.PathPrefix("/api").Subrouter()
	api.Use(middleware.LoggingMiddleware)
	api.Use(middleware.RateLimitMiddleware(utils.NewRateLimiter(100, time.Minute)))

	api.HandleFunc("/register", customerController.Register).Methods("POST")
	api.HandleFunc("/check-eligibility", loanController.CheckEligibility).Methods("POST")
	api.HandleFunc("/create-loan", loanController.CreateLoan).Methods("POST")
	api.HandleFunc("/view-loan/{loan_id}", loanController.ViewLoan).Methods("GET")
	api.HandleFunc("/view-loans/{customer_id}", loanController.ViewLoans).Methods("GET")

	// Start the server
	port := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server listening on %s", port)
	if err := http.ListenAndServe(port, router); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
