package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/akshatsri47/credit-card-approval/models"
	"github.com/akshatsri47/credit-card-approval/services"
)

// CustomerController handles customer registration requests
type CustomerController struct {
	customerService *services.CustomerService
}

// NewCustomerController creates a new CustomerController instance
func NewCustomerController(customerService *services.CustomerService) *CustomerController {
	return &CustomerController{
		customerService: customerService,
	}
}

// Register handles a customer registration request
func (c *CustomerController) Register(w http.ResponseWriter, r *http.Request) {
	// Decode the request DTO
	var dto services.RegisterDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	// Register the customer
	response, err := c.customerService.Register(dto)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	// Send the response
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(response)
}

// writeServiceError maps service errors to HTTP status codes
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrCustomerNotFound), errors.Is(err, models.ErrLoanNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, models.ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
