package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/akshatsri47/credit-card-approval/services"
	"github.com/gorilla/mux"
)

// LoanController handles eligibility and loan requests
type LoanController struct {
	loanService *services.LoanService
}

// NewLoanController creates a new LoanController instance
func NewLoanController(loanService *services.LoanService) *LoanController {
	return &LoanController{
		loanService: loanService,
	}
}

// CheckEligibility handles a read-only eligibility check
func (c *LoanController) CheckEligibility(w http.ResponseWriter, r *http.Request) {
	// Decode the request DTO
	var dto services.LoanApplicationDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	// Run the decision pipeline without persisting anything
	response, err := c.loanService.CheckEligibility(dto)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	// Send the response
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}

// CreateLoan handles a loan creation request. A declined application is a
// normal business outcome and still answers 200.
func (c *LoanController) CreateLoan(w http.ResponseWriter, r *http.Request) {
	// Decode the request DTO
	var dto services.LoanApplicationDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	// Run the decision pipeline and issue the loan on approval
	response, err := c.loanService.CreateLoan(dto)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	status := http.StatusOK
	if response.LoanApproved {
		status = http.StatusCreated
	}

	// Send the response
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(response)
}

// ViewLoan handles a request for a single loan with its customer snapshot
func (c *LoanController) ViewLoan(w http.ResponseWriter, r *http.Request) {
	// Parse the loan id from the URL
	vars := mux.Vars(r)
	loanID, err := strconv.ParseUint(vars["loan_id"], 10, 32)
	if err != nil {
		http.Error(w, "Invalid loan ID", http.StatusBadRequest)
		return
	}

	response, err := c.loanService.GetLoanDetail(uint(loanID))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	// Send the response
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}

// ViewLoans handles a request for a customer's active loans
func (c *LoanController) ViewLoans(w http.ResponseWriter, r *http.Request) {
	// Parse the customer id from the URL
	vars := mux.Vars(r)
	customerID, err := strconv.ParseUint(vars["customer_id"], 10, 32)
	if err != nil {
		http.Error(w, "Invalid customer ID", http.StatusBadRequest)
		return
	}

	response, err := c.loanService.GetActiveLoans(uint(customerID))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	// Send the response
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}
