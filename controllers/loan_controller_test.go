package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/akshatsri47/credit-card-approval/database"
	"github.com/akshatsri47/credit-card-approval/models"
	"github.com/akshatsri47/credit-card-approval/services"
	"github.com/gorilla/mux"
)

// stubStorage is a fixed-content Storage for handler tests
type stubStorage struct {
	customers map[uint]models.Customer
	loans     map[uint]models.Loan
	nextLoan  uint
}

func newStubStorage() *stubStorage {
	return &stubStorage{
		customers: map[uint]models.Customer{
			1: {
				CustomerID:    1,
				FirstName:     "Riya",
				LastName:      "Sharma",
				Age:           31,
				PhoneNumber:   "9876543210",
				MonthlySalary: 50000,
				ApprovedLimit: 1_800_000,
			},
		},
		loans: map[uint]models.Loan{},
	}
}

func (s *stubStorage) InsertCustomer(customer *models.Customer) (*models.Customer, error) {
	customer.CustomerID = uint(len(s.customers) + 1)
	s.customers[customer.CustomerID] = *customer
	return customer, nil
}

func (s *stubStorage) GetCustomerByID(id uint) (*models.Customer, error) {
	customer, ok := s.customers[id]
	if !ok {
		return nil, models.ErrCustomerNotFound
	}
	return &customer, nil
}

func (s *stubStorage) GetLoansByCustomerID(customerID uint) ([]models.Loan, error) {
	var loans []models.Loan
	for _, loan := range s.loans {
		if loan.CustomerID == customerID {
			loans = append(loans, loan)
		}
	}
	return loans, nil
}

func (s *stubStorage) GetLoanByID(id uint) (*models.Loan, error) {
	loan, ok := s.loans[id]
	if !ok {
		return nil, models.ErrLoanNotFound
	}
	loan.Customer = s.customers[loan.CustomerID]
	return &loan, nil
}

func (s *stubStorage) MaxLoanID() (uint, error) {
	return s.nextLoan, nil
}

func (s *stubStorage) InsertLoan(loan *models.Loan) (*models.Loan, error) {
	s.nextLoan++
	loan.LoanID = s.nextLoan
	s.loans[loan.LoanID] = *loan
	return loan, nil
}

func newTestRouter(storage services.Storage) *mux.Router {
	customerService := services.NewCustomerService(storage)
	loanService := services.NewLoanService(storage, database.NewMemoryCache(), nil)
	customerController := NewCustomerController(customerService)
	loanController := NewLoanController(loanService)

	router := mux.NewRouter()
	router.HandleFunc("/api/register", customerController.Register).Methods("POST")
	router.HandleFunc("/api/check-eligibility", loanController.CheckEligibility).Methods("POST")
	router.HandleFunc("/api/create-loan", loanController.CreateLoan).Methods("POST")
	router.HandleFunc("/api/view-loan/{loan_id}", loanController.ViewLoan).Methods("GET")
	router.HandleFunc("/api/view-loans/{customer_id}", loanController.ViewLoans).Methods("GET")
	return router
}

func postJSON(t *testing.T, router *mux.Router, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest("POST", path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestRegisterHandler(t *testing.T) {
	router := newTestRouter(newStubStorage())

	rr := postJSON(t, router, "/api/register", services.RegisterDTO{
		FirstName:     "Aman",
		LastName:      "Verma",
		Age:           28,
		PhoneNumber:   "9123456780",
		MonthlyIncome: 75000,
	})

	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d: %s", rr.Code, http.StatusCreated, rr.Body.String())
	}

	var response services.RegisterResponseDTO
	if err := json.Unmarshal(rr.Body.Bytes(), &response); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if response.ApprovedLimit != 2_700_000 {
		t.Errorf("approved_limit = %v, want 2700000", response.ApprovedLimit)
	}
	if response.Name != "Aman Verma" {
		t.Errorf("name = %q, want %q", response.Name, "Aman Verma")
	}
}

func TestRegisterHandler_InvalidBody(t *testing.T) {
	router := newTestRouter(newStubStorage())

	req := httptest.NewRequest("POST", "/api/register", bytes.NewReader([]byte("{not json")))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestCheckEligibilityHandler(t *testing.T) {
	router := newTestRouter(newStubStorage())

	rr := postJSON(t, router, "/api/check-eligibility", services.LoanApplicationDTO{
		CustomerID:   1,
		LoanAmount:   100000,
		InterestRate: 10,
		Tenure:       12,
	})

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rr.Code, http.StatusOK, rr.Body.String())
	}

	var response services.EligibilityResponseDTO
	if err := json.Unmarshal(rr.Body.Bytes(), &response); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !response.Approval {
		t.Error("approval = false, want true for a fresh customer")
	}
	if response.CorrectedInterestRate != 10 {
		t.Errorf("corrected_interest_rate = %v, want 10", response.CorrectedInterestRate)
	}
}

func TestCheckEligibilityHandler_UnknownCustomer(t *testing.T) {
	router := newTestRouter(newStubStorage())

	rr := postJSON(t, router, "/api/check-eligibility", services.LoanApplicationDTO{
		CustomerID:   42,
		LoanAmount:   100000,
		InterestRate: 10,
		Tenure:       12,
	})

	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNotFound)
	}
}

func TestCreateLoanHandler(t *testing.T) {
	storage := newStubStorage()
	router := newTestRouter(storage)

	rr := postJSON(t, router, "/api/create-loan", services.LoanApplicationDTO{
		CustomerID:   1,
		LoanAmount:   100000,
		InterestRate: 12,
		Tenure:       12,
	})

	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d: %s", rr.Code, http.StatusCreated, rr.Body.String())
	}

	var response services.CreateLoanResponseDTO
	if err := json.Unmarshal(rr.Body.Bytes(), &response); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !response.LoanApproved {
		t.Fatalf("loan_approved = false, want true: %s", response.Message)
	}
	if response.LoanID == nil {
		t.Fatal("loan_id = null, want an assigned id")
	}
	if _, ok := storage.loans[*response.LoanID]; !ok {
		t.Errorf("loan %d not persisted", *response.LoanID)
	}
}

func TestCreateLoanHandler_Declined(t *testing.T) {
	storage := newStubStorage()
	// Active installments above half the salary force a decline
	storage.loans[1] = models.Loan{
		LoanID: 1, CustomerID: 1, LoanAmount: 300000, Tenure: 24,
		InterestRate: 14, MonthlyPayment: 30000, EMIsPaidOnTime: 10,
		DateOfApproval: time.Now().AddDate(-1, 0, 0),
		EndDate:        time.Now().AddDate(1, 0, 0),
	}
	storage.nextLoan = 1
	router := newTestRouter(storage)

	rr := postJSON(t, router, "/api/create-loan", services.LoanApplicationDTO{
		CustomerID:   1,
		LoanAmount:   50000,
		InterestRate: 20,
		Tenure:       12,
	})

	// A declined application is a business outcome, not a transport error
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rr.Code, http.StatusOK, rr.Body.String())
	}

	var response services.CreateLoanResponseDTO
	if err := json.Unmarshal(rr.Body.Bytes(), &response); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if response.LoanApproved {
		t.Error("loan_approved = true, want false")
	}
	if response.LoanID != nil {
		t.Errorf("loan_id = %d, want null", *response.LoanID)
	}
	if response.MonthlyInstallment != 0 {
		t.Errorf("monthly_installment = %v, want 0", response.MonthlyInstallment)
	}
}

func TestViewLoanHandler(t *testing.T) {
	storage := newStubStorage()
	storage.loans[5] = models.Loan{
		LoanID: 5, CustomerID: 1, LoanAmount: 100000, Tenure: 12,
		InterestRate: 12, MonthlyPayment: 8884.88, EMIsPaidOnTime: 4,
		DateOfApproval: time.Now().AddDate(0, -4, 0),
		EndDate:        time.Now().AddDate(0, 8, 0),
	}
	router := newTestRouter(storage)

	req := httptest.NewRequest("GET", "/api/view-loan/5", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rr.Code, http.StatusOK, rr.Body.String())
	}

	var response services.LoanDetailDTO
	if err := json.Unmarshal(rr.Body.Bytes(), &response); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if response.LoanID != 5 {
		t.Errorf("loan_id = %d, want 5", response.LoanID)
	}
	if response.Customer.FirstName != "Riya" || response.Customer.ApprovedLimit != 1_800_000 {
		t.Errorf("unexpected customer snapshot: %+v", response.Customer)
	}
}

func TestViewLoanHandler_InvalidID(t *testing.T) {
	router := newTestRouter(newStubStorage())

	req := httptest.NewRequest("GET", "/api/view-loan/abc", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestViewLoanHandler_NotFound(t *testing.T) {
	router := newTestRouter(newStubStorage())

	req := httptest.NewRequest("GET", "/api/view-loan/99", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNotFound)
	}
}

func TestViewLoansHandler(t *testing.T) {
	storage := newStubStorage()
	storage.loans[1] = models.Loan{
		LoanID: 1, CustomerID: 1, LoanAmount: 100000, Tenure: 12,
		InterestRate: 12, MonthlyPayment: 8884.88, EMIsPaidOnTime: 4,
		DateOfApproval: time.Now().AddDate(0, -4, 0),
		EndDate:        time.Now().AddDate(0, 8, 0),
	}
	storage.loans[2] = models.Loan{
		LoanID: 2, CustomerID: 1, LoanAmount: 50000, Tenure: 6,
		InterestRate: 16, MonthlyPayment: 8745.95, EMIsPaidOnTime: 6,
		DateOfApproval: time.Now().AddDate(-2, 0, 0),
		EndDate:        time.Now().AddDate(-1, -6, 0),
	}
	router := newTestRouter(storage)

	req := httptest.NewRequest("GET", "/api/view-loans/1", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rr.Code, http.StatusOK, rr.Body.String())
	}

	var response []services.ActiveLoanDTO
	if err := json.Unmarshal(rr.Body.Bytes(), &response); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(response) != 1 {
		t.Fatalf("active loans = %d, want 1 (the expired loan is excluded)", len(response))
	}
	if response[0].LoanID != 1 || response[0].RepaymentsLeft != 8 {
		t.Errorf("unexpected active loan: %+v", response[0])
	}
}
