package services

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/akshatsri47/credit-card-approval/database"
	"github.com/akshatsri47/credit-card-approval/models"
	"github.com/akshatsri47/credit-card-approval/utils"
	"github.com/go-playground/validator/v10"
)

// LoanApplicationDTO represents an eligibility check or loan creation request
type LoanApplicationDTO struct {
	CustomerID   uint    `json:"customer_id" validate:"required"`
	LoanAmount   float64 `json:"loan_amount" validate:"required,gt=0"`
	InterestRate float64 `json:"interest_rate" validate:"gte=0"`
	Tenure       int     `json:"tenure" validate:"required,gte=1"`
}

// EligibilityResponseDTO represents the eligibility check response
type EligibilityResponseDTO struct {
	CustomerID            uint    `json:"customer_id"`
	Approval              bool    `json:"approval"`
	InterestRate          float64 `json:"interest_rate"`
	CorrectedInterestRate float64 `json:"corrected_interest_rate"`
	Tenure                int     `json:"tenure"`
	MonthlyInstallment    float64 `json:"monthly_installment"`
}

// CreateLoanResponseDTO represents the loan creation response. LoanID is nil
// when the application was declined.
type CreateLoanResponseDTO struct {
	LoanID             *uint   `json:"loan_id"`
	CustomerID         uint    `json:"customer_id"`
	LoanApproved       bool    `json:"loan_approved"`
	Message            string  `json:"message"`
	MonthlyInstallment float64 `json:"monthly_installment"`
}

// CustomerSnapshotDTO is the customer part of a loan detail response
type CustomerSnapshotDTO struct {
	CustomerID    uint    `json:"customer_id"`
	FirstName     string  `json:"first_name"`
	LastName      string  `json:"last_name"`
	Age           int     `json:"age"`
	PhoneNumber   string  `json:"phone_number"`
	MonthlySalary float64 `json:"monthly_salary"`
	ApprovedLimit float64 `json:"approved_limit"`
}

// LoanDetailDTO represents a single loan with its customer snapshot
type LoanDetailDTO struct {
	LoanID             uint                `json:"loan_id"`
	Customer           CustomerSnapshotDTO `json:"customer"`
	LoanAmount         float64             `json:"loan_amount"`
	InterestRate       float64             `json:"interest_rate"`
	MonthlyInstallment float64             `json:"monthly_installment"`
	Tenure             int                 `json:"tenure"`
}

// ActiveLoanDTO represents one currently running loan of a customer
type ActiveLoanDTO struct {
	LoanID             uint    `json:"loan_id"`
	LoanAmount         float64 `json:"loan_amount"`
	InterestRate       float64 `json:"interest_rate"`
	MonthlyInstallment float64 `json:"monthly_installment"`
	RepaymentsLeft     int     `json:"repayments_left"`
}

// decision is the combined outcome of scoring, slab policy and amortization
type decision struct {
	score       float64
	inputs      ScoreInputs
	approved    bool
	rate        float64
	installment float64
}

// LoanService runs the credit decision pipeline: score, slab policy, EMI and,
// for loan creation, transactional issuance through the storage collaborator
type LoanService struct {
	storage   Storage
	cache     database.Cache
	email     *EmailService
	validator *validator.Validate
	now       func() time.Time // injectable reference clock
}

// NewLoanService creates a new LoanService instance
func NewLoanService(storage Storage, cache database.Cache, email *EmailService) *LoanService {
	return &LoanService{
		storage:   storage,
		cache:     cache,
		email:     email,
		validator: validator.New(),
		now:       time.Now,
	}
}

// evaluate runs the read-only part of the pipeline for one application
func (s *LoanService) evaluate(dto LoanApplicationDTO) (*decision, error) {
	// The customer must exist before any scoring happens
	customer, err := s.storage.GetCustomerByID(dto.CustomerID)
	if err != nil {
		return nil, err
	}

	// Score over a consistent snapshot of the loan history
	loans, err := s.storage.GetLoansByCustomerID(dto.CustomerID)
	if err != nil {
		return nil, err
	}

	score, inputs := CreditScore(customer, loans, s.now())
	result := EvaluateEligibility(score, dto.InterestRate)

	d := &decision{
		score:    score,
		inputs:   inputs,
		approved: result.Approved,
		rate:     result.CorrectedInterestRate,
	}

	// The installment is only defined for approved applications
	if d.approved {
		d.installment = MonthlyInstallment(dto.LoanAmount, d.rate, dto.Tenure)
	}

	return d, nil
}

// declineReason names why an application was not approved
func (d *decision) declineReason() string {
	if !d.inputs.EMIBurdenOK {
		return "active loan installments exceed half of the monthly salary"
	}
	return "credit score too low for any interest rate slab"
}

// CheckEligibility runs the decision pipeline without persisting anything
func (s *LoanService) CheckEligibility(dto LoanApplicationDTO) (*EligibilityResponseDTO, error) {
	// Validate the DTO
	if err := s.validator.Struct(dto); err != nil {
		return nil, validationError(err)
	}

	d, err := s.evaluate(dto)
	if err != nil {
		return nil, err
	}

	utils.GetMetrics().RecordEligibilityCheck(d.approved)

	return &EligibilityResponseDTO{
		CustomerID:            dto.CustomerID,
		Approval:              d.approved,
		InterestRate:          Round2(dto.InterestRate),
		CorrectedInterestRate: d.rate,
		Tenure:                dto.Tenure,
		MonthlyInstallment:    d.installment,
	}, nil
}

// CreateLoan runs the decision pipeline and, on approval, persists the new
// loan with the next loan id allocated atomically by the storage layer.
// A declined application is a normal outcome, not an error.
func (s *LoanService) CreateLoan(dto LoanApplicationDTO) (*CreateLoanResponseDTO, error) {
	// Validate the DTO
	if err := s.validator.Struct(dto); err != nil {
		return nil, validationError(err)
	}

	d, err := s.evaluate(dto)
	if err != nil {
		return nil, err
	}

	if !d.approved {
		reason := d.declineReason()
		utils.GetMetrics().RecordLoanDecision(false, reason)
		s.notifyDecision(nil, dto.CustomerID, false, reason)
		return &CreateLoanResponseDTO{
			LoanID:             nil,
			CustomerID:         dto.CustomerID,
			LoanApproved:       false,
			Message:            "loan not approved: " + reason,
			MonthlyInstallment: 0,
		}, nil
	}

	// Issue the loan
	approvalDate := s.now()
	loan := &models.Loan{
		CustomerID:     dto.CustomerID,
		LoanAmount:     Round2(dto.LoanAmount),
		Tenure:         dto.Tenure,
		InterestRate:   d.rate,
		MonthlyPayment: d.installment,
		EMIsPaidOnTime: 0,
		DateOfApproval: approvalDate,
		EndDate:        approvalDate.AddDate(0, dto.Tenure, 0),
	}

	created, err := s.storage.InsertLoan(loan)
	if err != nil {
		return nil, err
	}

	utils.GetMetrics().RecordLoanDecision(true, "")
	s.notifyDecision(&created.LoanID, dto.CustomerID, true, "")

	loanID := created.LoanID
	return &CreateLoanResponseDTO{
		LoanID:             &loanID,
		CustomerID:         dto.CustomerID,
		LoanApproved:       true,
		Message:            "loan approved",
		MonthlyInstallment: created.MonthlyPayment,
	}, nil
}

// notifyDecision sends a decision summary to the ops address when configured
func (s *LoanService) notifyDecision(loanID *uint, customerID uint, approved bool, reason string) {
	if s.email == nil {
		return
	}
	go func() {
		if err := s.email.SendDecisionNotification(loanID, customerID, approved, reason); err != nil {
			log.Printf("decision notification failed: %v", err)
		}
	}()
}

// GetLoanDetail returns a loan with its customer snapshot. Issued loans are
// immutable, so responses are cached by loan id.
func (s *LoanService) GetLoanDetail(loanID uint) (*LoanDetailDTO, error) {
	key := fmt.Sprintf("view-loan:%d", loanID)

	if s.cache != nil {
		if cached, ok := s.cache.Get(key); ok {
			var dto LoanDetailDTO
			if err := json.Unmarshal([]byte(cached), &dto); err == nil {
				return &dto, nil
			}
		}
	}

	loan, err := s.storage.GetLoanByID(loanID)
	if err != nil {
		return nil, err
	}

	dto := &LoanDetailDTO{
		LoanID: loan.LoanID,
		Customer: CustomerSnapshotDTO{
			CustomerID:    loan.Customer.CustomerID,
			FirstName:     loan.Customer.FirstName,
			LastName:      loan.Customer.LastName,
			Age:           loan.Customer.Age,
			PhoneNumber:   loan.Customer.PhoneNumber,
			MonthlySalary: loan.Customer.MonthlySalary,
			ApprovedLimit: loan.Customer.ApprovedLimit,
		},
		LoanAmount:         loan.LoanAmount,
		InterestRate:       loan.InterestRate,
		MonthlyInstallment: loan.MonthlyPayment,
		Tenure:             loan.Tenure,
	}

	if s.cache != nil {
		if encoded, err := json.Marshal(dto); err == nil {
			if err := s.cache.Set(key, string(encoded)); err != nil {
				log.Printf("loan detail cache write failed: %v", err)
			}
		}
	}

	return dto, nil
}

// GetActiveLoans returns the customer's currently running loans in loan id
// order, each with the number of repayments left
func (s *LoanService) GetActiveLoans(customerID uint) ([]ActiveLoanDTO, error) {
	// The customer must exist; an empty loan list is a valid answer
	if _, err := s.storage.GetCustomerByID(customerID); err != nil {
		return nil, err
	}

	loans, err := s.storage.GetLoansByCustomerID(customerID)
	if err != nil {
		return nil, err
	}

	asOf := s.now()
	active := make([]ActiveLoanDTO, 0, len(loans))
	for i := range loans {
		loan := &loans[i]
		if !loan.IsActive(asOf) {
			continue
		}
		active = append(active, ActiveLoanDTO{
			LoanID:             loan.LoanID,
			LoanAmount:         loan.LoanAmount,
			InterestRate:       loan.InterestRate,
			MonthlyInstallment: loan.MonthlyPayment,
			RepaymentsLeft:     loan.RepaymentsLeft(),
		})
	}

	return active, nil
}
