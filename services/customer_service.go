package services

import (
	"errors"
	"strings"

	"github.com/akshatsri47/credit-card-approval/models"
	"github.com/go-playground/validator/v10"
)

// RegisterDTO represents the data for registering a customer
type RegisterDTO struct {
	FirstName     string  `json:"first_name" validate:"required"`
	LastName      string  `json:"last_name" validate:"required"`
	Age           int     `json:"age" validate:"required,gt=0"`
	PhoneNumber   string  `json:"phone_number" validate:"required"`
	MonthlyIncome float64 `json:"monthly_income" validate:"required,gt=0"`
}

// RegisterResponseDTO represents the registration response
type RegisterResponseDTO struct {
	CustomerID    uint    `json:"customer_id"`
	Name          string  `json:"name"`
	Age           int     `json:"age"`
	MonthlyIncome float64 `json:"monthly_income"`
	ApprovedLimit float64 `json:"approved_limit"`
	PhoneNumber   string  `json:"phone_number"`
}

// CustomerService provides customer registration
type CustomerService struct {
	storage   Storage
	validator *validator.Validate
}

// NewCustomerService creates a new CustomerService instance
func NewCustomerService(storage Storage) *CustomerService {
	return &CustomerService{
		storage:   storage,
		validator: validator.New(),
	}
}

// Register creates a new customer with their approved credit limit
func (s *CustomerService) Register(dto RegisterDTO) (*RegisterResponseDTO, error) {
	// Validate the DTO
	if err := s.validator.Struct(dto); err != nil {
		return nil, validationError(err)
	}

	// Compute the approved limit from the salary
	customer := &models.Customer{
		FirstName:     dto.FirstName,
		LastName:      dto.LastName,
		Age:           dto.Age,
		PhoneNumber:   dto.PhoneNumber,
		MonthlySalary: Round2(dto.MonthlyIncome),
		ApprovedLimit: ApprovedLimit(dto.MonthlyIncome),
	}

	// Persist the customer
	created, err := s.storage.InsertCustomer(customer)
	if err != nil {
		return nil, err
	}

	return &RegisterResponseDTO{
		CustomerID:    created.CustomerID,
		Name:          created.FirstName + " " + created.LastName,
		Age:           created.Age,
		MonthlyIncome: created.MonthlySalary,
		ApprovedLimit: created.ApprovedLimit,
		PhoneNumber:   created.PhoneNumber,
	}, nil
}

// validationError converts validator errors into a single client-facing error
func validationError(err error) error {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.Join(models.ErrInvalidInput, err)
	}
	var errorMessages []string
	for _, e := range validationErrors {
		switch e.Tag() {
		case "required":
			errorMessages = append(errorMessages, "field "+e.Field()+" is required")
		case "gt":
			errorMessages = append(errorMessages, "field "+e.Field()+" must be greater than "+e.Param())
		case "gte":
			errorMessages = append(errorMessages, "field "+e.Field()+" must be at least "+e.Param())
		default:
			errorMessages = append(errorMessages, "field "+e.Field()+" is invalid")
		}
	}
	return errors.Join(models.ErrInvalidInput, errors.New(strings.Join(errorMessages, "; ")))
}
