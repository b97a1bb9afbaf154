package services

import (
	"github.com/akshatsri47/credit-card-approval/models"
)

// Storage is the persistence collaborator required by the decision services.
// *database.Database satisfies it; tests substitute in-memory fakes.
type Storage interface {
	InsertCustomer(customer *models.Customer) (*models.Customer, error)
	GetCustomerByID(id uint) (*models.Customer, error)
	GetLoansByCustomerID(customerID uint) ([]models.Loan, error)
	GetLoanByID(id uint) (*models.Loan, error)
	MaxLoanID() (uint, error)
	InsertLoan(loan *models.Loan) (*models.Loan, error)
}
