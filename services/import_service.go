package services

import (
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/akshatsri47/credit-card-approval/models"
	"github.com/beevik/etree"
	"gorm.io/gorm"
)

const importDateLayout = "2006-01-02"

// ImportResult summarizes a finished bulk import
type ImportResult struct {
	CustomersImported int
	LoansImported     int
	LoansSkipped      int // loan rows referencing unknown customers
}

// ImportService loads the customer and loan exports into the database. The
// import wipes both tables and reloads them in one transaction, then resets
// the customer id sequence past the highest imported id.
type ImportService struct {
	db  *gorm.DB
	dir string
}

// NewImportService creates a new ImportService reading from dir
func NewImportService(db *gorm.DB, dir string) *ImportService {
	return &ImportService{db: db, dir: dir}
}

// Run executes the bulk import
func (s *ImportService) Run() (*ImportResult, error) {
	// Parse both files before touching the database
	customerDoc := etree.NewDocument()
	if err := customerDoc.ReadFromFile(filepath.Join(s.dir, "customer_data.xml")); err != nil {
		return nil, fmt.Errorf("read customer data: %v", err)
	}
	customers, err := parseCustomers(customerDoc)
	if err != nil {
		return nil, fmt.Errorf("parse customer data: %v", err)
	}

	loanDoc := etree.NewDocument()
	if err := loanDoc.ReadFromFile(filepath.Join(s.dir, "loan_data.xml")); err != nil {
		return nil, fmt.Errorf("read loan data: %v", err)
	}
	loans, err := parseLoans(loanDoc)
	if err != nil {
		return nil, fmt.Errorf("parse loan data: %v", err)
	}

	// Drop loan rows whose customer is missing from the customer file
	known := make(map[uint]bool, len(customers))
	for i := range customers {
		known[customers[i].CustomerID] = true
	}
	kept := make([]models.Loan, 0, len(loans))
	skipped := 0
	for i := range loans {
		if !known[loans[i].CustomerID] {
			skipped++
			continue
		}
		kept = append(kept, loans[i])
	}

	// Wipe and reload both tables atomically
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM loans").Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM customers").Error; err != nil {
			return err
		}
		if len(customers) > 0 {
			if err := tx.CreateInBatches(&customers, 500).Error; err != nil {
				return err
			}
		}
		if len(kept) > 0 {
			if err := tx.CreateInBatches(&kept, 500).Error; err != nil {
				return err
			}
		}

		// Keep the customer id sequence ahead of the imported ids
		return tx.Exec(`
			SELECT setval(
				pg_get_serial_sequence('customers','customer_id'),
				(SELECT COALESCE(MAX(customer_id), 1) FROM customers)
			)`).Error
	})
	if err != nil {
		return nil, fmt.Errorf("import transaction: %v", err)
	}

	return &ImportResult{
		CustomersImported: len(customers),
		LoansImported:     len(kept),
		LoansSkipped:      skipped,
	}, nil
}

// parseCustomers reads all customer records from the export document
func parseCustomers(doc *etree.Document) ([]models.Customer, error) {
	elements := doc.FindElements("//customer")
	customers := make([]models.Customer, 0, len(elements))
	for _, el := range elements {
		id, err := uintField(el, "customer_id")
		if err != nil {
			return nil, err
		}
		age, err := intField(el, "age")
		if err != nil {
			return nil, err
		}
		salary, err := floatField(el, "monthly_salary")
		if err != nil {
			return nil, err
		}
		limit, err := floatField(el, "approved_limit")
		if err != nil {
			return nil, err
		}
		customers = append(customers, models.Customer{
			CustomerID:    id,
			FirstName:     textField(el, "first_name"),
			LastName:      textField(el, "last_name"),
			Age:           age,
			PhoneNumber:   textField(el, "phone_number"),
			MonthlySalary: salary,
			ApprovedLimit: limit,
		})
	}
	return customers, nil
}

// parseLoans reads all loan records from the export document
func parseLoans(doc *etree.Document) ([]models.Loan, error) {
	elements := doc.FindElements("//loan")
	loans := make([]models.Loan, 0, len(elements))
	for _, el := range elements {
		loanID, err := uintField(el, "loan_id")
		if err != nil {
			return nil, err
		}
		customerID, err := uintField(el, "customer_id")
		if err != nil {
			return nil, err
		}
		amount, err := floatField(el, "loan_amount")
		if err != nil {
			return nil, err
		}
		tenure, err := intField(el, "tenure")
		if err != nil {
			return nil, err
		}
		rate, err := floatField(el, "interest_rate")
		if err != nil {
			return nil, err
		}
		payment, err := floatField(el, "monthly_payment")
		if err != nil {
			return nil, err
		}
		emisOnTime, err := intField(el, "emis_paid_on_time")
		if err != nil {
			return nil, err
		}
		approval, err := dateField(el, "date_of_approval")
		if err != nil {
			return nil, err
		}
		end, err := dateField(el, "end_date")
		if err != nil {
			return nil, err
		}
		loans = append(loans, models.Loan{
			LoanID:         loanID,
			CustomerID:     customerID,
			LoanAmount:     amount,
			Tenure:         tenure,
			InterestRate:   rate,
			MonthlyPayment: payment,
			EMIsPaidOnTime: emisOnTime,
			DateOfApproval: approval,
			EndDate:        end,
		})
	}
	return loans, nil
}

func textField(el *etree.Element, name string) string {
	child := el.SelectElement(name)
	if child == nil {
		return ""
	}
	return child.Text()
}

func intField(el *etree.Element, name string) (int, error) {
	value, err := strconv.Atoi(textField(el, name))
	if err != nil {
		return 0, fmt.Errorf("field %s: %v", name, err)
	}
	return value, nil
}

func uintField(el *etree.Element, name string) (uint, error) {
	value, err := strconv.ParseUint(textField(el, name), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("field %s: %v", name, err)
	}
	return uint(value), nil
}

func floatField(el *etree.Element, name string) (float64, error) {
	value, err := strconv.ParseFloat(textField(el, name), 64)
	if err != nil {
		return 0, fmt.Errorf("field %s: %v", name, err)
	}
	return value, nil
}

func dateField(el *etree.Element, name string) (time.Time, error) {
	value, err := time.Parse(importDateLayout, textField(el, name))
	if err != nil {
		return time.Time{}, fmt.Errorf("field %s: %v", name, err)
	}
	return value, nil
}
