package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// Customer represents a registered borrower. The approved limit is set once
// at registration and never recomputed.
type Customer struct {
	CustomerID    uint      `gorm:"column:customer_id;primaryKey;autoIncrement" json:"customer_id"`
	FirstName     string    `gorm:"column:first_name;not null;size:100" json:"first_name"`
	LastName      string    `gorm:"column:last_name;not null;size:100" json:"last_name"`
	Age           int       `gorm:"column:age;not null" json:"age"`
	PhoneNumber   string    `gorm:"column:phone_number;not null;size:15" json:"phone_number"`
	MonthlySalary float64   `gorm:"column:monthly_salary;type:decimal(12,2);not null" json:"monthly_salary"`
	ApprovedLimit float64   `gorm:"column:approved_limit;type:decimal(12,2);not null" json:"approved_limit"`
	Loans         []Loan    `gorm:"foreignKey:CustomerID" json:"-"`
	CreatedAt     time.Time `gorm:"column:created_at;default:CURRENT_TIMESTAMP" json:"-"`
	UpdatedAt     time.Time `gorm:"column:updated_at;default:CURRENT_TIMESTAMP" json:"-"`
}

func (Customer) TableName() string {
	return "customers"
}

// BeforeCreate validates the record before insertion
func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if len(c.FirstName) == 0 || len(c.FirstName) > 100 {
		return errors.New("first name must be between 1 and 100 characters")
	}
	if len(c.LastName) == 0 || len(c.LastName) > 100 {
		return errors.New("last name must be between 1 and 100 characters")
	}
	if c.MonthlySalary <= 0 {
		return errors.New("monthly salary must be positive")
	}
	return nil
}
